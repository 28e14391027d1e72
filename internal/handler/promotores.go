package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mustafa-app/console/internal/domain"
	"github.com/mustafa-app/console/internal/middleware"
)

// requireAdmin rejects callers whose profile is not ADMIN. The backend
// enforces this too; checking here saves the round trip and keeps the
// error message consistent.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request, op string) bool {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil || !identity.Perfil.IsAdmin() {
		ErrorResponse(w, r, h.logger, domain.Forbidden(op, "Only administrators can manage promoters"))
		return false
	}
	return true
}

// ListPromotores handles GET /api/promotores.
func (h *Handler) ListPromotores(w http.ResponseWriter, r *http.Request) {
	client, ok := h.authedClient(w, r)
	if !ok {
		return
	}

	promotores, err := client.ListPromotores(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	h.writeJSON(w, http.StatusOK, promotores)
}

// CreatePromotor handles POST /api/promotores.
func (h *Handler) CreatePromotor(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.CreatePromotor"

	if !h.requireAdmin(w, r, op) {
		return
	}
	client, ok := h.authedClient(w, r)
	if !ok {
		return
	}

	var params domain.CreatePromotorParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid request body"))
		return
	}

	created, err := client.CreatePromotor(r.Context(), params)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	h.logger.Info("promotor created", "id", created.ID, "perfil", created.Perfil)
	h.writeJSON(w, http.StatusCreated, created)
}

// UpdatePromotor handles PUT /api/promotores/{id}.
func (h *Handler) UpdatePromotor(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.UpdatePromotor"

	if !h.requireAdmin(w, r, op) {
		return
	}
	client, ok := h.authedClient(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "A valid promoter ID is required"))
		return
	}

	var params domain.UpdatePromotorParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid request body"))
		return
	}

	updated, err := client.UpdatePromotor(r.Context(), id, params)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}
