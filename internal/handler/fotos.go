package handler

import (
	"net/http"
	"strconv"

	"github.com/mustafa-app/console/internal/backend"
	"github.com/mustafa-app/console/internal/domain"
	"github.com/mustafa-app/console/internal/metrics"
	"github.com/mustafa-app/console/internal/session"
)

// authedClient derives a backend client carrying the request's credential.
func (h *Handler) authedClient(w http.ResponseWriter, r *http.Request) (*backend.Client, bool) {
	token, ok := session.NewCookieStore(w, r, h.isSecure).Token()
	if !ok {
		UnauthorizedResponse(w, r, h.logger)
		return nil, false
	}
	return h.backend.WithToken(backend.StaticToken(token)), true
}

// ListFotos handles GET /api/fotos.
//
// Query parameters: promotor_id, data_inicio, data_fim (YYYY-MM-DD), busca.
// Malformed values are rejected here instead of being forwarded.
func (h *Handler) ListFotos(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.ListFotos"

	client, ok := h.authedClient(w, r)
	if !ok {
		return
	}

	var filter domain.FotoFilter
	q := r.URL.Query()

	if raw := q.Get("promotor_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			ErrorResponse(w, r, h.logger, domain.Invalid(op, "promotor_id must be a positive integer"))
			return
		}
		filter.PromotorID = id
	}
	if raw := q.Get("data_inicio"); raw != "" {
		t, err := domain.ParseDate(raw)
		if err != nil {
			ErrorResponse(w, r, h.logger, domain.Invalid(op, "data_inicio must be YYYY-MM-DD"))
			return
		}
		filter.DataInicio = t
	}
	if raw := q.Get("data_fim"); raw != "" {
		t, err := domain.ParseDate(raw)
		if err != nil {
			ErrorResponse(w, r, h.logger, domain.Invalid(op, "data_fim must be YYYY-MM-DD"))
			return
		}
		filter.DataFim = t
	}
	if !filter.DataInicio.IsZero() && !filter.DataFim.IsZero() && filter.DataFim.Before(filter.DataInicio) {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "data_fim must not be before data_inicio"))
		return
	}
	filter.Busca = q.Get("busca")

	fotos, err := client.ListFotos(r.Context(), filter)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	h.writeJSON(w, http.StatusOK, fotos)
}

// DeleteFoto handles DELETE /api/fotos/{id}.
func (h *Handler) DeleteFoto(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.DeleteFoto"

	client, ok := h.authedClient(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "A valid photo ID is required"))
		return
	}

	if err := client.DeleteFoto(r.Context(), id); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	metrics.FotosDeleted.Inc()
	h.logger.Info("foto deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
