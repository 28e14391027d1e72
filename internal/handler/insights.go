package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mustafa-app/console/internal/domain"
	"github.com/mustafa-app/console/internal/metrics"
)

// Ask handles POST /api/insights/ask.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.Ask"

	client, ok := h.authedClient(w, r)
	if !ok {
		return
	}

	var question domain.Question
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid request body"))
		return
	}

	answer, err := client.Ask(r.Context(), question)
	if err != nil {
		metrics.InsightQuestions.WithLabelValues("failed").Inc()
		ErrorResponse(w, r, h.logger, err)
		return
	}

	metrics.InsightQuestions.WithLabelValues("success").Inc()
	h.writeJSON(w, http.StatusOK, answer)
}

// KPIs handles GET /api/kpis.
func (h *Handler) KPIs(w http.ResponseWriter, r *http.Request) {
	client, ok := h.authedClient(w, r)
	if !ok {
		return
	}

	kpis, err := client.KPIs(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	h.writeJSON(w, http.StatusOK, kpis)
}
