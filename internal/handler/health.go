package handler

import "net/http"

// Health handles GET /health. It reports this process only; the backend
// has its own health endpoint and a slow backend must not fail liveness
// probes here.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
