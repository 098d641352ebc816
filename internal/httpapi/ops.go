package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// OpsRouter serves /health and /metrics for processes without an API, such
// as the export worker.
func OpsRouter(service string, metricsHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"service": service,
		})
	})
	r.Handle("/metrics", metricsHandler)
	return r
}
