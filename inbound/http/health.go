package http

import (
	"log/slog"
	"net/http"
)

type BreakerStates interface {
	States() map[string]string
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Breakers map[string]string `json:"breakers,omitempty"`
}

func RegisterHealthHttp(mux *http.ServeMux, breakers BreakerStates) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		slog.DebugContext(r.Context(), "health check")

		resp := HealthResponse{Status: "ok"}
		if breakers != nil {
			resp.Breakers = breakers.States()
		}

		writeJSONResponse(w, http.StatusOK, resp)
	})
}
