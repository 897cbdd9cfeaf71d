package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Stats отдаёт счётчики живого процесса для /healthz.
type Stats interface {
	PendingLeads() int
	ArmedTimers() int
}

type healthResponse struct {
	Status       string `json:"status"`
	PendingLeads int    `json:"pending_leads"`
	ArmedTimers  int    `json:"armed_timers"`
}

func NewRouter(stats Stats) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		resp := healthResponse{Status: "ok"}
		if stats != nil {
			resp.PendingLeads = stats.PendingLeads()
			resp.ArmedTimers = stats.ArmedTimers()
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	return r
}
