package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/startpage/internal/httpserver/deps"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version,omitempty"`
	Commit        string  `json:"commit,omitempty"`
	BuildDate     string  `json:"build_date,omitempty"`
	GoVersion     string  `json:"go_version,omitempty"`
	Categories    int     `json:"categories"`
	ClockClients  int     `json:"clock_clients"`
}

// Healthz reports liveness plus build info; it never touches the backend.
func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthzResponse{
			Status:        "ok",
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
			UptimeSeconds: time.Since(start).Seconds(),
			Categories:    len(d.Store.Snapshot().Categories),
		}
		if d.Clock != nil {
			resp.ClockClients = d.Clock.Subscribers()
		}
		writeJSON(w, http.StatusOK, resp, d.Logger)
	}
}
