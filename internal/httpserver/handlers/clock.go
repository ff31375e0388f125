package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/startpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/startpage/internal/logger"
)

// Clock streams the formatted time as Server-Sent Events, one event per hub tick.
func Clock(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := http.NewResponseController(w)
		// The server-wide write timeout would cut the stream.
		_ = rc.SetWriteDeadline(time.Time{})

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		ticks, cancel := d.Clock.Subscribe()
		defer cancel()

		if err := writeEvent(w, rc, d.Clock.Now()); err != nil {
			d.Logger.Debug("clock stream not supported", logger.Error(err))
			return
		}

		for {
			select {
			case <-r.Context().Done():
				return
			case text, ok := <-ticks:
				if !ok {
					return
				}
				if err := writeEvent(w, rc, text); err != nil {
					return
				}
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, rc *http.ResponseController, data string) error {
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return rc.Flush()
}
