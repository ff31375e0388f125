package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/startpage/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg    Registrar
	mws    []Middleware
	stream bool
}

var registry []entry

// Register a registrar with optional per-route middlewares.
func Register(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws})
}

// RegisterStream registers long-lived routes (SSE) that must not get the request timeout.
func RegisterStream(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws, stream: true})
}

// RegisterAll is called once from server.New().
// timeout applies to every non-stream route; zero disables it.
func RegisterAll(r chi.Router, d deps.Deps, timeout time.Duration) {
	for _, e := range registry {
		mws := e.mws
		if !e.stream && timeout > 0 {
			mws = append([]Middleware{middleware.Timeout(timeout)}, mws...)
		}
		if len(mws) == 0 {
			e.reg(r, d)
			continue
		}
		e.reg(r.With(mws...), d)
	}
}
