package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/startpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/startpage/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/startpage/internal/httpserver/mw"
)

func init() {
	Register(registerAPI)
	RegisterStream(registerClock)
}

func registerAPI(r chi.Router, d deps.Deps) {
	r.Get("/api/config", handlers.Config(d))
	r.With(guard(d)...).Post("/api/actions", handlers.Actions(d))
	r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateLimitBurst,
		RefillPerIPPerMin: d.RateLimitRPM,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
	})).Get("/api/weather", handlers.Weather(d))
}

func registerClock(r chi.Router, d deps.Deps) {
	r.Get("/api/clock", handlers.Clock(d))
}
