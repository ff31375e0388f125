package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/startpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/startpage/internal/httpserver/handlers"
)

func init() { Register(registerPages) }

func registerPages(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Page(d))
	r.Get("/editor", handlers.EditorPage(d))
	r.With(guard(d)...).Post("/editor", handlers.EditorSubmit(d))
}
