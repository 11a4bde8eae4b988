package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/middleware"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging("api"))
	r.Use(middleware.Recovery)

	r.Get("/healthz", s.handleHealth)

	r.Route("/decks", func(r chi.Router) {
		r.Get("/", s.handleListDecks)
		r.Post("/", s.handleCreateDeck)
		r.Delete("/{id}", s.handleDeleteDeck)
		r.Get("/{id}/cards", s.handleListCards)
	})
	r.Route("/cards", func(r chi.Router) {
		r.Post("/", s.handleCreateCard)
		r.Delete("/{id}", s.handleDeleteCard)
		r.Post("/{id}/review", s.handleReviewCard)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusMethodNotAllowed, errorBody(errors.ErrCodeBadRequest, "method not allowed"))
	})
	return r
}
