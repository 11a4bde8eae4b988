package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/middleware"
)

func (s *Server) Routes() (http.Handler, error) {
	static, err := staticHandler()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Logging("web"))
	r.Use(middleware.Recovery)
	r.Use(middleware.SecurityHeaders)

	r.Get("/", s.handleHome)
	r.Get("/healthz", s.handleHealth)

	r.Post("/decks", s.handleCreateDeck)
	r.Post("/decks/{id}/select", s.handleSelectDeck)
	r.Get("/decks/{id}/delete", s.handleConfirmDeleteDeck)
	r.Post("/decks/{id}/delete", s.handleDeleteDeck)

	r.Post("/cards", s.handleCreateCard)
	r.Get("/cards/{id}/delete", s.handleConfirmDeleteCard)
	r.Post("/cards/{id}/delete", s.handleDeleteCard)

	r.Route("/review", func(r chi.Router) {
		r.Post("/start", s.handleStartReview)
		r.Post("/flip", s.handleFlip)
		r.Post("/grade", s.handleGrade)
		r.Post("/exit", s.handleExitReview)
	})

	r.Handle("/static/*", static)
	return r, nil
}
