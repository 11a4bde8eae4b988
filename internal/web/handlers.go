package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/logger"
)

// confirmValue is the form value that approves a destructive action.
const confirmValue = "yes"

// act runs fn under the state lock and sends the browser back to the page.
// Failures were already shown to the user as toasts by the controller.
func (s *Server) act(w http.ResponseWriter, r *http.Request, name string, fn func(ctx context.Context) error) {
	log := logger.FromContext(r.Context())

	s.mu.Lock()
	err := fn(r.Context())
	s.mu.Unlock()

	if err != nil {
		log.Debug("%s failed: %v", name, err)
	}
	redirectHome(w, r)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	name, description := r.PostFormValue("name"), r.PostFormValue("description")
	s.act(w, r, "create deck", func(ctx context.Context) error {
		return s.ctrl.CreateDeck(ctx, name, description)
	})
}

func (s *Server) handleSelectDeck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.act(w, r, "select deck", func(ctx context.Context) error {
		return s.ctrl.SelectDeck(ctx, id)
	})
}

func (s *Server) handleConfirmDeleteDeck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	deck, ok := s.ctrl.State().Deck(id)
	s.mu.Unlock()
	if !ok {
		redirectHome(w, r)
		return
	}

	s.render(w, r, "confirm", confirmData{
		Title:   "Delete deck",
		Message: fmt.Sprintf("Are you sure you want to delete %q and all its cards?", deck.Name),
		Action:  "/decks/" + url.PathEscape(id) + "/delete",
		Toasts:  s.toasts.Active(),
	})
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	confirmed := r.PostFormValue("confirm") == confirmValue
	s.act(w, r, "delete deck", func(ctx context.Context) error {
		return s.ctrl.DeleteDeck(ctx, id, confirmed)
	})
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	question, answer := r.PostFormValue("question"), r.PostFormValue("answer")
	s.act(w, r, "create card", func(ctx context.Context) error {
		return s.ctrl.CreateCard(ctx, question, answer)
	})
}

func (s *Server) handleConfirmDeleteCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	question, ok := "", false
	for _, c := range s.ctrl.State().Cards {
		if c.ID == id {
			question, ok = c.Question, true
			break
		}
	}
	s.mu.Unlock()
	if !ok {
		redirectHome(w, r)
		return
	}

	s.render(w, r, "confirm", confirmData{
		Title:   "Delete card",
		Message: fmt.Sprintf("Are you sure you want to delete the card %q?", question),
		Action:  "/cards/" + url.PathEscape(id) + "/delete",
		Toasts:  s.toasts.Active(),
	})
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	confirmed := r.PostFormValue("confirm") == confirmValue
	s.act(w, r, "delete card", func(ctx context.Context) error {
		return s.ctrl.DeleteCard(ctx, id, confirmed)
	})
}

func (s *Server) handleStartReview(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, "start review", s.ctrl.StartReview)
}

func (s *Server) handleFlip(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, "flip", func(context.Context) error {
		return s.ctrl.Flip()
	})
}

func (s *Server) handleGrade(w http.ResponseWriter, r *http.Request) {
	quality, err := strconv.Atoi(r.PostFormValue("quality"))
	if err != nil {
		// Out of range, so the controller rejects it with the usual notice.
		quality = -1
	}
	s.act(w, r, "grade", func(ctx context.Context) error {
		return s.ctrl.Grade(ctx, quality)
	})
}

func (s *Server) handleExitReview(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, "exit review", s.ctrl.ExitReview)
}
