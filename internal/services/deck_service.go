package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

// DeckService handles deck-related business logic
type DeckService interface {
	ListDecks(ctx context.Context) ([]models.Deck, error)
	CreateDeck(ctx context.Context, req models.CreateDeckRequest) (*models.Deck, error)
	DeleteDeck(ctx context.Context, id string) error
}

type deckService struct {
	deckRepo repository.DeckRepository
	now      func() time.Time
}

// NewDeckService creates a new DeckService. now defaults to time.Now.
func NewDeckService(deckRepo repository.DeckRepository, now func() time.Time) DeckService {
	if now == nil {
		now = time.Now
	}
	return &deckService{deckRepo: deckRepo, now: now}
}

func (s *deckService) ListDecks(ctx context.Context) ([]models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing decks")

	decks, err := s.deckRepo.List(ctx)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) CreateDeck(ctx context.Context, req models.CreateDeckRequest) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.NewValidationError("name", "name cannot be empty")
	}

	deck := models.Deck{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   s.now().UTC(),
	}
	log.Debug("creating deck: id=%s, name=%s", deck.ID, deck.Name)

	if err := s.deckRepo.Insert(ctx, deck); err != nil {
		log.Error("failed to create deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &deck, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting deck: id=%s", id)

	if err := s.deckRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("deck", id)
		}
		log.Error("failed to delete deck: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
