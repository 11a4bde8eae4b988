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
	"github.com/vytor/flashdeck/internal/srs"
)

// CardService handles card-related business logic
type CardService interface {
	ListCards(ctx context.Context, deckID string) ([]models.Card, error)
	CreateCard(ctx context.Context, req models.CreateCardRequest) (*models.Card, error)
	DeleteCard(ctx context.Context, id string) error
	ReviewCard(ctx context.Context, id string, quality int) (*models.Card, error)
}

type cardService struct {
	cardRepo repository.CardRepository
	deckRepo repository.DeckRepository
	now      func() time.Time
}

// NewCardService creates a new CardService. now defaults to time.Now.
func NewCardService(cardRepo repository.CardRepository, deckRepo repository.DeckRepository, now func() time.Time) CardService {
	if now == nil {
		now = time.Now
	}
	return &cardService{cardRepo: cardRepo, deckRepo: deckRepo, now: now}
}

// requireDeck maps a missing deck to NOT_FOUND.
func (s *cardService) requireDeck(ctx context.Context, deckID string) error {
	if _, err := s.deckRepo.Get(ctx, deckID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("deck", deckID)
		}
		logger.FromContext(ctx).Error("failed to get deck: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *cardService) ListCards(ctx context.Context, deckID string) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards: deck_id=%s", deckID)

	if err := s.requireDeck(ctx, deckID); err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.ListByDeck(ctx, deckID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *cardService) CreateCard(ctx context.Context, req models.CreateCardRequest) (*models.Card, error) {
	log := logger.FromContext(ctx)

	question, answer := strings.TrimSpace(req.Question), strings.TrimSpace(req.Answer)
	if question == "" {
		return nil, errors.NewValidationError("question", "question cannot be empty")
	}
	if answer == "" {
		return nil, errors.NewValidationError("answer", "answer cannot be empty")
	}
	if err := s.requireDeck(ctx, req.DeckID); err != nil {
		return nil, err
	}

	card := models.Card{
		ID:         uuid.NewString(),
		DeckID:     req.DeckID,
		Question:   question,
		Answer:     answer,
		EaseFactor: srs.InitialEase,
		CreatedAt:  s.now().UTC(),
	}
	log.Debug("creating card: id=%s, deck_id=%s", card.ID, card.DeckID)

	if err := s.cardRepo.Insert(ctx, card); err != nil {
		log.Error("failed to create card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%s", id)

	if err := s.cardRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewNotFoundError("card", id)
		}
		log.Error("failed to delete card: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *cardService) ReviewCard(ctx context.Context, id string, quality int) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing card: id=%s, quality=%d", id, quality)

	if quality < models.MinQuality || quality > models.MaxQuality {
		return nil, errors.NewValidationError("quality", "quality must be between 0 and 5")
	}

	card, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("card", id)
		}
		log.Error("failed to get card: %v", err)
		return nil, errors.NewInternalError(err)
	}

	updated := srs.ApplyReview(*card, quality, s.now().UTC())
	log.Debug("applied review, new interval=%d days, ease_factor=%.2f", updated.Interval, updated.EaseFactor)

	if err := s.cardRepo.Update(ctx, updated); err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &updated, nil
}
