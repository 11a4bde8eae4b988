package apiclient

import (
	"context"

	"github.com/vytor/flashdeck/internal/models"
)

// API defines the flashcard REST operations.
// This interface enables testability by allowing mock implementations.
type API interface {
	ListDecks(ctx context.Context) ([]models.Deck, error)
	CreateDeck(ctx context.Context, name, description string) (*models.Deck, error)
	DeleteDeck(ctx context.Context, id string) error
	ListCards(ctx context.Context, deckID string) ([]models.Card, error)
	CreateCard(ctx context.Context, deckID, question, answer string) (*models.Card, error)
	DeleteCard(ctx context.Context, id string) error
	SubmitReview(ctx context.Context, cardID string, quality int) (*models.Card, error)
}

// Ensure Client implements the interface
var _ API = (*Client)(nil)
