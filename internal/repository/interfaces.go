package repository

import (
	"context"

	"github.com/vytor/flashdeck/internal/models"
)

// DeckRepository handles deck data access. Get and Delete return
// sql.ErrNoRows for an unknown id.
type DeckRepository interface {
	List(ctx context.Context) ([]models.Deck, error)
	Get(ctx context.Context, id string) (*models.Deck, error)
	Insert(ctx context.Context, deck models.Deck) error
	Delete(ctx context.Context, id string) error
}

// CardRepository handles card data access. Get, Update and Delete return
// sql.ErrNoRows for an unknown id.
type CardRepository interface {
	ListByDeck(ctx context.Context, deckID string) ([]models.Card, error)
	Get(ctx context.Context, id string) (*models.Card, error)
	Insert(ctx context.Context, card models.Card) error
	Update(ctx context.Context, card models.Card) error
	Delete(ctx context.Context, id string) error
}
