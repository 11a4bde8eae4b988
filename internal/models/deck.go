package models

import "time"

// Deck is a named collection of cards.
type Deck struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateDeckRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}
