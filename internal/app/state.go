package app

import (
	"slices"

	"github.com/vytor/flashdeck/internal/models"
)

// State is the in-memory application state. It is not persisted and starts
// empty; Controller fills it from the API. Mutate it only through its
// methods so every change has a name.
type State struct {
	SelectedDeckID string
	Decks          []models.Deck
	Cards          []models.Card
	Review         Session

	cardCounts map[string]int
}

func NewState() *State {
	return &State{cardCounts: map[string]int{}}
}

// SetDecks replaces the deck list. A selection that no longer exists is
// cleared.
func (s *State) SetDecks(decks []models.Deck) {
	s.Decks = decks
	for id := range s.cardCounts {
		if _, ok := s.Deck(id); !ok {
			delete(s.cardCounts, id)
		}
	}
	if s.SelectedDeckID != "" {
		if _, ok := s.Deck(s.SelectedDeckID); !ok {
			s.ClearSelection()
		}
	}
}

// SetCards records the cards of deckID. Cards are kept only when deckID is
// the selected deck; the count is remembered either way.
func (s *State) SetCards(deckID string, cards []models.Card) {
	s.setCount(deckID, len(cards))
	if deckID == s.SelectedDeckID {
		s.Cards = cards
	}
}

// Select makes id the selected deck. It reports false for unknown decks.
func (s *State) Select(id string) bool {
	if _, ok := s.Deck(id); !ok {
		return false
	}
	if s.SelectedDeckID != id {
		s.Cards = nil
		s.Review.reset()
	}
	s.SelectedDeckID = id
	return true
}

// ClearSelection returns to the "no deck selected" state.
func (s *State) ClearSelection() {
	s.SelectedDeckID = ""
	s.Cards = nil
	s.Review.reset()
}

// RemoveDeck drops a deleted deck, clearing the selection when it was the
// selected one.
func (s *State) RemoveDeck(id string) {
	s.Decks = slices.DeleteFunc(s.Decks, func(d models.Deck) bool { return d.ID == id })
	delete(s.cardCounts, id)
	if s.SelectedDeckID == id {
		s.ClearSelection()
	}
}

// RemoveCard drops a deleted card from the selected deck.
func (s *State) RemoveCard(id string) {
	before := len(s.Cards)
	s.Cards = slices.DeleteFunc(s.Cards, func(c models.Card) bool { return c.ID == id })
	if len(s.Cards) != before && s.SelectedDeckID != "" {
		s.setCount(s.SelectedDeckID, len(s.Cards))
	}
}

func (s *State) setCount(deckID string, n int) {
	if s.cardCounts == nil {
		s.cardCounts = map[string]int{}
	}
	s.cardCounts[deckID] = n
}

func (s *State) Deck(id string) (models.Deck, bool) {
	for _, d := range s.Decks {
		if d.ID == id {
			return d, true
		}
	}
	return models.Deck{}, false
}

func (s *State) SelectedDeck() (models.Deck, bool) {
	if s.SelectedDeckID == "" {
		return models.Deck{}, false
	}
	return s.Deck(s.SelectedDeckID)
}

// CardCount returns the last known number of cards in a deck, 0 when its
// cards were never loaded.
func (s *State) CardCount(deckID string) int {
	return s.cardCounts[deckID]
}
