package view

import (
	"net/url"
	"time"

	"github.com/vytor/flashdeck/internal/app"
	"github.com/vytor/flashdeck/internal/models"
)

// Placeholder texts shown instead of missing content.
const (
	NoDescription = "No description"
	NoDecks       = "No decks yet"
	NoDecksHint   = "Create your first deck to get started"
	NoCards       = "This deck has no cards yet"
)

// Style hints how an action is drawn.
type Style string

const (
	StylePrimary Style = "primary"
	StyleDanger  Style = "danger"
)

// Action is a control bound to one entity.
type Action struct {
	Label   string
	Method  string
	Path    string
	Style   Style
	Confirm bool
}

type DeckRow struct {
	ID          string
	Name        string
	Description string
	Created     string
	CardCount   int
	Selected    bool
	Actions     []Action
}

type DeckList struct {
	Empty bool
	Rows  []DeckRow
}

type CardRow struct {
	ID              string
	Question        string
	Answer          string
	RepetitionCount int
	Interval        int
	NextReview      string
	Actions         []Action
}

type CardList struct {
	DeckID   string
	DeckName string
	Empty    bool
	Rows     []CardRow
}

// ReviewCard is the card under review. Answer is empty until flipped.
type ReviewCard struct {
	Question      string
	Answer        string
	AnswerVisible bool
	Progress      string
	Grades        []Grade
}

type Grade struct {
	Quality int
	Label   string
}

// Page is everything the UI shows. CardList is nil when no deck is selected
// and Review is nil outside a review session.
type Page struct {
	Decks    DeckList
	CardList *CardList
	Review   *ReviewCard
}

// Grades offered during review, 0 (blackout) to 5 (perfect).
var Grades = []Grade{
	{Quality: 0, Label: "Forgot"},
	{Quality: 1, Label: "Very hard"},
	{Quality: 2, Label: "Hard"},
	{Quality: 3, Label: "Good"},
	{Quality: 4, Label: "Easy"},
	{Quality: 5, Label: "Perfect"},
}

// Render projects st into view models. It does not modify st.
func Render(st *app.State, now time.Time) Page {
	p := Page{Decks: renderDecks(st)}

	if deck, ok := st.SelectedDeck(); ok {
		if st.Review.Active() {
			p.Review = renderReview(&st.Review)
		} else {
			p.CardList = renderCards(deck, st.Cards, now)
		}
	}
	return p
}

func renderDecks(st *app.State) DeckList {
	if len(st.Decks) == 0 {
		return DeckList{Empty: true}
	}
	rows := make([]DeckRow, 0, len(st.Decks))
	for _, d := range st.Decks {
		rows = append(rows, DeckRow{
			ID:          d.ID,
			Name:        d.Name,
			Description: orPlaceholder(d.Description, NoDescription),
			Created:     formatDate(d.CreatedAt),
			CardCount:   st.CardCount(d.ID),
			Selected:    d.ID == st.SelectedDeckID,
			Actions: []Action{
				{Label: "Open", Method: "POST", Path: deckPath(d.ID, "select"), Style: StylePrimary},
				{Label: "Delete", Method: "POST", Path: deckPath(d.ID, "delete"), Style: StyleDanger, Confirm: true},
			},
		})
	}
	return DeckList{Rows: rows}
}

func renderCards(deck models.Deck, cards []models.Card, now time.Time) *CardList {
	list := &CardList{DeckID: deck.ID, DeckName: deck.Name, Empty: len(cards) == 0}
	for _, c := range cards {
		list.Rows = append(list.Rows, CardRow{
			ID:              c.ID,
			Question:        c.Question,
			Answer:          c.Answer,
			RepetitionCount: c.RepetitionCount,
			Interval:        c.Interval,
			NextReview:      NextReviewLabel(c.NextReviewDate, now),
			Actions: []Action{
				{Label: "Delete", Method: "POST", Path: "/cards/" + url.PathEscape(c.ID) + "/delete", Style: StyleDanger, Confirm: true},
			},
		})
	}
	return list
}

func renderReview(s *app.Session) *ReviewCard {
	card, ok := s.Current()
	if !ok {
		return nil
	}
	rc := &ReviewCard{
		Question:      card.Question,
		AnswerVisible: s.Flipped(),
		Progress:      s.Progress(),
		Grades:        Grades,
	}
	if rc.AnswerVisible {
		rc.Answer = card.Answer
	}
	return rc
}

func deckPath(id, action string) string {
	return "/decks/" + url.PathEscape(id) + "/" + action
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
