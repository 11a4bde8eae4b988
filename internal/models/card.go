package models

import "time"

// Card is a question/answer pair with the scheduling fields maintained by the
// server. A nil NextReviewDate means the card is due now.
type Card struct {
	ID              string     `json:"id"`
	DeckID          string     `json:"deckId"`
	Question        string     `json:"question"`
	Answer          string     `json:"answer"`
	RepetitionCount int        `json:"repetitionCount"`
	Interval        int        `json:"interval"`
	EaseFactor      float64    `json:"easeFactor,omitempty"`
	NextReviewDate  *time.Time `json:"nextReviewDate"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// DueAt reports whether the card should be reviewed at now.
func (c Card) DueAt(now time.Time) bool {
	return c.NextReviewDate == nil || !c.NextReviewDate.After(now)
}

type CreateCardRequest struct {
	DeckID   string `json:"deckId" validate:"required"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// ReviewRequest carries the recall grade, 0 (blackout) to 5 (perfect).
type ReviewRequest struct {
	Quality *int `json:"quality" validate:"required,min=0,max=5"`
}

// Quality bounds accepted by the review endpoint.
const (
	MinQuality = 0
	MaxQuality = 5
)
