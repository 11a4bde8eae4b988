package srs

import (
	"math"
	"time"

	"github.com/vytor/flashdeck/internal/models"
)

const (
	// InitialEase is the ease factor of a card that was never reviewed.
	InitialEase = 2.5
	// MinEase bounds the ease factor from below.
	MinEase = 1.3
	// PassingQuality is the lowest grade that counts as recalled.
	PassingQuality = 3

	day = 24 * time.Hour
)

// ApplyReview reschedules card using SM-2. quality runs from 0 (blackout) to
// 5 (perfect); callers validate the range.
func ApplyReview(card models.Card, quality int, now time.Time) models.Card {
	ef := card.EaseFactor
	if ef == 0 {
		ef = InitialEase
	}

	if quality < PassingQuality {
		card.RepetitionCount = 0
		card.Interval = 1
	} else {
		switch card.RepetitionCount {
		case 0:
			card.Interval = 1
		case 1:
			card.Interval = 6
		default:
			card.Interval = int(math.Round(float64(card.Interval) * ef))
		}
		card.RepetitionCount++
	}

	miss := float64(5 - quality)
	ef += 0.1 - miss*(0.08+miss*0.02)
	card.EaseFactor = math.Max(MinEase, ef)

	next := now.Add(time.Duration(card.Interval) * day)
	card.NextReviewDate = &next
	return card
}
