package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/srs"
)

var now = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func TestApplyReview_FirstSuccess(t *testing.T) {
	card := models.Card{EaseFactor: srs.InitialEase}

	updated := srs.ApplyReview(card, 4, now)

	assert.Equal(t, 1, updated.RepetitionCount)
	assert.Equal(t, 1, updated.Interval)
	assert.InDelta(t, 2.5, updated.EaseFactor, 1e-9, "quality 4 keeps ease")
	require.NotNil(t, updated.NextReviewDate)
	assert.Equal(t, now.Add(24*time.Hour), *updated.NextReviewDate)
}

func TestApplyReview_SecondSuccess(t *testing.T) {
	card := models.Card{EaseFactor: 2.5, RepetitionCount: 1, Interval: 1}

	updated := srs.ApplyReview(card, 5, now)

	assert.Equal(t, 2, updated.RepetitionCount)
	assert.Equal(t, 6, updated.Interval)
	assert.InDelta(t, 2.6, updated.EaseFactor, 1e-9)
}

func TestApplyReview_GrowsByEase(t *testing.T) {
	card := models.Card{EaseFactor: 2.5, RepetitionCount: 2, Interval: 6}

	updated := srs.ApplyReview(card, 3, now)

	assert.Equal(t, 3, updated.RepetitionCount)
	assert.Equal(t, 15, updated.Interval, "round(6 * 2.5)")
	assert.InDelta(t, 2.36, updated.EaseFactor, 1e-9)
	assert.Equal(t, now.Add(15*24*time.Hour), *updated.NextReviewDate)
}

func TestApplyReview_FailureResets(t *testing.T) {
	for _, q := range []int{0, 1, 2} {
		card := models.Card{EaseFactor: 2.5, RepetitionCount: 4, Interval: 30}

		updated := srs.ApplyReview(card, q, now)

		assert.Equal(t, 0, updated.RepetitionCount, "quality %d", q)
		assert.Equal(t, 1, updated.Interval, "quality %d", q)
		assert.Less(t, updated.EaseFactor, card.EaseFactor, "quality %d", q)
	}
}

func TestApplyReview_EaseFloor(t *testing.T) {
	card := models.Card{EaseFactor: srs.MinEase}

	updated := srs.ApplyReview(card, 0, now)

	assert.Equal(t, srs.MinEase, updated.EaseFactor)
}

func TestApplyReview_ZeroEaseStartsAtInitial(t *testing.T) {
	updated := srs.ApplyReview(models.Card{}, 5, now)

	assert.InDelta(t, 2.6, updated.EaseFactor, 1e-9)
}

func TestApplyReview_DoesNotTouchContent(t *testing.T) {
	card := models.Card{ID: "c1", DeckID: "d1", Question: "q", Answer: "a", EaseFactor: 2.5}

	updated := srs.ApplyReview(card, 3, now)

	assert.Equal(t, "c1", updated.ID)
	assert.Equal(t, "d1", updated.DeckID)
	assert.Equal(t, "q", updated.Question)
	assert.Equal(t, "a", updated.Answer)
}
