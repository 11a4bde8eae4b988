package app

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/vytor/flashdeck/internal/models"
)

// Phase is the state of a review session.
type Phase int

const (
	Idle Phase = iota
	InSession
)

func (p Phase) String() string {
	if p == InSession {
		return "in_session"
	}
	return "idle"
}

// ErrNotInSession is returned by review operations while no session runs.
var ErrNotInSession = errors.New("no review session in progress")

// Session is the client-side review queue.
type Session struct {
	phase   Phase
	queue   []models.Card
	index   int
	flipped bool
}

func (s *Session) Phase() Phase  { return s.phase }
func (s *Session) Active() bool  { return s.phase == InSession }
func (s *Session) Index() int    { return s.index }
func (s *Session) Flipped() bool { return s.flipped }
func (s *Session) Len() int      { return len(s.queue) }

// Queue returns a copy of the review queue.
func (s *Session) Queue() []models.Card {
	return append([]models.Card(nil), s.queue...)
}

// Current returns the card under review.
func (s *Session) Current() (models.Card, bool) {
	if s.phase != InSession || s.index >= len(s.queue) {
		return models.Card{}, false
	}
	return s.queue[s.index], true
}

// Progress renders the position as "{index+1}/{len}".
func (s *Session) Progress() string {
	return fmt.Sprintf("%d/%d", s.index+1, len(s.queue))
}

// Done reports whether every card of the queue has been graded.
func (s *Session) Done() bool {
	return s.index >= len(s.queue)
}

func (s *Session) begin(queue []models.Card) {
	s.phase = InSession
	s.queue = queue
	s.index = 0
	s.flipped = false
}

func (s *Session) advance() {
	s.index++
	s.flipped = false
}

func (s *Session) flip() error {
	if s.phase != InSession {
		return ErrNotInSession
	}
	s.flipped = !s.flipped
	return nil
}

func (s *Session) reset() {
	*s = Session{}
}

// DueCards returns the cards due at now, keeping their order.
func DueCards(cards []models.Card, now time.Time) []models.Card {
	due := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if c.DueAt(now) {
			due = append(due, c)
		}
	}
	return due
}

// Shuffle returns a uniformly random permutation of cards. The input is not
// modified.
func Shuffle(cards []models.Card, rng *rand.Rand) []models.Card {
	out := append([]models.Card(nil), cards...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
