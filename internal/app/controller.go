package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/vytor/flashdeck/internal/apiclient"
	apperrors "github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/notify"
)

// Controller runs the user actions against the API and commits their results
// into State. Every operation reports its failure through the notifier and
// also returns it. State changes only after the API has confirmed the action;
// the affected list is then re-fetched from the server.
//
// A Controller is not safe for concurrent use; callers serialize actions.
type Controller struct {
	api      apiclient.API
	notifier notify.Notifier
	state    *State
	now      func() time.Time
	rng      *rand.Rand
	log      *logger.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides time.Now when picking due cards.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithRand sets the source used to shuffle review queues.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) {
		c.rng = rng
	}
}

// WithLogger sets the fallback logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

func NewController(api apiclient.API, notifier notify.Notifier, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		notifier: notifier,
		state:    NewState(),
		now:      time.Now,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:      logger.Default().WithPrefix("app"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State exposes the current state for rendering. Do not mutate it.
func (c *Controller) State() *State {
	return c.state
}

func (c *Controller) logger(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != logger.Default() {
		return l.WithPrefix("app")
	}
	return c.log
}

func (c *Controller) fail(prefix string, err error) error {
	msg := err.Error()
	if appErr, ok := apperrors.As(err); ok {
		msg = appErr.Message
	}
	c.notifier.Notify(prefix+msg, notify.Error)
	return err
}

// ==================== decks ====================

// LoadDecks replaces the deck list with the server's.
func (c *Controller) LoadDecks(ctx context.Context) error {
	decks, err := c.api.ListDecks(ctx)
	if err != nil {
		c.logger(ctx).Error("failed to load decks: %v", err)
		return c.fail("Failed to load decks: ", err)
	}
	c.state.SetDecks(decks)
	c.logger(ctx).Debug("loaded %d decks", len(decks))
	return nil
}

// CreateDeck validates the form, creates the deck and reloads the list.
func (c *Controller) CreateDeck(ctx context.Context, name, description string) error {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if err := check(deckInput{Name: name}); err != nil {
		return c.fail("", err)
	}

	deck, err := c.api.CreateDeck(ctx, name, description)
	if err != nil {
		c.logger(ctx).Error("failed to create deck: %v", err)
		return c.fail("Failed to create deck: ", err)
	}
	c.logger(ctx).Info("deck created: id=%s", deck.ID)
	c.notifier.Notify(fmt.Sprintf("Deck %q created!", deck.Name), notify.Success)
	return c.LoadDecks(ctx)
}

// SelectDeck loads the cards of id and then makes it the working deck. A
// failed load keeps the previous selection and its cards.
func (c *Controller) SelectDeck(ctx context.Context, id string) error {
	if _, ok := c.state.Deck(id); !ok {
		return c.fail("", apperrors.NewNotFoundError("deck", id))
	}
	cards, err := c.api.ListCards(ctx, id)
	if err != nil {
		c.logger(ctx).Error("failed to load cards of deck %s: %v", id, err)
		return c.fail("Failed to load cards: ", err)
	}
	c.state.Select(id)
	c.state.SetCards(id, cards)
	c.logger(ctx).Debug("selected deck %s with %d cards", id, len(cards))
	return nil
}

// DeleteDeck deletes a deck and its cards. Without confirmation nothing
// happens.
func (c *Controller) DeleteDeck(ctx context.Context, id string, confirmed bool) error {
	log := c.logger(ctx).WithField("deck_id", id)
	if !confirmed {
		log.Debug("deck deletion declined")
		return nil
	}

	if err := c.api.DeleteDeck(ctx, id); err != nil {
		log.Error("failed to delete deck: %v", err)
		return c.fail("Failed to delete deck: ", err)
	}
	c.state.RemoveDeck(id)
	log.Info("deck deleted")
	c.notifier.Notify("Deck deleted", notify.Success)
	return c.LoadDecks(ctx)
}

// ==================== cards ====================

// LoadCards replaces the cards of deckID with the server's.
func (c *Controller) LoadCards(ctx context.Context, deckID string) error {
	cards, err := c.api.ListCards(ctx, deckID)
	if err != nil {
		c.logger(ctx).Error("failed to load cards of deck %s: %v", deckID, err)
		return c.fail("Failed to load cards: ", err)
	}
	c.state.SetCards(deckID, cards)
	c.logger(ctx).Debug("loaded %d cards for deck %s", len(cards), deckID)
	return nil
}

// CreateCard adds a card to the selected deck.
func (c *Controller) CreateCard(ctx context.Context, question, answer string) error {
	in := cardInput{
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
		DeckID:   c.state.SelectedDeckID,
	}
	if err := check(in); err != nil {
		return c.fail("", err)
	}

	card, err := c.api.CreateCard(ctx, in.DeckID, in.Question, in.Answer)
	if err != nil {
		c.logger(ctx).Error("failed to create card: %v", err)
		return c.fail("Failed to create card: ", err)
	}
	c.logger(ctx).Info("card created: id=%s, deck_id=%s", card.ID, in.DeckID)
	c.notifier.Notify("Card added!", notify.Success)
	return c.LoadCards(ctx, in.DeckID)
}

// DeleteCard deletes a card of the selected deck. Without confirmation
// nothing happens.
func (c *Controller) DeleteCard(ctx context.Context, id string, confirmed bool) error {
	log := c.logger(ctx).WithField("card_id", id)
	if !confirmed {
		log.Debug("card deletion declined")
		return nil
	}

	if err := c.api.DeleteCard(ctx, id); err != nil {
		log.Error("failed to delete card: %v", err)
		return c.fail("Failed to delete card: ", err)
	}
	c.state.RemoveCard(id)
	log.Info("card deleted")
	c.notifier.Notify("Card deleted", notify.Success)
	if c.state.SelectedDeckID == "" {
		return nil
	}
	return c.LoadCards(ctx, c.state.SelectedDeckID)
}

// ==================== review ====================

// StartReview builds a shuffled queue of the due cards of the selected deck.
// It stays Idle when the deck is empty or nothing is due.
func (c *Controller) StartReview(ctx context.Context) error {
	log := c.logger(ctx)
	if len(c.state.Cards) == 0 {
		c.notifier.Notify("There are no cards in this deck to review!", notify.Error)
		return apperrors.NewValidationError("cards", "no cards in deck")
	}

	due := DueCards(c.state.Cards, c.now())
	if len(due) == 0 {
		c.notifier.Notify("All cards are already reviewed! Come back later.", notify.Info)
		log.Debug("no due cards among %d", len(c.state.Cards))
		return nil
	}

	c.state.Review.begin(Shuffle(due, c.rng))
	log.Info("review started: %d of %d cards due", len(due), len(c.state.Cards))
	return c.showCurrent(ctx)
}

// showCurrent presents the card at the current index with its answer hidden,
// or ends the session once the queue is exhausted.
func (c *Controller) showCurrent(ctx context.Context) error {
	if c.state.Review.Done() {
		return c.EndReview(ctx)
	}
	c.state.Review.flipped = false
	return nil
}

// Flip toggles the answer side of the current card.
func (c *Controller) Flip() error {
	return c.state.Review.flip()
}

// Grade submits quality for the current card and moves to the next one. On
// failure the same card stays current.
func (c *Controller) Grade(ctx context.Context, quality int) error {
	card, ok := c.state.Review.Current()
	if !ok {
		return ErrNotInSession
	}
	if err := check(gradeInput{Quality: quality}); err != nil {
		return c.fail("", err)
	}

	log := c.logger(ctx).WithFields(map[string]any{"card_id": card.ID, "quality": quality})
	if _, err := c.api.SubmitReview(ctx, card.ID, quality); err != nil {
		log.Error("failed to submit review: %v", err)
		return c.fail("Failed to update card: ", err)
	}
	log.Debug("review submitted")

	c.state.Review.advance()
	return c.showCurrent(ctx)
}

// EndReview finishes the session after the last card.
func (c *Controller) EndReview(ctx context.Context) error {
	c.notifier.Notify("Review complete! 🎉", notify.Success)
	return c.ExitReview(ctx)
}

// ExitReview leaves the session and reloads the deck's cards so the
// rescheduled fields show up.
func (c *Controller) ExitReview(ctx context.Context) error {
	graded := c.state.Review.Index()
	c.state.Review.reset()
	c.logger(ctx).Info("review exited after %d cards", graded)

	if c.state.SelectedDeckID == "" {
		return nil
	}
	return c.LoadCards(ctx, c.state.SelectedDeckID)
}
