package app_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/flashdeck/internal/apiclient"
	"github.com/vytor/flashdeck/internal/app"
	apperrors "github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/notify"
	"github.com/vytor/flashdeck/internal/testutil/mocks"
)

var now = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func at(t time.Time) *time.Time { return &t }

type ControllerSuite struct {
	suite.Suite
	ctx      context.Context
	api      *mocks.MockAPI
	notifier *mocks.RecordingNotifier
	ctrl     *app.Controller
}

func (s *ControllerSuite) SetupTest() {
	s.ctx = context.Background()
	s.api = &mocks.MockAPI{}
	s.notifier = &mocks.RecordingNotifier{}
	s.ctrl = app.NewController(s.api, s.notifier,
		app.WithClock(func() time.Time { return now }),
		app.WithRand(rand.New(rand.NewPCG(1, 2))),
		app.WithLogger(logger.Discard()),
	)
}

func (s *ControllerSuite) TearDownTest() {
	s.api.AssertExpectations(s.T())
}

// withDeck loads one deck, selects it and loads cards.
func (s *ControllerSuite) withDeck(deck models.Deck, cards []models.Card) {
	s.api.On("ListDecks", mock.Anything).Return([]models.Deck{deck}, nil).Once()
	s.api.On("ListCards", mock.Anything, deck.ID).Return(cards, nil).Once()
	s.Require().NoError(s.ctrl.LoadDecks(s.ctx))
	s.Require().NoError(s.ctrl.SelectDeck(s.ctx, deck.ID))
}

func (s *ControllerSuite) TestLoadDecks() {
	decks := []models.Deck{{ID: "d1", Name: "Spanish"}, {ID: "d2", Name: "German"}}
	s.api.On("ListDecks", mock.Anything).Return(decks, nil).Once()

	s.Require().NoError(s.ctrl.LoadDecks(s.ctx))
	s.Equal(decks, s.ctrl.State().Decks)
}

func (s *ControllerSuite) TestLoadDecks_Failure() {
	s.api.On("ListDecks", mock.Anything).Return(nil, &apiclient.RequestError{Status: 500, Message: "boom"}).Once()

	err := s.ctrl.LoadDecks(s.ctx)
	s.Error(err)
	s.Empty(s.ctrl.State().Decks)
	s.Equal(mocks.Notification{Message: "Failed to load decks: boom", Kind: notify.Error}, s.notifier.Last())
}

func (s *ControllerSuite) TestCreateDeck_EmptyNameMakesNoRequest() {
	err := s.ctrl.CreateDeck(s.ctx, "   ", "description")

	s.True(apperrors.IsValidation(err))
	s.api.AssertNotCalled(s.T(), "CreateDeck", mock.Anything, mock.Anything, mock.Anything)
	s.Equal(mocks.Notification{Message: "Enter a deck name!", Kind: notify.Error}, s.notifier.Last())
}

func (s *ControllerSuite) TestCreateDeck_ReloadsAfterSuccess() {
	created := models.Deck{ID: "d1", Name: "Spanish"}
	s.api.On("CreateDeck", mock.Anything, "Spanish", "words").Return(&created, nil).Once()
	s.api.On("ListDecks", mock.Anything).Return([]models.Deck{created}, nil).Once()

	s.Require().NoError(s.ctrl.CreateDeck(s.ctx, "  Spanish ", " words "))

	s.Equal([]models.Deck{created}, s.ctrl.State().Decks)
	s.Equal(0, s.ctrl.State().CardCount("d1"))
	s.Equal(notify.Success, s.notifier.Last().Kind)
	s.Contains(s.notifier.Last().Message, "Spanish")
}

func (s *ControllerSuite) TestCreateDeck_FailureLeavesNoGhost() {
	s.api.On("CreateDeck", mock.Anything, "Spanish", "").
		Return(nil, &apiclient.RequestError{Status: 400, Message: "name taken"}).Once()

	err := s.ctrl.CreateDeck(s.ctx, "Spanish", "")

	s.Error(err)
	s.Empty(s.ctrl.State().Decks)
	s.api.AssertNotCalled(s.T(), "ListDecks", mock.Anything)
	s.Equal("Failed to create deck: name taken", s.notifier.Last().Message)
}

func (s *ControllerSuite) TestSelectDeck_Unknown() {
	err := s.ctrl.SelectDeck(s.ctx, "missing")

	s.Error(err)
	s.Empty(s.ctrl.State().SelectedDeckID)
	s.api.AssertNotCalled(s.T(), "ListCards", mock.Anything, mock.Anything)
}

func (s *ControllerSuite) TestSelectDeck_LoadsCards() {
	cards := []models.Card{{ID: "c1", DeckID: "d1"}, {ID: "c2", DeckID: "d1"}}
	s.withDeck(models.Deck{ID: "d1"}, cards)

	s.Equal("d1", s.ctrl.State().SelectedDeckID)
	s.Equal(cards, s.ctrl.State().Cards)
	s.Equal(2, s.ctrl.State().CardCount("d1"))
}

func (s *ControllerSuite) TestSelectDeck_FailedLoadKeepsSelection() {
	cards := []models.Card{{ID: "c1", DeckID: "d1"}}
	decks := []models.Deck{{ID: "d1"}, {ID: "d2"}}
	s.api.On("ListDecks", mock.Anything).Return(decks, nil).Once()
	s.api.On("ListCards", mock.Anything, "d1").Return(cards, nil).Once()
	s.api.On("ListCards", mock.Anything, "d2").Return(nil, &apiclient.RequestError{Status: 500, Message: "boom"}).Once()
	s.Require().NoError(s.ctrl.LoadDecks(s.ctx))
	s.Require().NoError(s.ctrl.SelectDeck(s.ctx, "d1"))

	err := s.ctrl.SelectDeck(s.ctx, "d2")

	s.Error(err)
	s.Equal("d1", s.ctrl.State().SelectedDeckID)
	s.Equal(cards, s.ctrl.State().Cards)
	s.Equal(0, s.ctrl.State().CardCount("d2"))
	s.Equal(mocks.Notification{Message: "Failed to load cards: boom", Kind: notify.Error}, s.notifier.Last())
}

func (s *ControllerSuite) TestDeleteDeck_DeclinedMakesNoRequest() {
	s.api.On("ListDecks", mock.Anything).Return([]models.Deck{{ID: "d1"}}, nil).Once()
	s.Require().NoError(s.ctrl.LoadDecks(s.ctx))

	s.NoError(s.ctrl.DeleteDeck(s.ctx, "d1", false))

	s.api.AssertNotCalled(s.T(), "DeleteDeck", mock.Anything, mock.Anything)
	s.Len(s.ctrl.State().Decks, 1)
	s.Empty(s.notifier.All())
}

func (s *ControllerSuite) TestDeleteDeck_SelectedClearsSelection() {
	s.withDeck(models.Deck{ID: "d1"}, []models.Card{{ID: "c1", DeckID: "d1"}})
	s.api.On("DeleteDeck", mock.Anything, "d1").Return(nil).Once()
	s.api.On("ListDecks", mock.Anything).Return([]models.Deck{}, nil).Once()

	s.Require().NoError(s.ctrl.DeleteDeck(s.ctx, "d1", true))

	st := s.ctrl.State()
	s.Empty(st.SelectedDeckID)
	s.Empty(st.Cards)
	s.Empty(st.Decks)
	s.Equal(mocks.Notification{Message: "Deck deleted", Kind: notify.Success}, s.notifier.Last())
}

func (s *ControllerSuite) TestDeleteDeck_FailureKeepsDeck() {
	s.withDeck(models.Deck{ID: "d1"}, nil)
	s.api.On("DeleteDeck", mock.Anything, "d1").Return(&apiclient.RequestError{Status: 404, Message: "deck not found: d1"}).Once()

	s.Error(s.ctrl.DeleteDeck(s.ctx, "d1", true))

	s.Equal("d1", s.ctrl.State().SelectedDeckID)
	s.Len(s.ctrl.State().Decks, 1)
	s.Equal("Failed to delete deck: deck not found: d1", s.notifier.Last().Message)
}

func (s *ControllerSuite) TestCreateCard_EmptyQuestionMakesNoRequest() {
	s.withDeck(models.Deck{ID: "d1"}, nil)

	err := s.ctrl.CreateCard(s.ctx, "", "hello")

	s.True(apperrors.IsValidation(err))
	s.api.AssertNotCalled(s.T(), "CreateCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.Equal(mocks.Notification{Message: "Fill in both question and answer!", Kind: notify.Error}, s.notifier.Last())
}

func (s *ControllerSuite) TestCreateCard_NoDeckSelected() {
	err := s.ctrl.CreateCard(s.ctx, "hola", "hello")

	s.True(apperrors.IsValidation(err))
	s.Equal("Select a deck first!", s.notifier.Last().Message)
}

func (s *ControllerSuite) TestDeleteCard() {
	s.withDeck(models.Deck{ID: "d1"}, []models.Card{{ID: "c1", DeckID: "d1"}, {ID: "c2", DeckID: "d1"}})

	s.NoError(s.ctrl.DeleteCard(s.ctx, "c1", false))
	s.api.AssertNotCalled(s.T(), "DeleteCard", mock.Anything, mock.Anything)

	s.api.On("DeleteCard", mock.Anything, "c1").Return(nil).Once()
	s.api.On("ListCards", mock.Anything, "d1").Return([]models.Card{{ID: "c2", DeckID: "d1"}}, nil).Once()
	s.Require().NoError(s.ctrl.DeleteCard(s.ctx, "c1", true))

	s.Equal([]models.Card{{ID: "c2", DeckID: "d1"}}, s.ctrl.State().Cards)
	s.Equal(1, s.ctrl.State().CardCount("d1"))
}

func (s *ControllerSuite) TestStartReview_EmptyDeckStaysIdle() {
	s.withDeck(models.Deck{ID: "d1"}, nil)

	err := s.ctrl.StartReview(s.ctx)

	s.Error(err)
	s.Equal(app.Idle, s.ctrl.State().Review.Phase())
	s.Equal(notify.Error, s.notifier.Last().Kind)
}

func (s *ControllerSuite) TestStartReview_NothingDue() {
	s.withDeck(models.Deck{ID: "d1"}, []models.Card{
		{ID: "c1", DeckID: "d1", NextReviewDate: at(now.Add(time.Hour))},
	})

	s.NoError(s.ctrl.StartReview(s.ctx))

	s.Equal(app.Idle, s.ctrl.State().Review.Phase())
	s.Equal(mocks.Notification{Message: "All cards are already reviewed! Come back later.", Kind: notify.Info}, s.notifier.Last())
}

func (s *ControllerSuite) TestStartReview_QueuesOnlyDueCards() {
	s.withDeck(models.Deck{ID: "d1"}, []models.Card{
		{ID: "never", DeckID: "d1"},
		{ID: "past", DeckID: "d1", NextReviewDate: at(now.Add(-48 * time.Hour))},
		{ID: "exactly-now", DeckID: "d1", NextReviewDate: at(now)},
		{ID: "future", DeckID: "d1", NextReviewDate: at(now.Add(time.Second))},
	})

	s.Require().NoError(s.ctrl.StartReview(s.ctx))

	review := &s.ctrl.State().Review
	s.Equal(app.InSession, review.Phase())
	s.Equal(0, review.Index())
	s.False(review.Flipped())
	s.Equal("1/3", review.Progress())

	var ids []string
	for _, c := range review.Queue() {
		ids = append(ids, c.ID)
	}
	s.ElementsMatch([]string{"never", "past", "exactly-now"}, ids)
}

func (s *ControllerSuite) TestFlip() {
	s.ErrorIs(s.ctrl.Flip(), app.ErrNotInSession)

	s.withDeck(models.Deck{ID: "d1"}, []models.Card{{ID: "c1", DeckID: "d1"}})
	s.Require().NoError(s.ctrl.StartReview(s.ctx))

	s.Require().NoError(s.ctrl.Flip())
	s.True(s.ctrl.State().Review.Flipped())
	s.Require().NoError(s.ctrl.Flip())
	s.False(s.ctrl.State().Review.Flipped())
}

func (s *ControllerSuite) TestGrade_NotInSession() {
	s.ErrorIs(s.ctrl.Grade(s.ctx, 3), app.ErrNotInSession)
}

func (s *ControllerSuite) TestGrade_OutOfRangeMakesNoRequest() {
	s.withDeck(models.Deck{ID: "d1"}, []models.Card{{ID: "c1", DeckID: "d1"}})
	s.Require().NoError(s.ctrl.StartReview(s.ctx))

	err := s.ctrl.Grade(s.ctx, 6)

	s.True(apperrors.IsValidation(err))
	s.api.AssertNotCalled(s.T(), "SubmitReview", mock.Anything, mock.Anything, mock.Anything)
	s.Equal(app.InSession, s.ctrl.State().Review.Phase())
}

func (s *ControllerSuite) TestGrade_FailureKeepsCurrentCard() {
	s.withDeck(models.Deck{ID: "d1"}, []models.Card{{ID: "c1", DeckID: "d1"}, {ID: "c2", DeckID: "d1"}})
	s.Require().NoError(s.ctrl.StartReview(s.ctx))
	s.Require().NoError(s.ctrl.Flip())
	current, _ := s.ctrl.State().Review.Current()

	s.api.On("SubmitReview", mock.Anything, current.ID, 4).Return(nil, errors.New("connection refused")).Once()
	s.Error(s.ctrl.Grade(s.ctx, 4))

	review := &s.ctrl.State().Review
	after, ok := review.Current()
	s.True(ok)
	s.Equal(current.ID, after.ID)
	s.Equal(0, review.Index())
	s.True(review.Flipped())
	s.Equal("Failed to update card: connection refused", s.notifier.Last().Message)
}

func (s *ControllerSuite) TestGrade_AdvancesAndHidesAnswer() {
	s.withDeck(models.Deck{ID: "d1"}, []models.Card{{ID: "c1", DeckID: "d1"}, {ID: "c2", DeckID: "d1"}})
	s.Require().NoError(s.ctrl.StartReview(s.ctx))
	s.Require().NoError(s.ctrl.Flip())
	first, _ := s.ctrl.State().Review.Current()

	s.api.On("SubmitReview", mock.Anything, first.ID, 3).Return(&first, nil).Once()
	s.Require().NoError(s.ctrl.Grade(s.ctx, 3))

	review := &s.ctrl.State().Review
	s.Equal(1, review.Index())
	s.False(review.Flipped())
	s.Equal("2/2", review.Progress())
	next, _ := review.Current()
	s.NotEqual(first.ID, next.ID)
}

func (s *ControllerSuite) TestGrade_LastCardEndsSessionAndReloads() {
	card := models.Card{ID: "c1", DeckID: "d1"}
	s.withDeck(models.Deck{ID: "d1"}, []models.Card{card})
	s.Require().NoError(s.ctrl.StartReview(s.ctx))

	scheduled := card
	scheduled.RepetitionCount = 1
	scheduled.Interval = 1
	scheduled.NextReviewDate = at(now.Add(24 * time.Hour))
	s.api.On("SubmitReview", mock.Anything, "c1", 5).Return(&scheduled, nil).Once()
	s.api.On("ListCards", mock.Anything, "d1").Return([]models.Card{scheduled}, nil).Once()

	s.Require().NoError(s.ctrl.Grade(s.ctx, 5))

	st := s.ctrl.State()
	s.Equal(app.Idle, st.Review.Phase())
	s.Empty(st.Review.Queue())
	s.Equal([]models.Card{scheduled}, st.Cards)
	s.Equal(mocks.Notification{Message: "Review complete! 🎉", Kind: notify.Success}, s.notifier.Last())
}

func (s *ControllerSuite) TestExitReview_DiscardsQueueAndReloads() {
	cards := []models.Card{{ID: "c1", DeckID: "d1"}, {ID: "c2", DeckID: "d1"}}
	s.withDeck(models.Deck{ID: "d1"}, cards)
	s.Require().NoError(s.ctrl.StartReview(s.ctx))

	s.api.On("ListCards", mock.Anything, "d1").Return(cards, nil).Once()
	s.Require().NoError(s.ctrl.ExitReview(s.ctx))

	s.Equal(app.Idle, s.ctrl.State().Review.Phase())
	s.Zero(s.ctrl.State().Review.Len())
}

func (s *ControllerSuite) TestSpanishScenario() {
	deck := models.Deck{ID: "d1", Name: "Spanish", CreatedAt: now}
	s.api.On("CreateDeck", mock.Anything, "Spanish", "").Return(&deck, nil).Once()
	s.api.On("ListDecks", mock.Anything).Return([]models.Deck{deck}, nil).Once()
	s.Require().NoError(s.ctrl.CreateDeck(s.ctx, "Spanish", ""))
	s.Equal(0, s.ctrl.State().CardCount("d1"))

	s.api.On("ListCards", mock.Anything, "d1").Return([]models.Card{}, nil).Once()
	s.Require().NoError(s.ctrl.SelectDeck(s.ctx, "d1"))

	card := models.Card{ID: "c1", DeckID: "d1", Question: "hola", Answer: "hello"}
	s.api.On("CreateCard", mock.Anything, "d1", "hola", "hello").Return(&card, nil).Once()
	s.api.On("ListCards", mock.Anything, "d1").Return([]models.Card{card}, nil).Once()
	s.Require().NoError(s.ctrl.CreateCard(s.ctx, "hola", "hello"))
	s.Equal(1, s.ctrl.State().CardCount("d1"))

	s.Require().NoError(s.ctrl.StartReview(s.ctx))
	s.Equal(1, s.ctrl.State().Review.Len())
	s.Equal(0, s.ctrl.State().Review.Index())

	s.Require().NoError(s.ctrl.Flip())
	s.True(s.ctrl.State().Review.Flipped())

	reviewed := card
	reviewed.RepetitionCount = 1
	reviewed.NextReviewDate = at(now.Add(24 * time.Hour))
	s.api.On("SubmitReview", mock.Anything, "c1", 5).Return(&reviewed, nil).Once()
	s.api.On("ListCards", mock.Anything, "d1").Return([]models.Card{reviewed}, nil).Once()
	s.Require().NoError(s.ctrl.Grade(s.ctx, 5))

	s.Equal(app.Idle, s.ctrl.State().Review.Phase())
	s.Equal(1, s.ctrl.State().Cards[0].RepetitionCount)
	s.api.AssertCalled(s.T(), "SubmitReview", mock.Anything, "c1", 5)
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}
