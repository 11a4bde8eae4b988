package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/repository/sqlite"
	"github.com/vytor/flashdeck/internal/testutil"
)

type CardRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	db   *sql.DB
	repo repository.CardRepository
}

func (s *CardRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardRepository(s.db)

	decks := sqlite.NewDeckRepository(s.db)
	s.Require().NoError(decks.Insert(s.ctx, models.Deck{ID: "d1", Name: "Spanish", CreatedAt: base}))
	s.Require().NoError(decks.Insert(s.ctx, models.Deck{ID: "d2", Name: "German", CreatedAt: base}))
}

func (s *CardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CardRepositorySuite) newCard(id, deckID string, created time.Time) models.Card {
	return models.Card{ID: id, DeckID: deckID, Question: "q " + id, Answer: "a " + id, EaseFactor: 2.5, CreatedAt: created}
}

func (s *CardRepositorySuite) TestInsertAndGet_NewCardHasNoReviewDate() {
	s.Require().NoError(s.repo.Insert(s.ctx, s.newCard("c1", "d1", base)))

	got, err := s.repo.Get(s.ctx, "c1")
	s.Require().NoError(err)
	s.Equal("d1", got.DeckID)
	s.Equal("q c1", got.Question)
	s.Equal(0, got.RepetitionCount)
	s.Equal(2.5, got.EaseFactor)
	s.Nil(got.NextReviewDate)
}

func (s *CardRepositorySuite) TestInsert_UnknownDeck() {
	s.Error(s.repo.Insert(s.ctx, s.newCard("c1", "nope", base)))
}

func (s *CardRepositorySuite) TestListByDeck() {
	s.Require().NoError(s.repo.Insert(s.ctx, s.newCard("c2", "d1", base.Add(time.Minute))))
	s.Require().NoError(s.repo.Insert(s.ctx, s.newCard("c1", "d1", base)))
	s.Require().NoError(s.repo.Insert(s.ctx, s.newCard("x", "d2", base)))

	cards, err := s.repo.ListByDeck(s.ctx, "d1")
	s.Require().NoError(err)
	s.Require().Len(cards, 2)
	s.Equal("c1", cards[0].ID)
	s.Equal("c2", cards[1].ID)

	empty, err := s.repo.ListByDeck(s.ctx, "missing")
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)
}

func (s *CardRepositorySuite) TestUpdateScheduling() {
	s.Require().NoError(s.repo.Insert(s.ctx, s.newCard("c1", "d1", base)))
	next := base.Add(6 * 24 * time.Hour)

	card := s.newCard("c1", "d1", base)
	card.Question = "ignored"
	card.RepetitionCount = 2
	card.Interval = 6
	card.EaseFactor = 2.6
	card.NextReviewDate = &next
	s.Require().NoError(s.repo.Update(s.ctx, card))

	got, err := s.repo.Get(s.ctx, "c1")
	s.Require().NoError(err)
	s.Equal("q c1", got.Question, "content is not touched")
	s.Equal(2, got.RepetitionCount)
	s.Equal(6, got.Interval)
	s.InDelta(2.6, got.EaseFactor, 1e-9)
	s.Require().NotNil(got.NextReviewDate)
	s.True(next.Equal(*got.NextReviewDate))
}

func (s *CardRepositorySuite) TestUpdateMissing() {
	s.ErrorIs(s.repo.Update(s.ctx, s.newCard("missing", "d1", base)), sql.ErrNoRows)
}

func (s *CardRepositorySuite) TestDelete() {
	s.Require().NoError(s.repo.Insert(s.ctx, s.newCard("c1", "d1", base)))

	s.Require().NoError(s.repo.Delete(s.ctx, "c1"))
	s.ErrorIs(s.repo.Delete(s.ctx, "c1"), sql.ErrNoRows)
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}
