package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

var cardColumns = []string{
	"id", "deck_id", "question", "answer", "repetition_count",
	"interval_days", "ease_factor", "next_review_at", "created_at",
}

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (models.Card, error) {
	var c models.Card
	var next sql.NullTime
	err := row.Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.RepetitionCount,
		&c.Interval, &c.EaseFactor, &next, &c.CreatedAt)
	if err != nil {
		return c, err
	}
	if next.Valid {
		t := next.Time
		c.NextReviewDate = &t
	}
	return c, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func (r *cardRepository) ListByDeck(ctx context.Context, deckID string) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: deck_id=%s", deckID)

	query, args, err := sqlBuilder.Select(cardColumns...).
		From("cards").
		Where(squirrel.Eq{"deck_id": deckID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) Get(ctx context.Context, id string) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%s", id)

	query, args, err := sqlBuilder.Select(cardColumns...).
		From("cards").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	c, err := scanCard(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found: id=%s", id)
		} else {
			log.Error("failed to get card: %v", err)
		}
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: id=%s, deck_id=%s", c.ID, c.DeckID)

	query, args, err := sqlBuilder.Insert("cards").
		Columns(cardColumns...).
		Values(c.ID, c.DeckID, c.Question, c.Answer, c.RepetitionCount,
			c.Interval, c.EaseFactor, nullTime(c.NextReviewDate), c.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to insert card: %v", err)
		return err
	}
	return nil
}

// Update writes the scheduling fields of c.
func (r *cardRepository) Update(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%s, interval=%d, ease=%.2f", c.ID, c.Interval, c.EaseFactor)

	query, args, err := sqlBuilder.Update("cards").
		SetMap(map[string]any{
			"repetition_count": c.RepetitionCount,
			"interval_days":    c.Interval,
			"ease_factor":      c.EaseFactor,
			"next_review_at":   nullTime(c.NextReviewDate),
		}).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	return execAffectingOne(ctx, r.db, log, query, args)
}

func (r *cardRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%s", id)

	query, args, err := sqlBuilder.Delete("cards").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	return execAffectingOne(ctx, r.db, log, query, args)
}
