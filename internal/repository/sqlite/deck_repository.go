package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var deckColumns = []string{"id", "name", "description", "created_at"}

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) List(ctx context.Context) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks")

	query, args, err := sqlBuilder.Select(deckColumns...).
		From("decks").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	decks := []models.Deck{}
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Get(ctx context.Context, id string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%s", id)

	query, args, err := sqlBuilder.Select(deckColumns...).
		From("decks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var d models.Deck
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found: id=%s", id)
		} else {
			log.Error("failed to get deck: %v", err)
		}
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) Insert(ctx context.Context, d models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: id=%s, name=%s", d.ID, d.Name)

	query, args, err := sqlBuilder.Insert("decks").
		Columns(deckColumns...).
		Values(d.ID, d.Name, d.Description, d.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to insert deck: %v", err)
		return err
	}
	return nil
}

// Delete removes the deck; its cards go with it through the foreign key.
func (r *deckRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%s", id)

	query, args, err := sqlBuilder.Delete("decks").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	return execAffectingOne(ctx, r.db, log, query, args)
}

// execAffectingOne runs a statement that targets one row by id and reports
// sql.ErrNoRows when no row matched.
func execAffectingOne(ctx context.Context, db *sql.DB, log *logger.Logger, query string, args []any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("statement failed: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		log.Error("failed to read affected rows: %v", err)
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
