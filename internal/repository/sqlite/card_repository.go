package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/codeflash/internal/logger"
	"github.com/vytor/codeflash/internal/models"
	"github.com/vytor/codeflash/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

var cardColumns = []string{
	"id", "deck_id", "front", "back", "language", "ease_factor", "interval_days",
	"repetitions", "next_review", "last_reviewed", "version", "created_at", "updated_at",
}

func scanCard(row rowScanner) (models.Card, error) {
	var c models.Card
	var lastReviewed sql.NullTime
	err := row.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.Language, &c.EaseFactor, &c.Interval,
		&c.Repetitions, &c.NextReview, &lastReviewed, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	c.LastReviewed = timePtr(lastReviewed)
	return c, err
}

func (r *cardRepository) queryCards(ctx context.Context, log *logger.Logger, query squirrel.SelectBuilder) ([]models.Card, error) {
	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to query cards: %v", err)
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
	return cards, rows.Err()
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	query, args, err := sqlBuilder.Select(cardColumns...).From("cards").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	c, err := scanCard(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards with filter: deck_id=%d, language=%s, search=%q", filter.DeckID, filter.Language, filter.Search)

	query := sqlBuilder.Select(cardColumns...).From("cards")
	if filter.DeckID != 0 {
		query = query.Where(squirrel.Eq{"deck_id": filter.DeckID})
	}
	if filter.Language != "" {
		query = query.Where(squirrel.Eq{"language": strings.ToLower(filter.Language)})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"front": pattern},
			squirrel.Like{"back": pattern},
		})
	}
	query = query.OrderBy("created_at DESC", "id DESC")

	cards, err := r.queryCards(ctx, log, query)
	if err != nil {
		return nil, err
	}
	log.Debug("found %d cards", len(cards))
	return cards, nil
}

func (r *cardRepository) Due(ctx context.Context, filter models.DueFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching due cards: deck_id=%d, as_of=%s, limit=%d", filter.DeckID, filter.AsOf.Format("2006-01-02T15:04:05Z07:00"), filter.Limit)

	query := sqlBuilder.Select(cardColumns...).From("cards").
		Where(squirrel.LtOrEq{"next_review": utc(filter.AsOf)})
	if filter.DeckID != 0 {
		query = query.Where(squirrel.Eq{"deck_id": filter.DeckID})
	}
	query = query.OrderBy("next_review ASC", "id ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	cards, err := r.queryCards(ctx, log, query)
	if err != nil {
		return nil, err
	}
	log.Debug("found %d due cards", len(cards))
	return cards, nil
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: deck_id=%d, language=%s", c.DeckID, c.Language)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (deck_id, front, back, language, ease_factor, interval_days, repetitions, next_review, last_reviewed, version, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
`, c.DeckID, c.Front, c.Back, c.Language, c.EaseFactor, c.Interval, c.Repetitions,
		utc(c.NextReview), nullableTime(c.LastReviewed), utc(c.CreatedAt), utc(c.UpdatedAt))
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) UpdateContent(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card content: id=%d", c.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE cards
SET deck_id = ?, front = ?, back = ?, language = ?, updated_at = ?
WHERE id = ?
`, c.DeckID, c.Front, c.Back, c.Language, utc(c.UpdatedAt), c.ID)
	if err != nil {
		log.Error("failed to update card: %v", err)
	}
	return err
}

func (r *cardRepository) UpdateSchedule(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card schedule: id=%d, version=%d, interval=%d, ease=%.2f", c.ID, c.Version, c.Interval, c.EaseFactor)

	res, err := r.db.ExecContext(ctx, `
UPDATE cards
SET ease_factor = ?, interval_days = ?, repetitions = ?, next_review = ?, last_reviewed = ?,
    version = version + 1, updated_at = ?
WHERE id = ? AND version = ?
`, c.EaseFactor, c.Interval, c.Repetitions, utc(c.NextReview), nullableTime(c.LastReviewed),
		utc(c.UpdatedAt), c.ID, c.Version)
	if err != nil {
		log.Error("failed to update card schedule: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		log.Warn("card schedule not written, stale version: id=%d, version=%d", c.ID, c.Version)
		return repository.ErrVersionConflict
	}
	return nil
}

func (r *cardRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *cardRepository) CountByDeck(ctx context.Context, deckID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards WHERE deck_id = ?`, deckID).Scan(&n)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("card_repo").Error("failed to count cards: %v", err)
	}
	return n, err
}

func (r *cardRepository) DeleteByDeck(ctx context.Context, deckID int64) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting cards of deck: deck_id=%d", deckID)

	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE deck_id = ?`, deckID)
	if err != nil {
		log.Error("failed to delete cards: %v", err)
		return 0, err
	}
	return res.RowsAffected()
}
