package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/codeflash/internal/logger"
	"github.com/vytor/codeflash/internal/models"
	"github.com/vytor/codeflash/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

const deckColumns = `id, name, description, color, icon, created_at, updated_at`

func scanDeck(row rowScanner) (models.Deck, error) {
	var d models.Deck
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Color, &d.Icon, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *deckRepository) Get(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%d", id)

	d, err := scanDeck(r.db.QueryRowContext(ctx, `SELECT `+deckColumns+` FROM decks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) List(ctx context.Context) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks")

	rows, err := r.db.QueryContext(ctx, `SELECT `+deckColumns+` FROM decks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	decks := []models.Deck{}
	for rows.Next() {
		d, err := scanDeck(rows)
		if err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Insert(ctx context.Context, d models.Deck) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: name=%s", d.Name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO decks (name, description, color, icon, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`, d.Name, d.Description, d.Color, d.Icon, utc(d.CreatedAt), utc(d.UpdatedAt))
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get deck id: %v", err)
		return 0, err
	}
	log.Debug("deck inserted: id=%d", id)
	return id, nil
}

func (r *deckRepository) Update(ctx context.Context, d models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("updating deck: id=%d", d.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE decks
SET name = ?, description = ?, color = ?, icon = ?, updated_at = ?
WHERE id = ?
`, d.Name, d.Description, d.Color, d.Icon, utc(d.UpdatedAt), d.ID)
	if err != nil {
		log.Error("failed to update deck: %v", err)
	}
	return err
}

func (r *deckRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *deckRepository) Stats(ctx context.Context, id int64, asOf time.Time) (*models.DeckStats, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("computing deck stats: id=%d", id)

	stats := models.DeckStats{DeckID: id}
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(CASE WHEN next_review <= ? THEN 1 ELSE 0 END), 0)
FROM cards
WHERE deck_id = ?
`, utc(asOf), id).Scan(&stats.TotalCards, &stats.CardsDue)
	if err != nil {
		log.Error("failed to compute deck stats: %v", err)
		return nil, err
	}
	return &stats, nil
}

func (r *deckRepository) AllStats(ctx context.Context, asOf time.Time) ([]models.DeckStats, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("computing stats for all decks")

	rows, err := r.db.QueryContext(ctx, `
SELECT d.id, COUNT(c.id), COALESCE(SUM(CASE WHEN c.next_review <= ? THEN 1 ELSE 0 END), 0)
FROM decks d
LEFT JOIN cards c ON c.deck_id = d.id
GROUP BY d.id
ORDER BY d.id
`, utc(asOf))
	if err != nil {
		log.Error("failed to compute deck stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.DeckStats
	for rows.Next() {
		var s models.DeckStats
		if err := rows.Scan(&s.DeckID, &s.TotalCards, &s.CardsDue); err != nil {
			log.Error("failed to scan deck stats row: %v", err)
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
