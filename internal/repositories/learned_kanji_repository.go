package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/japanesestudent/kanji-service/internal/models"
)

// learnedKanjiRepository implements LearnedKanjiRepository
type learnedKanjiRepository struct {
	db *sql.DB
}

// NewLearnedKanjiRepository creates a new learned kanji repository
func NewLearnedKanjiRepository(db *sql.DB) *learnedKanjiRepository {
	return &learnedKanjiRepository{
		db: db,
	}
}

// FindByUserAndKanji retrieves the learned kanji record of a user
//
// "userID" parameter is used to identify the user.
// "kanji" parameter is used to identify the kanji.
//
// If the record does not exist, "false" is returned together with "nil" record and "nil" error.
func (r *learnedKanjiRepository) FindByUserAndKanji(ctx context.Context, userID, kanji string) (*models.LearnedKanji, bool, error) {
	query := `
		SELECT id, user_id, kanji, created_at, updated_at
		FROM user_learned_kanji
		WHERE user_id = ? AND kanji = ?
	`

	var record models.LearnedKanji
	err := r.db.QueryRowContext(ctx, query, userID, kanji).Scan(
		&record.ID,
		&record.UserID,
		&record.Kanji,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query learned kanji: %w", err)
	}

	return &record, true, nil
}

// Create inserts a learned kanji record unless the pair already exists
//
// The insert relies on the unique (user_id, kanji) key: an existing row is left untouched
// and "false" is returned. This also covers a concurrent writer inserting the same pair.
func (r *learnedKanjiRepository) Create(ctx context.Context, userID, kanji string) (bool, error) {
	query := `
		INSERT INTO user_learned_kanji (id, user_id, kanji, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE id = id
	`

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query, uuid.New().String(), userID, kanji, now, now)
	if err != nil {
		return false, fmt.Errorf("failed to insert learned kanji: %w", err)
	}

	// MySQL reports 1 affected row for an insert and 0 for an untouched duplicate
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected == 1, nil
}

// DeleteByUserAndKanji removes the learned kanji record of a user
//
// Deleting a pair that does not exist is not an error.
func (r *learnedKanjiRepository) DeleteByUserAndKanji(ctx context.Context, userID, kanji string) error {
	query := `DELETE FROM user_learned_kanji WHERE user_id = ? AND kanji = ?`

	if _, err := r.db.ExecContext(ctx, query, userID, kanji); err != nil {
		return fmt.Errorf("failed to delete learned kanji: %w", err)
	}

	return nil
}

// ListByUser retrieves all kanji learned by a user
//
// Records are returned in creation order only to keep responses stable.
func (r *learnedKanjiRepository) ListByUser(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT kanji
		FROM user_learned_kanji
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query learned kanji list: %w", err)
	}
	defer rows.Close()

	kanjiList := []string{}
	for rows.Next() {
		var kanji string
		if err := rows.Scan(&kanji); err != nil {
			return nil, fmt.Errorf("failed to scan learned kanji: %w", err)
		}
		kanjiList = append(kanjiList, kanji)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return kanjiList, nil
}
