package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
)

const suggestionColumns = `id, url, url_hash, extra_info, notes, user_id,
	processed, processed_at, processing_error, created_at`

type suggestionStore struct {
	pool *pgxpool.Pool
}

// NewSuggestionStore creates a pgx-backed store.SuggestionStore.
func NewSuggestionStore(pool *pgxpool.Pool) store.SuggestionStore {
	return &suggestionStore{pool: pool}
}

func (s *suggestionStore) GetByID(ctx context.Context, id string) (*models.Suggestion, error) {
	query := fmt.Sprintf(`SELECT %s FROM channel_suggestions WHERE id = $1`, suggestionColumns)

	sg := &models.Suggestion{}
	err := s.pool.QueryRow(ctx, query, id).Scan(suggestionFields(sg)...)
	if err != nil {
		return nil, db.WrapError(err, "get suggestion by id")
	}

	return sg, nil
}

func (s *suggestionStore) List(ctx context.Context, onlyUnprocessed bool) ([]*models.Suggestion, error) {
	query := fmt.Sprintf(`SELECT %s FROM channel_suggestions`, suggestionColumns)
	if onlyUnprocessed {
		query += ` WHERE processed = false`
	}
	query += ` ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, db.WrapError(err, "list suggestions")
	}
	defer rows.Close()

	return scanSuggestions(rows)
}

func (s *suggestionStore) Create(ctx context.Context, sg *models.Suggestion) error {
	query := `
		INSERT INTO channel_suggestions (id, url, url_hash, extra_info, notes, user_id,
			processed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := s.pool.QueryRow(ctx, query,
		sg.ID,
		sg.URL,
		sg.URLHash,
		sg.ExtraInfo,
		sg.Notes,
		sg.UserID,
		sg.Processed,
		sg.CreatedAt,
	).Scan(&sg.CreatedAt)

	if err != nil {
		return db.WrapError(err, "create suggestion")
	}

	return nil
}

func (s *suggestionStore) MarkProcessed(ctx context.Context, id string, processingError string) error {
	query := `
		UPDATE channel_suggestions
		SET processed = true,
		    processed_at = now(),
		    processing_error = NULLIF($1, '')
		WHERE id = $2
	`

	result, err := s.pool.Exec(ctx, query, processingError, id)
	if err != nil {
		return db.WrapError(err, "mark suggestion processed")
	}

	if result.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "mark suggestion processed")
	}

	return nil
}

func suggestionFields(sg *models.Suggestion) []interface{} {
	return []interface{}{
		&sg.ID,
		&sg.URL,
		&sg.URLHash,
		&sg.ExtraInfo,
		&sg.Notes,
		&sg.UserID,
		&sg.Processed,
		&sg.ProcessedAt,
		&sg.ProcessingError,
		&sg.CreatedAt,
	}
}

func scanSuggestions(rows pgx.Rows) ([]*models.Suggestion, error) {
	var suggestions []*models.Suggestion

	for rows.Next() {
		sg := &models.Suggestion{}
		if err := rows.Scan(suggestionFields(sg)...); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		suggestions = append(suggestions, sg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suggestions: %w", err)
	}

	return suggestions, nil
}
