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

const reviewColumns = `id, entity_id, entity_type, user_id, rating, review_text,
	likes, dislikes, created_at, updated_at`

type reviewStore struct {
	pool *pgxpool.Pool
}

// NewReviewStore creates a pgx-backed store.ReviewStore.
func NewReviewStore(pool *pgxpool.Pool) store.ReviewStore {
	return &reviewStore{pool: pool}
}

func (s *reviewStore) GetByID(ctx context.Context, id string) (*models.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE id = $1`, reviewColumns)

	r := &models.Review{}
	err := s.pool.QueryRow(ctx, query, id).Scan(reviewFields(r)...)
	if err != nil {
		return nil, db.WrapError(err, "get review by id")
	}

	return r, nil
}

func (s *reviewStore) ListByEntity(ctx context.Context, entityID string, entityType models.EntityType) ([]*models.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM reviews
		WHERE entity_id = $1 AND entity_type = $2
		ORDER BY created_at DESC
	`, reviewColumns)

	rows, err := s.pool.Query(ctx, query, entityID, string(entityType))
	if err != nil {
		return nil, db.WrapError(err, "list reviews by entity")
	}
	defer rows.Close()

	return scanReviews(rows)
}

func (s *reviewStore) Create(ctx context.Context, r *models.Review) error {
	query := `
		INSERT INTO reviews (id, entity_id, entity_type, user_id, rating, review_text,
			likes, dislikes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := s.pool.QueryRow(ctx, query,
		r.ID,
		r.EntityID,
		string(r.EntityType),
		r.UserID,
		r.Rating,
		r.ReviewText,
		r.Likes,
		r.Dislikes,
		r.CreatedAt,
		r.UpdatedAt,
	).Scan(&r.CreatedAt, &r.UpdatedAt)

	if err != nil {
		return db.WrapError(err, "create review")
	}

	return nil
}

func (s *reviewStore) UpdateReactions(ctx context.Context, id string, likes, dislikes []string) error {
	query := `UPDATE reviews SET likes = $1, dislikes = $2, updated_at = now() WHERE id = $3`

	result, err := s.pool.Exec(ctx, query, likes, dislikes, id)
	if err != nil {
		return db.WrapError(err, "update review reactions")
	}

	if result.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "update review reactions")
	}

	return nil
}

func reviewFields(r *models.Review) []interface{} {
	return []interface{}{
		&r.ID,
		&r.EntityID,
		&r.EntityType,
		&r.UserID,
		&r.Rating,
		&r.ReviewText,
		&r.Likes,
		&r.Dislikes,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}

func scanReviews(rows pgx.Rows) ([]*models.Review, error) {
	var reviews []*models.Review

	for rows.Next() {
		r := &models.Review{}
		if err := rows.Scan(reviewFields(r)...); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}
