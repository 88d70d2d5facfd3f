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

const videoColumns = `id, youtuber_id, title, description, thumbnail_url, video_url,
	publish_date, views, average_rating, summary, created_at, updated_at`

type videoStore struct {
	pool *pgxpool.Pool
}

// NewVideoStore creates a pgx-backed store.VideoStore.
func NewVideoStore(pool *pgxpool.Pool) store.VideoStore {
	return &videoStore{pool: pool}
}

func (s *videoStore) GetAll(ctx context.Context) ([]*models.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos ORDER BY created_at DESC`, videoColumns)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, db.WrapError(err, "get all videos")
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (s *videoStore) GetByID(ctx context.Context, id string) (*models.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos WHERE id = $1`, videoColumns)

	v := &models.Video{}
	err := s.pool.QueryRow(ctx, query, id).Scan(videoFields(v)...)
	if err != nil {
		return nil, db.WrapError(err, "get video by id")
	}

	return v, nil
}

func (s *videoStore) ListByCreator(ctx context.Context, creatorID string) ([]*models.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos WHERE youtuber_id = $1 ORDER BY created_at DESC`, videoColumns)

	rows, err := s.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, db.WrapError(err, "list videos by creator")
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (s *videoStore) Create(ctx context.Context, v *models.Video) error {
	query := `
		INSERT INTO videos (id, youtuber_id, title, description, thumbnail_url, video_url,
			publish_date, views, average_rating, summary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := s.pool.QueryRow(ctx, query,
		v.ID,
		v.CreatorID,
		v.Title,
		v.Description,
		v.ThumbnailURL,
		v.VideoURL,
		v.PublishDate,
		v.Views,
		v.AverageRating,
		v.Summary,
		v.CreatedAt,
		v.UpdatedAt,
	).Scan(&v.CreatedAt, &v.UpdatedAt)

	if err != nil {
		return db.WrapError(err, "create video")
	}

	return nil
}

func (s *videoStore) UpdateRating(ctx context.Context, id string, rating float64) error {
	query := `UPDATE videos SET average_rating = $1, updated_at = now() WHERE id = $2`

	result, err := s.pool.Exec(ctx, query, rating, id)
	if err != nil {
		return db.WrapError(err, "update video rating")
	}

	if result.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "update video rating")
	}

	return nil
}

func (s *videoStore) UpdateSummary(ctx context.Context, id string, summary string) error {
	query := `UPDATE videos SET summary = $1, updated_at = now() WHERE id = $2`

	result, err := s.pool.Exec(ctx, query, summary, id)
	if err != nil {
		return db.WrapError(err, "update video summary")
	}

	if result.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "update video summary")
	}

	return nil
}

func videoFields(v *models.Video) []interface{} {
	return []interface{}{
		&v.ID,
		&v.CreatorID,
		&v.Title,
		&v.Description,
		&v.ThumbnailURL,
		&v.VideoURL,
		&v.PublishDate,
		&v.Views,
		&v.AverageRating,
		&v.Summary,
		&v.CreatedAt,
		&v.UpdatedAt,
	}
}

func scanVideos(rows pgx.Rows) ([]*models.Video, error) {
	var videos []*models.Video

	for rows.Next() {
		v := &models.Video{}
		if err := rows.Scan(videoFields(v)...); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}
