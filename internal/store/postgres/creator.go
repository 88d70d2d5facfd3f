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

const creatorColumns = `id, youtube_channel_id, name, bio, genre, country, state,
	profile_picture_url, subscriber_count, total_views, average_rating, insights,
	created_at, updated_at`

type creatorStore struct {
	pool *pgxpool.Pool
}

// NewCreatorStore creates a pgx-backed store.CreatorStore.
func NewCreatorStore(pool *pgxpool.Pool) store.CreatorStore {
	return &creatorStore{pool: pool}
}

func (s *creatorStore) GetAll(ctx context.Context) ([]*models.Creator, error) {
	query := fmt.Sprintf(`SELECT %s FROM youtubers ORDER BY name`, creatorColumns)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, db.WrapError(err, "get all creators")
	}
	defer rows.Close()

	return scanCreators(rows)
}

func (s *creatorStore) GetByID(ctx context.Context, id string) (*models.Creator, error) {
	query := fmt.Sprintf(`SELECT %s FROM youtubers WHERE id = $1`, creatorColumns)

	c := &models.Creator{}
	err := s.pool.QueryRow(ctx, query, id).Scan(creatorFields(c)...)
	if err != nil {
		return nil, db.WrapError(err, "get creator by id")
	}

	return c, nil
}

func (s *creatorStore) SearchByName(ctx context.Context, nameSubstring string) ([]*models.Creator, error) {
	query := fmt.Sprintf(`SELECT %s FROM youtubers WHERE name ILIKE $1 ORDER BY name`, creatorColumns)

	rows, err := s.pool.Query(ctx, query, "%"+nameSubstring+"%")
	if err != nil {
		return nil, db.WrapError(err, "search creators by name")
	}
	defer rows.Close()

	return scanCreators(rows)
}

func (s *creatorStore) FindByLocation(ctx context.Context, country, state string) ([]*models.Creator, error) {
	args := []interface{}{country}
	whereClause := "country = $1"
	if state != "" {
		whereClause += " AND state = $2"
		args = append(args, state)
	}

	query := fmt.Sprintf(`SELECT %s FROM youtubers WHERE %s ORDER BY name`, creatorColumns, whereClause)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, db.WrapError(err, "find creators by location")
	}
	defer rows.Close()

	return scanCreators(rows)
}

func (s *creatorStore) Create(ctx context.Context, c *models.Creator) error {
	query := `
		INSERT INTO youtubers (id, youtube_channel_id, name, bio, genre, country, state,
			profile_picture_url, subscriber_count, total_views, average_rating, insights,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at
	`

	err := s.pool.QueryRow(ctx, query,
		c.ID,
		c.YouTubeChannelID,
		c.Name,
		c.Bio,
		c.Genre,
		c.Country,
		c.State,
		c.ProfilePictureURL,
		c.SubscriberCount,
		c.TotalViews,
		c.AverageRating,
		c.Insights,
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return db.WrapError(err, "create creator")
	}

	return nil
}

func (s *creatorStore) Upsert(ctx context.Context, c *models.Creator) error {
	query := `
		INSERT INTO youtubers (id, youtube_channel_id, name, bio, genre, country, state,
			profile_picture_url, subscriber_count, total_views, average_rating, insights,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (youtube_channel_id) DO UPDATE
		SET name = EXCLUDED.name,
		    bio = EXCLUDED.bio,
		    country = EXCLUDED.country,
		    profile_picture_url = EXCLUDED.profile_picture_url,
		    subscriber_count = EXCLUDED.subscriber_count,
		    total_views = EXCLUDED.total_views,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`

	err := s.pool.QueryRow(ctx, query,
		c.ID,
		c.YouTubeChannelID,
		c.Name,
		c.Bio,
		c.Genre,
		c.Country,
		c.State,
		c.ProfilePictureURL,
		c.SubscriberCount,
		c.TotalViews,
		c.AverageRating,
		c.Insights,
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return db.WrapError(err, "upsert creator")
	}

	return nil
}

func (s *creatorStore) UpdateRating(ctx context.Context, id string, rating float64) error {
	query := `UPDATE youtubers SET average_rating = $1, updated_at = now() WHERE id = $2`

	result, err := s.pool.Exec(ctx, query, rating, id)
	if err != nil {
		return db.WrapError(err, "update creator rating")
	}

	if result.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "update creator rating")
	}

	return nil
}

func (s *creatorStore) UpdateInsights(ctx context.Context, id string, insights string) error {
	query := `UPDATE youtubers SET insights = $1, updated_at = now() WHERE id = $2`

	result, err := s.pool.Exec(ctx, query, insights, id)
	if err != nil {
		return db.WrapError(err, "update creator insights")
	}

	if result.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "update creator insights")
	}

	return nil
}

func creatorFields(c *models.Creator) []interface{} {
	return []interface{}{
		&c.ID,
		&c.YouTubeChannelID,
		&c.Name,
		&c.Bio,
		&c.Genre,
		&c.Country,
		&c.State,
		&c.ProfilePictureURL,
		&c.SubscriberCount,
		&c.TotalViews,
		&c.AverageRating,
		&c.Insights,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

// Helper function to scan multiple creators from query results
func scanCreators(rows pgx.Rows) ([]*models.Creator, error) {
	var creators []*models.Creator

	for rows.Next() {
		c := &models.Creator{}
		if err := rows.Scan(creatorFields(c)...); err != nil {
			return nil, fmt.Errorf("scan creator: %w", err)
		}
		creators = append(creators, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate creators: %w", err)
	}

	return creators, nil
}
