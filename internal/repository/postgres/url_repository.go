package postgres

import (
	"context"
	"time"

	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type URLRepository struct {
	db *pgxpool.Pool
}

func NewURLRepository(db *pgxpool.Pool) *URLRepository {
	return &URLRepository{db: db}
}

func (r *URLRepository) Create(ctx context.Context, url *domain.ShortURL) error {
	query := `
		INSERT INTO urls (short_code, original_url, title, description, is_active, expires_at, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	return r.db.QueryRow(ctx, query,
		url.ShortCode,
		url.OriginalURL,
		url.Title,
		url.Description,
		url.IsActive,
		url.ExpiresAt,
		url.OwnerID,
	).Scan(&url.ID, &url.CreatedAt)
}

func (r *URLRepository) GetByCode(ctx context.Context, shortCode string) (*domain.ShortURL, error) {
	query := `
		SELECT id, short_code, original_url, title, description, is_active,
		       created_at, expires_at, visit_count, last_visited, owner_id
		FROM urls
		WHERE short_code = $1
	`

	return r.scanURL(r.db.QueryRow(ctx, query, shortCode))
}

func (r *URLRepository) CodeExists(ctx context.Context, shortCode string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM urls WHERE short_code = $1)`
	if err := r.db.QueryRow(ctx, query, shortCode).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *URLRepository) GetByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.ShortURL, error) {
	query := `
		SELECT id, short_code, original_url, title, description, is_active,
		       created_at, expires_at, visit_count, last_visited, owner_id
		FROM urls
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []domain.ShortURL
	for rows.Next() {
		var url domain.ShortURL
		if err := rows.Scan(
			&url.ID,
			&url.ShortCode,
			&url.OriginalURL,
			&url.Title,
			&url.Description,
			&url.IsActive,
			&url.CreatedAt,
			&url.ExpiresAt,
			&url.VisitCount,
			&url.LastVisited,
			&url.OwnerID,
		); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, rows.Err()
}

// IncrementVisits applies the visit counter update atomically in the store,
// so concurrent redirects to the same link never lose counts.
func (r *URLRepository) IncrementVisits(ctx context.Context, id int64) (int64, time.Time, error) {
	query := `
		UPDATE urls
		SET visit_count = visit_count + 1, last_visited = NOW()
		WHERE id = $1
		RETURNING visit_count, last_visited
	`

	var count int64
	var lastVisited time.Time
	if err := r.db.QueryRow(ctx, query, id).Scan(&count, &lastVisited); err != nil {
		return 0, time.Time{}, err
	}
	return count, lastVisited, nil
}

// Deactivate soft-deletes an owner's link and returns its short code so the
// caller can invalidate the cache entry.
func (r *URLRepository) Deactivate(ctx context.Context, id, ownerID int64) (string, error) {
	query := `
		UPDATE urls
		SET is_active = false
		WHERE id = $1 AND owner_id = $2
		RETURNING short_code
	`

	var shortCode string
	if err := r.db.QueryRow(ctx, query, id, ownerID).Scan(&shortCode); err != nil {
		return "", err
	}
	return shortCode, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *URLRepository) scanURL(row rowScanner) (*domain.ShortURL, error) {
	var url domain.ShortURL
	err := row.Scan(
		&url.ID,
		&url.ShortCode,
		&url.OriginalURL,
		&url.Title,
		&url.Description,
		&url.IsActive,
		&url.CreatedAt,
		&url.ExpiresAt,
		&url.VisitCount,
		&url.LastVisited,
		&url.OwnerID,
	)
	if err != nil {
		return nil, err
	}
	return &url, nil
}
