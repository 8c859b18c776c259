package postgres

import (
	"context"

	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VisitRepository struct {
	db *pgxpool.Pool
}

func NewVisitRepository(db *pgxpool.Pool) *VisitRepository {
	return &VisitRepository{db: db}
}

// Record appends one visit row. Rows are immutable once written; geo
// enrichment happens downstream of the raw capture.
func (r *VisitRepository) Record(ctx context.Context, visit *domain.VisitRequest) error {
	query := `
		INSERT INTO url_visits (url_id, ip_address, user_agent, referer, device_type)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		visit.URLID,
		visit.IPAddress,
		visit.UserAgent,
		visit.Referer,
		visit.DeviceType,
	)
	return err
}
