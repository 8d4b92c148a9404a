package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
	"github.com/jhoicas/sitebuilder-api/internal/domain/repository"
)

var _ repository.PublishJobRepository = (*PublishJobRepo)(nil)

// PublishJobRepo implementación del puerto PublishJobRepository sobre PostgreSQL.
type PublishJobRepo struct {
	q Querier
}

// NewPublishJobRepository construye el adaptador de persistencia para publish jobs.
func NewPublishJobRepository(q Querier) *PublishJobRepo {
	return &PublishJobRepo{q: q}
}

// Create registra un intento de publicación.
func (r *PublishJobRepo) Create(ctx context.Context, j *entity.PublishJob) error {
	query := `
		INSERT INTO publish_jobs (id, site_id, scope, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		j.ID, j.SiteID, j.Scope, j.Status, j.CreatedBy, j.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert publish job: %w", err)
	}
	return nil
}

// RecentBySite lista los publish jobs más recientes del sitio con el nombre de quien los lanzó.
func (r *PublishJobRepo) RecentBySite(ctx context.Context, siteID string, limit int) ([]repository.PublishJobSummary, error) {
	query := `
		SELECT j.id, j.site_id, j.scope, j.status, j.created_by, j.created_at,
			COALESCE(u.name, '') AS created_by_name
		FROM publish_jobs j
		LEFT JOIN users u ON u.id = j.created_by
		WHERE j.site_id = $1
		ORDER BY j.created_at DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, siteID, limit)
	if err != nil {
		return nil, fmt.Errorf("list publish jobs: %w", err)
	}
	defer rows.Close()

	var list []repository.PublishJobSummary
	for rows.Next() {
		var j repository.PublishJobSummary
		if err := rows.Scan(
			&j.ID, &j.SiteID, &j.Scope, &j.Status, &j.CreatedBy, &j.CreatedAt, &j.CreatedByName,
		); err != nil {
			return nil, fmt.Errorf("scan publish job: %w", err)
		}
		list = append(list, j)
	}
	return list, rows.Err()
}
