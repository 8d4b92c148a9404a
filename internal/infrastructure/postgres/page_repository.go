package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
	"github.com/jhoicas/sitebuilder-api/internal/domain/repository"
)

var _ repository.PageRepository = (*PageRepo)(nil)

// PageRepo implementación del puerto PageRepository sobre PostgreSQL.
type PageRepo struct {
	q Querier
}

// NewPageRepository construye el adaptador de persistencia para páginas.
func NewPageRepository(q Querier) *PageRepo {
	return &PageRepo{q: q}
}

// Create inserta una página (la home por defecto al crear un sitio).
func (r *PageRepo) Create(ctx context.Context, p *entity.Page) error {
	query := `
		INSERT INTO pages (id, site_id, path, title, content_html, status, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SiteID, p.Path, p.Title, p.ContentHTML, p.Status, p.UpdatedBy, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert page: %w", err)
	}
	return nil
}

// PublishBySite marca como published todas las páginas draft del sitio y devuelve
// cuántas cambiaron de estado.
func (r *PageRepo) PublishBySite(ctx context.Context, siteID, updatedBy string) (int, error) {
	query := `
		UPDATE pages SET status = 'published', updated_by = $2, updated_at = now()
		WHERE site_id = $1 AND status = 'draft'`
	tag, err := r.q.Exec(ctx, query, siteID, updatedBy)
	if err != nil {
		return 0, fmt.Errorf("publish pages: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// RecentBySite lista las páginas del sitio editadas más recientemente, con el
// nombre del último editor (vista admin).
func (r *PageRepo) RecentBySite(ctx context.Context, siteID string, limit int) ([]repository.PageSummary, error) {
	query := `
		SELECT p.id, p.site_id, p.path, p.title, p.content_html, p.status, p.updated_by, p.updated_at,
			COALESCE(u.name, '') AS updated_by_name
		FROM pages p
		LEFT JOIN users u ON u.id = p.updated_by
		WHERE p.site_id = $1
		ORDER BY p.updated_at DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, siteID, limit)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var list []repository.PageSummary
	for rows.Next() {
		var p repository.PageSummary
		if err := rows.Scan(
			&p.ID, &p.SiteID, &p.Path, &p.Title, &p.ContentHTML, &p.Status,
			&p.UpdatedBy, &p.UpdatedAt, &p.UpdatedByName,
		); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
