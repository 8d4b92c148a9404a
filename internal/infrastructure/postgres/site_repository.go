package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sitebuilder-api/internal/domain"
	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
	"github.com/jhoicas/sitebuilder-api/internal/domain/repository"
)

var _ repository.SiteRepository = (*SiteRepo)(nil)

// siteSortColumns allow-list de sortBy para el listado admin de sitios.
var siteSortColumns = map[string]string{
	"created_at": "s.created_at",
	"name":       "s.name",
	"subdomain":  "s.subdomain",
	"plan":       "s.plan",
	"owner_email": "u.email",
}

const siteColumns = `s.id, s.owner_user_id, s.name, s.subdomain, s.plan, s.status,
	s.quota_pages, s.quota_assets_mb, s.created_at, s.updated_at`

// SiteRepo implementación del puerto SiteRepository sobre PostgreSQL.
type SiteRepo struct {
	q Querier
}

// NewSiteRepository construye el adaptador de persistencia para sitios.
func NewSiteRepository(q Querier) *SiteRepo {
	return &SiteRepo{q: q}
}

// Create persiste un nuevo sitio. El UNIQUE de subdomain mapea a ErrSubdomainTaken:
// aunque el caso de uso pre-verifica, el constraint es la fuente de verdad ante carreras.
func (r *SiteRepo) Create(ctx context.Context, site *entity.Site) error {
	query := `
		INSERT INTO sites (id, owner_user_id, name, subdomain, plan, status,
			quota_pages, quota_assets_mb, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		site.ID, site.OwnerUserID, site.Name, site.Subdomain, site.Plan, site.Status,
		site.QuotaPages, site.QuotaAssetsMB, site.CreatedAt, site.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSubdomainTaken
		}
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

// GetByID obtiene un sitio por ID. nil si no existe.
func (r *SiteRepo) GetByID(ctx context.Context, id string) (*entity.Site, error) {
	return r.findOne(ctx, `WHERE s.id = $1`, id)
}

// GetBySubdomain obtiene un sitio por subdominio. nil si no existe.
func (r *SiteRepo) GetBySubdomain(ctx context.Context, subdomain string) (*entity.Site, error) {
	return r.findOne(ctx, `WHERE s.subdomain = $1`, subdomain)
}

func (r *SiteRepo) findOne(ctx context.Context, where string, arg any) (*entity.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites s ` + where + ` LIMIT 1`
	var s entity.Site
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.OwnerUserID, &s.Name, &s.Subdomain, &s.Plan, &s.Status,
		&s.QuotaPages, &s.QuotaAssetsMB, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return &s, nil
}

// GetForUser devuelve el sitio solo si userID es owner o miembro; nil si no hay acceso.
// El rol reportado para el owner siempre es owner aunque la membresía diga otra cosa.
func (r *SiteRepo) GetForUser(ctx context.Context, siteID, userID string) (*repository.SiteWithRole, error) {
	query := `
		SELECT ` + siteColumns + `,
			CASE WHEN s.owner_user_id = $2 THEN 'owner' ELSE COALESCE(su.role, '') END AS role,
			(SELECT COUNT(*) FROM pages WHERE site_id = s.id AND status = 'published') AS published_pages,
			(SELECT COUNT(*) FROM pages WHERE site_id = s.id) AS total_pages
		FROM sites s
		LEFT JOIN site_users su ON su.site_id = s.id AND su.user_id = $2
		WHERE s.id = $1 AND (s.owner_user_id = $2 OR su.user_id IS NOT NULL)
		LIMIT 1`
	var row repository.SiteWithRole
	err := r.q.QueryRow(ctx, query, siteID, userID).Scan(
		&row.ID, &row.OwnerUserID, &row.Name, &row.Subdomain, &row.Plan, &row.Status,
		&row.QuotaPages, &row.QuotaAssetsMB, &row.CreatedAt, &row.UpdatedAt,
		&row.Role, &row.PublishedPages, &row.TotalPages,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site for user: %w", err)
	}
	return &row, nil
}

// ListForUser lista los sitios donde el usuario es owner o miembro, más recientes primero.
func (r *SiteRepo) ListForUser(ctx context.Context, userID string) ([]repository.SiteWithRole, error) {
	query := `
		SELECT ` + siteColumns + `,
			CASE WHEN s.owner_user_id = $1 THEN 'owner' ELSE COALESCE(su.role, '') END AS role,
			(SELECT COUNT(*) FROM pages WHERE site_id = s.id AND status = 'published') AS published_pages,
			(SELECT COUNT(*) FROM pages WHERE site_id = s.id) AS total_pages
		FROM sites s
		LEFT JOIN site_users su ON su.site_id = s.id AND su.user_id = $1
		WHERE s.owner_user_id = $1 OR su.user_id IS NOT NULL
		ORDER BY s.created_at DESC`
	return r.listWithRole(ctx, query, userID)
}

// ListByOwner lista los sitios cuyo owner es el usuario dado (detalle admin de usuario).
func (r *SiteRepo) ListByOwner(ctx context.Context, userID string) ([]repository.SiteWithRole, error) {
	query := `
		SELECT ` + siteColumns + `,
			'owner' AS role,
			(SELECT COUNT(*) FROM pages WHERE site_id = s.id AND status = 'published') AS published_pages,
			(SELECT COUNT(*) FROM pages WHERE site_id = s.id) AS total_pages
		FROM sites s
		WHERE s.owner_user_id = $1
		ORDER BY s.created_at DESC`
	return r.listWithRole(ctx, query, userID)
}

func (r *SiteRepo) listWithRole(ctx context.Context, query string, args ...any) ([]repository.SiteWithRole, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	var list []repository.SiteWithRole
	for rows.Next() {
		var row repository.SiteWithRole
		if err := rows.Scan(
			&row.ID, &row.OwnerUserID, &row.Name, &row.Subdomain, &row.Plan, &row.Status,
			&row.QuotaPages, &row.QuotaAssetsMB, &row.CreatedAt, &row.UpdatedAt,
			&row.Role, &row.PublishedPages, &row.TotalPages,
		); err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CountByOwner cuenta los sitios que posee el usuario (chequeo de límite por plan).
func (r *SiteRepo) CountByOwner(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM sites WHERE owner_user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sites by owner: %w", err)
	}
	return count, nil
}

// Update actualiza los campos mutables del sitio (name, plan, status, cuotas).
func (r *SiteRepo) Update(ctx context.Context, site *entity.Site) error {
	query := `
		UPDATE sites SET name = $2, plan = $3, status = $4,
			quota_pages = $5, quota_assets_mb = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		site.ID, site.Name, site.Plan, site.Status,
		site.QuotaPages, site.QuotaAssetsMB, site.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update site: %w", err)
	}
	return nil
}

// UpdateOwner cambia el owner_user_id del sitio (parte del transfer transaccional).
func (r *SiteRepo) UpdateOwner(ctx context.Context, siteID, newOwnerID string) error {
	query := `UPDATE sites SET owner_user_id = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, siteID, newOwnerID)
	if err != nil {
		return fmt.Errorf("update site owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSiteNotFound
	}
	return nil
}

// Delete elimina el sitio. Las páginas, membresías, assets y jobs caen por CASCADE.
func (r *SiteRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSiteNotFound
	}
	return nil
}

// List lista sitios con datos del owner para la consola admin: búsqueda por
// name/subdomain/email del owner, filtro por plan, orden y paginación.
func (r *SiteRepo) List(ctx context.Context, f repository.SiteFilter) ([]repository.SiteWithOwner, int, error) {
	where := ` WHERE 1=1`
	var args []any
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(` AND (s.name ILIKE $%d OR s.subdomain ILIKE $%d OR u.email ILIKE $%d)`,
			len(args), len(args), len(args))
	}
	if f.Plan != "" {
		args = append(args, f.Plan)
		where += fmt.Sprintf(` AND s.plan = $%d`, len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM sites s JOIN users u ON u.id = s.owner_user_id` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sites: %w", err)
	}

	orderBy := sortColumn(siteSortColumns, f.SortBy, "s.created_at")
	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := fmt.Sprintf(`
		SELECT `+siteColumns+`,
			u.email, u.name, u.status,
			(SELECT COUNT(*) FROM pages WHERE site_id = s.id AND status = 'published') AS published_pages,
			(SELECT COUNT(*) FROM pages WHERE site_id = s.id) AS total_pages,
			(SELECT COUNT(*) FROM assets WHERE site_id = s.id) AS total_assets,
			COALESCE((SELECT SUM(size_bytes) FROM assets WHERE site_id = s.id), 0) AS total_size_bytes,
			(SELECT COUNT(*) FROM site_users WHERE site_id = s.id) AS members_count
		FROM sites s
		JOIN users u ON u.id = s.owner_user_id%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		where, orderBy, sortDirection(f.SortOrder), len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sites admin: %w", err)
	}
	defer rows.Close()

	var list []repository.SiteWithOwner
	for rows.Next() {
		var row repository.SiteWithOwner
		if err := rows.Scan(
			&row.ID, &row.OwnerUserID, &row.Name, &row.Subdomain, &row.Plan, &row.Status,
			&row.QuotaPages, &row.QuotaAssetsMB, &row.CreatedAt, &row.UpdatedAt,
			&row.OwnerEmail, &row.OwnerName, &row.OwnerStatus,
			&row.PublishedPages, &row.TotalPages, &row.TotalAssets, &row.TotalSizeBytes,
			&row.MembersCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan site admin: %w", err)
		}
		list = append(list, row)
	}
	return list, total, rows.Err()
}

// GetWithOwner obtiene un sitio con datos del owner y agregados. nil si no existe.
func (r *SiteRepo) GetWithOwner(ctx context.Context, id string) (*repository.SiteWithOwner, error) {
	query := `
		SELECT ` + siteColumns + `,
			u.email, u.name, u.status,
			(SELECT COUNT(*) FROM pages WHERE site_id = s.id AND status = 'published') AS published_pages,
			(SELECT COUNT(*) FROM pages WHERE site_id = s.id) AS total_pages,
			(SELECT COUNT(*) FROM assets WHERE site_id = s.id) AS total_assets,
			COALESCE((SELECT SUM(size_bytes) FROM assets WHERE site_id = s.id), 0) AS total_size_bytes,
			(SELECT COUNT(*) FROM site_users WHERE site_id = s.id) AS members_count
		FROM sites s
		JOIN users u ON u.id = s.owner_user_id
		WHERE s.id = $1
		LIMIT 1`
	var row repository.SiteWithOwner
	err := r.q.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.OwnerUserID, &row.Name, &row.Subdomain, &row.Plan, &row.Status,
		&row.QuotaPages, &row.QuotaAssetsMB, &row.CreatedAt, &row.UpdatedAt,
		&row.OwnerEmail, &row.OwnerName, &row.OwnerStatus,
		&row.PublishedPages, &row.TotalPages, &row.TotalAssets, &row.TotalSizeBytes,
		&row.MembersCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site with owner: %w", err)
	}
	return &row, nil
}

// Stats agregados de páginas y assets de un sitio.
func (r *SiteRepo) Stats(ctx context.Context, siteID string) (*repository.SiteStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM pages WHERE site_id = $1 AND status = 'published'),
			(SELECT COUNT(*) FROM pages WHERE site_id = $1),
			(SELECT COUNT(*) FROM assets WHERE site_id = $1),
			COALESCE((SELECT SUM(size_bytes) FROM assets WHERE site_id = $1), 0)`
	var st repository.SiteStats
	err := r.q.QueryRow(ctx, query, siteID).Scan(
		&st.PublishedPages, &st.TotalPages, &st.TotalAssets, &st.TotalSizeBytes,
	)
	if err != nil {
		return nil, fmt.Errorf("site stats: %w", err)
	}
	return &st, nil
}
