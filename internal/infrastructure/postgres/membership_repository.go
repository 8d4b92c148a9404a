package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
	"github.com/jhoicas/sitebuilder-api/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo implementación del puerto MembershipRepository sobre PostgreSQL.
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository construye el adaptador de persistencia para membresías.
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

// Create inserta una membresía (site, user, role).
func (r *MembershipRepo) Create(ctx context.Context, m *entity.SiteUser) error {
	query := `
		INSERT INTO site_users (site_id, user_id, role, added_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, m.SiteID, m.UserID, m.Role, m.AddedAt)
	if err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// Upsert inserta la membresía o, si el par (site, user) ya existe, actualiza su rol.
// El transfer lo usa para el nuevo owner, que puede o no ser ya miembro.
func (r *MembershipRepo) Upsert(ctx context.Context, m *entity.SiteUser) error {
	query := `
		INSERT INTO site_users (site_id, user_id, role, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (site_id, user_id) DO UPDATE SET role = EXCLUDED.role`
	_, err := r.q.Exec(ctx, query, m.SiteID, m.UserID, m.Role, m.AddedAt)
	if err != nil {
		return fmt.Errorf("upsert membership: %w", err)
	}
	return nil
}

// UpdateRole cambia el rol de una membresía existente.
func (r *MembershipRepo) UpdateRole(ctx context.Context, siteID, userID, role string) error {
	query := `UPDATE site_users SET role = $3 WHERE site_id = $1 AND user_id = $2`
	_, err := r.q.Exec(ctx, query, siteID, userID, role)
	if err != nil {
		return fmt.Errorf("update membership role: %w", err)
	}
	return nil
}

// ListBySite lista las membresías de un sitio con datos del usuario, owner primero.
func (r *MembershipRepo) ListBySite(ctx context.Context, siteID string) ([]repository.SiteMember, error) {
	query := `
		SELECT su.site_id, su.user_id, su.role, su.added_at, u.email, u.name, u.status
		FROM site_users su
		JOIN users u ON u.id = su.user_id
		WHERE su.site_id = $1
		ORDER BY CASE su.role WHEN 'owner' THEN 0 WHEN 'admin' THEN 1 ELSE 2 END, su.added_at`
	rows, err := r.q.Query(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var list []repository.SiteMember
	for rows.Next() {
		var m repository.SiteMember
		if err := rows.Scan(
			&m.SiteID, &m.UserID, &m.Role, &m.AddedAt, &m.Email, &m.Name, &m.Status,
		); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
