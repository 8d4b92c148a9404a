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

var _ repository.UserRepository = (*UserRepo)(nil)

// userSortColumns allow-list de sortBy para el listado admin de usuarios.
var userSortColumns = map[string]string{
	"created_at": "u.created_at",
	"email":      "u.email",
	"name":       "u.name",
	"status":     "u.status",
}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. El UNIQUE de email mapea a ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (match exacto, case-sensitive). nil si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepo) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, name, status, created_at, updated_at
		FROM users ` + where + ` LIMIT 1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Update actualiza name, status, password_hash y updated_at de un usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET name = $2, status = $3, password_hash = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Status, user.PasswordHash, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List lista usuarios con búsqueda, filtro por status, orden y paginación, junto con
// los conteos de sitios poseídos por plan. Devuelve la página y el total sin paginar.
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]repository.UserWithSiteCounts, int, error) {
	where := ` WHERE 1=1`
	var args []any
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(` AND (u.email ILIKE $%d OR u.name ILIKE $%d)`, len(args), len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(` AND u.status = $%d`, len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM users u` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	orderBy := sortColumn(userSortColumns, f.SortBy, "u.created_at")
	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := fmt.Sprintf(`
		SELECT u.id, u.email, u.password_hash, u.name, u.status, u.created_at, u.updated_at,
			(SELECT COUNT(*) FROM sites WHERE owner_user_id = u.id) AS sites_count,
			(SELECT COUNT(*) FROM sites WHERE owner_user_id = u.id AND plan = 'free') AS free_sites,
			(SELECT COUNT(*) FROM sites WHERE owner_user_id = u.id AND plan = 'pro') AS pro_sites,
			(SELECT COUNT(*) FROM sites WHERE owner_user_id = u.id AND plan = 'enterprise') AS enterprise_sites
		FROM users u%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		where, orderBy, sortDirection(f.SortOrder), len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []repository.UserWithSiteCounts
	for rows.Next() {
		var row repository.UserWithSiteCounts
		if err := rows.Scan(
			&row.ID, &row.Email, &row.PasswordHash, &row.Name, &row.Status,
			&row.CreatedAt, &row.UpdatedAt,
			&row.SitesCount, &row.FreeSites, &row.ProSites, &row.EnterpriseSites,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, row)
	}
	return list, total, rows.Err()
}
