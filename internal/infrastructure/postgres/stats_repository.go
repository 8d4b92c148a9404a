package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sitebuilder-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas agregadas de solo lectura para la consola admin.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// Dashboard conteos globales de la plataforma en una sola consulta.
func (r *StatsRepo) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE status = 'active'),
			(SELECT COUNT(*) FROM users WHERE status = 'suspended'),
			(SELECT COUNT(*) FROM sites),
			(SELECT COUNT(*) FROM sites WHERE plan = 'free'),
			(SELECT COUNT(*) FROM sites WHERE plan = 'pro'),
			(SELECT COUNT(*) FROM sites WHERE plan = 'enterprise'),
			(SELECT COUNT(*) FROM pages WHERE status = 'published'),
			(SELECT COUNT(*) FROM publish_jobs WHERE created_at >= now() - INTERVAL '7 days')`
	var st repository.DashboardStats
	err := r.q.QueryRow(ctx, query).Scan(
		&st.ActiveUsers, &st.SuspendedUsers,
		&st.TotalSites, &st.FreeSites, &st.ProSites, &st.EnterpriseSites,
		&st.PublishedPages, &st.RecentPublishes,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &st, nil
}

// SignupsByDay serie diaria de registros de usuarios en los últimos N días.
func (r *StatsRepo) SignupsByDay(ctx context.Context, days int) ([]repository.DailySignups, error) {
	query := `
		SELECT to_char(created_at::date, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM users
		WHERE created_at >= CURRENT_DATE - $1 * INTERVAL '1 day'
		GROUP BY day
		ORDER BY day`
	rows, err := r.q.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("signups by day: %w", err)
	}
	defer rows.Close()

	var list []repository.DailySignups
	for rows.Next() {
		var d repository.DailySignups
		if err := rows.Scan(&d.Date, &d.Signups); err != nil {
			return nil, fmt.Errorf("scan signups: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// SiteCreationsByDay serie diaria de creaciones de sitios por plan en los últimos N días.
func (r *StatsRepo) SiteCreationsByDay(ctx context.Context, days int) ([]repository.DailySiteCreations, error) {
	query := `
		SELECT to_char(created_at::date, 'YYYY-MM-DD') AS day, plan, COUNT(*)
		FROM sites
		WHERE created_at >= CURRENT_DATE - $1 * INTERVAL '1 day'
		GROUP BY day, plan
		ORDER BY day, plan`
	rows, err := r.q.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("site creations by day: %w", err)
	}
	defer rows.Close()

	var list []repository.DailySiteCreations
	for rows.Next() {
		var d repository.DailySiteCreations
		if err := rows.Scan(&d.Date, &d.Plan, &d.Created); err != nil {
			return nil, fmt.Errorf("scan site creations: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// PublishesByDay serie diaria de publish jobs por scope y status en los últimos N días.
func (r *StatsRepo) PublishesByDay(ctx context.Context, days int) ([]repository.DailyPublishes, error) {
	query := `
		SELECT to_char(created_at::date, 'YYYY-MM-DD') AS day, scope, status, COUNT(*)
		FROM publish_jobs
		WHERE created_at >= CURRENT_DATE - $1 * INTERVAL '1 day'
		GROUP BY day, scope, status
		ORDER BY day, scope, status`
	rows, err := r.q.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("publishes by day: %w", err)
	}
	defer rows.Close()

	var list []repository.DailyPublishes
	for rows.Next() {
		var d repository.DailyPublishes
		if err := rows.Scan(&d.Date, &d.Scope, &d.Status, &d.Count); err != nil {
			return nil, fmt.Errorf("scan publishes: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
