package repository

import "context"

// DashboardStats conteos globales para el dashboard de administración.
type DashboardStats struct {
	ActiveUsers     int
	SuspendedUsers  int
	TotalSites      int
	FreeSites       int
	ProSites        int
	EnterpriseSites int
	PublishedPages  int
	RecentPublishes int // publish jobs de los últimos 7 días
}

// DailySignups serie diaria de registros de usuarios.
type DailySignups struct {
	Date    string
	Signups int
}

// DailySiteCreations serie diaria de creaciones de sitios por plan.
type DailySiteCreations struct {
	Date    string
	Plan    string
	Created int
}

// DailyPublishes serie diaria de publish jobs por scope y status.
type DailyPublishes struct {
	Date   string
	Scope  string
	Status string
	Count  int
}

// StatsRepository consultas de solo lectura para la consola de administración.
type StatsRepository interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	SignupsByDay(ctx context.Context, days int) ([]DailySignups, error)
	SiteCreationsByDay(ctx context.Context, days int) ([]DailySiteCreations, error)
	PublishesByDay(ctx context.Context, days int) ([]DailyPublishes, error)
}
