package dto

// DashboardStats conteos globales de la plataforma.
type DashboardStats struct {
	ActiveUsers     int `json:"active_users"`
	SuspendedUsers  int `json:"suspended_users"`
	TotalSites      int `json:"total_sites"`
	FreeSites       int `json:"free_sites"`
	ProSites        int `json:"pro_sites"`
	EnterpriseSites int `json:"enterprise_sites"`
	PublishedPages  int `json:"published_pages"`
	RecentPublishes int `json:"recent_publishes"`
}

// DashboardResponse salida de GET /admin/dashboard.
type DashboardResponse struct {
	Stats DashboardStats `json:"stats"`
}

// DailySignupsItem punto de la serie diaria de registros.
type DailySignupsItem struct {
	Date    string `json:"date"`
	Signups int    `json:"signups"`
}

// UserStatsResponse salida de GET /admin/stats/users.
type UserStatsResponse struct {
	Stats  []DailySignupsItem `json:"stats"`
	Period string             `json:"period"`
}

// DailySitesItem punto de la serie diaria de creaciones de sitios por plan.
type DailySitesItem struct {
	Date    string `json:"date"`
	Plan    string `json:"plan"`
	Created int    `json:"created"`
}

// SiteStatsSeriesResponse salida de GET /admin/stats/sites.
type SiteStatsSeriesResponse struct {
	Stats  []DailySitesItem `json:"stats"`
	Period string           `json:"period"`
}

// DailyPublishItem punto de la serie diaria de publish jobs por scope y status.
type DailyPublishItem struct {
	Date   string `json:"date"`
	Scope  string `json:"scope"`
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// PublishStatsResponse salida de GET /admin/stats/publishing.
type PublishStatsResponse struct {
	Stats  []DailyPublishItem `json:"stats"`
	Period string             `json:"period"`
}
