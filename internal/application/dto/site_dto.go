package dto

import "time"

// CreateSiteRequest entrada para crear un sitio. Plan por defecto: free.
type CreateSiteRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Subdomain string `json:"subdomain" validate:"required,min=1,max=63,subdomain"`
	Plan      string `json:"plan" validate:"omitempty,oneof=free pro enterprise"`
}

// UpdateSiteRequest entrada para actualizar un sitio propio. Campos vacíos se ignoran.
type UpdateSiteRequest struct {
	Name string `json:"name" validate:"omitempty,min=1,max=200"`
	Plan string `json:"plan" validate:"omitempty,oneof=free pro enterprise"`
}

// SiteResponse salida de un sitio.
type SiteResponse struct {
	ID            string    `json:"id"`
	OwnerUserID   string    `json:"owner_user_id"`
	Name          string    `json:"name"`
	Subdomain     string    `json:"subdomain"`
	Plan          string    `json:"plan"`
	Status        string    `json:"status"`
	QuotaPages    int       `json:"quota_pages"`
	QuotaAssetsMB int       `json:"quota_assets_mb"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SiteListItem sitio en el listado del usuario: incluye su rol y conteos de páginas.
type SiteListItem struct {
	SiteResponse
	Role           string `json:"role,omitempty"`
	PublishedPages int    `json:"published_pages"`
	TotalPages     int    `json:"total_pages"`
}

// SiteListResponse salida de GET /sites.
type SiteListResponse struct {
	Sites []SiteListItem `json:"sites"`
}

// SiteStats agregados de recursos de un sitio.
type SiteStats struct {
	PublishedPages int   `json:"published_pages"`
	TotalPages     int   `json:"total_pages"`
	TotalAssets    int   `json:"total_assets"`
	TotalSizeBytes int64 `json:"total_size_bytes"`
}

// SiteDetail sitio con rol del solicitante y estadísticas.
type SiteDetail struct {
	SiteResponse
	Role  string    `json:"role,omitempty"`
	Stats SiteStats `json:"stats"`
}

// SiteDetailResponse salida de GET /sites/:id.
type SiteDetailResponse struct {
	Site SiteDetail `json:"site"`
}

// CreateSiteResponse salida de POST /sites.
type CreateSiteResponse struct {
	Message string       `json:"message"`
	Site    SiteResponse `json:"site"`
}

// PublishSiteResponse salida de POST /sites/:id/publish.
type PublishSiteResponse struct {
	Message        string `json:"message"`
	JobID          string `json:"job_id"`
	PagesPublished int    `json:"pages_published"`
}
