package entity

import "time"

// Estados válidos para Page.
const (
	PageStatusDraft     = "draft"
	PageStatusPublished = "published"
)

// Contenido de la página home que se crea junto con cada sitio.
const (
	DefaultHomePath    = "/"
	DefaultHomeTitle   = "Welcome"
	DefaultHomeContent = "<h1>Welcome to your new site!</h1><p>Start building your homepage.</p>"
)

// Page página de un sitio. Path único dentro del sitio.
type Page struct {
	ID          string
	SiteID      string
	Path        string
	Title       string
	ContentHTML string
	Status      string // draft, published
	UpdatedBy   string // User ID del último editor
	UpdatedAt   time.Time
}
