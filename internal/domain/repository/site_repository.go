package repository

import (
	"context"

	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
)

// SiteFilter parámetros de listado de sitios en la consola de administración.
type SiteFilter struct {
	Search    string
	Plan      string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// SiteWithRole sitio visto desde un usuario: incluye su rol de membresía y
// conteos de páginas para los listados.
type SiteWithRole struct {
	entity.Site
	Role           string
	PublishedPages int
	TotalPages     int
}

// SiteStats agregados de recursos de un sitio.
type SiteStats struct {
	PublishedPages int
	TotalPages     int
	TotalAssets    int
	TotalSizeBytes int64
}

// SiteWithOwner sitio con datos del owner y agregados (vista admin).
type SiteWithOwner struct {
	entity.Site
	OwnerEmail     string
	OwnerName      string
	OwnerStatus    string
	PublishedPages int
	TotalPages     int
	TotalAssets    int
	TotalSizeBytes int64
	MembersCount   int
}

// SiteRepository define el puerto de persistencia para Site (DIP).
type SiteRepository interface {
	Create(ctx context.Context, site *entity.Site) error
	GetByID(ctx context.Context, id string) (*entity.Site, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*entity.Site, error)
	// GetForUser devuelve el sitio solo si userID es owner o miembro; nil si no hay acceso
	// (el handler responde 404 sin revelar existencia).
	GetForUser(ctx context.Context, siteID, userID string) (*SiteWithRole, error)
	ListForUser(ctx context.Context, userID string) ([]SiteWithRole, error)
	ListByOwner(ctx context.Context, userID string) ([]SiteWithRole, error)
	CountByOwner(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, site *entity.Site) error
	UpdateOwner(ctx context.Context, siteID, newOwnerID string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f SiteFilter) ([]SiteWithOwner, int, error)
	GetWithOwner(ctx context.Context, id string) (*SiteWithOwner, error)
	Stats(ctx context.Context, siteID string) (*SiteStats, error)
}
