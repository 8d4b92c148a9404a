package repository

import (
	"context"

	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
)

// PageSummary página con el nombre del último editor (vista admin).
type PageSummary struct {
	entity.Page
	UpdatedByName string
}

// PageRepository define el puerto de persistencia para Page (DIP).
type PageRepository interface {
	Create(ctx context.Context, p *entity.Page) error
	// PublishBySite marca como published todas las páginas draft del sitio.
	// Devuelve cuántas páginas cambiaron de estado.
	PublishBySite(ctx context.Context, siteID, updatedBy string) (int, error)
	RecentBySite(ctx context.Context, siteID string, limit int) ([]PageSummary, error)
}
