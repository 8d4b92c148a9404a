package repository

import (
	"context"

	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
)

// PublishJobSummary job con el nombre del usuario que lo lanzó (vista admin).
type PublishJobSummary struct {
	entity.PublishJob
	CreatedByName string
}

// PublishJobRepository define el puerto de persistencia para PublishJob (DIP).
type PublishJobRepository interface {
	Create(ctx context.Context, j *entity.PublishJob) error
	RecentBySite(ctx context.Context, siteID string, limit int) ([]PublishJobSummary, error)
}
