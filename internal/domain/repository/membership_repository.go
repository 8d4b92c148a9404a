package repository

import (
	"context"

	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
)

// SiteMember membresía con datos del usuario (vista admin del sitio).
type SiteMember struct {
	entity.SiteUser
	Email  string
	Name   string
	Status string
}

// MembershipRepository define el puerto de persistencia para SiteUser (DIP).
type MembershipRepository interface {
	Create(ctx context.Context, m *entity.SiteUser) error
	// Upsert inserta o actualiza la fila (site,user) con el rol dado (transfer).
	Upsert(ctx context.Context, m *entity.SiteUser) error
	UpdateRole(ctx context.Context, siteID, userID, role string) error
	ListBySite(ctx context.Context, siteID string) ([]SiteMember, error)
}
