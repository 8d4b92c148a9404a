package repository

import (
	"context"

	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
)

// UserFilter parámetros de listado de la consola de administración.
// SortBy se valida contra una allow-list en el adaptador (anti inyección).
type UserFilter struct {
	Search    string
	Status    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// UserWithSiteCounts usuario con conteos de sitios poseídos por plan (vista admin).
type UserWithSiteCounts struct {
	entity.User
	SitesCount      int
	FreeSites       int
	ProSites        int
	EnterpriseSites int
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// List devuelve la página pedida y el total sin paginar.
	List(ctx context.Context, f UserFilter) ([]UserWithSiteCounts, int, error)
}
