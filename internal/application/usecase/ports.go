package usecase

import (
	"context"

	"github.com/jhoicas/sitebuilder-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repos atados a una única transacción del store.
// Se usa para las escrituras multi-statement (creación de sitio, publish):
// o se aplican todas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		sites repository.SiteRepository,
		members repository.MembershipRepository,
		pages repository.PageRepository,
		jobs repository.PublishJobRepository,
	) error) error
}
