package admin

import (
	"context"

	"github.com/jhoicas/sitebuilder-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción única del store. El transfer de
// ownership lo necesita: owner_user_id, demote del owner anterior y upsert del nuevo
// deben quedar atómicos para sostener la invariante de un solo role=owner por sitio.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		sites repository.SiteRepository,
		members repository.MembershipRepository,
		pages repository.PageRepository,
		jobs repository.PublishJobRepository,
	) error) error
}
