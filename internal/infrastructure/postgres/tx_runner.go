package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/sitebuilder-api/internal/application/admin"
	"github.com/jhoicas/sitebuilder-api/internal/application/usecase"
	"github.com/jhoicas/sitebuilder-api/internal/domain/repository"
)

var (
	_ usecase.TxRunner = (*TxRunner)(nil)
	_ admin.TxRunner   = (*TxRunner)(nil)
)

// TxRunner ejecuta una función contra repos construidos sobre una transacción única.
// Si fn devuelve error (o hay panic) se hace rollback; si no, commit.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el ejecutor transaccional sobre el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre una transacción, construye los repos sobre ella y ejecuta fn.
func (t *TxRunner) Run(ctx context.Context, fn func(
	sites repository.SiteRepository,
	members repository.MembershipRepository,
	pages repository.PageRepository,
	jobs repository.PublishJobRepository,
) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op si ya hubo commit

	if err := fn(
		NewSiteRepository(tx),
		NewMembershipRepository(tx),
		NewPageRepository(tx),
		NewPublishJobRepository(tx),
	); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
