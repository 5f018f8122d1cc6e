package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/sauna-pos/internal/application/ports"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

var (
	_ ports.TxRunner       = (*TxRunner)(nil)
	_ ports.SnapshotReader = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los bloqueos de fila (SELECT ... FOR UPDATE) serializan las escrituras sobre la misma cuenta o producto.
func (r *TxRunner) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return mapError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError("commit transaction", err)
	}
	return nil
}

// ReadSnapshot ejecuta fn en una transacción REPEATABLE READ de solo lectura:
// todas las consultas de fn ven la misma foto de la base.
func (r *TxRunner) ReadSnapshot(ctx context.Context, fn func(r repository.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return mapError("begin snapshot", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError("commit snapshot", err)
	}
	return nil
}

// NewRepos construye todos los repositorios sobre q (pool o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Products:     NewProductRepository(q),
		Movements:    NewInventoryMovementRepository(q),
		Accounts:     NewAccountRepository(q),
		ServiceLines: NewServiceLineRepository(q),
		ProductLines: NewProductLineRepository(q),
		Expenses:     NewExpenseRepository(q),
		Payments:     NewPaymentRepository(q),
		Sessions:     NewCashSessionRepository(q),
		Services:     NewServiceCatalogRepository(q),
		Users:        NewUserRepository(q),
	}
}
