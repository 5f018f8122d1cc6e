package ports

import (
	"context"

	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error (o el commit falla) no queda ningún cambio visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(r repository.Repos) error) error
}

// SnapshotReader ejecuta lecturas sobre una única foto consistente del almacén.
// Los repos que recibe fn no deben usarse para escribir.
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context, fn func(r repository.Repos) error) error
}
