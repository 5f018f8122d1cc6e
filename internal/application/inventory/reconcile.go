package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/application/ports"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
	"github.com/jhoicas/sauna-pos/pkg/logger"
)

// ReconcileUseCase compara el stock de cada producto con la suma de su kardex.
type ReconcileUseCase struct {
	snap ports.SnapshotReader
	log  *logger.Logger
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(snap ports.SnapshotReader, log *logger.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{snap: snap, log: logger.OrNop(log)}
}

// Reconcile devuelve los productos cuyo stock difiere de Σ Entrada - Σ Salida.
// Productos y kardex se leen en la misma foto; cada discrepancia se registra con nivel error.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context) (*dto.ReconciliationResponse, error) {
	var (
		products []*entity.Product
		sums     map[string]int
	)
	err := uc.snap.ReadSnapshot(ctx, func(r repository.Repos) error {
		var err error
		if products, err = r.Products.ListAll(ctx); err != nil {
			return err
		}
		sums, err = r.Movements.SumByProduct(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ReconciliationResponse{
		CheckedAt:     time.Now(),
		Products:      len(products),
		Discrepancies: []dto.ReconciliationItem{},
	}
	for _, p := range products {
		ledger := sums[p.ID]
		if ledger == p.StockActual {
			continue
		}
		item := dto.ReconciliationItem{
			ProductID:   p.ID,
			Code:        p.Code,
			Name:        p.Name,
			StockActual: p.StockActual,
			LedgerStock: ledger,
			Difference:  p.StockActual - ledger,
		}
		out.Discrepancies = append(out.Discrepancies, item)
		uc.log.Error().
			Str("product_id", p.ID).
			Str("code", p.Code).
			Int("stock", p.StockActual).
			Int("ledger", ledger).
			Msg("stock no coincide con el kardex")
	}
	return out, nil
}
