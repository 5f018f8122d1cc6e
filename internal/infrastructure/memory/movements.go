package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*movementRepo)(nil)

type movementRepo struct{ base }

func (r *movementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	return r.do(func(st *state) error {
		if _, ok := st.products[m.ProductID]; !ok {
			return domain.Persistence("insert inventory movement", errForeignKey)
		}
		st.movements[m.ID] = *m
		st.movementSeq[m.ID] = st.next()
		return nil
	})
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.InventoryMovement, error) {
	var out *entity.InventoryMovement
	err := r.do(func(st *state) error {
		if m, ok := st.movements[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *movementRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryMovement, error) {
	return r.GetByID(ctx, id)
}

func (r *movementRepo) Update(_ context.Context, m *entity.InventoryMovement) error {
	return r.do(func(st *state) error {
		if _, ok := st.movements[m.ID]; !ok {
			return domain.NotFound("movimiento no encontrado")
		}
		st.movements[m.ID] = *m
		return nil
	})
}

func (r *movementRepo) LatestByProduct(ctx context.Context, productID string) (*entity.InventoryMovement, error) {
	list, err := r.ListByProduct(ctx, repository.MovementFilter{ProductID: productID, Limit: 1})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *movementRepo) ListRecent(_ context.Context, limit int) ([]*entity.InventoryMovement, error) {
	list, err := r.collect(func(*entity.InventoryMovement) bool { return true })
	return paginate(list, limit, 0), err
}

func (r *movementRepo) ListByProduct(_ context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	list, err := r.collect(func(m *entity.InventoryMovement) bool {
		if m.ProductID != f.ProductID {
			return false
		}
		if f.From != nil && m.Date.Before(*f.From) {
			return false
		}
		if f.To != nil && !m.Date.Before(*f.To) {
			return false
		}
		return true
	})
	return paginate(list, f.Limit, f.Offset), err
}

func (r *movementRepo) SumByProduct(_ context.Context) (map[string]int, error) {
	out := make(map[string]int)
	err := r.do(func(st *state) error {
		for _, m := range st.movements {
			out[m.ProductID] += m.SignedQuantity()
		}
		return nil
	})
	return out, err
}

func (r *movementRepo) SumOutboundSince(_ context.Context, since time.Time) (map[string]int, error) {
	out := make(map[string]int)
	err := r.do(func(st *state) error {
		for _, m := range st.movements {
			if m.Kind == entity.MovementKindSalida && !m.Date.Before(since) {
				out[m.ProductID] += m.Quantity
			}
		}
		return nil
	})
	return out, err
}

// collect filtra y ordena del más reciente al más antiguo (fecha y luego orden de inserción).
func (r *movementRepo) collect(keep func(*entity.InventoryMovement) bool) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	seq := make(map[string]int64)
	err := r.do(func(st *state) error {
		for id, m := range st.movements {
			m := m
			if keep(&m) {
				list = append(list, &m)
				seq[id] = st.movementSeq[id]
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return seq[list[i].ID] > seq[list[j].ID]
	})
	return list, err
}
