package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

var (
	_ repository.AccountRepository     = (*accountRepo)(nil)
	_ repository.ServiceLineRepository = (*serviceLineRepo)(nil)
	_ repository.ProductLineRepository = (*productLineRepo)(nil)
)

type accountRepo struct{ base }

func (r *accountRepo) Create(_ context.Context, a *entity.Account) error {
	return r.do(func(st *state) error {
		st.accounts[a.ID] = *a
		return nil
	})
}

func (r *accountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	var out *entity.Account
	err := r.do(func(st *state) error {
		if a, ok := st.accounts[id]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *accountRepo) GetForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *accountRepo) UpdateTotals(_ context.Context, a *entity.Account) error {
	return r.do(func(st *state) error {
		cur, ok := st.accounts[a.ID]
		if !ok {
			return domain.NotFound("cuenta no encontrada")
		}
		cur.SubtotalServices = a.SubtotalServices
		cur.SubtotalProducts = a.SubtotalProducts
		cur.Discount = a.Discount
		cur.Total = a.Total
		st.accounts[a.ID] = cur
		return nil
	})
}

func (r *accountRepo) Close(_ context.Context, id string, closedAt time.Time, statusID int) error {
	return r.do(func(st *state) error {
		cur, ok := st.accounts[id]
		if !ok {
			return domain.NotFound("cuenta no encontrada")
		}
		cur.ClosedAt = &closedAt
		cur.StatusID = statusID
		st.accounts[id] = cur
		return nil
	})
}

func (r *accountRepo) Delete(_ context.Context, id string) error {
	return r.do(func(st *state) error {
		for _, l := range st.serviceLines {
			if l.AccountID == id {
				return domain.Persistence("delete account", errForeignKey)
			}
		}
		for _, l := range st.productLines {
			if l.AccountID == id {
				return domain.Persistence("delete account", errForeignKey)
			}
		}
		delete(st.accounts, id)
		return nil
	})
}

func (r *accountRepo) List(_ context.Context, f repository.AccountFilter) ([]*entity.Account, error) {
	var list []*entity.Account
	err := r.do(func(st *state) error {
		for _, a := range st.accounts {
			if f.OpenOnly && !a.IsOpen() {
				continue
			}
			if f.ClientID != "" && a.ClientID != f.ClientID {
				continue
			}
			a := a
			list = append(list, &a)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, f.Limit, f.Offset), err
}

func (r *accountRepo) DefaultStatus(_ context.Context) (*entity.AccountStatus, error) {
	var out *entity.AccountStatus
	err := r.do(func(st *state) error {
		for _, s := range st.statuses {
			if out == nil || s.Ordinal < out.Ordinal {
				s := s
				out = &s
			}
		}
		return nil
	})
	return out, err
}

type serviceLineRepo struct{ base }

func (r *serviceLineRepo) Create(_ context.Context, l *entity.ServiceLineItem) error {
	return r.do(func(st *state) error {
		if _, ok := st.accounts[l.AccountID]; !ok {
			return domain.Persistence("insert service line", errForeignKey)
		}
		st.serviceLines[l.ID] = *l
		st.lineSeq[l.ID] = st.next()
		return nil
	})
}

func (r *serviceLineRepo) GetByID(_ context.Context, id string) (*entity.ServiceLineItem, error) {
	var out *entity.ServiceLineItem
	err := r.do(func(st *state) error {
		if l, ok := st.serviceLines[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *serviceLineRepo) Update(_ context.Context, l *entity.ServiceLineItem) error {
	return r.do(func(st *state) error {
		if _, ok := st.serviceLines[l.ID]; !ok {
			return domain.NotFound("línea de servicio no encontrada")
		}
		st.serviceLines[l.ID] = *l
		return nil
	})
}

func (r *serviceLineRepo) Delete(_ context.Context, id string) error {
	return r.do(func(st *state) error {
		delete(st.serviceLines, id)
		delete(st.lineSeq, id)
		return nil
	})
}

func (r *serviceLineRepo) ListByAccount(_ context.Context, accountID string) ([]*entity.ServiceLineItem, error) {
	var list []*entity.ServiceLineItem
	err := r.do(func(st *state) error {
		for _, l := range st.serviceLines {
			if l.AccountID == accountID {
				l := l
				list = append(list, &l)
			}
		}
		sort.Slice(list, func(i, j int) bool { return st.lineSeq[list[i].ID] < st.lineSeq[list[j].ID] })
		return nil
	})
	return list, err
}

type productLineRepo struct{ base }

func (r *productLineRepo) Create(_ context.Context, l *entity.ProductLineItem) error {
	return r.do(func(st *state) error {
		if _, ok := st.accounts[l.AccountID]; !ok {
			return domain.Persistence("insert product line", errForeignKey)
		}
		st.productLines[l.ID] = *l
		st.lineSeq[l.ID] = st.next()
		return nil
	})
}

func (r *productLineRepo) GetByID(_ context.Context, id string) (*entity.ProductLineItem, error) {
	var out *entity.ProductLineItem
	err := r.do(func(st *state) error {
		if l, ok := st.productLines[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *productLineRepo) Update(_ context.Context, l *entity.ProductLineItem) error {
	return r.do(func(st *state) error {
		if _, ok := st.productLines[l.ID]; !ok {
			return domain.NotFound("línea de producto no encontrada")
		}
		st.productLines[l.ID] = *l
		return nil
	})
}

func (r *productLineRepo) Delete(_ context.Context, id string) error {
	return r.do(func(st *state) error {
		delete(st.productLines, id)
		delete(st.lineSeq, id)
		return nil
	})
}

func (r *productLineRepo) ListByAccount(_ context.Context, accountID string) ([]*entity.ProductLineItem, error) {
	var list []*entity.ProductLineItem
	err := r.do(func(st *state) error {
		for _, l := range st.productLines {
			if l.AccountID == accountID {
				l := l
				list = append(list, &l)
			}
		}
		sort.Slice(list, func(i, j int) bool { return st.lineSeq[list[i].ID] < st.lineSeq[list[j].ID] })
		return nil
	})
	return list, err
}
