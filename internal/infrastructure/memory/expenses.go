package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

var (
	_ repository.ExpenseRepository = (*expenseRepo)(nil)
	_ repository.PaymentRepository = (*paymentRepo)(nil)
)

type expenseRepo struct{ base }

func (r *expenseRepo) CreateHeader(_ context.Context, h *entity.ExpenseHeader) error {
	return r.do(func(st *state) error {
		cp := *h
		cp.Details = nil
		st.expenses[h.ID] = cp
		return nil
	})
}

func (r *expenseRepo) CreateDetail(_ context.Context, d *entity.ExpenseDetail) error {
	return r.do(func(st *state) error {
		if _, ok := st.expenses[d.HeaderID]; !ok {
			return domain.Persistence("insert expense detail", errForeignKey)
		}
		st.expenseDetails[d.ID] = *d
		st.lineSeq[d.ID] = st.next()
		return nil
	})
}

func (r *expenseRepo) GetByID(_ context.Context, id string) (*entity.ExpenseHeader, error) {
	var out *entity.ExpenseHeader
	err := r.do(func(st *state) error {
		h, ok := st.expenses[id]
		if !ok {
			return nil
		}
		h.Details = detailsOf(st, id)
		out = &h
		return nil
	})
	return out, err
}

func (r *expenseRepo) GetForUpdate(ctx context.Context, id string) (*entity.ExpenseHeader, error) {
	return r.GetByID(ctx, id)
}

func (r *expenseRepo) UpdateHeader(_ context.Context, h *entity.ExpenseHeader) error {
	return r.do(func(st *state) error {
		cur, ok := st.expenses[h.ID]
		if !ok {
			return domain.NotFound("egreso no encontrado")
		}
		cur.Date = h.Date
		cur.TotalAmount = h.TotalAmount
		cur.UpdatedAt = h.UpdatedAt
		st.expenses[h.ID] = cur
		return nil
	})
}

func (r *expenseRepo) DeleteDetails(_ context.Context, headerID string) error {
	return r.do(func(st *state) error {
		for id, d := range st.expenseDetails {
			if d.HeaderID == headerID {
				delete(st.expenseDetails, id)
				delete(st.lineSeq, id)
			}
		}
		return nil
	})
}

func (r *expenseRepo) DeleteHeader(_ context.Context, id string) error {
	return r.do(func(st *state) error {
		for _, d := range st.expenseDetails {
			if d.HeaderID == id {
				return domain.Persistence("delete expense header", errForeignKey)
			}
		}
		delete(st.expenses, id)
		return nil
	})
}

func (r *expenseRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]*entity.ExpenseHeader, error) {
	var list []*entity.ExpenseHeader
	err := r.do(func(st *state) error {
		for id, h := range st.expenses {
			if !inRange(h.Date, from, to) {
				continue
			}
			h := h
			h.Details = detailsOf(st, id)
			list = append(list, &h)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, err
}

func (r *expenseRepo) SumByRange(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.do(func(st *state) error {
		for _, h := range st.expenses {
			if inRange(h.Date, from, to) {
				total = total.Add(h.TotalAmount)
			}
		}
		return nil
	})
	return total, err
}

func detailsOf(st *state, headerID string) []*entity.ExpenseDetail {
	var out []*entity.ExpenseDetail
	for _, d := range st.expenseDetails {
		if d.HeaderID == headerID {
			d := d
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return st.lineSeq[out[i].ID] < st.lineSeq[out[j].ID] })
	return out
}

type paymentRepo struct{ base }

func (r *paymentRepo) Create(_ context.Context, p *entity.Payment) error {
	return r.do(func(st *state) error {
		if _, ok := st.accounts[p.AccountID]; !ok {
			return domain.Persistence("insert payment", errForeignKey)
		}
		st.payments[p.ID] = *p
		return nil
	})
}

func (r *paymentRepo) ListByAccount(_ context.Context, accountID string) ([]*entity.Payment, error) {
	var list []*entity.Payment
	err := r.do(func(st *state) error {
		for _, p := range st.payments {
			if p.AccountID == accountID {
				p := p
				list = append(list, &p)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].PaidAt.Before(list[j].PaidAt) })
	return list, err
}

func (r *paymentRepo) SumByMethod(_ context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	err := r.do(func(st *state) error {
		for _, p := range st.payments {
			if inRange(p.PaidAt, from, to) {
				out[p.PaymentMethodID] = out[p.PaymentMethodID].Add(p.Amount)
			}
		}
		return nil
	})
	return out, err
}
