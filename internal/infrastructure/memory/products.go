package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*productRepo)(nil)

type productRepo struct{ base }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.do(func(st *state) error {
		for _, existing := range st.products {
			if existing.Code == p.Code {
				return domain.Conflict("ya existe un producto con el código " + p.Code)
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *productRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.do(func(st *state) error {
		for _, p := range st.products {
			if p.Code == code {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: Run ya serializa las transacciones.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	return r.do(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.NotFound("producto no encontrado")
		}
		cur.Name = p.Name
		cur.SalePrice = p.SalePrice
		cur.MinStock = p.MinStock
		cur.CategoryID = p.CategoryID
		cur.Active = p.Active
		cur.UpdatedAt = p.UpdatedAt
		st.products[p.ID] = cur
		return nil
	})
}

func (r *productRepo) UpdateStock(_ context.Context, id string, stock int) error {
	return r.do(func(st *state) error {
		cur, ok := st.products[id]
		if !ok {
			return domain.NotFound("producto no encontrado")
		}
		cur.StockActual = stock
		st.products[id] = cur
		return nil
	})
}

func (r *productRepo) UpdatePurchasePrice(_ context.Context, id string, price decimal.Decimal) error {
	return r.do(func(st *state) error {
		cur, ok := st.products[id]
		if !ok {
			return domain.NotFound("producto no encontrado")
		}
		cur.PurchasePrice = price
		st.products[id] = cur
		return nil
	})
}

func (r *productRepo) Search(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.do(func(st *state) error {
		text := strings.ToLower(strings.TrimSpace(f.Text))
		for _, p := range st.products {
			if text != "" && !strings.Contains(strings.ToLower(p.Name), text) && !strings.Contains(strings.ToLower(p.Code), text) {
				continue
			}
			if f.CategoryID != "" && p.CategoryID != f.CategoryID {
				continue
			}
			if f.StockStatus != "" && p.StockStatus() != f.StockStatus {
				continue
			}
			if f.ActiveOnly && !p.Active {
				continue
			}
			p := p
			list = append(list, &p)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, f.Limit, f.Offset), err
}

func (r *productRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.do(func(st *state) error {
		for _, p := range st.products {
			p := p
			list = append(list, &p)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, err
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
