package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

var (
	_ repository.ServiceLineRepository = (*ServiceLineRepo)(nil)
	_ repository.ProductLineRepository = (*ProductLineRepo)(nil)
)

// ServiceLineRepo líneas de servicio (account_service_lines).
type ServiceLineRepo struct {
	q Querier
}

// NewServiceLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceLineRepository(q Querier) *ServiceLineRepo {
	return &ServiceLineRepo{q: q}
}

func (r *ServiceLineRepo) Create(ctx context.Context, l *entity.ServiceLineItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO account_service_lines (id, account_id, service_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.AccountID, l.ServiceID, l.Quantity, l.UnitPrice, l.Subtotal)
	return mapError("insert service line", err)
}

func (r *ServiceLineRepo) GetByID(ctx context.Context, id string) (*entity.ServiceLineItem, error) {
	var l entity.ServiceLineItem
	err := r.q.QueryRow(ctx, `
		SELECT id, account_id, service_id, quantity, unit_price, subtotal
		FROM account_service_lines WHERE id = $1`, id).
		Scan(&l.ID, &l.AccountID, &l.ServiceID, &l.Quantity, &l.UnitPrice, &l.Subtotal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get service line", err)
	}
	return &l, nil
}

func (r *ServiceLineRepo) Update(ctx context.Context, l *entity.ServiceLineItem) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE account_service_lines SET quantity = $2, unit_price = $3, subtotal = $4 WHERE id = $1`,
		l.ID, l.Quantity, l.UnitPrice, l.Subtotal)
	if err != nil {
		return mapError("update service line", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("línea de servicio no encontrada")
	}
	return nil
}

func (r *ServiceLineRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM account_service_lines WHERE id = $1`, id)
	return mapError("delete service line", err)
}

func (r *ServiceLineRepo) ListByAccount(ctx context.Context, accountID string) ([]*entity.ServiceLineItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, account_id, service_id, quantity, unit_price, subtotal
		FROM account_service_lines WHERE account_id = $1 ORDER BY seq`, accountID)
	if err != nil {
		return nil, mapError("list service lines", err)
	}
	defer rows.Close()
	var list []*entity.ServiceLineItem
	for rows.Next() {
		var l entity.ServiceLineItem
		if err := rows.Scan(&l.ID, &l.AccountID, &l.ServiceID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, mapError("scan service line", err)
		}
		list = append(list, &l)
	}
	return list, mapError("list service lines", rows.Err())
}

// ProductLineRepo líneas de producto (account_product_lines).
type ProductLineRepo struct {
	q Querier
}

// NewProductLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductLineRepository(q Querier) *ProductLineRepo {
	return &ProductLineRepo{q: q}
}

func (r *ProductLineRepo) Create(ctx context.Context, l *entity.ProductLineItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO account_product_lines (id, account_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.AccountID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal)
	return mapError("insert product line", err)
}

func (r *ProductLineRepo) GetByID(ctx context.Context, id string) (*entity.ProductLineItem, error) {
	var l entity.ProductLineItem
	err := r.q.QueryRow(ctx, `
		SELECT id, account_id, product_id, quantity, unit_price, subtotal
		FROM account_product_lines WHERE id = $1`, id).
		Scan(&l.ID, &l.AccountID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get product line", err)
	}
	return &l, nil
}

func (r *ProductLineRepo) Update(ctx context.Context, l *entity.ProductLineItem) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE account_product_lines SET quantity = $2, unit_price = $3, subtotal = $4 WHERE id = $1`,
		l.ID, l.Quantity, l.UnitPrice, l.Subtotal)
	if err != nil {
		return mapError("update product line", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("línea de producto no encontrada")
	}
	return nil
}

func (r *ProductLineRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM account_product_lines WHERE id = $1`, id)
	return mapError("delete product line", err)
}

func (r *ProductLineRepo) ListByAccount(ctx context.Context, accountID string) ([]*entity.ProductLineItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, account_id, product_id, quantity, unit_price, subtotal
		FROM account_product_lines WHERE account_id = $1 ORDER BY seq`, accountID)
	if err != nil {
		return nil, mapError("list product lines", err)
	}
	defer rows.Close()
	var list []*entity.ProductLineItem
	for rows.Next() {
		var l entity.ProductLineItem
		if err := rows.Scan(&l.ID, &l.AccountID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, mapError("scan product line", err)
		}
		list = append(list, &l)
	}
	return list, mapError("list product lines", rows.Err())
}
