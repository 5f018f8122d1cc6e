package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, purchase_price, sale_price, stock_actual, min_stock, category_id, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Name, p.PurchasePrice, p.SalePrice, p.StockActual, p.MinStock,
		nullString(p.CategoryID), p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("ya existe un producto con el código " + p.Code)
		}
		return mapError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product", `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by code", `SELECT `+productColumns+` FROM products WHERE code = $1`, code)
}

// GetForUpdate obtiene el producto con la fila bloqueada hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "lock product", `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return p, nil
}

// Update actualiza datos descriptivos. No modifica stock ni costo de compra (se manejan vía kardex).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, sale_price = $3, min_stock = $4, category_id = $5, active = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.SalePrice, p.MinStock, nullString(p.CategoryID), p.Active, p.UpdatedAt,
	)
	if err != nil {
		return mapError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("producto no encontrado")
	}
	return nil
}

// UpdateStock fija el stock actual. La columna tiene CHECK (stock_actual >= 0).
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock_actual = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return mapError("update product stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("producto no encontrado")
	}
	return nil
}

// UpdatePurchasePrice actualiza solo el costo de compra (promedio ponderado).
func (r *ProductRepo) UpdatePurchasePrice(ctx context.Context, id string, price decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET purchase_price = $2, updated_at = now() WHERE id = $1`, id, price)
	if err != nil {
		return mapError("update product purchase price", err)
	}
	return nil
}

// Search busca por texto, categoría, estado de stock y activos, ordenado por nombre.
func (r *ProductRepo) Search(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1 = 1`
	var args []any
	pos := 1
	if f.Text != "" {
		query += fmt.Sprintf(" AND (code ILIKE $%d OR name ILIKE $%d)", pos, pos)
		args = append(args, "%"+f.Text+"%")
		pos++
	}
	if f.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", pos)
		args = append(args, f.CategoryID)
		pos++
	}
	switch f.StockStatus {
	case entity.StockStatusOut:
		query += " AND stock_actual <= 0"
	case entity.StockStatusLow:
		query += " AND stock_actual > 0 AND stock_actual <= min_stock"
	case entity.StockStatusNormal:
		query += " AND stock_actual > min_stock"
	}
	if f.ActiveOnly {
		query += " AND active"
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, pageLimit(f.Limit), f.Offset)
	return r.list(ctx, "search products", query, args...)
}

// ListAll lista todos los productos ordenados por código (conciliación, reposición).
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, "list products", `SELECT `+productColumns+` FROM products ORDER BY code`)
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapError("scan product", err)
		}
		list = append(list, p)
	}
	return list, mapError(op, rows.Err())
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var category *string
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.PurchasePrice, &p.SalePrice, &p.StockActual, &p.MinStock,
		&category, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.CategoryID = derefString(category)
	return &p, nil
}
