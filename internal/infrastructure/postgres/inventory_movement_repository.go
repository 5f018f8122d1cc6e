package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, product_id, kind, quantity, unit_cost, total_cost, date, note, created_by, created_at`

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// El orden de inserción (seq) desempata movimientos con la misma fecha.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Kind, m.Quantity, m.UnitCost, m.TotalCost, m.Date,
		nullString(m.Note), nullString(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return mapError("insert inventory movement", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *InventoryMovementRepo) GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM inventory_movements WHERE id = $1`, id)
}

// GetForUpdate obtiene el movimiento con la fila bloqueada.
func (r *InventoryMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryMovement, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM inventory_movements WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryMovementRepo) getOne(ctx context.Context, query string, args ...any) (*entity.InventoryMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get movement", err)
	}
	return m, nil
}

// Update reescribe tipo, cantidad, costo total y nota (corrección administrativa).
func (r *InventoryMovementRepo) Update(ctx context.Context, m *entity.InventoryMovement) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE inventory_movements SET kind = $2, quantity = $3, total_cost = $4, note = $5
		WHERE id = $1`,
		m.ID, m.Kind, m.Quantity, m.TotalCost, nullString(m.Note),
	)
	if err != nil {
		return mapError("update movement", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("movimiento no encontrado")
	}
	return nil
}

// LatestByProduct devuelve el último movimiento del producto o nil.
func (r *InventoryMovementRepo) LatestByProduct(ctx context.Context, productID string) (*entity.InventoryMovement, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM inventory_movements
		WHERE product_id = $1 ORDER BY date DESC, seq DESC LIMIT 1`, productID)
}

// ListRecent lista los últimos movimientos de todos los productos.
func (r *InventoryMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM inventory_movements
		ORDER BY date DESC, seq DESC LIMIT $1`, pageLimit(limit))
}

// ListByProduct lista movimientos de un producto con fecha en [From, To).
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE product_id = $1`
	args := []any{f.ProductID}
	pos := 2
	if f.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND date < $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC, seq DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, pageLimit(f.Limit), f.Offset)
	return r.list(ctx, query, args...)
}

// SumByProduct devuelve Σ Entrada - Σ Salida por producto.
func (r *InventoryMovementRepo) SumByProduct(ctx context.Context) (map[string]int, error) {
	return r.sums(ctx, `
		SELECT product_id, COALESCE(SUM(CASE WHEN kind = 'Salida' THEN -quantity ELSE quantity END), 0)
		FROM inventory_movements GROUP BY product_id`)
}

// SumOutboundSince suma las unidades de Salida por producto desde since.
func (r *InventoryMovementRepo) SumOutboundSince(ctx context.Context, since time.Time) (map[string]int, error) {
	return r.sums(ctx, `
		SELECT product_id, COALESCE(SUM(quantity), 0)
		FROM inventory_movements WHERE kind = 'Salida' AND date >= $1 GROUP BY product_id`, since)
}

func (r *InventoryMovementRepo) sums(ctx context.Context, query string, args ...any) (map[string]int, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("sum movements", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var id string
		var total int64
		if err := rows.Scan(&id, &total); err != nil {
			return nil, mapError("scan movement sum", err)
		}
		out[id] = int(total)
	}
	return out, mapError("sum movements", rows.Err())
}

func (r *InventoryMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list movements", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, mapError("scan movement", err)
		}
		list = append(list, m)
	}
	return list, mapError("list movements", rows.Err())
}

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	var note, createdBy *string
	err := row.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.UnitCost, &m.TotalCost, &m.Date,
		&note, &createdBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Note = derefString(note)
	m.CreatedBy = derefString(createdBy)
	return &m, nil
}
