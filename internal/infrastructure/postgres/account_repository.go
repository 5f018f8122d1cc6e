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

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountColumns = `id, client_id, created_by, created_at, closed_at, subtotal_services, subtotal_products, discount, total, status_id, promotion_id`

// AccountRepo cuentas sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.ClientID, a.CreatedBy, a.CreatedAt, a.ClosedAt,
		a.SubtotalServices, a.SubtotalProducts, a.Discount, a.Total, a.StatusID, a.PromotionID,
	)
	return mapError("insert account", err)
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la cuenta. Siempre antes que las filas de productos.
func (r *AccountRepo) GetForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)
}

func (r *AccountRepo) getOne(ctx context.Context, query string, id string) (*entity.Account, error) {
	a, err := scanAccount(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get account", err)
	}
	return a, nil
}

func (r *AccountRepo) UpdateTotals(ctx context.Context, a *entity.Account) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE accounts SET subtotal_services = $2, subtotal_products = $3, discount = $4, total = $5
		WHERE id = $1`,
		a.ID, a.SubtotalServices, a.SubtotalProducts, a.Discount, a.Total,
	)
	if err != nil {
		return mapError("update account totals", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("cuenta no encontrada")
	}
	return nil
}

func (r *AccountRepo) Close(ctx context.Context, id string, closedAt time.Time, statusID int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE accounts SET closed_at = $2, status_id = $3 WHERE id = $1`, id, closedAt, statusID)
	if err != nil {
		return mapError("close account", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("cuenta no encontrada")
	}
	return nil
}

// Delete elimina la cabecera; falla por FK si todavía tiene líneas o pagos.
func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	return mapError("delete account", err)
}

func (r *AccountRepo) List(ctx context.Context, f repository.AccountFilter) ([]*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE 1 = 1`
	var args []any
	pos := 1
	if f.OpenOnly {
		query += " AND closed_at IS NULL"
	}
	if f.ClientID != "" {
		query += fmt.Sprintf(" AND client_id = $%d", pos)
		args = append(args, f.ClientID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, pageLimit(f.Limit), f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list accounts", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, mapError("scan account", err)
		}
		list = append(list, a)
	}
	return list, mapError("list accounts", rows.Err())
}

func (r *AccountRepo) DefaultStatus(ctx context.Context) (*entity.AccountStatus, error) {
	var s entity.AccountStatus
	err := r.q.QueryRow(ctx, `SELECT id, name, ordinal FROM account_statuses ORDER BY ordinal LIMIT 1`).
		Scan(&s.ID, &s.Name, &s.Ordinal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get default account status", err)
	}
	return &s, nil
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(&a.ID, &a.ClientID, &a.CreatedBy, &a.CreatedAt, &a.ClosedAt,
		&a.SubtotalServices, &a.SubtotalProducts, &a.Discount, &a.Total, &a.StatusID, &a.PromotionID)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
