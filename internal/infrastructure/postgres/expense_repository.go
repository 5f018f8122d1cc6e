package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

var (
	_ repository.ExpenseRepository = (*ExpenseRepo)(nil)
	_ repository.PaymentRepository = (*PaymentRepo)(nil)
)

// ExpenseRepo egresos: expense_headers + expense_details.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

func (r *ExpenseRepo) CreateHeader(ctx context.Context, h *entity.ExpenseHeader) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO expense_headers (id, date, total_amount, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		h.ID, h.Date, h.TotalAmount, h.CreatedBy, h.CreatedAt, h.UpdatedAt)
	return mapError("insert expense header", err)
}

func (r *ExpenseRepo) CreateDetail(ctx context.Context, d *entity.ExpenseDetail) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO expense_details (id, header_id, concept, amount, recurring, receipt_path, expense_type_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.HeaderID, d.Concept, d.Amount, d.Recurring, nullString(d.ReceiptPath), d.ExpenseTypeID)
	if err != nil && pgConstraint(err) == "expense_details_expense_type_id_fkey" {
		return &domain.Error{Kind: domain.ErrInvalidInput, Message: "tipo de egreso desconocido: " + d.ExpenseTypeID, Cause: err}
	}
	return mapError("insert expense detail", err)
}

func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.ExpenseHeader, error) {
	return r.get(ctx, `SELECT id, date, total_amount, created_by, created_at, updated_at
		FROM expense_headers WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera; el detalle se reemplaza bajo ese bloqueo.
func (r *ExpenseRepo) GetForUpdate(ctx context.Context, id string) (*entity.ExpenseHeader, error) {
	return r.get(ctx, `SELECT id, date, total_amount, created_by, created_at, updated_at
		FROM expense_headers WHERE id = $1 FOR UPDATE`, id)
}

func (r *ExpenseRepo) get(ctx context.Context, query, id string) (*entity.ExpenseHeader, error) {
	var h entity.ExpenseHeader
	err := r.q.QueryRow(ctx, query, id).Scan(&h.ID, &h.Date, &h.TotalAmount, &h.CreatedBy, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get expense", err)
	}
	details, err := r.details(ctx, []string{h.ID})
	if err != nil {
		return nil, err
	}
	h.Details = details[h.ID]
	return &h, nil
}

func (r *ExpenseRepo) UpdateHeader(ctx context.Context, h *entity.ExpenseHeader) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE expense_headers SET date = $2, total_amount = $3, updated_at = $4 WHERE id = $1`,
		h.ID, h.Date, h.TotalAmount, h.UpdatedAt)
	if err != nil {
		return mapError("update expense header", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("egreso no encontrado")
	}
	return nil
}

func (r *ExpenseRepo) DeleteDetails(ctx context.Context, headerID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM expense_details WHERE header_id = $1`, headerID)
	return mapError("delete expense details", err)
}

// DeleteHeader falla por FK si quedan líneas.
func (r *ExpenseRepo) DeleteHeader(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM expense_headers WHERE id = $1`, id)
	return mapError("delete expense header", err)
}

func (r *ExpenseRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.ExpenseHeader, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, date, total_amount, created_by, created_at, updated_at
		FROM expense_headers WHERE date >= $1 AND date < $2 ORDER BY date`, from, to)
	if err != nil {
		return nil, mapError("list expenses", err)
	}
	var list []*entity.ExpenseHeader
	var ids []string
	for rows.Next() {
		var h entity.ExpenseHeader
		if err := rows.Scan(&h.ID, &h.Date, &h.TotalAmount, &h.CreatedBy, &h.CreatedAt, &h.UpdatedAt); err != nil {
			rows.Close()
			return nil, mapError("scan expense", err)
		}
		list = append(list, &h)
		ids = append(ids, h.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapError("list expenses", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	details, err := r.details(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, h := range list {
		h.Details = details[h.ID]
	}
	return list, nil
}

func (r *ExpenseRepo) SumByRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) FROM expense_headers WHERE date >= $1 AND date < $2`,
		from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, mapError("sum expenses", err)
	}
	return total, nil
}

// details carga las líneas de varias cabeceras en una sola consulta.
func (r *ExpenseRepo) details(ctx context.Context, headerIDs []string) (map[string][]*entity.ExpenseDetail, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, header_id, concept, amount, recurring, receipt_path, expense_type_id
		FROM expense_details WHERE header_id = ANY($1) ORDER BY seq`, headerIDs)
	if err != nil {
		return nil, mapError("list expense details", err)
	}
	defer rows.Close()
	out := make(map[string][]*entity.ExpenseDetail, len(headerIDs))
	for rows.Next() {
		var d entity.ExpenseDetail
		var receipt *string
		if err := rows.Scan(&d.ID, &d.HeaderID, &d.Concept, &d.Amount, &d.Recurring, &receipt, &d.ExpenseTypeID); err != nil {
			return nil, mapError("scan expense detail", err)
		}
		d.ReceiptPath = derefString(receipt)
		out[d.HeaderID] = append(out[d.HeaderID], &d)
	}
	return out, mapError("list expense details", rows.Err())
}

// PaymentRepo pagos de cuentas cerradas.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (id, account_id, payment_method_id, amount, paid_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.AccountID, p.PaymentMethodID, p.Amount, p.PaidAt, p.CreatedBy)
	if err != nil && pgCode(err) == codeForeignKeyViolation && pgConstraint(err) == "payments_payment_method_id_fkey" {
		return &domain.Error{Kind: domain.ErrInvalidInput, Message: "medio de pago desconocido: " + p.PaymentMethodID, Cause: err}
	}
	return mapError("insert payment", err)
}

func (r *PaymentRepo) ListByAccount(ctx context.Context, accountID string) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, account_id, payment_method_id, amount, paid_at, created_by
		FROM payments WHERE account_id = $1 ORDER BY paid_at`, accountID)
	if err != nil {
		return nil, mapError("list payments", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.AccountID, &p.PaymentMethodID, &p.Amount, &p.PaidAt, &p.CreatedBy); err != nil {
			return nil, mapError("scan payment", err)
		}
		list = append(list, &p)
	}
	return list, mapError("list payments", rows.Err())
}

func (r *PaymentRepo) SumByMethod(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT payment_method_id, SUM(amount) FROM payments
		WHERE paid_at >= $1 AND paid_at < $2 GROUP BY payment_method_id`, from, to)
	if err != nil {
		return nil, mapError("sum payments", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var method string
		var total decimal.Decimal
		if err := rows.Scan(&method, &total); err != nil {
			return nil, mapError("scan payment sum", err)
		}
		out[method] = total
	}
	return out, mapError("sum payments", rows.Err())
}
