package cash_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sauna-pos/internal/application/account"
	"github.com/jhoicas/sauna-pos/internal/application/cash"
	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/application/expense"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/infrastructure/memory"
)

const (
	actor    = "cajero"
	efectivo = "efectivo"
	tarjeta  = "tarjeta"
)

type fakeRenderer struct{ last *dto.DaySummaryResponse }

func (r *fakeRenderer) RenderDay(s *dto.DaySummaryResponse) ([]byte, error) {
	r.last = s
	return []byte("%PDF-1.4"), nil
}

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	accounts *account.AccountUseCase
	expenses *expense.ExpenseUseCase
	cash     *cash.CashUseCase
	renderer *fakeRenderer
}

func newFixture() *fixture {
	s := memory.New()
	s.AddService(entity.Service{ID: "sauna", Name: "Sauna", Price: decimal.NewFromInt(30), Active: true})
	r := &fakeRenderer{}
	return &fixture{
		ctx:      context.Background(),
		store:    s,
		accounts: account.NewAccountUseCase(s, s.Repos(), s, nil, nil),
		expenses: expense.NewExpenseUseCase(s, s.Repos(), nil),
		cash:     cash.NewCashUseCase(s, s.Repos(), r, efectivo, nil),
		renderer: r,
	}
}

// pay abre una cuenta con un servicio y la cierra en at con los pagos dados.
func (f *fixture) pay(t *testing.T, at time.Time, payments ...dto.PaymentRequest) {
	t.Helper()
	acc, err := f.accounts.Create(f.ctx, actor, dto.CreateAccountRequest{ClientID: "cliente"})
	require.NoError(t, err)
	_, err = f.accounts.AddService(f.ctx, acc.ID, dto.ServiceLineRequest{ServiceID: "sauna", Quantity: 1})
	require.NoError(t, err)
	_, err = f.accounts.Close(f.ctx, acc.ID, actor, dto.CloseAccountRequest{ClosedAt: &at, Payments: payments})
	require.NoError(t, err)
}

func (f *fixture) spend(t *testing.T, at time.Time, amount int64) {
	t.Helper()
	a := decimal.NewFromInt(amount)
	_, err := f.expenses.CreateComplete(f.ctx, actor, dto.ExpenseRequest{
		Date: at, TotalAmount: a,
		Details: []dto.ExpenseDetailRequest{{Concept: "toallas", Amount: a, ExpenseTypeID: "insumos"}},
	})
	require.NoError(t, err)
}

func at(d, hour int) time.Time {
	return time.Date(2026, 5, d, hour, 0, 0, 0, time.Local)
}

func payment(method string, amount int64) dto.PaymentRequest {
	return dto.PaymentRequest{PaymentMethodID: method, Amount: decimal.NewFromInt(amount)}
}

func TestDay_IngresosMenosEgresos(t *testing.T) {
	f := newFixture()
	f.pay(t, at(10, 9), payment(efectivo, 30))
	f.pay(t, at(10, 18), payment(efectivo, 10), payment(tarjeta, 20))
	f.pay(t, at(11, 0), payment(efectivo, 30)) // otro día
	f.spend(t, at(10, 12), 25)

	s, err := f.cash.Day(f.ctx, at(10, 15))
	require.NoError(t, err)
	assert.Equal(t, "2026-05-10", s.Date)
	assert.True(t, s.Income.Equal(decimal.NewFromInt(60)))
	assert.True(t, s.IncomeByMethod[efectivo].Equal(decimal.NewFromInt(40)))
	assert.True(t, s.IncomeByMethod[tarjeta].Equal(decimal.NewFromInt(20)))
	assert.True(t, s.Expenses.Equal(decimal.NewFromInt(25)))
	assert.True(t, s.Balance.Equal(decimal.NewFromInt(35)))
}

func TestDay_SinMovimientos(t *testing.T) {
	f := newFixture()
	s, err := f.cash.Day(f.ctx, at(1, 0))
	require.NoError(t, err)
	assert.True(t, s.Income.IsZero())
	assert.True(t, s.Balance.IsZero())
}

func TestMonth_SumaLosDias(t *testing.T) {
	f := newFixture()
	f.pay(t, at(1, 10), payment(efectivo, 30))
	f.pay(t, at(31, 20), payment(tarjeta, 30))
	f.spend(t, at(15, 10), 12)
	f.spend(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local), 99)

	m, err := f.cash.Month(f.ctx, 2026, 5)
	require.NoError(t, err)
	require.Len(t, m.Days, 31)
	assert.Equal(t, "2026-05-01", m.Days[0].Date)
	assert.Equal(t, "2026-05-31", m.Days[30].Date)
	assert.True(t, m.Income.Equal(decimal.NewFromInt(60)))
	assert.True(t, m.Expenses.Equal(decimal.NewFromInt(12)))
	assert.True(t, m.Balance.Equal(decimal.NewFromInt(48)))

	_, err = f.cash.Month(f.ctx, 2026, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMonth_Febrero(t *testing.T) {
	f := newFixture()
	m, err := f.cash.Month(f.ctx, 2028, 2)
	require.NoError(t, err)
	assert.Len(t, m.Days, 29)
}

func TestDayPDF(t *testing.T) {
	f := newFixture()
	f.pay(t, at(10, 9), payment(efectivo, 30))
	b, err := f.cash.DayPDF(f.ctx, at(10, 0))
	require.NoError(t, err)
	assert.NotEmpty(t, b)
	require.NotNil(t, f.renderer.last)
	assert.True(t, f.renderer.last.Income.Equal(decimal.NewFromInt(30)))

	noPDF := cash.NewCashUseCase(f.store, f.store.Repos(), nil, efectivo, nil)
	_, err = noPDF.DayPDF(f.ctx, at(10, 0))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSession_AperturaYCierre(t *testing.T) {
	f := newFixture()
	opened, err := f.cash.OpenSession(f.ctx, actor, at(10, 8), decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, opened.Open)
	assert.Equal(t, "2026-05-10", opened.BusinessDay)

	_, err = f.cash.OpenSession(f.ctx, actor, at(10, 9), decimal.NewFromInt(50))
	assert.ErrorIs(t, err, domain.ErrConflict)

	f.pay(t, at(10, 11), payment(efectivo, 30), payment(tarjeta, 20))
	f.spend(t, at(10, 12), 10)

	closed, err := f.cash.CloseSession(f.ctx, actor, at(10, 21), decimal.NewFromInt(115))
	require.NoError(t, err)
	assert.False(t, closed.Open)
	require.NotNil(t, closed.ExpectedCash)
	assert.True(t, closed.ExpectedCash.Equal(decimal.NewFromInt(120)), "100 + 30 - 10")
	assert.True(t, closed.Difference.Equal(decimal.NewFromInt(-5)))

	_, err = f.cash.CloseSession(f.ctx, actor, at(10, 22), decimal.NewFromInt(120))
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := f.cash.GetSession(f.ctx, at(10, 0))
	require.NoError(t, err)
	assert.Equal(t, opened.ID, got.ID)
	assert.False(t, got.Open)
}

func TestSession_CierreSinApertura(t *testing.T) {
	f := newFixture()
	_, err := f.cash.CloseSession(f.ctx, actor, at(3, 20), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.cash.GetSession(f.ctx, at(3, 20))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.cash.OpenSession(f.ctx, actor, at(3, 8), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSession_MontosConMasDeDosDecimales(t *testing.T) {
	f := newFixture()
	_, err := f.cash.OpenSession(f.ctx, actor, at(4, 8), decimal.RequireFromString("100.001"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.cash.GetSession(f.ctx, at(4, 8))
	require.ErrorIs(t, err, domain.ErrNotFound, "no se abrió la caja")

	_, err = f.cash.OpenSession(f.ctx, actor, at(4, 8), decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = f.cash.CloseSession(f.ctx, actor, at(4, 20), decimal.RequireFromString("99.999"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.cash.GetSession(f.ctx, at(4, 0))
	require.NoError(t, err)
	assert.True(t, got.Open)
}
