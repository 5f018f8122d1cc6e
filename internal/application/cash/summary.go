// Package cash calcula el cuadre de caja (proyección de solo lectura sobre pagos y egresos)
// y administra la sesión de caja persistida por día hábil.
package cash

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/application/ports"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
	"github.com/jhoicas/sauna-pos/pkg/logger"
)

// monthWorkers días calculados en paralelo en el resumen mensual.
const monthWorkers = 4

// CashUseCase cuadre diario/mensual y sesiones de caja.
type CashUseCase struct {
	tx           ports.TxRunner
	repos        repository.Repos
	renderer     ports.CashSummaryRenderer
	cashMethodID string
	log          *logger.Logger
}

// NewCashUseCase construye el caso de uso. cashMethodID identifica el medio de pago en efectivo
// (el único que cuenta para el arqueo). renderer puede ser nil si no se exporta PDF.
func NewCashUseCase(
	tx ports.TxRunner,
	repos repository.Repos,
	renderer ports.CashSummaryRenderer,
	cashMethodID string,
	log *logger.Logger,
) *CashUseCase {
	return &CashUseCase{tx: tx, repos: repos, renderer: renderer, cashMethodID: cashMethodID, log: logger.OrNop(log)}
}

// Day suma los pagos del día (total y por medio de pago) y los egresos del día.
// Se calcula en cada llamada; no se persiste.
func (uc *CashUseCase) Day(ctx context.Context, day time.Time) (*dto.DaySummaryResponse, error) {
	from := startOfDay(day)
	return daySummary(ctx, uc.repos, from, from.AddDate(0, 0, 1))
}

// Month aplica el cuadre diario a cada día del mes y suma los resultados.
func (uc *CashUseCase) Month(ctx context.Context, year, month int) (*dto.MonthSummaryResponse, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, domain.Validation("año o mes inválido")
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	n := first.AddDate(0, 1, -1).Day()

	results := make([]*dto.DaySummaryResponse, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(monthWorkers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			from := first.AddDate(0, 0, i)
			s, err := daySummary(gctx, uc.repos, from, from.AddDate(0, 0, 1))
			if err != nil {
				return err
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.MonthSummaryResponse{
		Year:     year,
		Month:    month,
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
		Days:     make([]dto.DaySummaryResponse, 0, n),
	}
	for _, s := range results {
		out.Income = out.Income.Add(s.Income)
		out.Expenses = out.Expenses.Add(s.Expenses)
		out.Days = append(out.Days, *s)
	}
	out.Balance = out.Income.Sub(out.Expenses)
	return out, nil
}

// DayPDF genera el PDF del cuadre del día.
func (uc *CashUseCase) DayPDF(ctx context.Context, day time.Time) ([]byte, error) {
	if uc.renderer == nil {
		return nil, domain.NotFound("exportación PDF no disponible")
	}
	s, err := uc.Day(ctx, day)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderDay(s)
}

func daySummary(ctx context.Context, repos repository.Repos, from, to time.Time) (*dto.DaySummaryResponse, error) {
	byMethod, err := repos.Payments.SumByMethod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := repos.Expenses.SumByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	income := decimal.Zero
	for _, amount := range byMethod {
		income = income.Add(amount)
	}
	return &dto.DaySummaryResponse{
		Date:           from.Format("2006-01-02"),
		Income:         income,
		IncomeByMethod: byMethod,
		Expenses:       expenses,
		Balance:        income.Sub(expenses),
	}, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
