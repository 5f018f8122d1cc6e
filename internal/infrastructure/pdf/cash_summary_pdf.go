// Package pdf genera el reporte PDF del cuadre de caja diario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────┐
//	│  HEADER: nombre del negocio │ Fecha          │
//	│  ─────────────────────────────────────────  │
//	│  TABLA: Medio de pago | Monto                │
//	│  ─────────────────────────────────────────  │
//	│  TOTALES: Ingresos / Egresos / SALDO         │
//	└─────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"sort"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/application/ports"
)

var _ ports.CashSummaryRenderer = (*CashSummaryPDF)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// CashSummaryPDF implementa ports.CashSummaryRenderer con Maroto v2.
type CashSummaryPDF struct {
	business string
}

// NewCashSummaryPDF construye el generador. business aparece en el encabezado.
func NewCashSummaryPDF(business string) *CashSummaryPDF {
	return &CashSummaryPDF{business: business}
}

// RenderDay genera el PDF del cuadre del día y devuelve sus bytes.
func (g *CashSummaryPDF) RenderDay(s *dto.DaySummaryResponse) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("pdf: cuadre vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Cuadre de caja "+s.Date, true).
		WithAuthor(g.business, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(g.business, s.Date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(methodRows(s.IncomeByMethod)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(s))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(business, date string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(business, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("Cuadre de caja diario", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Fecha", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(date, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
		),
	)
}

func tableHeaderRow() core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New("Medio de pago", props.Text{Style: fontstyle.Bold, Size: 9, Top: 2})),
		col.New(4).Add(text.New("Monto", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2})),
	)
}

// methodRows una fila por medio de pago, en orden alfabético.
func methodRows(byMethod map[string]decimal.Decimal) []core.Row {
	if len(byMethod) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin ingresos registrados", props.Text{Size: 9, Color: colorGray, Top: 1}),
		))}
	}
	methods := make([]string, 0, len(byMethod))
	for m := range byMethod {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	rows := make([]core.Row, 0, len(methods))
	for _, m := range methods {
		rows = append(rows, row.New(7).Add(
			col.New(8).Add(text.New(m, props.Text{Size: 9, Top: 1})),
			col.New(4).Add(text.New(FormatMoney(byMethod[m]), props.Text{Size: 9, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func totalsRow(s *dto.DaySummaryResponse) core.Row {
	label := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2})
	}
	value := func(v string) core.Component {
		return text.New(v, props.Text{Size: 10, Align: align.Right})
	}
	balanceColor := colorPrimary
	if s.Balance.IsNegative() {
		balanceColor = colorRed
	}
	return row.New(24).Add(
		col.New(4),
		col.New(4).Add(
			label("Ingresos:"),
			label("Egresos:"),
			text.New("SALDO:", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: balanceColor, Right: 2}),
		),
		col.New(4).Add(
			value(FormatMoney(s.Income)),
			value(FormatMoney(s.Expenses)),
			text.New(FormatMoney(s.Balance), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: balanceColor}),
		),
	)
}

// FormatMoney formatea un monto sin decimales con puntos de miles. Ej: 1250000 -> "$1.250.000", -500 -> "-$500".
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(0)
	n := len(s)
	var b strings.Builder
	if d.Round(0).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(c)
	}
	return b.String()
}
