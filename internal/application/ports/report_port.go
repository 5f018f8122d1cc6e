package ports

import "github.com/jhoicas/sauna-pos/internal/application/dto"

// CashSummaryRenderer genera el PDF del cuadre de caja diario.
type CashSummaryRenderer interface {
	RenderDay(summary *dto.DaySummaryResponse) ([]byte, error)
}
