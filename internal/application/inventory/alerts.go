package inventory

import (
	"context"

	"github.com/jhoicas/sauna-pos/internal/application/ports"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/pkg/logger"
)

// Alerter publica avisos de stock bajo o agotado. Se llama después del commit.
type Alerter struct {
	pub ports.StockAlertPublisher
	log *logger.Logger
}

// NewAlerter construye el notificador. pub puede ser nil (sin avisos).
func NewAlerter(pub ports.StockAlertPublisher, log *logger.Logger) *Alerter {
	return &Alerter{pub: pub, log: logger.OrNop(log)}
}

// Notify publica un aviso por cada producto que quedó en stock bajo o sin stock.
// Los errores de publicación solo se registran.
func (a *Alerter) Notify(ctx context.Context, products ...*entity.Product) {
	if a == nil || a.pub == nil {
		return
	}
	for _, p := range products {
		if p == nil {
			continue
		}
		status := p.StockStatus()
		if status == entity.StockStatusNormal {
			continue
		}
		alert := ports.StockAlert{
			ProductID: p.ID,
			Code:      p.Code,
			Name:      p.Name,
			Stock:     p.StockActual,
			MinStock:  p.MinStock,
			Status:    status,
		}
		if err := a.pub.Publish(ctx, alert); err != nil {
			a.log.Warn().Err(err).Str("product_id", p.ID).Msg("no se pudo publicar aviso de stock")
		}
	}
}
