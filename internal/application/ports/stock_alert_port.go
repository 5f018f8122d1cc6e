package ports

import "context"

// StockAlert aviso de stock bajo o agotado.
type StockAlert struct {
	ProductID string `json:"product_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"min_stock"`
	Status    string `json:"status"`
}

// StockAlertPublisher publica avisos de stock. Se invoca después del commit;
// un error aquí nunca revierte la operación.
type StockAlertPublisher interface {
	Publish(ctx context.Context, alert StockAlert) error
}
