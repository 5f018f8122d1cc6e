package repository

import (
	"context"

	"github.com/jhoicas/sauna-pos/internal/domain/entity"
)

// ServiceLineRepository líneas de servicio de una cuenta.
type ServiceLineRepository interface {
	Create(ctx context.Context, l *entity.ServiceLineItem) error
	GetByID(ctx context.Context, id string) (*entity.ServiceLineItem, error)
	Update(ctx context.Context, l *entity.ServiceLineItem) error
	Delete(ctx context.Context, id string) error
	ListByAccount(ctx context.Context, accountID string) ([]*entity.ServiceLineItem, error)
}

// ProductLineRepository líneas de producto de una cuenta.
type ProductLineRepository interface {
	Create(ctx context.Context, l *entity.ProductLineItem) error
	GetByID(ctx context.Context, id string) (*entity.ProductLineItem, error)
	Update(ctx context.Context, l *entity.ProductLineItem) error
	Delete(ctx context.Context, id string) error
	ListByAccount(ctx context.Context, accountID string) ([]*entity.ProductLineItem, error)
}
