package repository

import (
	"context"

	"github.com/jhoicas/sauna-pos/internal/domain/entity"
)

// ServiceCatalogRepository catálogo de servicios (solo lectura).
type ServiceCatalogRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Service, error)
}
