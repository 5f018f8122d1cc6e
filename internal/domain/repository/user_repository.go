package repository

import (
	"context"

	"github.com/jhoicas/sauna-pos/internal/domain/entity"
)

// UserRepository solo lectura: los usuarios se administran fuera del núcleo.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
