package repository

import (
	"context"

	"github.com/tu-usuario/stocktrack-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error)
	CountProducts(ctx context.Context, categoryID int64) (int, error)
	Delete(ctx context.Context, id int64) error
}
