package repository

import (
	"context"

	"github.com/tu-usuario/stocktrack-api/internal/domain/entity"
)

// ProductFilter criterios de listado de productos.
// CategoryID nil = todas las categorías; Limit 0 = sin límite.
type ProductFilter struct {
	CategoryID *int64
	Search     string
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Stock no se modifica vía Update: solo UpdateStock, invocado por el motor
// del ledger dentro de una transacción.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción (TxRunner).
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id int64, stock int) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int, error)
	Delete(ctx context.Context, id int64) error
}
