package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Stock es el stock inicial: genera el movimiento semilla del ledger.
type CreateProductRequest struct {
	Name       string          `json:"name"`
	Barcode    string          `json:"barcode"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	MinStock   *int            `json:"min_stock"`
	CategoryID int64           `json:"category_id"`
}

// UpdateProductRequest entrada para actualizar un producto.
// Sin Stock: el stock solo se modifica vía movimientos del ledger.
type UpdateProductRequest struct {
	Name       *string          `json:"name"`
	Barcode    *string          `json:"barcode"`
	Price      *decimal.Decimal `json:"price"`
	MinStock   *int             `json:"min_stock"`
	CategoryID *int64           `json:"category_id"`
	Active     *bool            `json:"active"`
}

// ProductResponse salida de un producto. CriticalStock y TotalValue son
// derivados, calculados en lectura.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Barcode       string          `json:"barcode,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	MinStock      int             `json:"min_stock"`
	CategoryID    int64           `json:"category_id"`
	Active        bool            `json:"active"`
	CriticalStock bool            `json:"critical_stock"`
	TotalValue    decimal.Decimal `json:"total_value"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// DeleteProductResult resultado del borrado de un producto.
// Si el producto tiene movimientos y no se fuerza, el borrado se rechaza y
// MovementCount informa cuántos movimientos se eliminarían con force=true.
type DeleteProductResult struct {
	Deleted          bool  `json:"deleted"`
	MovementsDeleted int64 `json:"movements_deleted"`
	MovementCount    int   `json:"movement_count,omitempty"`
}
