package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/stocktrack-api/internal/domain/entity"
)

// MovementDetail movimiento con el nombre del producto dueño (para listados
// del dashboard y filas de reportes; evita N+1 en la capa de aplicación).
type MovementDetail struct {
	entity.StockMovement
	ProductName string
}

// StockMovementRepository define el puerto de persistencia del ledger (DIP).
// El ledger es append-only: no existe Update y el borrado solo es en bloque
// por producto (cascada del force-delete).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID int64, limit int) ([]*entity.StockMovement, error)
	// ListRecent devuelve los últimos movimientos (fecha descendente) con
	// nombre de producto, para el dashboard.
	ListRecent(ctx context.Context, limit int) ([]MovementDetail, error)
	// ListSince devuelve los movimientos con fecha >= since (ventana de analítica).
	ListSince(ctx context.Context, since time.Time) ([]*entity.StockMovement, error)
	// ListForReport filtra por rango [start, endExclusive) y opcionalmente por
	// categoría del producto dueño (join), ordenado por fecha descendente.
	// Ambos extremos nil = sin filtro de fechas.
	ListForReport(ctx context.Context, categoryID *int64, start, endExclusive *time.Time) ([]MovementDetail, error)
	CountByProduct(ctx context.Context, productID int64) (int, error)
	DeleteByProduct(ctx context.Context, productID int64) (int64, error)
}
