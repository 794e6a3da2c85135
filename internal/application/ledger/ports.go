package ledger

import (
	"context"

	"github.com/tu-usuario/stocktrack-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización del stock y la
// inserción del movimiento se confirman (o revierten) como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
