// Package ledger implementa el motor del libro de movimientos: toda mutación
// de stock pasa por aquí y deja un StockMovement inmutable como justificante.
package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stocktrack-api/internal/application/dto"
	"github.com/tu-usuario/stocktrack-api/internal/domain"
	"github.com/tu-usuario/stocktrack-api/internal/domain/entity"
	"github.com/tu-usuario/stocktrack-api/internal/domain/repository"
)

// SeedDescription descripción del movimiento semilla de stock inicial.
const SeedDescription = "Stock inicial"

// RegisterMovementUseCase registra movimientos de stock de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.StockMovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso. movementRepo se usa
// solo para lecturas fuera de transacción (historial por producto).
func NewRegisterMovementUseCase(txRunner TxRunner, movementRepo repository.StockMovementRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, movementRepo: movementRepo}
}

// ListByProduct devuelve el historial de movimientos de un producto,
// del más reciente al más antiguo.
func (uc *RegisterMovementUseCase) ListByProduct(ctx context.Context, productID int64, limit int) ([]dto.MovementResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	movements, err := uc.movementRepo.ListByProduct(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, *toMovementResponse(m))
	}
	return items, nil
}

// RegisterMovement aplica un movimiento de entrada o salida sobre un producto.
//
// Validaciones antes de tocar la BD: tipo ∈ {inflow, outflow} y amount >= 1.
// Dentro de la transacción: bloquea la fila del producto, captura
// previous_stock, calcula new_stock, rechaza salidas que dejarían stock
// negativo (ErrInsufficientStock, sin mutación alguna) y persiste la
// actualización del stock junto con el movimiento en una sola tx.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Amount < 1 {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Description) > entity.DescriptionMax {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		previous := product.Stock
		var next int
		switch in.Type {
		case entity.MovementTypeInflow:
			next = previous + in.Amount
		case entity.MovementTypeOutflow:
			if in.Amount > previous {
				return domain.ErrInsufficientStock
			}
			next = previous - in.Amount
		}

		if err := productRepo.UpdateStock(ctx, product.ID, next); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ProductID:     product.ID,
			Type:          in.Type,
			Amount:        in.Amount,
			PreviousStock: previous,
			NewStock:      next,
			Description:   strings.TrimSpace(in.Description),
			Reference:     uuid.New().String(),
			Date:          time.Now().UTC(),
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(created), nil
}

// SeedInitialStock inserta el movimiento semilla de un producto recién creado:
// previous_stock = 0, new_stock = amount = stock inicial. Se invoca dentro de
// la misma transacción que crea el producto. A diferencia de los movimientos
// enviados por el usuario, la semilla se registra incluso con amount = 0
// (la regla amount >= 1 aplica solo a movimientos explícitos).
func SeedInitialStock(ctx context.Context, movementRepo repository.StockMovementRepository, product *entity.Product) (*entity.StockMovement, error) {
	mov := &entity.StockMovement{
		ProductID:     product.ID,
		Type:          entity.MovementTypeInflow,
		Amount:        product.Stock,
		PreviousStock: 0,
		NewStock:      product.Stock,
		Description:   SeedDescription,
		Reference:     uuid.New().String(),
		Date:          time.Now().UTC(),
	}
	if err := movementRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Amount:        m.Amount,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Description:   m.Description,
		Reference:     m.Reference,
		Date:          m.Date,
	}
}
