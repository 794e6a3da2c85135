package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/tu-usuario/stocktrack-api/internal/application/dto"
	"github.com/tu-usuario/stocktrack-api/internal/application/ledger"
	"github.com/tu-usuario/stocktrack-api/internal/domain"
	"github.com/tu-usuario/stocktrack-api/internal/domain/entity"
	"github.com/tu-usuario/stocktrack-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock nunca se edita
// directamente: la creación siembra el movimiento inicial vía el ledger y
// las ediciones posteriores excluyen el campo stock.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	movementRepo repository.StockMovementRepository
	txRunner     ledger.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	movementRepo repository.StockMovementRepository,
	txRunner ledger.TxRunner,
) *ProductUseCase {
	return &ProductUseCase{
		repo:         repo,
		categoryRepo: categoryRepo,
		movementRepo: movementRepo,
		txRunner:     txRunner,
	}
}

// Create crea un producto y siembra el movimiento de stock inicial
// (previous_stock = 0) en la misma transacción: producto y semilla del ledger
// se confirman o revierten juntos.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < entity.ProductNameMin || len(name) > entity.ProductNameMax {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	minStock := entity.DefaultMinStock
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		minStock = *in.MinStock
	}
	barcode, err := uc.normalizeBarcode(ctx, in.Barcode, 0)
	if err != nil {
		return nil, err
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	product := &entity.Product{
		Name:       name,
		Barcode:    barcode,
		Price:      in.Price,
		Stock:      in.Stock,
		MinStock:   minStock,
		CategoryID: in.CategoryID,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		_, err := ledger.SeedInitialStock(ctx, movementRepo, product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, barcode, precio, stock mínimo, categoría y estado.
// Nunca el stock: ese campo solo lo muta el motor del ledger.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < entity.ProductNameMin || len(name) > entity.ProductNameMax {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Barcode != nil {
		barcode, err := uc.normalizeBarcode(ctx, *in.Barcode, product.ID)
		if err != nil {
			return nil, err
		}
		product.Barcode = barcode
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtro por categoría, búsqueda por nombre y paginación.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

// Delete elimina un producto. Si tiene movimientos y force es false, se
// rechaza con ErrConflict y el resultado informa cuántos movimientos existen.
// Con force, los movimientos se eliminan en bloque junto con el producto en
// una sola transacción (única vía de borrado de entradas del ledger).
func (uc *ProductUseCase) Delete(ctx context.Context, id int64, force bool) (*dto.DeleteProductResult, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	count, err := uc.movementRepo.CountByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if count > 0 && !force {
		return &dto.DeleteProductResult{Deleted: false, MovementCount: count}, domain.ErrConflict
	}

	result := &dto.DeleteProductResult{}
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		deleted, err := movementRepo.DeleteByProduct(ctx, id)
		if err != nil {
			return err
		}
		if err := productRepo.Delete(ctx, id); err != nil {
			return err
		}
		result.Deleted = true
		result.MovementsDeleted = deleted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// normalizeBarcode recorta el barcode, lo convierte en nil si queda vacío y
// verifica unicidad (excluyendo a excludeID en ediciones).
func (uc *ProductUseCase) normalizeBarcode(ctx context.Context, raw string, excludeID int64) (*string, error) {
	barcode := strings.TrimSpace(raw)
	if barcode == "" {
		return nil, nil
	}
	if len(barcode) > entity.BarcodeMax {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != excludeID {
		return nil, domain.ErrDuplicate
	}
	return &barcode, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	barcode := ""
	if p.Barcode != nil {
		barcode = *p.Barcode
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Barcode:       barcode,
		Price:         p.Price,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		CategoryID:    p.CategoryID,
		Active:        p.Active,
		CriticalStock: p.CriticalStock(),
		TotalValue:    p.TotalValue(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
