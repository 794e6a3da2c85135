package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/tu-usuario/stocktrack-api/internal/application/dto"
	"github.com/tu-usuario/stocktrack-api/internal/domain"
	"github.com/tu-usuario/stocktrack-api/internal/domain/entity"
	"github.com/tu-usuario/stocktrack-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El nombre es único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateCategoryFields(name, in.Description); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category := &entity.Category{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, category), nil
}

// GetByID obtiene una categoría por ID con su conteo de productos.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(ctx, category), nil
}

// Update actualiza nombre y/o descripción de una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < entity.CategoryNameMin || len(name) > entity.CategoryNameMax {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.repo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != category.ID {
			return nil, domain.ErrDuplicate
		}
		category.Name = name
	}
	if in.Description != nil {
		if len(*in.Description) > entity.CategoryDescriptionMax {
			return nil, domain.ErrInvalidInput
		}
		category.Description = strings.TrimSpace(*in.Description)
	}
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, category), nil
}

// List lista categorías con búsqueda por nombre y paginación.
func (uc *CategoryUseCase) List(ctx context.Context, search string, limit, offset int) (*dto.CategoryListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.repo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *uc.toResponse(ctx, c))
	}
	return &dto.CategoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

// Delete elimina una categoría. Se rechaza con ErrConflict si la categoría
// todavía es dueña de algún producto.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	count, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

func validateCategoryFields(name, description string) error {
	if len(name) < entity.CategoryNameMin || len(name) > entity.CategoryNameMax {
		return domain.ErrInvalidInput
	}
	if len(description) > entity.CategoryDescriptionMax {
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *CategoryUseCase) toResponse(ctx context.Context, c *entity.Category) *dto.CategoryResponse {
	count, _ := uc.repo.CountProducts(ctx, c.ID)
	return &dto.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		ProductCount: count,
		CreatedAt:    c.CreatedAt,
	}
}
