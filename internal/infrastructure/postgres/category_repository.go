package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stocktrack-api/internal/domain"
	"github.com/tu-usuario/stocktrack-api/internal/domain/entity"
	"github.com/tu-usuario/stocktrack-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL
// (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría y asigna el ID generado.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (name, description, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, category.Name, category.Description, category.CreatedAt).
		Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. Devuelve nil si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	query := `
		SELECT id, name, description, created_at
		FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// GetByName obtiene una categoría por nombre exacto. Devuelve nil si no existe.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	query := `
		SELECT id, name, description, created_at
		FROM categories WHERE name = $1`
	var c entity.Category
	err := r.q.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return &c, nil
}

// Update actualiza nombre y descripción.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, description = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, category.ID, category.Name, category.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// List lista categorías con búsqueda por nombre (ILIKE) y paginación.
// limit <= 0 es sin límite.
func (r *CategoryRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	query := `
		SELECT id, name, description, created_at
		FROM categories
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY id
		LIMIT NULLIF($2, 0) OFFSET $3`
	rows, err := r.q.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CountProducts cuenta los productos que pertenecen a la categoría.
func (r *CategoryRepo) CountProducts(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return count, nil
}

// Delete elimina la categoría. La FK de products la protege: si todavía tiene
// productos, la violación se traduce a ErrConflict.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
