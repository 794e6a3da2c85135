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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, barcode, price, stock, min_stock, category_id, active, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto y asigna el ID generado.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, barcode, price, stock, min_stock, category_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.Barcode, product.Price, product.Stock,
		product.MinStock, product.CategoryID, product.Active,
		product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get product")
}

// GetByBarcode obtiene un producto por barcode. Devuelve nil si no existe.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, barcode), "get product by barcode")
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Pensado para usarse dentro de una transacción del TxRunner.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get product for update")
}

// Update actualiza los campos editables. No toca stock: ese campo solo lo
// modifica UpdateStock desde el motor del ledger.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, barcode = $3, price = $4, min_stock = $5, category_id = $6, active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Barcode, product.Price,
		product.MinStock, product.CategoryID, product.Active, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock fija el stock del producto (solo motor del ledger).
func (r *ProductRepo) UpdateStock(ctx context.Context, id int64, stock int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List lista productos con filtro por categoría, búsqueda por nombre (ILIKE)
// y paginación. Orden por id ascendente: el orden de inserción es el
// desempate del ranking de analítica.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1::BIGINT IS NULL OR category_id = $1)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY id
		LIMIT NULLIF($3, 0) OFFSET $4`
	rows, err := r.q.Query(ctx, query, filter.CategoryID, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Barcode, &p.Price, &p.Stock, &p.MinStock,
			&p.CategoryID, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Count cuenta productos con el mismo filtro de List (sin paginación).
func (r *ProductRepo) Count(ctx context.Context, filter repository.ProductFilter) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM products
		WHERE ($1::BIGINT IS NULL OR category_id = $1)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%')`
	var count int
	if err := r.q.QueryRow(ctx, query, filter.CategoryID, filter.Search).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// Delete elimina un producto por ID. Los movimientos deben eliminarse antes
// (cascada explícita del force-delete).
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Barcode, &p.Price, &p.Stock, &p.MinStock,
		&p.CategoryID, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
