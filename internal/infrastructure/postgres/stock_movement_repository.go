package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/stocktrack-api/internal/domain/entity"
	"github.com/tu-usuario/stocktrack-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, type, amount, previous_stock, new_stock, description, reference, date`

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con
// pool o tx). Solo inserta y lee: el ledger no tiene camino de actualización.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento y asigna el ID generado.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (product_id, type, amount, previous_stock, new_stock, description, reference, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		movement.ProductID, movement.Type, movement.Amount,
		movement.PreviousStock, movement.NewStock,
		movement.Description, movement.Reference, movement.Date,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct devuelve los movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID int64, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY date DESC, id DESC
		LIMIT NULLIF($2, 0)`
	rows, err := r.q.Query(ctx, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListRecent devuelve los últimos movimientos con el nombre del producto.
func (r *StockMovementRepo) ListRecent(ctx context.Context, limit int) ([]repository.MovementDetail, error) {
	query := `
		SELECT m.id, m.product_id, m.type, m.amount, m.previous_stock, m.new_stock, m.description, m.reference, m.date, p.name
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		ORDER BY m.date DESC, m.id DESC
		LIMIT NULLIF($1, 0)`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent movements: %w", err)
	}
	defer rows.Close()
	return scanMovementDetails(rows)
}

// ListSince devuelve los movimientos con fecha >= since, ascendente.
func (r *StockMovementRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE date >= $1
		ORDER BY date, id`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("list movements since: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListForReport filtra por rango [start, endExclusive) y opcionalmente por
// categoría del producto dueño, ordenado por fecha descendente.
func (r *StockMovementRepo) ListForReport(ctx context.Context, categoryID *int64, start, endExclusive *time.Time) ([]repository.MovementDetail, error) {
	query := `
		SELECT m.id, m.product_id, m.type, m.amount, m.previous_stock, m.new_stock, m.description, m.reference, m.date, p.name
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		WHERE ($1::BIGINT IS NULL OR p.category_id = $1)
		  AND ($2::TIMESTAMPTZ IS NULL OR m.date >= $2)
		  AND ($3::TIMESTAMPTZ IS NULL OR m.date < $3)
		ORDER BY m.date DESC, m.id DESC`
	rows, err := r.q.Query(ctx, query, categoryID, start, endExclusive)
	if err != nil {
		return nil, fmt.Errorf("list movements for report: %w", err)
	}
	defer rows.Close()
	return scanMovementDetails(rows)
}

// CountByProduct cuenta los movimientos de un producto.
func (r *StockMovementRepo) CountByProduct(ctx context.Context, productID int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM stock_movements WHERE product_id = $1`, productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}

// DeleteByProduct elimina en bloque los movimientos de un producto y devuelve
// cuántos se eliminaron. Única vía de borrado del ledger (cascada del
// force-delete de producto).
func (r *StockMovementRepo) DeleteByProduct(ctx context.Context, productID int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete movements by product: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Type, &m.Amount, &m.PreviousStock,
			&m.NewStock, &m.Description, &m.Reference, &m.Date,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func scanMovementDetails(rows pgx.Rows) ([]repository.MovementDetail, error) {
	var list []repository.MovementDetail
	for rows.Next() {
		var d repository.MovementDetail
		if err := rows.Scan(
			&d.ID, &d.ProductID, &d.Type, &d.Amount, &d.PreviousStock,
			&d.NewStock, &d.Description, &d.Reference, &d.Date, &d.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan movement detail: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
