package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Límites de validación para Product (alineados con el esquema SQL).
const (
	ProductNameMin  = 2
	ProductNameMax  = 100
	BarcodeMax      = 50
	DefaultMinStock = 10
)

// Product representa un producto del inventario.
// Stock nunca se modifica directamente: solo el motor del libro de movimientos
// (ledger) lo actualiza, dejando siempre un StockMovement como justificante.
type Product struct {
	ID         int64
	Name       string
	Barcode    *string // nil si no tiene; único cuando existe
	Price      decimal.Decimal
	Stock      int
	MinStock   int
	CategoryID int64
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CriticalStock indica si el stock está en nivel crítico (stock <= mínimo).
// Se calcula siempre en lectura; nunca se almacena para evitar valores rancios
// tras una mutación de stock.
func (p *Product) CriticalStock() bool {
	return p.Stock <= p.MinStock
}

// LowStock indica si el producto entra en la banda de alerta temprana:
// stock <= min_stock * 1.2 (20% por encima del mínimo). Es un predicado más
// laxo que CriticalStock y siempre lo contiene.
func (p *Product) LowStock() bool {
	return float64(p.Stock) <= float64(p.MinStock)*1.2
}

// TotalValue devuelve el valor del inventario del producto (stock * precio).
func (p *Product) TotalValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}
