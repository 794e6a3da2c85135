package entity

import "time"

// Tipos de movimiento de stock (value object conceptual).
const (
	MovementTypeInflow  = "inflow"  // entrada: recepción / reposición
	MovementTypeOutflow = "outflow" // salida: venta / consumo
)

// DescriptionMax longitud máxima de la descripción de un movimiento.
const DescriptionMax = 200

// StockMovement es una entrada inmutable del libro de movimientos: cada cambio
// de stock queda registrado con la foto del stock anterior y el nuevo.
// Nunca se edita ni se borra individualmente; solo se eliminan en bloque al
// forzar el borrado del producto dueño.
//
// Invariantes: NewStock == PreviousStock + Amount para inflow y
// NewStock == PreviousStock - Amount para outflow.
type StockMovement struct {
	ID            int64
	ProductID     int64
	Type          string // inflow, outflow
	Amount        int
	PreviousStock int
	NewStock      int
	Description   string
	Reference     string // UUID de la operación que originó el movimiento
	Date          time.Time
}

// ValidMovementType valida el tipo de movimiento recibido del caller.
func ValidMovementType(t string) bool {
	return t == MovementTypeInflow || t == MovementTypeOutflow
}
