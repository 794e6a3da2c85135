package dto

import "time"

// RegisterMovementRequest entrada para registrar un movimiento de stock.
type RegisterMovementRequest struct {
	ProductID   int64  `json:"product_id"`
	Type        string `json:"type"` // inflow | outflow
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"product_id"`
	ProductName   string    `json:"product_name,omitempty"`
	Type          string    `json:"type"`
	Amount        int       `json:"amount"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Description   string    `json:"description,omitempty"`
	Reference     string    `json:"reference"`
	Date          time.Time `json:"date"`
}
