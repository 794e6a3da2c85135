package dto

import "github.com/shopspring/decimal"

// ReportProductRow fila de producto para el sink de renderizado
// (hoja "Products" del Excel / tabla del PDF).
type ReportProductRow struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Barcode    string          `json:"barcode"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	MinStock   int             `json:"min_stock"`
	Status     string          `json:"status"` // Critical | Normal
	TotalValue decimal.Decimal `json:"total_value"`
}

// ReportMovementRow fila de movimiento para el sink de renderizado.
type ReportMovementRow struct {
	Date          string `json:"date"` // YYYY-MM-DD HH:MM
	Product       string `json:"product"`
	Type          string `json:"type"` // Inflow | Outflow
	Amount        int    `json:"amount"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
	Description   string `json:"description"`
}

// ReportResult resultado estructurado del motor de reportes. El motor no
// aplica formato ni estilo: eso es trabajo del sink (Excel / PDF).
type ReportResult struct {
	Products     []ReportProductRow  `json:"products"`
	Movements    []ReportMovementRow `json:"movements"`
	TotalInflow  int                 `json:"total_inflow"`
	TotalOutflow int                 `json:"total_outflow"`
	NetMovement  int                 `json:"net_movement"`
	StartDate    string              `json:"start_date,omitempty"`
	EndDate      string              `json:"end_date,omitempty"`
	Category     string              `json:"category,omitempty"` // vacío = todas
}
