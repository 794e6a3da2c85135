package dto

import "github.com/shopspring/decimal"

// StockStatusDTO conteo de productos en nivel crítico vs normal.
type StockStatusDTO struct {
	Normal   int `json:"normal"`
	Critical int `json:"critical"`
}

// CategoryCountDTO productos por categoría.
type CategoryCountDTO struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	Count        int    `json:"count"`
}

// CategoryValueDTO valor de inventario (stock * precio) por categoría.
type CategoryValueDTO struct {
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Value        decimal.Decimal `json:"value"`
}

// TrendPointDTO sumas de entrada y salida de un día calendario (UTC).
// Los días sin movimientos no aparecen en la serie.
type TrendPointDTO struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Inflow  int    `json:"inflow"`
	Outflow int    `json:"outflow"`
}

// TopProductDTO producto rankeado por valor de inventario.
type TopProductDTO struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Value     decimal.Decimal `json:"value"`
}

// AnalyticsSummaryDTO estadísticas agregadas del panel de analítica.
type AnalyticsSummaryDTO struct {
	TotalProducts    int             `json:"total_products"`
	CriticalProducts int             `json:"critical_products"`
	TotalCategories  int             `json:"total_categories"`
	TotalStockValue  decimal.Decimal `json:"total_stock_value"`
	TotalInflow      int             `json:"total_inflow"`
	TotalOutflow     int             `json:"total_outflow"`
	NetMovement      int             `json:"net_movement"`
	LowStockCount    int             `json:"low_stock_count"`
}

// AnalyticsResponse panel completo de analítica.
type AnalyticsResponse struct {
	StockStatus          StockStatusDTO     `json:"stock_status"`
	CategoryDistribution []CategoryCountDTO `json:"category_distribution"`
	CategoryValues       []CategoryValueDTO `json:"category_values"`
	StockTrends          []TrendPointDTO    `json:"stock_trends"`
	TopProducts          []TopProductDTO    `json:"top_products"`
	LowStockProducts     []ProductResponse  `json:"low_stock_products"`
	Summary              AnalyticsSummaryDTO `json:"summary"`
}

// DashboardResponse resumen de la página principal.
type DashboardResponse struct {
	TotalProducts    int                `json:"total_products"`
	TotalStock       int                `json:"total_stock"`
	CriticalStock    int                `json:"critical_stock"`
	TotalValue       decimal.Decimal    `json:"total_value"`
	LastMovements    []MovementResponse `json:"last_movements"`
	CriticalProducts []ProductResponse  `json:"critical_products"`
}
