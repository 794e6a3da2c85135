// Package analytics contiene los casos de uso de solo lectura del panel de
// analítica y del dashboard principal. Todo el cálculo es en memoria sobre
// las colecciones actuales; nada se muta.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stocktrack-api/internal/application/dto"
	"github.com/tu-usuario/stocktrack-api/internal/domain/entity"
	"github.com/tu-usuario/stocktrack-api/internal/domain/repository"
)

const (
	// DefaultTrendWindowDays ventana por defecto de la serie de tendencia.
	DefaultTrendWindowDays = 30
	// TopProductsLimit tamaño del ranking de productos por valor.
	TopProductsLimit = 10

	dashboardLastMovements = 10
)

// AnalyticsUseCase agrega productos, categorías y movimientos en los
// resúmenes, series y rankings del panel de analítica.
//
// Política de zona horaria: la agrupación por día calendario usa UTC, de modo
// que la serie es estable entre despliegues con distinta hora local.
type AnalyticsUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	movementRepo repository.StockMovementRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	movementRepo repository.StockMovementRepository,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		movementRepo: movementRepo,
	}
}

// GetAnalytics construye el panel completo sobre la ventana indicada
// (windowDays <= 0 usa la ventana por defecto de 30 días).
//
// Las lecturas no son un snapshot consistente entre sí: aceptable para un
// panel, no para conciliación exacta.
func (uc *AnalyticsUseCase) GetAnalytics(ctx context.Context, windowDays int) (*dto.AnalyticsResponse, error) {
	if windowDays <= 0 {
		windowDays = DefaultTrendWindowDays
	}

	products, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryRepo.List(ctx, "", 0, 0)
	if err != nil {
		return nil, err
	}
	since := time.Now().UTC().AddDate(0, 0, -windowDays)
	movements, err := uc.movementRepo.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	critical := 0
	lowStock := make([]dto.ProductResponse, 0)
	totalValue := decimal.Zero
	for _, p := range products {
		if p.CriticalStock() {
			critical++
		}
		if p.LowStock() {
			lowStock = append(lowStock, *productRow(p))
		}
		totalValue = totalValue.Add(p.TotalValue())
	}

	totalInflow, totalOutflow := movementTotals(movements)

	return &dto.AnalyticsResponse{
		StockStatus: dto.StockStatusDTO{
			Normal:   len(products) - critical,
			Critical: critical,
		},
		CategoryDistribution: categoryDistribution(categories, products),
		CategoryValues:       categoryValues(categories, products),
		StockTrends:          MovementTrend(movements),
		TopProducts:          TopProductsByValue(products, TopProductsLimit),
		LowStockProducts:     lowStock,
		Summary: dto.AnalyticsSummaryDTO{
			TotalProducts:    len(products),
			CriticalProducts: critical,
			TotalCategories:  len(categories),
			TotalStockValue:  totalValue.Round(2),
			TotalInflow:      totalInflow,
			TotalOutflow:     totalOutflow,
			NetMovement:      totalInflow - totalOutflow,
			LowStockCount:    len(lowStock),
		},
	}, nil
}

// GetDashboard construye el resumen de la página principal: totales, últimos
// movimientos y productos en nivel crítico.
func (uc *AnalyticsUseCase) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	recent, err := uc.movementRepo.ListRecent(ctx, dashboardLastMovements)
	if err != nil {
		return nil, err
	}

	totalStock := 0
	critical := 0
	totalValue := decimal.Zero
	criticalProducts := make([]dto.ProductResponse, 0)
	for _, p := range products {
		totalStock += p.Stock
		totalValue = totalValue.Add(p.TotalValue())
		if p.CriticalStock() {
			critical++
			criticalProducts = append(criticalProducts, *productRow(p))
		}
	}

	last := make([]dto.MovementResponse, 0, len(recent))
	for _, m := range recent {
		last = append(last, dto.MovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			ProductName:   m.ProductName,
			Type:          m.Type,
			Amount:        m.Amount,
			PreviousStock: m.PreviousStock,
			NewStock:      m.NewStock,
			Description:   m.Description,
			Reference:     m.Reference,
			Date:          m.Date,
		})
	}

	return &dto.DashboardResponse{
		TotalProducts:    len(products),
		TotalStock:       totalStock,
		CriticalStock:    critical,
		TotalValue:       totalValue.Round(2),
		LastMovements:    last,
		CriticalProducts: criticalProducts,
	}, nil
}

// MovementTrend agrupa movimientos por día calendario (UTC, YYYY-MM-DD) con
// sumas de entradas y salidas, en orden ascendente de fecha. Los días sin
// movimientos se omiten de la serie, no se rellenan con ceros.
func MovementTrend(movements []*entity.StockMovement) []dto.TrendPointDTO {
	byDate := make(map[string]*dto.TrendPointDTO)
	for _, m := range movements {
		day := m.Date.UTC().Format("2006-01-02")
		point, ok := byDate[day]
		if !ok {
			point = &dto.TrendPointDTO{Date: day}
			byDate[day] = point
		}
		switch m.Type {
		case entity.MovementTypeInflow:
			point.Inflow += m.Amount
		case entity.MovementTypeOutflow:
			point.Outflow += m.Amount
		}
	}

	dates := make([]string, 0, len(byDate))
	for day := range byDate {
		dates = append(dates, day)
	}
	sort.Strings(dates)

	trend := make([]dto.TrendPointDTO, 0, len(dates))
	for _, day := range dates {
		trend = append(trend, *byDate[day])
	}
	return trend
}

// TopProductsByValue rankea productos por stock*precio descendente y devuelve
// los n primeros. Los empates conservan el orden de iteración original
// (orden de inserción / clave primaria): sort estable sin clave secundaria.
func TopProductsByValue(products []*entity.Product, n int) []dto.TopProductDTO {
	ranked := make([]dto.TopProductDTO, 0, len(products))
	for _, p := range products {
		ranked = append(ranked, dto.TopProductDTO{
			ProductID: p.ID,
			Name:      p.Name,
			Value:     p.TotalValue().Round(2),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value.GreaterThan(ranked[j].Value)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func categoryDistribution(categories []*entity.Category, products []*entity.Product) []dto.CategoryCountDTO {
	counts := make(map[int64]int, len(categories))
	for _, p := range products {
		counts[p.CategoryID]++
	}
	result := make([]dto.CategoryCountDTO, 0, len(categories))
	for _, c := range categories {
		result = append(result, dto.CategoryCountDTO{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Count:        counts[c.ID],
		})
	}
	return result
}

func categoryValues(categories []*entity.Category, products []*entity.Product) []dto.CategoryValueDTO {
	values := make(map[int64]decimal.Decimal, len(categories))
	for _, p := range products {
		values[p.CategoryID] = values[p.CategoryID].Add(p.TotalValue())
	}
	result := make([]dto.CategoryValueDTO, 0, len(categories))
	for _, c := range categories {
		result = append(result, dto.CategoryValueDTO{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Value:        values[c.ID].Round(2),
		})
	}
	return result
}

func movementTotals(movements []*entity.StockMovement) (inflow, outflow int) {
	for _, m := range movements {
		switch m.Type {
		case entity.MovementTypeInflow:
			inflow += m.Amount
		case entity.MovementTypeOutflow:
			outflow += m.Amount
		}
	}
	return inflow, outflow
}

func productRow(p *entity.Product) *dto.ProductResponse {
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
