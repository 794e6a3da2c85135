// Package report implementa el motor de reportes: filtra productos y
// movimientos por categoría y rango de fechas, calcula totales y entrega
// filas estructuradas a los sinks de renderizado (Excel / PDF). El motor no
// aplica ningún formato de bytes.
package report

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/tu-usuario/stocktrack-api/internal/application/dto"
	"github.com/tu-usuario/stocktrack-api/internal/domain"
	"github.com/tu-usuario/stocktrack-api/internal/domain/entity"
	"github.com/tu-usuario/stocktrack-api/internal/domain/repository"
)

// dateLayout formato de fecha aceptado en los filtros.
const dateLayout = "2006-01-02"

// Filter parámetros crudos del caller (query params / formulario).
// CategoryID vacío = todas las categorías; las fechas van juntas o ninguna.
type Filter struct {
	CategoryID string
	StartDate  string
	EndDate    string
}

// ReportUseCase genera reportes de inventario y movimientos.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	movementRepo repository.StockMovementRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	movementRepo repository.StockMovementRepository,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		movementRepo: movementRepo,
	}
}

// Generate valida los filtros y construye el ReportResult.
//
// ErrInvalidFilter cuando: CategoryID no es un entero no negativo, se envía
// solo una de las dos fechas, o alguna fecha no es un día calendario válido
// en formato YYYY-MM-DD. Los totales se calculan únicamente sobre el conjunto
// filtrado de movimientos, no sobre el historial completo.
func (uc *ReportUseCase) Generate(ctx context.Context, f Filter) (*dto.ReportResult, error) {
	categoryID, err := parseCategoryID(f.CategoryID)
	if err != nil {
		return nil, err
	}
	start, endExclusive, err := parseDateRange(f.StartDate, f.EndDate)
	if err != nil {
		return nil, err
	}

	categories, err := uc.categoryRepo.List(ctx, "", 0, 0)
	if err != nil {
		return nil, err
	}
	categoryNames := make(map[int64]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	products, err := uc.productRepo.List(ctx, repository.ProductFilter{CategoryID: categoryID})
	if err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListForReport(ctx, categoryID, start, endExclusive)
	if err != nil {
		return nil, err
	}

	result := &dto.ReportResult{
		Products:  make([]dto.ReportProductRow, 0, len(products)),
		Movements: make([]dto.ReportMovementRow, 0, len(movements)),
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	}
	if categoryID != nil {
		result.Category = categoryNames[*categoryID]
	}

	for _, p := range products {
		status := "Normal"
		if p.CriticalStock() {
			status = "Critical"
		}
		barcode := ""
		if p.Barcode != nil {
			barcode = *p.Barcode
		}
		result.Products = append(result.Products, dto.ReportProductRow{
			ID:         p.ID,
			Name:       p.Name,
			Barcode:    barcode,
			Category:   categoryNames[p.CategoryID],
			Price:      p.Price,
			Stock:      p.Stock,
			MinStock:   p.MinStock,
			Status:     status,
			TotalValue: p.TotalValue().Round(2),
		})
	}

	for _, m := range movements {
		result.Movements = append(result.Movements, dto.ReportMovementRow{
			Date:          m.Date.UTC().Format("2006-01-02 15:04"),
			Product:       m.ProductName,
			Type:          titleType(m.Type),
			Amount:        m.Amount,
			PreviousStock: m.PreviousStock,
			NewStock:      m.NewStock,
			Description:   m.Description,
		})
		switch m.Type {
		case entity.MovementTypeInflow:
			result.TotalInflow += m.Amount
		case entity.MovementTypeOutflow:
			result.TotalOutflow += m.Amount
		}
	}
	result.NetMovement = result.TotalInflow - result.TotalOutflow

	return result, nil
}

// parseCategoryID interpreta el filtro de categoría. Vacío o cero = todas;
// cualquier valor no parseable o negativo es ErrInvalidFilter.
func parseCategoryID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return nil, domain.ErrInvalidFilter
	}
	if id == 0 {
		return nil, nil
	}
	return &id, nil
}

// parseDateRange valida el rango: ambas fechas o ninguna, formato YYYY-MM-DD.
// Devuelve inicio inclusivo y fin exclusivo (día siguiente a EndDate), de modo
// que el rango [start, end] del caller cubre el día final completo.
func parseDateRange(startRaw, endRaw string) (start, endExclusive *time.Time, err error) {
	if (startRaw == "") != (endRaw == "") {
		return nil, nil, domain.ErrInvalidFilter
	}
	if startRaw == "" {
		return nil, nil, nil
	}
	s, err := time.ParseInLocation(dateLayout, startRaw, time.UTC)
	if err != nil {
		return nil, nil, domain.ErrInvalidFilter
	}
	e, err := time.ParseInLocation(dateLayout, endRaw, time.UTC)
	if err != nil {
		return nil, nil, domain.ErrInvalidFilter
	}
	e = e.AddDate(0, 0, 1)
	return &s, &e, nil
}

func titleType(t string) string {
	switch t {
	case entity.MovementTypeInflow:
		return "Inflow"
	case entity.MovementTypeOutflow:
		return "Outflow"
	}
	return t
}
