package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stocktrack-api/internal/application/analytics"
	"github.com/tu-usuario/stocktrack-api/internal/domain/entity"
	"github.com/tu-usuario/stocktrack-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de solo lectura
// ──────────────────────────────────────────────────────────────────────────────

type stubProductRepo struct{ products []*entity.Product }

func (r *stubProductRepo) Create(context.Context, *entity.Product) error          { return nil }
func (r *stubProductRepo) GetByID(context.Context, int64) (*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) GetByBarcode(context.Context, string) (*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) GetForUpdate(context.Context, int64) (*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) Update(context.Context, *entity.Product) error    { return nil }
func (r *stubProductRepo) UpdateStock(context.Context, int64, int) error    { return nil }
func (r *stubProductRepo) Delete(context.Context, int64) error              { return nil }
func (r *stubProductRepo) List(context.Context, repository.ProductFilter) ([]*entity.Product, error) {
	return r.products, nil
}
func (r *stubProductRepo) Count(context.Context, repository.ProductFilter) (int, error) {
	return len(r.products), nil
}

type stubCategoryRepo struct{ categories []*entity.Category }

func (r *stubCategoryRepo) Create(context.Context, *entity.Category) error { return nil }
func (r *stubCategoryRepo) GetByID(context.Context, int64) (*entity.Category, error) {
	return nil, nil
}
func (r *stubCategoryRepo) GetByName(context.Context, string) (*entity.Category, error) {
	return nil, nil
}
func (r *stubCategoryRepo) Update(context.Context, *entity.Category) error { return nil }
func (r *stubCategoryRepo) List(context.Context, string, int, int) ([]*entity.Category, error) {
	return r.categories, nil
}
func (r *stubCategoryRepo) CountProducts(context.Context, int64) (int, error) { return 0, nil }
func (r *stubCategoryRepo) Delete(context.Context, int64) error               { return nil }

type stubMovementRepo struct{ movements []*entity.StockMovement }

func (r *stubMovementRepo) Create(context.Context, *entity.StockMovement) error { return nil }
func (r *stubMovementRepo) ListByProduct(context.Context, int64, int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *stubMovementRepo) ListRecent(_ context.Context, limit int) ([]repository.MovementDetail, error) {
	var out []repository.MovementDetail
	for i := len(r.movements) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, repository.MovementDetail{StockMovement: *r.movements[i]})
	}
	return out, nil
}
func (r *stubMovementRepo) ListSince(_ context.Context, since time.Time) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if !m.Date.Before(since) {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *stubMovementRepo) ListForReport(context.Context, *int64, *time.Time, *time.Time) ([]repository.MovementDetail, error) {
	return nil, nil
}
func (r *stubMovementRepo) CountByProduct(context.Context, int64) (int, error) { return 0, nil }
func (r *stubMovementRepo) DeleteByProduct(context.Context, int64) (int64, error) {
	return 0, nil
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// MovementTrend — agrupación por día UTC
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementTrend_AgrupaPorDiaYOrdenaAscendente(t *testing.T) {
	day1 := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 12, 18, 30, 0, 0, time.UTC)

	trend := analytics.MovementTrend([]*entity.StockMovement{
		{Type: entity.MovementTypeInflow, Amount: 5, Date: day2},
		{Type: entity.MovementTypeInflow, Amount: 10, Date: day1},
		{Type: entity.MovementTypeOutflow, Amount: 3, Date: day1.Add(4 * time.Hour)},
	})

	require.Len(t, trend, 2, "los días sin movimientos no se rellenan")
	assert.Equal(t, "2024-03-10", trend[0].Date)
	assert.Equal(t, 10, trend[0].Inflow)
	assert.Equal(t, 3, trend[0].Outflow)
	assert.Equal(t, "2024-03-12", trend[1].Date)
	assert.Equal(t, 5, trend[1].Inflow)
}

func TestMovementTrend_NormalizaZonaHorariaAUTC(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	// 23:00 en Bogotá del día 10 = 04:00 UTC del día 11
	local := time.Date(2024, 3, 10, 23, 0, 0, 0, bogota)

	trend := analytics.MovementTrend([]*entity.StockMovement{
		{Type: entity.MovementTypeInflow, Amount: 1, Date: local},
	})

	require.Len(t, trend, 1)
	assert.Equal(t, "2024-03-11", trend[0].Date, "la agrupación por día usa UTC")
}

func TestMovementTrend_SinMovimientos(t *testing.T) {
	assert.Empty(t, analytics.MovementTrend(nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// TopProductsByValue — ranking con empates estables
// ──────────────────────────────────────────────────────────────────────────────

func TestTopProductsByValue_OrdenaPorValorDescendente(t *testing.T) {
	products := []*entity.Product{
		{ID: 1, Name: "Barato", Price: price("1"), Stock: 5},
		{ID: 2, Name: "Caro", Price: price("100"), Stock: 3},
		{ID: 3, Name: "Medio", Price: price("10"), Stock: 5},
	}

	top := analytics.TopProductsByValue(products, 10)
	require.Len(t, top, 3)
	assert.Equal(t, "Caro", top[0].Name)
	assert.Equal(t, "Medio", top[1].Name)
	assert.Equal(t, "Barato", top[2].Name)
}

func TestTopProductsByValue_EmpatesConservanOrdenDeEntrada(t *testing.T) {
	products := []*entity.Product{
		{ID: 4, Name: "Primero", Price: price("10"), Stock: 2},
		{ID: 9, Name: "Segundo", Price: price("4"), Stock: 5},
	}

	top := analytics.TopProductsByValue(products, 10)
	require.Len(t, top, 2)
	// ambos valen 20: el empate respeta el orden original
	assert.Equal(t, "Primero", top[0].Name)
	assert.Equal(t, "Segundo", top[1].Name)
}

func TestTopProductsByValue_RecortaAN(t *testing.T) {
	var products []*entity.Product
	for i := 1; i <= 15; i++ {
		products = append(products, &entity.Product{
			ID: int64(i), Price: decimal.NewFromInt(int64(i)), Stock: 1,
		})
	}
	top := analytics.TopProductsByValue(products, 10)
	assert.Len(t, top, 10)
	assert.Equal(t, int64(15), top[0].ProductID)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetAnalytics
// ──────────────────────────────────────────────────────────────────────────────

func TestGetAnalytics_ResumenYDistribucion(t *testing.T) {
	productRepo := &stubProductRepo{products: []*entity.Product{
		{ID: 1, Name: "Mouse", Price: price("10"), Stock: 2, MinStock: 5, CategoryID: 1},  // crítico
		{ID: 2, Name: "Teclado", Price: price("20"), Stock: 50, MinStock: 5, CategoryID: 1},
		{ID: 3, Name: "Monitor", Price: price("150"), Stock: 8, MinStock: 3, CategoryID: 1},
		{ID: 4, Name: "Camiseta", Price: price("5"), Stock: 30, MinStock: 10, CategoryID: 2},
	}}
	categoryRepo := &stubCategoryRepo{categories: []*entity.Category{
		{ID: 1, Name: "Electrónica"},
		{ID: 2, Name: "Ropa"},
	}}
	now := time.Now().UTC()
	movementRepo := &stubMovementRepo{movements: []*entity.StockMovement{
		{Type: entity.MovementTypeInflow, Amount: 10, Date: now.AddDate(0, 0, -1)},
		{Type: entity.MovementTypeOutflow, Amount: 4, Date: now.AddDate(0, 0, -2)},
		// fuera de la ventana de 30 días: no cuenta
		{Type: entity.MovementTypeInflow, Amount: 100, Date: now.AddDate(0, 0, -40)},
	}}

	uc := analytics.NewAnalyticsUseCase(productRepo, categoryRepo, movementRepo)
	out, err := uc.GetAnalytics(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, 4, out.Summary.TotalProducts)
	assert.Equal(t, 1, out.Summary.CriticalProducts)
	assert.Equal(t, 2, out.Summary.TotalCategories)
	assert.Equal(t, 10, out.Summary.TotalInflow, "los movimientos fuera de la ventana no suman")
	assert.Equal(t, 4, out.Summary.TotalOutflow)
	assert.Equal(t, 6, out.Summary.NetMovement)

	assert.Equal(t, 3, out.StockStatus.Normal)
	assert.Equal(t, 1, out.StockStatus.Critical)

	require.Len(t, out.CategoryDistribution, 2)
	assert.Equal(t, 3, out.CategoryDistribution[0].Count, "Electrónica tiene 3 productos")
	assert.Equal(t, 1, out.CategoryDistribution[1].Count)

	// 10*2 + 20*50 + 150*8 + 5*30 = 2370
	assert.True(t, price("2370").Equal(out.Summary.TotalStockValue))
}

func TestGetAnalytics_ValoresPorCategoria(t *testing.T) {
	productRepo := &stubProductRepo{products: []*entity.Product{
		{ID: 1, Price: price("10.50"), Stock: 2, CategoryID: 1},
		{ID: 2, Price: price("1.25"), Stock: 4, CategoryID: 1},
	}}
	categoryRepo := &stubCategoryRepo{categories: []*entity.Category{
		{ID: 1, Name: "Electrónica"},
		{ID: 2, Name: "Vacía"},
	}}
	uc := analytics.NewAnalyticsUseCase(productRepo, categoryRepo, &stubMovementRepo{})

	out, err := uc.GetAnalytics(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, out.CategoryValues, 2)
	assert.True(t, price("26.00").Equal(out.CategoryValues[0].Value))
	assert.True(t, out.CategoryValues[1].Value.IsZero(), "una categoría sin productos vale cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetDashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDashboard_TotalesYUltimosMovimientos(t *testing.T) {
	productRepo := &stubProductRepo{products: []*entity.Product{
		{ID: 1, Name: "Mouse", Price: price("10"), Stock: 2, MinStock: 5, CategoryID: 1},
		{ID: 2, Name: "Teclado", Price: price("20"), Stock: 8, MinStock: 3, CategoryID: 1},
	}}
	var movements []*entity.StockMovement
	for i := 1; i <= 12; i++ {
		movements = append(movements, &entity.StockMovement{
			ID: int64(i), ProductID: 1, Type: entity.MovementTypeInflow, Amount: i,
			Date: time.Now().UTC(),
		})
	}
	movementRepo := &stubMovementRepo{movements: movements}

	uc := analytics.NewAnalyticsUseCase(productRepo, &stubCategoryRepo{}, movementRepo)
	out, err := uc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, out.TotalProducts)
	assert.Equal(t, 10, out.TotalStock)
	assert.Equal(t, 1, out.CriticalStock)
	assert.True(t, price("180").Equal(out.TotalValue))

	require.Len(t, out.LastMovements, 10, "el dashboard trae como máximo los últimos 10 movimientos")
	assert.Equal(t, int64(12), out.LastMovements[0].ID, "el más reciente primero")

	require.Len(t, out.CriticalProducts, 1)
	assert.Equal(t, "Mouse", out.CriticalProducts[0].Name)
}
