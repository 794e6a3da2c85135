package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stocktrack-api/internal/application/analytics"
	"github.com/tu-usuario/stocktrack-api/internal/application/auth"
	"github.com/tu-usuario/stocktrack-api/internal/application/ledger"
	"github.com/tu-usuario/stocktrack-api/internal/application/report"
	"github.com/tu-usuario/stocktrack-api/internal/application/usecase"
	"github.com/tu-usuario/stocktrack-api/internal/domain/entity"
	"github.com/tu-usuario/stocktrack-api/internal/domain/repository"
	"github.com/tu-usuario/stocktrack-api/internal/infrastructure/excel"
	"github.com/tu-usuario/stocktrack-api/internal/infrastructure/pdf"
	apphttp "github.com/tu-usuario/stocktrack-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el stack HTTP completo
// ──────────────────────────────────────────────────────────────────────────────

type memCategoryRepo struct {
	categories map[int64]*entity.Category
	counts     map[int64]int
	nextID     int64
}

func (r *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.nextID++
	c.ID = r.nextID
	r.categories[c.ID] = c
	return nil
}
func (r *memCategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	return r.categories[id], nil
}
func (r *memCategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}
func (r *memCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.categories[c.ID] = c
	return nil
}
func (r *memCategoryRepo) List(context.Context, string, int, int) ([]*entity.Category, error) {
	var out []*entity.Category
	for id := int64(1); id <= r.nextID; id++ {
		if c, ok := r.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *memCategoryRepo) CountProducts(_ context.Context, id int64) (int, error) {
	return r.counts[id], nil
}
func (r *memCategoryRepo) Delete(_ context.Context, id int64) error {
	delete(r.categories, id)
	return nil
}

type memProductRepo struct {
	products map[int64]*entity.Product
	nextID   int64
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = p
	return nil
}
func (r *memProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) GetForUpdate(_ context.Context, id int64) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}
func (r *memProductRepo) UpdateStock(_ context.Context, id int64, stock int) error {
	if p, ok := r.products[id]; ok {
		p.Stock = stock
	}
	return nil
}
func (r *memProductRepo) List(context.Context, repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *memProductRepo) Count(_ context.Context, _ repository.ProductFilter) (int, error) {
	return len(r.products), nil
}
func (r *memProductRepo) Delete(_ context.Context, id int64) error {
	delete(r.products, id)
	return nil
}

type memMovementRepo struct{ movements []*entity.StockMovement }

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	m.ID = int64(len(r.movements) + 1)
	r.movements = append(r.movements, m)
	return nil
}
func (r *memMovementRepo) ListByProduct(_ context.Context, productID int64, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.movements) - 1; i >= 0 && len(out) < limit; i-- {
		if r.movements[i].ProductID == productID {
			out = append(out, r.movements[i])
		}
	}
	return out, nil
}
func (r *memMovementRepo) ListRecent(_ context.Context, limit int) ([]repository.MovementDetail, error) {
	var out []repository.MovementDetail
	for i := len(r.movements) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, repository.MovementDetail{StockMovement: *r.movements[i]})
	}
	return out, nil
}
func (r *memMovementRepo) ListSince(context.Context, time.Time) ([]*entity.StockMovement, error) {
	return r.movements, nil
}
func (r *memMovementRepo) ListForReport(context.Context, *int64, *time.Time, *time.Time) ([]repository.MovementDetail, error) {
	var out []repository.MovementDetail
	for _, m := range r.movements {
		out = append(out, repository.MovementDetail{StockMovement: *m})
	}
	return out, nil
}
func (r *memMovementRepo) CountByProduct(_ context.Context, productID int64) (int, error) {
	count := 0
	for _, m := range r.movements {
		if m.ProductID == productID {
			count++
		}
	}
	return count, nil
}
func (r *memMovementRepo) DeleteByProduct(_ context.Context, productID int64) (int64, error) {
	var kept []*entity.StockMovement
	var deleted int64
	for _, m := range r.movements {
		if m.ProductID == productID {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.movements = kept
	return deleted, nil
}

type memTxRunner struct {
	productRepo  *memProductRepo
	movementRepo *memMovementRepo
}

func (tx *memTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	return fn(tx.productRepo, tx.movementRepo)
}

// buildFullApp monta la app Fiber completa con repos en memoria y un token
// válido listo para usar.
func buildFullApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	categoryRepo := &memCategoryRepo{categories: map[int64]*entity.Category{}, counts: map[int64]int{}}
	productRepo := &memProductRepo{products: map[int64]*entity.Product{}}
	movementRepo := &memMovementRepo{}
	tx := &memTxRunner{productRepo: productRepo, movementRepo: movementRepo}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC:       usecase.NewCategoryUseCase(categoryRepo),
		ProductUC:        usecase.NewProductUseCase(productRepo, categoryRepo, movementRepo, tx),
		RegisterMovement: ledger.NewRegisterMovementUseCase(tx, movementRepo),
		AnalyticsUC:      analytics.NewAnalyticsUseCase(productRepo, categoryRepo, movementRepo),
		ReportUC:         report.NewReportUseCase(productRepo, categoryRepo, movementRepo),
		AuthUC:           auth.NewAuthUseCase(&memUserRepo{users: map[string]*entity.User{}}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		ExcelWriter:      excel.NewReportWriter(),
		PDFGenerator:     pdf.NewReportGenerator(),
		JWTSecret:        testJWTSecret,
	})
	return app, validToken(t)
}

type memUserRepo struct {
	users  map[string]*entity.User
	nextID int64
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.nextID++
	u.ID = r.nextID
	r.users[u.Email] = u
	return nil
}
func (r *memUserRepo) GetByID(context.Context, int64) (*entity.User, error) { return nil, nil }
func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.users[email], nil
}

func doJSON(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: categoría → producto → movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoCompletoDeInventario(t *testing.T) {
	app, token := buildFullApp(t)

	// crear categoría
	resp := doJSON(t, app, http.MethodPost, "/api/categories/", token,
		`{"name":"Electrónica","description":"Gadgets"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// crear producto con stock inicial
	resp = doJSON(t, app, http.MethodPost, "/api/products/", token,
		`{"name":"Teclado mecánico","price":"49.90","stock":15,"category_id":1}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decodeBody(t, resp)
	resp.Body.Close()
	assert.Equal(t, float64(15), product["stock"])

	// registrar una salida
	resp = doJSON(t, app, http.MethodPost, "/api/movements/", token,
		`{"product_id":1,"type":"outflow","amount":5,"description":"venta"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	movement := decodeBody(t, resp)
	resp.Body.Close()
	assert.Equal(t, float64(15), movement["previous_stock"])
	assert.Equal(t, float64(10), movement["new_stock"])

	// el historial trae la semilla y la salida
	resp = doJSON(t, app, http.MethodGet, "/api/products/1/movements", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	resp.Body.Close()
	require.Len(t, history, 2)
	assert.Equal(t, "outflow", history[0]["type"], "el más reciente primero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo de errores de dominio
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_SalidaSinStock_Retorna409(t *testing.T) {
	app, token := buildFullApp(t)

	doJSON(t, app, http.MethodPost, "/api/categories/", token, `{"name":"Ropa"}`).Body.Close()
	doJSON(t, app, http.MethodPost, "/api/products/", token,
		`{"name":"Camiseta","price":"5","stock":3,"category_id":1}`).Body.Close()

	resp := doJSON(t, app, http.MethodPost, "/api/movements/", token,
		`{"product_id":1,"type":"outflow","amount":4}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
}

func TestAPI_ProductoInexistente_Retorna404(t *testing.T) {
	app, token := buildFullApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products/99", token, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_MovimientoConCantidadCero_Retorna400(t *testing.T) {
	app, token := buildFullApp(t)

	doJSON(t, app, http.MethodPost, "/api/categories/", token, `{"name":"Ropa"}`).Body.Close()
	doJSON(t, app, http.MethodPost, "/api/products/", token,
		`{"name":"Camiseta","price":"5","category_id":1}`).Body.Close()

	resp := doJSON(t, app, http.MethodPost, "/api/movements/", token,
		`{"product_id":1,"type":"inflow","amount":0}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "amount 0 es inválido en movimientos explícitos")
}

func TestAPI_BorradoConHistorial_ExigeForce(t *testing.T) {
	app, token := buildFullApp(t)

	doJSON(t, app, http.MethodPost, "/api/categories/", token, `{"name":"Ropa"}`).Body.Close()
	doJSON(t, app, http.MethodPost, "/api/products/", token,
		`{"name":"Camiseta","price":"5","stock":3,"category_id":1}`).Body.Close()

	// sin force: 409 con el conteo de movimientos (la semilla cuenta)
	resp := doJSON(t, app, http.MethodDelete, "/api/products/1", token, "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	resp.Body.Close()
	assert.Equal(t, float64(1), body["movement_count"])

	// con force: borra producto e historial
	resp = doJSON(t, app, http.MethodDelete, "/api/products/1?force=true", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	resp.Body.Close()
	assert.Equal(t, true, body["deleted"])
	assert.Equal(t, float64(1), body["movements_deleted"])
}

func TestAPI_SinToken_Retorna401(t *testing.T) {
	app, _ := buildFullApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products/", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes exportados
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ExportExcel_DevuelveAdjunto(t *testing.T) {
	app, token := buildFullApp(t)

	doJSON(t, app, http.MethodPost, "/api/categories/", token, `{"name":"Ropa"}`).Body.Close()
	doJSON(t, app, http.MethodPost, "/api/products/", token,
		`{"name":"Camiseta","price":"5","stock":3,"category_id":1}`).Body.Close()

	resp := doJSON(t, app, http.MethodGet, "/api/reports/export/excel", token, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestAPI_ReporteConFiltroInvalido_Retorna400(t *testing.T) {
	app, token := buildFullApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/reports/?start_date=2024-01-01", token, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth end to end
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RegisterYLogin(t *testing.T) {
	app, _ := buildFullApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "",
		`{"email":"ana@example.com","password":"supersecreta","name":"Ana"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	resp.Body.Close()
	require.NotEmpty(t, body["token"])

	// el token emitido por register abre rutas protegidas
	resp = doJSON(t, app, http.MethodGet, "/api/products/", "Bearer "+body["token"].(string), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// login con credenciales erradas
	resp2 := doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		`{"email":"ana@example.com","password":"equivocada1"}`)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}
