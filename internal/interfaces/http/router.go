package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stocktrack-api/internal/application/analytics"
	"github.com/tu-usuario/stocktrack-api/internal/application/auth"
	"github.com/tu-usuario/stocktrack-api/internal/application/ledger"
	"github.com/tu-usuario/stocktrack-api/internal/application/report"
	"github.com/tu-usuario/stocktrack-api/internal/application/usecase"
	"github.com/tu-usuario/stocktrack-api/internal/infrastructure/excel"
	"github.com/tu-usuario/stocktrack-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC       *usecase.CategoryUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *ledger.RegisterMovementUseCase
	AnalyticsUC      *analytics.AnalyticsUseCase
	ReportUC         *report.ReportUseCase
	AuthUC           *auth.AuthUseCase
	ExcelWriter      *excel.ReportWriter
	PDFGenerator     *pdf.ReportGenerator
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	movementHandler := NewMovementHandler(deps.RegisterMovement)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/movements", movementHandler.ListByProduct)

	// Stock movements (protegido)
	movements := protected.Group("/movements")
	movements.Post("/", movementHandler.Register)

	// Analytics (protegido)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	protected.Get("/dashboard", analyticsHandler.Dashboard)
	protected.Get("/analytics", analyticsHandler.Analytics)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.ExcelWriter, deps.PDFGenerator)
	reports.Get("/", reportHandler.Generate)
	reports.Get("/export/excel", reportHandler.ExportExcel)
	reports.Get("/export/pdf", reportHandler.ExportPDF)
}
