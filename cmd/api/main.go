package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/tu-usuario/stocktrack-api/internal/application/analytics"
	"github.com/tu-usuario/stocktrack-api/internal/application/auth"
	"github.com/tu-usuario/stocktrack-api/internal/application/ledger"
	"github.com/tu-usuario/stocktrack-api/internal/application/report"
	"github.com/tu-usuario/stocktrack-api/internal/application/usecase"
	"github.com/tu-usuario/stocktrack-api/internal/infrastructure/excel"
	infrapdf "github.com/tu-usuario/stocktrack-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/stocktrack-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/stocktrack-api/internal/interfaces/http"
	"github.com/tu-usuario/stocktrack-api/pkg/config"
	"github.com/tu-usuario/stocktrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, movementRepo, txRunner)
	registerMovementUC := ledger.NewRegisterMovementUseCase(txRunner, movementRepo)
	analyticsUC := appanalytics.NewAnalyticsUseCase(productRepo, categoryRepo, movementRepo)
	reportUC := report.NewReportUseCase(productRepo, categoryRepo, movementRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockTrack API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:       categoryUC,
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		AnalyticsUC:      analyticsUC,
		ReportUC:         reportUC,
		AuthUC:           authUC,
		ExcelWriter:      excel.NewReportWriter(),
		PDFGenerator:     infrapdf.NewReportGenerator(),
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// runMigrations aplica las migraciones pendientes de migrations/ con goose
// sobre una conexión database/sql vía el driver stdlib de pgx.
func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return goose.Up(sqlDB, "migrations")
}
