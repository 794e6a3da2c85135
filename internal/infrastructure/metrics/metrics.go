// Package metrics expone los contadores Prometheus del servicio,
// publicados en /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MovementsTotal cuenta movimientos de stock registrados, por tipo.
	MovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stocktrack_movements_total",
		Help: "Movimientos de stock registrados, por tipo (inflow/outflow).",
	}, []string{"type"})

	// InsufficientStockTotal cuenta salidas rechazadas por stock insuficiente.
	InsufficientStockTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stocktrack_insufficient_stock_total",
		Help: "Salidas de stock rechazadas por cantidad mayor al stock disponible.",
	})

	// ReportsGeneratedTotal cuenta reportes generados, por formato.
	ReportsGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stocktrack_reports_generated_total",
		Help: "Reportes de inventario generados, por formato (json/excel/pdf).",
	}, []string{"format"})
)
