// Package pdf implementa el sink de renderizado a PDF del reporte de
// inventario usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte │ Fecha de generación + filtros │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA PRODUCTOS: ID | Nombre | Cat | Precio | Stock | Est. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA MOVIMIENTOS: Fecha | Producto | Tipo | Cant | Stock  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Entradas / Salidas / Movimiento neto              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/stocktrack-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportGenerator genera el PDF del reporte de inventario usando Maroto v2.
type ReportGenerator struct{}

// NewReportGenerator construye el generador.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) Generate(result *dto.ReportResult) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(result))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Tabla de productos
	m.AddRows(sectionTitleRow("PRODUCTOS"))
	m.AddRows(productHeaderRow())
	for _, r := range productRows(result.Products) {
		m.AddRows(r)
	}

	// Tabla de movimientos
	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow("MOVIMIENTOS DE STOCK"))
	m.AddRows(movementHeaderRow())
	for _, r := range movementRows(result.Movements) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(result))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación + filtros aplicados (der).
func headerRow(result *dto.ReportResult) core.Row {
	generado := "Generado: " + time.Now().UTC().Format("02/01/2006 15:04")

	filtro := "Todas las categorías"
	if result.Category != "" {
		filtro = "Categoría: " + result.Category
	}
	if result.StartDate != "" {
		filtro += fmt.Sprintf("   |   %s a %s", result.StartDate, result.EndDate)
	}

	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(filtro, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(generado, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
		}),
	))
}

// productHeaderRow: cabecera de la tabla de productos.
func productHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Center),
		h("Nombre", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Precio", 2, align.Right),
		h("Stock", 1, align.Center),
		h("Mín.", 1, align.Center),
		h("Estado", 1, align.Center),
	)
}

// productRows: una fila por producto; estado crítico en rojo.
func productRows(products []dto.ReportProductRow) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		statusColor := colorGray
		if p.Status == "Critical" {
			statusColor = colorRed
		}
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", p.ID),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				p.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				p.Category,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+p.Price.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", p.Stock),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", p.MinStock),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				p.Status,
				props.Text{Size: 7, Align: align.Center, Top: 1, Color: statusColor},
			)),
		))
	}
	return result
}

// movementHeaderRow: cabecera de la tabla de movimientos.
func movementHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Tipo", 2, align.Center),
		h("Cant.", 1, align.Center),
		h("Stock", 2, align.Center),
		h("Desc.", 1, align.Left),
	)
}

// movementRows: una fila por movimiento con transición de stock.
func movementRows(movements []dto.ReportMovementRow) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, m := range movements {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				m.Date,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				m.Product,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				m.Type,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", m.Amount),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d → %d", m.PreviousStock, m.NewStock),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				m.Description,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(result *dto.ReportResult) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(4), // espacio izquierdo
		col.New(4).Add(
			label("Total entradas:"),
			label("Total salidas:"),
			grandLabel("MOVIMIENTO NETO:"),
		),
		col.New(4).Add(
			value(fmt.Sprintf("%d", result.TotalInflow)),
			value(fmt.Sprintf("%d", result.TotalOutflow)),
			grandValue(fmt.Sprintf("%+d", result.NetMovement)),
		),
	)
}
