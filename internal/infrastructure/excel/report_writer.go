// Package excel implementa el sink de renderizado a hoja de cálculo: recibe
// el ReportResult estructurado y produce los bytes XLSX. Toda decisión de
// contenido (filtros, totales) ocurre antes, en el motor de reportes.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/tu-usuario/stocktrack-api/internal/application/dto"
)

// Nombres de hojas del reporte.
const (
	SheetProducts  = "Products"
	SheetMovements = "Stock Movements"
)

// ReportWriter genera el libro XLSX del reporte de inventario.
type ReportWriter struct{}

// NewReportWriter construye el writer.
func NewReportWriter() *ReportWriter { return &ReportWriter{} }

// Build arma el libro con una hoja de productos y otra de movimientos,
// y devuelve sus bytes.
func (w *ReportWriter) Build(result *dto.ReportResult) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo de cabecera: %w", err)
	}

	// Hoja de productos (renombra la hoja por defecto)
	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(defaultSheet, SheetProducts); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	productHeader := []interface{}{"ID", "Name", "Barcode", "Category", "Price", "Stock", "Min Stock", "Status", "Total Value"}
	if err := f.SetSheetRow(SheetProducts, "A1", &productHeader); err != nil {
		return nil, fmt.Errorf("excel: cabecera de productos: %w", err)
	}
	if err := f.SetCellStyle(SheetProducts, "A1", "I1", headerStyle); err != nil {
		return nil, fmt.Errorf("excel: estilo de productos: %w", err)
	}
	for i, p := range result.Products {
		row := []interface{}{
			p.ID, p.Name, p.Barcode, p.Category,
			p.Price.InexactFloat64(), p.Stock, p.MinStock, p.Status,
			p.TotalValue.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("excel: celda de producto: %w", err)
		}
		if err := f.SetSheetRow(SheetProducts, cell, &row); err != nil {
			return nil, fmt.Errorf("excel: fila de producto: %w", err)
		}
	}

	// Hoja de movimientos
	if _, err := f.NewSheet(SheetMovements); err != nil {
		return nil, fmt.Errorf("excel: hoja de movimientos: %w", err)
	}
	movementHeader := []interface{}{"Date", "Product", "Type", "Amount", "Previous Stock", "New Stock", "Description"}
	if err := f.SetSheetRow(SheetMovements, "A1", &movementHeader); err != nil {
		return nil, fmt.Errorf("excel: cabecera de movimientos: %w", err)
	}
	if err := f.SetCellStyle(SheetMovements, "A1", "G1", headerStyle); err != nil {
		return nil, fmt.Errorf("excel: estilo de movimientos: %w", err)
	}
	rowNum := 2
	for _, m := range result.Movements {
		row := []interface{}{m.Date, m.Product, m.Type, m.Amount, m.PreviousStock, m.NewStock, m.Description}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return nil, fmt.Errorf("excel: celda de movimiento: %w", err)
		}
		if err := f.SetSheetRow(SheetMovements, cell, &row); err != nil {
			return nil, fmt.Errorf("excel: fila de movimiento: %w", err)
		}
		rowNum++
	}

	// Totales al pie de la hoja de movimientos
	totals := [][]interface{}{
		{"Total Inflow", result.TotalInflow},
		{"Total Outflow", result.TotalOutflow},
		{"Net Movement", result.NetMovement},
	}
	rowNum++ // fila en blanco de separación
	for _, t := range totals {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return nil, fmt.Errorf("excel: celda de total: %w", err)
		}
		if err := f.SetSheetRow(SheetMovements, cell, &t); err != nil {
			return nil, fmt.Errorf("excel: fila de total: %w", err)
		}
		rowNum++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
