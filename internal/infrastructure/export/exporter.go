// Package export serializa las vistas de alertas a CSV (encoding/csv) y XLSX (excelize).
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

var _ inventory.AlertExporter = (*Exporter)(nil)

// Cabeceras de las exportaciones.
var (
	LowStockHeader = []string{"SKU", "Product", "Warehouse", "Available Quantity", "Minimum Quantity", "Status"}
	ExpiryHeader   = []string{"SKU", "Product", "Warehouse", "Quantity", "Expiry Date", "Status", "Days Left/Ago"}
)

// Exporter implementa inventory.AlertExporter.
type Exporter struct{}

// New construye el exportador.
func New() *Exporter { return &Exporter{} }

// LowStock exporta la vista de stock bajo.
func (e *Exporter) LowStock(format string, rows []dto.LowStockItem) ([]byte, error) {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.SKU,
			r.ProductName,
			r.WarehouseName,
			strconv.FormatInt(r.Quantity, 10),
			strconv.FormatInt(r.MinStock, 10),
			r.Status,
		})
	}
	return write(format, "Low Stock", LowStockHeader, table)
}

// Expiry exporta la vista de vencimientos.
func (e *Exporter) Expiry(format string, rows []dto.ExpiryItem) ([]byte, error) {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.SKU,
			r.ProductName,
			r.WarehouseName,
			strconv.FormatInt(r.Quantity, 10),
			r.Expiry.Format(dto.DateLayout),
			r.Status,
			DaysLabel(r.DaysLeft),
		})
	}
	return write(format, "Expiry", ExpiryHeader, table)
}

// DaysLabel "N days left" o "N days ago" (vencido).
func DaysLabel(days int) string {
	if days < 0 {
		return fmt.Sprintf("%d days ago", -days)
	}
	return fmt.Sprintf("%d days left", days)
}

func write(format, sheetName string, header []string, rows [][]string) ([]byte, error) {
	switch format {
	case inventory.FormatCSV:
		return writeCSV(header, rows)
	case inventory.FormatXLSX:
		return writeXLSX(sheetName, header, rows)
	default:
		return nil, fmt.Errorf("export: formato no soportado %q", format)
	}
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("export: csv cabecera: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("export: csv filas: %w", err)
	}
	return buf.Bytes(), nil
}

func writeXLSX(sheetName string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, sheetName); err != nil {
		return nil, fmt.Errorf("export: xlsx hoja: %w", err)
	}
	sheet = sheetName

	if err := f.SetSheetRow(sheet, "A1", toRow(header)); err != nil {
		return nil, fmt.Errorf("export: xlsx cabecera: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("export: xlsx celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, toRow(r)); err != nil {
			return nil, fmt.Errorf("export: xlsx fila %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("export: xlsx escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func toRow(values []string) *[]interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return &row
}
