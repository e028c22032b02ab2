package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

type productFinder interface {
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
}

type warehouseFinder interface {
	GetByName(ctx context.Context, name string) (*entity.Warehouse, error)
}

// catalogColumns orden esperado de columnas (la primera fila es encabezado).
var catalogColumns = []string{
	"sku", "name", "category", "brand", "unit", "min_stock", "price",
	"warehouse", "quantity", "supplier", "batch", "expiry_date",
}

type catalogRow struct {
	SKU        string
	Name       string
	Category   string
	Brand      string
	Unit       string
	MinStock   *int64
	Price      decimal.Decimal
	Warehouse  string
	Quantity   int64
	Supplier   string
	Batch      string
	ExpiryDate string
}

func (r catalogRow) product() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:      r.SKU,
		Name:     r.Name,
		Category: r.Category,
		Brand:    r.Brand,
		Unit:     r.Unit,
		MinStock: r.MinStock,
		Price:    r.Price,
	}
}

// parseCatalog lee el CSV ';'. Si el contenido no es UTF-8 válido se decodifica como ISO-8859-1.
func parseCatalog(r io.Reader) ([]catalogRow, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.Comma = ';'
	cr.FieldsPerRecord = len(catalogColumns)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("catálogo vacío")
	}

	rows := make([]catalogRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (catalogRow, error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	row := catalogRow{
		SKU:        rec[0],
		Name:       rec[1],
		Category:   rec[2],
		Brand:      rec[3],
		Unit:       rec[4],
		Warehouse:  rec[7],
		Supplier:   rec[9],
		Batch:      rec[10],
		ExpiryDate: rec[11],
	}
	if rec[5] != "" {
		v, err := strconv.ParseInt(rec[5], 10, 64)
		if err != nil {
			return row, fmt.Errorf("min_stock: %w", err)
		}
		row.MinStock = &v
	}
	if rec[6] != "" {
		// Excel en español exporta decimales con coma.
		price, err := decimal.NewFromString(strings.ReplaceAll(rec[6], ",", "."))
		if err != nil {
			return row, fmt.Errorf("price: %w", err)
		}
		row.Price = price
	}
	if rec[8] != "" {
		q, err := strconv.ParseInt(rec[8], 10, 64)
		if err != nil {
			return row, fmt.Errorf("quantity: %w", err)
		}
		if q < 0 {
			return row, fmt.Errorf("quantity negativa")
		}
		row.Quantity = q
	}
	if row.SKU == "" || row.Warehouse == "" {
		return row, fmt.Errorf("sku y warehouse son obligatorios")
	}
	if row.Quantity > 0 && row.Supplier == "" {
		row.Supplier = "Inventario inicial"
	}
	return row, nil
}
