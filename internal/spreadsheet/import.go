// Package spreadsheet reads reference data from workbooks and writes price lists.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/landed_pricing_app/internal/apperrors"
	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/SscSPs/landed_pricing_app/internal/core/pricing"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names, English first. Matching is case-insensitive.
var (
	productSheets   = []string{"Products", "Productos"}
	parameterSheets = []string{"Parameters", "Parametros", "Parámetros"}
	rateSheets      = []string{"ExchangeRates", "TiposCambio", "Tipos de Cambio"}
)

// Header aliases, normalized to lower case without spaces.
var columnAliases = map[string]string{
	"sku":                 "sku",
	"origin":              "origin",
	"origen":              "origin",
	"category":            "category",
	"categoria":           "category",
	"categoría":           "category",
	"base_cost":           "base_cost",
	"basecost":            "base_cost",
	"costo":               "base_cost",
	"costo_base":          "base_cost",
	"base_currency":       "base_currency",
	"currency":            "currency",
	"moneda":              "currency",
	"updated_at":          "updated_at",
	"fecha_actualizacion": "updated_at",
	"concept":             "concept",
	"concepto":            "concept",
	"kind":                "kind",
	"tipo":                "kind",
	"value":               "value",
	"valor":               "value",
	"valid_from":          "valid_from",
	"vigencia_desde":      "valid_from",
	"rate":                "rate",
	"rate_to_home":        "rate",
	"tipo_cambio":         "rate",
	"effective_date":      "effective_date",
	"fecha":               "effective_date",
}

type productRow struct {
	SKU      string `validate:"required,max=64"`
	Currency string `validate:"omitempty,len=3,alpha"`
}

type parameterRow struct {
	Concept string `validate:"required"`
	Kind    string `validate:"omitempty,oneof=percentage fixed porcentaje fijo"`
}

type rateRow struct {
	Currency string `validate:"required,len=3,alpha"`
}

// Importer parses reference workbooks.
type Importer struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewImporter creates an Importer. Rows without a date are stamped with now.
func NewImporter(now func() time.Time) *Importer {
	if now == nil {
		now = domain.SystemClock
	}
	return &Importer{validate: validator.New(), now: now}
}

// ImportFile opens a workbook from disk and parses it.
func (im *Importer) ImportFile(path string) (*domain.ReferenceData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return im.parse(f)
}

// Import parses a workbook from r.
func (im *Importer) Import(r io.Reader) (*domain.ReferenceData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable workbook: %v", apperrors.ErrValidation, err)
	}
	defer func() { _ = f.Close() }()
	return im.parse(f)
}

func (im *Importer) parse(f *excelize.File) (*domain.ReferenceData, error) {
	data := &domain.ReferenceData{}
	found := false

	if sheet, ok := findSheet(f, productSheets); ok {
		found = true
		rows, err := readSheet(f, sheet)
		if err != nil {
			return nil, err
		}
		if data.Products, err = im.products(sheet, rows); err != nil {
			return nil, err
		}
	}
	if sheet, ok := findSheet(f, parameterSheets); ok {
		found = true
		rows, err := readSheet(f, sheet)
		if err != nil {
			return nil, err
		}
		if data.Parameters, err = im.parameters(sheet, rows); err != nil {
			return nil, err
		}
	}
	if sheet, ok := findSheet(f, rateSheets); ok {
		found = true
		rows, err := readSheet(f, sheet)
		if err != nil {
			return nil, err
		}
		if data.Rates, err = im.rates(sheet, rows); err != nil {
			return nil, err
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: workbook has none of the sheets %v, %v or %v",
			apperrors.ErrValidation, productSheets, parameterSheets, rateSheets)
	}
	return data, nil
}

func (im *Importer) products(sheet string, rows []sheetRow) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(rows))
	for _, sr := range rows {
		row := sr.cells
		r := productRow{SKU: strings.TrimSpace(row["sku"]), Currency: strings.ToUpper(strings.TrimSpace(firstOf(row, "base_currency", "currency")))}
		if err := im.validate.Struct(r); err != nil {
			return nil, rowError(sheet, sr.number, err)
		}
		cost := pricing.NormalizeNumber(row["base_cost"], decimal.Zero)
		if cost.IsNegative() {
			return nil, rowError(sheet, sr.number, errors.New("negative base cost"))
		}
		out = append(out, domain.Product{
			SKU:          r.SKU,
			Origin:       domain.Origin(strings.ToLower(strings.TrimSpace(row["origin"]))),
			Category:     strings.TrimSpace(row["category"]),
			BaseCost:     cost,
			BaseCurrency: r.Currency,
			UpdatedAt:    im.parseDate(row["updated_at"]),
		})
	}
	return out, nil
}

func (im *Importer) parameters(sheet string, rows []sheetRow) ([]domain.ImportParameter, error) {
	out := make([]domain.ImportParameter, 0, len(rows))
	for _, sr := range rows {
		row := sr.cells
		r := parameterRow{
			Concept: strings.ToLower(strings.TrimSpace(row["concept"])),
			Kind:    strings.ToLower(strings.TrimSpace(row["kind"])),
		}
		if err := im.validate.Struct(r); err != nil {
			return nil, rowError(sheet, sr.number, err)
		}
		kind := domain.ParameterPercentage
		if r.Kind == "fixed" || r.Kind == "fijo" {
			kind = domain.ParameterFixed
		}
		out = append(out, domain.ImportParameter{
			Concept:   r.Concept,
			Kind:      kind,
			Value:     pricing.NormalizeNumber(row["value"], decimal.Zero),
			ValidFrom: im.parseDate(row["valid_from"]),
		})
	}
	return out, nil
}

func (im *Importer) rates(sheet string, rows []sheetRow) ([]domain.ExchangeRate, error) {
	out := make([]domain.ExchangeRate, 0, len(rows))
	for _, sr := range rows {
		row := sr.cells
		r := rateRow{Currency: strings.ToUpper(strings.TrimSpace(row["currency"]))}
		if err := im.validate.Struct(r); err != nil {
			return nil, rowError(sheet, sr.number, err)
		}
		rate := pricing.NormalizeNumber(row["rate"], decimal.Zero)
		if !rate.IsPositive() {
			return nil, rowError(sheet, sr.number, fmt.Errorf("rate for %s must be positive", r.Currency))
		}
		out = append(out, domain.ExchangeRate{
			Currency:      r.Currency,
			RateToHome:    rate,
			EffectiveDate: im.parseDate(row["effective_date"]),
		})
	}
	return out, nil
}

// parseDate accepts ISO dates, RFC 3339 timestamps, day-first dates and Excel serial numbers.
// Blank or unparseable values fall back to now.
func (im *Importer) parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return im.now()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.UTC()
		}
	}
	return im.now()
}

func findSheet(f *excelize.File, names []string) (string, bool) {
	for _, existing := range f.GetSheetList() {
		for _, want := range names {
			if strings.EqualFold(strings.TrimSpace(existing), want) {
				return existing, true
			}
		}
	}
	return "", false
}

// sheetRow is one data row keyed by canonical column name. number is the 1-based sheet row.
type sheetRow struct {
	number int
	cells  map[string]string
}

// readSheet returns the data rows of sheet. Blank rows are skipped.
func readSheet(f *excelize.File, sheet string) ([]sheetRow, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), " ", "_"))
		header[i] = columnAliases[key]
	}

	out := make([]sheetRow, 0, len(rows)-1)
	for n, cells := range rows[1:] {
		row := make(map[string]string, len(header))
		blank := true
		for i, cell := range cells {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = cell
			if strings.TrimSpace(cell) != "" {
				blank = false
			}
		}
		if !blank {
			out = append(out, sheetRow{number: n + 2, cells: row})
		}
	}
	return out, nil
}

func firstOf(row map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(row[k]); v != "" {
			return v
		}
	}
	return ""
}

func rowError(sheet string, number int, err error) error {
	return fmt.Errorf("%w: %s row %d: %v", apperrors.ErrValidation, sheet, number, err)
}
