package pricing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NormalizeNumber coerces loosely typed numeric input into a decimal.
// nil, empty strings and anything unparseable yield def.
func NormalizeNumber(value any, def decimal.Decimal) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return def
	case decimal.Decimal:
		return v
	case *decimal.Decimal:
		if v == nil {
			return def
		}
		return *v
	case decimal.NullDecimal:
		if !v.Valid {
			return def
		}
		return v.Decimal
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		if cleaned == "" {
			return def
		}
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return def
		}
		return d
	case fmt.Stringer:
		return NormalizeNumber(v.String(), def)
	}
	return def
}

// RateTable maps upper-cased currency codes to their latest rate into the home currency.
type RateTable struct {
	home  string
	rates map[string]decimal.Decimal
}

// NewRateTable keeps the most recent rate per currency; on equal dates the later row wins.
// Non-positive rates are ignored. The home currency is always 1.
func NewRateTable(home string, rows []domain.ExchangeRate) RateTable {
	home = normalizeCurrency(home, home)
	type dated struct {
		row domain.ExchangeRate
		set bool
	}
	latest := make(map[string]dated, len(rows))
	for _, row := range rows {
		if !row.RateToHome.IsPositive() {
			continue
		}
		code := normalizeCurrency(row.Currency, home)
		cur := latest[code]
		if !cur.set || !row.EffectiveDate.Before(cur.row.EffectiveDate) {
			latest[code] = dated{row: row, set: true}
		}
	}
	rates := make(map[string]decimal.Decimal, len(latest)+1)
	for code, d := range latest {
		rates[code] = d.row.RateToHome
	}
	rates[home] = decimal.NewFromInt(1)
	return RateTable{home: home, rates: rates}
}

// Home is the home currency code.
func (t RateTable) Home() string {
	return t.home
}

// Rate returns the conversion rate for currency, defaulting to 1 when unknown.
func (t RateTable) Rate(currency string) decimal.Decimal {
	if r, ok := t.rates[normalizeCurrency(currency, t.home)]; ok {
		return r
	}
	return decimal.NewFromInt(1)
}

func normalizeCurrency(code, home string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return strings.ToUpper(strings.TrimSpace(home))
	}
	return code
}

// ParameterSet holds the active percentage parameters keyed by lower-cased concept.
type ParameterSet struct {
	percentages map[string]decimal.Decimal
}

// NewParameterSet keeps active percentage parameters. Fixed amounts never enter
// the landed formula and are skipped. A repeated concept keeps the last row seen.
func NewParameterSet(rows []domain.ImportParameter) ParameterSet {
	ps := ParameterSet{percentages: make(map[string]decimal.Decimal)}
	for _, row := range rows {
		if !row.IsActive() || row.IsFixed() {
			continue
		}
		ps.percentages[strings.ToLower(strings.TrimSpace(row.Concept))] = row.Value
	}
	return ps
}

// Percentage returns the concept's percentage or def when absent.
func (ps ParameterSet) Percentage(concept string, def decimal.Decimal) decimal.Decimal {
	if v, ok := ps.percentages[strings.ToLower(strings.TrimSpace(concept))]; ok {
		return v
	}
	return def
}

// DedupeProducts keeps the most recently updated row per sku and returns them sorted by sku.
// SKUs are trimmed; rows with an empty sku are dropped.
func DedupeProducts(rows []domain.Product) []domain.Product {
	bySKU := make(map[string]domain.Product, len(rows))
	for _, p := range rows {
		p.SKU = strings.TrimSpace(p.SKU)
		if p.SKU == "" {
			continue
		}
		cur, ok := bySKU[p.SKU]
		if !ok || !p.UpdatedAt.Before(cur.UpdatedAt) {
			bySKU[p.SKU] = p
		}
	}
	out := make([]domain.Product, 0, len(bySKU))
	for _, p := range bySKU {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}
