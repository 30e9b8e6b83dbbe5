package pricing_test

import (
	"testing"
	"time"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/SscSPs/landed_pricing_app/internal/core/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

var computedAt = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func scenarioParameters() pricing.ParameterSet {
	return pricing.NewParameterSet([]domain.ImportParameter{
		{Concept: "seguro", Kind: domain.ParameterPercentage, Value: d("0.02")},
		{Concept: "Arancel ", Kind: domain.ParameterPercentage, Value: d("0.05")},
		{Concept: "dta", Kind: domain.ParameterPercentage, Value: d("0.01")},
		{Concept: "honorarios_aduanales", Kind: domain.ParameterPercentage, Value: d("0.01")},
		{Concept: "mark_up", Kind: domain.ParameterPercentage, Value: d("0.10")},
	})
}

func inputs(mode domain.TransportMode, params pricing.ParameterSet) pricing.Inputs {
	return pricing.Inputs{
		Rates:      pricing.NewRateTable("MXN", nil),
		Parameters: params,
		Mode:       mode,
		ComputedAt: computedAt,
	}
}

func TestScenarioA_DomesticProduct(t *testing.T) {
	product := domain.Product{SKU: "X1", Origin: domain.Domestic, Category: "equipment", BaseCost: d("1000"), BaseCurrency: "MXN"}

	lc := pricing.CalculateLandedCost(pricing.DefaultPolicy(), product, inputs(domain.TransportMaritime, scenarioParameters()))
	assertDecimal(t, "1000", lc.CostInHome, "cost in home")
	assertDecimal(t, "1000", lc.LandedCost, "landed")
	assertDecimal(t, "1100", lc.BasePrice, "base price")
	assert.True(t, lc.Surcharges.Total().IsZero(), "domestic products carry no surcharges")

	tier := pricing.DeriveTier(lc)
	assertDecimal(t, "2200", tier.MaxPrice, "max")
	assertDecimal(t, "1760", tier.SellerMin, "seller")
	assertDecimal(t, "1650", tier.CommercialMin, "commercial")
	assertDecimal(t, "1540", tier.SubdirectionMin, "subdirection")
	assertDecimal(t, "1430", tier.DirectionMin, "direction")
	assert.False(t, tier.Flagged)
	assert.Empty(t, pricing.CheckTier(tier))
}

func TestScenarioB_ImportedEquipmentByAir(t *testing.T) {
	product := domain.Product{SKU: "X1", Origin: domain.Imported, Category: "Equipment", BaseCost: d("1000"), BaseCurrency: "MXN"}

	lc := pricing.CalculateLandedCost(pricing.DefaultPolicy(), product, inputs(domain.TransportAir, scenarioParameters()))
	assertDecimal(t, "0.10", lc.FreightPct, "freight")
	assertDecimal(t, "0.19", lc.Surcharges.Total(), "total surcharge")
	assertDecimal(t, "1190", lc.LandedCost, "landed")
	assertDecimal(t, "1309", lc.BasePrice, "base price")

	tier := pricing.DeriveTier(lc)
	assertDecimal(t, "2618", tier.MaxPrice, "max")
	assert.Empty(t, pricing.CheckTier(tier))
}

func TestCalculateLandedCost_Freight(t *testing.T) {
	tests := []struct {
		name     string
		origin   domain.Origin
		category string
		mode     domain.TransportMode
		freight  string
		landed   string
	}{
		{"maritime supply", domain.Imported, "supply", domain.TransportMaritime, "0.05", "1140"},
		{"legacy spanish origin", "Importado", " SUPPLY ", domain.TransportAir, "0.10", "1190"},
		{"unknown transport", domain.Imported, "equipment", "Rail", "0", "1090"},
		{"imported ineligible category", domain.Imported, "services", domain.TransportAir, "0", "1000"},
		{"domestic eligible category", domain.Domestic, "supply", domain.TransportAir, "0", "1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := domain.Product{SKU: "S", Origin: tt.origin, Category: tt.category, BaseCost: d("1000")}
			lc := pricing.CalculateLandedCost(pricing.DefaultPolicy(), product, inputs(tt.mode, scenarioParameters()))
			assertDecimal(t, tt.freight, lc.FreightPct, "freight")
			assertDecimal(t, tt.landed, lc.LandedCost, "landed")
		})
	}
}

func TestLandedCostProperties(t *testing.T) {
	params := scenarioParameters()
	for _, origin := range []domain.Origin{domain.Domestic, domain.Imported} {
		for _, category := range []string{"equipment", "supply", "consumable", ""} {
			for _, mode := range []domain.TransportMode{domain.TransportAir, domain.TransportMaritime} {
				product := domain.Product{SKU: "P", Origin: origin, Category: category, BaseCost: d("250.75")}
				lc := pricing.CalculateLandedCost(pricing.DefaultPolicy(), product, inputs(mode, params))
				eligible := origin == domain.Imported && (category == "equipment" || category == "supply")
				if eligible {
					assert.True(t, lc.LandedCost.GreaterThan(lc.CostInHome), "%s/%s/%s", origin, category, mode)
				} else {
					assert.True(t, lc.LandedCost.Equal(lc.CostInHome), "%s/%s/%s", origin, category, mode)
					assert.True(t, lc.FreightPct.IsZero())
				}
			}
		}
	}
}

func TestCalculateLandedCost_ExchangeRates(t *testing.T) {
	rates := pricing.NewRateTable("MXN", []domain.ExchangeRate{
		{Currency: "USD", RateToHome: d("17.00"), EffectiveDate: computedAt.AddDate(0, 0, -10)},
		{Currency: "usd", RateToHome: d("18.50"), EffectiveDate: computedAt.AddDate(0, 0, -1)},
		{Currency: "USD", RateToHome: d("16.00"), EffectiveDate: computedAt.AddDate(0, 0, -5)},
		{Currency: "EUR", RateToHome: d("0"), EffectiveDate: computedAt},
		{Currency: "MXN", RateToHome: d("3"), EffectiveDate: computedAt},
	})
	assertDecimal(t, "18.50", rates.Rate("USD"), "latest USD")
	assertDecimal(t, "1", rates.Rate("EUR"), "non-positive rate ignored")
	assertDecimal(t, "1", rates.Rate("MXN"), "home is always 1")
	assertDecimal(t, "1", rates.Rate("JPY"), "unknown falls back to 1")

	product := domain.Product{SKU: "U", Origin: domain.Domestic, BaseCost: d("100"), BaseCurrency: "usd"}
	in := inputs(domain.TransportAir, pricing.NewParameterSet(nil))
	in.Rates = rates
	lc := pricing.CalculateLandedCost(pricing.DefaultPolicy(), product, in)
	assertDecimal(t, "1850", lc.CostInHome, "cost in home")
	assertDecimal(t, "2035", lc.BasePrice, "base price with default markup")
	assert.Equal(t, "USD", lc.BaseCurrency)
}

func TestNewRateTable_TieKeepsLaterRow(t *testing.T) {
	rates := pricing.NewRateTable("MXN", []domain.ExchangeRate{
		{Currency: "USD", RateToHome: d("17"), EffectiveDate: computedAt},
		{Currency: "USD", RateToHome: d("17.25"), EffectiveDate: computedAt},
	})
	assertDecimal(t, "17.25", rates.Rate("USD"), "tie")
}

func TestNewParameterSet(t *testing.T) {
	closed := computedAt
	ps := pricing.NewParameterSet([]domain.ImportParameter{
		{Concept: "seguro", Kind: domain.ParameterPercentage, Value: d("0.03"), ValidUntil: &closed},
		{Concept: "gastos_aduana", Kind: "Fijo", Value: d("850")},
		{Concept: "MARK_UP", Kind: "percentage", Value: d("0.25")},
	})
	assertDecimal(t, "0", ps.Percentage("seguro", decimal.Zero), "closed row ignored")
	assertDecimal(t, "0.25", ps.Percentage("mark_up", d("0.10")), "markup")
	assertDecimal(t, "0", ps.Percentage("gastos_aduana", decimal.Zero), "fixed rows are not percentages")
}

func TestNormalizeNumber(t *testing.T) {
	def := d("7")
	ptr := d("2.5")
	var nilPtr *decimal.Decimal
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "7"},
		{"empty string", "  ", "7"},
		{"thousands separator", "1,234.50", "1234.5"},
		{"garbage", "n/a", "7"},
		{"int", 12, "12"},
		{"int64", int64(-3), "-3"},
		{"float", 0.25, "0.25"},
		{"decimal pointer", &ptr, "2.5"},
		{"nil decimal pointer", nilPtr, "7"},
		{"null decimal", decimal.NullDecimal{}, "7"},
		{"unsupported type", struct{}{}, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, pricing.NormalizeNumber(tt.in, def), tt.name)
		})
	}
}

func TestDedupeProducts(t *testing.T) {
	older := computedAt.Add(-time.Hour)
	out := pricing.DedupeProducts([]domain.Product{
		{SKU: "B", BaseCost: d("1"), UpdatedAt: older},
		{SKU: " A ", BaseCost: d("5"), UpdatedAt: computedAt},
		{SKU: "B", BaseCost: d("2"), UpdatedAt: computedAt},
		{SKU: "A", BaseCost: d("4"), UpdatedAt: older},
		{SKU: "", BaseCost: d("9")},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].SKU)
	assertDecimal(t, "5", out[0].BaseCost, "A keeps latest")
	assert.Equal(t, "B", out[1].SKU)
	assertDecimal(t, "2", out[1].BaseCost, "B keeps latest")
}

func TestDeriveTier_NonPositiveBaseIsFlagged(t *testing.T) {
	for _, base := range []string{"0", "-10"} {
		tier := pricing.DeriveTier(domain.LandedCostRecord{SKU: "Z", BasePrice: d(base)})
		assert.True(t, tier.Flagged)
		assert.False(t, tier.Usable())
		assert.True(t, tier.MaxPrice.IsZero())
		assert.True(t, tier.SellerMin.IsZero())
		assert.True(t, tier.DirectionMin.IsZero())
	}
}

func TestDeriveTier_ThresholdsStrictlyDescend(t *testing.T) {
	for _, base := range []string{"0.01", "1", "1100", "98765.4321"} {
		tier := pricing.DeriveTier(domain.LandedCostRecord{SKU: "T", BasePrice: d(base)})
		require.True(t, tier.MaxPrice.IsPositive())
		assert.True(t, tier.SellerMin.GreaterThan(tier.CommercialMin))
		assert.True(t, tier.CommercialMin.GreaterThan(tier.SubdirectionMin))
		assert.True(t, tier.SubdirectionMin.GreaterThan(tier.DirectionMin))
		assert.True(t, tier.DirectionMin.IsPositive())
		assert.True(t, tier.SellerMin.Equal(tier.MaxPrice.Mul(d("0.80"))))
		assert.True(t, tier.DirectionMin.Equal(tier.MaxPrice.Mul(d("0.65"))))
	}
}
