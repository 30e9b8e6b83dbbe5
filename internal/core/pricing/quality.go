package pricing

import (
	"fmt"
	"sort"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IssueCode identifies a data-quality rule.
type IssueCode string

const (
	IssueNonPositiveBase   IssueCode = "non_positive_base_price"
	IssueNegativeValue     IssueCode = "negative_value"
	IssueLandedBelowCost   IssueCode = "landed_below_cost"
	IssueMarkupMismatch    IssueCode = "base_price_markup_mismatch"
	IssueMaxPriceMismatch  IssueCode = "max_price_mismatch"
	IssueThresholdRatio    IssueCode = "threshold_ratio"
	IssueMarkupOutOfRange  IssueCode = "markup_out_of_range"
	IssuePercentOutOfRange IssueCode = "percentage_out_of_range"
	IssueDuplicate         IssueCode = "duplicate_record"
)

var (
	// MoneyTolerance is the allowed drift, in home currency, for derived amounts.
	MoneyTolerance = decimal.RequireFromString("0.5")
	// RatioTolerance is the allowed drift of a minimum over the maximum price.
	RatioTolerance = decimal.RequireFromString("0.01")

	maxMarkup = decimal.NewFromInt(5)
)

// Issue is one violated rule for one record.
type Issue struct {
	SKU           string               `json:"sku"`
	TransportMode domain.TransportMode `json:"transportMode"`
	Code          IssueCode            `json:"code"`
	Message       string               `json:"message"`
}

// QualityReport summarizes a CheckTierSet pass.
type QualityReport struct {
	Checked     int      `json:"checked"`
	Issues      []Issue  `json:"issues"`
	FlaggedSKUs []string `json:"flaggedSkus"` // Sorted, unique
}

// OK reports whether no rule was violated.
func (r QualityReport) OK() bool {
	return len(r.Issues) == 0
}

// CheckTier runs every per-record rule against t.
func CheckTier(t domain.PriceTierRecord) []Issue {
	var issues []Issue
	add := func(code IssueCode, format string, args ...any) {
		issues = append(issues, Issue{
			SKU:           t.SKU,
			TransportMode: t.TransportMode,
			Code:          code,
			Message:       fmt.Sprintf(format, args...),
		})
	}

	if !t.BasePrice.IsPositive() {
		add(IssueNonPositiveBase, "base price %s is not positive", t.BasePrice)
	}

	money := map[string]decimal.Decimal{
		"cost_in_home": t.CostInHome,
		"landed_cost":  t.LandedCost,
		"base_price":   t.BasePrice,
		"max_price":    t.MaxPrice,
	}
	for _, name := range []string{"cost_in_home", "landed_cost", "base_price", "max_price"} {
		if money[name].IsNegative() {
			add(IssueNegativeValue, "%s is negative (%s)", name, money[name])
		}
	}

	if t.LandedCost.Add(MoneyTolerance).LessThan(t.CostInHome) {
		add(IssueLandedBelowCost, "landed cost %s is below cost in home currency %s", t.LandedCost, t.CostInHome)
	}

	expectedBase := t.LandedCost.Mul(decimal.NewFromInt(1).Add(t.MarkupPct))
	if t.BasePrice.Sub(expectedBase).Abs().GreaterThan(MoneyTolerance) {
		add(IssueMarkupMismatch, "base price %s differs from landed*(1+markup) %s", t.BasePrice, expectedBase.Round(4))
	}

	if t.BasePrice.IsPositive() {
		expectedMax := t.BasePrice.Mul(MaxPriceMultiplier)
		if t.MaxPrice.Sub(expectedMax).Abs().GreaterThan(MoneyTolerance) {
			add(IssueMaxPriceMismatch, "max price %s differs from 2*base %s", t.MaxPrice, expectedMax.Round(4))
		}
	}

	if t.MaxPrice.IsPositive() {
		ratios := []struct {
			name  string
			value decimal.Decimal
			want  decimal.Decimal
		}{
			{"seller", t.SellerMin, SellerRatio},
			{"commercial", t.CommercialMin, CommercialRatio},
			{"subdirection", t.SubdirectionMin, SubdirectionRatio},
			{"direction", t.DirectionMin, DirectionRatio},
		}
		for _, r := range ratios {
			got := r.value.Div(t.MaxPrice)
			if got.Sub(r.want).Abs().GreaterThan(RatioTolerance) {
				add(IssueThresholdRatio, "%s minimum is %s of max price, want %s", r.name, got.Round(4), r.want)
			}
		}
	}

	if t.MarkupPct.IsNegative() || t.MarkupPct.GreaterThan(maxMarkup) {
		add(IssueMarkupOutOfRange, "markup %s outside [0, 5]", t.MarkupPct)
	}

	pcts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"freight", t.FreightPct},
		{"insurance", t.InsurancePct},
		{"duty", t.DutyPct},
		{"customs_tax", t.CustomsTaxPct},
		{"customs_broker", t.CustomsBrokerPct},
	}
	one := decimal.NewFromInt(1)
	for _, p := range pcts {
		if p.value.IsNegative() || p.value.GreaterThan(one) {
			add(IssuePercentOutOfRange, "%s percentage %s outside [0, 1]", p.name, p.value)
		}
	}

	return issues
}

// CheckTierSet checks every record plus cross-record uniqueness of (sku, transport mode).
func CheckTierSet(tiers []domain.PriceTierRecord) QualityReport {
	report := QualityReport{Checked: len(tiers), Issues: []Issue{}, FlaggedSKUs: []string{}}
	type key struct {
		sku  string
		mode domain.TransportMode
	}
	seen := make(map[key]int, len(tiers))
	flagged := make(map[string]bool)

	for _, t := range tiers {
		k := key{t.SKU, t.TransportMode}
		seen[k]++
		if seen[k] == 2 {
			report.Issues = append(report.Issues, Issue{
				SKU:           t.SKU,
				TransportMode: t.TransportMode,
				Code:          IssueDuplicate,
				Message:       "more than one record for sku and transport mode",
			})
			flagged[t.SKU] = true
		}
		issues := CheckTier(t)
		if len(issues) > 0 || t.Flagged {
			flagged[t.SKU] = true
		}
		report.Issues = append(report.Issues, issues...)
	}

	for sku := range flagged {
		report.FlaggedSKUs = append(report.FlaggedSKUs, sku)
	}
	sort.Strings(report.FlaggedSKUs)
	return report
}
