package mapping

import (
	"strings"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/SscSPs/landed_pricing_app/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		SKU:          strings.TrimSpace(d.SKU),
		Origin:       string(d.Origin),
		Category:     d.Category,
		BaseCost:     d.BaseCost,
		BaseCurrency: strings.ToUpper(strings.TrimSpace(d.BaseCurrency)),
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		SKU:          m.SKU,
		Origin:       domain.Origin(m.Origin),
		Category:     m.Category,
		BaseCost:     m.BaseCost,
		BaseCurrency: m.BaseCurrency,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		Currency:      strings.ToUpper(strings.TrimSpace(d.Currency)),
		RateToHome:    d.RateToHome,
		EffectiveDate: d.EffectiveDate,
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		Currency:      m.Currency,
		RateToHome:    m.RateToHome,
		EffectiveDate: m.EffectiveDate,
	}
}

// ToModelImportParameter converts a domain ImportParameter to a model ImportParameter.
// Concepts are stored lower-cased so the active-row index matches regardless of input casing.
func ToModelImportParameter(d domain.ImportParameter) models.ImportParameter {
	return models.ImportParameter{
		Concept:    strings.ToLower(strings.TrimSpace(d.Concept)),
		Kind:       string(d.Kind),
		Value:      d.Value,
		ValidFrom:  d.ValidFrom,
		ValidUntil: d.ValidUntil,
	}
}

// ToDomainImportParameter converts a model ImportParameter to a domain ImportParameter
func ToDomainImportParameter(m models.ImportParameter) domain.ImportParameter {
	return domain.ImportParameter{
		Concept:    m.Concept,
		Kind:       domain.ParameterKind(m.Kind),
		Value:      m.Value,
		ValidFrom:  m.ValidFrom,
		ValidUntil: m.ValidUntil,
	}
}
