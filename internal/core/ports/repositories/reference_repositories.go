package repositories

import (
	"context"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
)

// ProductReader defines read operations for catalog products.
type ProductReader interface {
	// ListProducts returns every product row, duplicates included.
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductWriter defines write operations for catalog products.
type ProductWriter interface {
	// UpsertProducts inserts or replaces products keyed by sku.
	UpsertProducts(ctx context.Context, products []domain.Product) (int, error)
}

// ProductRepositoryFacade combines product reads and writes.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}

// ExchangeRateReader defines read operations for exchange rate data.
type ExchangeRateReader interface {
	// ListExchangeRates returns every stored rate; callers pick the latest per currency.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data.
type ExchangeRateWriter interface {
	// SaveExchangeRates inserts or replaces rates keyed by currency and effective date.
	SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) (int, error)
}

// ExchangeRateRepositoryFacade combines exchange rate reads and writes.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// ImportParameterReader defines read operations for import parameters.
type ImportParameterReader interface {
	// ListActiveImportParameters returns rows whose validity window is still open.
	ListActiveImportParameters(ctx context.Context) ([]domain.ImportParameter, error)
}

// ImportParameterWriter defines write operations for import parameters.
type ImportParameterWriter interface {
	// ReplaceActiveImportParameters closes the currently active rows of each
	// supplied concept and inserts the new ones.
	ReplaceActiveImportParameters(ctx context.Context, params []domain.ImportParameter) (int, error)
}

// ImportParameterRepositoryFacade combines import parameter reads and writes.
type ImportParameterRepositoryFacade interface {
	ImportParameterReader
	ImportParameterWriter
}
