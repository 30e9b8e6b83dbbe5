// Package memory is an in-process implementation of the repository ports,
// used by the CLI dry-run mode and by tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/SscSPs/landed_pricing_app/internal/apperrors"
	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/landed_pricing_app/internal/core/ports/repositories"
)

// Store keeps every table in memory. Each concern has its own lock so an
// authorization transition may read price tiers while holding its row lock.
type Store struct {
	refMu      sync.RWMutex
	products   []domain.Product
	rates      []domain.ExchangeRate
	parameters []domain.ImportParameter

	pricingMu sync.RWMutex
	landed    map[domain.TransportMode]map[string]domain.LandedCostRecord
	tiers     map[domain.TransportMode]map[string]domain.PriceTierRecord

	authMu sync.Mutex
	auths  map[string]domain.AuthorizationRequest
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		landed: make(map[domain.TransportMode]map[string]domain.LandedCostRecord),
		tiers:  make(map[domain.TransportMode]map[string]domain.PriceTierRecord),
		auths:  make(map[string]domain.AuthorizationRequest),
	}
}

var (
	_ portsrepo.ProductRepositoryFacade         = (*Store)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade    = (*Store)(nil)
	_ portsrepo.ImportParameterRepositoryFacade = (*Store)(nil)
	_ portsrepo.PricingRepositoryFacade         = (*Store)(nil)
	_ portsrepo.AuthorizationRepositoryFacade   = (*Store)(nil)
)

// Provider exposes the store through every repository port.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProductRepo:         s,
		ExchangeRateRepo:    s,
		ImportParameterRepo: s,
		PricingRepo:         s,
		AuthorizationRepo:   s,
	}
}

// --- reference data ---

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	return slices.Clone(s.products), ctx.Err()
}

// UpsertProducts appends rows; readers collapse duplicates by UpdatedAt like the catalog does.
func (s *Store) UpsertProducts(ctx context.Context, products []domain.Product) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.refMu.Lock()
	defer s.refMu.Unlock()
	s.products = append(s.products, products...)
	return len(products), nil
}

func (s *Store) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	return slices.Clone(s.rates), ctx.Err()
}

func (s *Store) SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.refMu.Lock()
	defer s.refMu.Unlock()
	for _, r := range rates {
		replaced := false
		for i, existing := range s.rates {
			if strings.EqualFold(existing.Currency, r.Currency) && existing.EffectiveDate.Equal(r.EffectiveDate) {
				s.rates[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			s.rates = append(s.rates, r)
		}
	}
	return len(rates), nil
}

func (s *Store) ListActiveImportParameters(ctx context.Context) ([]domain.ImportParameter, error) {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	out := make([]domain.ImportParameter, 0, len(s.parameters))
	for _, p := range s.parameters {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out, ctx.Err()
}

func (s *Store) ReplaceActiveImportParameters(ctx context.Context, params []domain.ImportParameter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.refMu.Lock()
	defer s.refMu.Unlock()
	for _, p := range params {
		concept := strings.ToLower(strings.TrimSpace(p.Concept))
		for i, existing := range s.parameters {
			if existing.IsActive() && strings.ToLower(strings.TrimSpace(existing.Concept)) == concept {
				closed := p.ValidFrom
				s.parameters[i].ValidUntil = &closed
			}
		}
		p.ValidUntil = nil
		s.parameters = append(s.parameters, p)
	}
	return len(params), nil
}

// --- pricing records ---

func (s *Store) ReplaceForTransport(ctx context.Context, mode domain.TransportMode, landed []domain.LandedCostRecord, tiers []domain.PriceTierRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	newLanded := make(map[string]domain.LandedCostRecord, len(landed))
	for _, r := range landed {
		if r.TransportMode != mode {
			return fmt.Errorf("%w: landed record for %s has transport mode %s, want %s", apperrors.ErrValidation, r.SKU, r.TransportMode, mode)
		}
		newLanded[r.SKU] = r
	}
	newTiers := make(map[string]domain.PriceTierRecord, len(tiers))
	for _, t := range tiers {
		if t.TransportMode != mode {
			return fmt.Errorf("%w: tier for %s has transport mode %s, want %s", apperrors.ErrValidation, t.SKU, t.TransportMode, mode)
		}
		newTiers[t.SKU] = t
	}

	s.pricingMu.Lock()
	defer s.pricingMu.Unlock()
	s.landed[mode] = newLanded
	s.tiers[mode] = newTiers
	return nil
}

func (s *Store) ListLandedCosts(ctx context.Context, filter portsrepo.PricingFilter) ([]domain.LandedCostRecord, error) {
	s.pricingMu.RLock()
	defer s.pricingMu.RUnlock()
	var out []domain.LandedCostRecord
	for mode, bySKU := range s.landed {
		if filter.TransportMode != "" && mode != filter.TransportMode {
			continue
		}
		for sku, r := range bySKU {
			if filter.SKU == "" || sku == filter.SKU {
				out = append(out, r)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SKU != out[j].SKU {
			return out[i].SKU < out[j].SKU
		}
		return out[i].TransportMode < out[j].TransportMode
	})
	return out, ctx.Err()
}

func (s *Store) ListPriceTiers(ctx context.Context, filter portsrepo.PricingFilter) ([]domain.PriceTierRecord, error) {
	s.pricingMu.RLock()
	defer s.pricingMu.RUnlock()
	var out []domain.PriceTierRecord
	for mode, bySKU := range s.tiers {
		if filter.TransportMode != "" && mode != filter.TransportMode {
			continue
		}
		for sku, t := range bySKU {
			if filter.SKU == "" || sku == filter.SKU {
				out = append(out, t)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SKU != out[j].SKU {
			return out[i].SKU < out[j].SKU
		}
		return out[i].TransportMode < out[j].TransportMode
	})
	return out, ctx.Err()
}

func (s *Store) FindPriceTier(ctx context.Context, sku string, mode domain.TransportMode) (*domain.PriceTierRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.pricingMu.RLock()
	defer s.pricingMu.RUnlock()
	t, ok := s.tiers[mode][sku]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("price tier for sku %s (%s)", sku, mode))
	}
	return &t, nil
}

// --- authorization requests ---

func (s *Store) SaveAuthorization(ctx context.Context, req domain.AuthorizationRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.authMu.Lock()
	defer s.authMu.Unlock()
	if _, exists := s.auths[req.ID]; exists {
		return fmt.Errorf("%w: authorization request %s", apperrors.ErrDuplicate, req.ID)
	}
	s.auths[req.ID] = req
	return nil
}

func (s *Store) FindAuthorizationByID(ctx context.Context, id string) (*domain.AuthorizationRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.authMu.Lock()
	defer s.authMu.Unlock()
	req, ok := s.auths[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("authorization request " + id)
	}
	return &req, nil
}

func (s *Store) ListAuthorizations(ctx context.Context, filter portsrepo.AuthorizationFilter) ([]domain.AuthorizationRequest, error) {
	s.authMu.Lock()
	defer s.authMu.Unlock()
	out := []domain.AuthorizationRequest{}
	for _, r := range s.auths {
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, r.Status) {
			continue
		}
		if filter.RequesterID != "" && r.RequesterID != filter.RequesterID {
			continue
		}
		if filter.ApproverID != "" && (r.ApproverID == nil || *r.ApproverID != filter.ApproverID) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, ctx.Err()
}

// UpdateAuthorizationWithLock holds the authorization lock for the whole read-modify-write.
func (s *Store) UpdateAuthorizationWithLock(ctx context.Context, id string, fn portsrepo.AuthorizationMutator) (*domain.AuthorizationRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.authMu.Lock()
	defer s.authMu.Unlock()
	current, ok := s.auths[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("authorization request " + id)
	}
	updated, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	s.auths[id] = *updated
	out := *updated
	return &out, nil
}
