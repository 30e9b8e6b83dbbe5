package handlers_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/landed_pricing_app/internal/apperrors"
	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/SscSPs/landed_pricing_app/internal/core/pricing"
	portsrepo "github.com/SscSPs/landed_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/landed_pricing_app/internal/core/ports/services"
	"github.com/SscSPs/landed_pricing_app/internal/dto"
	"github.com/SscSPs/landed_pricing_app/internal/events"
	"github.com/SscSPs/landed_pricing_app/internal/handlers"
	"github.com/SscSPs/landed_pricing_app/internal/middleware"
	"github.com/SscSPs/landed_pricing_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PricingService ---
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) Recalculate(ctx context.Context, mode domain.TransportMode) (*domain.RecalculationSummary, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecalculationSummary), args.Error(1)
}

func (m *MockPricingService) ListLandedCosts(ctx context.Context, actor domain.Actor, filter portsrepo.PricingFilter) ([]domain.LandedCostRecord, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LandedCostRecord), args.Error(1)
}

func (m *MockPricingService) ListPriceTiers(ctx context.Context, actor domain.Actor, filter portsrepo.PricingFilter) ([]domain.PriceTierRecord, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceTierRecord), args.Error(1)
}

func (m *MockPricingService) CheckQuality(ctx context.Context, mode domain.TransportMode) (*pricing.QualityReport, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.QualityReport), args.Error(1)
}

var _ portssvc.PricingSvcFacade = (*MockPricingService)(nil)

// --- Mock ReferenceService ---
type MockReferenceService struct {
	mock.Mock
}

func (m *MockReferenceService) LoadReferences(ctx context.Context) (*domain.ReferenceData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferenceData), args.Error(1)
}

func (m *MockReferenceService) ImportReferences(ctx context.Context, data domain.ReferenceData) (*portssvc.ImportSummary, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ImportSummary), args.Error(1)
}

var _ portssvc.ReferenceSvc = (*MockReferenceService)(nil)

// --- Mock AuthorizationService ---
type MockAuthorizationService struct {
	mock.Mock
}

func (m *MockAuthorizationService) request(args mock.Arguments) (*domain.AuthorizationRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthorizationRequest), args.Error(1)
}

func (m *MockAuthorizationService) requests(args mock.Arguments) ([]domain.AuthorizationRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuthorizationRequest), args.Error(1)
}

func (m *MockAuthorizationService) GetAuthorization(ctx context.Context, actor domain.Actor, id string) (*domain.AuthorizationRequest, error) {
	return m.request(m.Called(ctx, actor, id))
}

func (m *MockAuthorizationService) ListPending(ctx context.Context, actor domain.Actor) ([]domain.AuthorizationRequest, error) {
	return m.requests(m.Called(ctx, actor))
}

func (m *MockAuthorizationService) ListMine(ctx context.Context, actor domain.Actor) ([]domain.AuthorizationRequest, error) {
	return m.requests(m.Called(ctx, actor))
}

func (m *MockAuthorizationService) ListResolved(ctx context.Context, actor domain.Actor) ([]domain.AuthorizationRequest, error) {
	return m.requests(m.Called(ctx, actor))
}

func (m *MockAuthorizationService) CreateAuthorization(ctx context.Context, actor domain.Actor, req dto.CreateAuthorizationRequest) (*domain.AuthorizationRequest, error) {
	return m.request(m.Called(ctx, actor, req))
}

func (m *MockAuthorizationService) Approve(ctx context.Context, actor domain.Actor, id string, comments *string) (*domain.AuthorizationRequest, error) {
	return m.request(m.Called(ctx, actor, id, comments))
}

func (m *MockAuthorizationService) Reject(ctx context.Context, actor domain.Actor, id string, comments *string) (*domain.AuthorizationRequest, error) {
	return m.request(m.Called(ctx, actor, id, comments))
}

var _ portssvc.AuthorizationSvcFacade = (*MockAuthorizationService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	cfg           *config.Config
	pricing       *MockPricingService
	references    *MockReferenceService
	authorization *MockAuthorizationService
	broker        *events.Broker
}

var (
	seller     = domain.Actor{ID: "seller-1", Role: domain.RoleSeller}
	commercial = domain.Actor{ID: "gc-1", Role: domain.RoleCommercialManagement}
	direction  = domain.Actor{ID: "dir-1", Role: domain.RoleDirection}
)

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		JWTSecret:        "test-secret-key-that-is-long-enough",
		JWTIssuer:        "pricing-test",
		DefaultTransport: domain.TransportMaritime,
	}
	suite.pricing = new(MockPricingService)
	suite.references = new(MockReferenceService)
	suite.authorization = new(MockAuthorizationService)
	suite.broker = events.NewBroker(4)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Pricing:       suite.pricing,
		Reference:     suite.references,
		Authorization: suite.authorization,
		Events:        suite.broker,
	})
}

func (suite *HandlerTestSuite) token(actor domain.Actor) string {
	signed, err := middleware.IssueToken(suite.cfg.JWTSecret, suite.cfg.JWTIssuer, actor, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) do(actor *domain.Actor, method, url string, body []byte, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, bytes.NewReader(body))
	if actor != nil {
		req.Header.Set("Authorization", "Bearer "+suite.token(*actor))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) doJSON(actor *domain.Actor, method, url string, payload any) *httptest.ResponseRecorder {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		suite.Require().NoError(err)
	}
	return suite.do(actor, method, url, body, "application/json")
}

func (suite *HandlerTestSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func sampleTier() domain.PriceTierRecord {
	return domain.PriceTierRecord{
		SKU:             "X1",
		TransportMode:   domain.TransportMaritime,
		CostInHome:      decimal.NewFromInt(1000),
		LandedCost:      decimal.NewFromInt(1000),
		MarkupPct:       decimal.NewFromInt(10),
		BasePrice:       decimal.NewFromInt(1100),
		MaxPrice:        decimal.NewFromInt(2200),
		SellerMin:       decimal.NewFromInt(1760),
		CommercialMin:   decimal.NewFromInt(1650),
		SubdirectionMin: decimal.NewFromInt(1540),
		DirectionMin:    decimal.NewFromInt(1430),
	}
}

func pending(id string) *domain.AuthorizationRequest {
	return &domain.AuthorizationRequest{
		ID:                 id,
		SKU:                "X1",
		TransportMode:      domain.TransportMaritime,
		RequesterID:        seller.ID,
		RequesterRole:      domain.RoleSeller,
		EscalatedTo:        domain.RoleCommercialManagement,
		ProposedPrice:      decimal.NewFromInt(1700),
		ReferenceThreshold: decimal.NewFromInt(1760),
		DiscountPct:        decimal.RequireFromString("3.41"),
		Status:             domain.StatusPending,
		CreatedAt:          time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth_NoToken() {
	w := suite.do(nil, http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestAPI_RequiresToken() {
	w := suite.do(nil, http.MethodGet, "/api/v1/pricing/tiers", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.pricing.AssertNotCalled(suite.T(), "ListPriceTiers")
}

func (suite *HandlerTestSuite) TestAPI_RejectsForeignIssuer() {
	signed, err := middleware.IssueToken(suite.cfg.JWTSecret, "someone-else", commercial, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/pricing/tiers", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestRecalculate_Success() {
	summary := &domain.RecalculationSummary{TransportMode: domain.TransportAir, LandedRows: 3, TierRows: 3, FlaggedSKUs: []string{"Z0"}}
	suite.pricing.On("Recalculate", mock.Anything, domain.TransportMode("aereo")).Return(summary, nil).Once()

	w := suite.doJSON(&commercial, http.MethodPost, "/api/v1/pricing/recalculate", dto.RecalculateRequest{TransportMode: "aereo"})

	suite.Equal(http.StatusOK, w.Code)
	var got domain.RecalculationSummary
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(3, got.TierRows)
	suite.Equal([]string{"Z0"}, got.FlaggedSKUs)
	suite.pricing.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestRecalculate_SellerForbidden() {
	w := suite.doJSON(&seller, http.MethodPost, "/api/v1/pricing/recalculate", dto.RecalculateRequest{TransportMode: "Air"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.pricing.AssertNotCalled(suite.T(), "Recalculate", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRecalculate_MissingMode() {
	w := suite.do(&commercial, http.MethodPost, "/api/v1/pricing/recalculate", []byte(`{}`), "application/json")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorMessage(w), "Invalid request format")
}

func (suite *HandlerTestSuite) TestRecalculate_InfrastructureErrorHidden() {
	suite.pricing.On("Recalculate", mock.Anything, domain.TransportAir).Return(nil, errors.New("connection reset by peer")).Once()

	w := suite.doJSON(&direction, http.MethodPost, "/api/v1/pricing/recalculate", dto.RecalculateRequest{TransportMode: "Air"})

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to recalculate pricing", suite.errorMessage(w))
}

func (suite *HandlerTestSuite) TestListPriceTiers_HidesCostsFromSeller() {
	filter := portsrepo.PricingFilter{SKU: "X1", TransportMode: domain.TransportMaritime}
	suite.pricing.On("ListPriceTiers", mock.Anything, seller, filter).Return([]domain.PriceTierRecord{sampleTier()}, nil).Once()

	w := suite.do(&seller, http.MethodGet, "/api/v1/pricing/tiers?sku=X1&transport_mode=Maritime", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListResponse[map[string]any]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Equal(1, body.Count)
	suite.NotContains(body.Items[0], "landedCost")
	suite.NotContains(body.Items[0], "costInHome")
	suite.Equal("1760", body.Items[0]["sellerMin"])
}

func (suite *HandlerTestSuite) TestListPriceTiers_ShowsCostsToCommercial() {
	suite.pricing.On("ListPriceTiers", mock.Anything, commercial, portsrepo.PricingFilter{}).Return([]domain.PriceTierRecord{sampleTier()}, nil).Once()

	w := suite.do(&commercial, http.MethodGet, "/api/v1/pricing/tiers", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListResponse[map[string]any]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Items, 1)
	suite.Equal("1000", body.Items[0]["landedCost"])
}

func (suite *HandlerTestSuite) TestListLandedCosts_SellerNotEligible() {
	err := fmt.Errorf("%w: sellers may not see landed costs", apperrors.ErrRoleNotEligible)
	suite.pricing.On("ListLandedCosts", mock.Anything, seller, portsrepo.PricingFilter{}).Return(nil, err).Once()

	w := suite.do(&seller, http.MethodGet, "/api/v1/pricing/landed", nil, "")

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestCheckQuality_DefaultsTransport() {
	report := &pricing.QualityReport{Checked: 2, FlaggedSKUs: []string{}}
	suite.pricing.On("CheckQuality", mock.Anything, domain.TransportMaritime).Return(report, nil).Once()

	w := suite.do(&commercial, http.MethodGet, "/api/v1/pricing/quality", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.pricing.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestExportPriceList() {
	suite.pricing.On("ListPriceTiers", mock.Anything, commercial, portsrepo.PricingFilter{}).Return([]domain.PriceTierRecord{sampleTier()}, nil).Once()

	w := suite.do(&commercial, http.MethodGet, "/api/v1/pricing/export", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Disposition"), "price_list.xlsx")
	suite.NotZero(w.Body.Len())
}

func (suite *HandlerTestSuite) TestImportReferences_MissingFile() {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	suite.Require().NoError(mw.WriteField("note", "no workbook here"))
	suite.Require().NoError(mw.Close())

	w := suite.do(&direction, http.MethodPost, "/api/v1/references/import", buf.Bytes(), mw.FormDataContentType())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.references.AssertNotCalled(suite.T(), "ImportReferences", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestImportReferences_NotAWorkbook() {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "refs.xlsx")
	suite.Require().NoError(err)
	_, err = part.Write([]byte("plain text"))
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	w := suite.do(&direction, http.MethodPost, "/api/v1/references/import", buf.Bytes(), mw.FormDataContentType())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.references.AssertNotCalled(suite.T(), "ImportReferences", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestImportReferences_SellerForbidden() {
	w := suite.do(&seller, http.MethodPost, "/api/v1/references/import", nil, "")
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestCreateAuthorization_Created() {
	client := "ACME"
	payload := dto.CreateAuthorizationRequest{
		SKU:           "X1",
		TransportMode: "Maritime",
		ProposedPrice: decimal.NewFromInt(1700),
		Client:        &client,
	}
	suite.authorization.On("CreateAuthorization", mock.Anything, seller, mock.MatchedBy(func(r dto.CreateAuthorizationRequest) bool {
		return r.SKU == "X1" && r.ProposedPrice.Equal(decimal.NewFromInt(1700)) && r.Client != nil && *r.Client == client
	})).Return(pending("req-1"), nil).Once()

	w := suite.doJSON(&seller, http.MethodPost, "/api/v1/authorizations", payload)

	suite.Equal(http.StatusCreated, w.Code)
	var got domain.AuthorizationRequest
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("req-1", got.ID)
	suite.Equal(domain.RoleCommercialManagement, got.EscalatedTo)
	suite.authorization.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateAuthorization_ServiceErrors() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"below floor", fmt.Errorf("%w: below cost", apperrors.ErrInvalidPrice), http.StatusBadRequest},
		{"within own authority", apperrors.ErrNoAuthorizationNeeded, http.StatusBadRequest},
		{"role may not request", apperrors.ErrRoleNotEligible, http.StatusForbidden},
		{"unknown tier", apperrors.NewNotFoundError("price tier X9"), http.StatusNotFound},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.authorization.On("CreateAuthorization", mock.Anything, seller, mock.Anything).Return(nil, tt.err).Once()

			w := suite.doJSON(&seller, http.MethodPost, "/api/v1/authorizations", dto.CreateAuthorizationRequest{
				SKU: "X1", TransportMode: "Maritime", ProposedPrice: decimal.NewFromInt(1000),
			})

			suite.Equal(tt.status, w.Code)
		})
	}
}

func (suite *HandlerTestSuite) TestListPending() {
	suite.authorization.On("ListPending", mock.Anything, commercial).Return([]domain.AuthorizationRequest{*pending("req-1")}, nil).Once()

	w := suite.do(&commercial, http.MethodGet, "/api/v1/authorizations/pending", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListResponse[domain.AuthorizationRequest]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(1, body.Count)
	suite.Equal("req-1", body.Items[0].ID)
}

func (suite *HandlerTestSuite) TestListMine_EmptyIsArray() {
	suite.authorization.On("ListMine", mock.Anything, seller).Return(nil, nil).Once()

	w := suite.do(&seller, http.MethodGet, "/api/v1/authorizations/mine", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"items":[],"count":0}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestGetAuthorization_NotVisible() {
	suite.authorization.On("GetAuthorization", mock.Anything, seller, "req-9").
		Return(nil, fmt.Errorf("%w: not visible", apperrors.ErrInsufficientAuthority)).Once()

	w := suite.do(&seller, http.MethodGet, "/api/v1/authorizations/req-9", nil, "")

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestApprove_WithComments() {
	approved := pending("req-1")
	approved.Status = domain.StatusApproved
	suite.authorization.On("Approve", mock.Anything, commercial, "req-1", mock.MatchedBy(func(c *string) bool {
		return c != nil && *c == "ok for this client"
	})).Return(approved, nil).Once()

	w := suite.doJSON(&commercial, http.MethodPut, "/api/v1/authorizations/req-1/approve", map[string]string{"comments": "ok for this client"})

	suite.Equal(http.StatusOK, w.Code)
	var got domain.AuthorizationRequest
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(domain.StatusApproved, got.Status)
}

func (suite *HandlerTestSuite) TestReject_NoBody() {
	rejected := pending("req-1")
	rejected.Status = domain.StatusRejected
	suite.authorization.On("Reject", mock.Anything, direction, "req-1", (*string)(nil)).Return(rejected, nil).Once()

	w := suite.do(&direction, http.MethodPut, "/api/v1/authorizations/req-1/reject", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.authorization.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestApprove_AlreadyResolved() {
	suite.authorization.On("Approve", mock.Anything, commercial, "req-1", (*string)(nil)).
		Return(nil, fmt.Errorf("%w: request req-1 is Approved", apperrors.ErrAlreadyResolved)).Once()

	w := suite.do(&commercial, http.MethodPut, "/api/v1/authorizations/req-1/approve", nil, "")

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(suite.errorMessage(w), "already resolved")
}

func (suite *HandlerTestSuite) TestApprove_ChunkedBodyKeepsComments() {
	approved := pending("req-1")
	approved.Status = domain.StatusApproved
	suite.authorization.On("Approve", mock.Anything, commercial, "req-1", mock.MatchedBy(func(c *string) bool {
		return c != nil && *c == "sent chunked"
	})).Return(approved, nil).Once()

	req, _ := http.NewRequest(http.MethodPut, "/api/v1/authorizations/req-1/approve",
		io.NopCloser(strings.NewReader(`{"comments":"sent chunked"}`)))
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token(commercial))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.authorization.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestReject_ChunkedEmptyBody() {
	rejected := pending("req-1")
	rejected.Status = domain.StatusRejected
	suite.authorization.On("Reject", mock.Anything, direction, "req-1", (*string)(nil)).Return(rejected, nil).Once()

	req, _ := http.NewRequest(http.MethodPut, "/api/v1/authorizations/req-1/reject", io.NopCloser(strings.NewReader("")))
	req.ContentLength = -1
	req.Header.Set("Authorization", "Bearer "+suite.token(direction))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.authorization.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestApprove_MalformedBody() {
	w := suite.do(&commercial, http.MethodPut, "/api/v1/authorizations/req-1/approve", []byte(`{"comments":`), "application/json")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.authorization.AssertNotCalled(suite.T(), "Approve")
}

func (suite *HandlerTestSuite) TestAuthorizationEvents_RequiresToken() {
	w := suite.do(nil, http.MethodGet, "/api/v1/authorizations/events", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(0, suite.broker.Subscribers())
}

func (suite *HandlerTestSuite) TestAuthorizationEvents_NoSource() {
	router := gin.New()
	handlers.RegisterRoutes(router, suite.cfg, &portssvc.ServiceContainer{
		Pricing:       suite.pricing,
		Reference:     suite.references,
		Authorization: suite.authorization,
	})
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/authorizations/events", nil)
	req.Header.Set("Authorization", "Bearer "+suite.token(direction))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *HandlerTestSuite) TestAuthorizationEvents_StreamsPublishedEvent() {
	server := httptest.NewServer(suite.router)
	defer server.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/authorizations/events", nil)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+suite.token(commercial))
	resp, err := server.Client().Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("text/event-stream", resp.Header.Get("Content-Type"))
	suite.Require().Equal(1, suite.broker.Subscribers())

	published := events.Event{
		Type:          events.TypeAuthorizationCreated,
		RequestID:     "req-1",
		SKU:           "X1",
		TransportMode: string(domain.TransportMaritime),
		Status:        string(domain.StatusPending),
		EscalatedTo:   string(domain.RoleCommercialManagement),
		Actor:         seller.ID,
	}
	suite.Require().NoError(suite.broker.Publish(context.Background(), published))

	reader := bufio.NewReader(resp.Body)
	var lines []string
	for len(lines) < 2 {
		line, err := reader.ReadString('\n')
		suite.Require().NoError(err)
		if line = strings.TrimRight(line, "\n"); line != "" {
			lines = append(lines, line)
		}
	}
	suite.Equal("event:"+events.TypeAuthorizationCreated, lines[0])
	suite.Require().True(strings.HasPrefix(lines[1], "data:"), lines[1])

	var got events.Event
	suite.Require().NoError(json.Unmarshal([]byte(strings.TrimPrefix(lines[1], "data:")), &got))
	suite.Equal("req-1", got.RequestID)
	suite.Equal(string(domain.RoleCommercialManagement), got.EscalatedTo)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
