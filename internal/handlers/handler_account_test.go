package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/handlers"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, accountNumber string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) SeedChartOfAccounts(ctx context.Context, accounts []dto.CreateAccountRequest, userID string) (int, int, error) {
	args := m.Called(ctx, accounts, userID)
	return args.Int(0), args.Int(1), args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	auth               middleware.AuthConfig
	userID             string
}

func (suite *AccountHandlerTestSuite) SetupSuite() {
	handlers.RegisterValidators()
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.auth = middleware.AuthConfig{Secret: "test-secret-key-that-is-long-enough", Issuer: "ledger-test"}
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.auth))

	suite.mockAccountService = new(MockAccountService)
	v1 := suite.router.Group("/api/v1")
	handlers.RegisterAccountRoutes(v1, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) request(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	token, err := middleware.IssueToken(suite.auth, suite.userID, time.Hour, time.Now())
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func testAccount(number, name string) *domain.Account {
	return &domain.Account{
		AccountID:     uuid.NewString(),
		Number:        number,
		Name:          name,
		AccountType:   domain.Asset,
		NormalBalance: domain.Debit,
		Balance:       decimal.NewFromInt(250),
		IsActive:      true,
	}
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{AccountNumber: "1010", AccountName: "Cash", AccountType: "Asset", NormalBalance: "Debit"}
	suite.mockAccountService.On("CreateAccount", mock.Anything, req, suite.userID).
		Return(testAccount("1010", "Cash"), nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("1010", body.AccountNumber)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidNumber() {
	req := dto.CreateAccountRequest{AccountNumber: "10 10", AccountName: "Cash", AccountType: "Asset", NormalBalance: "Debit"}

	w := suite.request(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Duplicate() {
	req := dto.CreateAccountRequest{AccountNumber: "1010", AccountName: "Cash", AccountType: "Asset", NormalBalance: "Debit"}
	suite.mockAccountService.On("CreateAccount", mock.Anything, req, suite.userID).
		Return(nil, apperrors.ErrDuplicateAccount).Once()

	w := suite.request(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountService.On("GetAccount", mock.Anything, "9999").
		Return(nil, fmt.Errorf("account 9999: %w", apperrors.ErrNotFound)).Once()

	w := suite.request(http.MethodGet, "/api/v1/accounts/9999", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_FilterByType() {
	assetType := domain.Asset
	suite.mockAccountService.On("ListAccounts", mock.Anything, mock.MatchedBy(func(f domain.AccountFilter) bool {
		return f.Type != nil && *f.Type == assetType
	})).Return([]domain.Account{*testAccount("1010", "Cash"), *testAccount("1200", "Receivables")}, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/accounts?type=Asset", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListAccountsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(2, body.Total)
	suite.Equal("1200", body.Accounts[1].AccountNumber)
}

func (suite *AccountHandlerTestSuite) TestUpdateAccount_DeactivateWithBalance() {
	inactive := false
	req := dto.UpdateAccountRequest{IsActive: &inactive}
	suite.mockAccountService.On("UpdateAccount", mock.Anything, "1010", req, suite.userID).
		Return(nil, fmt.Errorf("%w: non-zero balance", apperrors.ErrValidation)).Once()

	w := suite.request(http.MethodPut, "/api/v1/accounts/1010", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestMissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
