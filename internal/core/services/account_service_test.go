package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockAccountRepository
	mockCache *MockReportCache
	service   portssvc.AccountSvcFacade
	userID    string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockCache = new(MockReportCache)
	suite.service = services.NewAccountService(suite.mockRepo, services.WithAccountReportCache(suite.mockCache))
	suite.userID = uuid.NewString()
}

func cashRequest() dto.CreateAccountRequest {
	return dto.CreateAccountRequest{
		AccountNumber: "1010",
		AccountName:   "Cash",
		AccountType:   string(domain.Asset),
		NormalBalance: string(domain.Debit),
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Number == "1010" && acc.IsActive && acc.Balance.IsZero() && acc.CreatedBy == suite.userID
	})).Return(nil).Once()
	suite.mockCache.On("Invalidate", ctx).Return(nil).Once()

	acc, err := suite.service.CreateAccount(ctx, cashRequest(), suite.userID)

	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), acc.AccountID)
	assert.Equal(suite.T(), domain.Asset, acc.AccountType)
	assert.Equal(suite.T(), domain.Debit, acc.NormalBalance)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Duplicate() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicateAccount).Once()

	_, err := suite.service.CreateAccount(ctx, cashRequest(), suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicateAccount)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
	suite.mockCache.AssertNotCalled(suite.T(), "Invalidate", mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidInput() {
	ctx := context.Background()

	badType := cashRequest()
	badType.AccountType = "Treasure"
	_, err := suite.service.CreateAccount(ctx, badType, suite.userID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidAccountType)

	badNormal := cashRequest()
	badNormal.NormalBalance = "Sideways"
	_, err = suite.service.CreateAccount(ctx, badNormal, suite.userID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidNormalBalance)

	noName := cashRequest()
	noName.AccountName = " "
	_, err = suite.service.CreateAccount(ctx, noName, suite.userID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	for _, number := range []string{"10100000001", "10 10", "1010/2"} {
		badNumber := cashRequest()
		badNumber.AccountNumber = number
		_, err = suite.service.CreateAccount(ctx, badNumber, suite.userID)
		assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidAccountNumber, number)
		assert.ErrorIs(suite.T(), err, apperrors.ErrValidation, number)
	}

	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialUpdate() {
	ctx := context.Background()
	stored := &domain.Account{Number: "1010", Name: "Cash", SubType: "Current", IsActive: true, Balance: decimal.Zero}
	suite.mockRepo.On("FindAccountByNumber", ctx, "1010").Return(stored, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Name == "Petty Cash" && acc.SubType == "Current" && !acc.IsActive
	})).Return(nil).Once()
	suite.mockCache.On("Invalidate", ctx).Return(nil).Once()

	name, inactive := "Petty Cash", false
	acc, err := suite.service.UpdateAccount(ctx, "1010", dto.UpdateAccountRequest{AccountName: &name, IsActive: &inactive}, suite.userID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Petty Cash", acc.Name)
	assert.Equal(suite.T(), suite.userID, acc.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_DeactivateWithBalance() {
	ctx := context.Background()
	stored := &domain.Account{Number: "1010", Name: "Cash", IsActive: true, Balance: decimal.NewFromInt(5)}
	suite.mockRepo.On("FindAccountByNumber", ctx, "1010").Return(stored, nil).Once()

	inactive := false
	_, err := suite.service.UpdateAccount(ctx, "1010", dto.UpdateAccountRequest{IsActive: &inactive}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByNumber", ctx, "0000").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateAccount(ctx, "0000", dto.UpdateAccountRequest{}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts() {
	ctx := context.Background()
	revenue := domain.Revenue
	filter := domain.AccountFilter{Type: &revenue}
	suite.mockRepo.On("ListAccounts", ctx, filter).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, filter)

	require.NoError(suite.T(), err)
	assert.NotNil(suite.T(), accounts)
	assert.Empty(suite.T(), accounts)

	bogus := domain.AccountType("Bogus")
	_, err = suite.service.ListAccounts(ctx, domain.AccountFilter{Type: &bogus})
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidAccountType)
}

func (suite *AccountServiceTestSuite) TestSeedChartOfAccounts() {
	ctx := context.Background()
	rent := cashRequest()
	rent.AccountNumber, rent.AccountName, rent.AccountType = "5100", "Rent", string(domain.ExpenseType)
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool { return acc.Number == "1010" })).
		Return(apperrors.ErrDuplicateAccount).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool { return acc.Number == "5100" })).
		Return(nil).Once()
	suite.mockCache.On("Invalidate", ctx).Return(nil)

	created, skipped, err := suite.service.SeedChartOfAccounts(ctx, []dto.CreateAccountRequest{cashRequest(), rent}, "")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, created)
	assert.Equal(suite.T(), 1, skipped)
}

func (suite *AccountServiceTestSuite) TestSeedChartOfAccounts_StopsOnFailure() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.Anything).Return(errors.New("disk full")).Once()

	_, _, err := suite.service.SeedChartOfAccounts(ctx, []dto.CreateAccountRequest{cashRequest()}, "")

	assert.Error(suite.T(), err)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
