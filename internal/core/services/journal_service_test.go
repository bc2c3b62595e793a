package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/domain"
	portssvc "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/services"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/services"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/dto"
)

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// MockJournalRepository is a mock type for the JournalRepository interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Test Suite Setup ---

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalService
	ctx             context.Context
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo)
	suite.ctx = context.Background()
}

func activeAccounts(ids ...string) map[string]domain.Account {
	accounts := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		accounts[id] = domain.Account{AccountID: id, AccountType: domain.Asset, IsActive: true}
	}
	return accounts
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		Date:        time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Description: "Opening capital contribution",
		Lines: []dto.JournalLineRequest{
			{AccountID: "acc-cash", Debit: decimal.NewFromInt(10000)},
			{AccountID: "acc-capital", Credit: decimal.NewFromInt(10000)},
		},
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	req := suite.balancedRequest()
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, mock.AnythingOfType("[]string")).
		Return(activeAccounts("acc-cash", "acc-capital"), nil)
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil)

	entry, err := suite.service.CreateEntry(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.NotEmpty(entry.EntryID)
	suite.Len(entry.Lines, 2)
	suite.Equal("user-1", entry.CreatedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_GeneratesDatedReference() {
	req := suite.balancedRequest()
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, mock.AnythingOfType("[]string")).
		Return(activeAccounts("acc-cash", "acc-capital"), nil)
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil)

	entry, err := suite.service.CreateEntry(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Regexp(`^JE-20260314-[0-9a-f]{8}$`, entry.Reference)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_KeepsExplicitReference() {
	req := suite.balancedRequest()
	req.Reference = "INV-0042"
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, mock.AnythingOfType("[]string")).
		Return(activeAccounts("acc-cash", "acc-capital"), nil)
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil)

	entry, err := suite.service.CreateEntry(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal("INV-0042", entry.Reference)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnbalancedRejectedBeforeStore() {
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(9000)

	entry, err := suite.service.CreateEntry(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.Nil(entry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NearMissImbalanceRejected() {
	// 0.001 off is within the reporting tolerance but entries must balance
	// exactly.
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.RequireFromString("9999.999")

	_, err := suite.service.CreateEntry(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SingleLineRejected() {
	req := suite.balancedRequest()
	req.Lines = req.Lines[:1]

	_, err := suite.service.CreateEntry(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinLines)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SingleAccountRejected() {
	req := suite.balancedRequest()
	req.Lines[1].AccountID = "acc-cash"

	_, err := suite.service.CreateEntry(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinAccounts)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NegativeAmountRejected() {
	req := suite.balancedRequest()
	req.Lines[0].Debit = decimal.NewFromInt(-10000)
	req.Lines[1].Credit = decimal.NewFromInt(-10000)

	_, err := suite.service.CreateEntry(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_MissingDescriptionRejected() {
	req := suite.balancedRequest()
	req.Description = "   "

	_, err := suite.service.CreateEntry(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDescriptionMissing)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccountRejected() {
	req := suite.balancedRequest()
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, mock.AnythingOfType("[]string")).
		Return(activeAccounts("acc-cash"), nil) // acc-capital missing

	_, err := suite.service.CreateEntry(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccountRejected() {
	req := suite.balancedRequest()
	accounts := activeAccounts("acc-cash", "acc-capital")
	capital := accounts["acc-capital"]
	capital.IsActive = false
	accounts["acc-capital"] = capital
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, mock.AnythingOfType("[]string")).
		Return(accounts, nil)

	_, err := suite.service.CreateEntry(suite.ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
}

func (suite *JournalServiceTestSuite) TestListEntries() {
	stored := []domain.JournalEntry{{EntryID: "e1"}, {EntryID: "e2"}}
	suite.mockJournalRepo.On("ListEntries", suite.ctx).Return(stored, nil)

	entries, err := suite.service.ListEntries(suite.ctx)

	suite.Require().NoError(err)
	suite.Len(entries, 2)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
