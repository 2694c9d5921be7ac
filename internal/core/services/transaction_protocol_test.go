package services_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/spendwise/spendwise-backend/internal/apperrors"
	"github.com/spendwise/spendwise-backend/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise-backend/internal/core/ports/repositories"
	portssvc "github.com/spendwise/spendwise-backend/internal/core/ports/services"
	"github.com/spendwise/spendwise-backend/internal/core/services"
	"github.com/spendwise/spendwise-backend/internal/dto"
)

// fakeStore is an in-memory stand-in for the Postgres repositories. Balance
// deltas are applied to the stored accounts the same way the real store does,
// so sequences of operations can be checked against the invariant that every
// account balance equals its opening balance plus the net signed effect of
// the stored transactions.
type fakeStore struct {
	accounts   map[string]domain.Account
	categories map[string]domain.Category
	txns       map[string]domain.Transaction
	opening    map[string]decimal.Decimal
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:   make(map[string]domain.Account),
		categories: make(map[string]domain.Category),
		txns:       make(map[string]domain.Transaction),
		opening:    make(map[string]decimal.Decimal),
	}
}

var (
	_ portsrepo.TransactionRepositoryFacade = (*fakeStore)(nil)
	_ portsrepo.AccountRepositoryFacade     = (*fakeStore)(nil)
	_ portsrepo.CategoryRepositoryFacade    = (*fakeStore)(nil)
)

func (f *fakeStore) addAccount(acc domain.Account) {
	f.accounts[acc.AccountID] = acc
	f.opening[acc.AccountID] = acc.Balance
}

func (f *fakeStore) applyDeltas(deltas map[string]decimal.Decimal) error {
	for id := range deltas {
		if _, ok := f.accounts[id]; !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	for id, delta := range deltas {
		acc := f.accounts[id]
		acc.Balance = acc.Balance.Add(delta)
		f.accounts[id] = acc
	}
	return nil
}

// --- TransactionRepositoryFacade ---

func (f *fakeStore) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	txn, ok := f.txns[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (f *fakeStore) ListTransactions(_ context.Context, userID string, _ portsrepo.TransactionFilter, limit int, _ *string) ([]domain.Transaction, *string, error) {
	var out []domain.Transaction
	for _, txn := range f.txns {
		if txn.UserID == userID {
			out = append(out, txn)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TransactionDate.After(out[j].TransactionDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func (f *fakeStore) SaveTransaction(_ context.Context, txn domain.Transaction, deltas map[string]decimal.Decimal) error {
	if err := f.applyDeltas(deltas); err != nil {
		return err
	}
	f.txns[txn.TransactionID] = txn
	return nil
}

func (f *fakeStore) UpdateTransaction(_ context.Context, txn domain.Transaction, deltas map[string]decimal.Decimal) error {
	if _, ok := f.txns[txn.TransactionID]; !ok {
		return apperrors.ErrNotFound
	}
	if err := f.applyDeltas(deltas); err != nil {
		return err
	}
	f.txns[txn.TransactionID] = txn
	return nil
}

func (f *fakeStore) DeleteTransaction(_ context.Context, transactionID string, deltas map[string]decimal.Decimal) error {
	if _, ok := f.txns[transactionID]; !ok {
		return apperrors.ErrNotFound
	}
	if err := f.applyDeltas(deltas); err != nil {
		return err
	}
	delete(f.txns, transactionID)
	return nil
}

// --- AccountRepositoryFacade ---

func (f *fakeStore) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	acc, ok := f.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (f *fakeStore) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := f.accounts[id]; ok {
			out[id] = acc
		}
	}
	return out, nil
}

func (f *fakeStore) ListAccounts(_ context.Context, userID string) ([]domain.Account, error) {
	var out []domain.Account
	for _, acc := range f.accounts {
		if acc.UserID == userID && acc.IsActive {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveAccount(_ context.Context, account domain.Account) error {
	f.addAccount(account)
	return nil
}

func (f *fakeStore) UpdateAccount(_ context.Context, account domain.Account) error {
	if _, ok := f.accounts[account.AccountID]; !ok {
		return apperrors.ErrNotFound
	}
	f.accounts[account.AccountID] = account
	return nil
}

func (f *fakeStore) DeactivateAccount(_ context.Context, accountID string, now time.Time) error {
	acc, ok := f.accounts[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	acc.IsActive = false
	acc.UpdatedAt = now
	f.accounts[accountID] = acc
	return nil
}

func (f *fakeStore) FindAccountsByIDsForUpdate(ctx context.Context, _ pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	return f.FindAccountsByIDs(ctx, accountIDs)
}

func (f *fakeStore) ApplyBalanceDeltasInTx(_ context.Context, _ pgx.Tx, deltas map[string]decimal.Decimal, _ time.Time) error {
	return f.applyDeltas(deltas)
}

// --- CategoryRepositoryFacade ---

func (f *fakeStore) FindCategoryByID(_ context.Context, categoryID string) (*domain.Category, error) {
	cat, ok := f.categories[categoryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &cat, nil
}

func (f *fakeStore) ListCategories(_ context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	var out []domain.Category
	for _, cat := range f.categories {
		if cat.UserID != userID || !cat.IsActive {
			continue
		}
		if categoryType != nil && cat.CategoryType != *categoryType {
			continue
		}
		out = append(out, cat)
	}
	return out, nil
}

func (f *fakeStore) SaveCategory(_ context.Context, category domain.Category) error {
	f.categories[category.CategoryID] = category
	return nil
}

func (f *fakeStore) UpdateCategory(_ context.Context, category domain.Category) error {
	if _, ok := f.categories[category.CategoryID]; !ok {
		return apperrors.ErrNotFound
	}
	f.categories[category.CategoryID] = category
	return nil
}

func (f *fakeStore) DeactivateCategory(_ context.Context, categoryID string, now time.Time) error {
	cat, ok := f.categories[categoryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	cat.IsActive = false
	cat.UpdatedAt = now
	f.categories[categoryID] = cat
	return nil
}

// --- Sequence Test Suite ---

// TransactionProtocolTestSuite runs whole operation sequences against the
// in-memory store and checks that stored balances always equal the opening
// balance plus the replayed effects of the stored transactions.
type TransactionProtocolTestSuite struct {
	suite.Suite
	store     *fakeStore
	service   portssvc.TransactionSvcFacade
	userID    string
	checking  string
	savings   string
	groceries string
	salary    string
	txnDate   time.Time
}

func (suite *TransactionProtocolTestSuite) SetupTest() {
	suite.store = newFakeStore()
	suite.service = services.NewTransactionService(suite.store, suite.store, suite.store)

	suite.userID = uuid.NewString()
	suite.txnDate = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	checking := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		Name:        "Checking",
		AccountType: domain.Checking,
		Balance:     decimal.NewFromInt(1000),
		IsActive:    true,
	}
	savings := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		Name:        "Savings",
		AccountType: domain.Savings,
		Balance:     decimal.NewFromInt(500),
		IsActive:    true,
	}
	suite.store.addAccount(checking)
	suite.store.addAccount(savings)
	suite.checking = checking.AccountID
	suite.savings = savings.AccountID

	groceries := domain.Category{
		CategoryID:   uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Groceries",
		CategoryType: domain.ExpenseCategory,
		IsActive:     true,
	}
	salary := domain.Category{
		CategoryID:   uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Salary",
		CategoryType: domain.IncomeCategory,
		IsActive:     true,
	}
	suite.store.categories[groceries.CategoryID] = groceries
	suite.store.categories[salary.CategoryID] = salary
	suite.groceries = groceries.CategoryID
	suite.salary = salary.CategoryID
}

// assertInvariant replays every stored transaction's balance effects over the
// opening balances and compares the result with the stored balances.
func (suite *TransactionProtocolTestSuite) assertInvariant() {
	replayed := make(map[string]decimal.Decimal, len(suite.store.opening))
	for id, opening := range suite.store.opening {
		replayed[id] = opening
	}
	for _, txn := range suite.store.txns {
		for id, delta := range txn.BalanceEffects() {
			replayed[id] = replayed[id].Add(delta)
		}
	}
	for id, acc := range suite.store.accounts {
		suite.True(acc.Balance.Equal(replayed[id]),
			"account %s: stored balance %s, replayed %s", acc.Name, acc.Balance, replayed[id])
	}
}

func (suite *TransactionProtocolTestSuite) balance(accountID string) decimal.Decimal {
	return suite.store.accounts[accountID].Balance
}

func (suite *TransactionProtocolTestSuite) create(req dto.CreateTransactionRequest) *domain.Transaction {
	txn, err := suite.service.CreateTransaction(context.Background(), req, suite.userID)
	suite.Require().NoError(err)
	return txn
}

func (suite *TransactionProtocolTestSuite) TestCreateSequence() {
	suite.create(dto.CreateTransactionRequest{
		TransactionType: domain.Expense,
		Amount:          decimal.NewFromInt(150),
		CategoryID:      &suite.groceries,
		AccountID:       &suite.checking,
		TransactionDate: suite.txnDate,
	})
	suite.True(suite.balance(suite.checking).Equal(decimal.NewFromInt(850)))

	suite.create(dto.CreateTransactionRequest{
		TransactionType: domain.Income,
		Amount:          decimal.NewFromInt(2000),
		CategoryID:      &suite.salary,
		ToAccountID:     &suite.checking,
		TransactionDate: suite.txnDate,
	})
	suite.True(suite.balance(suite.checking).Equal(decimal.NewFromInt(2850)))

	suite.create(dto.CreateTransactionRequest{
		TransactionType: domain.Transfer,
		Amount:          decimal.NewFromInt(300),
		AccountID:       &suite.checking,
		ToAccountID:     &suite.savings,
		TransactionDate: suite.txnDate,
	})
	suite.True(suite.balance(suite.checking).Equal(decimal.NewFromInt(2550)))
	suite.True(suite.balance(suite.savings).Equal(decimal.NewFromInt(800)))

	suite.assertInvariant()
}

func (suite *TransactionProtocolTestSuite) TestUpdateLandsWhereDirectRecordingWould() {
	expense := suite.create(dto.CreateTransactionRequest{
		TransactionType: domain.Expense,
		Amount:          decimal.NewFromInt(150),
		CategoryID:      &suite.groceries,
		AccountID:       &suite.checking,
		TransactionDate: suite.txnDate,
	})

	// Move the expense to the other account and change the amount. The net
	// adjustment must leave balances exactly as if 200 had been recorded
	// against savings in the first place.
	_, err := suite.service.UpdateTransaction(context.Background(), expense.TransactionID, dto.UpdateTransactionRequest{
		TransactionType: domain.Expense,
		Amount:          decimal.NewFromInt(200),
		CategoryID:      &suite.groceries,
		AccountID:       &suite.savings,
		TransactionDate: suite.txnDate,
	}, suite.userID)
	suite.Require().NoError(err)

	suite.True(suite.balance(suite.checking).Equal(decimal.NewFromInt(1000)))
	suite.True(suite.balance(suite.savings).Equal(decimal.NewFromInt(300)))
	suite.assertInvariant()
}

func (suite *TransactionProtocolTestSuite) TestUpdateTypeChange() {
	expense := suite.create(dto.CreateTransactionRequest{
		TransactionType: domain.Expense,
		Amount:          decimal.NewFromInt(150),
		CategoryID:      &suite.groceries,
		AccountID:       &suite.checking,
		TransactionDate: suite.txnDate,
	})

	updated, err := suite.service.UpdateTransaction(context.Background(), expense.TransactionID, dto.UpdateTransactionRequest{
		TransactionType: domain.Transfer,
		Amount:          decimal.NewFromInt(150),
		AccountID:       &suite.checking,
		ToAccountID:     &suite.savings,
		TransactionDate: suite.txnDate,
	}, suite.userID)
	suite.Require().NoError(err)
	suite.Nil(updated.CategoryID)

	suite.True(suite.balance(suite.checking).Equal(decimal.NewFromInt(850)))
	suite.True(suite.balance(suite.savings).Equal(decimal.NewFromInt(650)))
	suite.assertInvariant()
}

func (suite *TransactionProtocolTestSuite) TestDeleteRestoresBalances() {
	transfer := suite.create(dto.CreateTransactionRequest{
		TransactionType: domain.Transfer,
		Amount:          decimal.NewFromInt(300),
		AccountID:       &suite.checking,
		ToAccountID:     &suite.savings,
		TransactionDate: suite.txnDate,
	})

	err := suite.service.DeleteTransaction(context.Background(), transfer.TransactionID, suite.userID)
	suite.Require().NoError(err)

	suite.True(suite.balance(suite.checking).Equal(decimal.NewFromInt(1000)))
	suite.True(suite.balance(suite.savings).Equal(decimal.NewFromInt(500)))
	suite.Empty(suite.store.txns)
	suite.assertInvariant()
}

func (suite *TransactionProtocolTestSuite) TestFullLifecycle() {
	expense := suite.create(dto.CreateTransactionRequest{
		TransactionType: domain.Expense,
		Amount:          decimal.NewFromInt(150),
		CategoryID:      &suite.groceries,
		AccountID:       &suite.checking,
		TransactionDate: suite.txnDate,
	})
	suite.create(dto.CreateTransactionRequest{
		TransactionType: domain.Income,
		Amount:          decimal.NewFromInt(2000),
		CategoryID:      &suite.salary,
		ToAccountID:     &suite.checking,
		TransactionDate: suite.txnDate.Add(time.Hour),
	})
	transfer := suite.create(dto.CreateTransactionRequest{
		TransactionType: domain.Transfer,
		Amount:          decimal.NewFromInt(300),
		AccountID:       &suite.checking,
		ToAccountID:     &suite.savings,
		TransactionDate: suite.txnDate.Add(2 * time.Hour),
	})

	_, err := suite.service.UpdateTransaction(context.Background(), expense.TransactionID, dto.UpdateTransactionRequest{
		TransactionType: domain.Expense,
		Amount:          decimal.NewFromInt(200),
		CategoryID:      &suite.groceries,
		AccountID:       &suite.savings,
		TransactionDate: suite.txnDate,
	}, suite.userID)
	suite.Require().NoError(err)

	err = suite.service.DeleteTransaction(context.Background(), transfer.TransactionID, suite.userID)
	suite.Require().NoError(err)

	// checking: 1000 + 2000 income = 3000; savings: 500 - 200 expense = 300.
	suite.True(suite.balance(suite.checking).Equal(decimal.NewFromInt(3000)))
	suite.True(suite.balance(suite.savings).Equal(decimal.NewFromInt(300)))
	suite.assertInvariant()
}

func (suite *TransactionProtocolTestSuite) TestExpenseEditDeleteRoundTrip() {
	expense := suite.create(dto.CreateTransactionRequest{
		TransactionType: domain.Expense,
		Amount:          decimal.NewFromInt(150),
		CategoryID:      &suite.groceries,
		AccountID:       &suite.checking,
		TransactionDate: suite.txnDate,
	})
	suite.True(suite.balance(suite.checking).Equal(decimal.NewFromInt(850)))

	_, err := suite.service.UpdateTransaction(context.Background(), expense.TransactionID, dto.UpdateTransactionRequest{
		TransactionType: domain.Expense,
		Amount:          decimal.NewFromInt(200),
		CategoryID:      &suite.groceries,
		AccountID:       &suite.checking,
		TransactionDate: suite.txnDate,
	}, suite.userID)
	suite.Require().NoError(err)
	suite.True(suite.balance(suite.checking).Equal(decimal.NewFromInt(800)))

	err = suite.service.DeleteTransaction(context.Background(), expense.TransactionID, suite.userID)
	suite.Require().NoError(err)
	suite.True(suite.balance(suite.checking).Equal(decimal.NewFromInt(1000)))
	suite.assertInvariant()
}

func (suite *TransactionProtocolTestSuite) TestTransferCreateDeleteRoundTrip() {
	transfer := suite.create(dto.CreateTransactionRequest{
		TransactionType: domain.Transfer,
		Amount:          decimal.NewFromInt(200),
		AccountID:       &suite.checking,
		ToAccountID:     &suite.savings,
		TransactionDate: suite.txnDate,
	})
	suite.True(suite.balance(suite.checking).Equal(decimal.NewFromInt(800)))
	suite.True(suite.balance(suite.savings).Equal(decimal.NewFromInt(700)))

	err := suite.service.DeleteTransaction(context.Background(), transfer.TransactionID, suite.userID)
	suite.Require().NoError(err)
	suite.True(suite.balance(suite.checking).Equal(decimal.NewFromInt(1000)))
	suite.True(suite.balance(suite.savings).Equal(decimal.NewFromInt(500)))
	suite.assertInvariant()
}

func (suite *TransactionProtocolTestSuite) TestFailedValidationLeavesBalancesUntouched() {
	_, err := suite.service.CreateTransaction(context.Background(), dto.CreateTransactionRequest{
		TransactionType: domain.Transfer,
		Amount:          decimal.NewFromInt(100),
		AccountID:       &suite.checking,
		ToAccountID:     &suite.checking,
		TransactionDate: suite.txnDate,
	}, suite.userID)
	suite.Require().Error(err)

	suite.True(suite.balance(suite.checking).Equal(decimal.NewFromInt(1000)))
	suite.Empty(suite.store.txns)
	suite.assertInvariant()
}

func TestTransactionProtocol(t *testing.T) {
	suite.Run(t, new(TransactionProtocolTestSuite))
}
