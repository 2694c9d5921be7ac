package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise-backend/internal/apperrors"
	"github.com/spendwise/spendwise-backend/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise-backend/internal/core/ports/repositories"
	portssvc "github.com/spendwise/spendwise-backend/internal/core/ports/services"
	"github.com/spendwise/spendwise-backend/internal/dto"
	"github.com/spendwise/spendwise-backend/internal/middleware"
)

var (
	ErrSameAccountTransfer = errors.New("transfer source and destination must differ")
	ErrSourceRequired      = errors.New("source account is required")
	ErrDestinationRequired = errors.New("destination account is required")
	ErrCategoryRequired    = errors.New("category is required for expense and income transactions")
)

// transactionService implements the balance mutation protocol: every write
// persists the transaction row and the account balance deltas it implies in
// a single database transaction, so stored balances always equal the net
// effect of the stored transactions.
type transactionService struct {
	txnRepo      portsrepo.TransactionRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// requiredRefs returns which account references the transaction type needs.
func requiredRefs(txnType domain.TransactionType, accountID, toAccountID *string) error {
	switch txnType {
	case domain.Expense:
		if accountID == nil || *accountID == "" {
			return ErrSourceRequired
		}
	case domain.Income:
		if toAccountID == nil || *toAccountID == "" {
			return ErrDestinationRequired
		}
	case domain.Transfer:
		if accountID == nil || *accountID == "" {
			return ErrSourceRequired
		}
		if toAccountID == nil || *toAccountID == "" {
			return ErrDestinationRequired
		}
		if *accountID == *toAccountID {
			return ErrSameAccountTransfer
		}
	}
	return nil
}

// validateTransaction checks amount, references and the referenced rows
// themselves (existence, ownership, active flags, category type).
func (s *transactionService) validateTransaction(ctx context.Context, txn *domain.Transaction, userID string) error {
	if txn.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	if err := requiredRefs(txn.TransactionType, txn.AccountID, txn.ToAccountID); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	if txn.TransactionType != domain.Transfer {
		if txn.CategoryID == nil || *txn.CategoryID == "" {
			return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrCategoryRequired)
		}
	} else {
		// Transfers move money between own accounts and carry no category.
		txn.CategoryID = nil
	}

	accountIDs := make([]string, 0, 2)
	if txn.AccountID != nil {
		accountIDs = append(accountIDs, *txn.AccountID)
	}
	if txn.ToAccountID != nil {
		accountIDs = append(accountIDs, *txn.ToAccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if acc.UserID != userID {
			// Obscure existence of other users' accounts.
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	if txn.CategoryID != nil {
		cat, err := s.categoryRepo.FindCategoryByID(ctx, *txn.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to fetch category %s: %w", *txn.CategoryID, err)
		}
		if cat.UserID != userID {
			return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, *txn.CategoryID)
		}
		if !cat.IsActive {
			return fmt.Errorf("%w: category %s is inactive", apperrors.ErrValidation, cat.CategoryID)
		}
		if (txn.TransactionType == domain.Expense && cat.CategoryType != domain.ExpenseCategory) ||
			(txn.TransactionType == domain.Income && cat.CategoryType != domain.IncomeCategory) {
			return fmt.Errorf("%w: category %s is not a %s category", apperrors.ErrValidation, cat.CategoryID, txn.TransactionType)
		}
	}

	return nil
}

// mergeEffects adds the entries of b into a and returns a. Deltas for the
// same account collapse into one net value.
func mergeEffects(a, b map[string]decimal.Decimal) map[string]decimal.Decimal {
	for id, delta := range b {
		a[id] = a[id].Add(delta)
	}
	return a
}

// CreateTransaction records a new transaction and applies its balance effect
// atomically with the row insert.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		CategoryID:      req.CategoryID,
		AccountID:       req.AccountID,
		ToAccountID:     req.ToAccountID,
		Description:     req.Description,
		Notes:           req.Notes,
		TransactionDate: req.TransactionDate,
		ReceiptURLs:     req.ReceiptURLs,
		Status:          domain.StatusCompleted,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.validateTransaction(ctx, &txn, userID); err != nil {
		return nil, err
	}

	deltas := txn.BalanceEffects()
	if err := s.txnRepo.SaveTransaction(ctx, txn, deltas); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("type", string(txn.TransactionType)))
	return &txn, nil
}

// GetTransactionByID retrieves a transaction, enforcing ownership.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if txn.UserID != userID {
		// Obscure existence.
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

// ListTransactions retrieves a filtered page of the user's transactions.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter := portsrepo.TransactionFilter{
		CategoryID: params.CategoryID,
		AccountID:  params.AccountID,
	}
	if params.TransactionType != nil {
		t := domain.TransactionType(*params.TransactionType)
		filter.TransactionType = &t
	}
	if params.DateFrom != nil {
		from, err := time.Parse("2006-01-02", *params.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid dateFrom", apperrors.ErrValidation)
		}
		filter.DateFrom = &from
	}
	if params.DateTo != nil {
		to, err := time.Parse("2006-01-02", *params.DateTo)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid dateTo", apperrors.ErrValidation)
		}
		// Inclusive upper bound covers the whole day.
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.DateTo = &to
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, userID, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// UpdateTransaction replaces a transaction's fields. The old effect is
// reversed and the new effect applied as one net delta set, so the account
// balances land exactly where recording the new values directly would have
// put them.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.GetTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated := domain.Transaction{
		TransactionID:   existing.TransactionID,
		UserID:          existing.UserID,
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		CategoryID:      req.CategoryID,
		AccountID:       req.AccountID,
		ToAccountID:     req.ToAccountID,
		Description:     req.Description,
		Notes:           req.Notes,
		TransactionDate: req.TransactionDate,
		ReceiptURLs:     req.ReceiptURLs,
		Status:          existing.Status,
		AuditFields: domain.AuditFields{
			CreatedAt: existing.CreatedAt,
			UpdatedAt: now,
		},
	}

	if err := s.validateTransaction(ctx, &updated, userID); err != nil {
		return nil, err
	}

	deltas := mergeEffects(existing.ReversalEffects(), updated.BalanceEffects())
	if err := s.txnRepo.UpdateTransaction(ctx, updated, deltas); err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect
// atomically with the row delete.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.GetTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return err
	}

	deltas := existing.ReversalEffects()
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, deltas); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
