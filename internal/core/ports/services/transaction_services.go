package services

import (
	"context"

	"github.com/spendwise/spendwise-backend/internal/core/domain"
	"github.com/spendwise/spendwise-backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction, enforcing ownership.
	GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of the user's transactions.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc is the balance mutation protocol: every operation
// keeps the affected accounts' stored balances equal to the net signed
// effect of the transactions that reference them.
type TransactionWriterSvc interface {
	// CreateTransaction persists a new transaction and applies its balance
	// effects.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// UpdateTransaction replaces a transaction's fields, reversing the old
	// effect and applying the new one.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its effect.
	DeleteTransaction(ctx context.Context, transactionID string, userID string) error
}

// TransactionSvcFacade combines all transaction service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
