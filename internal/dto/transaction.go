package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise-backend/internal/core/domain"
)

// CreateTransactionRequest defines the payload for recording a transaction.
// Which account references are required depends on the type:
//
//	expense  -> accountID (+ categoryID)
//	income   -> toAccountID (+ categoryID)
//	transfer -> accountID and toAccountID, no category
type CreateTransactionRequest struct {
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=expense income transfer"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	CategoryID      *string                `json:"categoryID"`
	AccountID       *string                `json:"accountID"`
	ToAccountID     *string                `json:"toAccountID"`
	Description     string                 `json:"description"`
	Notes           string                 `json:"notes"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
	ReceiptURLs     []string               `json:"receiptURLs"`
}

// UpdateTransactionRequest replaces every user-editable field of an existing
// transaction; the edit form always submits the full state.
type UpdateTransactionRequest struct {
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=expense income transfer"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	CategoryID      *string                `json:"categoryID"`
	AccountID       *string                `json:"accountID"`
	ToAccountID     *string                `json:"toAccountID"`
	Description     string                 `json:"description"`
	Notes           string                 `json:"notes"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
	ReceiptURLs     []string               `json:"receiptURLs"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                   `json:"transactionID"`
	TransactionType domain.TransactionType   `json:"transactionType"`
	Amount          decimal.Decimal          `json:"amount"`
	CategoryID      *string                  `json:"categoryID,omitempty"`
	AccountID       *string                  `json:"accountID,omitempty"`
	ToAccountID     *string                  `json:"toAccountID,omitempty"`
	Description     string                   `json:"description"`
	Notes           string                   `json:"notes"`
	TransactionDate time.Time                `json:"transactionDate"`
	ReceiptURLs     []string                 `json:"receiptURLs,omitempty"`
	Status          domain.TransactionStatus `json:"status"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		TransactionType: txn.TransactionType,
		Amount:          txn.Amount,
		CategoryID:      txn.CategoryID,
		AccountID:       txn.AccountID,
		ToAccountID:     txn.ToAccountID,
		Description:     txn.Description,
		Notes:           txn.Notes,
		TransactionDate: txn.TransactionDate,
		ReceiptURLs:     txn.ReceiptURLs,
		Status:          txn.Status,
		CreatedAt:       txn.CreatedAt,
		UpdatedAt:       txn.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions to response DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit           int     `form:"limit,default=20"`
	NextToken       *string `form:"nextToken"`
	TransactionType *string `form:"type" binding:"omitempty,oneof=expense income transfer"`
	CategoryID      *string `form:"categoryID"`
	AccountID       *string `form:"accountID"`
	DateFrom        *string `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo          *string `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
