package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database row shape of the transactions table.
// Nullable foreign keys use pointers; receipt_urls maps to a TEXT[] column.
type Transaction struct {
	TransactionID   string
	UserID          string
	TransactionType string
	Amount          decimal.Decimal
	CategoryID      *string
	AccountID       *string
	ToAccountID     *string
	Description     string
	Notes           string
	TransactionDate time.Time
	ReceiptURLs     []string
	Status          string
	AuditFields
}
