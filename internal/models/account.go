package models

import (
	"github.com/shopspring/decimal"
)

// Account is the database row shape of the accounts table.
type Account struct {
	AccountID   string
	UserID      string
	Name        string
	AccountType string
	Balance     decimal.Decimal
	IsActive    bool
	AuditFields
}
