package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies a user's financial account.
type AccountType string

const (
	Checking   AccountType = "checking"
	Savings    AccountType = "savings"
	CreditCard AccountType = "credit_card"
	Cash       AccountType = "cash"
	Investment AccountType = "investment"
	Loan       AccountType = "loan"
	OtherAcct  AccountType = "other"
)

// Account represents a financial account owned by a single user.
// This is the primary representation used by services.
//
// Balance is denormalized: it must equal the net sum of signed effects of all
// currently stored transactions referencing the account. It is mutated only
// through the transaction service's balance protocol, or by an explicit user
// edit of the stored value.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary Key (UUID)
	UserID      string          `json:"userID"`      // Owner; accounts are never shared
	Name        string          `json:"name"`        // User-defined name
	AccountType AccountType     `json:"accountType"` // checking, savings, ...
	Balance     decimal.Decimal `json:"balance"`     // Signed; liabilities carry positive balances
	IsActive    bool            `json:"isActive"`    // Soft delete flag
	AuditFields
}
