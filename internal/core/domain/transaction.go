package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the kind of money movement a transaction records.
type TransactionType string

const (
	Expense  TransactionType = "expense"
	Income   TransactionType = "income"
	Transfer TransactionType = "transfer"
)

// TransactionStatus is stored with each transaction but is NOT consulted by
// the balance protocol: every stored transaction contributes to account
// balances until it is deleted. Kept for forward compatibility with
// pending/voided transactions.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
)

// Transaction represents a single recorded money movement.
//
// Amount is always positive; the sign of its balance effect is conveyed by
// TransactionType and the account role:
//
//	expense  -> AccountID   -= Amount
//	income   -> ToAccountID += Amount
//	transfer -> AccountID   -= Amount, ToAccountID += Amount
type Transaction struct {
	TransactionID   string            `json:"transactionID"` // Primary Key (UUID)
	UserID          string            `json:"userID"`        // Owner
	TransactionType TransactionType   `json:"transactionType"`
	Amount          decimal.Decimal   `json:"amount"`                // Positive value
	CategoryID      *string           `json:"categoryID,omitempty"`  // Required for expense/income, absent for transfer
	AccountID       *string           `json:"accountID,omitempty"`   // Source account (expense source, transfer "from")
	ToAccountID     *string           `json:"toAccountID,omitempty"` // Destination account (income target, transfer "to")
	Description     string            `json:"description"`
	Notes           string            `json:"notes"`
	TransactionDate time.Time         `json:"transactionDate"`
	ReceiptURLs     []string          `json:"receiptURLs,omitempty"` // Opaque URLs; file storage is external
	Status          TransactionStatus `json:"status"`
	AuditFields
}

// BalanceEffects returns the signed balance delta each account incurs from
// this transaction. The returned map is keyed by account ID; missing account
// references simply contribute no entry.
func (t *Transaction) BalanceEffects() map[string]decimal.Decimal {
	effects := make(map[string]decimal.Decimal, 2)
	switch t.TransactionType {
	case Expense:
		if t.AccountID != nil {
			effects[*t.AccountID] = t.Amount.Neg()
		}
	case Income:
		if t.ToAccountID != nil {
			effects[*t.ToAccountID] = t.Amount
		}
	case Transfer:
		if t.AccountID != nil {
			effects[*t.AccountID] = t.Amount.Neg()
		}
		if t.ToAccountID != nil {
			// Self-transfers net to zero rather than silently dropping a leg.
			effects[*t.ToAccountID] = effects[*t.ToAccountID].Add(t.Amount)
		}
	}
	return effects
}

// ReversalEffects returns the inverse of BalanceEffects, used to undo a
// transaction's contribution during update and delete.
func (t *Transaction) ReversalEffects() map[string]decimal.Decimal {
	effects := t.BalanceEffects()
	for id, delta := range effects {
		effects[id] = delta.Neg()
	}
	return effects
}
