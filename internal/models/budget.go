package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the database row shape of the budgets table.
type Budget struct {
	BudgetID   string
	UserID     string
	CategoryID string
	Name       string
	Amount     decimal.Decimal
	Period     string
	StartDate  time.Time
	EndDate    *time.Time
	IsActive   bool
	AuditFields
}
