package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the recurrence window of a budget.
type BudgetPeriod string

const (
	Monthly BudgetPeriod = "monthly"
	Weekly  BudgetPeriod = "weekly"
	Yearly  BudgetPeriod = "yearly"
	Custom  BudgetPeriod = "custom"
)

// Budget is a per-category spending limit. "Spent" is never stored; it is
// derived on read by summing expense transactions in the category over the
// budget window.
type Budget struct {
	BudgetID   string          `json:"budgetID"` // Primary Key (UUID)
	UserID     string          `json:"userID"`   // Owner
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Period     BudgetPeriod    `json:"period"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    *time.Time      `json:"endDate,omitempty"` // Set for custom periods; open-ended otherwise
	IsActive   bool            `json:"isActive"`          // FALSE means archived
	AuditFields
}

// Window resolves the date range the budget currently covers, evaluated at
// the given instant. Custom budgets use their explicit start/end dates;
// recurring budgets cover the current calendar period containing now.
func (b *Budget) Window(now time.Time) (time.Time, time.Time) {
	switch b.Period {
	case Weekly:
		// Week starts Monday.
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := time.Date(now.Year(), now.Month(), now.Day()-(weekday-1), 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case Yearly:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	case Custom:
		end := now
		if b.EndDate != nil {
			end = *b.EndDate
		}
		return b.StartDate, end
	default: // Monthly
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}
}
