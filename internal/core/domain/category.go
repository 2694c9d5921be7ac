package domain

// CategoryType restricts a category to one side of the ledger.
type CategoryType string

const (
	ExpenseCategory CategoryType = "expense"
	IncomeCategory  CategoryType = "income"
)

// Category labels expense and income transactions for filtering and
// aggregation. No balance logic depends on categories.
type Category struct {
	CategoryID   string       `json:"categoryID"` // Primary Key (UUID)
	UserID       string       `json:"userID"`     // Owner
	Name         string       `json:"name"`
	CategoryType CategoryType `json:"categoryType"`
	Color        string       `json:"color"` // Display hint, e.g. "#EF4444"
	Icon         string       `json:"icon"`  // Display hint, icon name
	IsActive     bool         `json:"isActive"`
	AuditFields
}
