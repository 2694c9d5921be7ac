package models

// Category is the database row shape of the categories table.
type Category struct {
	CategoryID   string
	UserID       string
	Name         string
	CategoryType string
	Color        string
	Icon         string
	IsActive     bool
	AuditFields
}
