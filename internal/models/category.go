package models

// CategoryType mirrors domain.CategoryType at the persistence layer.
type CategoryType string

// FinancialCategory is the DB representation of one chart-of-accounts node.
type FinancialCategory struct {
	CategoryID       string
	ParentCategoryID string // empty for roots, stored as NULL
	Name             string
	CategoryType     CategoryType
	SortOrder        int // report structure follows this order
}
