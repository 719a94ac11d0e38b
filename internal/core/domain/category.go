package domain

import (
	"fmt"

	"github.com/vilaserena/care_finance_app/internal/apperrors"
)

// CategoryType defines whether a category accumulates income or expense amounts.
type CategoryType string

const (
	Income  CategoryType = "INCOME"
	Expense CategoryType = "EXPENSE"
)

// Well-known category IDs the report generator reads named branch totals from.
// They must exist in any chart of accounts this system is configured with.
const (
	CategoryGrossRevenue        = "receita-bruta"
	CategoryTaxes               = "impostos"
	CategoryOperationalExpenses = "despesas-operacionais"
	CategoryPharmacyOperations  = "despesas-farmacia"
	CategorySupplies            = "despesas-insumos"
)

// FinancialCategory is one node of the configured chart of accounts.
// ParentCategoryID is empty for root categories.
type FinancialCategory struct {
	CategoryID       string       `json:"categoryID"`
	ParentCategoryID string       `json:"parentCategoryID"`
	Name             string       `json:"name"`
	CategoryType     CategoryType `json:"categoryType"`
}

// ChartOfAccounts is a validated category forest plus the fallback rules used
// to place uncategorized financial movements. It is built once at startup and
// never mutated afterwards.
type ChartOfAccounts struct {
	categories []FinancialCategory
	byID       map[string]FinancialCategory

	// fallbacks maps a movement type to the category that absorbs movements of
	// that type arriving without an explicit category. Movements of any other
	// type without a category are dropped from the report.
	fallbacks map[MovementType]string
}

// NewChartOfAccounts validates the category forest (no orphan parents, no
// cycles, no duplicate IDs) and the fallback targets. A malformed chart is a
// configuration error and must fail fast, never silently drop categories.
func NewChartOfAccounts(categories []FinancialCategory, fallbacks map[MovementType]string) (*ChartOfAccounts, error) {
	byID := make(map[string]FinancialCategory, len(categories))
	for _, cat := range categories {
		if cat.CategoryID == "" {
			return nil, fmt.Errorf("%w: category with empty ID", apperrors.ErrConfiguration)
		}
		if _, exists := byID[cat.CategoryID]; exists {
			return nil, fmt.Errorf("%w: duplicate category ID %q", apperrors.ErrConfiguration, cat.CategoryID)
		}
		byID[cat.CategoryID] = cat
	}

	for _, cat := range categories {
		if cat.ParentCategoryID == "" {
			continue
		}
		if _, ok := byID[cat.ParentCategoryID]; !ok {
			return nil, fmt.Errorf("%w: category %q references unknown parent %q", apperrors.ErrConfiguration, cat.CategoryID, cat.ParentCategoryID)
		}
		// Walk up; a walk longer than the category count means a cycle.
		current := cat
		for steps := 0; current.ParentCategoryID != ""; steps++ {
			if steps > len(categories) {
				return nil, fmt.Errorf("%w: cycle detected through category %q", apperrors.ErrConfiguration, cat.CategoryID)
			}
			current = byID[current.ParentCategoryID]
		}
	}

	for movementType, categoryID := range fallbacks {
		if _, ok := byID[categoryID]; !ok {
			return nil, fmt.Errorf("%w: fallback for movement type %q targets unknown category %q", apperrors.ErrConfiguration, movementType, categoryID)
		}
	}

	return &ChartOfAccounts{
		categories: categories,
		byID:       byID,
		fallbacks:  fallbacks,
	}, nil
}

// Categories returns the categories in their configured order. The slice must
// not be mutated; report structure follows this order.
func (c *ChartOfAccounts) Categories() []FinancialCategory {
	return c.categories
}

// Contains reports whether the chart defines the given category ID.
func (c *ChartOfAccounts) Contains(categoryID string) bool {
	_, ok := c.byID[categoryID]
	return ok
}

// FallbackCategory returns the category absorbing uncategorized movements of
// the given type, if one is configured.
func (c *ChartOfAccounts) FallbackCategory(movementType MovementType) (string, bool) {
	categoryID, ok := c.fallbacks[movementType]
	return categoryID, ok
}

// DefaultFallbacks returns the reference fallback rules: stock-usage movements
// without an explicit category land in pharmacy operations.
func DefaultFallbacks() map[MovementType]string {
	return map[MovementType]string{
		MovementStockUsage: CategoryPharmacyOperations,
	}
}
