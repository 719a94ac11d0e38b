package repositories

import (
	"context"

	"github.com/vilaserena/care_finance_app/internal/core/domain"
)

// CategoryRepositoryFacade defines read operations for the chart of accounts.
// The chart is configured once; runtime code only lists it.
type CategoryRepositoryFacade interface {
	// ListCategories returns every configured category in its configured order.
	// Report structure follows this order.
	ListCategories(ctx context.Context) ([]domain.FinancialCategory, error)
}
