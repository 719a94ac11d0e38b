package repositories

import (
	"context"

	"github.com/vilaserena/care_finance_app/internal/core/domain"
)

// LedgerRepositoryFacade supplies the flat financial records the report
// generator aggregates: invoice line items and ad-hoc movements.
type LedgerRepositoryFacade interface {
	// FindInvoicesByPeriod returns the invoices of a (month, year) period with
	// their line items.
	FindInvoicesByPeriod(ctx context.Context, month, year int) ([]domain.Invoice, error)

	// FindMovementsByPeriod returns the ad-hoc financial movements of a period.
	FindMovementsByPeriod(ctx context.Context, month, year int) ([]domain.FinancialMovement, error)
}
