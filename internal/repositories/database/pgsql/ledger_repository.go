package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
	portsrepo "github.com/vilaserena/care_finance_app/internal/core/ports/repositories"
	"github.com/vilaserena/care_finance_app/internal/models"
)

// PgxLedgerRepository supplies invoice line items and ad-hoc movements to the
// report generator.
type PgxLedgerRepository struct {
	BaseRepository
}

// NewPgxLedgerRepository creates a new repository for ledger data.
func NewPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func toDomainInvoice(m models.Invoice, items []domain.InvoiceItem) domain.Invoice {
	return domain.Invoice{
		InvoiceID:  m.InvoiceID,
		ResidentID: m.ResidentID,
		Month:      m.Month,
		Year:       m.Year,
		Status:     domain.InvoiceStatus(m.Status),
		DueDate:    m.DueDate,
		Items:      items,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// FindInvoicesByPeriod returns the invoices of a period with their line items.
func (r *PgxLedgerRepository) FindInvoicesByPeriod(ctx context.Context, month, year int) ([]domain.Invoice, error) {
	query := `
		SELECT invoice_id, resident_id, month, year, status, due_date, created_at, created_by, last_updated_at, last_updated_by
		FROM invoices
		WHERE month = $1 AND year = $2
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices for %d-%02d: %w", year, month, err)
	}
	defer rows.Close()

	var modelInvoices []models.Invoice
	var invoiceIDs []string
	for rows.Next() {
		var m models.Invoice
		if err := rows.Scan(&m.InvoiceID, &m.ResidentID, &m.Month, &m.Year, &m.Status, &m.DueDate,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		modelInvoices = append(modelInvoices, m)
		invoiceIDs = append(invoiceIDs, m.InvoiceID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}

	itemsByInvoice, err := r.findItemsByInvoiceIDs(ctx, invoiceIDs)
	if err != nil {
		return nil, err
	}

	invoices := make([]domain.Invoice, 0, len(modelInvoices))
	for _, m := range modelInvoices {
		invoices = append(invoices, toDomainInvoice(m, itemsByInvoice[m.InvoiceID]))
	}
	return invoices, nil
}

func (r *PgxLedgerRepository) findItemsByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string][]domain.InvoiceItem, error) {
	itemsByInvoice := make(map[string][]domain.InvoiceItem, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return itemsByInvoice, nil
	}

	query := `
		SELECT item_id, invoice_id, category_id, amount
		FROM invoice_items
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, item_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.InvoiceItem
		if err := rows.Scan(&m.ItemID, &m.InvoiceID, &m.CategoryID, &m.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		itemsByInvoice[m.InvoiceID] = append(itemsByInvoice[m.InvoiceID], domain.InvoiceItem{
			ItemID:     m.ItemID,
			CategoryID: m.CategoryID,
			Amount:     m.Amount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoice items: %w", err)
	}
	return itemsByInvoice, nil
}

// FindMovementsByPeriod returns the ad-hoc financial movements of a period.
func (r *PgxLedgerRepository) FindMovementsByPeriod(ctx context.Context, month, year int) ([]domain.FinancialMovement, error) {
	query := `
		SELECT movement_id, category_id, movement_type, description, amount, month, year, created_at, created_by, last_updated_at, last_updated_by
		FROM financial_movements
		WHERE month = $1 AND year = $2
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query financial movements for %d-%02d: %w", year, month, err)
	}
	defer rows.Close()

	var movements []domain.FinancialMovement
	for rows.Next() {
		var m models.FinancialMovement
		var categoryID sql.NullString
		if err := rows.Scan(&m.MovementID, &categoryID, &m.MovementType, &m.Description, &m.Amount, &m.Month, &m.Year,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan financial movement: %w", err)
		}
		if categoryID.Valid {
			m.CategoryID = categoryID.String
		}
		movements = append(movements, domain.FinancialMovement{
			MovementID:   m.MovementID,
			CategoryID:   m.CategoryID,
			MovementType: domain.MovementType(m.MovementType),
			Description:  m.Description,
			Amount:       m.Amount,
			Month:        m.Month,
			Year:         m.Year,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate financial movements: %w", err)
	}
	return movements, nil
}
