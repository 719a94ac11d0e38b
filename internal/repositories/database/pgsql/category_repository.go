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

// PgxCategoryRepository reads the configured chart of accounts.
type PgxCategoryRepository struct {
	BaseRepository
}

// NewPgxCategoryRepository creates a new repository for chart-of-accounts data.
func NewPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func toDomainCategory(m models.FinancialCategory) domain.FinancialCategory {
	return domain.FinancialCategory{
		CategoryID:       m.CategoryID,
		ParentCategoryID: m.ParentCategoryID,
		Name:             m.Name,
		CategoryType:     domain.CategoryType(m.CategoryType),
	}
}

// ListCategories returns every category in its configured sort order. Report
// structure follows this order.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.FinancialCategory, error) {
	query := `
		SELECT category_id, parent_category_id, name, category_type
		FROM financial_categories
		ORDER BY sort_order;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list financial categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.FinancialCategory
	for rows.Next() {
		var m models.FinancialCategory
		var parentID sql.NullString
		if err := rows.Scan(&m.CategoryID, &parentID, &m.Name, &m.CategoryType); err != nil {
			return nil, fmt.Errorf("failed to scan financial category: %w", err)
		}
		if parentID.Valid {
			m.ParentCategoryID = parentID.String
		}
		categories = append(categories, toDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate financial categories: %w", err)
	}
	return categories, nil
}
