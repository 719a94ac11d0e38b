package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vilaserena/care_finance_app/internal/apperrors"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
)

func validCategories() []domain.FinancialCategory {
	return []domain.FinancialCategory{
		{CategoryID: domain.CategoryGrossRevenue, Name: "Receita Bruta", CategoryType: domain.Income},
		{CategoryID: "mensalidades", ParentCategoryID: domain.CategoryGrossRevenue, Name: "Mensalidades", CategoryType: domain.Income},
		{CategoryID: domain.CategoryTaxes, Name: "Impostos", CategoryType: domain.Expense},
		{CategoryID: domain.CategoryOperationalExpenses, Name: "Despesas Operacionais", CategoryType: domain.Expense},
		{CategoryID: domain.CategoryPharmacyOperations, ParentCategoryID: domain.CategoryOperationalExpenses, Name: "Despesas de Farmácia", CategoryType: domain.Expense},
		{CategoryID: domain.CategorySupplies, ParentCategoryID: domain.CategoryOperationalExpenses, Name: "Despesas de Insumos", CategoryType: domain.Expense},
	}
}

func TestNewChartOfAccounts_Valid(t *testing.T) {
	chart, err := domain.NewChartOfAccounts(validCategories(), domain.DefaultFallbacks())

	require.NoError(t, err)
	require.NotNil(t, chart)
	assert.Len(t, chart.Categories(), 6)
	assert.True(t, chart.Contains(domain.CategoryPharmacyOperations))
	assert.False(t, chart.Contains("nope"))

	fallback, ok := chart.FallbackCategory(domain.MovementStockUsage)
	require.True(t, ok)
	assert.Equal(t, domain.CategoryPharmacyOperations, fallback)

	_, ok = chart.FallbackCategory(domain.MovementPurchase)
	assert.False(t, ok)
}

func TestNewChartOfAccounts_DuplicateID(t *testing.T) {
	cats := append(validCategories(), domain.FinancialCategory{
		CategoryID: domain.CategoryTaxes, Name: "Impostos de novo", CategoryType: domain.Expense,
	})

	_, err := domain.NewChartOfAccounts(cats, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestNewChartOfAccounts_EmptyID(t *testing.T) {
	cats := append(validCategories(), domain.FinancialCategory{
		Name: "Sem ID", CategoryType: domain.Expense,
	})

	_, err := domain.NewChartOfAccounts(cats, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestNewChartOfAccounts_OrphanParent(t *testing.T) {
	cats := append(validCategories(), domain.FinancialCategory{
		CategoryID: "orfao", ParentCategoryID: "missing-parent", Name: "Órfão", CategoryType: domain.Expense,
	})

	_, err := domain.NewChartOfAccounts(cats, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestNewChartOfAccounts_Cycle(t *testing.T) {
	cats := []domain.FinancialCategory{
		{CategoryID: "a", ParentCategoryID: "b", Name: "A", CategoryType: domain.Expense},
		{CategoryID: "b", ParentCategoryID: "a", Name: "B", CategoryType: domain.Expense},
	}

	_, err := domain.NewChartOfAccounts(cats, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestNewChartOfAccounts_FallbackTargetsUnknownCategory(t *testing.T) {
	fallbacks := map[domain.MovementType]string{
		domain.MovementStockUsage: "unknown-category",
	}

	_, err := domain.NewChartOfAccounts(validCategories(), fallbacks)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestResident_OccupiesBed(t *testing.T) {
	assert.True(t, domain.Resident{Status: domain.ResidentActive}.OccupiesBed())
	assert.True(t, domain.Resident{Status: domain.ResidentHospitalized}.OccupiesBed())
	assert.False(t, domain.Resident{Status: domain.ResidentDischarged}.OccupiesBed())
	assert.False(t, domain.Resident{Status: domain.ResidentDeceased}.OccupiesBed())
}

func TestFeeConfig_Total(t *testing.T) {
	fee := domain.FeeConfig{
		BaseValue:           100000,
		CareLevelAdjustment: 20000,
		FixedExtras:         5000,
		Discount:            2000,
	}

	assert.Equal(t, int64(123000), fee.Total())
}
