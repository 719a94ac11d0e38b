package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
	portsrepo "github.com/vilaserena/care_finance_app/internal/core/ports/repositories"
	portssvc "github.com/vilaserena/care_finance_app/internal/core/ports/services"
	"github.com/vilaserena/care_finance_app/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

// errInvalidPeriod rejects report requests for out-of-range months.
var errInvalidPeriod = errors.New("invalid report period")

// ReportCache is the cache the reporting service reads monthly DRE results
// through. Implementations must treat errors as misses; the report generator
// never fails because of the cache.
type ReportCache interface {
	GetDRE(ctx context.Context, month, year int) (*domain.DREResult, bool)
	SetDRE(ctx context.Context, dre *domain.DREResult)
	InvalidateDRE(ctx context.Context, month, year int)
}

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	chart          *domain.ChartOfAccounts
	ledgerRepo     portsrepo.LedgerRepositoryFacade
	residentRepo   portsrepo.ResidentRepositoryFacade
	totalCapacity  int
	taxFallbackPct decimal.Decimal
	cache          ReportCache
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithTotalCapacity overrides the configured bed capacity.
func WithTotalCapacity(capacity int) ReportingServiceOption {
	return func(s *reportingService) {
		s.totalCapacity = capacity
	}
}

// WithTaxFallbackPercent overrides the heuristic tax percentage applied when
// the taxes branch carries no value.
func WithTaxFallbackPercent(pct decimal.Decimal) ReportingServiceOption {
	return func(s *reportingService) {
		s.taxFallbackPct = pct
	}
}

// WithReportCache enables cache-aside reads of monthly DRE results.
func WithReportCache(cache ReportCache) ReportingServiceOption {
	return func(s *reportingService) {
		s.cache = cache
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(
	chart *domain.ChartOfAccounts,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	residentRepo portsrepo.ResidentRepositoryFacade,
	options ...ReportingServiceOption,
) portssvc.ReportingService {
	svc := &reportingService{
		chart:          chart,
		ledgerRepo:     ledgerRepo,
		residentRepo:   residentRepo,
		totalCapacity:  50,
		taxFallbackPct: decimal.NewFromInt(6),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GenerateDRE builds the hierarchical income statement for a period. The two
// ledger fetches run concurrently; a failure of either aborts the whole report.
func (s *reportingService) GenerateDRE(ctx context.Context, month, year int) (*domain.DREResult, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12, got %d", errInvalidPeriod, month)
	}

	if s.cache != nil {
		if cached, ok := s.cache.GetDRE(ctx, month, year); ok {
			s.LogDebug(ctx, "DRE served from cache", slog.Int("month", month), slog.Int("year", year))
			return cached, nil
		}
	}

	var invoices []domain.Invoice
	var movements []domain.FinancialMovement

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = s.ledgerRepo.FindInvoicesByPeriod(gctx, month, year)
		if err != nil {
			return fmt.Errorf("failed to fetch invoices: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		movements, err = s.ledgerRepo.FindMovementsByPeriod(gctx, month, year)
		if err != nil {
			return fmt.Errorf("failed to fetch financial movements: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Aborting DRE generation, upstream data unavailable",
			slog.Int("month", month),
			slog.Int("year", year))
		return nil, err
	}

	valueMap := s.buildValueMap(ctx, month, year, invoices, movements)
	tree := accounting.BuildDRETree(s.chart.Categories(), valueMap)

	grossRevenue := accounting.BranchValue(tree, domain.CategoryGrossRevenue)
	taxes := accounting.BranchValue(tree, domain.CategoryTaxes)
	taxesEstimated := false
	if taxes == 0 {
		// Heuristic fallback, not a tax computation. Callers must not treat
		// the estimated figure as authoritative.
		taxes = accounting.PercentOf(grossRevenue, s.taxFallbackPct)
		taxesEstimated = true
	}

	operationalExpenses := accounting.BranchValue(tree, domain.CategoryOperationalExpenses)
	variableCosts := accounting.BranchValue(tree, domain.CategoryPharmacyOperations) +
		accounting.BranchValue(tree, domain.CategorySupplies)

	netRevenue := grossRevenue - taxes
	ebitda := netRevenue - operationalExpenses

	result := &domain.DREResult{
		Month:               month,
		Year:                year,
		GrossRevenue:        grossRevenue,
		Taxes:               taxes,
		NetRevenue:          netRevenue,
		OperationalExpenses: operationalExpenses,
		EBITDA:              ebitda,
		VariableCosts:       variableCosts,
		NetResult:           ebitda,
		TaxesEstimated:      taxesEstimated,
		Tree:                tree,
	}

	if s.cache != nil {
		s.cache.SetDRE(ctx, result)
	}

	s.LogInfo(ctx, "DRE generated",
		slog.Int("month", month),
		slog.Int("year", year),
		slog.Int64("gross_revenue", grossRevenue),
		slog.Int64("ebitda", ebitda),
		slog.Bool("taxes_estimated", taxesEstimated))
	return result, nil
}

// buildValueMap accumulates invoice line items and ad-hoc movements into a
// value-by-category map for the period. Overdue invoices and unknown category
// IDs are dropped; uncategorized movements only survive through a configured
// fallback for their type.
func (s *reportingService) buildValueMap(ctx context.Context, month, year int, invoices []domain.Invoice, movements []domain.FinancialMovement) map[string]int64 {
	valueMap := make(map[string]int64)

	for _, invoice := range invoices {
		if invoice.Month != month || invoice.Year != year || invoice.Status == domain.InvoiceOverdue {
			continue
		}
		for _, item := range invoice.Items {
			if !s.chart.Contains(item.CategoryID) {
				continue
			}
			valueMap[item.CategoryID] += item.Amount
		}
	}

	dropped := 0
	for _, movement := range movements {
		categoryID := movement.CategoryID
		if categoryID == "" {
			fallback, ok := s.chart.FallbackCategory(movement.MovementType)
			if !ok {
				dropped++
				continue
			}
			categoryID = fallback
		}
		if !s.chart.Contains(categoryID) {
			dropped++
			continue
		}
		valueMap[categoryID] += movement.Amount
	}
	if dropped > 0 {
		s.LogDebug(ctx, "Dropped uncategorizable movements from DRE",
			slog.Int("count", dropped),
			slog.Int("month", month),
			slog.Int("year", year))
	}

	return valueMap
}

// DeriveOccupancyMetrics computes per-bed KPIs from the roster and an optional
// DRE. A nil DRE yields zeroed financial KPIs with real occupancy figures.
func (s *reportingService) DeriveOccupancyMetrics(ctx context.Context, dre *domain.DREResult) (*domain.OccupancyMetrics, error) {
	residents, err := s.residentRepo.ListResidents(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch resident roster for occupancy metrics")
		return nil, fmt.Errorf("failed to fetch residents: %w", err)
	}

	occupiedBeds := 0
	for _, resident := range residents {
		if resident.OccupiesBed() {
			occupiedBeds++
		}
	}

	metrics := &domain.OccupancyMetrics{
		TotalCapacity: s.totalCapacity,
		OccupiedBeds:  occupiedBeds,
		OccupancyRate: accounting.OccupancyRate(occupiedBeds, s.totalCapacity),
	}

	if dre == nil {
		// Valid transient state before the first report of a period.
		return metrics, nil
	}

	metrics.AverageTicket = accounting.AverageTicket(dre.GrossRevenue, occupiedBeds)
	metrics.CostPerBed = accounting.CostPerBed(dre.OperationalExpenses, dre.Taxes, occupiedBeds)
	metrics.ProfitPerBed = metrics.AverageTicket - metrics.CostPerBed
	metrics.BreakEvenPoint = accounting.BreakEvenPoint(dre.OperationalExpenses, dre.Taxes, metrics.AverageTicket)

	return metrics, nil
}
