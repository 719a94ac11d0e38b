package services

import (
	"github.com/shopspring/decimal"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
	portsrepo "github.com/vilaserena/care_finance_app/internal/core/ports/repositories"
	portssvc "github.com/vilaserena/care_finance_app/internal/core/ports/services"
	"github.com/vilaserena/care_finance_app/internal/platform/config"
)

// ContainerOption configures optional collaborators of the service container.
type ContainerOption func(*containerDeps)

type containerDeps struct {
	cache    ReportCache
	notifier ReadjustmentNotifier
}

// WithContainerReportCache wires a DRE report cache into reporting and
// snapshot services.
func WithContainerReportCache(cache ReportCache) ContainerOption {
	return func(d *containerDeps) {
		d.cache = cache
	}
}

// WithContainerNotifier wires a readjustment run notifier.
func WithContainerNotifier(notifier ReadjustmentNotifier) ContainerOption {
	return func(d *containerDeps) {
		d.notifier = notifier
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, chart *domain.ChartOfAccounts, repos portsrepo.RepositoryProvider, options ...ContainerOption) *portssvc.ServiceContainer {
	deps := &containerDeps{}
	for _, option := range options {
		option(deps)
	}

	container := &portssvc.ServiceContainer{}

	reportingOptions := []ReportingServiceOption{
		WithTotalCapacity(cfg.TotalBedCapacity),
		WithTaxFallbackPercent(decimal.NewFromFloat(cfg.TaxFallbackPercent)),
	}
	if deps.cache != nil {
		reportingOptions = append(reportingOptions, WithReportCache(deps.cache))
	}
	container.Reporting = NewReportingService(chart, repos.LedgerRepo, repos.ResidentRepo, reportingOptions...)

	readjustmentOptions := []ReadjustmentServiceOption{}
	if deps.notifier != nil {
		readjustmentOptions = append(readjustmentOptions, WithReadjustmentNotifier(deps.notifier))
	}
	container.Readjustment = NewReadjustmentService(repos.ProfileRepo, repos.ResidentRepo, readjustmentOptions...)

	snapshotOptions := []SnapshotServiceOption{}
	if deps.cache != nil {
		snapshotOptions = append(snapshotOptions, WithSnapshotCache(deps.cache))
	}
	container.Snapshot = NewSnapshotService(container.Reporting, repos.SnapshotRepo, snapshotOptions...)

	container.User = NewUserService(repos.UserRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ReportingService    = (*reportingService)(nil)
	_ portssvc.ReadjustmentService = (*readjustmentService)(nil)
	_ portssvc.SnapshotService     = (*snapshotService)(nil)
)
