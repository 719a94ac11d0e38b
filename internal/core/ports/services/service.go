package services

// ServiceContainer holds all service interfaces the handlers and scheduled
// jobs depend on.
type ServiceContainer struct {
	Reporting    ReportingService
	Readjustment ReadjustmentService
	Snapshot     SnapshotService
	User         UserSvcFacade
}
