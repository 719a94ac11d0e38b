package domain

import "time"

// DRENode is one node of the hierarchical income statement. Its value is the
// category's direct value plus the sum of all children values.
type DRENode struct {
	Category FinancialCategory `json:"category"`
	Value    int64             `json:"value"`
	Children []DRENode         `json:"children"`
}

// DREResult carries the scalar KPIs derived from named branches of the DRE
// tree, all amounts in integer cents.
type DREResult struct {
	Month int `json:"month"`
	Year  int `json:"year"`

	GrossRevenue        int64 `json:"grossRevenue"`
	Taxes               int64 `json:"taxes"`
	NetRevenue          int64 `json:"netRevenue"`          // grossRevenue - taxes
	OperationalExpenses int64 `json:"operationalExpenses"`
	EBITDA              int64 `json:"ebitda"` // netRevenue - operationalExpenses
	VariableCosts       int64 `json:"variableCosts"`
	NetResult           int64 `json:"netResult"` // no amortization/interest modeling yet

	// TaxesEstimated marks the heuristic fallback (percentage of gross revenue)
	// used when the taxes branch carries no value. Callers must not treat an
	// estimated figure as authoritative.
	TaxesEstimated bool `json:"taxesEstimated"`

	Tree []DRENode `json:"tree"`
}

// OccupancyMetrics are the per-bed operational KPIs derived from a DREResult
// and the resident roster.
type OccupancyMetrics struct {
	TotalCapacity  int     `json:"totalCapacity"`
	OccupiedBeds   int     `json:"occupiedBeds"`
	OccupancyRate  float64 `json:"occupancyRate"` // percent
	AverageTicket  int64   `json:"averageTicket"`
	CostPerBed     int64   `json:"costPerBed"`
	ProfitPerBed   int64   `json:"profitPerBed"` // may be negative, never clamped
	BreakEvenPoint int     `json:"breakEvenPoint"`
}

// DRESnapshot is a persisted monthly close of the scalar DRE figures, written
// by the scheduled snapshot job.
type DRESnapshot struct {
	SnapshotID          string    `json:"snapshotID"`
	Month               int       `json:"month"`
	Year                int       `json:"year"`
	GrossRevenue        int64     `json:"grossRevenue"`
	Taxes               int64     `json:"taxes"`
	NetRevenue          int64     `json:"netRevenue"`
	OperationalExpenses int64     `json:"operationalExpenses"`
	EBITDA              int64     `json:"ebitda"`
	NetResult           int64     `json:"netResult"`
	TaxesEstimated      bool      `json:"taxesEstimated"`
	CreatedAt           time.Time `json:"createdAt"`
}
