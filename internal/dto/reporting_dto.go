package dto

import (
	"time"

	"github.com/vilaserena/care_finance_app/internal/core/domain"
)

// DRENodeResponse is one node of the income statement tree in the report
// response.
type DRENodeResponse struct {
	CategoryID   string            `json:"categoryID"`
	Name         string            `json:"name"`
	CategoryType string            `json:"categoryType"`
	Value        int64             `json:"value"`
	Children     []DRENodeResponse `json:"children,omitempty"`
}

// DREResponse is the full DRE report response.
type DREResponse struct {
	Month   int               `json:"month"`
	Year    int               `json:"year"`
	Tree    []DRENodeResponse `json:"tree"`
	Summary struct {
		GrossRevenue        int64 `json:"grossRevenue"`
		Taxes               int64 `json:"taxes"`
		TaxesEstimated      bool  `json:"taxesEstimated"`
		NetRevenue          int64 `json:"netRevenue"`
		OperationalExpenses int64 `json:"operationalExpenses"`
		EBITDA              int64 `json:"ebitda"`
		VariableCosts       int64 `json:"variableCosts"`
		NetResult           int64 `json:"netResult"`
	} `json:"summary"`
}

// OccupancyResponse is the occupancy/profitability KPI response.
type OccupancyResponse struct {
	TotalCapacity  int     `json:"totalCapacity"`
	OccupiedBeds   int     `json:"occupiedBeds"`
	OccupancyRate  float64 `json:"occupancyRate"`
	AverageTicket  int64   `json:"averageTicket"`
	CostPerBed     int64   `json:"costPerBed"`
	ProfitPerBed   int64   `json:"profitPerBed"`
	BreakEvenPoint int     `json:"breakEvenPoint"`
}

// SnapshotResponse is one persisted monthly close.
type SnapshotResponse struct {
	Month               int    `json:"month"`
	Year                int    `json:"year"`
	GrossRevenue        int64  `json:"grossRevenue"`
	Taxes               int64  `json:"taxes"`
	NetRevenue          int64  `json:"netRevenue"`
	OperationalExpenses int64  `json:"operationalExpenses"`
	EBITDA              int64  `json:"ebitda"`
	NetResult           int64  `json:"netResult"`
	TaxesEstimated      bool   `json:"taxesEstimated"`
	CreatedAt           string `json:"createdAt"`
}

func toDRENodeResponses(nodes []domain.DRENode) []DRENodeResponse {
	if len(nodes) == 0 {
		return nil
	}
	responses := make([]DRENodeResponse, len(nodes))
	for i, node := range nodes {
		responses[i] = DRENodeResponse{
			CategoryID:   node.Category.CategoryID,
			Name:         node.Category.Name,
			CategoryType: string(node.Category.CategoryType),
			Value:        node.Value,
			Children:     toDRENodeResponses(node.Children),
		}
	}
	return responses
}

// ToDREResponse converts a domain DRE result to a DTO response.
func ToDREResponse(dre *domain.DREResult) DREResponse {
	response := DREResponse{
		Month: dre.Month,
		Year:  dre.Year,
		Tree:  toDRENodeResponses(dre.Tree),
	}
	response.Summary.GrossRevenue = dre.GrossRevenue
	response.Summary.Taxes = dre.Taxes
	response.Summary.TaxesEstimated = dre.TaxesEstimated
	response.Summary.NetRevenue = dre.NetRevenue
	response.Summary.OperationalExpenses = dre.OperationalExpenses
	response.Summary.EBITDA = dre.EBITDA
	response.Summary.VariableCosts = dre.VariableCosts
	response.Summary.NetResult = dre.NetResult
	return response
}

// ToOccupancyResponse converts domain occupancy metrics to a DTO response.
func ToOccupancyResponse(metrics *domain.OccupancyMetrics) OccupancyResponse {
	return OccupancyResponse{
		TotalCapacity:  metrics.TotalCapacity,
		OccupiedBeds:   metrics.OccupiedBeds,
		OccupancyRate:  metrics.OccupancyRate,
		AverageTicket:  metrics.AverageTicket,
		CostPerBed:     metrics.CostPerBed,
		ProfitPerBed:   metrics.ProfitPerBed,
		BreakEvenPoint: metrics.BreakEvenPoint,
	}
}

// ToSnapshotResponses converts persisted closes to a DTO response list.
func ToSnapshotResponses(snapshots []domain.DRESnapshot) []SnapshotResponse {
	responses := make([]SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		responses[i] = SnapshotResponse{
			Month:               s.Month,
			Year:                s.Year,
			GrossRevenue:        s.GrossRevenue,
			Taxes:               s.Taxes,
			NetRevenue:          s.NetRevenue,
			OperationalExpenses: s.OperationalExpenses,
			EBITDA:              s.EBITDA,
			NetResult:           s.NetResult,
			TaxesEstimated:      s.TaxesEstimated,
			CreatedAt:           s.CreatedAt.Format(time.RFC3339),
		}
	}
	return responses
}
