package accounting

import (
	"github.com/shopspring/decimal"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
)

// BuildDRETree aggregates a flat value map into the hierarchical income
// statement defined by the category forest. Each node's value is its direct
// value (0 when absent from valueMap) plus the sum of its children's values.
// Children keep the input order of categories; the returned roots are the
// categories without a parent. Pure function, O(n) over an index by parent ID.
func BuildDRETree(categories []domain.FinancialCategory, valueMap map[string]int64) []domain.DRENode {
	childrenByParent := make(map[string][]domain.FinancialCategory, len(categories))
	var roots []domain.FinancialCategory
	for _, cat := range categories {
		if cat.ParentCategoryID == "" {
			roots = append(roots, cat)
			continue
		}
		childrenByParent[cat.ParentCategoryID] = append(childrenByParent[cat.ParentCategoryID], cat)
	}

	var build func(cat domain.FinancialCategory) domain.DRENode
	build = func(cat domain.FinancialCategory) domain.DRENode {
		node := domain.DRENode{
			Category: cat,
			Value:    valueMap[cat.CategoryID],
		}
		for _, child := range childrenByParent[cat.CategoryID] {
			childNode := build(child)
			node.Children = append(node.Children, childNode)
			node.Value += childNode.Value
		}
		return node
	}

	nodes := make([]domain.DRENode, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, build(root))
	}
	return nodes
}

// FindBranch locates the node for the given category ID anywhere in the tree.
func FindBranch(tree []domain.DRENode, categoryID string) (domain.DRENode, bool) {
	for _, node := range tree {
		if node.Category.CategoryID == categoryID {
			return node, true
		}
		if found, ok := FindBranch(node.Children, categoryID); ok {
			return found, true
		}
	}
	return domain.DRENode{}, false
}

// BranchValue returns the aggregated value of the given branch, 0 when the
// branch does not exist in the tree.
func BranchValue(tree []domain.DRENode, categoryID string) int64 {
	node, ok := FindBranch(tree, categoryID)
	if !ok {
		return 0
	}
	return node.Value
}

// RoundCents multiplies an integer cent amount by a decimal factor and rounds
// half away from zero. This is the single rounding rule for the whole system;
// the readjustment arithmetic tests pin it.
func RoundCents(amount int64, factor decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(factor).Round(0).IntPart()
}

// PercentOf rounds pct% of an integer cent amount, half away from zero.
func PercentOf(amount int64, pct decimal.Decimal) int64 {
	return RoundCents(amount, pct.Div(decimal.NewFromInt(100)))
}

// ReadjustmentFactor converts a percentage into the multiplier applied to the
// indexed fee components (1 + pct/100).
func ReadjustmentFactor(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(pct.Div(decimal.NewFromInt(100)))
}

// AverageTicket is gross revenue divided across occupied beds, rounded half
// away from zero, 0 when no bed is occupied.
func AverageTicket(grossRevenue int64, occupiedBeds int) int64 {
	if occupiedBeds <= 0 {
		return 0
	}
	return decimal.NewFromInt(grossRevenue).
		Div(decimal.NewFromInt(int64(occupiedBeds))).
		Round(0).IntPart()
}

// CostPerBed is the total monthly cost (operational expenses plus taxes)
// divided across occupied beds, rounded half away from zero, 0 when no bed is
// occupied.
func CostPerBed(operationalExpenses, taxes int64, occupiedBeds int) int64 {
	if occupiedBeds <= 0 {
		return 0
	}
	return decimal.NewFromInt(operationalExpenses + taxes).
		Div(decimal.NewFromInt(int64(occupiedBeds))).
		Round(0).IntPart()
}

// BreakEvenPoint is the minimum occupied-bed count covering total cost at the
// given average ticket. Rounds up: the reported headcount must be sufficient,
// never under-reported. 0 when the average ticket is not positive.
func BreakEvenPoint(operationalExpenses, taxes, averageTicket int64) int {
	if averageTicket <= 0 {
		return 0
	}
	totalCost := operationalExpenses + taxes
	beds := totalCost / averageTicket
	if totalCost%averageTicket != 0 {
		beds++
	}
	return int(beds)
}

// OccupancyRate is occupied beds over capacity as a percentage, 0 when
// capacity is 0.
func OccupancyRate(occupiedBeds, totalCapacity int) float64 {
	if totalCapacity <= 0 {
		return 0
	}
	return float64(occupiedBeds) / float64(totalCapacity) * 100
}
