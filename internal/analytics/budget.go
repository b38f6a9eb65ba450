package analytics

import (
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusUnderBudget Status = "Under Budget"
	StatusOnTrack     Status = "On Track"
	StatusOverBudget  Status = "Over Budget"
)

// underBudgetRatio is the share of the budget that must remain for a category
// to count as comfortably under budget.
var underBudgetRatio = decimal.RequireFromString("0.2")

type Comparison struct {
	Category   string
	Budget     decimal.Decimal
	Spent      decimal.Decimal
	Difference decimal.Decimal
}

// CompareBudgets pairs every budgeted category with its spend. Categories
// without a budget are left out; budgeted categories with no spend report 0.
func CompareBudgets(budgets, spend Breakdown) []Comparison {
	out := make([]Comparison, 0, budgets.Len())
	for _, b := range budgets.Buckets {
		spent, _ := spend.Get(b.Key)
		out = append(out, Comparison{
			Category:   b.Key,
			Budget:     b.Total,
			Spent:      spent,
			Difference: b.Total.Sub(spent),
		})
	}
	return out
}

type Classification struct {
	Status     Status
	Difference decimal.Decimal
}

// Classify compares spend against a budget ceiling. Rules are checked in order:
// more than 20% of the budget left, anything left, overspent.
func Classify(spent, budget decimal.Decimal) Classification {
	diff := budget.Sub(spent)
	switch {
	case diff.GreaterThan(budget.Mul(underBudgetRatio)):
		return Classification{Status: StatusUnderBudget, Difference: diff}
	case !diff.IsNegative():
		return Classification{Status: StatusOnTrack, Difference: diff}
	default:
		return Classification{Status: StatusOverBudget, Difference: diff}
	}
}

// Message renders the human readable line for a classification. symbol is
// prepended to the amount and may be empty.
func (c Classification) Message(symbol string) string {
	amount := symbol + c.Difference.Abs().StringFixed(2)
	switch c.Status {
	case StatusUnderBudget:
		return "Under by " + amount
	case StatusOnTrack:
		return amount + " remaining"
	default:
		return "Over by " + amount
	}
}
