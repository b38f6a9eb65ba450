package analytics

import (
	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

type CategorySpend struct {
	Category string
	Total    decimal.Decimal
	Color    string
}

type BudgetStatus struct {
	Comparison
	Status  Status
	Message string
}

type Summary struct {
	Total       decimal.Decimal
	Count       int
	ByMonth     Breakdown
	ByCategory  []CategorySpend
	Budgets     []BudgetStatus
	SkippedDate int
}

type Options struct {
	Palette        Palette
	CurrencySymbol string
}

// Summarize runs every aggregation over one snapshot of records.
func Summarize(txs []*models.Transaction, budgets []*models.Budget, opts Options) Summary {
	palette := opts.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	byMonth := GroupByMonth(txs)
	byCategory := GroupByCategory(txs)
	colors := palette.Assign(byCategory.Keys())

	categories := make([]CategorySpend, 0, byCategory.Len())
	for _, b := range byCategory.Buckets {
		categories = append(categories, CategorySpend{
			Category: b.Key,
			Total:    b.Total,
			Color:    colors[b.Key],
		})
	}

	comparisons := CompareBudgets(BudgetMap(budgets), byCategory)
	statuses := make([]BudgetStatus, 0, len(comparisons))
	for _, c := range comparisons {
		cls := Classify(c.Spent, c.Budget)
		statuses = append(statuses, BudgetStatus{
			Comparison: c,
			Status:     cls.Status,
			Message:    cls.Message(opts.CurrencySymbol),
		})
	}

	return Summary{
		Total:       TotalSpend(txs),
		Count:       len(txs),
		ByMonth:     byMonth,
		ByCategory:  categories,
		Budgets:     statuses,
		SkippedDate: byMonth.Skipped,
	}
}
