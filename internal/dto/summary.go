package dto

import (
	"finance-tracker/internal/analytics"

	"github.com/shopspring/decimal"
)

type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Color    string          `json:"color"`
}

type BudgetComparison struct {
	Category   string          `json:"category"`
	Budget     decimal.Decimal `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Difference decimal.Decimal `json:"difference"`
	Status     string          `json:"status"`
	Message    string          `json:"message"`
}

type SummaryResponse struct {
	Month            string             `json:"month,omitempty"`
	TotalSpend       decimal.Decimal    `json:"total_spend"`
	TransactionCount int                `json:"transaction_count"`
	ByMonth          []MonthTotal       `json:"by_month"`
	ByCategory       []CategoryTotal    `json:"by_category"`
	Budgets          []BudgetComparison `json:"budgets"`
	SkippedDates     int                `json:"skipped_dates,omitempty"`
}

func NewSummaryResponse(month string, s analytics.Summary) SummaryResponse {
	resp := SummaryResponse{
		Month:            month,
		TotalSpend:       s.Total,
		TransactionCount: s.Count,
		ByMonth:          make([]MonthTotal, 0, s.ByMonth.Len()),
		ByCategory:       make([]CategoryTotal, 0, len(s.ByCategory)),
		Budgets:          make([]BudgetComparison, 0, len(s.Budgets)),
		SkippedDates:     s.SkippedDate,
	}
	for _, b := range s.ByMonth.Buckets {
		resp.ByMonth = append(resp.ByMonth, MonthTotal{Month: b.Key, Total: b.Total})
	}
	for _, c := range s.ByCategory {
		resp.ByCategory = append(resp.ByCategory, CategoryTotal{Category: c.Category, Total: c.Total, Color: c.Color})
	}
	for _, b := range s.Budgets {
		resp.Budgets = append(resp.Budgets, BudgetComparison{
			Category:   b.Category,
			Budget:     b.Budget,
			Spent:      b.Spent,
			Difference: b.Difference,
			Status:     string(b.Status),
			Message:    b.Message,
		})
	}
	return resp
}
