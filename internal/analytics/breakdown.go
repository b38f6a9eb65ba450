// Package analytics turns a snapshot of transactions and budgets into the
// derived views shown on the dashboard. Every function here is pure: inputs are
// never mutated and nothing performs I/O.
package analytics

import (
	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// MonthKeyLayout renders month buckets such as "April 2025".
const MonthKeyLayout = "January 2006"

type Bucket struct {
	Key   string
	Total decimal.Decimal
}

// Breakdown is an insertion-ordered mapping from key to amount.
type Breakdown struct {
	Buckets []Bucket
	// Skipped counts inputs that could not be assigned a key.
	Skipped int
	index   map[string]int
}

func (b *Breakdown) add(key string, amount decimal.Decimal) {
	if b.index == nil {
		b.index = make(map[string]int)
	}
	if i, ok := b.index[key]; ok {
		b.Buckets[i].Total = b.Buckets[i].Total.Add(amount)
		return
	}
	b.index[key] = len(b.Buckets)
	b.Buckets = append(b.Buckets, Bucket{Key: key, Total: amount})
}

// set overwrites the value for key and keeps its first position.
func (b *Breakdown) set(key string, amount decimal.Decimal) {
	if b.index == nil {
		b.index = make(map[string]int)
	}
	if i, ok := b.index[key]; ok {
		b.Buckets[i].Total = amount
		return
	}
	b.index[key] = len(b.Buckets)
	b.Buckets = append(b.Buckets, Bucket{Key: key, Total: amount})
}

func (b Breakdown) Get(key string) (decimal.Decimal, bool) {
	for _, bucket := range b.Buckets {
		if bucket.Key == key {
			return bucket.Total, true
		}
	}
	return decimal.Zero, false
}

func (b Breakdown) Keys() []string {
	keys := make([]string, len(b.Buckets))
	for i, bucket := range b.Buckets {
		keys[i] = bucket.Key
	}
	return keys
}

func (b Breakdown) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, bucket := range b.Buckets {
		sum = sum.Add(bucket.Total)
	}
	return sum
}

func (b Breakdown) Len() int {
	return len(b.Buckets)
}

// TotalSpend is the running grand total across all given transactions.
func TotalSpend(txs []*models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx == nil {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total
}

// MonthKey formats the bucket key for a transaction date. ok is false for a
// zero date.
func MonthKey(tx *models.Transaction) (string, bool) {
	if tx.Date.IsZero() {
		return "", false
	}
	return tx.Date.Format(MonthKeyLayout), true
}

// GroupByMonth sums amounts per calendar month in first-occurrence order.
// Transactions without a usable date are counted in Skipped and leave the
// other buckets untouched.
func GroupByMonth(txs []*models.Transaction) Breakdown {
	var out Breakdown
	for _, tx := range txs {
		if tx == nil {
			continue
		}
		key, ok := MonthKey(tx)
		if !ok {
			out.Skipped++
			continue
		}
		out.add(key, tx.Amount)
	}
	return out
}

// GroupByCategory sums amounts per category in first-occurrence order. The key
// is the stored category verbatim, so unknown labels get their own bucket.
func GroupByCategory(txs []*models.Transaction) Breakdown {
	var out Breakdown
	for _, tx := range txs {
		if tx == nil {
			continue
		}
		out.add(string(tx.Category), tx.Amount)
	}
	return out
}

// BudgetMap collapses budget entries to one ceiling per category. A later entry
// for the same category replaces the earlier ceiling but keeps its position.
func BudgetMap(budgets []*models.Budget) Breakdown {
	var out Breakdown
	for _, b := range budgets {
		if b == nil {
			continue
		}
		out.set(string(b.Category), b.Budget)
	}
	return out
}
