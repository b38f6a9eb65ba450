package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MonthLabelLayout renders labels such as "April'25".
const MonthLabelLayout = "January'06"

type Budget struct {
	ID        string          `db:"id"`
	Month     string          `db:"month"`
	Category  Category        `db:"category"`
	Budget    decimal.Decimal `db:"budget"`
	CreatedAt time.Time       `db:"created_at"`
}

func MonthLabel(t time.Time) string {
	return t.Format(MonthLabelLayout)
}

// ParseMonthLabel resolves a budget label back to the first day of its month.
func ParseMonthLabel(label string) (time.Time, error) {
	return time.Parse(MonthLabelLayout, label)
}

// NormalizeMonthLabel accepts a label in any letter case ("april'25") and
// returns its canonical form ("April'25").
func NormalizeMonthLabel(label string) (string, error) {
	first, err := ParseMonthLabel(strings.TrimSpace(label))
	if err != nil {
		return "", err
	}
	return MonthLabel(first), nil
}
