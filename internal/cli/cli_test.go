package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"finance-tracker/internal/analytics"
	"finance-tracker/internal/models"
	"finance-tracker/pkg/auth"

	"github.com/shopspring/decimal"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestSummaryCommandOnMemoryStore(t *testing.T) {
	out, err := run(t, "summary", "--backend", "memory", "--month", "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(out, "Total spend:") || !strings.Contains(out, "(0 transactions)") {
		t.Fatalf("output = %q", out)
	}

	t.Setenv("CURRENCY_SYMBOL", "€")
	out, err = run(t, "summary", "--backend", "memory", "--month", "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(out, "€0.00") {
		t.Fatalf("output = %q", out)
	}
}

func TestSeedCommand(t *testing.T) {
	out, err := run(t, "seed", "--backend", "memory")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "inserted 3 demo transactions") {
		t.Fatalf("output = %q", out)
	}
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	if _, err := run(t, "token", "--backend", "memory"); err == nil {
		t.Fatalf("expected error without JWT_SECRET_KEY")
	}

	secret := "0123456789abcdef-secret"
	t.Setenv("JWT_SECRET_KEY", secret)
	out, err := run(t, "token", "--backend", "memory", "--subject", "ci")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "expires in") {
		t.Fatalf("output = %q", out)
	}
	claims, err := auth.NewJWTManager(secret, time.Hour).ValidateToken(lines[0])
	if err != nil {
		t.Fatalf("minted token invalid: %v", err)
	}
	if claims.Subject != "ci" {
		t.Fatalf("subject = %q", claims.Subject)
	}
}

func TestPrintSummary(t *testing.T) {
	date := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	txs := []*models.Transaction{
		{Amount: decimal.NewFromInt(70), Date: date, Category: models.CategoryFood},
	}
	budgets := []*models.Budget{
		{Month: "April'25", Category: models.CategoryFood, Budget: decimal.NewFromInt(100)},
	}
	s := analytics.Summarize(txs, budgets, analytics.Options{CurrencySymbol: "$"})

	var out bytes.Buffer
	if err := printSummary(&out, "$", s); err != nil {
		t.Fatalf("printSummary: %v", err)
	}
	for _, want := range []string{"$70.00", "April 2025", "Food", "Under Budget", "Under by $30.00"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}
