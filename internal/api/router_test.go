package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finance-tracker/internal/api/handlers"
	"finance-tracker/internal/repository/memory"
	"finance-tracker/internal/service"
	"finance-tracker/pkg/auth"
	"finance-tracker/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, jwtManager *auth.JWTManager) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	store := memory.New()

	txService := service.NewTransactionService(store.Transactions(), nil, logger)
	budgetService := service.NewBudgetService(store.Budgets(), nil, logger)
	summaryService := service.NewSummaryService(store.Transactions(), store.Budgets(), "₹", logger)
	reportService := service.NewReportService(summaryService, logger)

	return SetupRouter(Handlers{
		Transactions: handlers.NewTransactionHandler(txService, logger),
		Budgets:      handlers.NewBudgetHandler(budgetService, logger),
		Summary:      handlers.NewSummaryHandler(summaryService, reportService, config.BackendMemory, logger),
	}, jwtManager, config.ServerConfig{}, logger)
}

type result struct {
	status int
	body   []byte
}

func (r result) decode(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(r.body, v); err != nil {
		t.Fatalf("decode %s: %v", r.body, err)
	}
}

func (r result) errorMessage(t *testing.T) string {
	t.Helper()
	var env struct {
		Error string `json:"error"`
	}
	r.decode(t, &env)
	return env.Error
}

func do(t *testing.T, app *fiber.App, method, path, body string, header ...string) result {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return result{status: resp.StatusCode, body: raw}
}

type txJSON struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

func TestCreateThenListRoundTrip(t *testing.T) {
	app := newTestApp(t, nil)

	res := do(t, app, http.MethodPost, "/api/transactions",
		`{"amount":75,"date":"2025-04-15","description":"Groceries","category":"food"}`)
	if res.status != fiber.StatusCreated {
		t.Fatalf("POST status = %d body=%s", res.status, res.body)
	}
	var created txJSON
	res.decode(t, &created)
	if created.ID == "" || created.Category != "Food" || created.Amount != 75 {
		t.Fatalf("created = %+v", created)
	}

	do(t, app, http.MethodPost, "/api/transactions",
		`{"amount":"25.50","date":"2025-04-16","description":"Movie ticket","category":"Fun"}`)

	res = do(t, app, http.MethodGet, "/api/transactions", "")
	if res.status != fiber.StatusOK {
		t.Fatalf("GET status = %d", res.status)
	}
	var list []txJSON
	res.decode(t, &list)
	if len(list) != 2 || list[0].Description != "Movie ticket" || list[1].ID != created.ID {
		t.Fatalf("list = %+v", list)
	}
}

func TestCreateValidation(t *testing.T) {
	app := newTestApp(t, nil)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing field", `{"amount":5,"date":"2025-04-15","category":"Food"}`, "description is required"},
		{"unknown field", `{"amount":5,"date":"2025-04-15","description":"x","category":"Food","tags":[]}`, "unknown field"},
		{"bad category", `{"amount":5,"date":"2025-04-15","description":"x","category":"Travel"}`, "category"},
		{"negative amount", `{"amount":-5,"date":"2025-04-15","description":"x","category":"Food"}`, "greater than zero"},
		{"tiny exponent", `{"amount":1e-100000000,"date":"2025-04-15","description":"x","category":"Food"}`, "two decimal places"},
		{"huge exponent", `{"amount":1e100000000,"date":"2025-04-15","description":"x","category":"Food"}`, "less than"},
		{"bad date", `{"amount":5,"date":"yesterday","description":"x","category":"Food"}`, "YYYY-MM-DD"},
		{"not json", `amount=5`, "malformed JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := do(t, app, http.MethodPost, "/api/transactions", tt.body)
			if res.status != fiber.StatusBadRequest {
				t.Fatalf("status = %d body=%s", res.status, res.body)
			}
			if msg := res.errorMessage(t); !strings.Contains(msg, tt.wantMsg) {
				t.Fatalf("error = %q, want containing %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestUpdateTransaction(t *testing.T) {
	app := newTestApp(t, nil)

	res := do(t, app, http.MethodPost, "/api/transactions",
		`{"amount":10,"date":"2025-04-01","description":"Bus","category":"Rides"}`)
	var created txJSON
	res.decode(t, &created)

	body := `{"amount":12,"date":"2025-04-02","description":"Taxi","category":"rides"}`
	res = do(t, app, http.MethodPut, "/api/transactions/"+created.ID, body)
	if res.status != fiber.StatusOK {
		t.Fatalf("PUT status = %d body=%s", res.status, res.body)
	}
	var updated txJSON
	res.decode(t, &updated)
	if updated.ID != created.ID || updated.Description != "Taxi" || updated.Date != "2025-04-02" {
		t.Fatalf("updated = %+v", updated)
	}

	if res := do(t, app, http.MethodPut, "/api/transactions/not-an-id", body); res.status != fiber.StatusBadRequest {
		t.Fatalf("PUT invalid id status = %d", res.status)
	}
	res = do(t, app, http.MethodPut, "/api/transactions/"+uuid.NewString(), body)
	if res.status != fiber.StatusNotFound || res.errorMessage(t) != "Transaction not found" {
		t.Fatalf("PUT unknown id = %d %s", res.status, res.body)
	}
}

func TestDeleteTransaction(t *testing.T) {
	app := newTestApp(t, nil)

	res := do(t, app, http.MethodPost, "/api/transactions",
		`{"amount":10,"date":"2025-04-01","description":"Bus","category":"Rides"}`)
	var created txJSON
	res.decode(t, &created)

	res = do(t, app, http.MethodDelete, "/api/transactions/"+created.ID, "")
	if res.status != fiber.StatusOK {
		t.Fatalf("DELETE status = %d", res.status)
	}

	res = do(t, app, http.MethodDelete, "/api/transactions/"+created.ID, "")
	if res.status != fiber.StatusNotFound {
		t.Fatalf("DELETE again status = %d", res.status)
	}

	res = do(t, app, http.MethodDelete, "/api/transactions/12345", "")
	if res.status != fiber.StatusBadRequest || res.errorMessage(t) != "Invalid transaction ID" {
		t.Fatalf("DELETE invalid = %d %s", res.status, res.body)
	}
}

func TestBudgetAndSummary(t *testing.T) {
	app := newTestApp(t, nil)

	for _, body := range []string{
		`{"amount":80,"date":"2025-04-15","description":"Groceries","category":"Food"}`,
		`{"amount":120,"date":"2025-04-17","description":"Shoes","category":"Shop"}`,
	} {
		if res := do(t, app, http.MethodPost, "/api/transactions", body); res.status != fiber.StatusCreated {
			t.Fatalf("seed status = %d", res.status)
		}
	}
	for _, body := range []string{
		`{"month":"April'25","category":"Food","budget":100}`,
		`{"month":"April'25","category":"shop","budget":100}`,
	} {
		if res := do(t, app, http.MethodPost, "/api/budget", body); res.status != fiber.StatusCreated {
			t.Fatalf("budget status = %d body=%s", res.status, res.body)
		}
	}

	res := do(t, app, http.MethodPost, "/api/budget", `{"month":"April'25","category":"Food"}`)
	if res.status != fiber.StatusBadRequest {
		t.Fatalf("budget without amount status = %d", res.status)
	}
	res = do(t, app, http.MethodPost, "/api/budget", `{"month":"April'25","category":"Food","budget":1e100000000}`)
	if res.status != fiber.StatusBadRequest {
		t.Fatalf("budget with huge exponent status = %d", res.status)
	}

	res = do(t, app, http.MethodGet, "/api/budget", "")
	var budgets []map[string]any
	res.decode(t, &budgets)
	if len(budgets) != 2 || budgets[1]["category"] != "Shop" {
		t.Fatalf("budgets = %+v", budgets)
	}

	res = do(t, app, http.MethodGet, "/api/summary?month=April'25", "")
	if res.status != fiber.StatusOK {
		t.Fatalf("summary status = %d body=%s", res.status, res.body)
	}
	var summary struct {
		TotalSpend float64 `json:"total_spend"`
		Budgets    []struct {
			Category string `json:"category"`
			Status   string `json:"status"`
			Message  string `json:"message"`
		} `json:"budgets"`
	}
	res.decode(t, &summary)
	if summary.TotalSpend != 200 || len(summary.Budgets) != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Budgets[0].Status != "On Track" || summary.Budgets[0].Message != "₹20.00 remaining" {
		t.Fatalf("food = %+v", summary.Budgets[0])
	}
	if summary.Budgets[1].Status != "Over Budget" || summary.Budgets[1].Message != "Over by ₹20.00" {
		t.Fatalf("shop = %+v", summary.Budgets[1])
	}

	if res := do(t, app, http.MethodGet, "/api/summary?month=someday", ""); res.status != fiber.StatusBadRequest {
		t.Fatalf("bad month status = %d", res.status)
	}

	res = do(t, app, http.MethodGet, "/api/summary/report.pdf", "")
	if res.status != fiber.StatusOK || !bytes.HasPrefix(res.body, []byte("%PDF-")) {
		t.Fatalf("report status = %d", res.status)
	}
}

func TestMetaRoutes(t *testing.T) {
	app := newTestApp(t, nil)

	res := do(t, app, http.MethodGet, "/api/categories", "")
	var cats struct {
		Categories []string `json:"categories"`
	}
	res.decode(t, &cats)
	if len(cats.Categories) != 6 || cats.Categories[0] != "Food" {
		t.Fatalf("categories = %+v", cats)
	}

	res = do(t, app, http.MethodGet, "/health", "")
	if res.status != fiber.StatusOK || !strings.Contains(string(res.body), `"backend":"memory"`) {
		t.Fatalf("health = %d %s", res.status, res.body)
	}

	res = do(t, app, http.MethodGet, "/api/nope", "")
	if res.status != fiber.StatusNotFound || res.errorMessage(t) == "" {
		t.Fatalf("unknown route = %d %s", res.status, res.body)
	}
}

func TestWriteRoutesRequireTokenWhenAuthEnabled(t *testing.T) {
	manager := auth.NewJWTManager("0123456789abcdef-secret", time.Hour)
	app := newTestApp(t, manager)
	body := `{"amount":5,"date":"2025-04-15","description":"Tea","category":"Food"}`

	if res := do(t, app, http.MethodPost, "/api/transactions", body); res.status != fiber.StatusUnauthorized {
		t.Fatalf("POST without token status = %d", res.status)
	}
	if res := do(t, app, http.MethodGet, "/api/transactions", ""); res.status != fiber.StatusOK {
		t.Fatalf("GET without token status = %d", res.status)
	}

	token, err := manager.GenerateToken("ops")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if res := do(t, app, http.MethodPost, "/api/transactions", body, "Authorization", "Bearer "+token); res.status != fiber.StatusCreated {
		t.Fatalf("POST with token status = %d body=%s", res.status, res.body)
	}
}
