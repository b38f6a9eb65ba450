package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"finance-tracker/pkg/config"

	"go.uber.org/zap"
)

func TestOpenMemory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: config.BackendMemory}}
	store, err := Open(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if store.Backend != config.BackendMemory || store.Transactions == nil || store.Budgets == nil {
		t.Fatalf("store = %+v", store)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{
		Store:  config.StoreConfig{Backend: config.BackendSQLite},
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "db", "finance.db")},
	}
	if err := Migrate(context.Background(), cfg, zap.NewNop()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	store, err := Open(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if n, err := store.Transactions.Count(context.Background()); err != nil || n != 0 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: "cassandra"}}
	if _, err := Open(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestCloseJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	var order []int
	s := &Store{closers: []func() error{
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return boom },
	}}
	if err := s.Close(); !errors.Is(err, boom) {
		t.Fatalf("Close err = %v", err)
	}
	if len(order) != 2 || order[0] != 2 {
		t.Fatalf("closers ran in order %v, want reverse", order)
	}
}
