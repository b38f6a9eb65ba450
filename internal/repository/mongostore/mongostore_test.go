package mongostore

import (
	"errors"
	"testing"
	"time"

	"finance-tracker/internal/repository"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, err := parseObjectID(oid.Hex())
	if err != nil || got != oid {
		t.Fatalf("parseObjectID(%s) = %v, %v", oid.Hex(), got, err)
	}

	for _, bad := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", "9b2f7c1e-0000-4000-8000-000000000000"} {
		if _, err := parseObjectID(bad); !errors.Is(err, repository.ErrInvalidID) {
			t.Fatalf("parseObjectID(%q) err = %v, want ErrInvalidID", bad, err)
		}
	}
}

func TestDecimal128RoundTrip(t *testing.T) {
	for _, in := range []string{"75", "25.50", "0.01", "1500", "123456789.99"} {
		d := decimal.RequireFromString(in)
		enc, err := toDecimal128(d)
		if err != nil {
			t.Fatalf("toDecimal128(%s): %v", in, err)
		}
		dec, err := fromDecimal128(enc)
		if err != nil {
			t.Fatalf("fromDecimal128(%s): %v", enc, err)
		}
		if !dec.Equal(d) {
			t.Fatalf("round trip %s -> %s", in, dec)
		}
	}
}

func TestTransactionDocModel(t *testing.T) {
	amount, _ := primitive.ParseDecimal128("42.10")
	local := time.Date(2025, 4, 15, 0, 0, 0, 0, time.FixedZone("x", 3600))
	doc := transactionDoc{
		ID:          primitive.NewObjectID(),
		Amount:      amount,
		Date:        local,
		Description: "Groceries",
		Category:    "Food",
	}

	tx, err := doc.model()
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	if tx.ID != doc.ID.Hex() || tx.Category != "Food" || !tx.Amount.Equal(decimal.RequireFromString("42.1")) {
		t.Fatalf("model = %+v", tx)
	}
	if tx.Date.Location() != time.UTC {
		t.Fatalf("date not normalised to UTC: %v", tx.Date)
	}
}
