package models

import (
	"testing"
	"time"
)

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"food", CategoryFood},
		{"RIDES", CategoryRides},
		{" shop ", CategoryShop},
		{"bIlLs", CategoryBills},
		{"", CategoryOther},
		{"   ", CategoryOther},
		{"groceries", Category("Groceries")},
	}
	for _, tc := range cases {
		if got := NormalizeCategory(tc.in); got != tc.want {
			t.Fatalf("NormalizeCategory(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Fatalf("expected %q to be valid", c)
		}
	}
	for _, c := range []Category{"Groceries", "food", "Shop ", ""} {
		if c.Valid() {
			t.Fatalf("expected %q to be invalid", c)
		}
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	cs := Categories()
	cs[0] = "Mutated"
	if Categories()[0] != CategoryFood {
		t.Fatalf("enumeration was mutated through the returned slice")
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-04-15", "2025-04-15T18:30:00Z", " 2025-04-15 "} {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q) error: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "15/04/2025", "2025-13-01", "yesterday"} {
		if _, err := ParseDate(in); err == nil {
			t.Fatalf("ParseDate(%q) expected error", in)
		}
	}
}

func TestMonthLabelRoundTrip(t *testing.T) {
	d := time.Date(2025, 4, 17, 0, 0, 0, 0, time.UTC)
	label := MonthLabel(d)
	if label != "April'25" {
		t.Fatalf("MonthLabel = %q, want April'25", label)
	}
	first, err := ParseMonthLabel(label)
	if err != nil {
		t.Fatalf("ParseMonthLabel: %v", err)
	}
	if first.Year() != 2025 || first.Month() != time.April || first.Day() != 1 {
		t.Fatalf("ParseMonthLabel = %v", first)
	}
	if _, err := ParseMonthLabel("Apr 2025"); err == nil {
		t.Fatalf("expected error for malformed label")
	}
}

func TestNormalizeMonthLabel(t *testing.T) {
	for _, in := range []string{"April'25", "april'25", " APRIL'25 "} {
		got, err := NormalizeMonthLabel(in)
		if err != nil || got != "April'25" {
			t.Fatalf("NormalizeMonthLabel(%q) = %q, %v", in, got, err)
		}
	}
	for _, in := range []string{"", "2025-04", "Apr'25", "April 2025"} {
		if _, err := NormalizeMonthLabel(in); err == nil {
			t.Fatalf("NormalizeMonthLabel(%q) expected error", in)
		}
	}
}
