package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Category string

const (
	CategoryFood  Category = "Food"
	CategoryRides Category = "Rides"
	CategoryShop  Category = "Shop"
	CategoryBills Category = "Bills"
	CategoryFun   Category = "Fun"
	CategoryOther Category = "Other"
)

var categories = []Category{
	CategoryFood,
	CategoryRides,
	CategoryShop,
	CategoryBills,
	CategoryFun,
	CategoryOther,
}

// Categories returns the fixed category enumeration in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// NormalizeCategory capitalizes the first letter and lower-cases the rest.
// An empty value falls back to CategoryOther.
func NormalizeCategory(s string) Category {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryOther
	}
	r, size := utf8.DecodeRuneInString(s)
	return Category(string(unicode.ToUpper(r)) + strings.ToLower(s[size:]))
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
