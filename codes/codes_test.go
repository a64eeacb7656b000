package codes

import (
	"regexp"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
}

func TestInvoiceNumberFormat(t *testing.T) {
	g := NewSeededGenerator(fixedClock, 1)
	code := g.InvoiceNumber()
	if !regexp.MustCompile(`^INV-20260831-\d{4}$`).MatchString(code) {
		t.Fatalf("unexpected invoice number %q", code)
	}
}

func TestMonthlyCodeFormats(t *testing.T) {
	g := NewSeededGenerator(fixedClock, 1)
	cases := []struct {
		code    string
		pattern string
	}{
		{g.PatientCode(), `^PAT-2608-\d{3}$`},
		{g.TreatmentCode(), `^TRT-2608-\d{3}$`},
		{g.PackageCode(), `^PKG-2608-\d{3}$`},
	}
	for _, tc := range cases {
		if !regexp.MustCompile(tc.pattern).MatchString(tc.code) {
			t.Fatalf("code %q does not match %q", tc.code, tc.pattern)
		}
	}
}

func TestItemCodePrefix(t *testing.T) {
	g := NewSeededGenerator(fixedClock, 1)
	cases := []struct {
		category string
		prefix   string
	}{
		{"Laboratory", "LAB-"},
		{"x-ray", "XRA-"},
		{"MR", "MR-"},
		{"", "ITM-"},
		{"  ", "ITM-"},
	}
	for _, tc := range cases {
		code := g.ItemCode(tc.category)
		if len(code) < len(tc.prefix) || code[:len(tc.prefix)] != tc.prefix {
			t.Fatalf("ItemCode(%q) = %q, want prefix %q", tc.category, code, tc.prefix)
		}
	}
}

func TestSeededGeneratorIsReproducible(t *testing.T) {
	first := NewSeededGenerator(fixedClock, 42).InvoiceNumber()
	second := NewSeededGenerator(fixedClock, 42).InvoiceNumber()
	if first != second {
		t.Fatalf("same seed produced %q and %q", first, second)
	}
}
