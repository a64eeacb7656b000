package pricing

import (
	"testing"

	"github.com/medledger/medledger-go/money"
)

func TestLineTotal(t *testing.T) {
	// 3 x 100.00 at 7.5% tax = 322.50
	got := LineTotal(3, 10_000, 750)
	if got != 32_250 {
		t.Fatalf("expected 32250 cents, got %d", got)
	}
}

func TestLineTotalZeroTax(t *testing.T) {
	if got := LineTotal(4, 2_500, 0); got != 10_000 {
		t.Fatalf("expected 10000 cents, got %d", got)
	}
}

func TestComputeEmpty(t *testing.T) {
	totals := Compute(nil, 1_500)
	if totals != (Totals{}) {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestCompute(t *testing.T) {
	items := []Item{
		{Qty: 2, UnitPrice: 5_000, TaxRate: 1_000},
		{Qty: 1, UnitPrice: 3_000, TaxRate: 0},
	}
	totals := Compute(items, 500)
	if totals.Subtotal != 13_000 {
		t.Fatalf("subtotal = %d, want 13000", totals.Subtotal)
	}
	if totals.Tax != 1_000 {
		t.Fatalf("tax = %d, want 1000", totals.Tax)
	}
	if totals.Discount != 650 {
		t.Fatalf("discount = %d, want 650", totals.Discount)
	}
	if totals.Total != 13_350 {
		t.Fatalf("total = %d, want 13350", totals.Total)
	}
	if totals.Total != totals.Subtotal+totals.Tax-totals.Discount {
		t.Fatalf("totals identity broken: %+v", totals)
	}
}

func TestComputeDeterministic(t *testing.T) {
	items := []Item{
		{Qty: 7, UnitPrice: 1_234, TaxRate: 725},
		{Qty: 3, UnitPrice: 99, TaxRate: 1_850},
	}
	first := Compute(items, 1_250)
	second := Compute(items, 1_250)
	if first != second {
		t.Fatalf("recomputation diverged: %+v vs %+v", first, second)
	}
}

func TestDiscountNeverTouchesTax(t *testing.T) {
	items := []Item{{Qty: 1, UnitPrice: 10_000, TaxRate: 2_000}}
	discounted := Compute(items, 5_000)
	plain := Compute(items, 0)
	if discounted.Tax != plain.Tax {
		t.Fatalf("tax changed under discount: %d vs %d", discounted.Tax, plain.Tax)
	}
	// 50% of the 100.00 subtotal, not of subtotal+tax.
	if discounted.Discount != 5_000 {
		t.Fatalf("discount = %d, want 5000", discounted.Discount)
	}
}

func TestComputeSumsBeforeRounding(t *testing.T) {
	// Three one-cent lines at 50% tax: per-line rounding would give
	// 2 cents each (6 total); summing numerators first gives 1.5 cents
	// of tax rounded once to 2.
	items := []Item{
		{Qty: 1, UnitPrice: 1, TaxRate: 5_000},
		{Qty: 1, UnitPrice: 1, TaxRate: 5_000},
		{Qty: 1, UnitPrice: 1, TaxRate: 5_000},
	}
	totals := Compute(items, 0)
	if totals.Tax != 2 {
		t.Fatalf("tax = %d, want 2", totals.Tax)
	}
	if totals.Total != 5 {
		t.Fatalf("total = %d, want 5", totals.Total)
	}

	var perLine money.Amount
	for _, it := range items {
		perLine += LineTotal(it.Qty, it.UnitPrice, it.TaxRate)
	}
	if perLine == totals.Total {
		t.Fatal("expected per-line rounding to diverge from aggregate rounding here")
	}
}
