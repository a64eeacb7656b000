package money

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want Amount
	}{
		{"0", 0},
		{"100", 10_000},
		{"100.00", 10_000},
		{"322.50", 32_250},
		{"0.1", 10},
		{".5", 50},
		{"-12.34", -1_234},
		{"19.999", 2_000},
		{"19.994", 1_999},
		{"0.005", 1},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseAmount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", ".", "12a", "1.2.3", "--4", "1.5e2"} {
		if _, err := ParseAmount(in); err == nil {
			t.Fatalf("ParseAmount(%q) expected error", in)
		}
	}
}

func TestParseAmountRejectsOverflow(t *testing.T) {
	// Integer parts at or beyond MaxInt64/100 would wrap when scaled to cents.
	for _, in := range []string{"922337203685477581", "92233720368547758.08", "99999999999999999999.99"} {
		if _, err := ParseAmount(in); err == nil {
			t.Fatalf("ParseAmount(%q) expected range error", in)
		}
	}
	// The largest representable whole amount still parses.
	got, err := ParseAmount("92233720368547757.99")
	if err != nil {
		t.Fatalf("ParseAmount near max: %v", err)
	}
	if got != 9_223_372_036_854_775_799 {
		t.Fatalf("ParseAmount near max = %d", got)
	}
}

func TestAmountString(t *testing.T) {
	if got := Amount(32_250).String(); got != "322.50" {
		t.Fatalf("String() = %q, want 322.50", got)
	}
	if got := Amount(-5).String(); got != "-0.05" {
		t.Fatalf("String() = %q, want -0.05", got)
	}
}

func TestPercentRoundTrip(t *testing.T) {
	p, err := ParsePercent("7.5")
	if err != nil {
		t.Fatal(err)
	}
	if p != 750 {
		t.Fatalf("ParsePercent(7.5) = %d bps, want 750", p)
	}
	if p.String() != "7.5" {
		t.Fatalf("String() = %q, want 7.5", p.String())
	}
	if Percent(1000).String() != "10" {
		t.Fatalf("Percent(1000).String() = %q, want 10", Percent(1000).String())
	}
}

func TestAmountJSON(t *testing.T) {
	out, err := json.Marshal(Amount(32_250))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "322.50" {
		t.Fatalf("marshal = %s, want 322.50", out)
	}

	var a Amount
	if err := json.Unmarshal([]byte("130"), &a); err != nil {
		t.Fatal(err)
	}
	if a != 13_000 {
		t.Fatalf("unmarshal number = %d, want 13000", a)
	}
	if err := json.Unmarshal([]byte(`"6.50"`), &a); err != nil {
		t.Fatal(err)
	}
	if a != 650 {
		t.Fatalf("unmarshal string = %d, want 650", a)
	}
	if err := json.Unmarshal([]byte("1.5e2"), &a); err == nil {
		t.Fatal("expected exponent form to be rejected")
	}
}

func TestRoundDiv(t *testing.T) {
	cases := []struct {
		num, den, want int64
	}{
		{100, 3, 33},
		{200, 3, 67},
		{5, 10, 1},
		{4, 10, 0},
		{-5, 10, -1},
		{0, 7, 0},
	}
	for _, tc := range cases {
		if got := RoundDiv(tc.num, tc.den); got != tc.want {
			t.Fatalf("RoundDiv(%d, %d) = %d, want %d", tc.num, tc.den, got, tc.want)
		}
	}
}
