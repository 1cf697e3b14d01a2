package salary

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		number float64
		scale  int64
		cur    Currency
		err    error
	}{
		{in: "1500000", number: 1500000},
		{in: "  1,500,000.50 ", number: 1500000.5},
		{in: "12,34,567", number: 1234567},
		{in: "1_000_000", number: 1000000},
		{in: "1 500 000", number: 1500000},
		{in: "₹ 9,00,000", number: 900000, cur: CurrencyINR},
		{in: "Rs. 18 LPA", number: 18, scale: 1e5, cur: CurrencyINR},
		{in: "rs 12 lakh per annum", number: 12, scale: 1e5, cur: CurrencyINR},
		{in: "INR 1.2Cr", number: 1.2, scale: 1e7, cur: CurrencyINR},
		{in: "$120k", number: 120, scale: 1e3, cur: CurrencyUSD},
		{in: "USD 85000", number: 85000, cur: CurrencyUSD},
		{in: "2.5 million", number: 2.5, scale: 1e6},
		{in: "1.5e+06", number: 1500000},
		{in: "1500000 (approx)", number: 1500000},
		{in: "15 lakhs", number: 15, scale: 1e5},
		{in: "15 bananas", number: 15},
		{in: "1,", number: 1},
		{in: "", err: ErrNotNumeric},
		{in: "   ", err: ErrNotNumeric},
		{in: "N/A", err: ErrNotNumeric},
		{in: "-5", err: ErrNotNumeric},
		{in: "₹", err: ErrNotNumeric},
		{in: ",100", err: ErrNotNumeric},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if !errors.Is(err, tc.err) {
				t.Fatalf("err %v want %v", err, tc.err)
			}
			if err != nil {
				return
			}
			if !got.Number.Equal(decimal.NewFromFloat(tc.number)) || got.Scale != tc.scale || got.Currency != tc.cur {
				t.Fatalf("got %+v", got)
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	rates := Rates{USD: 83}
	tests := []struct {
		in   string
		col  Unit
		want float64
		err  error
	}{
		{in: "1500000", col: Base, want: 1500000},
		{in: "15", col: Lakhs, want: 1500000},
		{in: "12.3", col: Lakhs, want: 1230000},
		{in: "15 lakh", col: Lakhs, want: 1500000},
		{in: "18 LPA", col: Base, want: 1800000},
		{in: "1000", col: USD, want: 83000},
		{in: "$1k", col: Base, want: 83000},
		{in: "₹5000", col: USD, want: 5000},
		{in: "x", col: Base, err: ErrNotNumeric},
	}
	for _, tc := range tests {
		t.Run(tc.in+"/"+string(tc.col), func(t *testing.T) {
			got, err := ParseCanonical(tc.in, tc.col, rates)
			if !errors.Is(err, tc.err) {
				t.Fatalf("err %v want %v", err, tc.err)
			}
			if got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}

	if _, err := ParseCanonical("100", USD, Rates{}); !errors.Is(err, ErrNoRate) {
		t.Fatalf("missing rate err %v", err)
	}
	if _, err := Convert(1, Unit("yen"), rates); err == nil {
		t.Fatal("unknown unit accepted")
	}
	if _, err := Convert(math.Inf(1), Base, rates); !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("inf err %v", err)
	}
	if _, err := ParseCanonical("1e400", Base, rates); !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("overflow err %v", err)
	}
	// exact decimal arithmetic, no float drift
	if got, _ := ParseCanonical("0.1", Lakhs, rates); got != 10_000 {
		t.Fatalf("0.1 lakh = %v", got)
	}
}

func TestParseUnit(t *testing.T) {
	for in, want := range map[string]Unit{"BASE": Base, " lakhs": Lakhs, "usd": USD, "INR": Base} {
		got, err := ParseUnit(in)
		if err != nil || got != want {
			t.Fatalf("ParseUnit(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseUnit("gbp"); err == nil {
		t.Fatal("gbp accepted")
	}
}

func TestDisplay(t *testing.T) {
	if got := ToMillions(2_345_678); got != 2.35 {
		t.Fatalf("ToMillions %v", got)
	}
	if got := ToLakhs(1_234_567); got != 12.35 {
		t.Fatalf("ToLakhs %v", got)
	}
	if got := FormatLakhGrouped(1_234_567.4); got != "12,34,567" {
		t.Fatalf("FormatLakhGrouped %q", got)
	}
	if got := FormatLakhGrouped(999); got != "999" {
		t.Fatalf("FormatLakhGrouped small %q", got)
	}
}
