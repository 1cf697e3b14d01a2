package salary

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Unit is the unit a salary column is stored in
type Unit string

// Units
const (
	Base  Unit = "base"  // rupees
	Lakhs Unit = "lakhs" // multiples of LakhFactor rupees
	USD   Unit = "usd"   // dollars, converted with Rates.USD
)

// LakhFactor is rupees per lakh
const LakhFactor = 100_000

// Rates holds the fixed conversion rates into rupees
type Rates struct {
	USD float64 // rupees per dollar; 0 means USD amounts are rejected
}

// ParseUnit accepts the Unit spellings in any case
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(s))); u {
	case Base, Lakhs, USD:
		return u, nil
	case "inr", "rupees":
		return Base, nil
	}
	return "", fmt.Errorf("salary: unknown unit %q", s)
}

// Convert maps a bare number stored in unit from into rupees, rounded to paise
func Convert(v float64, from Unit, r Rates) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotNumeric
	}
	return convert(decimal.NewFromFloat(v), from, r)
}

func convert(v decimal.Decimal, from Unit, r Rates) (float64, error) {
	switch from {
	case Base, "":
	case Lakhs:
		v = v.Mul(decimal.NewFromInt(LakhFactor))
	case USD:
		if r.USD <= 0 {
			return 0, ErrNoRate
		}
		v = v.Mul(decimal.NewFromFloat(r.USD))
	default:
		return 0, fmt.Errorf("salary: unknown unit %q", from)
	}
	f, _ := v.Round(2).Float64()
	if math.IsInf(f, 0) {
		return 0, ErrNotNumeric
	}
	return f, nil
}

// Canonical converts a parsed amount from a column stored in col into rupees
// a suffix ("12 lakh", "120k") overrides the column scale and a currency
// marker overrides the column currency
func (a Amount) Canonical(col Unit, r Rates) (float64, error) {
	from := col
	switch a.Currency {
	case CurrencyUSD:
		from = USD
	case CurrencyINR:
		if col == USD {
			from = Base
		}
	}
	if a.Scale != 0 && from == Lakhs {
		from = Base
	}
	return convert(a.Value(), from, r)
}

// ParseCanonical is Parse followed by Canonical
func ParseCanonical(text string, col Unit, r Rates) (float64, error) {
	a, err := Parse(text)
	if err != nil {
		return 0, err
	}
	return a.Canonical(col, r)
}

// ToMillions renders rupees as millions rounded to 2 decimals, the KPI display unit
func ToMillions(v float64) float64 { return round2(v / 1e6) }

// ToLakhs renders rupees as lakhs rounded to 2 decimals
func ToLakhs(v float64) float64 { return round2(v / LakhFactor) }

var inPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatLakhGrouped prints whole rupees with Indian digit grouping, e.g. 12,34,567
func FormatLakhGrouped(v float64) string {
	return inPrinter.Sprintf("%d", int64(math.Round(v)))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
