// Package salary parses compensation amounts and converts them to canonical rupees
//
// Amount grammar, matched against the start of the text:
//
//	ws* [currency] ws* digits {sep digits} ['.' digits] [exponent] ws* [suffix] ...
//
// currency is one of ₹ $ Rs Rs. INR USD (any case). sep is ',' '_' or a single
// space between two digits. suffix is k, l|lac|lakh|lakhs|lpa, m|mn|million or
// cr|crore|crores. Anything after the number and suffix is ignored.
package salary

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotNumeric means the text has no leading number
	ErrNotNumeric = errors.New("salary: not numeric")

	// ErrNoSalary means neither the canonical nor the fallback column yields a value
	ErrNoSalary = errors.New("salary: no salary value")

	// ErrNoRate means a USD amount was seen but no USD rate is configured
	ErrNoRate = errors.New("salary: usd rate not configured")
)

// Currency is the currency marker found in the text, if any
type Currency string

// Currency markers
const (
	CurrencyNone Currency = ""
	CurrencyINR  Currency = "INR"
	CurrencyUSD  Currency = "USD"
)

// Amount is a parsed amount before unit conversion, kept exact
type Amount struct {
	Number   decimal.Decimal
	Scale    int64 // from the suffix, 0 when there was none
	Suffix   string
	Currency Currency
}

var prefixes = []struct {
	text string
	cur  Currency
}{
	{"₹", CurrencyINR},
	{"$", CurrencyUSD},
	{"inr", CurrencyINR},
	{"usd", CurrencyUSD},
	{"rs.", CurrencyINR},
	{"rs", CurrencyINR},
}

var suffixes = map[string]int64{
	"k":       1e3,
	"l":       1e5,
	"lac":     1e5,
	"lacs":    1e5,
	"lakh":    1e5,
	"lakhs":   1e5,
	"lpa":     1e5,
	"m":       1e6,
	"mn":      1e6,
	"million": 1e6,
	"cr":      1e7,
	"crore":   1e7,
	"crores":  1e7,
}

// Parse reads the leading amount of text
func Parse(text string) (Amount, error) {
	var a Amount
	s := strings.TrimLeftFunc(text, unicode.IsSpace)

	low := strings.ToLower(s)
	for _, p := range prefixes {
		if strings.HasPrefix(low, p.text) {
			a.Currency = p.cur
			s = strings.TrimLeftFunc(s[len(p.text):], unicode.IsSpace)
			break
		}
	}

	num, rest, ok := leadingNumber(s)
	if !ok {
		return Amount{}, ErrNotNumeric
	}
	v, err := decimal.NewFromString(num)
	if err != nil {
		return Amount{}, ErrNotNumeric
	}
	a.Number = v

	word := leadingWord(strings.TrimLeftFunc(rest, unicode.IsSpace))
	if scale, ok := suffixes[word]; ok {
		a.Scale = scale
		a.Suffix = word
	}
	return a, nil
}

// Value is Number times the suffix scale
func (a Amount) Value() decimal.Decimal {
	if a.Scale == 0 {
		return a.Number
	}
	return a.Number.Mul(decimal.NewFromInt(a.Scale))
}

// leadingNumber returns the digits of the number at the start of s without separators
func leadingNumber(s string) (num, rest string, ok bool) {
	var b strings.Builder
	i := 0
	digits := 0

	for i < len(s) {
		c := s[i]
		switch {
		case isDigit(c):
			b.WriteByte(c)
			digits++
			i++
			continue
		case (c == ',' || c == '_' || c == ' ') && digits > 0 && i+1 < len(s) && isDigit(s[i+1]) && isDigit(s[i-1]):
			i++
			continue
		}
		break
	}
	if digits == 0 {
		return "", s, false
	}

	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		b.WriteByte('.')
		i++
		for i < len(s) && isDigit(s[i]) {
			b.WriteByte(s[i])
			i++
		}
	}

	// exponent, as printed by float columns cast to text
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			b.WriteString(s[i:j])
			for j < len(s) && isDigit(s[j]) {
				b.WriteByte(s[j])
				j++
			}
			i = j
		}
	}
	return b.String(), s[i:], true
}

// leadingWord returns the lowercased letters at the start of s, stopping at the first non letter
func leadingWord(s string) string {
	end := 0
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if !unicode.IsLetter(r) {
			break
		}
		end += size
	}
	return strings.ToLower(s[:end])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
