// Package label normalizes categorical values (domain, role, level, mode)
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Width fold fullwidth to ASCII
// 4 Remove format characters (ZWJ, ZWSP, BOM) and non-space controls
// 5 Collapse whitespace to single spaces and trim
// Case is kept since labels are displayed as-is
package label

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// All is the control value meaning "no constraint" for single-select filters
const All = "All"

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			width.Fold,
			runes.Remove(runes.In(unicode.Cf)),
			runes.Remove(runes.Predicate(func(r rune) bool {
				return unicode.IsControl(r) && !unicode.IsSpace(r)
			})),
		)
	},
}

// Normalize returns the canonical display form of s; "" means missing
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	if !needsTransform(s) {
		return collapse(s)
	}

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}
	return collapse(ns)
}

// IsAll reports whether v is empty or the All control value, in any case
func IsAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All)
}

// needsTransform is false for printable ASCII, which the chain leaves untouched
func needsTransform(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 || (c < 0x20 && c != ' ' && c != '\t' && c != '\n' && c != '\r') || c == 0x7f {
			return true
		}
	}
	return false
}

func collapse(s string) string {
	f := strings.Fields(s)
	if len(f) == 1 {
		return f[0]
	}
	return strings.Join(f, " ")
}
