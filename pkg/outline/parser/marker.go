package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeyNormalizer turns the text left after stripping a marker prefix into the
// label the marker closes.
type KeyNormalizer interface {
	Normalize(key string) string
}

// KeyNormalizerFunc adapts a plain function to KeyNormalizer.
type KeyNormalizerFunc func(key string) string

// Normalize calls f(key).
func (f KeyNormalizerFunc) Normalize(key string) string {
	return f(key)
}

// TrimKey strips surrounding whitespace.
var TrimKey = KeyNormalizerFunc(strings.TrimSpace)

// CapitalizeKey is used for residual lines, which the export writes with a
// lower-cased first letter and trailing punctuation. It trims whitespace,
// drops any trailing runes found in cutset and upper-cases the first rune.
func CapitalizeKey(cutset string) KeyNormalizer {
	return KeyNormalizerFunc(func(key string) string {
		key = strings.TrimRight(strings.TrimSpace(key), cutset)
		key = strings.TrimSpace(key)
		r, size := utf8.DecodeRuneInString(key)
		if r == utf8.RuneError {
			return key
		}
		return string(unicode.ToUpper(r)) + key[size:]
	})
}

// MarkerRule recognizes one kind of aggregate-marker row.
type MarkerRule struct {
	// Token is matched case-insensitively against the start of the label.
	Token string
	// PrefixWidth is the number of runes removed before the search key.
	PrefixWidth int
	// Normalizer post-processes the search key. Nil means TrimKey.
	Normalizer KeyNormalizer
}

// SearchKey returns the label the marker closes. An empty key means a bare
// marker that closes nothing.
func (r MarkerRule) SearchKey(label string) string {
	runes := []rune(strings.TrimSpace(label))
	if r.PrefixWidth >= len(runes) {
		return ""
	}
	norm := r.Normalizer
	if norm == nil {
		norm = TrimKey
	}
	return norm.Normalize(string(runes[r.PrefixWidth:]))
}

// MarkerSet is an ordered list of marker rules; the first match wins.
type MarkerSet struct {
	rules []MarkerRule
}

// NewMarkerSet builds a MarkerSet from rules.
func NewMarkerSet(rules ...MarkerRule) *MarkerSet {
	return &MarkerSet{rules: rules}
}

// DefaultMarkers returns the subtotal and residual rules of the branch report
// export.
func DefaultMarkers() *MarkerSet {
	return NewMarkerSet(
		MarkerRule{Token: "Итого", PrefixWidth: 6},
		MarkerRule{Token: "Total", PrefixWidth: 6},
		MarkerRule{Token: "Остаток", PrefixWidth: 8, Normalizer: CapitalizeKey(".):")},
		MarkerRule{Token: "Residual", PrefixWidth: 9, Normalizer: CapitalizeKey(".):")},
	)
}

// Rules returns a copy of the rules in match order.
func (m *MarkerSet) Rules() []MarkerRule {
	out := make([]MarkerRule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Match returns the first rule whose token prefixes label.
func (m *MarkerSet) Match(label string) (MarkerRule, bool) {
	if m == nil {
		return MarkerRule{}, false
	}
	lower := strings.ToLower(strings.TrimSpace(label))
	for _, rule := range m.rules {
		if rule.Token == "" {
			continue
		}
		if strings.HasPrefix(lower, strings.ToLower(rule.Token)) {
			return rule, true
		}
	}
	return MarkerRule{}, false
}

// IsMarker reports whether label is an aggregate marker.
func (m *MarkerSet) IsMarker(label string) bool {
	_, ok := m.Match(label)
	return ok
}
