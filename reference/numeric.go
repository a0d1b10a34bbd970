package reference

import (
	"strconv"
	"strings"
)

// NumericValue is the value of a number variable. CSL number variables are
// nominally integers but commonly appear as ranges ("5-9"), lists
// ("5, 7, 9"), or plain text ("iv"). The conversion happens once at
// ingestion: IsNumeric reports whether Raw parsed as one of the numeric
// shapes below, and rendering falls back to Raw verbatim when it didn't.
type NumericValue struct {
	Raw       string
	IsNumeric bool
	// Nums holds the parsed integers when IsNumeric is true: one value for
	// a plain number, two for a range or a comma/ampersand-joined pair.
	Nums []int
	// Delimiter is the separator found between Nums, e.g. "-", ", ", " & ".
	Delimiter string
}

// NewNumericValue parses raw into a NumericValue, recognizing a single
// integer, a hyphenated range, or a comma/ampersand-separated pair. Any
// other shape is kept as non-numeric free text.
func NewNumericValue(raw string) NumericValue {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return NumericValue{Raw: raw, IsNumeric: true, Nums: []int{n}}
	}
	for _, delim := range []string{"-", "–", ", ", " & "} {
		if lo, hi, ok := splitPair(trimmed, delim); ok {
			return NumericValue{Raw: raw, IsNumeric: true, Nums: []int{lo, hi}, Delimiter: delim}
		}
	}
	return NumericValue{Raw: raw}
}

func splitPair(s, delim string) (lo, hi int, ok bool) {
	i := strings.Index(s, delim)
	if i <= 0 || i+len(delim) >= len(s) {
		return 0, 0, false
	}
	loN, err := strconv.Atoi(strings.TrimSpace(s[:i]))
	if err != nil {
		return 0, 0, false
	}
	hiN, err := strconv.Atoi(strings.TrimSpace(s[i+len(delim):]))
	if err != nil {
		return 0, 0, false
	}
	return loN, hiN, true
}

// IsEmpty reports whether the value carries no content.
func (n NumericValue) IsEmpty() bool {
	return n.Raw == ""
}

// IsRange reports whether the value parsed as a two-element range or pair.
func (n NumericValue) IsRange() bool {
	return n.IsNumeric && len(n.Nums) == 2
}

// String renders the value as it would appear in plain text.
func (n NumericValue) String() string {
	if !n.IsNumeric {
		return n.Raw
	}
	if len(n.Nums) == 1 {
		return strconv.Itoa(n.Nums[0])
	}
	delim := n.Delimiter
	if delim == "" {
		delim = "-"
	}
	parts := make([]string, len(n.Nums))
	for i, v := range n.Nums {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, delim)
}
