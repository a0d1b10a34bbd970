package disamb

import "github.com/jschaf/citeproc/ir"

// EdgeKey is the comparable projection of an ir.Edge used as a Dfa
// transition label: spec.md §4.8's automaton is built over "edge
// equivalence classes" rather than raw formatted text, so two edges that
// differ only in Formatting/Affixes collapse to the same transition.
type EdgeKey struct {
	Text       string
	YearSuffix bool
	Accessed   bool
}

func keyOf(e ir.Edge) EdgeKey {
	return EdgeKey{Text: e.Text, YearSuffix: e.IsYearSuffixMarker, Accessed: e.IsAccessedMarker}
}

func keysOf(edges []ir.Edge) []EdgeKey {
	out := make([]EdgeKey, len(edges))
	for i, e := range edges {
		out[i] = keyOf(e)
	}
	return out
}
