package cluster

import (
	"fmt"

	"github.com/jschaf/citeproc/eval"
	"github.com/jschaf/citeproc/reference"
)

// citeOccurrence is one cite in flattened document order, annotated with
// the cluster it came from.
type citeOccurrence struct {
	clusterIdx int
	noteNumber int
	citeID     string
	refID      string
	locatorKey string
}

func flatten(clusters []Cluster) []citeOccurrence {
	var flat []citeOccurrence
	for ci, c := range clusters {
		for _, cite := range c.Cites {
			flat = append(flat, citeOccurrence{
				clusterIdx: ci,
				noteNumber: c.NoteNumber,
				citeID:     cite.ID,
				refID:      cite.RefID,
				locatorKey: locatorKey(cite),
			})
		}
	}
	return flat
}

// locatorKey collapses a cite's locator list to a comparable string;
// reference.Locator's NumericValue holds a []int, so the struct itself
// isn't == comparable.
func locatorKey(c *reference.Cite) string {
	s := ""
	for _, l := range c.Locators {
		s += fmt.Sprintf("%s:%s|", l.Type, l.Value.Raw)
	}
	return s
}

// Positions computes each cite's eval.Position across the whole ordered
// document (spec.md §4.10): Ibid/IbidWithLocator when the immediately
// preceding cite in document order shares the same reference (locator
// equal or not), Subsequent when the reference recurs in an in-text
// style without being immediately adjacent, NearNote/FarNote when it
// recurs in a note style depending on whether the gap is within
// nearNoteDistance note numbers, and First the first time a reference
// appears at all.
func Positions(clusters []Cluster, nearNoteDistance int) map[string]eval.Position {
	flat := flatten(clusters)
	result := make(map[string]eval.Position, len(flat))
	lastByRef := make(map[string]citeOccurrence, len(flat))

	for i, occ := range flat {
		prev, seenBefore := lastByRef[occ.refID]
		switch {
		case !seenBefore:
			result[occ.citeID] = eval.PositionFirst
		case i > 0 && flat[i-1].refID == occ.refID:
			if flat[i-1].locatorKey == occ.locatorKey {
				result[occ.citeID] = eval.PositionIbid
			} else {
				result[occ.citeID] = eval.PositionIbidWithLocator
			}
		case occ.noteNumber == 0:
			result[occ.citeID] = eval.PositionSubsequent
		case occ.noteNumber-prev.noteNumber <= nearNoteDistance:
			result[occ.citeID] = eval.PositionNearNote
		default:
			result[occ.citeID] = eval.PositionFarNote
		}
		lastByRef[occ.refID] = occ
	}
	return result
}

// CitationNumbers assigns each reference its 1-based "citation-number"
// in order of first appearance across clusters (spec.md §4.10's
// CitationNumber, the value cs:number variable="citation-number" reads).
func CitationNumbers(clusters []Cluster) map[string]int {
	numbers := make(map[string]int)
	next := 1
	for _, c := range clusters {
		for _, cite := range c.Cites {
			if _, ok := numbers[cite.RefID]; !ok {
				numbers[cite.RefID] = next
				next++
			}
		}
	}
	return numbers
}
