package ir

// Flatten walks the subtree rooted at id and returns its Edges in render
// order — spec.md §4.7's unambiguity test "flattens IR to an edge stream"
// before asking each reference's Dfa whether it accepts that stream.
func Flatten(a *Arena, id NodeID) []Edge {
	var out []Edge
	flattenInto(a, id, &out)
	return out
}

func flattenInto(a *Arena, id NodeID, out *[]Edge) {
	n := a.Get(id)
	switch n.Kind {
	case KindRendered:
		if n.Rendered != nil {
			*out = append(*out, *n.Rendered)
		}
	case KindName:
		if n.Name != nil && n.Name.Rendered != nil {
			*out = append(*out, *n.Name.Rendered)
		}
	case KindConditionalDisamb:
		if n.Conditional != nil {
			flattenInto(a, n.Conditional.Body, out)
		}
	case KindYearSuffix:
		if n.YearSuffix != nil {
			*out = append(*out, Edge{Text: n.YearSuffix.Content, IsYearSuffixMarker: true})
		}
	case KindSeq:
		if n.Seq == nil {
			return
		}
		for i, c := range n.Seq.Children {
			if i > 0 && n.Seq.Delimiter != "" {
				*out = append(*out, Edge{Text: string(n.Seq.Delimiter)})
			}
			flattenInto(a, c, out)
		}
	}
}
