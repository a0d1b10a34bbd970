package disamb

import (
	"github.com/jschaf/citeproc/eval"
	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

// YearSuffixes implements spec.md §4.7 pass 3: group references still
// ambiguous after passes 1 and 2 by transitive closure of "renders
// identically", then allocate "a", "b", "c", ... within each group in
// bibliography sort order (sortedIDs, already sorted by component H).
// References outside any ambiguous group get no entry.
func (e *Engine) YearSuffixes(sortedIDs []string) map[string]string {
	groups := e.ambiguousGroups(sortedIDs)
	suffixes := make(map[string]string, len(sortedIDs))
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		for i, id := range group {
			suffixes[id] = yearSuffixLetter(i)
		}
	}
	return suffixes
}

// ambiguousGroups partitions sortedIDs into groups of references that
// still render identically at DisambPassAddGivenName — the widest pass
// before year-suffix escalation — via union-find over pairwise edge-
// stream equality, giving the transitive closure spec.md §4.7 calls for
// (if A matches B and B matches C, A/B/C share one group even if A and C
// never directly collide).
func (e *Engine) ambiguousGroups(sortedIDs []string) [][]string {
	parent := make(map[string]string, len(sortedIDs))
	for _, id := range sortedIDs {
		parent[id] = id
	}
	var find func(string) string
	find = func(x string) string {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b string) {
		if ra, rb := find(a), find(b); ra != rb {
			parent[ra] = rb
		}
	}

	seqs := make(map[string][]EdgeKey, len(sortedIDs))
	for _, id := range sortedIDs {
		if ref, ok := e.refs[id]; ok {
			seqs[id] = e.renderSeqAt(ref, eval.DisambPassAddGivenName)
		}
	}
	for i, a := range sortedIDs {
		for _, b := range sortedIDs[i+1:] {
			if seqEqual(seqs[a], seqs[b]) {
				union(a, b)
			}
		}
	}

	byRoot := make(map[string][]string, len(sortedIDs))
	var order []string
	for _, id := range sortedIDs {
		r := find(id)
		if _, seen := byRoot[r]; !seen {
			order = append(order, r)
		}
		byRoot[r] = append(byRoot[r], id)
	}
	groups := make([][]string, len(order))
	for i, r := range order {
		groups[i] = byRoot[r]
	}
	return groups
}

func (e *Engine) renderSeqAt(ref *reference.Reference, pass eval.DisambPass) []EdgeKey {
	arena := ir.NewArena()
	ctx := &eval.CiteContext{Reference: ref, Style: e.style, Locale: e.locale, DisambPass: pass}
	id, _ := eval.EvalSeq(ctx, arena, citationLayout(e.style), "", style.Formatting{}, style.Affixes{}, style.DisplayNone)
	return keysOf(ir.Flatten(arena, id))
}

func seqEqual(a, b []EdgeKey) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// yearSuffixLetter returns the i-th year-suffix letter in CSL's
// allocation order: "a", "b", ..., "z", "aa", "ab", ... (spec.md §4.7's
// "1/2/3... allocation" rendered through the style's year-suffix term
// table, conventionally the alphabet).
func yearSuffixLetter(i int) string {
	s := ""
	i++
	for i > 0 {
		i--
		s = string(rune('a'+i%26)) + s
		i /= 26
	}
	return s
}
