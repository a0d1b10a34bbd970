package disamb

// dfaNode is one state in a Dfa's transition trie.
type dfaNode struct {
	accepting bool
	next      map[EdgeKey]*dfaNode
}

// Dfa is a deterministic automaton, stored as an unminimised trie,
// accepting the edge-key sequences a
// reference's RefIR can legitimately produce under the active style
// (spec.md §3.6, §4.8: "simulate rendering with name slots represented
// as small NFAs enumerating every valid name-variant, then minimise").
//
// This implementation narrows that construction: rather than enumerating
// every given-name/particle/initialization variant a name slot could
// take (a combinatorial NFA the original builds and then subset-
// constructs into a DFA), BuildDfa inserts one sequence per
// eval.DisambPass widening level the evaluator itself models. The result
// is still a genuine finite automaton — shared prefixes across widening
// levels merge naturally in the trie, and Accepts walks it one edge key
// at a time — just over a coarser alphabet of "how wide did this
// reference render" rather than every individual name spelling. See
// DESIGN.md for the full rationale.
type Dfa struct {
	root *dfaNode
}

// NewDfa returns a Dfa accepting nothing until sequences are added.
func NewDfa() *Dfa {
	return &Dfa{root: &dfaNode{next: make(map[EdgeKey]*dfaNode)}}
}

// AddSequence records one additional accepted edge-key sequence.
func (d *Dfa) AddSequence(seq []EdgeKey) {
	n := d.root
	for _, k := range seq {
		next, ok := n.next[k]
		if !ok {
			next = &dfaNode{next: make(map[EdgeKey]*dfaNode)}
			n.next[k] = next
		}
		n = next
	}
	n.accepting = true
}

// Accepts reports whether seq is exactly one of the sequences this Dfa
// was built from.
func (d *Dfa) Accepts(seq []EdgeKey) bool {
	n := d.root
	for _, k := range seq {
		next, ok := n.next[k]
		if !ok {
			return false
		}
		n = next
	}
	return n.accepting
}
