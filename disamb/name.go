// Package disamb is the disambiguation engine (component F): it decides,
// per cite, how far a rendering must widen (more names shown, given
// names spelled out, a year suffix appended) before it is the only
// reference in the library that could have produced it (spec.md §3.6,
// §4.7, §4.8). disamb depends on eval, ir, locale, reference, and style.
package disamb

import "sync"

// DisambName is the interned identity spec.md §3.6 assigns to one
// concrete person name as it appears in one name-variable slot of one
// reference: "(ref_id, name-variable, name element, concrete person
// name, primary-flag)". Position distinguishes repeated occurrences of
// the same variable within a reference (e.g. the 2nd author).
type DisambName struct {
	RefID     string
	Variable  string
	Position  int
	Family    string
	Given     string
	IsPrimary bool
}

// Interner assigns a stable integer id to each distinct DisambName, so
// disambiguation bookkeeping can key maps and sets on a cheap int rather
// than repeatedly comparing structs.
type Interner struct {
	mu   sync.Mutex
	ids  map[DisambName]int
	next int
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[DisambName]int)}
}

// Intern returns d's id, assigning a new one the first time d is seen.
func (in *Interner) Intern(d DisambName) int {
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.ids[d]; ok {
		return id
	}
	in.next++
	in.ids[d] = in.next
	return in.next
}
