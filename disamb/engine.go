package disamb

import (
	"github.com/jschaf/citeproc/eval"
	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/locale"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
	"golang.org/x/sync/errgroup"
)

// Engine runs spec.md §4.7's escalating disambiguation passes over a
// fixed reference library, caching each reference's Dfa (rebuilt only
// when that reference, the style, or the locale changes, per §4.8).
type Engine struct {
	style  *style.Style
	locale *locale.Locale
	refs   map[string]*reference.Reference
	dfas   map[string]*Dfa
}

// NewEngine builds an Engine over refs, eagerly computing each
// reference's Dfa.
func NewEngine(st *style.Style, loc *locale.Locale, refs []*reference.Reference) *Engine {
	e := &Engine{
		style:  st,
		locale: loc,
		refs:   make(map[string]*reference.Reference, len(refs)),
		dfas:   make(map[string]*Dfa, len(refs)),
	}
	for _, r := range refs {
		e.refs[r.ID] = r
		e.dfas[r.ID] = BuildDfa(r, st, loc)
	}
	return e
}

// Reference looks up a reference this Engine was built with, by id.
func (e *Engine) Reference(id string) (*reference.Reference, bool) {
	r, ok := e.refs[id]
	return r, ok
}

// Invalidate rebuilds ref's cached Dfa after its fields change.
func (e *Engine) Invalidate(ref *reference.Reference) {
	e.refs[ref.ID] = ref
	e.dfas[ref.ID] = BuildDfa(ref, e.style, e.locale)
}

// Render implements spec.md §4.7's escalation for one cite: render at
// DisambPassNone, and if the library still has more than one reference
// that could have produced the resulting edge stream, re-render at each
// successively wider pass (AddNames, then AddGivenName) until either the
// stream becomes unique to ref or the passes are exhausted, at which
// point AddYearSuffix's rendering (appending the reference's allocated
// YearSuffix, set by cluster assembly in ctx.YearSuffix) is returned
// regardless. Pass 4 (Conditionals) needs no separate step here: our
// cs:choose/@disambiguate evaluation (eval.evalChoose) already consults
// ctx.DisambPass on every render, so raising DisambPass above
// DisambPassNone re-evaluates those conditionals for free.
func (e *Engine) Render(ctx *eval.CiteContext) (ir.NodeID, *ir.Arena, eval.DisambPass) {
	layout := citationLayout(e.style)
	for pass := eval.DisambPassNone; ; pass++ {
		arena := ir.NewArena()
		passCtx := *ctx
		passCtx.DisambPass = pass
		id, _ := eval.EvalSeq(&passCtx, arena, layout, "", style.Formatting{}, style.Affixes{}, style.DisplayNone)
		if pass == eval.DisambPassAddYearSuffix || e.isUnambiguous(ctx.Reference.ID, arena, id) {
			return id, arena, pass
		}
	}
}

// isUnambiguous implements spec.md §4.7's unambiguity test: flatten the
// IR to an edge stream, and ask every reference's Dfa (in parallel,
// since acceptance testing is read-only and independent per reference)
// whether it accepts that stream. Exactly one acceptor, and it must be
// refID's own.
func (e *Engine) isUnambiguous(refID string, arena *ir.Arena, id ir.NodeID) bool {
	seq := keysOf(ir.Flatten(arena, id))

	ids := make([]string, 0, len(e.dfas))
	for id2 := range e.dfas {
		ids = append(ids, id2)
	}
	accepted := make([]bool, len(ids))

	var g errgroup.Group
	for i, id2 := range ids {
		i, dfa := i, e.dfas[id2]
		g.Go(func() error {
			accepted[i] = dfa.Accepts(seq)
			return nil
		})
	}
	_ = g.Wait()

	matches := 0
	ownMatches := false
	for i, ok := range accepted {
		if ok {
			matches++
			if ids[i] == refID {
				ownMatches = true
			}
		}
	}
	return matches == 1 && ownMatches
}
