package disamb

import (
	"github.com/jschaf/citeproc/eval"
	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/locale"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

// BuildDfa constructs ref's Dfa by rendering its citation layout once per
// disambiguation-widening level eval.DisambPass distinguishes (spec.md
// §4.8's RefIR; see Dfa's doc comment for how this narrows the original
// per-name-NFA construction). Each level's flattened edge stream is one
// accepted sequence.
func BuildDfa(ref *reference.Reference, st *style.Style, loc *locale.Locale) *Dfa {
	d := NewDfa()
	layout := citationLayout(st)
	for pass := eval.DisambPassNone; pass <= eval.DisambPassAddYearSuffix; pass++ {
		arena := ir.NewArena()
		ctx := &eval.CiteContext{Reference: ref, Style: st, Locale: loc, DisambPass: pass}
		id, _ := eval.EvalSeq(ctx, arena, layout, "", style.Formatting{}, style.Affixes{}, style.DisplayNone)
		d.AddSequence(keysOf(ir.Flatten(arena, id)))
	}
	return d
}

func citationLayout(st *style.Style) []style.Element {
	if st == nil || st.Citation == nil {
		return nil
	}
	return st.Citation.Layout
}
