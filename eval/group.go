package eval

import (
	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/style"
)

// evalGroup implements spec.md §4.4's cs:group suppression rule: render
// the children as a Seq, then discard the whole thing if every
// variable-sourced child came up empty (GroupVars.ShouldSuppress).
func evalGroup(ctx *CiteContext, arena *Arena, g *style.Group) (ir.NodeID, ir.GroupVars) {
	id, vars := EvalSeq(ctx, arena, g.Elements, g.Delimiter, g.Formatting, g.Affixes, g.Display)
	if vars.ShouldSuppress() {
		return emptyRendered(arena)
	}
	return id, vars
}
