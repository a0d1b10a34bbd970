package eval

import (
	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/style"
)

// Eval interprets el against ctx, appending whatever IR nodes it needs to
// arena, and returns the root node it produced along with that node's
// GroupVars (spec.md §4.4: "each element type has an evaluation rule
// producing an IrSum (node + GroupVars)").
func Eval(ctx *CiteContext, arena *Arena, el style.Element) (ir.NodeID, ir.GroupVars) {
	switch t := el.(type) {
	case *style.Text:
		return evalText(ctx, arena, t)
	case *style.Number:
		return evalNumber(ctx, arena, t)
	case *style.Label:
		return evalLabel(ctx, arena, t)
	case *style.Date:
		return evalDate(ctx, arena, t)
	case *style.Names:
		return evalNames(ctx, arena, t)
	case *style.Group:
		return evalGroup(ctx, arena, t)
	case *style.Choose:
		return evalChoose(ctx, arena, t)
	default:
		return emptyRendered(arena)
	}
}

// EvalSeq interprets an ordered element list as a Seq node — the shared
// rule cs:layout, cs:group, and macro expansion all reduce to (spec.md
// §4.4's "ordering and tie-breaks": delimiters only between emitted
// children, affixes wrap the final sequence once content exists).
func EvalSeq(ctx *CiteContext, arena *Arena, els []style.Element, delimiter style.Delimiter, formatting style.Formatting, affixes style.Affixes, display style.DisplayMode) (ir.NodeID, ir.GroupVars) {
	var children []ir.NodeID
	vars := ir.GroupVarsPlain
	any := false
	for _, el := range els {
		id, v := Eval(ctx, arena, el)
		if isEmptyNode(arena, id) {
			continue
		}
		children = append(children, id)
		vars = vars.Combine(v)
		any = true
	}
	if !any {
		return emptyRendered(arena)
	}
	id := arena.New(ir.Node{
		Kind: ir.KindSeq,
		Vars: vars,
		Seq: &ir.Seq{
			Children:   children,
			Formatting: formatting,
			Affixes:    affixes,
			Delimiter:  delimiter,
			Display:    display,
		},
	})
	return id, vars
}

func emptyRendered(arena *Arena) (ir.NodeID, ir.GroupVars) {
	id := arena.New(ir.Node{Kind: ir.KindRendered, Vars: ir.GroupVarsMissing, Rendered: nil})
	return id, ir.GroupVarsMissing
}

func rendered(arena *Arena, text string, vars ir.GroupVars, f style.Formatting, af style.Affixes) (ir.NodeID, ir.GroupVars) {
	if text == "" {
		return emptyRendered(arena)
	}
	id := arena.New(ir.Node{
		Kind: ir.KindRendered,
		Vars: vars,
		Rendered: &ir.Edge{
			Text:       text,
			Formatting: f,
			Affixes:    af,
		},
	})
	return id, vars
}

// renderedLink is rendered's sibling for a variable that should render as a
// hyperlink (spec.md §6.5): the same KindRendered shape, plus Edge.URL so an
// output.Writer can key a link off it. Kept distinct from rendered rather
// than adding a url parameter there, so every other call site's signature
// and behavior is untouched.
func renderedLink(arena *Arena, text, url string, vars ir.GroupVars, f style.Formatting, af style.Affixes) (ir.NodeID, ir.GroupVars) {
	if text == "" {
		return emptyRendered(arena)
	}
	id := arena.New(ir.Node{
		Kind: ir.KindRendered,
		Vars: vars,
		Rendered: &ir.Edge{
			Text:       text,
			Formatting: f,
			Affixes:    af,
			URL:        url,
		},
	})
	return id, vars
}

// isEmptyNode reports whether id rendered nothing at all, the condition
// EvalSeq uses to decide whether a child contributes a delimiter slot.
func isEmptyNode(arena *Arena, id ir.NodeID) bool {
	n := arena.Get(id)
	switch n.Kind {
	case ir.KindRendered:
		return n.Rendered == nil
	case ir.KindSeq:
		return len(n.Seq.Children) == 0
	case ir.KindName:
		return n.Name == nil || n.Name.Rendered == nil
	default:
		return false
	}
}
