package eval

import (
	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

// evalChoose implements spec.md §4.4's cs:choose: the first branch (if,
// then each else-if in order) whose CondSet matches wins; cs:else is the
// fallback. A branch with any cs:condition disambiguate="true" wraps its
// body in a ConditionalDisamb node so disambiguation can re-walk it if the
// condition inputs change on a later pass.
func evalChoose(ctx *CiteContext, arena *Arena, c *style.Choose) (ir.NodeID, ir.GroupVars) {
	branches := make([]style.IfThen, 0, len(c.ElseIfs)+1)
	branches = append(branches, c.If)
	branches = append(branches, c.ElseIfs...)

	for _, b := range branches {
		if !matchCondSet(ctx, b.CondSet) {
			continue
		}
		id, vars := EvalSeq(ctx, arena, b.Elements, "", style.Formatting{}, style.Affixes{}, style.DisplayNone)
		if hasDisambiguateCond(b.CondSet) {
			wrapped := arena.New(ir.Node{
				Kind: ir.KindConditionalDisamb,
				Vars: vars,
				Conditional: &ir.ConditionalDisamb{
					Choose: c,
					Body:   id,
				},
			})
			return wrapped, vars
		}
		return id, vars
	}
	return EvalSeq(ctx, arena, c.Else, "", style.Formatting{}, style.Affixes{}, style.DisplayNone)
}

func hasDisambiguateCond(cs style.CondSet) bool {
	for _, c := range cs.Conds {
		if c.Kind == style.CondDisambiguate {
			return true
		}
	}
	return false
}

func matchCondSet(ctx *CiteContext, cs style.CondSet) bool {
	if len(cs.Conds) == 0 {
		return false
	}
	switch cs.Match {
	case style.MatchAny:
		for _, c := range cs.Conds {
			if matchCond(ctx, c) {
				return true
			}
		}
		return false
	case style.MatchNone:
		for _, c := range cs.Conds {
			if matchCond(ctx, c) {
				return false
			}
		}
		return true
	case style.MatchNand:
		for _, c := range cs.Conds {
			if !matchCond(ctx, c) {
				return true
			}
		}
		return false
	default: // MatchAll
		for _, c := range cs.Conds {
			if !matchCond(ctx, c) {
				return false
			}
		}
		return true
	}
}

func matchCond(ctx *CiteContext, c style.Cond) bool {
	switch c.Kind {
	case style.CondVariable:
		return hasVariable(ctx, c.Variable)
	case style.CondIsNumeric:
		return isNumeric(ctx, c.Variable)
	case style.CondIsUncertainDate:
		return matchUncertainDate(ctx, c.Variable)
	case style.CondType:
		return ctx.Reference != nil && ctx.Reference.Type == c.EntryType
	case style.CondPosition:
		return matchPosition(ctx.Position, c.Position)
	case style.CondDisambiguate:
		return matchDisambiguate(ctx, c.Disambiguate)
	case style.CondLocator:
		return matchLocator(ctx, c.LocatorType)
	case style.CondContext:
		return matchContext(ctx, c.Context)
	default:
		return false
	}
}

func matchUncertainDate(ctx *CiteContext, v reference.AnyVariable) bool {
	dv, ok := v.(reference.DateVariable)
	if !ok || ctx.Reference == nil {
		return false
	}
	_, ok = ctx.Reference.Dates[dv]
	// Uncertain-date tracking (CSL's circa attribute) isn't modeled on
	// Reference; a present date variable never reports uncertain.
	_ = ok
	return false
}

func matchPosition(actual Position, want style.PositionTest) bool {
	switch want {
	case style.PositionTestFirst:
		return actual == PositionFirst
	case style.PositionTestIbid:
		return actual == PositionIbid || actual == PositionIbidWithLocator
	case style.PositionTestIbidWithLocator:
		return actual == PositionIbidWithLocator
	case style.PositionTestSubsequent:
		return actual == PositionSubsequent || actual == PositionIbid || actual == PositionIbidWithLocator
	case style.PositionTestNearNote:
		return actual == PositionNearNote
	default:
		return false
	}
}

func matchDisambiguate(ctx *CiteContext, want bool) bool {
	active := ctx.DisambPass != DisambPassNone
	return active == want
}

func matchLocator(ctx *CiteContext, want reference.LocatorType) bool {
	if ctx.Cite == nil {
		return false
	}
	for _, loc := range ctx.Cite.Locators {
		if loc.Type == want {
			return true
		}
	}
	return false
}

func matchContext(ctx *CiteContext, want style.ContextTest) bool {
	if want == style.ContextTestBibliography {
		return ctx.InBibliography
	}
	return !ctx.InBibliography
}
