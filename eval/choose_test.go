package eval

import (
	"testing"

	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

func textEl(v string) style.Element {
	return &style.Text{Source: style.TextSource{Kind: style.TextSourceValue, Value: v}}
}

func TestEvalChoose_firstMatchingBranchWins(t *testing.T) {
	ctx := testCtx()
	arena := ir.NewArena()
	c := &style.Choose{
		If: style.IfThen{
			CondSet:  style.CondSet{Match: style.MatchAll, Conds: []style.Cond{{Kind: style.CondType, EntryType: "article-journal"}}},
			Elements: []style.Element{textEl("journal branch")},
		},
		ElseIfs: []style.IfThen{
			{
				CondSet:  style.CondSet{Match: style.MatchAll, Conds: []style.Cond{{Kind: style.CondType, EntryType: "book"}}},
				Elements: []style.Element{textEl("book branch")},
			},
		},
		Else: []style.Element{textEl("fallback")},
	}
	id, _ := Eval(ctx, arena, c)
	if got, want := nodeText(arena, id), "book branch"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestEvalChoose_elseWhenNoBranchMatches(t *testing.T) {
	ctx := testCtx()
	arena := ir.NewArena()
	c := &style.Choose{
		If: style.IfThen{
			CondSet:  style.CondSet{Match: style.MatchAll, Conds: []style.Cond{{Kind: style.CondType, EntryType: "webpage"}}},
			Elements: []style.Element{textEl("webpage branch")},
		},
		Else: []style.Element{textEl("fallback")},
	}
	id, _ := Eval(ctx, arena, c)
	if got, want := nodeText(arena, id), "fallback"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestEvalChoose_matchAny(t *testing.T) {
	ctx := testCtx()
	arena := ir.NewArena()
	c := &style.Choose{
		If: style.IfThen{
			CondSet: style.CondSet{Match: style.MatchAny, Conds: []style.Cond{
				{Kind: style.CondVariable, Variable: reference.VarAbstract},
				{Kind: style.CondVariable, Variable: reference.VarTitle},
			}},
			Elements: []style.Element{textEl("matched")},
		},
	}
	id, _ := Eval(ctx, arena, c)
	if got, want := nodeText(arena, id), "matched"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestEvalChoose_disambiguateWrapsConditionalDisamb(t *testing.T) {
	ctx := testCtx()
	ctx.DisambPass = DisambPassAddNames
	arena := ir.NewArena()
	c := &style.Choose{
		If: style.IfThen{
			CondSet:  style.CondSet{Match: style.MatchAll, Conds: []style.Cond{{Kind: style.CondDisambiguate, Disambiguate: true}}},
			Elements: []style.Element{textEl("disambiguated")},
		},
	}
	id, _ := Eval(ctx, arena, c)
	n := arena.Get(id)
	if n.Kind != ir.KindConditionalDisamb {
		t.Fatalf("Kind = %v, want KindConditionalDisamb", n.Kind)
	}
	if got, want := nodeText(arena, id), "disambiguated"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}
