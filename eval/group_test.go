package eval

import (
	"testing"

	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

func TestEvalGroup_rendersWhenVariableResolves(t *testing.T) {
	ctx := testCtx()
	arena := ir.NewArena()
	g := &style.Group{
		Delimiter: " ",
		Elements: []style.Element{
			&style.Text{Source: style.TextSource{Kind: style.TextSourceValue, Value: "p."}},
			&style.Number{Variable: reference.NumPage},
		},
	}
	id, vars := Eval(ctx, arena, g)
	if vars != ir.GroupVarsImportant {
		t.Fatalf("vars = %v, want Important", vars)
	}
	if got, want := nodeText(arena, id), "p. 5-9"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestEvalGroup_suppressedWhenVariableMissing(t *testing.T) {
	ctx := testCtx()
	arena := ir.NewArena()
	g := &style.Group{
		Delimiter: " ",
		Elements: []style.Element{
			&style.Text{Source: style.TextSource{Kind: style.TextSourceValue, Value: "vol."}},
			&style.Number{Variable: reference.NumVolume},
		},
	}
	id, _ := Eval(ctx, arena, g)
	if !isEmptyNode(arena, id) {
		t.Errorf("expected suppressed (empty) group")
	}
}

func TestEvalGroup_allPlainNeverSuppresses(t *testing.T) {
	ctx := testCtx()
	arena := ir.NewArena()
	g := &style.Group{
		Delimiter: " ",
		Elements: []style.Element{
			&style.Text{Source: style.TextSource{Kind: style.TextSourceValue, Value: "a"}},
			&style.Text{Source: style.TextSource{Kind: style.TextSourceValue, Value: "b"}},
		},
	}
	id, _ := Eval(ctx, arena, g)
	if isEmptyNode(arena, id) {
		t.Errorf("an all-plain group should never suppress")
	}
	if got, want := nodeText(arena, id), "a b"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}
