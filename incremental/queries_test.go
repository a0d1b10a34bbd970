package incremental

import (
	"testing"

	"github.com/jschaf/citeproc/cluster"
	"github.com/jschaf/citeproc/disamb"
	"github.com/jschaf/citeproc/eval"
	"github.com/jschaf/citeproc/locale"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

func testStyle() *style.Style {
	return &style.Style{
		Citation: &style.Citation{
			Layout: []style.Element{
				&style.Names{
					Variables: []reference.NameVariable{reference.NameAuthor},
					Name:      &style.Name{EtAlMin: 1, EtAlUseFirst: 1},
				},
			},
		},
		Bibliography: &style.Bibliography{
			Layout: []style.Element{
				&style.Names{
					Variables: []reference.NameVariable{reference.NameAuthor},
					Name:      &style.Name{EtAlMin: 1, EtAlUseFirst: 1},
				},
			},
		},
	}
}

func testRef(id, family string) *reference.Reference {
	r := reference.New(id, "book")
	r.Names[reference.NameAuthor] = []reference.Name{{Family: family, Given: "A"}}
	return r
}

func TestIrFullyDisambiguated_cachesAndDependsOnRefDfa(t *testing.T) {
	st := testStyle()
	loc := locale.New(locale.EnUS)
	r := testRef("r1", "Smith")
	engine := disamb.NewEngine(st, loc, []*reference.Reference{r})
	g := NewGraph()

	ctx := &eval.CiteContext{Reference: r, Cite: &reference.Cite{ID: "c1", RefID: "r1"}, Style: st, Locale: loc}
	id1, arena1, pass1, err := IrFullyDisambiguated(g, engine, ctx)
	if err != nil {
		t.Fatalf("IrFullyDisambiguated: %v", err)
	}
	if pass1 != eval.DisambPassNone {
		t.Errorf("pass1 = %v, want DisambPassNone", pass1)
	}
	id2, arena2, _, err := IrFullyDisambiguated(g, engine, ctx)
	if err != nil {
		t.Fatalf("IrFullyDisambiguated (cached): %v", err)
	}
	if id1 != id2 || arena1 != arena2 {
		t.Errorf("expected the second call to return the cached arena/id unchanged")
	}

	g.Invalidate(RefDfaKey("r1"))
	if g.Len() != 0 {
		t.Errorf("Len = %d, want 0 after invalidating ref_dfa (ir_fully_disambiguated depends on it)", g.Len())
	}
}

func TestBuiltCluster_rendersThroughClusterRenderer(t *testing.T) {
	st := testStyle()
	loc := locale.New(locale.EnUS)
	r := testRef("r1", "Smith")
	engine := disamb.NewEngine(st, loc, []*reference.Reference{r})
	g := NewGraph()

	c := cluster.Cluster{ID: "clu1", Cites: []*reference.Cite{{ID: "c1", RefID: "r1"}}}
	renderer := cluster.NewRenderer(st, loc, engine, []cluster.Cluster{c})

	text, err := BuiltCluster(g, renderer, c)
	if err != nil {
		t.Fatalf("BuiltCluster: %v", err)
	}
	if text == "" {
		t.Errorf("expected non-empty rendered cluster text")
	}
}
