package disamb

import (
	"testing"

	"github.com/jschaf/citeproc/eval"
	"github.com/jschaf/citeproc/locale"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

func testLocale() *locale.Locale {
	l := locale.New(locale.EnUS)
	l.Terms.SetSimple("et-al", locale.TermFormLong, locale.SimpleTerm{Singular: "et al."})
	return l
}

// twoSmithsStyle renders just the first author's family name — enough to
// collide two same-surname references at DisambPassNone, but not at
// DisambPassAddGivenName once given names are spelled out in full.
func twoSmithsStyle() *style.Style {
	return &style.Style{
		Citation: &style.Citation{
			Layout: []style.Element{
				&style.Names{
					Variables: []reference.NameVariable{reference.NameAuthor},
					Name: &style.Name{
						EtAlMin: 1, EtAlUseFirst: 1, Delimiter: ", ",
						Initialize: style.InitializeTrue, InitializeWith: ".",
					},
				},
			},
		},
	}
}

func smithRef(id, given string) *reference.Reference {
	r := reference.New(id, "book")
	r.Names[reference.NameAuthor] = []reference.Name{{Family: "Smith", Given: given}}
	return r
}

func TestEngine_disambiguatesByWideningGivenName(t *testing.T) {
	st := twoSmithsStyle()
	loc := testLocale()
	refA := smithRef("a", "John")
	refB := smithRef("b", "Jane")
	e := NewEngine(st, loc, []*reference.Reference{refA, refB})

	ctx := &eval.CiteContext{Reference: refA, Cite: &reference.Cite{RefID: "a"}, Style: st, Locale: loc}
	_, _, pass := e.Render(ctx)
	if pass < eval.DisambPassAddGivenName {
		t.Errorf("pass = %v, want at least AddGivenName since both authors render identically as initials", pass)
	}
}

func TestEngine_noWideningWhenAlreadyUnique(t *testing.T) {
	st := twoSmithsStyle()
	loc := testLocale()
	refA := smithRef("a", "John")
	refC := reference.New("c", "book")
	refC.Names[reference.NameAuthor] = []reference.Name{{Family: "Doe", Given: "Jane"}}
	e := NewEngine(st, loc, []*reference.Reference{refA, refC})

	ctx := &eval.CiteContext{Reference: refA, Cite: &reference.Cite{RefID: "a"}, Style: st, Locale: loc}
	_, _, pass := e.Render(ctx)
	if pass != eval.DisambPassNone {
		t.Errorf("pass = %v, want DisambPassNone since Smith/Doe never collide", pass)
	}
}

func TestDfa_acceptsOnlyInsertedSequences(t *testing.T) {
	d := NewDfa()
	d.AddSequence([]EdgeKey{{Text: "Smith"}})
	if !d.Accepts([]EdgeKey{{Text: "Smith"}}) {
		t.Errorf("expected Dfa to accept the inserted sequence")
	}
	if d.Accepts([]EdgeKey{{Text: "Doe"}}) {
		t.Errorf("expected Dfa to reject a sequence it was never given")
	}
	if d.Accepts([]EdgeKey{{Text: "Smith"}, {Text: "extra"}}) {
		t.Errorf("expected Dfa to reject a longer sequence sharing only a prefix")
	}
}

func TestInterner_stableAndDistinctIDs(t *testing.T) {
	in := NewInterner()
	a := DisambName{RefID: "r1", Variable: "author", Family: "Smith"}
	b := DisambName{RefID: "r1", Variable: "author", Family: "Doe"}
	if in.Intern(a) != in.Intern(a) {
		t.Errorf("expected repeated Intern of the same DisambName to return the same id")
	}
	if in.Intern(a) == in.Intern(b) {
		t.Errorf("expected distinct DisambNames to get distinct ids")
	}
}

func TestYearSuffixes_groupsIdenticalRenderings(t *testing.T) {
	st := twoSmithsStyle()
	loc := testLocale()
	refA := smithRef("a", "John")
	refB := smithRef("b", "John") // identical name: still ambiguous even with given name spelled out
	refC := smithRef("c", "Jane")
	e := NewEngine(st, loc, []*reference.Reference{refA, refB, refC})

	suffixes := e.YearSuffixes([]string{"a", "b", "c"})
	if suffixes["a"] == "" || suffixes["b"] == "" {
		t.Fatalf("expected a and b (identical John Smith) to receive year suffixes, got %v", suffixes)
	}
	if suffixes["a"] == suffixes["b"] {
		t.Errorf("expected distinct suffixes within the ambiguous group, got %q twice", suffixes["a"])
	}
	if _, ok := suffixes["c"]; ok {
		t.Errorf("expected c (unambiguous Jane Smith) to receive no suffix")
	}
}
