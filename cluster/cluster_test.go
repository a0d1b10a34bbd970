package cluster

import (
	"testing"

	"github.com/jschaf/citeproc/disamb"
	"github.com/jschaf/citeproc/eval"
	"github.com/jschaf/citeproc/locale"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

func authorYearStyle() *style.Style {
	return &style.Style{
		Citation: &style.Citation{
			LayoutDelimiter: "; ",
			Layout: []style.Element{
				&style.Names{
					Variables: []reference.NameVariable{reference.NameAuthor},
					Name: &style.Name{
						EtAlMin: 1, EtAlUseFirst: 1, Delimiter: ", ",
						NameAsSortOrder: style.NameAsSortOrderAll, SortSeparator: ", ",
					},
				},
				&style.Text{Source: style.TextSource{Kind: style.TextSourceValue, Value: " "}},
				&style.Date{Independent: &style.IndependentDate{
					Variable: reference.DateIssued,
					Parts:    []style.DatePart{{Form: style.DatePartFormYear}},
				}},
			},
		},
		Bibliography: &style.Bibliography{
			Sort: &style.Sort{Keys: []style.SortKey{
				{Variable: reference.NameAuthor, Ascending: true},
				{Variable: reference.DateIssued, Ascending: true},
			}},
		},
	}
}

func ref(id, family string, year int) *reference.Reference {
	r := reference.New(id, "book")
	r.Names[reference.NameAuthor] = []reference.Name{{Family: family, Given: "A"}}
	r.Dates[reference.DateIssued] = reference.NewSingleDate(reference.Date{Year: year})
	return r
}

func cite(id, refID string) *reference.Cite {
	return &reference.Cite{ID: id, RefID: refID}
}

func TestRenderCite_movesPunctuationInQuoteWhenLocaleOptionSet(t *testing.T) {
	st := &style.Style{
		Citation: &style.Citation{
			Layout: []style.Element{
				&style.Text{
					Source: style.TextSource{Kind: style.TextSourceValue, Value: "hello"},
					Quotes: true,
				},
				&style.Text{Source: style.TextSource{Kind: style.TextSourceValue, Value: "."}},
			},
		},
	}
	loc := locale.New(locale.EnUS)
	loc.SetOption("punctuation-in-quote", true)
	refs := []*reference.Reference{ref("a", "A", 2000)}
	engine := disamb.NewEngine(st, loc, refs)
	r := NewRenderer(st, loc, engine, nil)
	got := r.RenderCite(cite("k1", "a"))
	want := "“hello.”"
	if got != want {
		t.Errorf("RenderCite = %q, want %q", got, want)
	}
}

func TestRenderCite_leavesPunctuationAloneWhenLocaleOptionUnset(t *testing.T) {
	st := &style.Style{
		Citation: &style.Citation{
			Layout: []style.Element{
				&style.Text{
					Source: style.TextSource{Kind: style.TextSourceValue, Value: "hello"},
					Quotes: true,
				},
				&style.Text{Source: style.TextSource{Kind: style.TextSourceValue, Value: "."}},
			},
		},
	}
	loc := locale.New(locale.EnUS)
	refs := []*reference.Reference{ref("a", "A", 2000)}
	engine := disamb.NewEngine(st, loc, refs)
	r := NewRenderer(st, loc, engine, nil)
	got := r.RenderCite(cite("k1", "a"))
	want := "“hello”."
	if got != want {
		t.Errorf("RenderCite = %q, want %q", got, want)
	}
}

func TestPositions_ibidAndFirst(t *testing.T) {
	clusters := []Cluster{
		{ID: "c1", Cites: []*reference.Cite{cite("k1", "smith")}},
		{ID: "c2", Cites: []*reference.Cite{cite("k2", "smith")}},
		{ID: "c3", Cites: []*reference.Cite{cite("k3", "doe")}},
	}
	pos := Positions(clusters, 5)
	if pos["k1"] != eval.PositionFirst {
		t.Errorf("k1 = %v, want First", pos["k1"])
	}
	if pos["k2"] != eval.PositionIbid {
		t.Errorf("k2 = %v, want Ibid (immediately repeats smith)", pos["k2"])
	}
	if pos["k3"] != eval.PositionFirst {
		t.Errorf("k3 = %v, want First (doe never appeared)", pos["k3"])
	}
}

func TestPositions_subsequentForInTextNonAdjacentRepeat(t *testing.T) {
	clusters := []Cluster{
		{ID: "c1", Cites: []*reference.Cite{cite("k1", "smith")}},
		{ID: "c2", Cites: []*reference.Cite{cite("k2", "doe")}},
		{ID: "c3", Cites: []*reference.Cite{cite("k3", "smith")}},
	}
	pos := Positions(clusters, 5)
	if pos["k3"] != eval.PositionSubsequent {
		t.Errorf("k3 = %v, want Subsequent", pos["k3"])
	}
}

func TestCitationNumbers_orderOfFirstAppearance(t *testing.T) {
	clusters := []Cluster{
		{ID: "c1", Cites: []*reference.Cite{cite("k1", "doe")}},
		{ID: "c2", Cites: []*reference.Cite{cite("k2", "smith"), cite("k3", "doe")}},
	}
	nums := CitationNumbers(clusters)
	if nums["doe"] != 1 {
		t.Errorf("doe = %d, want 1", nums["doe"])
	}
	if nums["smith"] != 2 {
		t.Errorf("smith = %d, want 2", nums["smith"])
	}
}

func TestRenderer_rendersClusterWithDelimiter(t *testing.T) {
	st := authorYearStyle()
	loc := locale.New(locale.EnUS)
	smith := ref("smith", "Smith", 1999)
	doe := ref("doe", "Doe", 2001)
	engine := disamb.NewEngine(st, loc, []*reference.Reference{smith, doe})

	clusters := []Cluster{{ID: "c1", Cites: []*reference.Cite{cite("k1", "smith"), cite("k2", "doe")}}}
	r := NewRenderer(st, loc, engine, clusters)
	got := r.RenderCluster(clusters[0])
	want := "Smith, A 1999; Doe, A 2001"
	if got != want {
		t.Errorf("RenderCluster = %q, want %q", got, want)
	}
}

func numericStyle(collapse style.CollapseMode) *style.Style {
	return &style.Style{
		Citation: &style.Citation{
			LayoutDelimiter: "; ",
			Collapse:        collapse,
			Layout: []style.Element{
				&style.Number{Variable: reference.NumCitationNumber},
			},
		},
	}
}

func TestRenderer_collapsesCitationNumberRuns(t *testing.T) {
	st := numericStyle(style.CollapseCitationNumber)
	loc := locale.New(locale.EnUS)
	refs := []*reference.Reference{
		ref("a", "A", 2000), ref("b", "B", 2001),
		ref("c", "C", 2002), ref("d", "D", 2003),
	}
	engine := disamb.NewEngine(st, loc, refs)
	clusters := []Cluster{{ID: "c1", Cites: []*reference.Cite{
		cite("k1", "a"), cite("k2", "b"), cite("k3", "c"),
	}}}
	r := NewRenderer(st, loc, engine, clusters)
	got := r.RenderCluster(clusters[0])
	want := "1-3"
	if got != want {
		t.Errorf("RenderCluster = %q, want %q", got, want)
	}
}

func TestRenderer_collapsesCitationNumberRunsWithGap(t *testing.T) {
	st := numericStyle(style.CollapseCitationNumber)
	loc := locale.New(locale.EnUS)
	refs := []*reference.Reference{
		ref("a", "A", 2000), ref("b", "B", 2001),
		ref("c", "C", 2002), ref("d", "D", 2003),
	}
	engine := disamb.NewEngine(st, loc, refs)
	clusters := []Cluster{
		{ID: "c0", Cites: []*reference.Cite{cite("k0", "a"), cite("k1", "b")}},
		{ID: "c1", Cites: []*reference.Cite{cite("k2", "a"), cite("k3", "d")}},
	}
	r := NewRenderer(st, loc, engine, clusters)
	got := r.RenderCluster(clusters[1])
	want := "1, 3"
	if got != want {
		t.Errorf("RenderCluster = %q, want %q", got, want)
	}
}

func TestRenderer_collapsesSameAuthorByYear(t *testing.T) {
	st := authorYearStyle()
	st.Citation.Collapse = style.CollapseYear
	loc := locale.New(locale.EnUS)
	smith1999 := ref("smith1999", "Smith", 1999)
	smith2005 := ref("smith2005", "Smith", 2005)
	engine := disamb.NewEngine(st, loc, []*reference.Reference{smith1999, smith2005})
	clusters := []Cluster{{ID: "c1", Cites: []*reference.Cite{
		cite("k1", "smith1999"), cite("k2", "smith2005"),
	}}}
	r := NewRenderer(st, loc, engine, clusters)
	got := r.RenderCluster(clusters[0])
	want := "Smith, A 1999, 2005"
	if got != want {
		t.Errorf("RenderCluster = %q, want %q", got, want)
	}
}

func TestSortedRefIDs_byAuthorThenYear(t *testing.T) {
	st := authorYearStyle()
	loc := locale.New(locale.EnUS)
	refs := []*reference.Reference{
		ref("doe2001", "Doe", 2001),
		ref("smith1999", "Smith", 1999),
		ref("doe1990", "Doe", 1990),
	}
	ids := SortedRefIDs(st, loc, refs)
	want := []string{"doe1990", "doe2001", "smith1999"}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("ids[%d] = %q, want %q (full order %v)", i, ids[i], id, ids)
			break
		}
	}
}
