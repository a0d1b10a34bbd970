package citeproc

import (
	"strings"
	"testing"

	"github.com/jschaf/citeproc/reference"
)

const minimalStyle = `<?xml version="1.0" encoding="utf-8"?>
<style xmlns="http://purl.org/net/xbiblio/csl" class="in-text" version="1.0" default-locale="en-US">
  <macro name="author">
    <names variable="author">
      <name and="text" delimiter=", " et-al-min="4" et-al-use-first="1"/>
      <substitute><text variable="title"/></substitute>
    </names>
  </macro>
  <citation>
    <layout delimiter="; ">
      <group delimiter=", ">
        <text macro="author"/>
        <date variable="issued" form="numeric">
          <date-part name="year"/>
        </date>
      </group>
    </layout>
  </citation>
  <bibliography hanging-indent="true">
    <layout>
      <choose>
        <if type="book">
          <text variable="title" font-style="italic"/>
        </if>
        <else>
          <text variable="title" quotes="true"/>
        </else>
      </choose>
    </layout>
  </bibliography>
</style>`

func testRef(id, family string, year int) *reference.Reference {
	r := reference.New(id, "book")
	r.Names[reference.NameAuthor] = []reference.Name{{Family: family, Given: "A"}}
	r.Dates[reference.DateIssued] = reference.NewSingleDate(reference.Date{Year: year})
	r.Ordinary[reference.VarTitle] = family + "'s Book"
	return r
}

func testCite(id, refID string) reference.Cite {
	return reference.Cite{ID: id, RefID: refID}
}

func testCluster(id string, inText int, cites ...reference.Cite) *reference.Cluster {
	return &reference.Cluster{
		ID:     id,
		Cites:  cites,
		Number: reference.ClusterNumber{Kind: reference.ClusterInText, InText: inText},
	}
}

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	p := New(WithTestMode(true))
	if err := p.SetStyleText([]byte(minimalStyle)); err != nil {
		t.Fatalf("SetStyleText: %v", err)
	}
	return p
}

func TestNewAndSetStyleText(t *testing.T) {
	p := newTestProcessor(t)
	if p.style == nil {
		t.Fatal("style not installed after SetStyleText")
	}
	if p.locl == nil {
		t.Fatal("resolveLocale did not produce a merged locale")
	}
	if p.engine == nil {
		t.Fatal("rebuildEngine did not install a disamb.Engine")
	}
}

func TestExtendReferencesUpsertsWithoutFullRebuild(t *testing.T) {
	p := newTestProcessor(t)
	smith := testRef("smith", "Smith", 1999)
	p.ExtendReferences([]*reference.Reference{smith})
	if _, ok := p.refs["smith"]; !ok {
		t.Fatal("ExtendReferences did not add the reference")
	}

	// Overwrite the same id with a different year; engine.Invalidate
	// should pick up the new Dfa without a fresh engine instance.
	engineBefore := p.engine
	updated := testRef("smith", "Smith", 2005)
	p.ExtendReferences([]*reference.Reference{updated})
	if p.engine != engineBefore {
		t.Error("ExtendReferences should not rebuild the whole engine")
	}
	if p.refs["smith"].Dates[reference.DateIssued].Single.Year != 2005 {
		t.Error("ExtendReferences did not overwrite the existing reference")
	}
}

func TestLoadBibTeXUpsertsConvertedEntries(t *testing.T) {
	p := newTestProcessor(t)
	src := `@book{smith1999, author = {Smith, John}, title = {A Book}, year = {1999}}`
	if err := p.LoadBibTeX(strings.NewReader(src)); err != nil {
		t.Fatalf("LoadBibTeX: %v", err)
	}
	ref, ok := p.refs["smith1999"]
	if !ok {
		t.Fatal("LoadBibTeX did not add the resolved entry")
	}
	if ref.Type != "book" {
		t.Errorf("ref.Type = %q, want %q", ref.Type, "book")
	}
	if got := ref.Dates[reference.DateIssued].Single.Year; got != 1999 {
		t.Errorf("ref year = %d, want 1999", got)
	}
	names := ref.Names[reference.NameAuthor]
	if len(names) != 1 || names[0].Family != "Smith" {
		t.Errorf("ref author = %+v, want family Smith", names)
	}
}

func TestLoadBibTeXReturnsParseError(t *testing.T) {
	p := newTestProcessor(t)
	if err := p.LoadBibTeX(strings.NewReader("@book{unterminated")); err == nil {
		t.Fatal("LoadBibTeX with malformed source should return an error")
	}
}

func TestRemoveReferenceRebuildsEngine(t *testing.T) {
	p := newTestProcessor(t)
	smith := testRef("smith", "Smith", 1999)
	p.ExtendReferences([]*reference.Reference{smith})
	engineBefore := p.engine
	p.RemoveReference("smith")
	if _, ok := p.refs["smith"]; ok {
		t.Fatal("RemoveReference did not drop the reference")
	}
	if p.engine == engineBefore {
		t.Error("RemoveReference should rebuild the engine, since disamb.Engine can't drop one ref")
	}
}

func TestGetClusterAndBatchedUpdates(t *testing.T) {
	p := newTestProcessor(t)
	smith := testRef("smith", "Smith", 1999)
	doe := testRef("doe", "Doe", 2001)
	p.ExtendReferences([]*reference.Reference{smith, doe})

	c1 := testCluster("c1", 0, testCite("k1", "smith"))
	p.InitClusters([]*reference.Cluster{c1})
	if err := p.SetClusterOrder([]ClusterPosition{{ID: "c1"}}); err != nil {
		t.Fatalf("SetClusterOrder: %v", err)
	}

	text, err := p.GetCluster("c1")
	if err != nil {
		t.Fatalf("GetCluster: %v", err)
	}
	if text == "" {
		t.Error("GetCluster returned empty text for a known cluster")
	}

	updates := p.BatchedUpdates()
	if len(updates) != 1 || updates[0].ClusterID != "c1" {
		t.Fatalf("BatchedUpdates after first render = %+v, want one update for c1", updates)
	}

	// A second call with nothing changed reports no updates.
	if got := p.BatchedUpdates(); len(got) != 0 {
		t.Errorf("BatchedUpdates with no changes = %+v, want none", got)
	}

	// Reordering invalidates the cached render even though the reference
	// data didn't change, exercising invalidatePositionDependents.
	c2 := testCluster("c2", 0, testCite("k2", "doe"))
	p.InsertCluster(c2)
	if err := p.SetClusterOrder([]ClusterPosition{{ID: "c2"}, {ID: "c1"}}); err != nil {
		t.Fatalf("SetClusterOrder: %v", err)
	}
	updates = p.BatchedUpdates()
	if len(updates) == 0 {
		t.Error("BatchedUpdates after reorder = none, want at least c2's first render")
	}
}

func TestGetClusterUnknownID(t *testing.T) {
	p := newTestProcessor(t)
	_, err := p.GetCluster("nope")
	if _, ok := err.(*NonExistentClusterError); !ok {
		t.Errorf("GetCluster error = %v (%T), want *NonExistentClusterError", err, err)
	}
}

func TestSetClusterOrderValidation(t *testing.T) {
	p := newTestProcessor(t)
	p.InitClusters([]*reference.Cluster{testCluster("c1", 1, testCite("k1", "smith"))})

	t.Run("unknown cluster id", func(t *testing.T) {
		err := p.SetClusterOrder([]ClusterPosition{{ID: "ghost", HasNote: true, Note: 1}})
		if _, ok := err.(*NonExistentClusterError); !ok {
			t.Errorf("err = %v (%T), want *NonExistentClusterError", err, err)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		err := p.SetClusterOrder([]ClusterPosition{{ID: ""}})
		if err != ErrDidNotSupplyZeroPosition {
			t.Errorf("err = %v, want ErrDidNotSupplyZeroPosition", err)
		}
	})

	t.Run("non-monotonic note numbers", func(t *testing.T) {
		p.InitClusters([]*reference.Cluster{
			testCluster("c1", 2, testCite("k1", "smith")),
			testCluster("c2", 1, testCite("k2", "doe")),
		})
		err := p.SetClusterOrder([]ClusterPosition{
			{ID: "c1", HasNote: true, Note: 2},
			{ID: "c2", HasNote: true, Note: 1},
		})
		if _, ok := err.(*NonMonotonicNoteNumberError); !ok {
			t.Errorf("err = %v (%T), want *NonMonotonicNoteNumberError", err, err)
		}
	})
}

func TestIncludeUncitedAndBibliography(t *testing.T) {
	p := newTestProcessor(t)
	smith := testRef("smith", "Smith", 1999)
	doe := testRef("doe", "Doe", 2001)
	p.ExtendReferences([]*reference.Reference{smith, doe})

	p.InitClusters([]*reference.Cluster{testCluster("c1", 0, testCite("k1", "smith"))})
	if err := p.SetClusterOrder([]ClusterPosition{{ID: "c1"}}); err != nil {
		t.Fatalf("SetClusterOrder: %v", err)
	}

	// With no uncited policy, only smith (cited) appears.
	entries := p.GetBibliography()
	if len(entries) != 1 || entries[0].RefID != "smith" {
		t.Fatalf("GetBibliography = %+v, want only smith", entries)
	}

	// IncludeUncitedAll adds doe too.
	p.IncludeUncited(IncludeUncitedAll, nil)
	entries = p.GetBibliography()
	if len(entries) != 2 {
		t.Fatalf("GetBibliography with IncludeUncitedAll = %+v, want 2 entries", entries)
	}

	meta := p.BibliographyMeta()
	if !meta.HangingIndent {
		t.Error("BibliographyMeta.HangingIndent = false, want true (minimalStyle sets hanging-indent)")
	}
	if meta.EntryCount != 2 {
		t.Errorf("BibliographyMeta.EntryCount = %d, want 2", meta.EntryCount)
	}
}

func TestPreviewCitationClusterDoesNotPersist(t *testing.T) {
	p := newTestProcessor(t)
	smith := testRef("smith", "Smith", 1999)
	p.ExtendReferences([]*reference.Reference{smith})
	p.InitClusters([]*reference.Cluster{testCluster("c1", 0, testCite("k1", "smith"))})
	if err := p.SetClusterOrder([]ClusterPosition{{ID: "c1"}}); err != nil {
		t.Fatalf("SetClusterOrder: %v", err)
	}

	preview := testCluster("preview", 0, testCite("k2", "smith"))
	text, err := p.PreviewCitationCluster(preview, ClusterPosition{ID: "c1"})
	if err != nil {
		t.Fatalf("PreviewCitationCluster: %v", err)
	}
	if text == "" {
		t.Error("PreviewCitationCluster returned empty text")
	}
	if _, ok := p.clusters["preview"]; ok {
		t.Error("PreviewCitationCluster persisted the preview cluster into Processor state")
	}
	if _, err := p.GetCluster("preview"); err == nil {
		t.Error("preview cluster should not be retrievable via GetCluster")
	}
}

func TestPreviewCitationClusterRequiresPosition(t *testing.T) {
	p := newTestProcessor(t)
	preview := testCluster("preview", 0, testCite("k1", "smith"))
	if _, err := p.PreviewCitationCluster(preview, ClusterPosition{}); err != ErrDidNotSupplyZeroPosition {
		t.Errorf("err = %v, want ErrDidNotSupplyZeroPosition", err)
	}
}

func TestRandomClusterIDTestModeIsDeterministic(t *testing.T) {
	p := New(WithTestMode(true))
	first := p.RandomClusterID()
	second := p.RandomClusterID()
	if first == second {
		t.Errorf("RandomClusterID returned the same id twice: %q", first)
	}
	if first != "test-cluster-1" || second != "test-cluster-2" {
		t.Errorf("RandomClusterID = %q, %q, want test-cluster-1, test-cluster-2", first, second)
	}
}

func TestRandomClusterIDNonTestModeIsRandomHex(t *testing.T) {
	p := New()
	a := p.RandomClusterID()
	b := p.RandomClusterID()
	if a == b {
		t.Errorf("RandomClusterID returned the same id twice outside test mode: %q", a)
	}
	if len(a) != 32 {
		t.Errorf("RandomClusterID length = %d, want 32 (16 bytes hex-encoded)", len(a))
	}
}
