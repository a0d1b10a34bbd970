package locale

import "testing"

func TestLocale_Merge_specificWinsOverFallback(t *testing.T) {
	specific := New(Lang{Language: "en", Region: "GB"})
	specific.Terms.SetSimple("editor", TermFormLong, SimpleTerm{Singular: "editor"})

	fallback := New(EnUS)
	fallback.Terms.SetSimple("editor", TermFormLong, SimpleTerm{Singular: "EN-US-EDITOR"})
	fallback.Terms.SetSimple("page", TermFormLong, SimpleTerm{Singular: "page", Plural: "pages"})
	fallback.SetOption("punctuation-in-quote", true)

	merged := specific.Merge(fallback)

	editor, ok := merged.Terms.GetSimple("editor", TermFormLong)
	if !ok || editor.Singular != "editor" {
		t.Errorf("editor term = %+v, want the more specific locale's value", editor)
	}
	page, ok := merged.Terms.GetSimple("page", TermFormLong)
	if !ok || page.Singular != "page" {
		t.Errorf("page term = %+v, want inherited from fallback", page)
	}
	if !merged.Options.PunctuationInQuote {
		t.Error("PunctuationInQuote = false, want inherited true from fallback")
	}
}

func TestLocale_Merge_ordinalTermsReplacedWholesale(t *testing.T) {
	specific := New(Lang{Language: "en", Region: "GB"})
	specific.Terms.Ordinal = []OrdinalTerm{{MatchNumber: 1, SimpleTerm: SimpleTerm{Singular: "st"}}}

	fallback := New(EnUS)
	fallback.Terms.Ordinal = []OrdinalTerm{
		{MatchNumber: 1, SimpleTerm: SimpleTerm{Singular: "st"}},
		{MatchNumber: 2, SimpleTerm: SimpleTerm{Singular: "nd"}},
	}

	merged := specific.Merge(fallback)
	if len(merged.Terms.Ordinal) != 1 {
		t.Errorf("Ordinal has %d entries, want 1 (specific locale's table wins wholesale)", len(merged.Terms.Ordinal))
	}
}

func TestMergeChain(t *testing.T) {
	deDE := New(Lang{Language: "de", Region: "DE"})
	deDE.Terms.SetSimple("and", TermFormLong, SimpleTerm{Singular: "und"})

	de := New(Lang{Language: "de"})
	de.Terms.SetSimple("and", TermFormLong, SimpleTerm{Singular: "de-lang-and"})
	de.Terms.SetSimple("page", TermFormLong, SimpleTerm{Singular: "Seite"})

	enUS := New(EnUS)
	enUS.Terms.SetSimple("and", TermFormLong, SimpleTerm{Singular: "and"})
	enUS.Terms.SetSimple("et-al", TermFormLong, SimpleTerm{Singular: "et al."})

	merged := MergeChain(Lang{Language: "de", Region: "DE"}, deDE, de, enUS)

	and, _ := merged.Terms.GetSimple("and", TermFormLong)
	if and.Singular != "und" {
		t.Errorf(`"and" = %q, want "und" (most specific wins)`, and.Singular)
	}
	page, ok := merged.Terms.GetSimple("page", TermFormLong)
	if !ok || page.Singular != "Seite" {
		t.Errorf(`"page" = %+v, %v, want "Seite" inherited from "de"`, page, ok)
	}
	etAl, ok := merged.Terms.GetSimple("et-al", TermFormLong)
	if !ok || etAl.Singular != "et al." {
		t.Errorf(`"et-al" = %+v, %v, want inherited from en-US`, etAl, ok)
	}
}

func TestMergeChain_skipsNilLinks(t *testing.T) {
	enUS := New(EnUS)
	enUS.Terms.SetSimple("and", TermFormLong, SimpleTerm{Singular: "and"})

	merged := MergeChain(EnUS, nil, nil, enUS)
	and, ok := merged.Terms.GetSimple("and", TermFormLong)
	if !ok || and.Singular != "and" {
		t.Errorf("and = %+v, %v, want and inherited despite nil links", and, ok)
	}
}
