package locale

import "testing"

const minimalLocale = `<?xml version="1.0" encoding="utf-8"?>
<locale xml:lang="de-DE">
  <style-options punctuation-in-quote="true"/>
  <date form="text">
    <date-part name="day" range-delimiter="bis"/>
  </date>
  <terms>
    <term name="and">und</term>
    <term name="page">
      <single>Seite</single>
      <multiple>Seiten</multiple>
    </term>
    <term name="editor" gender="masculine">
      <single>Herausgeber</single>
      <multiple>Herausgeber</multiple>
    </term>
    <term name="ordinal-01">.</term>
  </terms>
</locale>`

func TestParse(t *testing.T) {
	l, err := Parse([]byte(minimalLocale))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if l.Lang != (Lang{Language: "de", Region: "DE"}) {
		t.Errorf("Lang = %+v, want de-DE", l.Lang)
	}
	if !l.Options.PunctuationInQuote {
		t.Error("PunctuationInQuote = false, want true")
	}
	and, ok := l.Terms.GetSimple("and", TermFormLong)
	if !ok || and.Singular != "und" {
		t.Errorf(`and = %+v, %v, want "und"`, and, ok)
	}
	page, ok := l.Terms.GetSimple("page", TermFormLong)
	if !ok || page.Singular != "Seite" || page.Plural != "Seiten" {
		t.Errorf("page = %+v, %v, want Seite/Seiten", page, ok)
	}
	editor, ok := l.Terms.GetGendered("editor", TermFormLong)
	if !ok || editor.Gender != GenderMasculine {
		t.Errorf("editor = %+v, %v, want masculine gender", editor, ok)
	}
	if len(l.Terms.Ordinal) != 1 || l.Terms.Ordinal[0].MatchNumber != 1 {
		t.Errorf("Ordinal = %+v, want one MatchNumber=1 entry", l.Terms.Ordinal)
	}
	df, ok := l.Dates[DateFormKeyText]
	if !ok || len(df.Parts) != 1 || df.Parts[0].RangeDelimiter != "bis" {
		t.Errorf("Dates[text] = %+v, %v, want one day part with range-delimiter bis", df, ok)
	}
}

func TestParse_rootNotLocale(t *testing.T) {
	if _, err := Parse([]byte(`<notlocale/>`)); err == nil {
		t.Fatal("Parse() error = nil, want error for non-locale root")
	}
}

func TestParse_bundledEnUS(t *testing.T) {
	l, err := Parse([]byte(BundledEnUS()))
	if err != nil {
		t.Fatalf("Parse(BundledEnUS()) error = %v", err)
	}
	if l.Lang != EnUS {
		t.Errorf("Lang = %+v, want en-US", l.Lang)
	}
	page, ok := l.Terms.GetSimple("page", TermFormShort)
	if !ok || page.Singular != "p." {
		t.Errorf(`page short = %+v, %v, want "p."`, page, ok)
	}
	if _, ok := l.Terms.Ordinal(1, GenderNeuter, OrdinalMatchLastDigit); !ok {
		t.Error("Ordinal(1) not found in bundled en-US locale")
	}
}
