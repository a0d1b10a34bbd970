// Package locale holds the per-language term, date-format, and style-option
// tables a style's rendering draws from, plus the fallback-chain merge
// logic spec.md §3.2/§4.2 describes. Within this module it depends only on
// style (for DatePart/Formatting reuse in date templates); eval depends on
// locale, never the reverse.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang is a CSL language tag: an ISO language subtag plus an optional
// region, e.g. ("en", "US") or ("de", ""). Kept as its own type rather
// than a bare language.Tag so the fallback chain in FallbackChain can distinguish
// "language only" from "language with region" without re-parsing.
type Lang struct {
	Language string
	Region   string
}

// ParseLang parses a BCP 47-ish tag like "en-US" or "de" using
// golang.org/x/text/language, the same tag parser the teacher's corpus
// sibling packages (see reference's use of CSL variable tags) would reach
// for, rather than hand-rolling a "-"-split.
func ParseLang(s string) (Lang, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return Lang{}, err
	}
	base, _ := tag.Base()
	region, _ := tag.Region()
	return Lang{Language: base.String(), Region: region.String()}, nil
}

// String renders the tag back out as "language-REGION" or just "language".
func (l Lang) String() string {
	if l.Region == "" {
		return l.Language
	}
	return l.Language + "-" + l.Region
}

// IsGlobal reports whether l carries no region, i.e. it's a
// language-only tag like "en" rather than "en-US".
func (l Lang) IsGlobal() bool {
	return l.Region == ""
}

// WithoutRegion returns the language-only form of l.
func (l Lang) WithoutRegion() Lang {
	return Lang{Language: l.Language}
}

// EnUS is the locale spec.md §3.2/§4.2 names as the final, always-available
// fallback link in every merge chain.
var EnUS = Lang{Language: "en", Region: "US"}

// FallbackChain returns the (up to five-link) lang.iter() chain spec.md §4.2
// describes for merged_locale(lang): inline specific -> inline global ->
// file specific -> file language-only -> file en-US. Each link is a
// LocaleSource; the caller looks each up (inline sources come from the
// style's own <cs:locale> overrides, file sources from a Fetcher) and
// merges whatever resolves, in this order, so the most specific non-empty
// field always wins (MergeChain in locale.go, applied in reverse). Links
// that would repeat an earlier one are left out, so a language-only tag or
// en-US itself yields a shorter chain.
func FallbackChain(lang Lang) []Source {
	chain := []Source{
		{Inline: true, Lang: lang, HasLang: true},
		{Inline: true, HasLang: false},
	}
	if !lang.IsGlobal() {
		chain = append(chain, Source{Inline: false, Lang: lang, HasLang: true})
	}
	if lang.Language != "" {
		chain = append(chain, Source{Inline: false, Lang: lang.WithoutRegion(), HasLang: true})
	}
	if lang != EnUS {
		chain = append(chain, Source{Inline: false, Lang: EnUS, HasLang: true})
	}
	return chain
}

// Source identifies one locale to resolve in a fallback chain: either an
// inline <cs:locale> override embedded in the style (HasLang=false means
// the style's global, language-less override) or a standalone locale file
// fetched by language tag.
type Source struct {
	Inline  bool
	HasLang bool
	Lang    Lang
}

func (s Source) key() string {
	var b strings.Builder
	if s.Inline {
		b.WriteString("inline:")
	} else {
		b.WriteString("file:")
	}
	if s.HasLang {
		b.WriteString(s.Lang.String())
	}
	return b.String()
}
