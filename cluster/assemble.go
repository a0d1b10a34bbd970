package cluster

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/jschaf/citeproc/disamb"
	"github.com/jschaf/citeproc/eval"
	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/locale"
	"github.com/jschaf/citeproc/output"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

// Renderer assembles whole clusters and bibliography entries on top of
// eval/disamb's per-cite rendering, applying spec.md §4.11's cluster-
// level rules: the citation layout's own delimiter/affixes wrap each
// cluster, and cite position/citation-number/year-suffix are threaded
// into every member cite's CiteContext before it renders.
type Renderer struct {
	style  *style.Style
	locale *locale.Locale
	engine *disamb.Engine

	positions       map[string]eval.Position
	citationNumbers map[string]int
	yearSuffixes    map[string]string

	newWriter func() output.Writer
	logger    *slog.Logger
}

// RendererOption configures a Renderer built by NewRenderer.
type RendererOption func(*Renderer)

// WithOutputFormat selects the output.Writer every render call serializes
// through - spec.md §6.5's HTML/RTF/plain text choice is a per-Processor
// setting threaded down to this package rather than owned by it.
func WithOutputFormat(format output.Format, opts ...output.Option) RendererOption {
	return func(r *Renderer) {
		r.newWriter = func() output.Writer { return output.NewWriter(format, opts...) }
	}
}

// WithLogger overrides the logger RenderCite uses to report an unknown
// reference (spec.md §7's UnknownReference: render a placeholder, warn,
// don't fail the call). Defaults to slog.Default().
func WithLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) { r.logger = logger }
}

// NewRenderer builds a Renderer for clusters against engine's reference
// library. Call SetYearSuffixes once the bibliography's sort order is
// known, before rendering any cluster whose style can disambiguate by
// year suffix.
func NewRenderer(st *style.Style, loc *locale.Locale, engine *disamb.Engine, clusters []Cluster, opts ...RendererOption) *Renderer {
	r := &Renderer{
		style:           st,
		locale:          loc,
		engine:          engine,
		positions:       Positions(clusters, nearNoteDistance(st)),
		citationNumbers: CitationNumbers(clusters),
		yearSuffixes:    map[string]string{},
		newWriter:       func() output.Writer { return output.NewWriter(output.FormatPlain) },
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func nearNoteDistance(st *style.Style) int {
	if st != nil && st.Citation != nil && st.Citation.NearNoteDistance > 0 {
		return st.Citation.NearNoteDistance
	}
	return 5
}

// SetYearSuffixes installs the library-wide year-suffix allocation
// (disamb.Engine.YearSuffixes), keyed by reference id.
func (r *Renderer) SetYearSuffixes(suffixes map[string]string) {
	r.yearSuffixes = suffixes
}

// RenderCluster renders one cluster: each member cite through disamb's
// escalating render, collapsed per the citation layout's collapse policy
// (spec.md §4.11 op 3), then joined by the layout's delimiter and wrapped
// in its affixes.
func (r *Renderer) RenderCluster(c Cluster) string {
	cites := make([]*reference.Cite, 0, len(c.Cites))
	parts := make([]string, 0, len(c.Cites))
	for _, cite := range c.Cites {
		if s := r.RenderCite(cite); s != "" {
			cites = append(cites, cite)
			parts = append(parts, s)
		}
	}
	parts = r.collapseCites(cites, parts)

	delim := "; "
	affixes := style.Affixes{}
	if r.style != nil && r.style.Citation != nil {
		if r.style.Citation.LayoutDelimiter != "" {
			delim = string(r.style.Citation.LayoutDelimiter)
		}
		affixes = r.style.Citation.LayoutAffixes
	}
	return affixes.Prefix + strings.Join(parts, delim) + affixes.Suffix
}

// collapseCites merges adjacent rendered cites per the citation layout's
// collapse policy (spec.md §4.11 op 3): consecutive citation-numbers
// collapse to a range ("1,2,3" -> "1-3"), and same-author cites collapse to
// one author mention followed by a delimited list of years/year-suffixes.
// cites and parts are kept index-aligned by the caller. A style whose
// collapse mode this function can't safely apply to the actual rendered
// text (see the per-branch fallback below) is left uncollapsed rather than
// risk mangling output.
func (r *Renderer) collapseCites(cites []*reference.Cite, parts []string) []string {
	if r.style == nil || r.style.Citation == nil || len(parts) < 2 {
		return parts
	}
	citation := r.style.Citation
	switch citation.Collapse {
	case style.CollapseCitationNumber:
		return r.collapseCitationNumbers(cites, parts, citation)
	case style.CollapseYear, style.CollapseYearSuffix, style.CollapseYearSuffixRanged:
		return r.collapseByAuthor(cites, parts, citation)
	default:
		return parts
	}
}

// collapseCitationNumbers groups consecutive runs of cites whose rendered
// text is literally their own citation number (the common case for
// numeric styles) into "N-M" range strings. A cite whose rendered text
// isn't a bare citation number breaks the current run rather than being
// merged into it, so styles that embed more than a number in the citation
// layout fall back to leaving every affected cite uncollapsed.
func (r *Renderer) collapseCitationNumbers(cites []*reference.Cite, parts []string, citation *style.Citation) []string {
	rangeDelim := "-"
	if citation.AfterCollapseDelimiter != "" {
		rangeDelim = string(citation.AfterCollapseDelimiter)
	}
	groupDelim := ", "
	if citation.CiteGroupDelimiter != "" {
		groupDelim = string(citation.CiteGroupDelimiter)
	}

	out := make([]string, 0, len(parts))
	i := 0
	for i < len(parts) {
		n, ok := r.bareCitationNumber(cites[i], parts[i])
		if !ok {
			out = append(out, parts[i])
			i++
			continue
		}
		j := i + 1
		run := []int{n}
		for j < len(parts) {
			next, ok := r.bareCitationNumber(cites[j], parts[j])
			if !ok || next != run[len(run)-1]+1 {
				break
			}
			run = append(run, next)
			j++
		}
		if len(run) == 1 {
			out = append(out, parts[i])
		} else {
			out = append(out, strconv.Itoa(run[0])+rangeDelim+strconv.Itoa(run[len(run)-1]))
		}
		i = j
	}
	return []string{strings.Join(out, groupDelim)}
}

// bareCitationNumber reports whether cite's rendered text is exactly its
// own citation number with no other content — the shape a numeric style's
// cs:text[variable="citation-number"] layout produces on its own.
func (r *Renderer) bareCitationNumber(cite *reference.Cite, rendered string) (int, bool) {
	n, ok := r.citationNumbers[cite.RefID]
	if !ok || strconv.Itoa(n) != rendered {
		return 0, false
	}
	return n, true
}

// collapseByAuthor groups adjacent cites that share the same author
// (by reference id's NameAuthor names) and, within each group, strips the
// rendered text's common leading substring — trimmed back to a word
// boundary — from every member after the first, joining the remainders
// with YearSuffixDelimiter. A group whose members share no non-empty,
// word-aligned prefix (e.g. the style doesn't render the author as a plain
// leading substring) is left uncollapsed.
func (r *Renderer) collapseByAuthor(cites []*reference.Cite, parts []string, citation *style.Citation) []string {
	delim := string(citation.YearSuffixDelimiter)
	if delim == "" {
		delim = string(citation.CiteGroupDelimiter)
	}
	if delim == "" {
		delim = ", "
	}

	out := make([]string, 0, len(parts))
	i := 0
	for i < len(parts) {
		j := i + 1
		for j < len(parts) && r.sameAuthor(cites[i], cites[j]) {
			j++
		}
		if j == i+1 {
			out = append(out, parts[i])
			i = j
			continue
		}
		group := parts[i:j]
		prefix := commonPrefix(group)
		prefix = trimToWordBoundary(prefix)
		if prefix == "" {
			out = append(out, group...)
			i = j
			continue
		}
		merged := prefix
		for k, s := range group {
			rest := strings.TrimPrefix(s, prefix)
			if k == 0 {
				merged += rest
				continue
			}
			merged += delim + rest
		}
		out = append(out, merged)
		i = j
	}
	return out
}

// sameAuthor reports whether a and b's references share the same
// NameAuthor names — the condition spec.md §4.11 describes as "adjacent
// cites sharing author" before cite-group collapse applies.
func (r *Renderer) sameAuthor(a, b *reference.Cite) bool {
	if a.RefID == b.RefID {
		return true
	}
	refA, okA := r.engine.Reference(a.RefID)
	refB, okB := r.engine.Reference(b.RefID)
	if !okA || !okB {
		return false
	}
	namesA, namesB := refA.Names[reference.NameAuthor], refB.Names[reference.NameAuthor]
	if len(namesA) == 0 || len(namesA) != len(namesB) {
		return false
	}
	for i := range namesA {
		if namesA[i].Family != namesB[i].Family || namesA[i].Given != namesB[i].Given {
			return false
		}
	}
	return true
}

// commonPrefix returns the longest byte-wise prefix shared by every string
// in ss.
func commonPrefix(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	prefix := ss[0]
	for _, s := range ss[1:] {
		n := 0
		for n < len(prefix) && n < len(s) && prefix[n] == s[n] {
			n++
		}
		prefix = prefix[:n]
		if prefix == "" {
			return ""
		}
	}
	return prefix
}

// trimToWordBoundary trims s back to its last space character, so a shared
// prefix like "Smith, A 19" reduces to "Smith, A " instead of splitting a
// year in the middle of a digit pair.
func trimToWordBoundary(s string) string {
	idx := strings.LastIndexByte(s, ' ')
	if idx < 0 {
		return ""
	}
	return s[:idx+1]
}

// RenderCite renders one cite to plain text via the disambiguation
// engine, applying author-in-text/suppress-author cs:layout conventions
// a real CSL style expresses through cs:choose on cite.Mode — left to
// the style itself rather than special-cased here, matching spec.md
// §4.4's "the style owns presentation" stance.
func (r *Renderer) RenderCite(cite *reference.Cite) string {
	ref, ok := r.engine.Reference(cite.RefID)
	if !ok {
		r.logger.Warn("cite references unknown reference; rendering placeholder",
			"cite_id", cite.ID, "ref_id", cite.RefID)
		return "???"
	}
	ctx := &eval.CiteContext{
		Reference:      ref,
		Cite:           cite,
		Style:          r.style,
		Locale:         r.locale,
		Position:       r.positions[cite.ID],
		CitationNumber: r.citationNumbers[cite.RefID],
		YearSuffix:     r.yearSuffixes[cite.RefID],
	}
	id, arena, _ := r.engine.Render(ctx)
	w := r.newWriter()
	output.WriteTree(w, arena, id)
	return r.finish(w.String())
}

// RenderBibliographyEntry renders one reference's cs:bibliography entry
// at the given disambiguation pass, plus whatever year suffix the
// reference was allocated (entries don't re-run the escalation
// themselves).
func (r *Renderer) RenderBibliographyEntry(ref *reference.Reference, pass eval.DisambPass) string {
	if r.style == nil || r.style.Bibliography == nil {
		return ""
	}
	arena := ir.NewArena()
	ctx := &eval.CiteContext{
		Reference:      ref,
		Style:          r.style,
		Locale:         r.locale,
		InBibliography: true,
		DisambPass:     pass,
		CitationNumber: r.citationNumbers[ref.ID],
		BibNumber:      r.citationNumbers[ref.ID],
		YearSuffix:     r.yearSuffixes[ref.ID],
	}
	layout := r.style.Bibliography
	id, _ := eval.EvalSeq(ctx, arena, layout.Layout, "", layout.LayoutFormatting, layout.LayoutAffixes, style.DisplayNone)
	w := r.newWriter()
	output.WriteTree(w, arena, id)
	return r.finish(w.String())
}

// finish applies locale-level post-processing to a fully serialized
// render. Currently just spec.md §6.5's punctuation-in-quote movement,
// gated on the merged locale's punctuation-in-quote option.
func (r *Renderer) finish(s string) string {
	if r.locale != nil && r.locale.Options.PunctuationInQuote {
		return output.MovePunctuationInQuotes(s)
	}
	return s
}

// SortedRefIDs implements spec.md §4.10's "authoritative bibliography
// order": a stable multi-key sort over refs using the style's
// cs:bibliography/cs:sort keys, each evaluated via eval.SortKeyText.
func SortedRefIDs(st *style.Style, loc *locale.Locale, refs []*reference.Reference) []string {
	ids := make([]string, len(refs))
	for i, r := range refs {
		ids[i] = r.ID
	}
	if st == nil || st.Bibliography == nil || st.Bibliography.Sort == nil {
		return ids
	}
	keys := st.Bibliography.Sort.Keys
	byID := make(map[string]*reference.Reference, len(refs))
	for _, r := range refs {
		byID[r.ID] = r
	}

	sort.SliceStable(ids, func(i, j int) bool {
		ri, rj := byID[ids[i]], byID[ids[j]]
		for _, k := range keys {
			ctx := &eval.CiteContext{Style: st, Locale: loc}
			a := eval.SortKeyText(ctx, ri, k)
			b := eval.SortKeyText(ctx, rj, k)
			if a == b {
				continue
			}
			if k.Ascending {
				return a < b
			}
			return a > b
		}
		return false
	})
	return ids
}
