// Package citeproc is the external interface spec.md §6 describes: a
// single Processor wrapping style parsing, locale resolution, reference
// and cluster state, and the incremental rendering pipeline built up by
// the style, locale, reference, ir, eval, disamb, incremental, cluster,
// and output packages. Processor is the only type most callers need.
package citeproc

import (
	cryptorand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/jschaf/citeproc/bibtex"
	"github.com/jschaf/citeproc/cluster"
	"github.com/jschaf/citeproc/disamb"
	"github.com/jschaf/citeproc/eval"
	"github.com/jschaf/citeproc/incremental"
	"github.com/jschaf/citeproc/locale"
	"github.com/jschaf/citeproc/output"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

// UncitedMode selects which never-cited references IncludeUncited adds to
// the bibliography (spec.md §6.6's include_uncited).
type UncitedMode int

const (
	// IncludeUncitedNone is the default: the bibliography lists only
	// references that appear in at least one cluster.
	IncludeUncitedNone UncitedMode = iota
	// IncludeUncitedAll adds every reference in the library, cited or not.
	IncludeUncitedAll
	// IncludeUncitedSpecific adds exactly the ids passed to IncludeUncited.
	IncludeUncitedSpecific
)

// ClusterPosition places one cluster in document order for SetClusterOrder,
// mirroring spec.md §6.3's ClusterPosition: an empty ID marks the preview
// slot PreviewCitationCluster uses to splice a not-yet-persisted cluster
// into its neighbors without mutating them.
type ClusterPosition struct {
	ID      string
	Note    int
	HasNote bool
}

// ClusterUpdate is one cluster whose rendered text changed since the last
// BatchedUpdates call.
type ClusterUpdate struct {
	ClusterID string
	Text      string
}

// BibliographyEntry is one rendered cs:bibliography entry alongside the
// reference it came from.
type BibliographyEntry struct {
	RefID string
	Text  string
}

// BibliographyMeta is the bibliography-wide metadata spec.md §6.6's
// bibliography_meta exposes, read from cs:bibliography's own attributes
// rather than per entry.
type BibliographyMeta struct {
	EntryCount       int
	HangingIndent    bool
	SecondFieldAlign string
	LineSpacing      int
	EntrySpacing     int
}

// ErrDidNotSupplyZeroPosition reports that a preview render was requested
// without a note number, for a note-based style that needs one to place
// the preview relative to its neighbors (spec.md §7's
// DidNotSupplyZeroPosition, preview-only).
var ErrDidNotSupplyZeroPosition = errors.New("citeproc: preview citation requires a note position for a note-based style")

// NonExistentClusterError reports that SetClusterOrder or GetCluster named
// a cluster id this Processor has never seen via InsertCluster.
type NonExistentClusterError struct{ ID string }

func (e *NonExistentClusterError) Error() string {
	return fmt.Sprintf("citeproc: no such cluster %q", e.ID)
}

// NonMonotonicNoteNumberError reports that SetClusterOrder's note numbers
// decreased between two positions, violating spec.md §8's "Note nn
// non-decreasing" invariant.
type NonMonotonicNoteNumberError struct{ Note int }

func (e *NonMonotonicNoteNumberError) Error() string {
	return fmt.Sprintf("citeproc: note number %d is not monotonically increasing", e.Note)
}

// Processor is the single-writer, many-reader citation engine spec.md §5
// describes: one style, one resolved locale chain, a reference library, an
// ordered list of clusters, and the incremental query graph memoizing
// everything derived from them. All exported methods are safe for
// concurrent use; mutating methods take Processor's lock for their whole
// duration, matching §5's "successive writes linearise" guarantee.
type Processor struct {
	mu sync.RWMutex

	style *style.Style
	lang  locale.Lang
	locl  *locale.Locale

	fetcher            locale.Fetcher
	format             output.Format
	formatOpts         []output.Option
	logger             *slog.Logger
	bibliographyNoSort bool
	testMode           bool
	testModeCounter    int

	refs     map[string]*reference.Reference
	refOrder []string

	uncitedMode UncitedMode
	uncitedIDs  map[string]bool

	clusters     map[string]*reference.Cluster
	clusterOrder []string
	snapshots    map[string]string

	engine   *disamb.Engine
	graph    *incremental.Graph
	renderer *cluster.Renderer

	// libraryID keys incremental's library-wide nodes (sorted_refs,
	// year_suffixes); fixed since one Processor renders exactly one
	// reference library.
	libraryID string
}

// Option configures a Processor built by New, following the same
// functional-options idiom as bibtex.Option and output.Option.
type Option func(*Processor)

// WithFetcher supplies the locale XML source spec.md §6.4 describes. A
// Processor with no fetcher can still resolve en-US via the bundled
// locale; any other language degrades to en-US only.
func WithFetcher(f locale.Fetcher) Option {
	return func(p *Processor) { p.fetcher = f }
}

// WithLocaleOverride pins the render language instead of reading it from
// the style's default-locale attribute (spec.md §6.1's locale_override).
func WithLocaleOverride(lang string) Option {
	return func(p *Processor) {
		if l, err := locale.ParseLang(lang); err == nil {
			p.lang = l
		}
	}
}

// WithFormat selects the output format (and any per-format options, e.g.
// output.WithBoldTag) every render call serializes through (spec.md §6.5).
func WithFormat(format output.Format, opts ...output.Option) Option {
	return func(p *Processor) {
		p.format = format
		p.formatOpts = opts
	}
}

// WithLogger overrides the logger used for non-aborting warnings (a
// locale fetch failure, an unknown reference, a disambiguation pass that
// never reached uniqueness). Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

// WithBibliographyNoSort disables cs:bibliography/cs:sort, keeping
// reference-insertion order instead (spec.md §6.1's
// bibliography_no_sort, used by hosts that pre-sort themselves).
func WithBibliographyNoSort(v bool) Option {
	return func(p *Processor) { p.bibliographyNoSort = v }
}

// WithTestMode switches RandomClusterID to a deterministic counter instead
// of reading crypto/rand, so tests get reproducible ids
// (spec.md §6.1's test_mode).
func WithTestMode(v bool) Option {
	return func(p *Processor) { p.testMode = v }
}

// New builds a Processor with no style loaded yet; call SetStyleText
// before rendering anything, matching bibtex.New's construct-then-parse
// shape.
func New(opts ...Option) *Processor {
	p := &Processor{
		format:     output.FormatPlain,
		logger:     slog.Default(),
		refs:       make(map[string]*reference.Reference),
		uncitedIDs: make(map[string]bool),
		clusters:   make(map[string]*reference.Cluster),
		snapshots:  make(map[string]string),
		graph:      incremental.NewGraph(),
		libraryID:  "default",
	}
	for _, opt := range opts {
		opt(p)
	}
	p.resolveLocale()
	p.rebuildEngine()
	return p
}

// SetStyleText parses xml as a CSL style and installs it, re-resolving the
// locale chain and rebuilding the disambiguation engine against it
// (spec.md §6.6's set_style_text). A dependent style
// (style.ErrorDependentStyle) is returned as-is — the host is expected to
// load the named independent parent and call SetStyleText again with
// that document instead.
func (p *Processor) SetStyleText(xml []byte) error {
	st, err := style.Parse(xml)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.style = st
	p.resolveLocale()
	p.rebuildEngine()
	return nil
}

// resolveLocale implements spec.md §4.2's merged_locale(lang): walk the
// five-link fallback chain, resolve whatever each link can (an inline
// <cs:locale> override, a fetched or bundled locale file), and merge in
// most-specific-first order. A fetch or parse failure degrades that one
// link to absent rather than aborting the whole merge (spec.md §7's
// LocaleFetchError).
func (p *Processor) resolveLocale() {
	lang := p.lang
	if lang == (locale.Lang{}) && p.style != nil && p.style.DefaultLocale != "" {
		if parsed, err := locale.ParseLang(p.style.DefaultLocale); err == nil {
			lang = parsed
		}
	}
	if lang == (locale.Lang{}) {
		lang = locale.EnUS
	}
	p.lang = lang

	chain := locale.FallbackChain(lang)
	resolved := make([]*locale.Locale, len(chain))
	for i, src := range chain {
		loc, err := p.resolveLocaleSource(src)
		if err != nil {
			p.logger.Warn("locale fetch failed, degrading fallback link to empty",
				"lang", src.Lang.String(), "inline", src.Inline, "err", err)
			continue
		}
		resolved[i] = loc
	}
	p.locl = locale.MergeChain(lang, resolved...)
}

// resolveLocaleSource resolves one link of the fallback chain. Inline
// links always resolve to nil: style.LocaleOverrides exists on
// *style.Style but is never populated by style/parse.go (<cs:locale>
// blocks embedded in a style are skipped by the parser) — see DESIGN.md.
// File links
// are fetched via the configured Fetcher, falling back to the bundled
// en-US text when en-US is requested and either no fetcher is configured
// or the fetcher itself fails on that last link.
func (p *Processor) resolveLocaleSource(src locale.Source) (*locale.Locale, error) {
	if src.Inline || !src.HasLang {
		return nil, nil
	}
	var xml string
	if p.fetcher != nil {
		fetched, err := p.fetcher.Fetch(src.Lang)
		switch {
		case err == nil:
			xml = fetched
		case src.Lang == locale.EnUS:
			xml = locale.BundledEnUS()
		default:
			return nil, err
		}
	} else if src.Lang == locale.EnUS {
		xml = locale.BundledEnUS()
	} else {
		return nil, nil
	}
	return locale.Parse([]byte(xml))
}

// rebuildEngine reconstructs the disambiguation engine and incremental
// graph from scratch. Called whenever the style or locale changes, since
// nearly every cached node (ref_dfa and everything downstream of it)
// depends on one or both — a documented simplification against
// incremental's per-node invalidation, which has no cheaper way to
// invalidate "every ref_dfa" than dropping the whole graph.
func (p *Processor) rebuildEngine() {
	p.engine = disamb.NewEngine(p.style, p.locl, p.refsSlice())
	p.graph = incremental.NewGraph()
	p.rebuildRenderer()
}

// rebuildRenderer rebuilds the cluster.Renderer (cite position and
// citation-number assignment depend on the full, ordered cluster list)
// and recomputes the library-wide year-suffix allocation against it.
func (p *Processor) rebuildRenderer() {
	clusters := p.orderedClusters()
	p.renderer = cluster.NewRenderer(p.style, p.locl, p.engine, clusters,
		cluster.WithOutputFormat(p.format, p.formatOpts...),
		cluster.WithLogger(p.logger))

	sorted, err := incremental.SortedRefs(p.graph, p.libraryID, p.style, p.locl, p.refsSlice())
	if err != nil {
		return
	}
	suffixes, err := incremental.YearSuffixes(p.graph, p.libraryID, p.engine, sorted)
	if err != nil {
		return
	}
	p.renderer.SetYearSuffixes(suffixes)
}

func (p *Processor) refsSlice() []*reference.Reference {
	refs := make([]*reference.Reference, 0, len(p.refOrder))
	for _, id := range p.refOrder {
		refs = append(refs, p.refs[id])
	}
	return refs
}

func (p *Processor) orderedClusters() []cluster.Cluster {
	out := make([]cluster.Cluster, 0, len(p.clusterOrder))
	for _, id := range p.clusterOrder {
		if c, ok := p.clusters[id]; ok {
			out = append(out, toInternalCluster(c))
		}
	}
	return out
}

// toInternalCluster converts spec.md §6.3's external Cluster shape
// (reference.Cluster: a value-typed Cites slice plus a ClusterNumber) to
// this package's working cluster.Cluster (a pointer-typed Cites slice
// plus a plain note number), the shape Positions/CitationNumbers/Renderer
// were built against before the external shape existed.
func toInternalCluster(c *reference.Cluster) cluster.Cluster {
	cites := make([]*reference.Cite, len(c.Cites))
	for i := range c.Cites {
		cites[i] = &c.Cites[i]
	}
	note := 0
	if c.Number.Kind == reference.ClusterNoteSingle || c.Number.Kind == reference.ClusterNoteMulti {
		note = c.Number.Note
	}
	return cluster.Cluster{ID: c.ID, Cites: cites, NoteNumber: note}
}

// ResetReferences replaces the entire reference library and rebuilds the
// disambiguation engine from scratch (spec.md §6.6's reset_references).
func (p *Processor) ResetReferences(refs []*reference.Reference) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refs = make(map[string]*reference.Reference, len(refs))
	p.refOrder = p.refOrder[:0]
	for _, r := range refs {
		p.refs[r.ID] = r
		p.refOrder = append(p.refOrder, r.ID)
	}
	p.rebuildEngine()
}

// ExtendReferences adds new references and overwrites existing ones by
// id, without rebuilding references the caller didn't touch (spec.md
// §6.6's extend_references). disamb.Engine.Invalidate upserts a single
// reference's cached Dfa in place, so — unlike RemoveReference — adding
// or updating references never needs a whole-engine rebuild.
func (p *Processor) ExtendReferences(refs []*reference.Reference) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range refs {
		if _, exists := p.refs[r.ID]; !exists {
			p.refOrder = append(p.refOrder, r.ID)
		}
		p.refs[r.ID] = r
		p.engine.Invalidate(r)
		p.graph.Invalidate(incremental.RefDfaKey(r.ID))
	}
	p.rebuildRenderer()
}

// InsertReference adds or updates a single reference (spec.md §6.6's
// insert_reference).
func (p *Processor) InsertReference(ref *reference.Reference) {
	p.ExtendReferences([]*reference.Reference{ref})
}

// LoadBibTeX parses a BibTeX/Biblatex source document and upserts every
// resolved entry into the library via ExtendReferences, so a .bib file and
// JSON-shaped references converge on the same reference.Reference model
// (spec.md's supplemented BibTeX ingestion). Biber does the lexing,
// parsing, and @string-abbreviation resolution (crossref stays a plain
// field and is not merged); bibtex.ToReference
// does the field-by-field conversion into this package's variable names.
// An io.Reader lets callers stream a .bib file without buffering it
// themselves first.
func (p *Processor) LoadBibTeX(r io.Reader) error {
	biber := bibtex.New()
	file, err := biber.Parse(r)
	if err != nil {
		return fmt.Errorf("parse bibtex: %w", err)
	}
	entries, err := biber.Resolve(file)
	if err != nil {
		return fmt.Errorf("resolve bibtex: %w", err)
	}
	refs := make([]*reference.Reference, len(entries))
	for i, e := range entries {
		refs[i] = bibtex.ToReference(e)
	}
	p.ExtendReferences(refs)
	return nil
}

// RemoveReference drops a reference from the library (spec.md §6.6's
// remove_reference). disamb.Engine exposes no way to drop a single cached
// Dfa from outside the package, so removal rebuilds the whole engine —
// documented simplification, the cost of a reference deletion rather
// than an addition or edit.
func (p *Processor) RemoveReference(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.refs[id]; !ok {
		return
	}
	delete(p.refs, id)
	for i, existing := range p.refOrder {
		if existing == id {
			p.refOrder = append(p.refOrder[:i], p.refOrder[i+1:]...)
			break
		}
	}
	p.rebuildEngine()
}

// IncludeUncited controls which never-cited references GetBibliography
// lists (spec.md §6.6's include_uncited). ids is only read when mode is
// IncludeUncitedSpecific.
func (p *Processor) IncludeUncited(mode UncitedMode, ids []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uncitedMode = mode
	p.uncitedIDs = make(map[string]bool, len(ids))
	for _, id := range ids {
		p.uncitedIDs[id] = true
	}
}

// InitClusters replaces the whole cluster set and its document order in
// one call (spec.md §6.6's init_clusters): clusters are installed content-
// first, then ordered exactly as given.
func (p *Processor) InitClusters(clusters []*reference.Cluster) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clusters = make(map[string]*reference.Cluster, len(clusters))
	p.clusterOrder = p.clusterOrder[:0]
	for _, c := range clusters {
		p.clusters[c.ID] = c
		p.clusterOrder = append(p.clusterOrder, c.ID)
	}
	p.invalidatePositionDependents()
	p.rebuildRenderer()
}

// InsertCluster upserts a cluster's content by id (spec.md §6.6's
// insert_cluster). Replacing an existing cluster keeps its place in the
// document order; a new id is appended to the end of the order, so it
// takes part in GetBibliography/BatchedUpdates right away, and
// SetClusterOrder can move it later.
func (p *Processor) InsertCluster(c *reference.Cluster) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.clusters[c.ID]; !exists {
		p.clusterOrder = append(p.clusterOrder, c.ID)
	}
	p.clusters[c.ID] = c
	p.invalidatePositionDependents()
	p.rebuildRenderer()
}

// RemoveCluster drops a cluster from both the content map and the
// document order (spec.md §6.6's remove_cluster).
func (p *Processor) RemoveCluster(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.clusters, id)
	delete(p.snapshots, id)
	for i, existing := range p.clusterOrder {
		if existing == id {
			p.clusterOrder = append(p.clusterOrder[:i], p.clusterOrder[i+1:]...)
			break
		}
	}
	p.invalidatePositionDependents()
	p.rebuildRenderer()
}

// SetClusterOrder installs the document order cite position/ibid
// inference and citation numbering are computed over (spec.md §6.6's
// set_cluster_order). Every position must name an already-inserted
// cluster, and note numbers (for note-based styles) must be
// non-decreasing — spec.md §8's ordering invariant.
func (p *Processor) SetClusterOrder(positions []ClusterPosition) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	order := make([]string, 0, len(positions))
	lastNote := -1
	for _, pos := range positions {
		if pos.ID == "" {
			return ErrDidNotSupplyZeroPosition
		}
		if _, ok := p.clusters[pos.ID]; !ok {
			return &NonExistentClusterError{ID: pos.ID}
		}
		if pos.HasNote {
			if pos.Note < lastNote {
				return &NonMonotonicNoteNumberError{Note: pos.Note}
			}
			lastNote = pos.Note
		}
		order = append(order, pos.ID)
	}
	p.clusterOrder = order
	p.invalidatePositionDependents()
	p.rebuildRenderer()
	return nil
}

// invalidatePositionDependents drops every currently-known cluster's and
// cite's cached render, for operations that change cluster order or
// membership. A cite's eval.Position is an argument baked directly into
// its CiteContext, not itself a graph node — incremental's dependency
// cascade only follows ref_dfa edges, so a reorder that changes which
// cite is "ibid" of which never invalidates ir_gen0/ir_fully_disambiguated
// on its own the way a reference edit does. Invalidating every cite
// currently in p.clusters is conservative (it also drops cites whose
// position didn't actually change) but correctness-safe and cheap
// relative to rebuildEngine's whole-graph rebuild; a removed cluster's
// now-orphaned cache entries are simply never read again rather than
// being reclaimed, a documented, bounded memory trade-off rather than a
// correctness gap.
func (p *Processor) invalidatePositionDependents() {
	for _, c := range p.clusters {
		p.graph.Invalidate(incremental.BuiltClusterKey(c.ID))
		for _, cite := range c.Cites {
			p.graph.Invalidate(incremental.IrGen0Key(cite.ID))
			p.graph.Invalidate(incremental.IrFullyDisambKey(cite.ID))
		}
	}
}

// GetCluster returns one cluster's rendered text, computing (and caching,
// via incremental's built_cluster node) it if needed (spec.md §6.6's
// get_cluster).
func (p *Processor) GetCluster(id string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.clusters[id]
	if !ok {
		return "", &NonExistentClusterError{ID: id}
	}
	return incremental.BuiltCluster(p.graph, p.renderer, toInternalCluster(c))
}

// BuiltCluster is an alias for GetCluster: spec.md §6.6 lists get_cluster
// and built_cluster side by side as the read and the (identical, in this
// implementation) cached-build accessor, since incremental.BuiltCluster
// already makes every call cache-aware.
func (p *Processor) BuiltCluster(id string) (string, error) {
	return p.GetCluster(id)
}

// PreviewCitationCluster renders c as if it were inserted at pos, without
// persisting it: a temporary renderer is built over the existing cluster
// sequence with c spliced in at pos's neighbor, so ibid/position
// inference accounts for its surroundings the same way a real insert
// would (spec.md §6.6's preview_citation_cluster). pos must name an
// existing neighbor or carry an explicit note number — ErrDidNotSupplyZeroPosition
// otherwise, mirroring spec.md §7's preview-only error.
func (p *Processor) PreviewCitationCluster(c *reference.Cluster, pos ClusterPosition) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if pos.ID == "" && !pos.HasNote {
		return "", ErrDidNotSupplyZeroPosition
	}

	existing := p.orderedClusters()
	idx := len(existing)
	for i, c := range existing {
		if c.ID == pos.ID {
			idx = i
			break
		}
	}
	preview := toInternalCluster(c)
	spliced := make([]cluster.Cluster, 0, len(existing)+1)
	spliced = append(spliced, existing[:idx]...)
	spliced = append(spliced, preview)
	spliced = append(spliced, existing[idx:]...)

	r := cluster.NewRenderer(p.style, p.locl, p.engine, spliced,
		cluster.WithOutputFormat(p.format, p.formatOpts...),
		cluster.WithLogger(p.logger))
	sorted, err := incremental.SortedRefs(p.graph, p.libraryID, p.style, p.locl, p.refsSlice())
	if err == nil {
		if suffixes, err := incremental.YearSuffixes(p.graph, p.libraryID, p.engine, sorted); err == nil {
			r.SetYearSuffixes(suffixes)
		}
	}
	return r.RenderCluster(preview), nil
}

// BatchedUpdates returns every cluster whose rendered text differs from
// the last time BatchedUpdates was called, per spec.md §5's "a previous-
// render snapshot per cluster is maintained under a mutex" and §6.6's
// batched_updates. Snapshots are plain strings, so a `!=` comparison is
// enough; this module's go-cmp usage is concentrated in its test suites,
// where it compares structured values rather than rendered text.
func (p *Processor) BatchedUpdates() []ClusterUpdate {
	p.mu.Lock()
	defer p.mu.Unlock()

	var updates []ClusterUpdate
	seen := make(map[string]bool, len(p.clusterOrder))
	for _, id := range p.clusterOrder {
		c := p.clusters[id]
		seen[id] = true
		text, err := incremental.BuiltCluster(p.graph, p.renderer, toInternalCluster(c))
		if err != nil {
			continue
		}
		if prev, ok := p.snapshots[id]; !ok || prev != text {
			updates = append(updates, ClusterUpdate{ClusterID: id, Text: text})
			p.snapshots[id] = text
		}
	}
	for id := range p.snapshots {
		if !seen[id] {
			delete(p.snapshots, id)
		}
	}
	return updates
}

// bibliographyRefIDs returns, in bibliography order, every reference id
// that belongs in the bibliography: cited at least once, or included by
// IncludeUncited's policy.
func (p *Processor) bibliographyRefIDs() []string {
	included := make(map[string]bool)
	switch p.uncitedMode {
	case IncludeUncitedAll:
		for id := range p.refs {
			included[id] = true
		}
	case IncludeUncitedSpecific:
		for id := range p.uncitedIDs {
			included[id] = true
		}
	}
	for _, c := range p.clusters {
		for _, cite := range c.Cites {
			included[cite.RefID] = true
		}
	}

	var ordered []string
	if p.bibliographyNoSort {
		ordered = p.refOrder
	} else if sorted, err := incremental.SortedRefs(p.graph, p.libraryID, p.style, p.locl, p.refsSlice()); err == nil {
		ordered = sorted
	} else {
		ordered = p.refOrder
	}

	out := make([]string, 0, len(included))
	for _, id := range ordered {
		if included[id] {
			out = append(out, id)
		}
	}
	return out
}

// GetBibliography renders spec.md §6.6's get_bibliography: one entry per
// included reference, in bibliography order. Every entry renders at
// eval.DisambPassNone plus whatever year suffix that reference was
// allocated — tracking the widest pass any of a reference's own cites
// actually escalated to (so an ambiguous reference's bibliography entry
// could, say, spell out a full given name) isn't implemented; see
// DESIGN.md.
func (p *Processor) GetBibliography() []BibliographyEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ids := p.bibliographyRefIDs()
	entries := make([]BibliographyEntry, 0, len(ids))
	for _, id := range ids {
		ref, ok := p.refs[id]
		if !ok {
			continue
		}
		text, err := incremental.BibItem(p.graph, p.libraryID, p.renderer, ref, eval.DisambPassNone)
		if err != nil {
			continue
		}
		entries = append(entries, BibliographyEntry{RefID: id, Text: text})
	}
	return entries
}

// BibliographyMeta returns the bibliography-wide metadata spec.md §6.6's
// bibliography_meta exposes, read from cs:bibliography's own attributes.
func (p *Processor) BibliographyMeta() BibliographyMeta {
	p.mu.RLock()
	defer p.mu.RUnlock()
	meta := BibliographyMeta{EntryCount: len(p.bibliographyRefIDs())}
	if p.style != nil && p.style.Bibliography != nil {
		b := p.style.Bibliography
		meta.HangingIndent = b.HangingIndent
		meta.SecondFieldAlign = b.SecondFieldAlign
		meta.LineSpacing = b.LineSpacing
		meta.EntrySpacing = b.EntrySpacing
	}
	return meta
}

// RandomClusterID returns a fresh, library-unique cluster id (spec.md
// §6.6's random_cluster_id), a plain random hex string outside test mode.
// In test mode it returns a deterministic, monotonically-numbered id
// instead, so tests stay reproducible (spec.md §6.1's
// test_mode). No pack example wires an id-generation library (no example
// repo imports e.g. google/uuid), so this stays on crypto/rand plus
// encoding/hex — see DESIGN.md.
func (p *Processor) RandomClusterID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.testMode {
		p.testModeCounter++
		return fmt.Sprintf("test-cluster-%d", p.testModeCounter)
	}
	var buf [16]byte
	_, _ = cryptorand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}
