package eval

import (
	"strings"

	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/locale"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

// evalNames implements spec.md §4.6: resolve the listed name variables
// (collapsing editor+translator when identical and the locale defines the
// combined term), fall back to cs:substitute when every variable is empty,
// otherwise render the person-name list per cs:name's rules and append
// cs:label.
func evalNames(ctx *CiteContext, arena *Arena, ns *style.Names) (ir.NodeID, ir.GroupVars) {
	cfg := ns.Name
	if cfg == nil {
		cfg = inheritedNameConfig(ctx)
	}

	groups, labelVar, vars := resolveNameGroups(ctx, ns.Variables)
	if len(groups) == 0 {
		if ns.Substitute != nil {
			if id, v := evalSubstitute(ctx, arena, ns.Substitute); !isEmptyNode(arena, id) {
				return id, v
			}
		}
		return emptyRendered(arena)
	}

	cfg = widenForDisambiguation(ctx, cfg)

	var rendered []string
	for _, g := range groups {
		if s := renderPersonList(ctx, g, cfg); s != "" {
			rendered = append(rendered, s)
		}
	}
	text := strings.Join(rendered, string(ns.Delimiter))

	if ns.Label != nil && labelVar != "" {
		if lbl := renderNamesLabel(ctx, ns.Label, labelVar, totalCount(groups)); lbl != "" {
			text += lbl
		}
	}
	if text == "" {
		return emptyRendered(arena)
	}
	return renderedNameList(arena, ns.Affixes.Prefix+text+ns.Affixes.Suffix, vars, ns.Formatting)
}

// renderedNameList wraps a fully-rendered names block as a KindName IR
// node rather than KindRendered, so disambiguation can recognize and
// re-enter it later (spec.md GLOSSARY: NameIR is "re-entrant during
// disambiguation").
func renderedNameList(arena *Arena, text string, vars ir.GroupVars, f style.Formatting) (ir.NodeID, ir.GroupVars) {
	if text == "" {
		return emptyRendered(arena)
	}
	id := arena.New(ir.Node{
		Kind: ir.KindName,
		Vars: vars,
		Name: &ir.NameIR{Rendered: &ir.Edge{Text: text, Formatting: f}},
	})
	return id, vars
}

func evalSubstitute(ctx *CiteContext, arena *Arena, s *style.Substitute) (ir.NodeID, ir.GroupVars) {
	for _, el := range s.Elements {
		id, v := Eval(ctx, arena, el)
		if !isEmptyNode(arena, id) {
			return id, v
		}
	}
	return emptyRendered(arena)
}

// widenForDisambiguation returns cfg unchanged at DisambPassNone. At
// DisambPassAddNames and beyond it disables et-al truncation (spec.md
// §4.7 pass 1: "widen the Names-block bump"); at DisambPassAddGivenName
// and beyond it additionally forces full given names instead of
// initials (pass 2). It never mutates cfg itself.
func widenForDisambiguation(ctx *CiteContext, cfg *style.Name) *style.Name {
	if ctx.DisambPass < DisambPassAddNames {
		return cfg
	}
	widened := *cfg
	widened.EtAlMin = 0
	widened.EtAlUseFirst = 0
	if ctx.DisambPass >= DisambPassAddGivenName {
		widened.Initialize = style.InitializeFalse
	}
	return &widened
}

func inheritedNameConfig(ctx *CiteContext) *style.Name {
	if ctx.NamesInheritance != nil {
		return ctx.NamesInheritance
	}
	return &style.Name{}
}

// resolveNameGroups returns one []reference.Name per rendered group
// (normally one group per variable, collapsed to a single group when
// editor and translator hold identical lists and the locale has an
// "editortranslator" term), plus the variable whose label term should be
// used and the combined GroupVars.
func resolveNameGroups(ctx *CiteContext, variables []reference.NameVariable) ([][]reference.Name, reference.NameVariable, ir.GroupVars) {
	_, hasEtTerm := lookupSimpleTerm(ctx.Locale, "editortranslator", locale.TermFormLong)
	if containsBoth(variables, reference.NameEditor, reference.NameTranslator) && editorTranslatorCollapses(ctx, hasEtTerm) {
		editors, _ := getNames(ctx, reference.NameEditor)
		return [][]reference.Name{editors}, "editortranslator", ir.GroupVarsImportant
	}

	var groups [][]reference.Name
	vars := ir.GroupVarsPlain
	var labelVar reference.NameVariable
	for _, v := range variables {
		names, ok := getNames(ctx, v)
		if ok && len(names) > 0 {
			groups = append(groups, names)
			if labelVar == "" {
				labelVar = v
			}
			vars = vars.Combine(ir.GroupVarsImportant)
		} else {
			vars = vars.Combine(ir.GroupVarsMissing)
		}
	}
	return groups, labelVar, vars
}

func containsBoth(vs []reference.NameVariable, a, b reference.NameVariable) bool {
	var hasA, hasB bool
	for _, v := range vs {
		hasA = hasA || v == a
		hasB = hasB || v == b
	}
	return hasA && hasB
}

func totalCount(groups [][]reference.Name) int {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	return n
}

func renderNamesLabel(ctx *CiteContext, l *style.NameLabel, v reference.NameVariable, count int) string {
	form := locale.TermFormLong
	if l.Form == style.VariableFormShort {
		form = locale.TermFormShort
	}
	term, ok := lookupSimpleTerm(ctx.Locale, string(v), form)
	if !ok {
		return ""
	}
	plural := locale.PluralFormSingular
	switch l.Plural {
	case style.PluralAlways:
		plural = locale.PluralFormPlural
	case style.PluralNever:
	default:
		if count > 1 {
			plural = locale.PluralFormPlural
		}
	}
	text := term.Get(plural)
	if l.StripPeriods {
		text = strings.ReplaceAll(text, ".", "")
	}
	text = applyTextCase(text, l.TextCase)
	return l.Affixes.Prefix + text + l.Affixes.Suffix
}

// renderPersonList implements cs:name: per-person display formatting,
// given-name initialization, et-al truncation, and "and"/delimiter
// placement (spec.md §4.6).
func renderPersonList(ctx *CiteContext, names []reference.Name, cfg *style.Name) string {
	etAlMin := cfg.EtAlMin
	useFirst := cfg.EtAlUseFirst
	if useFirst <= 0 {
		useFirst = 1
	}
	truncated := false
	shown := names
	if etAlMin > 0 && len(names) >= etAlMin {
		if useFirst < len(names) {
			shown = names[:useFirst]
			truncated = true
		}
	}

	formatted := make([]string, len(shown))
	for i, n := range shown {
		formatted[i] = formatOneName(n, cfg)
	}

	delim := string(cfg.Delimiter)
	if delim == "" {
		delim = ", "
	}
	var b strings.Builder
	for i, s := range formatted {
		if i == 0 {
			b.WriteString(s)
			continue
		}
		last := i == len(formatted)-1 && !truncated
		if last && cfg.And != "" {
			if shouldPrecedeDelimiter(cfg.DelimiterPrecedesLast, len(formatted)) {
				b.WriteString(delim)
			} else {
				b.WriteString(" ")
			}
			b.WriteString(andToken(ctx, cfg.And))
			b.WriteString(" ")
		} else {
			b.WriteString(delim)
		}
		b.WriteString(s)
	}

	if truncated {
		etAl, ok := lookupSimpleTerm(ctx.Locale, "et-al", locale.TermFormLong)
		suffix := "et al."
		if ok {
			suffix = etAl.Get(locale.PluralFormSingular)
		}
		if shouldPrecedeDelimiter(cfg.DelimiterPrecedesEtAl, len(formatted)) || len(formatted) == 0 {
			b.WriteString(delim)
		} else {
			b.WriteString(" ")
		}
		b.WriteString(suffix)
	}
	return b.String()
}

func shouldPrecedeDelimiter(p style.DelimiterPrecedes, count int) bool {
	switch p {
	case style.DelimiterPrecedesAlways:
		return true
	case style.DelimiterPrecedesNever:
		return false
	case style.DelimiterPrecedesAfterInvertedName:
		return false
	default: // Contextual: only once the preceding names are themselves
		// delimiter-separated, i.e. three or more names total.
		return count > 2
	}
}

func andToken(ctx *CiteContext, and style.Delimiter) string {
	switch and {
	case "text":
		if t, ok := lookupSimpleTerm(ctx.Locale, "and", locale.TermFormLong); ok {
			return t.Get(locale.PluralFormSingular)
		}
		return "and"
	case "symbol":
		return "&"
	default:
		return string(and)
	}
}

// formatOneName applies display order (sort order vs. natural order),
// particle placement, and given-name initialization to a single person
// name (spec.md §4.6).
func formatOneName(n reference.Name, cfg *style.Name) string {
	if n.IsLiteral {
		return n.Literal
	}
	given := n.Given
	if cfg.Initialize == style.InitializeTrue {
		given = initializeGiven(given, cfg.InitializeWith)
	}

	family := familyWithParticles(n, cfg.DemoteNonDroppingParticle, true)

	sortOrder := cfg.NameAsSortOrder != style.NameAsSortOrderNone
	if !sortOrder && cfg.Form == style.NameFormShort {
		return family
	}
	if sortOrder {
		sep := cfg.SortSeparator
		if sep == "" {
			sep = ", "
		}
		if given == "" {
			return family
		}
		return family + sep + given
	}
	// Natural order: dropping particle stays attached to the family side,
	// non-dropping particle stays in front unless demoted to sort-only.
	fam := family
	if given == "" {
		return fam
	}
	return given + " " + fam
}

func familyWithParticles(n reference.Name, demote style.DemoteNonDroppingParticle, display bool) string {
	var b strings.Builder
	demoted := display && demote == style.DemoteNonDroppingParticleDisplayAndSort
	if n.NonDroppingParticle != "" && !demoted {
		b.WriteString(n.NonDroppingParticle)
		b.WriteString(" ")
	}
	b.WriteString(n.Family)
	if n.NonDroppingParticle != "" && demoted {
		b.WriteString(" ")
		b.WriteString(n.NonDroppingParticle)
	}
	if n.DroppingParticle != "" {
		b.WriteString(" ")
		b.WriteString(n.DroppingParticle)
	}
	if n.Suffix != "" {
		if n.CommaSuffix {
			b.WriteString(", ")
		} else {
			b.WriteString(" ")
		}
		b.WriteString(n.Suffix)
	}
	return b.String()
}

// initializeGiven reduces a given name's space-separated words to their
// first letter plus initializeWith (e.g. "John Ronald" -> "J.R.").
func initializeGiven(given, initializeWith string) string {
	if given == "" {
		return ""
	}
	words := strings.Fields(given)
	parts := make([]string, len(words))
	for i, w := range words {
		r := []rune(w)
		parts[i] = strings.ToUpper(string(r[0])) + initializeWith
	}
	return strings.Join(parts, "")
}
