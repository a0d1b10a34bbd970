package eval

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/jschaf/citeproc/ir"
	"github.com/jschaf/citeproc/reference"
	"github.com/jschaf/citeproc/style"
)

// foldSortKey lowercases s and strips combining diacritical marks via NFKD
// decomposition, so "Müller" and "Muller" sort adjacently - spec.md §4.6's
// "Sorted refs" is defined as the authoritative order readers expect,
// which ignores accents a reader's locale may not render distinctly.
func foldSortKey(s string) string {
	s = lowerCaser.String(s)
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// SortKeyText computes the plain-text comparison key spec.md §4.10's
// "authoritative bibliography order" needs for one cs:sort/cs:key applied
// to ref: a macro key renders through the normal element evaluator with
// SortKeyOverride set, a variable key reads the variable directly.
// Formatting/affixes never leak into the result since only Edge.Text is
// read — cs:sort never cares how a key would be displayed, only how it
// compares (CSL's own spec gives sort macros no formatting role).
func SortKeyText(ctx *CiteContext, ref *reference.Reference, key style.SortKey) string {
	sortCtx := *ctx
	sortCtx.Reference = ref
	sortCtx.SortKeyOverride = true

	if key.MacroName != "" {
		if ctx.Style == nil {
			return ""
		}
		macro, ok := ctx.Style.Macro(key.MacroName)
		if !ok {
			return ""
		}
		arena := ir.NewArena()
		id, _ := EvalSeq(&sortCtx, arena, macro.Elements, "", style.Formatting{}, style.Affixes{}, style.DisplayNone)
		var b strings.Builder
		for _, e := range ir.Flatten(arena, id) {
			b.WriteString(e.Text)
		}
		return foldSortKey(b.String())
	}

	switch v := key.Variable.(type) {
	case reference.Variable:
		s, _ := getOrdinary(&sortCtx, v)
		return foldSortKey(s)
	case reference.NumberVariable:
		val, _ := getNumber(&sortCtx, v)
		return val.String()
	case reference.NameVariable:
		names, _ := getNames(&sortCtx, v)
		parts := make([]string, len(names))
		for i, n := range names {
			parts[i] = foldSortKey(n.Family + " " + n.Given)
		}
		return strings.Join(parts, "\x00")
	case reference.DateVariable:
		if ref == nil {
			return ""
		}
		d, ok := ref.Dates[v]
		if !ok {
			return ""
		}
		return dateSortKey(d)
	default:
		return ""
	}
}

// dateSortKey renders a date as a zero-padded, lexically-comparable
// string; the +5000 offset keeps reasonable BC years from going negative
// so plain string comparison still orders correctly.
func dateSortKey(d reference.DateOrRange) string {
	switch d.Kind {
	case reference.DateKindSingle:
		return fmt.Sprintf("%05d%02d%02d", d.Single.Year+5000, d.Single.Month, d.Single.Day)
	case reference.DateKindRange:
		return fmt.Sprintf("%05d%02d%02d", d.RangeFrom.Year+5000, d.RangeFrom.Month, d.RangeFrom.Day)
	default:
		return ""
	}
}
