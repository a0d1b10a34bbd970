package output

import (
	"strings"

	"github.com/jschaf/citeproc/style"
)

// rtfWriter renders format stacking as RTF control words
// (\b/\i/\scaps/\ul/\super/\sub); of the display modes only block becomes
// a paragraph break (\par), since RTF has no block-element concept
// comparable to HTML's <div>.
type rtfWriter struct {
	b strings.Builder
}

func newRTFWriter() *rtfWriter {
	return &rtfWriter{}
}

var rtfReplacer = strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`)

func (w *rtfWriter) Text(text string, f style.Formatting) {
	controls := w.openControls(f)
	for _, c := range controls {
		w.b.WriteString(c)
	}
	w.b.WriteString(rtfReplacer.Replace(text))
	if len(controls) > 0 {
		w.b.WriteString(`\plain `)
	}
}

func (w *rtfWriter) Affix(s string) {
	w.b.WriteString(rtfReplacer.Replace(s))
}

func (w *rtfWriter) OpenFormat(f style.Formatting) {
	for _, c := range w.openControls(f) {
		w.b.WriteString(c)
	}
}

func (w *rtfWriter) CloseFormat(f style.Formatting) {
	if len(w.openControls(f)) > 0 {
		w.b.WriteString(`\plain `)
	}
}

// openControls returns the RTF control words f's set fields turn on.
// \plain resets every prior control word, so callers close a whole group
// of controls with a single \plain rather than one control word per open.
func (w *rtfWriter) openControls(f style.Formatting) []string {
	var out []string
	if f.FontStyle != nil && *f.FontStyle != style.FontStyleNormal {
		out = append(out, `\i `)
	}
	if f.FontWeight != nil {
		switch *f.FontWeight {
		case style.FontWeightBold:
			out = append(out, `\b `)
		case style.FontWeightLight:
			// No RTF control word for a "light" weight; left unstyled.
		}
	}
	if f.FontVariant != nil && *f.FontVariant == style.FontVariantSmallCaps {
		out = append(out, `\scaps `)
	}
	if f.TextDecoration != nil && *f.TextDecoration == style.TextDecorationUnderline {
		out = append(out, `\ul `)
	}
	if f.VerticalAlignment != nil {
		switch *f.VerticalAlignment {
		case style.VerticalAlignmentSuperscript:
			out = append(out, `\super `)
		case style.VerticalAlignmentSubscript:
			out = append(out, `\sub `)
		}
	}
	return out
}

// Link appends an RTF hyperlink field (\field{\*\fldinst HYPERLINK "url"}
// {\fldrslt text}), with f's formatting controls applied inside \fldrslt so
// the visible text carries them.
func (w *rtfWriter) Link(text, url string, f style.Formatting) {
	w.b.WriteString(`{\field{\*\fldinst HYPERLINK "`)
	w.b.WriteString(rtfReplacer.Replace(url))
	w.b.WriteString(`"}{\fldrslt `)
	controls := w.openControls(f)
	for _, c := range controls {
		w.b.WriteString(c)
	}
	w.b.WriteString(rtfReplacer.Replace(text))
	if len(controls) > 0 {
		w.b.WriteString(`\plain `)
	}
	w.b.WriteString(`}}`)
}

func (w *rtfWriter) OpenDisplay(d style.DisplayMode) {
	if d == style.DisplayBlock {
		w.b.WriteString(`\par `)
	}
}

func (w *rtfWriter) CloseDisplay(style.DisplayMode) {}

func (w *rtfWriter) String() string { return w.b.String() }
