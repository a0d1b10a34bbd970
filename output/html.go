package output

import (
	"html"
	"strings"

	"github.com/jschaf/citeproc/style"
)

// htmlWriter renders format stacking as nested inline tags and display
// modes as <div> wrappers, matching the citeproc ecosystem's conventional
// csl-* class names so a host stylesheet can target them.
type htmlWriter struct {
	b       strings.Builder
	boldTag string
}

func newHTMLWriter(opts ...Option) *htmlWriter {
	w := &htmlWriter{boldTag: "b"}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// htmlTag is one open/close tag pair, kept separate since an opening tag
// carrying a style="..." attribute closes with just the bare element name.
type htmlTag struct {
	open, close string
}

func (w *htmlWriter) Text(text string, f style.Formatting) {
	tags := w.openTags(f)
	for _, t := range tags {
		w.b.WriteString("<" + t.open + ">")
	}
	w.b.WriteString(html.EscapeString(text))
	for i := len(tags) - 1; i >= 0; i-- {
		w.b.WriteString("</" + tags[i].close + ">")
	}
}

func (w *htmlWriter) Affix(s string) {
	w.b.WriteString(html.EscapeString(s))
}

func (w *htmlWriter) OpenFormat(f style.Formatting) {
	for _, t := range w.openTags(f) {
		w.b.WriteString("<" + t.open + ">")
	}
}

func (w *htmlWriter) CloseFormat(f style.Formatting) {
	tags := w.openTags(f)
	for i := len(tags) - 1; i >= 0; i-- {
		w.b.WriteString("</" + tags[i].close + ">")
	}
}

// openTags returns the HTML tags f's set fields open, outermost first.
func (w *htmlWriter) openTags(f style.Formatting) []htmlTag {
	var tags []htmlTag
	if f.FontStyle != nil && *f.FontStyle != style.FontStyleNormal {
		tags = append(tags, htmlTag{"i", "i"})
	}
	if f.FontWeight != nil {
		switch *f.FontWeight {
		case style.FontWeightBold:
			tags = append(tags, htmlTag{w.boldTag, w.boldTag})
		case style.FontWeightLight:
			// No HTML equivalent for a "light" weight; left unstyled.
		}
	}
	if f.FontVariant != nil && *f.FontVariant == style.FontVariantSmallCaps {
		tags = append(tags, htmlTag{`span style="font-variant:small-caps"`, "span"})
	}
	if f.TextDecoration != nil && *f.TextDecoration == style.TextDecorationUnderline {
		tags = append(tags, htmlTag{`span style="text-decoration:underline"`, "span"})
	}
	if f.VerticalAlignment != nil {
		switch *f.VerticalAlignment {
		case style.VerticalAlignmentSuperscript:
			tags = append(tags, htmlTag{"sup", "sup"})
		case style.VerticalAlignmentSubscript:
			tags = append(tags, htmlTag{"sub", "sub"})
		}
	}
	return tags
}

// Link wraps text in an <a href> anchor, nested inside whatever inline
// formatting f specifies.
func (w *htmlWriter) Link(text, url string, f style.Formatting) {
	tags := w.openTags(f)
	for _, t := range tags {
		w.b.WriteString("<" + t.open + ">")
	}
	w.b.WriteString(`<a href="` + html.EscapeString(url) + `">`)
	w.b.WriteString(html.EscapeString(text))
	w.b.WriteString(`</a>`)
	for i := len(tags) - 1; i >= 0; i-- {
		w.b.WriteString("</" + tags[i].close + ">")
	}
}

func (w *htmlWriter) OpenDisplay(d style.DisplayMode) {
	switch d {
	case style.DisplayBlock:
		w.b.WriteString(`<div class="csl-block">`)
	case style.DisplayLeftMargin:
		w.b.WriteString(`<div class="csl-left-margin">`)
	case style.DisplayRightInline:
		w.b.WriteString(`<div class="csl-right-inline">`)
	case style.DisplayIndent:
		w.b.WriteString(`<div class="csl-indent">`)
	}
}

func (w *htmlWriter) CloseDisplay(d style.DisplayMode) {
	if d != style.DisplayNone {
		w.b.WriteString(`</div>`)
	}
}

func (w *htmlWriter) String() string { return w.b.String() }
