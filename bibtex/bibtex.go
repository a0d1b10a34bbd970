// Package bibtex parses bibtex source files and resolves their entries into
// Entry values suitable for conversion into reference.Reference.
package bibtex

import (
	"fmt"
	"github.com/jschaf/citeproc/bibtex/ast"
	"github.com/jschaf/citeproc/bibtex/parser"
	"github.com/jschaf/citeproc/bibtex/render"
	gotok "go/token"
	"io"
)

// CiteKey is the citation key for a Bibtex entry, like the "foo" in:
//
//	@article{ foo }
type CiteKey = string

// EntryType is the type of Bibtex entry. An "@article" entry is represented as
// "article". String alias to allow for unknown entries.
type EntryType = string

//goland:noinspection GoUnusedConst
const (
	EntryArticle       EntryType = "article"
	EntryBook          EntryType = "book"
	EntryBooklet       EntryType = "booklet"
	EntryInBook        EntryType = "inbook"
	EntryInCollection  EntryType = "incollection"
	EntryInProceedings EntryType = "inproceedings"
	EntryManual        EntryType = "manual"
	EntryMastersThesis EntryType = "mastersthesis"
	EntryMisc          EntryType = "misc"
	EntryPhDThesis     EntryType = "phdthesis"
	EntryProceedings   EntryType = "proceedings"
	EntryTechReport    EntryType = "techreport"
	EntryUnpublished   EntryType = "unpublished"
)

// Field is a single field in a Bibtex Entry.
type Field = string

//goland:noinspection GoUnusedConst
const (
	FieldAddress      Field = "address"
	FieldAnnote       Field = "annote"
	FieldAuthor       Field = "author"
	FieldBookTitle    Field = "booktitle"
	FieldChapter      Field = "chapter"
	EntryDOI          Field = "doi"
	FieldCrossref     Field = "crossref"
	FieldEdition      Field = "edition"
	FieldEditor       Field = "editor"
	FieldHowPublished Field = "howpublished"
	FieldInstitution  Field = "institution"
	FieldJournal      Field = "journal"
	FieldKey          Field = "key"
	FieldMonth        Field = "month"
	FieldNote         Field = "note"
	FieldNumber       Field = "number"
	FieldOrganization Field = "organization"
	FieldPages        Field = "pages"
	FieldPublisher    Field = "publisher"
	FieldSchool       Field = "school"
	FieldSeries       Field = "series"
	FieldTitle        Field = "title"
	FieldType         Field = "type"
	FieldVolume       Field = "volume"
	FieldYear         Field = "year"
)

// Author is a single parsed bibtex name, split into the parts used by
// "First von Last, Suffix" bibtex name syntax.
type Author struct {
	First  string
	Prefix string
	Last   string
	Suffix string
}

// Biber parses and resolves bibtex source into Entry values. It is the
// ingestion front end that feeds the reference package: a Processor never
// touches bibtex ASTs directly, only the Entry values Biber produces.
type Biber struct {
	parserMode parser.Mode
	renderer   *render.TextRenderer
}

// Option is a functional option to change how Bibtex is parsed and rendered.
type Option func(*Biber)

// WithParserMode sets the parser options overwriting any previous parser
// options. parser.Mode is a bitflag so use bit-or for multiple flags like so:
//
//	WithParserMode(parser.ParseStrings|parser.Trace)
func WithParserMode(mode parser.Mode) Option {
	return func(b *Biber) {
		b.parserMode = mode
	}
}

// WithTextRenderer sets the renderer used for ordinary (non-name) tags,
// replacing the default renderer.
func WithTextRenderer(r *render.TextRenderer) Option {
	return func(b *Biber) {
		b.renderer = r
	}
}

func New(opts ...Option) *Biber {
	b := &Biber{
		parserMode: parser.ParseStrings,
		renderer:   render.NewTextRenderer(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Parse parses r as a single bibtex file, returning its AST unresolved.
func (b *Biber) Parse(r io.Reader) (*ast.File, error) {
	f, err := parser.ParseFile(gotok.NewFileSet(), "", r, b.parserMode)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Resolve resolves every bibtex entry declaration reachable from node into
// an Entry: author/editor tags are split into name parts, every other tag
// is rendered to plain text.
func (b *Biber) Resolve(node ast.Node) ([]Entry, error) {
	switch n := node.(type) {
	case *ast.Package:
		entries := make([]Entry, 0, len(n.Files)*4)
		for _, file := range n.Files {
			es, err := b.Resolve(file)
			if err != nil {
				return nil, err
			}
			entries = append(entries, es...)
		}
		return entries, nil

	case *ast.File:
		entries := make([]Entry, 0, len(n.Entries))
		for _, decl := range n.Entries {
			if decl, ok := decl.(*ast.BibDecl); ok {
				entry, err := renderEntryText(decl, b.renderer)
				if err != nil {
					return nil, fmt.Errorf("resolve entry %s: %w", decl.Type, err)
				}
				entries = append(entries, entry)
			}
		}
		return entries, nil

	case *ast.BibDecl:
		entry, err := renderEntryText(n, b.renderer)
		if err != nil {
			return nil, err
		}
		return []Entry{entry}, nil

	default:
		return nil, fmt.Errorf("bibtex.Resolve - node %T cannot be resolved into entries", node)
	}
}

// Entry is a resolved Bibtex entry, like an @article{} entry: authors and
// editors are split into name parts, every other tag is plain text.
type Entry struct {
	Type   EntryType
	Key    CiteKey
	Author []Author
	Editor []Author
	// AuthorEtAl is true when the author field ends in the literal word
	// "others", e.g. "Smith, John and others".
	AuthorEtAl bool
	// EditorEtAl is the editor-field analog of AuthorEtAl.
	EditorEtAl bool
	// All other tags in the entry, rendered to plain text.
	Tags map[Field]string
}
