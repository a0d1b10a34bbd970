// Package ast declares the types used to represent syntax trees for bibtex
// source files parsed by the bibtex ingestion front end.
package ast

import (
	gotok "go/token"

	"github.com/jschaf/citeproc/bibtex/token"
)

type Node interface {
	Pos() gotok.Pos
	End() gotok.Pos
}

// All expression nodes implement the Expr interface.
type Expr interface {
	Node
	exprNode()
}

// All statement nodes implement the Stmt interface, like bibtex entry tags.
type Stmt interface {
	Node
	stmtNode()
}

// All declaration nodes implement the Decl interface, like the @article,
// @STRING, @COMMENT, and @PREAMBLE entries.
type Decl interface {
	Node
	declNode()
}

// ----------------------------------------------------------------------------
// Comments

// A TexComment node represents a single %-style comment.
type TexComment struct {
	Start gotok.Pos // position of the '%' starting the comment
	Text  string    // comment text excluding '\n'
}

func (c *TexComment) Pos() gotok.Pos { return c.Start }
func (c *TexComment) End() gotok.Pos { return gotok.Pos(int(c.Start) + len(c.Text)) }

// A TexCommentGroup represents a sequence of comments with no other tokens and
// no empty lines between.
type TexCommentGroup struct {
	List []*TexComment // len(List) > 0
}

func (g *TexCommentGroup) Pos() gotok.Pos { return g.List[0].Pos() }
func (g *TexCommentGroup) End() gotok.Pos { return g.List[len(g.List)-1].End() }

// ----------------------------------------------------------------------------
// Literal expressions

type (
	// A BadExpr node is a placeholder for expressions containing syntax errors
	// for which no correct expression nodes can be created.
	BadExpr struct {
		From, To gotok.Pos
	}

	// An Ident node represents an identifier like a bibtex citation key or tag
	// key.
	Ident struct {
		NamePos gotok.Pos // identifier position
		Name    string    // identifier name
		Obj     *Object   // denoted object; or nil
	}

	// A BasicLit node represents literals of basic type: numbers, quoted
	// strings, and brace-delimited strings.
	BasicLit struct {
		ValuePos gotok.Pos   // literal position
		Kind     token.Token // token.Number, token.String, token.BraceString
		Value    string      // literal string, e.g. 42, "foo", {bar}
	}

	// A ConcatExpr node represents a bibtex string concatenation, x # y.
	ConcatExpr struct {
		X     Expr
		OpPos gotok.Pos
		Y     Expr
	}
)

func (x *BadExpr) Pos() gotok.Pos { return x.From }
func (x *BadExpr) End() gotok.Pos { return x.To }
func (*BadExpr) exprNode()        {}

func (x *Ident) Pos() gotok.Pos { return x.NamePos }
func (x *Ident) End() gotok.Pos { return gotok.Pos(int(x.NamePos) + len(x.Name)) }
func (*Ident) exprNode()        {}

func (x *BasicLit) Pos() gotok.Pos { return x.ValuePos }
func (x *BasicLit) End() gotok.Pos { return gotok.Pos(int(x.ValuePos) + len(x.Value)) }
func (*BasicLit) exprNode()        {}

func (x *ConcatExpr) Pos() gotok.Pos { return x.X.Pos() }
func (x *ConcatExpr) End() gotok.Pos { return x.Y.End() }
func (*ConcatExpr) exprNode()        {}

// ----------------------------------------------------------------------------
// Parsed text

// TextKind distinguishes the atomic pieces produced when a BasicLit's raw
// value is resolved into a token stream: runs of content, punctuation that
// matters for name splitting, and whitespace variants.
type TextKind int

const (
	TextContent TextKind = iota // ordinary run of text
	TextSpace                   // plain whitespace
	TextNBSP                    // '~', a LaTeX non-breakable space
	TextComma                   // ','
	TextHyphen                  // '-'
	TextMath                    // $...$
	TextEscaped                 // \&, \$, \{ - single char escape
	TextSpecial                 // \'{o}, \ae - accent or special-character macro
)

func (k TextKind) String() string {
	switch k {
	case TextContent:
		return "content"
	case TextSpace:
		return "space"
	case TextNBSP:
		return "nbsp"
	case TextComma:
		return "comma"
	case TextHyphen:
		return "hyphen"
	case TextMath:
		return "math"
	case TextEscaped:
		return "escaped"
	case TextSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// A Text node is one atomic token of resolved text content.
type Text struct {
	ValuePos gotok.Pos
	Kind     TextKind
	Value    string       // content for TextContent/TextEscaped/TextMath/TextSpecial
	Accent   token.Accent // set only when Kind == TextSpecial
}

func (t *Text) Pos() gotok.Pos { return t.ValuePos }
func (t *Text) End() gotok.Pos { return gotok.Pos(int(t.ValuePos) + len(t.Value)) }
func (*Text) exprNode()        {}

// Delimiter records what originally enclosed a ParsedText: braces or quotes.
type Delimiter int

const (
	BraceDelimiter Delimiter = iota
	QuoteDelimiter
)

// A ParsedText node is a BasicLit's Value, tokenized into a flat sequence of
// Text/ParsedText/ConcatExpr/MacroText children. Nesting occurs wherever the
// source had nested braces, e.g. "Foo {Bar} Baz".
type ParsedText struct {
	Depth  int
	Delim  Delimiter
	Values []Expr
}

func (t *ParsedText) Pos() gotok.Pos {
	if len(t.Values) == 0 {
		return gotok.NoPos
	}
	return t.Values[0].Pos()
}
func (t *ParsedText) End() gotok.Pos {
	if len(t.Values) == 0 {
		return gotok.NoPos
	}
	return t.Values[len(t.Values)-1].End()
}
func (*ParsedText) exprNode() {}

// A MacroText node represents a TeX macro application, like \url{...} or
// \textbf{...}, whose argument is itself parsed text.
type MacroText struct {
	NamePos gotok.Pos
	Name    string
	Values  []Expr
}

func (t *MacroText) Pos() gotok.Pos { return t.NamePos }
func (t *MacroText) End() gotok.Pos {
	if len(t.Values) == 0 {
		return t.NamePos
	}
	return t.Values[len(t.Values)-1].End()
}
func (*MacroText) exprNode() {}

// ----------------------------------------------------------------------------
// Statements

type (
	// A BadStmt node is a placeholder for statements containing syntax errors
	// for which no correct statement nodes can be created.
	BadStmt struct {
		From, To gotok.Pos // position range of bad statement
	}

	// A TagStmt node represents a tag in a BibDecl or AbbrevDecl, i.e.
	// author = "foo".
	TagStmt struct {
		Doc     *TexCommentGroup // associated documentation; or nil
		NamePos gotok.Pos        // identifier position
		Name    string           // identifier name, normalized with lowercase
		RawName string           // identifier name as it appeared in source
		Value   Expr             // denoted expression
	}
)

func (x *BadStmt) Pos() gotok.Pos { return x.From }
func (x *BadStmt) End() gotok.Pos { return x.To }
func (*BadStmt) stmtNode()        {}

func (x *TagStmt) Pos() gotok.Pos { return x.NamePos }
func (x *TagStmt) End() gotok.Pos { return x.Value.Pos() }
func (*TagStmt) stmtNode()        {}

// ----------------------------------------------------------------------------
// Declarations

type (
	// A BadDecl node is a placeholder for declarations containing syntax errors
	// for which no correct declaration nodes can be created.
	BadDecl struct {
		From, To gotok.Pos // position range of bad declaration
	}

	// An AbbrevDecl node represents a bibtex abbreviation, like:
	//   @STRING { foo = "bar" }
	AbbrevDecl struct {
		Doc    *TexCommentGroup // associated documentation; or nil
		Entry  gotok.Pos        // position of the "@STRING" token
		Tag    *TagStmt
		RBrace gotok.Pos // position of the closing right brace token: "}".
	}

	// A BibDecl node represents a bibtex entry, like:
	//   @article { foo, author = "bar" }
	BibDecl struct {
		Doc       *TexCommentGroup // associated documentation; or nil
		Entry     gotok.Pos        // position of the start token, e.g. "@article"
		Type      string           // entry type, lowercased, e.g. "article"
		Key       *Ident           // primary cite key
		ExtraKeys []*Ident         // additional cite keys after the first comma
		Tags      []*TagStmt       // all tags in the declaration
		RBrace    gotok.Pos        // position of the closing right brace token: "}".
	}

	// A PreambleDecl node represents a bibtex preamble, like:
	//   @PREAMBLE { "foo" }
	PreambleDecl struct {
		Doc    *TexCommentGroup // associated documentation; or nil
		Entry  gotok.Pos        // position of the "@PREAMBLE" token
		Text   Expr             // the content of the preamble
		RBrace gotok.Pos        // position of the closing right brace token: "}"
	}
)

func (e *BadDecl) Pos() gotok.Pos { return e.From }
func (e *BadDecl) End() gotok.Pos { return e.To }
func (*BadDecl) declNode()        {}

func (e *AbbrevDecl) Pos() gotok.Pos { return e.Entry }
func (e *AbbrevDecl) End() gotok.Pos { return e.RBrace }
func (*AbbrevDecl) declNode()        {}

func (e *BibDecl) Pos() gotok.Pos { return e.Entry }
func (e *BibDecl) End() gotok.Pos { return e.RBrace }
func (*BibDecl) declNode()        {}

func (e *PreambleDecl) Pos() gotok.Pos { return e.Entry }
func (e *PreambleDecl) End() gotok.Pos { return e.RBrace }
func (*PreambleDecl) declNode()        {}

// ----------------------------------------------------------------------------
// Files and packages

// A File node represents a single parsed bibtex source file.
type File struct {
	Name       string
	Doc        *TexCommentGroup   // associated documentation; or nil
	Entries    []Decl             // top-level entries; or nil
	Scope      *Scope             // file scope
	Unresolved []*Ident           // bare tag-value identifiers that matched no @string in this file
	Comments   []*TexCommentGroup // all comments in the source file
}

func (f *File) Pos() gotok.Pos { return gotok.Pos(1) }
func (f *File) End() gotok.Pos {
	if n := len(f.Entries); n > 0 {
		return f.Entries[n-1].End()
	}
	return gotok.Pos(1)
}

// A Package node represents a set of source files collectively representing
// a single bibliography.
type Package struct {
	Name  string
	Scope *Scope
	Files map[string]*File
}

func (p *Package) Pos() gotok.Pos { return gotok.NoPos }
func (p *Package) End() gotok.Pos { return gotok.NoPos }
