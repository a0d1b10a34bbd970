// Package-level entry points for invoking the bibtex parser: ParseFile for a
// whole .bib document, ParseExpr for a single value expression (used by
// tests), ParsePackage for a directory of files.
package parser

import (
	"bytes"
	"errors"
	gotok "go/token"
	"io"
	"os"

	"github.com/jschaf/citeproc/bibtex/ast"
)

// readSource resolves the bytes to parse: if src is non-nil it is coerced
// from string, []byte, *bytes.Buffer, or io.Reader; otherwise filename is
// read from disk.
func readSource(filename string, src interface{}) ([]byte, error) {
	if src != nil {
		switch s := src.(type) {
		case string:
			return []byte(s), nil
		case []byte:
			return s, nil
		case *bytes.Buffer:
			if s != nil {
				return s.Bytes(), nil
			}
		case io.Reader:
			return io.ReadAll(s)
		}
		return nil, errors.New("invalid source")
	}
	return os.ReadFile(filename)
}

// Mode is a set of bit flags controlling how much of a bibtex document
// ParseFile processes and what optional behavior it enables.
type Mode uint

const (
	ParseComments     Mode = 1 << iota // attach TeX comments to the AST
	ParseStrings                       // tokenize string-literal contents, not just their raw span
	Trace                              // print a trace of parsed productions, for debugging the parser itself
	DeclarationErrors                  // no effect: malformed declarations are reported in every mode
	AllErrors                          // report every error found; otherwise only the first error per line is kept and parsing stops after 10
)

// ParseFile parses one bibtex document and returns its *ast.File.
//
// If src is non-nil, ParseFile parses the source from it and filename is
// only used to annotate position information — src must be a string,
// []byte, or io.Reader. If src is nil, ParseFile reads filename from disk.
//
// mode selects which optional parsing behavior is enabled; fset must not be
// nil and receives the file's recorded token positions.
//
// A read failure returns a nil *ast.File and a non-nil error. A syntax
// error instead returns a partial AST (containing ast.Bad* nodes for the
// unparseable fragments) alongside a scanner.ErrorList, sorted by source
// position, describing every error found.
func ParseFile(fset *gotok.FileSet, filename string, src interface{}, mode Mode) (f *ast.File, err error) {
	if fset == nil {
		panic("parser.ParseFile: no token.FileSet provided (fset == nil)")
	}

	text, err := readSource(filename, src)
	if err != nil {
		return nil, err
	}

	var p parser
	defer func() {
		if e := recover(); e != nil {
			if _, ok := e.(bailout); !ok {
				panic(e)
			}
		}
		if f == nil {
			// The source wasn't parseable as a bibtex file at all: satisfy
			// the ParseFile contract with an empty but valid *ast.File
			// rather than returning nil alongside a non-nil error.
			f = &ast.File{
				Name:  filename,
				Scope: ast.NewScope(nil),
			}
		}
		p.errors.Sort()
		err = p.errors.Err()
	}()

	p.init(fset, filename, text, mode)
	f = p.parseFile()
	return f, err
}

// ParseExpr parses str as a single bibtex value expression (the right-hand
// side of a tag assignment), returning the resulting ast.Expr. Used where a
// caller has an isolated value, such as a test fixture, rather than a whole
// document.
func ParseExpr(str string) (ast.Expr, error) {
	fset := gotok.NewFileSet()
	// Prefixing with '=' puts the parser into the state it's in right after
	// a tag's assignment operator, so '{'/'"' are read as value delimiters
	// rather than top-level entry syntax.
	src := []byte("=" + str)
	var p parser
	p.init(fset, "", src, ParseStrings)
	p.next() // consume the synthetic '='
	expr := p.parseExpr()
	p.errors.Sort()
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return expr, nil
}

// ParsePackage parses every file in paths with ParseFile, using a shared
// token.FileSet, and collects them into a single *ast.Package. If any file
// fails to parse, ParsePackage still returns the package assembled from the
// files that succeeded, plus the first error encountered.
func ParsePackage(paths []string, mode Mode) (pkg *ast.Package, first error) {
	fset := gotok.NewFileSet()
	pkg = &ast.Package{Files: make(map[string]*ast.File)}
	for _, filename := range paths {
		if src, err := ParseFile(fset, filename, nil, mode); err == nil {
			pkg.Files[filename] = src
		} else if first == nil {
			first = err
		}
	}
	return pkg, first
}
