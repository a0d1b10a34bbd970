// Scope resolution for bibtex cite keys and @string abbreviations, mirroring
// go/ast's object model: a package-level Scope records every entry key and
// abbreviation name as the parser sees it, and the parser's unresolved-
// identifier pass (see parser.go) later looks a bare tag value up in it.

package ast

import (
	"bytes"
	"fmt"
	"go/token"
)

// Scope holds the named entities declared at one lexical level — for a
// bibtex file, there is exactly one level, the file's package scope — plus a
// link to an enclosing scope for nested lookups.
type Scope struct {
	Outer   *Scope
	Objects map[string]*Object
}

// NewScope creates a scope nested inside outer. outer is nil for a file's
// top-level package scope.
func NewScope(outer *Scope) *Scope {
	const initialCap = 4
	return &Scope{Outer: outer, Objects: make(map[string]*Object, initialCap)}
}

// Lookup returns the object named name if s declares one directly; it does
// not search Outer.
func (s *Scope) Lookup(name string) *Object {
	return s.Objects[name]
}

// Insert adds obj to s unless a differently-kinded or earlier object already
// claims obj.Name, in which case Insert leaves s unchanged and returns the
// existing object instead.
func (s *Scope) Insert(obj *Object) (alt *Object) {
	if alt = s.Objects[obj.Name]; alt == nil {
		s.Objects[obj.Name] = obj
	}
	return alt
}

func (s *Scope) String() string {
	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "scope %p {", s)
	if s != nil && len(s.Objects) > 0 {
		_, _ = fmt.Fprintln(&buf)
		for _, obj := range s.Objects {
			_, _ = fmt.Fprintf(&buf, "\t%s %s\n", obj.Kind, obj.Name)
		}
	}
	_, _ = fmt.Fprintf(&buf, "}\n")
	return buf.String()
}

// Object is a named entity a Scope can hold: a bibtex entry key (referenced
// by a crossref tag) or a @string abbreviation name (referenced by a bare,
// unquoted tag value).
type Object struct {
	Kind ObjKind
	Name string      // the cite key or abbreviation name as written
	Decl interface{} // the *BibDecl or *AbbrevDecl that declared it, or nil
}

// NewObj creates an object of the given kind and name with no declaration
// attached yet.
func NewObj(kind ObjKind, name string) *Object {
	return &Object{Kind: kind, Name: name}
}

// Pos reports where obj was declared, or token.NoPos if that can't be
// determined (Decl is nil, or doesn't carry position info for this name).
func (obj *Object) Pos() token.Pos {
	switch d := obj.Decl.(type) {
	case *BibDecl:
		if d.Key != nil && d.Key.Name == obj.Name {
			return d.Key.Pos()
		}
	case *Scope:
		// A predeclared object has no source position of its own.
	}
	return token.NoPos
}

// ObjKind distinguishes what an Object stands for.
type ObjKind int

const (
	Bad    ObjKind = iota // unresolved or malformed reference
	Entry                 // a bibtex entry's cite key
	Abbrev                // a @string abbreviation name
)

var objKindStrings = [...]string{
	Bad:    "bad",
	Entry:  "entry",
	Abbrev: "abbrev",
}

func (kind ObjKind) String() string { return objKindStrings[kind] }
