// Package namelist splits a resolved author/editor field ("Smith, John and
// Doe, Jane and others") into individual names. It runs on plain text
// already flattened by render.TextRenderer, so its token set is much
// narrower than the outer bibtex scanner's: whitespace, braced groups, the
// "and" separator, a trailing "others", and the punctuation between name
// parts are all it needs to recognize.
package namelist

import "strconv"

// NameTok is a lexical token of the name-list sub-language.
type NameTok int

const (
	Illegal NameTok = iota
	EOF
	Whitespace  // any run of whitespace
	String      // a bare run of characters, e.g. Smith
	BraceString // {a braced group, kept intact as one name part}
	NameSep     // the separator between names, typically "and"
	Others      // a trailing "others", marking an et-al author/editor list
	Comma       // , separating family and given names
	LBrace      // {
	RBrace      // }
)

var nameTokNames = [...]string{
	Illegal:     "Illegal",
	EOF:         "EOF",
	Whitespace:  "Whitespace",
	String:      "String",
	BraceString: "BraceString",
	NameSep:     "NameSep",
	Others:      "Others",
	Comma:       "Comma",
	LBrace:      "LBrace",
	RBrace:      "RBrace",
}

// String renders tok's name for diagnostics.
func (tok NameTok) String() string {
	if 0 <= int(tok) && int(tok) < len(nameTokNames) && nameTokNames[tok] != "" {
		return nameTokNames[tok]
	}
	return "nameTok(" + strconv.Itoa(int(tok)) + ")"
}
