package namelist

import (
	goscan "go/scanner"
	gotok "go/token"
	"strings"
	"unicode/utf8"

	"github.com/jschaf/citeproc/bibtex/ast"
)

// scanner tokenizes an already-resolved author/editor field into the names
// it lists. It runs over plain rendered text, not the outer bibtex token
// stream — by the time namelist.Split calls it, render.TextRenderer has
// already flattened braces, accents, and macros into literal characters.
type scanner struct {
	file       *gotok.File
	tok        ast.BasicLit
	src        []byte // backing bytes being scanned
	ch         rune   // character at offset, or -1 at end of input
	rdOffset   int    // offset of the next unread byte
	offset     int    // offset of ch
	lineOffset int
	prev       NameTok // token just emitted
	prev2      NameTok // token emitted before that

	nameSeps []string // words that separate names, typically just "and"
	others   []string // words marking unlisted authors, typically "others"

	errors goscan.ErrorList
}

const bom = 0xFEFF // byte order mark, only legal as the very first character

func (s *scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.lineOffset = s.offset
			s.file.AddLine(s.offset)
		}
		r, w := rune(s.src[s.rdOffset]), 1
		switch {
		case r == 0:
			s.error(s.offset, "illegal char NUL in author string")
		case r >= utf8.RuneSelf:
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
			if r == utf8.RuneError && w == 1 {
				s.error(s.offset, "illegal UTF-8 encoding in author string")
			} else if r == bom && s.offset > 0 {
				s.error(s.offset, "illegal byte order mark in author string")
			}
		}
		s.rdOffset += w
		s.ch = r
		return
	}
	s.offset = len(s.src)
	if s.ch == '\n' {
		s.lineOffset = s.offset
		s.file.AddLine(s.offset)
	}
	s.ch = -1
}

// init positions s at the start of src, recording positions in file. file
// may be reused across scans of the same underlying text.
func (s *scanner) init(file *gotok.File, src []byte) {
	s.file = file
	s.src = src

	s.ch = ' '
	s.offset = 0
	s.rdOffset = 0
	s.lineOffset = 0

	s.next()
	if s.ch == bom {
		s.next() // a leading BOM is not part of the content
	}
}

func (s *scanner) skipWhitespace() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
		s.next()
	}
}

func (s *scanner) scanString() string {
	offs := s.offset
	for s.ch != ' ' && s.ch != '\t' && s.ch != '\n' && s.ch != '\r' &&
		s.ch != '{' && s.ch != '}' && s.ch != ',' && s.ch > 0 {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

func (s *scanner) error(offset int, msg string) {
	epos := s.file.Position(gotok.Pos(int(s.tok.Pos()) + offset))
	s.errors.Add(epos, msg)
}

func (s *scanner) isNameSep(word string) bool {
	for _, sep := range s.nameSeps {
		if word == sep {
			return true
		}
	}
	return false
}

func (s *scanner) isOthers(word string) bool {
	for _, other := range s.others {
		if word == other {
			return true
		}
	}
	return false
}

// scanBraceString consumes a brace-delimited run, descending into nested
// braces so a group like "{Jean {de la} Fontaine}" is treated as one name
// part rather than split at the inner braces.
func (s *scanner) scanBraceString() string {
	offs := s.offset
	for {
		ch := s.ch
		if ch < 0 {
			s.error(offs, "string literal in braces not terminated")
			break
		}
		s.next()
		if ch == '}' {
			break
		}
		if ch == '{' {
			s.scanBraceString()
		}
	}
	return string(s.src[offs : s.offset-1])
}

// scan returns the next token. A bare word is reclassified as NameSep or
// Others after the fact, once its lowercased text has been compared against
// s.nameSeps/s.others and the surrounding whitespace context checked —
// there's no way to know a word is "and" until it has been fully read.
func (s *scanner) scan() (pos gotok.Pos, tok NameTok, lit string) {
	start := s.offset
	s.skipWhitespace()
	if s.offset > start {
		s.prev2, s.prev = s.prev, Whitespace
	}
	pos = s.file.Pos(s.offset)

	switch ch := s.ch; ch {
	case -1:
		tok = EOF
	case '{':
		tok = BraceString
		s.next()
		lit = s.scanBraceString()
	case ',':
		tok = Comma
		s.next()
	default:
		tok = String
		lit = s.scanString()
		switch word := strings.ToLower(lit); {
		case s.prev == Whitespace && s.isNameSep(word):
			tok = NameSep
		case s.prev2 == NameSep && s.prev == Whitespace && s.isOthers(word):
			tok = Others
		}
	}

	s.prev2 = s.prev
	s.prev = tok
	return pos, tok, lit
}
