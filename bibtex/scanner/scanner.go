// Package scanner tokenizes bibtex source text for the citeproc BibTeX
// ingestion front end. A Scanner is driven by repeated calls to Scan, which
// hands back one token.Token at a time; the parser package turns that
// stream into an *ast.File.
package scanner

import (
	"fmt"
	gotok "go/token"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jschaf/citeproc/bibtex/token"
)

const eof = -1

// ErrorHandler, if installed via Scanner.Init, is called with the position
// and message of every syntax error Scan encounters; the position marks the
// start of the offending token.
type ErrorHandler func(pos gotok.Position, msg string)

// Scanner holds the running state of tokenizing one source text. The zero
// value is not usable directly — call Init first.
type Scanner struct {
	// Set once by Init and not touched again.
	file *gotok.File
	dir  string
	src  []byte
	err  ErrorHandler
	mode Mode

	// Mutated on every call to next/Scan.
	ch         rune        // character at offset, or eof
	offset     int         // offset of ch
	rdOffset   int         // offset of the next unread byte
	lineOffset int         // offset of the start of the current line
	prev       token.Token // token Scan returned last

	// String-mode state: once the scanner crosses a quote or opening brace
	// that starts a value, endQuoteCh records what closes it ('"' or '}')
	// and braceDepth tracks how many nested braces remain open inside.
	endQuoteCh rune
	braceDepth int

	// ErrorCount is incremented once per error reported, independent of
	// whether an ErrorHandler is installed to also receive it.
	ErrorCount int
}

// next reads the next Unicode character into s.ch, leaving s.ch == eof once
// the source is exhausted.
func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.lineOffset = s.offset
			s.file.AddLine(s.offset)
		}
		r, w := rune(s.src[s.rdOffset]), 1
		switch {
		case r == 0:
			s.error(s.offset, "illegal character NUL")
		case r >= utf8.RuneSelf:
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
			if r == utf8.RuneError && w == 1 {
				s.error(s.offset, "illegal UTF-8 encoding")
			} else if r == bom && s.offset > 0 {
				s.error(s.offset, "illegal byte order mark")
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
	s.ch = eof
}

func (s *Scanner) error(offs int, msg string) {
	if s.err != nil {
		s.err(s.file.Position(s.file.Pos(offs)), msg)
	}
	s.ErrorCount++
}

func (s *Scanner) errorf(offset int, format string, args ...interface{}) {
	s.error(offset, fmt.Sprintf(format, args...))
}

const bom = 0xFEFF // only legal as the very first character of the source

// Mode is a set of bit flags controlling Scanner behavior.
type Mode uint

const (
	ScanComments Mode = 1 << iota // emit Comment/TexComment tokens instead of skipping them
	ScanStrings                   // tokenize the contents of quoted/braced values instead of returning them whole
)

// Init positions s at the start of src, using file for position bookkeeping.
// file's size must equal len(src); Init panics otherwise. A Scanner may be
// reused across sources by calling Init again — every field is reset.
//
// Scan reports syntax errors to err (if non-nil) and always counts them in
// ErrorCount regardless. mode selects how comments and string contents are
// handled.
func (s *Scanner) Init(file *gotok.File, src []byte, err ErrorHandler, mode Mode) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}
	s.file = file
	s.dir, _ = filepath.Split(file.Name())
	s.src = src
	s.err = err
	s.mode = mode

	s.ch = ' '
	s.offset = 0
	s.rdOffset = 0
	s.lineOffset = 0
	s.ErrorCount = 0

	s.next()
	if s.ch == bom {
		s.next() // a BOM at the very start of the file is not content
	}
}

func (s *Scanner) skipWhitespace() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
		s.next()
	}
}

// --- character classification ---

func lower(ch rune) rune     { return ('a' - 'A') | ch } // ch lowercased, if it's an ASCII letter
func isDecimal(ch rune) bool { return '0' <= ch && ch <= '9' }

func isLetter(ch rune) bool {
	return 'a' <= lower(ch) && lower(ch) <= 'z' || ch == '_' || ch >= utf8.RuneSelf && unicode.IsLetter(ch)
}

// IsAsciiLetter reports whether ch is an ASCII letter, case-insensitively.
func IsAsciiLetter(ch rune) bool { return 'a' <= lower(ch) && lower(ch) <= 'z' }

// IsName reports whether ch may appear in a bibtex cite key, per the
// btparse grammar:
// https://metacpan.org/pod/release/AMBS/Text-BibTeX-0.66/btparse/doc/bt_language.pod
//
// Letters, digits, underscore, hyphen, and the set
// ! $ & * + - . / : ; < > ? [ ] ^ _ ` |
func IsName(ch rune) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
		return true
	}
	switch ch {
	case '_', '-', '/', '!', '$', '&', '*', '+', '.', ':', ';', '<', '>', '?', '[', ']', '^', '`', '|':
		return true
	}
	return false
}

// --- top-level (non-string) scanning ---

func (s *Scanner) scanCommand() string {
	offs := s.offset - 1 // '@' already consumed
	s.next()
	if !isLetter(s.ch) {
		s.error(s.offset, "expected letter after @ for a command")
	}
	for isLetter(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

func (s *Scanner) scanIdent() string {
	offs := s.offset
	for IsName(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

// scanString consumes a value delimited by double quotes, descending into
// any nested brace groups so an embedded '"' inside braces doesn't
// terminate the value early.
func (s *Scanner) scanString() string {
	offs := s.offset
	for {
		ch := s.ch
		if ch < 0 {
			s.error(offs, "string literal in double quotes not terminated")
			break
		}
		s.next()
		if ch == '"' {
			break
		}
		if ch == '{' {
			s.scanBraceString()
		}
	}
	return string(s.src[offs : s.offset-1])
}

func (s *Scanner) scanNumber() string {
	offs := s.offset
	for isDecimal(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

// scanBraceString consumes a value delimited by braces, recursing into
// nested groups so brace depth stays balanced.
func (s *Scanner) scanBraceString() string {
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

func (s *Scanner) scanTexComment() string {
	offs := s.offset - 1 // leading '%' already consumed
	for s.ch != '\n' && s.ch >= 0 {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

// --- string-mode scanning (active once endQuoteCh is set) ---

func (s *Scanner) scanStringMath() (token.Token, string) {
	offs := s.offset
	for s.ch != '$' {
		if s.ch < 0 || s.ch == '\n' {
			s.error(offs, "math in string literal not terminated")
			return token.Illegal, string(s.src[offs-1 : s.offset])
		}
		if s.ch == '\\' {
			s.next() // the escaped character is consumed along with the backslash
		}
		s.next()
	}
	s.next() // consume closing '$'
	return token.StringMath, string(s.src[offs : s.offset-1])
}

// scanStringEscape scans a value starting with a backslash, which may be:
//   - an escape for a bibtex special character, like \{ or \}
//   - the start of a TeX macro, like \url{www.example.com}
//   - the start of a character accent, like \^o for ô
//
// See https://tex.stackexchange.com/a/66671/59048.
func (s *Scanner) scanStringEscape() (token.Token, string) {
	offs := s.offset - 1 // leading backslash already consumed
	switch s.ch {
	case '\\', '$', '&', '%', '{', '}', '_':
		s.next()
		return token.StringBackslash, string(s.src[offs:s.offset])
	case rune(token.AccentAcute),
		rune(token.AccentCedilla),
		rune(token.AccentCircumflex),
		rune(token.AccentDot),
		rune(token.AccentGrave),
		rune(token.AccentTilde),
		rune(token.AccentUmlaut):
		return s.scanSpecialCharStringAccent()
	case ',', ';', '[', ']', '(', ')':
		s.next()
		return token.StringMacro, string(s.src[offs:s.offset])
	}

	// Otherwise it must be a macro name made of ASCII letters, like \url.
	lo := s.offset
	for !s.isSpecialStringChar(s.ch) && s.ch != 0 {
		s.next()
	}
	name := string(s.src[lo:s.offset])
	if len(name) == 0 {
		s.error(offs, "expected macro name after backslash, got nothing")
		return token.Illegal, string(s.src[offs : s.offset-1])
	}
	for _, c := range name {
		if !IsAsciiLetter(c) {
			s.errorf(offs, "expected command name to only contain ascii letters, got %q", name)
			return token.Illegal, string(s.src[offs : s.offset-1])
		}
	}
	return token.StringMacro, name
}

// scanSpecialCharStringAccent scans an accent command applied to a single
// letter, in either braced (\'{o}) or unbraced (\'o, \c c) form.
func (s *Scanner) scanSpecialCharStringAccent() (token.Token, string) {
	offs := s.offset - 1 // leading backslash already consumed
	s.next() // consume the accent marker, e.g. '"' or '^'
	switch {
	case s.ch == '{':
		s.next()
		if !IsAsciiLetter(s.ch) {
			s.errorf(offs, "expected braced ascii letter after accent sequence %q , got %q", string(s.src[offs:s.offset-1]), s.ch)
			return token.Illegal, ""
		}
		s.next() // the accented letter
		if s.ch != '}' {
			s.errorf(offs, "expected right brace after accent sequence %q , got %q", string(s.src[offs:s.offset-1]), s.ch)
			return token.Illegal, ""
		}
		s.next()
	case s.ch == ' ':
		// Implicit-brace form, e.g. '\c c': the marker and the accented
		// letter are separated by exactly one space rather than braces.
		marker := string(s.src[offs:s.offset])
		s.next() // consume the space
		accented := marker + string(s.src[s.offset])
		s.next() // the accented letter
		return token.StringAccent, accented
	default:
		if !IsAsciiLetter(s.ch) {
			s.errorf(offs, "expected ascii letter after accent sequence %q , got %q", string(s.src[offs:s.offset-1]), s.ch)
			return token.Illegal, ""
		}
		s.next()
	}
	return token.StringAccent, string(s.src[offs:s.offset])
}

// isSpecialStringChar reports whether ch needs its own token inside a
// string value rather than being absorbed into a StringContents run.
func (s *Scanner) isSpecialStringChar(ch rune) bool {
	if ch == '"' {
		// A bare '"' only closes the value at brace depth 0, and only when
		// the value was opened with '"' rather than '{'.
		return s.braceDepth == 0 && s.endQuoteCh == '"'
	}
	return ch == '$' || ch == '{' || ch == '}' ||
		ch == eof || ch == ',' ||
		ch == '~' || // non-breaking space
		ch == '\\' || // escape or macro introducer
		ch == '\n' || ch == '\r' || ch == ' ' || ch == '\t'
}

func (s *Scanner) scanStringContents() string {
	offs := s.offset
	for !s.isSpecialStringChar(s.ch) {
		if s.ch == '\\' {
			s.next() // keep an escaped character glued to its backslash
		}
		s.next()
	}
	return string(s.src[offs:s.offset])
}

func (s *Scanner) scanInString() (pos gotok.Pos, tok token.Token, lit string) {
	if s.endQuoteCh == 0 {
		panic("called scanInString but not in quote")
	}
	pos = s.file.Pos(s.offset)
	if !s.isSpecialStringChar(s.ch) {
		tok = token.StringContents
		lit = s.scanStringContents()
		return pos, tok, lit
	}

	ch := s.ch
	s.next()
	switch ch {
	case '$':
		tok, lit = s.scanStringMath()
	case '"':
		if s.endQuoteCh == '"' && s.braceDepth == 0 {
			s.endQuoteCh = 0
			tok = token.DoubleQuote
		} else {
			tok = token.StringContents
			lit = `"`
		}
	case '\\':
		tok, lit = s.scanStringEscape()
	case '{':
		s.braceDepth++
		tok = token.StringLBrace
	case '}':
		tok = token.StringRBrace
		if s.endQuoteCh == '}' && s.braceDepth == 0 {
			s.endQuoteCh = 0
		} else {
			s.braceDepth--
		}
	case ' ', '\r', '\n', '\t':
		tok = token.StringSpace
		s.skipWhitespace()
	case ',':
		tok = token.StringComma
		lit = ","
	case '~':
		tok = token.StringNBSP
		lit = "~"
	default:
		if ch != bom { // next() already reported an unexpected BOM
			s.errorf(s.file.Offset(pos), "illegal character %#U in string", ch)
		}
		tok = token.Illegal
		lit = string(ch)
	}
	return pos, tok, lit
}

// Scan returns the next token, its starting position, and — for a literal,
// command, or TexComment token — its text. token.Illegal's literal is the
// offending character; every other token's literal is empty.
//
// Scan recovers from syntax errors where it can, so a client must consult
// ErrorCount (or its installed ErrorHandler) rather than assume a clean
// token stream means no errors occurred.
func (s *Scanner) Scan() (pos gotok.Pos, tok token.Token, lit string) {
	if s.endQuoteCh == '}' || s.endQuoteCh == '"' {
		return s.scanInString()
	}

	s.skipWhitespace()
	pos = s.file.Pos(s.offset)

	switch ch := s.ch; {
	case isDecimal(ch):
		tok = token.Number
		lit = s.scanNumber()

	case IsName(ch):
		tok = token.Ident
		lit = s.scanIdent()

	default:
		s.next() // always make progress
		switch ch {
		case -1:
			tok = token.EOF
		case '"':
			if s.mode&ScanStrings != 0 {
				s.endQuoteCh = '"'
				tok = token.DoubleQuote
			} else {
				tok = token.String
				lit = s.scanString()
			}
		case ',':
			tok = token.Comma
		case '=':
			tok = token.Assign
		case '@':
			lit = s.scanCommand()
			switch {
			case strings.EqualFold("@comment", lit):
				tok = token.Comment
			case strings.EqualFold("@string", lit):
				tok = token.Abbrev
			case strings.EqualFold("@preamble", lit):
				tok = token.Preamble
			default:
				tok = token.BibEntry
			}
		case '{':
			// A brace right after '=' or another '{' opens a value; any
			// other context makes it a bare structural LBrace, e.g. the
			// outer braces of "@preamble { {foo} }".
			if s.prev == token.Assign || s.prev == token.LBrace {
				if s.mode&ScanStrings != 0 {
					s.endQuoteCh = '}'
					tok = token.StringLBrace
				} else {
					tok = token.BraceString
					lit = s.scanBraceString()
				}
			} else {
				tok = token.LBrace
			}
		case '}':
			tok = token.RBrace
		case '%':
			tok = token.TexComment
			lit = s.scanTexComment()
		case '#':
			tok = token.Concat
		case '(':
			tok = token.LParen
		case ')':
			tok = token.RParen
		default:
			if ch != bom {
				s.errorf(s.file.Offset(pos), "illegal character %#U", ch)
			}
			tok = token.Illegal
			lit = string(ch)
		}
	}

	s.prev = tok
	return pos, tok, lit
}
