// Package asts contains utilities for constructing and comparing bibtex ASTs,
// used primarily by tests.
package asts

import (
	"fmt"
	"strings"

	"github.com/jschaf/citeproc/bibtex/ast"
)

// BraceTextExpr returns parsed text delimited by braces.
func BraceTextExpr(depth int, ss ...ast.Expr) *ast.ParsedText {
	return &ast.ParsedText{
		Depth:  depth,
		Delim:  ast.BraceDelimiter,
		Values: ss,
	}
}

// BraceText returns parsed text delimited by braces, built by converting
// each string with ParseStringExpr.
func BraceText(depth int, ss ...string) *ast.ParsedText {
	xs := make([]ast.Expr, len(ss))
	for i, s := range ss {
		xs[i] = ParseStringExpr(depth, s)
	}
	return &ast.ParsedText{
		Depth:  depth,
		Delim:  ast.BraceDelimiter,
		Values: xs,
	}
}

// ParseStringExpr converts a single whitespace-split piece of raw bibtex
// text into the corresponding ast.Expr, recursing into brace groups.
//
//   - all whitespace                  -> ast.TextSpace
//   - "$...$"                         -> ast.TextMath
//   - "~"                             -> ast.TextNBSP
//   - "{...}"                         -> recursive ast.ParsedText
//   - ","                             -> ast.TextComma
//   - otherwise                       -> ast.TextContent
func ParseStringExpr(depth int, s string) ast.Expr {
	switch {
	case strings.TrimSpace(s) == "":
		return WSpace()
	case strings.HasPrefix(s, "$") && strings.HasSuffix(s, "$") && len(s) >= 2:
		return Math(s[1 : len(s)-1])
	case s == "~":
		return NBSP()
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") && len(s) >= 2:
		inner := s[1 : len(s)-1]
		split := strings.Split(inner, " ")
		xs := make([]ast.Expr, 0, len(split)*2-1)
		for i, sp := range split {
			xs = append(xs, ParseStringExpr(depth+1, sp))
			if i < len(split)-1 {
				xs = append(xs, WSpace())
			}
		}
		return BraceTextExpr(depth+1, xs...)
	case s == ",":
		return Comma()
	default:
		return Text(s)
	}
}

// QuotedTextExpr returns parsed text delimited by quotes.
func QuotedTextExpr(depth int, ss ...ast.Expr) *ast.ParsedText {
	return &ast.ParsedText{
		Depth:  depth,
		Delim:  ast.QuoteDelimiter,
		Values: ss,
	}
}

// QuotedText returns parsed text delimited by quotes, built the same way as
// BraceText.
func QuotedText(depth int, ss ...string) *ast.ParsedText {
	xs := make([]ast.Expr, len(ss))
	for i, s := range ss {
		xs[i] = ParseStringExpr(depth, s)
	}
	return QuotedTextExpr(depth, xs...)
}

func Text(s string) *ast.Text       { return &ast.Text{Kind: ast.TextContent, Value: s} }
func WSpace() *ast.Text             { return &ast.Text{Kind: ast.TextSpace, Value: " "} }
func NBSP() *ast.Text               { return &ast.Text{Kind: ast.TextNBSP, Value: "~"} }
func Math(x string) *ast.Text       { return &ast.Text{Kind: ast.TextMath, Value: x} }
func Comma() *ast.Text              { return &ast.Text{Kind: ast.TextComma, Value: ","} }
func Hyphen() *ast.Text             { return &ast.Text{Kind: ast.TextHyphen, Value: "-"} }
func Escaped(s string) *ast.Text    { return &ast.Text{Kind: ast.TextEscaped, Value: s} }

func Ident(s string) ast.Expr {
	return &ast.Ident{Name: s}
}

func Concat(x, y ast.Expr) ast.Expr {
	return &ast.ConcatExpr{X: x, Y: y}
}

// ExprString renders x as a debug-friendly s-expression, useful in test
// failure messages.
func ExprString(x ast.Expr) string {
	switch v := x.(type) {
	case *ast.Ident:
		return "Ident(" + v.Name + ")"
	case *ast.BasicLit:
		return fmt.Sprintf("BasicLit[%s](%s)", v.Kind, v.Value)
	case *ast.Text:
		switch v.Kind {
		case ast.TextSpace:
			return "<space>"
		case ast.TextNBSP:
			return "<nbsp>"
		case ast.TextHyphen:
			return "<hyphen>"
		case ast.TextComma:
			return "<comma>"
		case ast.TextMath:
			return "$" + v.Value + "$"
		default:
			return fmt.Sprintf("%s(%q)", v.Kind, v.Value)
		}
	case *ast.ParsedText:
		sb := strings.Builder{}
		delim := "quote"
		if v.Delim == ast.BraceDelimiter {
			delim = "brace"
		}
		sb.WriteString(fmt.Sprintf("ParsedText[%d, %s](", v.Depth, delim))
		for i, val := range v.Values {
			sb.WriteString(ExprString(val))
			if i < len(v.Values)-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString(")")
		return sb.String()
	case *ast.ConcatExpr:
		return ExprString(v.X) + " # " + ExprString(v.Y)
	default:
		return fmt.Sprintf("UnknownExpr(%v)", v)
	}
}

// WithBibKeys sets the cite key and extra keys of a BibDecl under
// construction.
func WithBibKeys(ts ...string) func(decl *ast.BibDecl) {
	return func(b *ast.BibDecl) {
		if len(ts) > 0 {
			b.Key = &ast.Ident{Name: ts[0]}
			ts = ts[1:]
		}
		for _, k := range ts {
			b.ExtraKeys = append(b.ExtraKeys, &ast.Ident{Name: k})
		}
	}
}

// WithBibTags appends key-value tag pairs to a BibDecl under construction.
func WithBibTags(key string, val ast.Expr, rest ...interface{}) func(decl *ast.BibDecl) {
	if len(rest)%2 != 0 {
		panic("WithBibTags must have even number of args for key-val pairs")
	}
	return func(b *ast.BibDecl) {
		b.Tags = append(b.Tags, &ast.TagStmt{Name: key, RawName: key, Value: val})
		for i := 0; i < len(rest); i += 2 {
			k, ok := rest[i].(string)
			if !ok {
				panic(fmt.Sprintf("need string at index %d of WithBibTags", i))
			}
			v, ok := rest[i+1].(ast.Expr)
			if !ok {
				panic(fmt.Sprintf("need ast.Expr at index %d of WithBibTags", i+1))
			}
			b.Tags = append(b.Tags, &ast.TagStmt{Name: k, RawName: k, Value: v})
		}
	}
}

// NewBibDecl builds a *ast.BibDecl for tests using functional options.
func NewBibDecl(typ string, opts ...func(*ast.BibDecl)) *ast.BibDecl {
	b := &ast.BibDecl{Type: typ}
	for _, opt := range opts {
		opt(b)
	}
	return b
}
