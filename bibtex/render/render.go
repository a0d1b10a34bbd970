// Package render flattens a resolved bibtex expression tree (ast.ParsedText
// and friends) back into plain text, applying per-TextKind overrides.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jschaf/citeproc/bibtex/ast"
)

type ExprRenderer interface {
	Render(w io.Writer, x ast.Expr) error
}

type TextRendererFunc func(w io.Writer, text *ast.Text) error

func (t TextRendererFunc) Render(w io.Writer, x ast.Expr) error {
	return t(w, x.(*ast.Text))
}

// TextRenderer renders an ast.Expr tree to plain text, honoring per-kind
// overrides for callers that need custom punctuation or escaping.
type TextRenderer struct {
	textOverrides map[ast.TextKind]TextRendererFunc
}

type Option func(p *TextRenderer)

func WithTextOverride(kind ast.TextKind, r TextRendererFunc) Option {
	return func(p *TextRenderer) {
		p.textOverrides[kind] = r
	}
}

func NewTextRenderer(opts ...Option) *TextRenderer {
	p := &TextRenderer{
		textOverrides: make(map[ast.TextKind]TextRendererFunc),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *TextRenderer) Render(w io.Writer, x ast.Expr) (mErr error) {
	switch t := x.(type) {
	case *ast.ParsedText:
		for _, value := range t.Values {
			if mErr = p.Render(w, value); mErr != nil {
				return
			}
		}
	case *ast.ConcatExpr:
		if mErr = p.Render(w, t.X); mErr != nil {
			return
		}
		if mErr = p.Render(w, t.Y); mErr != nil {
			return
		}
	case *ast.MacroText:
		for _, v := range t.Values {
			if mErr = p.Render(w, v); mErr != nil {
				return
			}
		}
	case *ast.BasicLit:
		_, mErr = w.Write([]byte(t.Value))
	case *ast.Ident:
		if decl, ok := identAbbrevDecl(t); ok {
			return p.Render(w, decl.Tag.Value)
		}
		// Unresolved or non-abbreviation identifier: fall back to the literal
		// name rather than failing the whole render.
		_, mErr = w.Write([]byte(t.Name))
	case *ast.Text:
		if r, ok := p.textOverrides[t.Kind]; ok {
			return r.Render(w, t)
		}
		switch t.Kind {
		case ast.TextComma:
			_, mErr = w.Write([]byte(","))
		case ast.TextContent, ast.TextEscaped:
			_, mErr = w.Write([]byte(t.Value))
		case ast.TextHyphen:
			_, mErr = w.Write([]byte("-"))
		case ast.TextMath:
			_, mErr = w.Write([]byte("$" + t.Value + "$"))
		case ast.TextNBSP, ast.TextSpace:
			_, mErr = w.Write([]byte(" "))
		case ast.TextSpecial:
			r, err := RenderAccent(t.Accent, t.Value)
			if err != nil {
				// Fall back to the unaccented base character rather than failing
				// the whole render.
				_, mErr = w.Write([]byte(t.Value))
				return mErr
			}
			_, mErr = w.Write([]byte(string(r)))
		default:
			return fmt.Errorf("renderer - unhandled ast.Text kind: %s", t.Kind)
		}
	default:
		return fmt.Errorf("renderer - unhandled ast.Expr type %T, %v", t, t)
	}
	return nil
}

// identAbbrevDecl returns the @string declaration an identifier resolved to,
// if any.
func identAbbrevDecl(ident *ast.Ident) (*ast.AbbrevDecl, bool) {
	if ident.Obj == nil {
		return nil, false
	}
	decl, ok := ident.Obj.Decl.(*ast.AbbrevDecl)
	if !ok || decl.Tag == nil {
		return nil, false
	}
	return decl, true
}

// RenderToString is a convenience wrapper that renders x and returns the
// accumulated plain text.
func RenderToString(r *TextRenderer, x ast.Expr) (string, error) {
	sb := &strings.Builder{}
	sb.Grow(32)
	if err := r.Render(sb, x); err != nil {
		return "", err
	}
	return sb.String(), nil
}
