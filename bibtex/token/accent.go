package token

// Accent identifies which LaTeX accent command produced a StringAccent
// token, keyed by the command's marker character (\'{o}, \c{c}, \^{e}, ...).
// render.RenderAccent maps one of these plus a base rune to the matching
// precomposed Unicode character.
type Accent rune

const (
	AccentAcute      Accent = '\'' // \'{o} -> ó
	AccentCedilla    Accent = 'c'  // \c{c} -> ç
	AccentCircumflex Accent = '^'  // \^{e} -> ê
	AccentDot        Accent = '.'  // \.{z} -> ż
	AccentGrave      Accent = '`'  // \`{e} -> è
	AccentTilde      Accent = '~'  // \~{n} -> ñ
	AccentUmlaut     Accent = '"'  // \"{u} -> ü
)
