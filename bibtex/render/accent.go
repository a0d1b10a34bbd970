package render

import (
	"fmt"

	"github.com/jschaf/citeproc/bibtex/token"
)

// precomposed maps an accent marker rune plus a base letter (e.g. "'a" for
// \'{a}) to the single precomposed Unicode rune TeX would have typeset.
var precomposed = map[string]rune{
	// grave (`)
	"`a": 'à', "`e": 'è', "`i": 'ì', "`o": 'ò', "`u": 'ù',
	"`A": 'À', "`E": 'È', "`I": 'Ì', "`O": 'Ò', "`U": 'Ù',

	// acute (')
	"'a": 'á', "'e": 'é', "'i": 'í', "'o": 'ó', "'u": 'ú', "'y": 'ý',
	"'A": 'Á', "'E": 'É', "'I": 'Í', "'O": 'Ó', "'U": 'Ú', "'Y": 'Ý',

	// circumflex (^)
	"^a": 'â', "^e": 'ê', "^i": 'î', "^o": 'ô', "^u": 'û',
	"^A": 'Â', "^E": 'Ê', "^I": 'Î', "^O": 'Ô', "^U": 'Û',

	// umlaut/diaeresis (")
	`"a`: 'ä', `"e`: 'ë', `"i`: 'ï', `"o`: 'ö', `"u`: 'ü',
	`"A`: 'Ä', `"E`: 'Ë', `"I`: 'Ï', `"O`: 'Ö', `"U`: 'Ü',

	// tilde (~)
	"~a": 'ã', "~n": 'ñ', "~o": 'õ',
	"~A": 'Ã', "~N": 'Ñ', "~O": 'Õ',

	// cedilla (c)
	"cc": 'ç', "cC": 'Ç',

	// dot above (.)
	".c": 'ċ', ".e": 'ė', ".g": 'ġ', ".i": 'ı', ".z": 'ż',
	".C": 'Ċ', ".E": 'Ė', ".G": 'Ġ', ".I": 'İ', ".Z": 'Ż',
}

// RenderAccent combines accent with the single-rune base text into the
// precomposed character it denotes (e.g. AccentAcute + "a" -> 'á'). text
// must be exactly one rune: the parser only ever calls this once it has
// isolated the base letter an accent command applies to.
func RenderAccent(accent token.Accent, text string) (rune, error) {
	if len(text) == 0 {
		return 0, fmt.Errorf("cannot render accent %q for empty text", accent)
	}
	if len(text) > 1 {
		return 0, fmt.Errorf("cannot render accent %q for multi-rune text %q", accent, text)
	}
	if accent == 0 {
		return 0, fmt.Errorf("cannot render accent for empty accent")
	}
	r, ok := precomposed[string(accent)+text]
	if !ok {
		return 0, fmt.Errorf("invalid combination: cannot apply %q accent to character %q", accent, text)
	}
	return r, nil
}
