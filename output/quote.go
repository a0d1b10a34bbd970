package output

import "regexp"

// closingQuoteThenPunct matches the curly closing quote wrap() uses, any
// HTML closing tags a Link/Text call nested inside the quoted run (an
// htmlWriter's Text interleaves no markup between quote and punctuation,
// but OpenFormat/CloseFormat pairs from an enclosing cs:group can), and a
// trailing period or comma sitting just outside the quote.
var closingQuoteThenPunct = regexp.MustCompile(`”((?:</[a-zA-Z0-9]+>)*)([.,])`)

// MovePunctuationInQuotes implements spec.md §6.5's American-style
// punctuation-in-quote movement: a period or comma immediately following a
// closing quote mark moves inside the quote, ahead of any closing markup
// tags between the quote and the punctuation. Locales that leave
// punctuation-in-quote unset (the British/Commonwealth convention) never
// call this; the quote and punctuation stay in source order.
func MovePunctuationInQuotes(s string) string {
	return closingQuoteThenPunct.ReplaceAllString(s, "$2”$1")
}
