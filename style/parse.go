package style

import (
	"fmt"
	gotok "go/token"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/jschaf/citeproc/reference"
)

// Parse reads a CSL style document and builds its typed Style. Position
// information in returned errors is approximate (etree does not track line
// numbers), so Pos.Line is always 0 - the Message carries the offending
// element's tag instead.
func Parse(xml []byte) (*Style, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xml); err != nil {
		return nil, newError(ErrorParse, gotok.Position{}, "%v", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, newError(ErrorParse, gotok.Position{}, "empty document")
	}
	if localName(root.Tag) != "style" {
		return nil, newError(ErrorInvalid, gotok.Position{}, "root element is %q, want cs:style", root.Tag)
	}
	if parentID := root.SelectAttrValue("independent-parent", ""); parentID != "" {
		return nil, newDependentStyleError(parentID)
	}
	return newParser(root).parseStyle()
}

func localName(tag string) string {
	if i := strings.IndexByte(tag, ':'); i >= 0 {
		return tag[i+1:]
	}
	return tag
}

type parser struct {
	root   *etree.Element
	macros map[string]Macro
}

func newParser(root *etree.Element) *parser {
	return &parser{root: root, macros: make(map[string]Macro)}
}

func (p *parser) errf(el *etree.Element, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	if el != nil {
		msg = fmt.Sprintf("<%s>: %s", el.Tag, msg)
	}
	return newError(ErrorInvalid, gotok.Position{}, "%s", msg)
}

func (p *parser) parseStyle() (*Style, error) {
	s := &Style{
		Macros:          make(map[string]Macro),
		LocaleOverrides: make(map[string]Element),
	}
	s.Class = parseClass(p.root.SelectAttrValue("class", "in-text"))
	s.Version = p.root.SelectAttrValue("version", "1.0")
	s.DefaultLocale = p.root.SelectAttrValue("default-locale", "")

	for _, child := range p.root.ChildElements() {
		switch localName(child.Tag) {
		case "macro":
			name := child.SelectAttrValue("name", "")
			if name == "" {
				return nil, p.errf(child, "missing name attribute")
			}
			els, err := p.parseElements(child)
			if err != nil {
				return nil, err
			}
			m := Macro{Name: name, Elements: els}
			s.Macros[name] = m
			p.macros[name] = m
		case "citation":
			c, err := p.parseCitation(child)
			if err != nil {
				return nil, err
			}
			s.Citation = c
		case "bibliography":
			b, err := p.parseBibliography(child)
			if err != nil {
				return nil, err
			}
			s.Bibliography = b
		case "info":
			// Bibliographic metadata about the style itself; not needed to
			// evaluate it.
		}
	}
	return s, nil
}

func parseClass(s string) Class {
	switch s {
	case "numeric":
		return ClassNumeric
	case "note":
		return ClassNote
	case "label":
		return ClassLabel
	case "in-text":
		return ClassInText
	default:
		return ClassAuthorDate
	}
}

func (p *parser) parseCitation(el *etree.Element) (*Citation, error) {
	c := &Citation{
		NearNoteDistance: attrInt(el, "near-note-distance", 5),
		Collapse:         parseCollapse(el.SelectAttrValue("collapse", "")),
	}
	c.Disambiguation = CiteDisambiguation{
		DisambiguateAddNames:        attrBool(el, "disambiguate-add-names", false),
		DisambiguateAddGivenName:    attrBool(el, "disambiguate-add-givenname", false),
		DisambiguateAddYearSuffix:   attrBool(el, "disambiguate-add-year-suffix", false),
		GivenNameDisambiguationRule: el.SelectAttrValue("givenname-disambiguation-rule", "all-names"),
	}
	c.CiteGroupDelimiter = Delimiter(el.SelectAttrValue("cite-group-delimiter", ", "))
	c.YearSuffixDelimiter = Delimiter(el.SelectAttrValue("year-suffix-delimiter", ""))
	c.AfterCollapseDelimiter = Delimiter(el.SelectAttrValue("after-collapse-delimiter", ""))

	for _, child := range el.ChildElements() {
		switch localName(child.Tag) {
		case "layout":
			els, err := p.parseElements(child)
			if err != nil {
				return nil, err
			}
			c.Layout = els
			c.LayoutDelimiter = Delimiter(child.SelectAttrValue("delimiter", ""))
			c.LayoutFormatting = parseFormatting(child)
			c.LayoutAffixes = parseAffixes(child)
		case "sort":
			sort, err := p.parseSort(child)
			if err != nil {
				return nil, err
			}
			c.Sort = sort
		}
	}
	return c, nil
}

func parseCollapse(s string) CollapseMode {
	switch s {
	case "citation-number":
		return CollapseCitationNumber
	case "year":
		return CollapseYear
	case "year-suffix":
		return CollapseYearSuffix
	case "year-suffix-ranged":
		return CollapseYearSuffixRanged
	default:
		return CollapseNone
	}
}

func (p *parser) parseBibliography(el *etree.Element) (*Bibliography, error) {
	b := &Bibliography{
		HangingIndent:    attrBool(el, "hanging-indent", false),
		SecondFieldAlign: el.SelectAttrValue("second-field-align", ""),
		LineSpacing:      attrInt(el, "line-spacing", 1),
		EntrySpacing:     attrInt(el, "entry-spacing", 1),
		SubsequentAuthorSubstitute: el.SelectAttrValue("subsequent-author-substitute", ""),
	}
	for _, child := range el.ChildElements() {
		switch localName(child.Tag) {
		case "layout":
			els, err := p.parseElements(child)
			if err != nil {
				return nil, err
			}
			b.Layout = els
			b.LayoutDelimiter = Delimiter(child.SelectAttrValue("delimiter", ""))
			b.LayoutFormatting = parseFormatting(child)
			b.LayoutAffixes = parseAffixes(child)
		case "sort":
			sort, err := p.parseSort(child)
			if err != nil {
				return nil, err
			}
			b.Sort = sort
		}
	}
	return b, nil
}

func (p *parser) parseSort(el *etree.Element) (*Sort, error) {
	s := &Sort{}
	for _, key := range el.ChildElements() {
		if localName(key.Tag) != "key" {
			continue
		}
		sk := SortKey{Ascending: key.SelectAttrValue("sort", "ascending") != "descending"}
		if v := key.SelectAttrValue("variable", ""); v != "" {
			sk.Variable = reference.LookupVariable(v)
		} else if m := key.SelectAttrValue("macro", ""); m != "" {
			if _, ok := p.macros[m]; !ok {
				return nil, p.errf(key, "unresolved macro reference %q", m)
			}
			sk.MacroName = m
		} else {
			return nil, p.errf(key, "missing variable or macro attribute")
		}
		s.Keys = append(s.Keys, sk)
	}
	return s, nil
}

// parseElements parses every child element of el into the Element tagged
// union, skipping elements it doesn't recognize (forward-compatibility
// with style features this package doesn't model, like cs:info metadata
// appearing out of place).
func (p *parser) parseElements(el *etree.Element) ([]Element, error) {
	var out []Element
	for _, child := range el.ChildElements() {
		e, err := p.parseElement(child)
		if err != nil {
			return nil, err
		}
		if e != nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (p *parser) parseElement(el *etree.Element) (Element, error) {
	switch localName(el.Tag) {
	case "text":
		return p.parseText(el)
	case "number":
		return p.parseNumber(el)
	case "label":
		return p.parseLabel(el)
	case "date":
		return p.parseDate(el)
	case "names":
		return p.parseNames(el)
	case "group":
		return p.parseGroup(el)
	case "choose":
		return p.parseChoose(el)
	default:
		return nil, nil
	}
}

func (p *parser) parseText(el *etree.Element) (*Text, error) {
	t := &Text{
		Formatting:   parseFormatting(el),
		Affixes:      parseAffixes(el),
		Quotes:       attrBool(el, "quotes", false),
		StripPeriods: attrBool(el, "strip-periods", false),
		TextCase:     parseTextCase(el.SelectAttrValue("text-case", "")),
		Display:      parseDisplay(el.SelectAttrValue("display", "")),
	}
	switch {
	case hasAttr(el, "macro"):
		t.Source = TextSource{Kind: TextSourceMacro, MacroName: el.SelectAttrValue("macro", "")}
		if _, ok := p.macros[t.Source.MacroName]; !ok {
			return nil, p.errf(el, "unresolved macro reference %q", t.Source.MacroName)
		}
	case hasAttr(el, "value"):
		t.Source = TextSource{Kind: TextSourceValue, Value: el.SelectAttrValue("value", "")}
	case hasAttr(el, "variable"):
		name := el.SelectAttrValue("variable", "")
		t.Source = TextSource{
			Kind:     TextSourceVariable,
			Variable: reference.LookupVariable(name),
			VarForm:  parseVariableForm(el.SelectAttrValue("form", "long")),
		}
	case hasAttr(el, "term"):
		t.Source = TextSource{
			Kind:       TextSourceTerm,
			Term:       el.SelectAttrValue("term", ""),
			TermPlural: attrBool(el, "plural", false),
		}
	default:
		return nil, p.errf(el, "missing source attribute (one of macro, value, variable, term)")
	}
	return t, nil
}

func parseVariableForm(s string) VariableForm {
	if s == "short" {
		return VariableFormShort
	}
	return VariableFormLong
}

func (p *parser) parseNumber(el *etree.Element) (*Number, error) {
	name := el.SelectAttrValue("variable", "")
	if name == "" {
		return nil, p.errf(el, "missing variable attribute")
	}
	return &Number{
		Variable:   reference.NumberVariable(name),
		Form:       parseNumericForm(el.SelectAttrValue("form", "numeric")),
		Formatting: parseFormatting(el),
		Affixes:    parseAffixes(el),
		TextCase:   parseTextCase(el.SelectAttrValue("text-case", "")),
		Display:    parseDisplay(el.SelectAttrValue("display", "")),
	}, nil
}

func parseNumericForm(s string) NumericForm {
	switch s {
	case "ordinal":
		return NumericFormOrdinal
	case "roman":
		return NumericFormRoman
	case "long-ordinal":
		return NumericFormLongOrdinal
	default:
		return NumericFormNumeric
	}
}

func (p *parser) parseLabel(el *etree.Element) (*Label, error) {
	name := el.SelectAttrValue("variable", "")
	if name == "" {
		return nil, p.errf(el, "missing variable attribute")
	}
	return &Label{
		Variable:     reference.LookupVariable(name),
		Form:         parseVariableForm(el.SelectAttrValue("form", "long")),
		Plural:       parsePlural(el.SelectAttrValue("plural", "contextual")),
		Formatting:   parseFormatting(el),
		Affixes:      parseAffixes(el),
		StripPeriods: attrBool(el, "strip-periods", false),
		TextCase:     parseTextCase(el.SelectAttrValue("text-case", "")),
	}, nil
}

func parsePlural(s string) Plural {
	switch s {
	case "always":
		return PluralAlways
	case "never":
		return PluralNever
	default:
		return PluralContextual
	}
}

func (p *parser) parseGroup(el *etree.Element) (*Group, error) {
	els, err := p.parseElements(el)
	if err != nil {
		return nil, err
	}
	return &Group{
		Elements:   els,
		Delimiter:  Delimiter(el.SelectAttrValue("delimiter", "")),
		Formatting: parseFormatting(el),
		Affixes:    parseAffixes(el),
		Display:    parseDisplay(el.SelectAttrValue("display", "")),
		IsParallel: attrBool(el, "parallel", false),
	}, nil
}

func (p *parser) parseDate(el *etree.Element) (*Date, error) {
	name := el.SelectAttrValue("variable", "")
	if name == "" {
		return nil, p.errf(el, "missing variable attribute")
	}
	v := reference.DateVariable(name)
	parts, err := p.parseDateParts(el)
	if err != nil {
		return nil, err
	}
	formatting := parseFormatting(el)
	affixes := parseAffixes(el)
	textCase := parseTextCase(el.SelectAttrValue("text-case", ""))
	display := parseDisplay(el.SelectAttrValue("display", ""))

	if form := el.SelectAttrValue("form", ""); form != "" {
		return &Date{Localized: &LocalizedDate{
			Variable:      v,
			Form:          parseDateForm(form),
			PartsSelector: parseDatePartsSelector(el.SelectAttrValue("date-parts", "year-month-day")),
			DateParts:     parts,
			Formatting:    formatting,
			Affixes:       affixes,
			TextCase:      textCase,
			Display:       display,
		}}, nil
	}
	return &Date{Independent: &IndependentDate{
		Variable:   v,
		Parts:      parts,
		Delimiter:  Delimiter(el.SelectAttrValue("delimiter", "")),
		Formatting: formatting,
		Affixes:    affixes,
		TextCase:   textCase,
		Display:    display,
	}}, nil
}

func parseDateForm(s string) DateForm {
	if s == "text" {
		return DateFormText
	}
	return DateFormNumeric
}

func parseDatePartsSelector(s string) DatePartsSelector {
	switch s {
	case "year-month":
		return DatePartsYearMonth
	case "year":
		return DatePartsYear
	default:
		return DatePartsYearMonthDay
	}
}

func (p *parser) parseDateParts(el *etree.Element) ([]DatePart, error) {
	var out []DatePart
	for _, child := range el.ChildElements() {
		if localName(child.Tag) != "date-part" {
			continue
		}
		form, err := ParseDatePartForm(child.SelectAttrValue("name", ""), child.SelectAttrValue("form", ""))
		if err != nil {
			return nil, p.errf(child, "%v", err)
		}
		out = append(out, DatePart{
			Form:           form,
			Formatting:     parseFormatting(child),
			Affixes:        parseAffixes(child),
			TextCase:       parseTextCase(child.SelectAttrValue("text-case", "")),
			RangeDelimiter: RangeDelimiter(child.SelectAttrValue("range-delimiter", "-")),
		})
	}
	return out, nil
}

// ParseDatePartForm classifies a cs:date-part's name and form attributes
// into a DatePartForm. Exported so locale's cs:date parser (which shares
// the date-part vocabulary but lives in a sibling package with no
// dependency back on style's XML internals) can reuse the same mapping
// rather than duplicating CSL's date-part grammar.
func ParseDatePartForm(name, form string) (DatePartForm, error) {
	switch name {
	case "year":
		if form == "short" {
			return DatePartFormYearShort, nil
		}
		return DatePartFormYear, nil
	case "month":
		switch form {
		case "numeric-leading-zeros":
			return DatePartFormMonthNumericLeadingZeros, nil
		case "short":
			return DatePartFormMonthShort, nil
		case "long", "":
			return DatePartFormMonthLong, nil
		default:
			return DatePartFormMonthNumeric, nil
		}
	case "day":
		switch form {
		case "ordinal":
			return DatePartFormDayOrdinal, nil
		case "numeric-leading-zeros":
			return DatePartFormDayNumericLeadingZeros, nil
		default:
			return DatePartFormDayNumeric, nil
		}
	default:
		return 0, fmt.Errorf("unknown date-part name %q", name)
	}
}

func (p *parser) parseNames(el *etree.Element) (*Names, error) {
	n := &Names{
		Delimiter:  Delimiter(el.SelectAttrValue("delimiter", "")),
		Formatting: parseFormatting(el),
		Affixes:    parseAffixes(el),
		Display:    parseDisplay(el.SelectAttrValue("display", "")),
	}
	for _, v := range strings.Fields(el.SelectAttrValue("variable", "")) {
		n.Variables = append(n.Variables, reference.NameVariable(v))
	}
	for _, child := range el.ChildElements() {
		switch localName(child.Tag) {
		case "name":
			name, err := p.parseName(child)
			if err != nil {
				return nil, err
			}
			n.Name = name
		case "label":
			n.Label = &NameLabel{
				Form:         parseVariableForm(child.SelectAttrValue("form", "long")),
				Plural:       parsePlural(child.SelectAttrValue("plural", "contextual")),
				Formatting:   parseFormatting(child),
				Affixes:      parseAffixes(child),
				StripPeriods: attrBool(child, "strip-periods", false),
				TextCase:     parseTextCase(child.SelectAttrValue("text-case", "")),
			}
		case "substitute":
			els, err := p.parseElements(child)
			if err != nil {
				return nil, err
			}
			n.Substitute = &Substitute{Elements: els}
		}
	}
	return n, nil
}

func (p *parser) parseName(el *etree.Element) (*Name, error) {
	n := &Name{
		And:                       Delimiter(el.SelectAttrValue("and", "")),
		Delimiter:                 Delimiter(el.SelectAttrValue("delimiter", ", ")),
		DelimiterPrecedesEtAl:     parseDelimiterPrecedes(el.SelectAttrValue("delimiter-precedes-et-al", "contextual")),
		DelimiterPrecedesLast:     parseDelimiterPrecedes(el.SelectAttrValue("delimiter-precedes-last", "contextual")),
		EtAlMin:                   attrInt(el, "et-al-min", 0),
		EtAlUseFirst:              attrInt(el, "et-al-use-first", 1),
		EtAlUseLast:               attrBool(el, "et-al-use-last", false),
		EtAlSubsequentMin:         attrInt(el, "et-al-subsequent-min", 0),
		EtAlSubsequentUseFirst:    attrInt(el, "et-al-subsequent-use-first", 0),
		Form:                      parseNameForm(el.SelectAttrValue("form", "long")),
		Initialize:                parseInitialize(el.SelectAttrValue("initialize", "true")),
		InitializeWith:            el.SelectAttrValue("initialize-with", ""),
		NameAsSortOrder:           parseNameAsSortOrder(el.SelectAttrValue("name-as-sort-order", "")),
		SortSeparator:             el.SelectAttrValue("sort-separator", ", "),
		DemoteNonDroppingParticle: parseDemoteNonDroppingParticle(el.SelectAttrValue("demote-non-dropping-particle", "display-and-sort")),
		Formatting:                parseFormatting(el),
		Affixes:                   parseAffixes(el),
	}
	for _, child := range el.ChildElements() {
		if localName(child.Tag) != "name-part" {
			continue
		}
		n.Parts = append(n.Parts, NamePart{
			IsFamily:   child.SelectAttrValue("name", "") == "family",
			Formatting: parseFormatting(child),
			Affixes:    parseAffixes(child),
			TextCase:   parseTextCase(child.SelectAttrValue("text-case", "")),
		})
	}
	return n, nil
}

func parseNameForm(s string) NameForm {
	if s == "short" {
		return NameFormShort
	}
	return NameFormLong
}

func parseInitialize(s string) Initialize {
	if s == "false" {
		return InitializeFalse
	}
	return InitializeTrue
}

func parseNameAsSortOrder(s string) NameAsSortOrder {
	switch s {
	case "first":
		return NameAsSortOrderFirst
	case "all":
		return NameAsSortOrderAll
	default:
		return NameAsSortOrderNone
	}
}

func parseDemoteNonDroppingParticle(s string) DemoteNonDroppingParticle {
	switch s {
	case "never":
		return DemoteNonDroppingParticleNever
	case "sort-only":
		return DemoteNonDroppingParticleSortOnly
	default:
		return DemoteNonDroppingParticleDisplayAndSort
	}
}

func parseDelimiterPrecedes(s string) DelimiterPrecedes {
	switch s {
	case "always":
		return DelimiterPrecedesAlways
	case "never":
		return DelimiterPrecedesNever
	case "after-inverted-name":
		return DelimiterPrecedesAfterInvertedName
	default:
		return DelimiterPrecedesContextual
	}
}

func (p *parser) parseChoose(el *etree.Element) (*Choose, error) {
	c := &Choose{}
	for _, child := range el.ChildElements() {
		switch localName(child.Tag) {
		case "if":
			it, err := p.parseIfThen(child)
			if err != nil {
				return nil, err
			}
			c.If = it
		case "else-if":
			it, err := p.parseIfThen(child)
			if err != nil {
				return nil, err
			}
			c.ElseIfs = append(c.ElseIfs, it)
		case "else":
			els, err := p.parseElements(child)
			if err != nil {
				return nil, err
			}
			c.Else = els
		}
	}
	return c, nil
}

func (p *parser) parseIfThen(el *etree.Element) (IfThen, error) {
	els, err := p.parseElements(el)
	if err != nil {
		return IfThen{}, err
	}
	condSet, err := p.parseCondSet(el)
	if err != nil {
		return IfThen{}, err
	}
	return IfThen{CondSet: condSet, Elements: els}, nil
}

// parseCondSet reads the attribute-encoded conditions of a cs:if or
// cs:else-if. Each attribute that's present contributes one Cond;
// space-separated values within an attribute (e.g. variable="author
// editor") each become a separate Cond, all combined by the same Match.
func (p *parser) parseCondSet(el *etree.Element) (CondSet, error) {
	cs := CondSet{Match: parseMatch(el.SelectAttrValue("match", "all"))}

	for _, name := range strings.Fields(el.SelectAttrValue("variable", "")) {
		cs.Conds = append(cs.Conds, Cond{Kind: CondVariable, Variable: reference.LookupVariable(name)})
	}
	for _, name := range strings.Fields(el.SelectAttrValue("is-numeric", "")) {
		cs.Conds = append(cs.Conds, Cond{Kind: CondIsNumeric, Variable: reference.LookupVariable(name)})
	}
	for _, name := range strings.Fields(el.SelectAttrValue("is-uncertain-date", "")) {
		cs.Conds = append(cs.Conds, Cond{Kind: CondIsUncertainDate, Variable: reference.LookupVariable(name)})
	}
	for _, t := range strings.Fields(el.SelectAttrValue("type", "")) {
		cs.Conds = append(cs.Conds, Cond{Kind: CondType, EntryType: t})
	}
	for _, loc := range strings.Fields(el.SelectAttrValue("locator", "")) {
		cs.Conds = append(cs.Conds, Cond{Kind: CondLocator, LocatorType: reference.LocatorType(loc)})
	}
	if hasAttr(el, "disambiguate") {
		cs.Conds = append(cs.Conds, Cond{Kind: CondDisambiguate, Disambiguate: attrBool(el, "disambiguate", false)})
	}
	for _, pos := range strings.Fields(el.SelectAttrValue("position", "")) {
		pt, err := parsePositionTest(pos)
		if err != nil {
			return CondSet{}, p.errf(el, "%v", err)
		}
		cs.Conds = append(cs.Conds, Cond{Kind: CondPosition, Position: pt})
	}
	for _, ctx := range strings.Fields(el.SelectAttrValue("context", "")) {
		ct := ContextTestCitation
		if ctx == "bibliography" {
			ct = ContextTestBibliography
		}
		cs.Conds = append(cs.Conds, Cond{Kind: CondContext, Context: ct})
	}
	return cs, nil
}

func parsePositionTest(s string) (PositionTest, error) {
	switch s {
	case "first":
		return PositionTestFirst, nil
	case "ibid":
		return PositionTestIbid, nil
	case "ibid-with-locator":
		return PositionTestIbidWithLocator, nil
	case "subsequent":
		return PositionTestSubsequent, nil
	case "near-note":
		return PositionTestNearNote, nil
	default:
		return 0, fmt.Errorf("unknown position test %q", s)
	}
}

func parseMatch(s string) Match {
	switch s {
	case "any":
		return MatchAny
	case "none":
		return MatchNone
	case "nand":
		return MatchNand
	default:
		return MatchAll
	}
}

func parseTextCase(s string) TextCase {
	switch s {
	case "lowercase":
		return TextCaseLowercase
	case "uppercase":
		return TextCaseUppercase
	case "capitalize-first":
		return TextCaseCapitalizeFirst
	case "capitalize-all":
		return TextCaseCapitalizeAll
	case "sentence":
		return TextCaseSentence
	case "title":
		return TextCaseTitle
	default:
		return TextCaseNone
	}
}

func parseDisplay(s string) DisplayMode {
	switch s {
	case "block":
		return DisplayBlock
	case "left-margin":
		return DisplayLeftMargin
	case "right-inline":
		return DisplayRightInline
	case "indent":
		return DisplayIndent
	default:
		return DisplayNone
	}
}

func parseAffixes(el *etree.Element) Affixes {
	return Affixes{
		Prefix: el.SelectAttrValue("prefix", ""),
		Suffix: el.SelectAttrValue("suffix", ""),
	}
}

func parseFormatting(el *etree.Element) Formatting {
	var f Formatting
	if v := el.SelectAttrValue("font-style", ""); v != "" {
		fs := map[string]FontStyle{"normal": FontStyleNormal, "italic": FontStyleItalic, "oblique": FontStyleOblique}[v]
		f.FontStyle = &fs
	}
	if v := el.SelectAttrValue("font-variant", ""); v != "" {
		fv := map[string]FontVariant{"normal": FontVariantNormal, "small-caps": FontVariantSmallCaps}[v]
		f.FontVariant = &fv
	}
	if v := el.SelectAttrValue("font-weight", ""); v != "" {
		fw := map[string]FontWeight{"normal": FontWeightNormal, "bold": FontWeightBold, "light": FontWeightLight}[v]
		f.FontWeight = &fw
	}
	if v := el.SelectAttrValue("text-decoration", ""); v != "" {
		td := map[string]TextDecoration{"none": TextDecorationNone, "underline": TextDecorationUnderline}[v]
		f.TextDecoration = &td
	}
	if v := el.SelectAttrValue("vertical-align", ""); v != "" {
		va := map[string]VerticalAlignment{
			"baseline": VerticalAlignmentBaseline, "sup": VerticalAlignmentSuperscript, "sub": VerticalAlignmentSubscript,
		}[v]
		f.VerticalAlignment = &va
	}
	return f
}

func hasAttr(el *etree.Element, name string) bool {
	return el.SelectAttr(name) != nil
}

func attrBool(el *etree.Element, name string, def bool) bool {
	v := el.SelectAttrValue(name, "")
	if v == "" {
		return def
	}
	return v == "true"
}

func attrInt(el *etree.Element, name string, def int) int {
	v := el.SelectAttrValue(name, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
