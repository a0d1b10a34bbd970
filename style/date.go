package style

import "github.com/jschaf/citeproc/reference"

// DatePartForm selects which calendar field a cs:date-part renders and,
// implicitly, how (the Day/Month/Year variants below).
type DatePartForm int

const (
	DatePartFormYear DatePartForm = iota
	DatePartFormYearShort
	DatePartFormMonthNumeric
	DatePartFormMonthNumericLeadingZeros
	DatePartFormMonthLong
	DatePartFormMonthShort
	DatePartFormDayNumeric
	DatePartFormDayNumericLeadingZeros
	DatePartFormDayOrdinal
)

// RangeDelimiter joins the two ends of a date range, e.g. "-" in
// "1999-2001".
type RangeDelimiter string

// DatePart is one cs:date-part (year, month, or day), either as it appears
// directly under an independent cs:date, or as a local override of a
// localized date's part from the locale's date table.
type DatePart struct {
	Form           DatePartForm
	Formatting     Formatting
	Affixes        Affixes
	TextCase       TextCase
	RangeDelimiter RangeDelimiter
}

// DatePartsSelector restricts which parts of a localized date actually
// render: the full year-month-day, or a truncation.
type DatePartsSelector int

const (
	DatePartsYearMonthDay DatePartsSelector = iota
	DatePartsYearMonth
	DatePartsYear
)

// IndependentDate is cs:date with its own date-part children (form is
// implicit from which parts are present, rather than looked up from the
// locale's date table).
type IndependentDate struct {
	Variable   reference.DateVariable
	Parts      []DatePart
	Delimiter  Delimiter
	Formatting Formatting
	Affixes    Affixes
	TextCase   TextCase
	Display    DisplayMode
}

// DateForm selects which of the locale's two date templates (numeric or
// text) a cs:date with form="..." pulls from.
type DateForm int

const (
	DateFormNumeric DateForm = iota
	DateFormText
)

// LocalizedDate is cs:date with form="numeric"|"text": its date-part
// children, if any, only override attributes of the locale's template parts
// (see spec.md §4.5) rather than replacing them outright.
type LocalizedDate struct {
	Variable      reference.DateVariable
	Form          DateForm
	PartsSelector DatePartsSelector
	// DateParts holds only the parts the style explicitly overrides;
	// unlisted forms fall through to the locale's own part attributes.
	DateParts  []DatePart
	Formatting Formatting
	Affixes    Affixes
	TextCase   TextCase
	Display    DisplayMode
}

// Date wraps either date shape behind the Element interface.
type Date struct {
	Independent *IndependentDate
	Localized   *LocalizedDate
}
