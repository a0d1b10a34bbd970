package locale

// TermForm selects which inflected form of a term to use: long is the
// default, short and verb forms are CSL extensions used by a handful of
// terms (e.g. "editor"/"ed."/"edited by").
type TermForm int

const (
	TermFormLong TermForm = iota
	TermFormShort
	TermFormVerb
	TermFormVerbShort
	TermFormSymbol
)

// Gender is the grammatical gender a gendered term carries, consulted when
// rendering an ordinal suffix that agrees with the term it modifies (e.g.
// "1st edition" vs a language where the ordinal suffix depends on the
// noun's gender).
type Gender int

const (
	GenderNeuter Gender = iota
	GenderMasculine
	GenderFeminine
)

// PluralForm distinguishes a term's singular and plural spellings.
type PluralForm int

const (
	PluralFormSingular PluralForm = iota
	PluralFormPlural
)

// termKey identifies one (name, form) slot in the simple and role term
// tables.
type termKey struct {
	Name string
	Form TermForm
}

// SimpleTerm is a term with only singular/plural variants (most CSL
// terms: "page", "volume", "and", ...).
type SimpleTerm struct {
	Singular string
	Plural   string
}

// Get returns the term's spelling for the requested plurality, falling
// back to Singular if Plural is unset (CSL: an absent plural form
// defaults to the singular spelling).
func (t SimpleTerm) Get(p PluralForm) string {
	if p == PluralFormPlural && t.Plural != "" {
		return t.Plural
	}
	return t.Singular
}

// GenderedTerm is a simple term that also carries a grammatical Gender,
// used by role terms like "editor" that other ordinal/label rendering
// agrees with.
type GenderedTerm struct {
	SimpleTerm
	Gender Gender
}

// OrdinalTerm is one entry of an ordinal-suffix table (e.g. the "st" in
// "1st"), keyed by a match number (1, 2, 3, or a "rest" bucket under key
// 0) and optionally restricted by gender agreement with a paired noun.
type OrdinalTerm struct {
	MatchNumber int
	Gender      Gender
	SimpleTerm
}

// OrdinalMatch selects how an ordinal term's MatchNumber is compared
// against the number being rendered: spec.md §4.4 distinguishes
// whole-number matching from last-two-digits matching, with the last
// digit winning when the number is under 10.
type OrdinalMatch int

const (
	OrdinalMatchWholeNumber OrdinalMatch = iota
	OrdinalMatchLastTwoDigits
	OrdinalMatchLastDigit
)

// Terms is the full term table for one language: simple terms (including
// the role terms, which additionally carry gender), and ordinal terms.
type Terms struct {
	Simple   map[termKey]SimpleTerm
	Gendered map[termKey]GenderedTerm
	Ordinal  []OrdinalTerm
	// LongOrdinal holds the 1st-10th spelled-out ordinals ("first",
	// "second", ...) CSL's long-ordinal number form uses; keyed by the
	// number itself (1-10), falling back to regular ordinal rendering past
	// 10.
	LongOrdinal map[int]string
}

func newTerms() *Terms {
	return &Terms{
		Simple:      make(map[termKey]SimpleTerm),
		Gendered:    make(map[termKey]GenderedTerm),
		LongOrdinal: make(map[int]string),
	}
}

// SetSimple records a simple term under (name, form), used by both the
// generic term table and as the merge target for gendered/role terms'
// plain SimpleTerm half.
func (t *Terms) SetSimple(name string, form TermForm, term SimpleTerm) {
	t.Simple[termKey{name, form}] = term
}

// GetSimple looks up a plain term by name and form, falling back to
// TermFormLong if the requested form is absent - CSL terms that don't
// define a short/verb form fall through to the long spelling.
func (t *Terms) GetSimple(name string, form TermForm) (SimpleTerm, bool) {
	if v, ok := t.Simple[termKey{name, form}]; ok {
		return v, true
	}
	if form != TermFormLong {
		if v, ok := t.Simple[termKey{name, TermFormLong}]; ok {
			return v, true
		}
	}
	return SimpleTerm{}, false
}

// SetGendered records a role term (one that also carries grammatical
// gender) under (name, form).
func (t *Terms) SetGendered(name string, form TermForm, term GenderedTerm) {
	t.Gendered[termKey{name, form}] = term
}

func (t *Terms) GetGendered(name string, form TermForm) (GenderedTerm, bool) {
	if v, ok := t.Gendered[termKey{name, form}]; ok {
		return v, true
	}
	if form != TermFormLong {
		if v, ok := t.Gendered[termKey{name, TermFormLong}]; ok {
			return v, true
		}
	}
	return GenderedTerm{}, false
}

// Ordinal looks up the ordinal suffix for n under the given match policy,
// falling back to the 0-keyed "rest" bucket when no specific MatchNumber
// matches (spec.md §4.4's "last-digit default under 10").
func (t *Terms) Ordinal(n int, gender Gender, match OrdinalMatch) (string, bool) {
	key := n
	switch match {
	case OrdinalMatchLastTwoDigits:
		key = n % 100
	case OrdinalMatchLastDigit:
		// English's 11th/12th/13th break the last-digit pattern; fall
		// through to the rest-bucket for the teens rather than matching
		// MatchNumber 1/2/3.
		if mod100 := n % 100; n >= 10 && mod100 >= 11 && mod100 <= 13 {
			key = -1
		} else {
			key = n % 10
		}
	}
	var fallback *OrdinalTerm
	for i := range t.Ordinal {
		ot := &t.Ordinal[i]
		if ot.Gender != GenderNeuter && ot.Gender != gender {
			continue
		}
		if ot.MatchNumber == key {
			return ot.Get(PluralFormSingular), true
		}
		if ot.MatchNumber == 0 {
			fallback = ot
		}
	}
	if fallback != nil {
		return fallback.Get(PluralFormSingular), true
	}
	return "", false
}
