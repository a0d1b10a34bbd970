package reference

// Name is one entry in a name-variable list (e.g. one author). A name is
// either a structured person name (Family/Given and the optional particle
// and suffix fields) or a literal string used verbatim (for institutional
// authors like "World Health Organization").
//
// CommaSuffix records whether the input explicitly requested a comma before
// Suffix ("Smith, John, Jr." vs. "Smith, John Jr.") — name rendering reads
// it directly rather than guessing from Suffix's contents.
type Name struct {
	Family              string
	Given               string
	NonDroppingParticle string
	DroppingParticle    string
	Suffix              string
	CommaSuffix         bool

	// Literal holds the verbatim string for a non-person name. IsLiteral
	// distinguishes a legitimately empty Literal ("") from a structured
	// name with every field blank.
	Literal   string
	IsLiteral bool
}

// IsEmpty reports whether the name carries no data at all.
func (n Name) IsEmpty() bool {
	if n.IsLiteral {
		return n.Literal == ""
	}
	return n.Family == "" && n.Given == "" && n.NonDroppingParticle == "" &&
		n.DroppingParticle == "" && n.Suffix == ""
}
