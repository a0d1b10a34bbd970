package reference

import "testing"

func TestReference_HasVariable(t *testing.T) {
	r := New("smith99", "book")
	r.Ordinary[VarTitle] = "A Title"
	r.Number[NumVolume] = NewNumericValue("3")
	r.Names[NameAuthor] = []Name{{Family: "Smith", Given: "J"}}
	r.Dates[DateIssued] = NewSingleDate(Date{Year: 1999})

	tests := []struct {
		name string
		v    AnyVariable
		want bool
	}{
		{"present ordinary", VarTitle, true},
		{"absent ordinary", VarAbstract, false},
		{"present number", NumVolume, true},
		{"absent number", NumIssue, false},
		{"present name", NameAuthor, true},
		{"absent name", NameEditor, false},
		{"present date", DateIssued, true},
		{"absent date", DateAccessed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.HasVariable(tt.v); got != tt.want {
				t.Errorf("HasVariable(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestReference_HasVariable_emptyOrdinaryIsAbsent(t *testing.T) {
	r := New("x", "book")
	r.Ordinary[VarTitle] = ""
	if r.HasVariable(VarTitle) {
		t.Error("empty ordinary string should report HasVariable = false")
	}
}
