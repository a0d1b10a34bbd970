package reference

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewNumericValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want NumericValue
	}{
		{"plain integer", "42", NumericValue{Raw: "42", IsNumeric: true, Nums: []int{42}}},
		{"hyphen range", "5-9", NumericValue{Raw: "5-9", IsNumeric: true, Nums: []int{5, 9}, Delimiter: "-"}},
		{"comma pair", "5, 7", NumericValue{Raw: "5, 7", IsNumeric: true, Nums: []int{5, 7}, Delimiter: ", "}},
		{"roman numeral stays text", "iv", NumericValue{Raw: "iv"}},
		{"empty", "", NumericValue{Raw: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewNumericValue(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NewNumericValue(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestNumericValue_String(t *testing.T) {
	tests := []struct {
		name string
		v    NumericValue
		want string
	}{
		{"single", NewNumericValue("42"), "42"},
		{"range", NewNumericValue("5-9"), "5-9"},
		{"non-numeric passthrough", NewNumericValue("iv"), "iv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
