package reference

import "testing"

func TestName_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		n    Name
		want bool
	}{
		{"zero value", Name{}, true},
		{"structured with family", Name{Family: "Smith"}, false},
		{"empty literal", Name{IsLiteral: true}, true},
		{"non-empty literal", Name{IsLiteral: true, Literal: "World Health Organization"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}
