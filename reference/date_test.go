package reference

import "testing"

func TestDateOrRange_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		d    DateOrRange
		want bool
	}{
		{"zero value", DateOrRange{}, true},
		{"single with year", NewSingleDate(Date{Year: 1999}), false},
		{"range", NewDateRange(Date{Year: 1999}, Date{Year: 2001}), false},
		{"empty range", NewDateRange(Date{}, Date{}), true},
		{"literal", NewLiteralDate("circa 1850"), false},
		{"empty literal", NewLiteralDate(""), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDate_seasonEncoding(t *testing.T) {
	d := Date{Year: 2020, Month: SeasonSummer}
	if d.Month != 14 {
		t.Errorf("SeasonSummer should encode as month 14, got %d", d.Month)
	}
}
