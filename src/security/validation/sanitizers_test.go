package validation

import "testing"

func TestSanitizeForFormulaInjection(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Maria Silva", "Maria Silva"},
		{"=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"+351 912 345 678", "'+351 912 345 678"},
		{"-10", "'-10"},
		{"@import", "'@import"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeForFormulaInjection(tt.in); got != tt.want {
			t.Errorf("SanitizeForFormulaInjection(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripUnprintable(t *testing.T) {
	in := "Maria\x00 Silva\t\n"
	want := "Maria Silva\t\n"
	if got := StripUnprintable(in); got != want {
		t.Errorf("StripUnprintable(%q) = %q, want %q", in, got, want)
	}
}
