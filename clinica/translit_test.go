package clinica

import "testing"

func TestToASCII(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii untouched", "Maastro Clinic", "Maastro Clinic"},
		{"accents folded", "Hôpital Universitaire Genève", "Hopital Universitaire Geneve"},
		{"dutch diaeresis", "reïrradiatie", "reirradiatie"},
		{"unrepresentable runes dropped", "dose 70 Gy €", "dose 70 Gy "},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToASCII(tt.input); got != tt.want {
				t.Errorf("ToASCII(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
