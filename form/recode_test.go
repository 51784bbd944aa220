package form

import (
	"errors"
	"testing"
)

func TestRecodeGender(t *testing.T) {
	field := Field{Column: ColGender, Kind: RecodeGender}

	tests := []struct {
		name        string
		raw         string
		found       bool
		want        string
		wantPresent bool
	}{
		{"dutch female token", "V ", true, "2", true},
		{"female word", "female", true, "2", true},
		{"female letter", "f", true, "2", true},
		{"female code", "2", true, "2", true},
		{"dutch male token", "M ", true, "1", true},
		{"male word", "male", true, "1", true},
		{"male letter", "m", true, "1", true},
		{"male code", "1", true, "1", true},
		{"unknown maps to sentinel", "x", true, "9", true},
		{"case sensitive: Female is unknown", "Female", true, "9", true},
		{"trailing space matters: V without space is unknown", "V", true, "9", true},
		{"absent stays absent", "", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present, err := field.Recode(tt.raw, tt.found)
			if err != nil {
				t.Fatalf("Recode() error = %v", err)
			}
			if got != tt.want || present != tt.wantPresent {
				t.Errorf("Recode(%q) = (%q, %v), want (%q, %v)", tt.raw, got, present, tt.want, tt.wantPresent)
			}
		})
	}
}

func TestRecodeAge(t *testing.T) {
	field := Field{Column: ColAge, Kind: RecodeAge}

	tests := []struct {
		name        string
		raw         string
		found       bool
		want        string
		wantPresent bool
	}{
		{"adult passes through", "19", true, "19", true},
		{"upper band edge excluded", "18", true, "", false},
		{"lower band edge excluded", "0", true, "", false},
		{"mid band excluded", "12", true, "", false},
		{"negative passes through", "-1", true, "-1", true},
		{"unparseable passes through", "old", true, "old", true},
		{"absent stays absent", "", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present, err := field.Recode(tt.raw, tt.found)
			if err != nil {
				t.Fatalf("Recode() error = %v", err)
			}
			if got != tt.want || present != tt.wantPresent {
				t.Errorf("Recode(%q) = (%q, %v), want (%q, %v)", tt.raw, got, present, tt.want, tt.wantPresent)
			}
		})
	}
}

func TestRecodeCentre(t *testing.T) {
	field := Field{Column: ColCentre, Kind: RecodeCentre}

	tests := []struct {
		name  string
		raw   string
		found bool
		want  string
	}{
		{"known clinic", "Maastro Clinic", true, "3"},
		{"known clinic short form", "MAASTRO", true, "3"},
		{"literal null", "null", true, "0"},
		{"unknown hospital", "Unknown Hospital", true, "0"},
		{"absent defaults", "", false, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present, err := field.Recode(tt.raw, tt.found)
			if err != nil {
				t.Fatalf("Recode() error = %v", err)
			}
			if !present {
				t.Error("centre recode must always be present")
			}
			if got != tt.want {
				t.Errorf("Recode(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRecodeSmoking(t *testing.T) {
	field := Field{Column: ColSmoking, Kind: RecodeSmoking}

	tests := []struct {
		name        string
		raw         string
		found       bool
		want        string
		wantPresent bool
	}{
		{"ex-smoker text", "Yes, in the past (ex-smoker)", true, "1", true},
		{"ex-smoker code", "1", true, "1", true},
		{"current smoker text", "Yes, currently (smoker)", true, "2", true},
		{"current smoker code", "2", true, "2", true},
		{"non-smoker text", "No (non-smoker)", true, "0", true},
		{"non-smoker code", "0", true, "0", true},
		{"unmatched passes through", "pipe only", true, "pipe only", true},
		{"absent stays absent", "", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present, err := field.Recode(tt.raw, tt.found)
			if err != nil {
				t.Fatalf("Recode() error = %v", err)
			}
			if got != tt.want || present != tt.wantPresent {
				t.Errorf("Recode(%q) = (%q, %v), want (%q, %v)", tt.raw, got, present, tt.want, tt.wantPresent)
			}
		})
	}
}

func TestRecodeYesNo(t *testing.T) {
	field := Field{Column: ColReirradiation, Kind: RecodeYesNo}

	tests := []struct {
		name        string
		raw         string
		found       bool
		want        string
		wantPresent bool
		wantErr     bool
	}{
		{"upper yes", "YES", true, "1", true, false},
		{"title yes", "Yes", true, "1", true, false},
		{"lower yes", "yes", true, "1", true, false},
		{"numeric yes", "1", true, "1", true, false},
		{"upper no", "NO", true, "0", true, false},
		{"title no", "No", true, "0", true, false},
		{"lower no", "no", true, "0", true, false},
		{"numeric no", "0", true, "0", true, false},
		{"outside both families is unresolved", "maybe", true, "", false, true},
		{"absent stays absent", "", false, "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present, err := field.Recode(tt.raw, tt.found)
			if tt.wantErr {
				if !errors.Is(err, ErrUnresolvedValue) {
					t.Fatalf("expected ErrUnresolvedValue, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Recode() error = %v", err)
			}
			if got != tt.want || present != tt.wantPresent {
				t.Errorf("Recode(%q) = (%q, %v), want (%q, %v)", tt.raw, got, present, tt.want, tt.wantPresent)
			}
		})
	}
}

func TestRecodeWeight(t *testing.T) {
	field := Field{Column: ColWeight, Kind: RecodeWeight}

	tests := []struct {
		name        string
		raw         string
		found       bool
		want        string
		wantPresent bool
	}{
		{"decimal rounds down", "72.4", true, "72", true},
		{"decimal rounds half up", "80.5", true, "81", true},
		{"integer passes", "68", true, "68", true},
		{"unparseable defaults", "abc", true, "0", true},
		{"unit suffix is unparseable", "80.4 kg", true, "0", true},
		{"absent stays absent", "", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present, err := field.Recode(tt.raw, tt.found)
			if err != nil {
				t.Fatalf("Recode() error = %v", err)
			}
			if got != tt.want || present != tt.wantPresent {
				t.Errorf("Recode(%q) = (%q, %v), want (%q, %v)", tt.raw, got, present, tt.want, tt.wantPresent)
			}
		})
	}
}

func TestRecodePresence(t *testing.T) {
	field := Field{Column: ColComparison, Kind: RecodePresence, DependsOn: ColComparisonDate}

	got, present, err := field.Recode("", true)
	if err != nil || !present || got != "1" {
		t.Errorf("bound source: got (%q, %v, %v), want (1, true, nil)", got, present, err)
	}

	got, present, err = field.Recode("", false)
	if err != nil || !present || got != "0" {
		t.Errorf("unbound source: got (%q, %v, %v), want (0, true, nil)", got, present, err)
	}
}

func TestRecodeNonePassesThrough(t *testing.T) {
	field := Field{Column: ColWHO, Kind: RecodeNone}

	got, present, err := field.Recode("2 - ambulatory", true)
	if err != nil || !present || got != "2 - ambulatory" {
		t.Errorf("got (%q, %v, %v), want passthrough", got, present, err)
	}

	_, present, err = field.Recode("", false)
	if err != nil || present {
		t.Errorf("absent input must stay absent")
	}
}
