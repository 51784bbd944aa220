package form

import (
	"fmt"
	"math"
	"strconv"
)

// Token sets for the enumerated recodes. Matching is case-sensitive and
// ordered: these reproduce the exact value lists of the registry mapping,
// including the trailing spaces in the single-letter Dutch sex tokens.
var (
	genderFemaleTokens = []string{"V ", "female", "f", "2"}
	genderMaleTokens   = []string{"M ", "male", "m", "1"}

	centreTokens = []string{"Maastro Clinic", "MAASTRO"}

	smokingPastTokens    = []string{"Yes, in the past (ex-smoker)", "1"}
	smokingCurrentTokens = []string{"Yes, currently (smoker)", "2"}
	smokingNeverTokens   = []string{"No (non-smoker)", "0"}

	yesTokens = []string{"YES", "Yes", "yes", "1"}
	noTokens  = []string{"NO", "No", "no", "0"}
)

// GenderUnknown is the sentinel emitted for sex values outside both token
// families.
const GenderUnknown = "9"

// Recode applies the field's normalization rule to a raw extracted value.
// found reports whether the field's path resolved at all.
//
// The returned present flag is false when the field must stay absent in
// the output row. ErrUnresolvedValue is returned only by rule lists that
// declare no catch-all (RecodeYesNo); every other kind is total over its
// inputs.
func (f Field) Recode(raw string, found bool) (string, bool, error) {
	switch f.Kind {
	case RecodeGender:
		return recodeGender(raw, found)
	case RecodeAge:
		return recodeAge(raw, found)
	case RecodeCentre:
		return recodeCentre(raw, found)
	case RecodeSmoking:
		return recodeSmoking(raw, found)
	case RecodeYesNo:
		return recodeYesNo(raw, found)
	case RecodeWeight:
		return recodeWeight(raw, found)
	case RecodePresence:
		return recodePresence(found)
	default:
		return raw, found, nil
	}
}

func matchesAny(raw string, tokens []string) bool {
	for _, t := range tokens {
		if raw == t {
			return true
		}
	}
	return false
}

// recodeGender is total and exhaustive: every found value maps to exactly
// one of "1", "2", "9". First match wins.
func recodeGender(raw string, found bool) (string, bool, error) {
	if !found {
		return "", false, nil
	}
	if matchesAny(raw, genderFemaleTokens) {
		return "2", true, nil
	}
	if matchesAny(raw, genderMaleTokens) {
		return "1", true, nil
	}
	return GenderUnknown, true, nil
}

// recodeAge excludes the paediatric band: a resolved integer age in [0,18]
// is treated as absent. Unparseable values pass through unchanged.
func recodeAge(raw string, found bool) (string, bool, error) {
	if !found {
		return "", false, nil
	}
	if age, err := strconv.Atoi(raw); err == nil && age >= 0 && age <= 18 {
		return "", false, nil
	}
	return raw, true, nil
}

// recodeCentre is always present: known facility strings map to centre
// code "3"; anything else, including the literal "null" and absence, maps
// to "0".
func recodeCentre(raw string, found bool) (string, bool, error) {
	if found && matchesAny(raw, centreTokens) {
		return "3", true, nil
	}
	return "0", true, nil
}

func recodeSmoking(raw string, found bool) (string, bool, error) {
	if !found {
		return "", false, nil
	}
	if matchesAny(raw, smokingPastTokens) {
		return "1", true, nil
	}
	if matchesAny(raw, smokingCurrentTokens) {
		return "2", true, nil
	}
	if matchesAny(raw, smokingNeverTokens) {
		return "0", true, nil
	}
	return raw, true, nil
}

// recodeYesNo declares no catch-all: values outside both token families
// are unresolved, not silently coerced. Callers decide whether that is a
// diagnostic or a hard error.
func recodeYesNo(raw string, found bool) (string, bool, error) {
	if !found {
		return "", false, nil
	}
	if matchesAny(raw, yesTokens) {
		return "1", true, nil
	}
	if matchesAny(raw, noTokens) {
		return "0", true, nil
	}
	return "", false, fmt.Errorf("%w: %q", ErrUnresolvedValue, raw)
}

// recodeWeight parses the textual value as a decimal and rounds half away
// from zero. A found but unparseable value degrades to "0" for this field
// only; absence stays absent.
func recodeWeight(raw string, found bool) (string, bool, error) {
	if !found {
		return "", false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "0", true, nil
	}
	return strconv.Itoa(int(math.Round(v))), true, nil
}

func recodePresence(found bool) (string, bool, error) {
	if found {
		return "1", true, nil
	}
	return "0", true, nil
}
