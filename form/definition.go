// Package form defines the generic list field-extraction mapping: the
// static table of output columns, their graph paths, and their value
// normalization rules, plus the form metadata record consumed by the
// registry collaborator.
package form

import (
	"errors"
	"fmt"
)

// ErrUnknownColumn is returned when a column name is not in the mapping.
var ErrUnknownColumn = errors.New("unknown column")

// ErrUnresolvedValue is returned by recodes whose rule list declares no
// catch-all when the raw value matches no enumerated case.
var ErrUnresolvedValue = errors.New("unresolved recode value")

// Path is an ordered list of predicate IRIs walked from a patient node to
// a literal. Intermediate hops land on observation nodes; the final hop
// lands on the value literal.
type Path []string

// RecodeKind selects the normalization rule applied to a field's raw value.
type RecodeKind int

const (
	// RecodeNone passes the raw value through unchanged.
	RecodeNone RecodeKind = iota

	// RecodeGender maps raw sex tokens to "1"/"2" with "9" for unknown.
	RecodeGender

	// RecodeAge treats resolved ages in [0,18] as absent.
	RecodeAge

	// RecodeCentre maps known facility names to centre codes, "0" otherwise.
	RecodeCentre

	// RecodeSmoking maps smoking status tokens to "0"/"1"/"2", raw otherwise.
	RecodeSmoking

	// RecodeYesNo maps yes/no token families to "1"/"0" with no catch-all.
	RecodeYesNo

	// RecodeWeight parses a decimal, rounds to the nearest integer, "0" on
	// parse failure.
	RecodeWeight

	// RecodePresence recodes another column's boundness to "1"/"0".
	RecodePresence
)

// Field is one declared output column.
type Field struct {
	// Column is the SELECT variable and registry item name suffix.
	Column string

	// Path is the predicate chain from the patient node to the value
	// literal. Empty for derived fields.
	Path Path

	// Required marks the field as part of the mandatory anchor pattern.
	// A patient missing a required field contributes no row.
	Required bool

	// Kind selects the normalization applied to the resolved raw value.
	Kind RecodeKind

	// DependsOn names the source column for derived fields.
	DependsOn string

	// Doc is the human-readable field label.
	Doc string
}

// Meta is the form metadata record. It is passed through unchanged to the
// registry collaborator that registers this extraction as one generic list
// entry among others.
type Meta struct {
	StudyOID        string
	StudyIdentifier string
	EventOID        string
	FormOID         string
	ItemGroupOID    string

	// IdentifierColumn designates the subject identifier column.
	IdentifierColumn string

	// GenderColumn designates the column used when creating study subjects.
	GenderColumn string

	// BirthYearColumn designates the column used for downstream linkage.
	BirthYearColumn string

	// ItemPrefix is prepended to column names to form registry item OIDs.
	ItemPrefix string
}

// Definition is the complete, versioned field-extraction mapping.
// Definitions are immutable once constructed; the package singleton is
// never mutated after load.
type Definition struct {
	Version string
	Meta    Meta
	Fields  []Field
}

// Columns returns all column names in canonical declaration order.
func (d *Definition) Columns() []string {
	cols := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		cols[i] = f.Column
	}
	return cols
}

// FieldByColumn returns the field declared for the given column name.
func (d *Definition) FieldByColumn(name string) (Field, error) {
	for _, f := range d.Fields {
		if f.Column == name {
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
}

// RequiredFields returns the fields that anchor the mandatory pattern.
func (d *Definition) RequiredFields() []Field {
	var required []Field
	for _, f := range d.Fields {
		if f.Required {
			required = append(required, f)
		}
	}
	return required
}

// Validate checks the structural invariants of the mapping table.
func (d *Definition) Validate() error {
	if d.Version == "" {
		return fmt.Errorf("definition version is required")
	}
	if d.Meta.ItemPrefix == "" {
		return fmt.Errorf("item prefix is required")
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("definition has no fields")
	}

	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if f.Column == "" {
			return fmt.Errorf("field with empty column name")
		}
		if seen[f.Column] {
			return fmt.Errorf("duplicate column: %s", f.Column)
		}
		seen[f.Column] = true

		if f.Required && len(f.Path) == 0 {
			return fmt.Errorf("required field %s has no path", f.Column)
		}
		if f.Kind == RecodePresence {
			if f.DependsOn == "" {
				return fmt.Errorf("derived field %s names no source column", f.Column)
			}
		} else if len(f.Path) == 0 {
			return fmt.Errorf("field %s has neither path nor source column", f.Column)
		}
	}

	// Derived fields must reference declared columns.
	for _, f := range d.Fields {
		if f.DependsOn != "" && !seen[f.DependsOn] {
			return fmt.Errorf("derived field %s depends on unknown column %s", f.Column, f.DependsOn)
		}
	}

	for _, designated := range []struct {
		role   string
		column string
	}{
		{"identifier", d.Meta.IdentifierColumn},
		{"gender", d.Meta.GenderColumn},
		{"birth year", d.Meta.BirthYearColumn},
	} {
		if designated.column == "" {
			return fmt.Errorf("no %s column designated", designated.role)
		}
		if !seen[designated.column] {
			return fmt.Errorf("designated %s column %s is not declared", designated.role, designated.column)
		}
	}

	return nil
}
