package sparql

import (
	"strconv"

	"github.com/ProTraitInfra/libre-clinica-upload/extract"
)

// XSD datatypes whose bindings must parse before they count as values.
var integerDatatypes = map[string]bool{
	"http://www.w3.org/2001/XMLSchema#int":     true,
	"http://www.w3.org/2001/XMLSchema#integer": true,
}

const doubleDatatype = "http://www.w3.org/2001/XMLSchema#double"

// Binding is one variable binding in a SPARQL 1.1 JSON result.
type Binding struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// ResultSet is a SPARQL 1.1 JSON result document.
type ResultSet struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]Binding `json:"bindings"`
	} `json:"results"`
}

// Columns returns the declared result variables in head order.
func (rs *ResultSet) Columns() []string {
	return rs.Head.Vars
}

// Len returns the number of result rows.
func (rs *ResultSet) Len() int {
	return len(rs.Results.Bindings)
}

// Rows converts the bindings to extraction rows, applying the typed-cast
// rule: integer-datatyped bindings must parse as integers and doubles as
// floats, and a failed cast drops the value (missing), never errors. URI
// bindings pass through as their IRI string.
func (rs *ResultSet) Rows() []extract.Row {
	rows := make([]extract.Row, 0, len(rs.Results.Bindings))
	for _, bindings := range rs.Results.Bindings {
		row := make(extract.Row, len(rs.Head.Vars))
		for _, col := range rs.Head.Vars {
			binding, ok := bindings[col]
			if !ok {
				continue
			}
			if value, ok := castValue(binding); ok {
				row[col] = value
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// castValue validates a binding's value against its declared datatype.
func castValue(b Binding) (string, bool) {
	switch {
	case integerDatatypes[b.Datatype]:
		if _, err := strconv.Atoi(b.Value); err != nil {
			return "", false
		}
	case b.Datatype == doubleDatatype:
		if _, err := strconv.ParseFloat(b.Value, 64); err != nil {
			return "", false
		}
	}
	return b.Value, true
}
