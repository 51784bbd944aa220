// Package sparql renders the generic list mapping as its canonical SPARQL
// query artifact and evaluates it against a remote endpoint.
package sparql

import (
	"fmt"
	"strings"

	"github.com/ProTraitInfra/libre-clinica-upload/form"
	"github.com/ProTraitInfra/libre-clinica-upload/vocabulary/ncit"
	"github.com/ProTraitInfra/libre-clinica-upload/vocabulary/roo"
)

// Render produces the SELECT DISTINCT query for the mapping definition.
// Output is deterministic: field order follows the table, variable names
// derive from column names. The text is consumed verbatim by external
// triple stores, so the recode semantics live in BIND/IF/COALESCE
// expressions inside each OPTIONAL group.
func Render(def *form.Definition) string {
	var sb strings.Builder

	sb.WriteString("PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>\n")
	sb.WriteString("PREFIX xsd: <http://www.w3.org/2001/XMLSchema#>\n")
	fmt.Fprintf(&sb, "PREFIX ncit: <%s>\n", ncit.Namespace)
	fmt.Fprintf(&sb, "PREFIX roo: <%s>\n\n", roo.Namespace)

	sb.WriteString("SELECT DISTINCT")
	for _, col := range def.Columns() {
		sb.WriteString(" ?" + col)
	}
	sb.WriteString("\nWHERE {\n")

	// Required anchor: patient type plus the mandatory fields. A patient
	// missing any of these contributes no result row.
	fmt.Fprintf(&sb, "    ?patient rdf:type <%s> .\n", ncit.ClassPatient)
	for _, field := range def.RequiredFields() {
		writePathTriples(&sb, "    ", field.Path, "?"+field.Column, varPrefix(field.Column))
	}
	sb.WriteString("\n")

	for _, field := range def.Fields {
		if field.Required || field.Kind == form.RecodePresence {
			continue
		}
		writeOptional(&sb, field)
	}

	// Always-present derivations after the optionals.
	for _, field := range def.Fields {
		switch field.Kind {
		case form.RecodeCentre:
			fmt.Fprintf(&sb, "    BIND(COALESCE(?%s_mapped, \"0\") AS ?%s)\n",
				varPrefix(field.Column), field.Column)
		case form.RecodePresence:
			fmt.Fprintf(&sb, "    BIND(IF(BOUND(?%s), \"1\", \"0\") AS ?%s)\n",
				field.DependsOn, field.Column)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// varPrefix derives intermediate variable names from a column name.
func varPrefix(column string) string {
	return strings.ToLower(column)
}

// writePathTriples emits the triple chain for one path, ending in the
// given terminal variable. Intermediate node variables are numbered off
// the field's variable prefix.
func writePathTriples(sb *strings.Builder, indent string, path form.Path, terminalVar, prefix string) {
	subject := "?patient"
	for i, hop := range path {
		object := terminalVar
		if i < len(path)-1 {
			object = fmt.Sprintf("?%s_n%d", prefix, i+1)
		}
		fmt.Fprintf(sb, "%s%s <%s> %s .\n", indent, subject, hop, object)
		subject = object
	}
}

// writeOptional emits one OPTIONAL group: the path triples plus the
// field's recode expression.
func writeOptional(sb *strings.Builder, field form.Field) {
	prefix := varPrefix(field.Column)

	terminal := "?" + field.Column
	if field.Kind != form.RecodeNone {
		terminal = fmt.Sprintf("?%s_raw", prefix)
	}

	sb.WriteString("    OPTIONAL {\n")
	writePathTriples(sb, "        ", field.Path, terminal, prefix)

	switch field.Kind {
	case form.RecodeGender:
		fmt.Fprintf(sb,
			"        BIND(IF(%s IN (\"V \", \"female\", \"f\", \"2\"), \"2\","+
				" IF(%s IN (\"M \", \"male\", \"m\", \"1\"), \"1\", \"9\")) AS ?%s)\n",
			terminal, terminal, field.Column)

	case form.RecodeAge:
		// Paediatric exclusion: drop the binding inside the OPTIONAL so
		// the column stays unbound for ages 0-18.
		fmt.Fprintf(sb,
			"        FILTER(!(xsd:integer(%s) >= 0 && xsd:integer(%s) <= 18))\n",
			terminal, terminal)
		fmt.Fprintf(sb, "        BIND(%s AS ?%s)\n", terminal, field.Column)

	case form.RecodeCentre:
		// The final COALESCE outside the optionals supplies the "0"
		// default for absent values.
		fmt.Fprintf(sb,
			"        BIND(IF(%s IN (\"Maastro Clinic\", \"MAASTRO\"), \"3\", \"0\") AS ?%s_mapped)\n",
			terminal, prefix)

	case form.RecodeSmoking:
		fmt.Fprintf(sb,
			"        BIND(IF(%s IN (\"Yes, in the past (ex-smoker)\", \"1\"), \"1\","+
				" IF(%s IN (\"Yes, currently (smoker)\", \"2\"), \"2\","+
				" IF(%s IN (\"No (non-smoker)\", \"0\"), \"0\", %s))) AS ?%s)\n",
			terminal, terminal, terminal, terminal, field.Column)

	case form.RecodeYesNo:
		// No catch-all: the else arm references a never-bound variable,
		// so the BIND errors and the column stays unbound for values
		// outside both token families.
		fmt.Fprintf(sb,
			"        BIND(IF(%s IN (\"YES\", \"Yes\", \"yes\", \"1\"), \"1\","+
				" IF(%s IN (\"NO\", \"No\", \"no\", \"0\"), \"0\", ?%s_unresolved)) AS ?%s)\n",
			terminal, terminal, prefix, field.Column)

	case form.RecodeWeight:
		fmt.Fprintf(sb,
			"        BIND(COALESCE(STR(xsd:integer(ROUND(xsd:decimal(%s)))), \"0\") AS ?%s)\n",
			terminal, field.Column)
	}

	sb.WriteString("    }\n")
}
