// Package export renders catalog cards: small RDF documents describing a
// registered form definition and its extraction runs, for FAIR data
// station catalogs.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ProTraitInfra/libre-clinica-upload/form"
	"github.com/ProTraitInfra/libre-clinica-upload/graph"
	"github.com/ProTraitInfra/libre-clinica-upload/vocabulary/genericlist"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// Entity classes asserted on card subjects.
const (
	ClassFormDefinition = genericlist.Namespace + "FormDefinition"
	ClassExtractionRun  = genericlist.Namespace + "ExtractionRun"
)

// Triple is one predicate/object pair on a card entity. Predicates are
// dotted vocabulary names; the writer resolves them to IRIs.
type Triple struct {
	Predicate string
	Object    any
}

// Entity is one card subject with its class and triples.
type Entity struct {
	ID      string
	Class   string
	Triples []Triple
}

// CardWriter accumulates entities and serializes them as a catalog card.
type CardWriter struct {
	entities []Entity
	prefixes map[string]string
}

// NewCardWriter creates an empty card writer.
func NewCardWriter() *CardWriter {
	return &CardWriter{
		prefixes: defaultPrefixes(),
	}
}

// defaultPrefixes returns the namespace prefixes for card output.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":  "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"xsd":  "http://www.w3.org/2001/XMLSchema#",
		"dc":   "http://purl.org/dc/terms/",
		"prov": "http://www.w3.org/ns/prov#",
		"gl":   genericlist.Namespace,
		"ent":  genericlist.EntityNamespace,
	}
}

// AddDefinition adds the form definition entity to the card.
func (w *CardWriter) AddDefinition(def *form.Definition) {
	triples := make([]Triple, 0, 16)
	for _, t := range graph.BuildDefinitionTriples(def) {
		triples = append(triples, Triple{Predicate: t.Predicate, Object: t.Object})
	}
	w.entities = append(w.entities, Entity{
		ID:      graph.FormEntityID(def),
		Class:   ClassFormDefinition,
		Triples: triples,
	})
}

// AddRun adds one extraction run entity to the card.
func (w *CardWriter) AddRun(run graph.RunSummary, def *form.Definition) {
	triples := make([]Triple, 0, 8)
	for _, t := range graph.BuildRunTriples(run, def) {
		triples = append(triples, Triple{Predicate: t.Predicate, Object: t.Object})
	}
	w.entities = append(w.entities, Entity{
		ID:      graph.RunEntityID(run.ID),
		Class:   ClassExtractionRun,
		Triples: triples,
	})
}

// Write serializes all entities to the specified format.
func (w *CardWriter) Write(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return w.toTurtle(), nil
	case FormatNTriples:
		return w.toNTriples(), nil
	case FormatJSONLD:
		return w.toJSONLD(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// Card renders the definition-only card in one call.
func Card(def *form.Definition, format Format) (string, error) {
	w := NewCardWriter()
	w.AddDefinition(def)
	return w.Write(format)
}

// sortedPrefixes keeps output deterministic across runs.
func (w *CardWriter) sortedPrefixes() []string {
	keys := make([]string, 0, len(w.prefixes))
	for k := range w.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// toTurtle serializes to Turtle format.
func (w *CardWriter) toTurtle() string {
	var sb strings.Builder

	for _, prefix := range w.sortedPrefixes() {
		fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", prefix, w.prefixes[prefix])
	}
	sb.WriteString("\n")

	for _, entity := range w.entities {
		w.writeEntityTurtle(&sb, entity)
		sb.WriteString("\n")
	}

	return sb.String()
}

// writeEntityTurtle writes a single entity in Turtle format.
func (w *CardWriter) writeEntityTurtle(sb *strings.Builder, entity Entity) {
	fmt.Fprintf(sb, "<%s>\n", entityIDToIRI(entity.ID))
	fmt.Fprintf(sb, "    a <%s>", entity.Class)

	for _, triple := range entity.Triples {
		sb.WriteString(" ;\n")
		fmt.Fprintf(sb, "    <%s> %s", genericlist.IRI(triple.Predicate), formatObject(triple.Object))
	}
	sb.WriteString(" .\n")
}

// toNTriples serializes to N-Triples format.
func (w *CardWriter) toNTriples() string {
	var sb strings.Builder

	rdfType := "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	for _, entity := range w.entities {
		iri := entityIDToIRI(entity.ID)
		fmt.Fprintf(&sb, "<%s> <%s> <%s> .\n", iri, rdfType, entity.Class)

		for _, triple := range entity.Triples {
			fmt.Fprintf(&sb, "<%s> <%s> %s .\n",
				iri, genericlist.IRI(triple.Predicate), formatObjectNTriples(triple.Object))
		}
	}

	return sb.String()
}

// toJSONLD serializes to JSON-LD format.
func (w *CardWriter) toJSONLD() string {
	var sb strings.Builder

	sb.WriteString("{\n")
	sb.WriteString("  \"@context\": {\n")

	prefixes := w.sortedPrefixes()
	for i, prefix := range prefixes {
		fmt.Fprintf(&sb, "    %q: %q", prefix, w.prefixes[prefix])
		if i < len(prefixes)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  },\n")
	sb.WriteString("  \"@graph\": [\n")

	for i, entity := range w.entities {
		w.writeEntityJSONLD(&sb, entity)
		if i < len(w.entities)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("  ]\n")
	sb.WriteString("}\n")

	return sb.String()
}

// writeEntityJSONLD writes a single entity in JSON-LD format.
func (w *CardWriter) writeEntityJSONLD(sb *strings.Builder, entity Entity) {
	sb.WriteString("    {\n")
	fmt.Fprintf(sb, "      \"@id\": %q,\n", entityIDToIRI(entity.ID))
	fmt.Fprintf(sb, "      \"@type\": %q", entity.Class)

	for _, triple := range entity.Triples {
		sb.WriteString(",\n")
		fmt.Fprintf(sb, "      %q: %s",
			genericlist.IRI(triple.Predicate), formatObjectJSONLD(triple.Object))
	}

	sb.WriteString("\n    }")
}

// entityIDToIRI converts a dotted entity ID to an IRI.
// Example: "protrait.local.list.form.F_GENERICLIST@1.4.0"
//
//	-> "https://w3id.org/protrait/entity/list/form/F_GENERICLIST@1.4.0"
func entityIDToIRI(entityID string) string {
	const localPrefix = "protrait.local."
	if !strings.HasPrefix(entityID, localPrefix) {
		return genericlist.EntityNamespace + entityID
	}

	rest := strings.TrimPrefix(entityID, localPrefix)

	// The version suffix keeps its dots; only the path segments split.
	path, version, versioned := strings.Cut(rest, "@")
	iri := genericlist.EntityNamespace + strings.ReplaceAll(path, ".", "/")
	if versioned {
		iri += "@" + version
	}
	return iri
}

// entityReference reports whether a string object points at another card
// entity rather than being a plain literal.
func entityReference(v string) bool {
	return strings.HasPrefix(v, "protrait.local.")
}

// formatObject formats an object value for Turtle output.
func formatObject(obj any) string {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("<%s>", v)
		}
		if entityReference(v) {
			return fmt.Sprintf("<%s>", entityIDToIRI(v))
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^xsd:dateTime", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^xsd:integer", v)
	case float32, float64:
		return fmt.Sprintf("\"%f\"^^xsd:decimal", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^xsd:boolean", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// formatObjectNTriples formats an object value for N-Triples output.
func formatObjectNTriples(obj any) string {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("<%s>", v)
		}
		if entityReference(v) {
			return fmt.Sprintf("<%s>", entityIDToIRI(v))
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^<http://www.w3.org/2001/XMLSchema#dateTime>", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^<http://www.w3.org/2001/XMLSchema#integer>", v)
	case float32, float64:
		return fmt.Sprintf("\"%f\"^^<http://www.w3.org/2001/XMLSchema#decimal>", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^<http://www.w3.org/2001/XMLSchema#boolean>", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// formatObjectJSONLD formats an object value for JSON-LD output.
func formatObjectJSONLD(obj any) string {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("{\"@id\": %q}", v)
		}
		if entityReference(v) {
			return fmt.Sprintf("{\"@id\": %q}", entityIDToIRI(v))
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("{\"@value\": %q, \"@type\": \"xsd:dateTime\"}", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("%d", v)
	case float32, float64:
		return fmt.Sprintf("%f", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
