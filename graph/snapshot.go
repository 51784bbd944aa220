// Package graph provides the in-memory triple snapshot the extraction
// evaluates against, plus utilities for publishing generic list entities
// to the knowledge graph.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ProTraitInfra/libre-clinica-upload/form"
	"github.com/c360studio/semstreams/message"
)

// RDFType is the rdf:type predicate IRI.
const RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// XSD datatype IRIs assigned to literals adapted from ingest payloads.
const (
	XSDInteger = "http://www.w3.org/2001/XMLSchema#integer"
	XSDDouble  = "http://www.w3.org/2001/XMLSchema#double"
	XSDBoolean = "http://www.w3.org/2001/XMLSchema#boolean"
)

// TermKind discriminates IRI terms from literal terms.
type TermKind int

const (
	// TermIRI is a node reference; intermediate path hops follow these.
	TermIRI TermKind = iota

	// TermLiteral is a value; terminal path hops collect these.
	TermLiteral
)

// Term is one object position in a triple.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
}

// IRITerm builds an IRI term.
func IRITerm(iri string) Term {
	return Term{Kind: TermIRI, Value: iri}
}

// LiteralTerm builds a plain literal term.
func LiteralTerm(value string) Term {
	return Term{Kind: TermLiteral, Value: value}
}

// TypedLiteralTerm builds a literal term with an xsd datatype.
func TypedLiteralTerm(value, datatype string) Term {
	return Term{Kind: TermLiteral, Value: value, Datatype: datatype}
}

// Snapshot is a read-optimized triple index: subject → predicate → objects.
// A Snapshot itself is not safe for concurrent mutation; callers that feed
// it from a stream guard it externally.
type Snapshot struct {
	triples map[string]map[string][]Term
	count   int
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{triples: make(map[string]map[string][]Term)}
}

// Add records one triple. Exact duplicates are ignored.
func (s *Snapshot) Add(subject, predicate string, object Term) {
	preds, ok := s.triples[subject]
	if !ok {
		preds = make(map[string][]Term)
		s.triples[subject] = preds
	}
	for _, existing := range preds[predicate] {
		if existing == object {
			return
		}
	}
	preds[predicate] = append(preds[predicate], object)
	s.count++
}

// Len returns the number of stored triples.
func (s *Snapshot) Len() int {
	return s.count
}

// Subjects returns all subject IRIs in sorted order.
func (s *Snapshot) Subjects() []string {
	subjects := make([]string, 0, len(s.triples))
	for subj := range s.triples {
		subjects = append(subjects, subj)
	}
	sort.Strings(subjects)
	return subjects
}

// SubjectsOfType returns the subjects carrying an rdf:type edge to the
// given class IRI, in sorted order.
func (s *Snapshot) SubjectsOfType(classIRI string) []string {
	var subjects []string
	for subj, preds := range s.triples {
		for _, obj := range preds[RDFType] {
			if obj.Kind == TermIRI && obj.Value == classIRI {
				subjects = append(subjects, subj)
				break
			}
		}
	}
	sort.Strings(subjects)
	return subjects
}

// Objects returns the objects of (subject, predicate), or nil.
func (s *Snapshot) Objects(subject, predicate string) []Term {
	if preds, ok := s.triples[subject]; ok {
		return preds[predicate]
	}
	return nil
}

// Resolve walks the path from start and collects the literal terms at the
// terminal hop. Intermediate hops follow IRI terms only; IRIs at the
// terminal position are ignored. Absence at any hop short-circuits to an
// empty result, never an error. Results are sorted by value then datatype
// and deduplicated so repeated extractions agree.
func (s *Snapshot) Resolve(start string, path form.Path) []Term {
	if len(path) == 0 {
		return nil
	}

	frontier := []string{start}
	for _, hop := range path[:len(path)-1] {
		var next []string
		for _, node := range frontier {
			for _, obj := range s.Objects(node, hop) {
				if obj.Kind == TermIRI {
					next = append(next, obj.Value)
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		frontier = next
	}

	var literals []Term
	terminal := path[len(path)-1]
	for _, node := range frontier {
		for _, obj := range s.Objects(node, terminal) {
			if obj.Kind == TermLiteral {
				literals = append(literals, obj)
			}
		}
	}

	sort.Slice(literals, func(i, j int) bool {
		if literals[i].Value != literals[j].Value {
			return literals[i].Value < literals[j].Value
		}
		return literals[i].Datatype < literals[j].Datatype
	})

	deduped := literals[:0]
	for i, term := range literals {
		if i == 0 || term != literals[i-1] {
			deduped = append(deduped, term)
		}
	}
	return deduped
}

// ResolveFirst returns the first resolved literal in deterministic sorted
// order. This is the single value used when building a row.
func (s *Snapshot) ResolveFirst(start string, path form.Path) (Term, bool) {
	literals := s.Resolve(start, path)
	if len(literals) == 0 {
		return Term{}, false
	}
	return literals[0], true
}

// FromTriples builds a snapshot from platform ingest triples. Object
// strings with an http(s) scheme become IRI terms; JSON numbers become
// xsd-typed literals; booleans become xsd:boolean; everything else is a
// plain literal.
func FromTriples(triples []message.Triple) *Snapshot {
	s := NewSnapshot()
	for _, t := range triples {
		s.Add(t.Subject, t.Predicate, TermFromObject(t.Object))
	}
	return s
}

// AddTriples adds platform ingest triples to an existing snapshot.
func (s *Snapshot) AddTriples(triples []message.Triple) {
	for _, t := range triples {
		s.Add(t.Subject, t.Predicate, TermFromObject(t.Object))
	}
}

// TermFromObject adapts an ingest payload object to a snapshot term.
func TermFromObject(object any) Term {
	switch v := object.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return IRITerm(v)
		}
		return LiteralTerm(v)
	case bool:
		return TypedLiteralTerm(fmt.Sprintf("%t", v), XSDBoolean)
	case int, int32, int64:
		return TypedLiteralTerm(fmt.Sprintf("%d", v), XSDInteger)
	case float32:
		return numericTerm(float64(v))
	case float64:
		return numericTerm(v)
	default:
		return LiteralTerm(fmt.Sprintf("%v", v))
	}
}

// numericTerm types whole-valued floats as integers: JSON decoding turns
// every number into float64, so ingest counts would otherwise surface as
// doubles.
func numericTerm(v float64) Term {
	if v == float64(int64(v)) {
		return TypedLiteralTerm(fmt.Sprintf("%d", int64(v)), XSDInteger)
	}
	return TypedLiteralTerm(fmt.Sprintf("%g", v), XSDDouble)
}
