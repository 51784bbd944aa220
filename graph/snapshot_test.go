package graph

import (
	"testing"

	"github.com/ProTraitInfra/libre-clinica-upload/form"
	"github.com/ProTraitInfra/libre-clinica-upload/vocabulary/ncit"
	"github.com/ProTraitInfra/libre-clinica-upload/vocabulary/roo"
	"github.com/c360studio/semstreams/message"
)

func TestSnapshotAddDeduplicates(t *testing.T) {
	s := NewSnapshot()
	s.Add("p1", roo.HasPersonIdentifier, LiteralTerm("PT-001"))
	s.Add("p1", roo.HasPersonIdentifier, LiteralTerm("PT-001"))

	if s.Len() != 1 {
		t.Errorf("expected 1 triple after duplicate add, got %d", s.Len())
	}
}

func TestSubjectsOfType(t *testing.T) {
	s := NewSnapshot()
	s.Add("p2", RDFType, IRITerm(ncit.ClassPatient))
	s.Add("p1", RDFType, IRITerm(ncit.ClassPatient))
	s.Add("n1", RDFType, IRITerm(ncit.ClassNeoplasm))

	patients := s.SubjectsOfType(ncit.ClassPatient)
	if len(patients) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(patients))
	}
	if patients[0] != "p1" || patients[1] != "p2" {
		t.Errorf("expected sorted subjects, got %v", patients)
	}

	if got := s.SubjectsOfType("http://example.org/Missing"); got != nil {
		t.Errorf("expected nil for unknown class, got %v", got)
	}
}

func TestResolveMultiHop(t *testing.T) {
	s := NewSnapshot()
	s.Add("p1", roo.HasNeoplasm, IRITerm("n1"))
	s.Add("n1", roo.HasTumourSite, IRITerm("obs1"))
	s.Add("obs1", roo.HasValue, LiteralTerm("Larynx"))

	path := form.Path{roo.HasNeoplasm, roo.HasTumourSite, roo.HasValue}
	terms := s.Resolve("p1", path)
	if len(terms) != 1 || terms[0].Value != "Larynx" {
		t.Errorf("expected [Larynx], got %v", terms)
	}
}

func TestResolveMissingHopShortCircuits(t *testing.T) {
	s := NewSnapshot()
	s.Add("p1", roo.HasNeoplasm, IRITerm("n1"))

	path := form.Path{roo.HasNeoplasm, roo.HasTumourSite, roo.HasValue}
	if terms := s.Resolve("p1", path); terms != nil {
		t.Errorf("expected absent result, got %v", terms)
	}
	if _, found := s.ResolveFirst("p1", path); found {
		t.Error("expected ResolveFirst to report absent")
	}
}

func TestResolveIgnoresIRIAtTerminal(t *testing.T) {
	s := NewSnapshot()
	s.Add("p1", roo.HasAge, IRITerm("obs1"))
	s.Add("obs1", roo.HasValue, IRITerm("http://example.org/not-a-literal"))

	if terms := s.Resolve("p1", form.Path{roo.HasAge, roo.HasValue}); terms != nil {
		t.Errorf("terminal IRIs must be ignored, got %v", terms)
	}
}

func TestResolveIgnoresLiteralAtIntermediate(t *testing.T) {
	s := NewSnapshot()
	s.Add("p1", roo.HasAge, LiteralTerm("not a node"))

	if terms := s.Resolve("p1", form.Path{roo.HasAge, roo.HasValue}); terms != nil {
		t.Errorf("intermediate literals must not be followed, got %v", terms)
	}
}

func TestResolveFirstDeterministicOrder(t *testing.T) {
	s := NewSnapshot()
	s.Add("p1", roo.HasWeight, IRITerm("obs1"))
	s.Add("p1", roo.HasWeight, IRITerm("obs2"))
	s.Add("obs2", roo.HasValue, LiteralTerm("82"))
	s.Add("obs1", roo.HasValue, LiteralTerm("71"))

	term, found := s.ResolveFirst("p1", form.Path{roo.HasWeight, roo.HasValue})
	if !found || term.Value != "71" {
		t.Errorf("expected sorted-first value 71, got %v (found=%v)", term, found)
	}
}

func TestResolveEmptyPath(t *testing.T) {
	s := NewSnapshot()
	s.Add("p1", roo.HasPersonIdentifier, LiteralTerm("PT-001"))

	if terms := s.Resolve("p1", nil); terms != nil {
		t.Errorf("empty path must resolve to nothing, got %v", terms)
	}
}

func TestFromTriples(t *testing.T) {
	triples := []message.Triple{
		{Subject: "p1", Predicate: RDFType, Object: ncit.ClassPatient},
		{Subject: "p1", Predicate: roo.HasPersonIdentifier, Object: "PT-001"},
		{Subject: "p1", Predicate: roo.HasAge, Object: "obs1"},
		{Subject: "obs1", Predicate: roo.HasValue, Object: float64(54)},
		{Subject: "p1", Predicate: "list.run.row_count", Object: true},
	}

	s := FromTriples(triples)

	patients := s.SubjectsOfType(ncit.ClassPatient)
	if len(patients) != 1 || patients[0] != "p1" {
		t.Fatalf("expected p1 typed as patient, got %v", patients)
	}

	// Plain strings stay literals, IRI strings become node references.
	objs := s.Objects("p1", roo.HasPersonIdentifier)
	if len(objs) != 1 || objs[0].Kind != TermLiteral {
		t.Errorf("expected plain literal identifier, got %v", objs)
	}

	// Whole-valued JSON numbers come back as xsd:integer literals.
	objs = s.Objects("obs1", roo.HasValue)
	if len(objs) != 1 || objs[0].Value != "54" || objs[0].Datatype != XSDInteger {
		t.Errorf("expected integer literal 54, got %v", objs)
	}

	objs = s.Objects("p1", "list.run.row_count")
	if len(objs) != 1 || objs[0].Value != "true" || objs[0].Datatype != XSDBoolean {
		t.Errorf("expected boolean literal, got %v", objs)
	}
}

func TestTermFromObjectFractional(t *testing.T) {
	term := TermFromObject(72.4)
	if term.Datatype != XSDDouble || term.Value != "72.4" {
		t.Errorf("expected double literal 72.4, got %v", term)
	}
}
