package graph

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ProTraitInfra/libre-clinica-upload/form"
	"github.com/ProTraitInfra/libre-clinica-upload/vocabulary/genericlist"
)

func TestFormEntityID(t *testing.T) {
	def := form.NewDefinition()
	id := FormEntityID(def)

	if !strings.HasPrefix(id, "protrait.local.list.form.") {
		t.Errorf("unexpected form entity ID prefix: %s", id)
	}
	if !strings.HasSuffix(id, "@"+def.Version) {
		t.Errorf("form entity ID must carry the version: %s", id)
	}
}

func TestBuildDefinitionTriples(t *testing.T) {
	def := form.NewDefinition()
	triples := BuildDefinitionTriples(def)

	entityID := FormEntityID(def)
	byPredicate := make(map[string]any)
	for _, tr := range triples {
		if tr.Subject != entityID {
			t.Errorf("triple subject %s, want %s", tr.Subject, entityID)
		}
		if tr.Source != tripleSource {
			t.Errorf("triple source %s, want %s", tr.Source, tripleSource)
		}
		byPredicate[tr.Predicate] = tr.Object
	}

	if byPredicate[genericlist.FormVersion] != def.Version {
		t.Errorf("expected version triple %s, got %v", def.Version, byPredicate[genericlist.FormVersion])
	}
	if byPredicate[genericlist.FormColumnCount] != len(def.Fields) {
		t.Errorf("expected column count %d, got %v", len(def.Fields), byPredicate[genericlist.FormColumnCount])
	}
	if byPredicate[genericlist.FormIdentifierColumn] != def.Meta.IdentifierColumn {
		t.Errorf("expected identifier column triple, got %v", byPredicate[genericlist.FormIdentifierColumn])
	}
}

func TestBuildRunTriples(t *testing.T) {
	def := form.NewDefinition()
	run := RunSummary{
		ID:              "0d9a4f2e-run",
		FormOID:         def.Meta.FormOID,
		RowCount:        12,
		ExcludedCount:   3,
		UnresolvedCount: 1,
		Status:          genericlist.RunPartial,
		StartedAt:       time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt:      time.Date(2026, 8, 1, 10, 0, 5, 0, time.UTC),
	}

	triples := BuildRunTriples(run, def)

	byPredicate := make(map[string]any)
	for _, tr := range triples {
		if tr.Subject != RunEntityID(run.ID) {
			t.Errorf("triple subject %s, want %s", tr.Subject, RunEntityID(run.ID))
		}
		byPredicate[tr.Predicate] = tr.Object
	}

	if byPredicate[genericlist.RunForm] != FormEntityID(def) {
		t.Errorf("run must link to its form entity, got %v", byPredicate[genericlist.RunForm])
	}
	if byPredicate[genericlist.RunRowCount] != 12 {
		t.Errorf("expected row count 12, got %v", byPredicate[genericlist.RunRowCount])
	}
	if byPredicate[genericlist.RunStatus] != string(genericlist.RunPartial) {
		t.Errorf("expected partial status, got %v", byPredicate[genericlist.RunStatus])
	}
	if byPredicate[genericlist.RunStartedAt] != "2026-08-01T10:00:00Z" {
		t.Errorf("expected RFC3339 start time, got %v", byPredicate[genericlist.RunStartedAt])
	}
}

func TestPublishWithNilClientSkips(t *testing.T) {
	def := form.NewDefinition()

	if err := PublishDefinition(context.Background(), nil, def); err != nil {
		t.Errorf("nil client must skip gracefully, got %v", err)
	}
	if err := PublishRun(context.Background(), nil, RunSummary{ID: "r1"}, def); err != nil {
		t.Errorf("nil client must skip gracefully, got %v", err)
	}
}
