package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ProTraitInfra/libre-clinica-upload/form"
	"github.com/ProTraitInfra/libre-clinica-upload/vocabulary/genericlist"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
)

// GraphIngestSubject is the subject for knowledge graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// tripleSource tags published triples with their producing service.
const tripleSource = "protrait.genericlist"

// EntityIngestMessage is the message format for graph ingestion.
// Matches the format used by other semstreams components.
type EntityIngestMessage struct {
	ID        string           `json:"id"`
	Triples   []message.Triple `json:"triples"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// RunSummary carries the run facts published to the knowledge graph.
type RunSummary struct {
	ID              string
	FormOID         string
	RowCount        int
	ExcludedCount   int
	UnresolvedCount int
	Status          genericlist.RunStatusType
	StartedAt       time.Time
	FinishedAt      time.Time
}

// FormEntityID generates a consistent entity ID for a form definition.
// Format: protrait.local.list.form.{form_oid}@{version}
func FormEntityID(def *form.Definition) string {
	return fmt.Sprintf("protrait.local.list.form.%s@%s", def.Meta.FormOID, def.Version)
}

// RunEntityID generates a consistent entity ID for an extraction run.
// Format: protrait.local.list.run.{run_id}
func RunEntityID(runID string) string {
	return fmt.Sprintf("protrait.local.list.run.%s", runID)
}

// BuildDefinitionTriples builds the registration triples for a form
// definition entity.
func BuildDefinitionTriples(def *form.Definition) []message.Triple {
	entityID := FormEntityID(def)
	now := time.Now()

	triple := func(predicate string, object any) message.Triple {
		return message.Triple{
			Subject:    entityID,
			Predicate:  predicate,
			Object:     object,
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		}
	}

	return []message.Triple{
		triple(genericlist.FormVersion, def.Version),
		triple(genericlist.FormStudy, def.Meta.StudyOID),
		triple(genericlist.FormEvent, def.Meta.EventOID),
		triple(genericlist.FormOID, def.Meta.FormOID),
		triple(genericlist.FormItemGroup, def.Meta.ItemGroupOID),
		triple(genericlist.FormItemPrefix, def.Meta.ItemPrefix),
		triple(genericlist.FormColumnCount, len(def.Fields)),
		triple(genericlist.FormIdentifierColumn, def.Meta.IdentifierColumn),
		triple(genericlist.FormGenderColumn, def.Meta.GenderColumn),
		triple(genericlist.FormBirthYearColumn, def.Meta.BirthYearColumn),
	}
}

// BuildRunTriples builds the triples for one extraction run entity.
func BuildRunTriples(run RunSummary, def *form.Definition) []message.Triple {
	entityID := RunEntityID(run.ID)
	now := time.Now()

	triple := func(predicate string, object any) message.Triple {
		return message.Triple{
			Subject:    entityID,
			Predicate:  predicate,
			Object:     object,
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		}
	}

	return []message.Triple{
		triple(genericlist.RunForm, FormEntityID(def)),
		triple(genericlist.RunRowCount, run.RowCount),
		triple(genericlist.RunExcludedCount, run.ExcludedCount),
		triple(genericlist.RunUnresolvedCount, run.UnresolvedCount),
		triple(genericlist.RunStatus, string(run.Status)),
		triple(genericlist.RunStartedAt, run.StartedAt.Format(time.RFC3339)),
		triple(genericlist.RunFinishedAt, run.FinishedAt.Format(time.RFC3339)),
	}
}

// PublishDefinition publishes the form definition entity to the knowledge
// graph. A nil NATS client skips publishing (graceful degradation).
func PublishDefinition(ctx context.Context, nc *natsclient.Client, def *form.Definition) error {
	if nc == nil {
		return nil
	}
	return publishEntity(ctx, nc, FormEntityID(def), BuildDefinitionTriples(def))
}

// PublishRun publishes one extraction run entity to the knowledge graph.
// A nil NATS client skips publishing (graceful degradation).
func PublishRun(ctx context.Context, nc *natsclient.Client, run RunSummary, def *form.Definition) error {
	if nc == nil {
		return nil
	}
	return publishEntity(ctx, nc, RunEntityID(run.ID), BuildRunTriples(run, def))
}

func publishEntity(ctx context.Context, nc *natsclient.Client, entityID string, triples []message.Triple) error {
	msg := EntityIngestMessage{
		ID:        entityID,
		Triples:   triples,
		UpdatedAt: time.Now(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal entity %s: %w", entityID, err)
	}

	if err := nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		return fmt.Errorf("publish entity %s: %w", entityID, err)
	}

	return nil
}
