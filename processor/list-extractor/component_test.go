// Tests cover the component factory, lifecycle without NATS, extraction
// runs over a seeded snapshot, and port wiring. Paths that need a live
// JetStream (consumers, publishing) are integration territory and not
// exercised here.
package listextractor

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/c360studio/semstreams/component"

	"github.com/ProTraitInfra/libre-clinica-upload/extract"
	"github.com/ProTraitInfra/libre-clinica-upload/form"
	"github.com/ProTraitInfra/libre-clinica-upload/graph"
	"github.com/ProTraitInfra/libre-clinica-upload/vocabulary/genericlist"
	"github.com/ProTraitInfra/libre-clinica-upload/vocabulary/ncit"
	"github.com/ProTraitInfra/libre-clinica-upload/vocabulary/roo"
)

func TestNewComponent_Unit(t *testing.T) {
	tests := []struct {
		name      string
		rawConfig json.RawMessage
		wantErr   bool
	}{
		{
			name:      "invalid JSON",
			rawConfig: json.RawMessage(`{invalid json}`),
			wantErr:   true,
		},
		{
			name:      "empty config takes defaults",
			rawConfig: json.RawMessage(`{}`),
		},
		{
			name:      "invalid card format",
			rawConfig: json.RawMessage(`{"card_format":"rdfxml"}`),
			wantErr:   true,
		},
		{
			name:      "clinica without credentials",
			rawConfig: json.RawMessage(`{"clinica":{"endpoint":"https://ec.example.org/ws/"}}`),
			wantErr:   true,
		},
		{
			name: "clinica configured",
			rawConfig: json.RawMessage(`{"clinica":{
				"endpoint":"https://ec.example.org/LibreClinica-ws/ws/",
				"username":"importer",
				"password":"secret"}}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := component.Dependencies{
				Logger: slog.Default(),
			}

			_, err := NewComponent(tt.rawConfig, deps)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewComponent() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewComponentBuildsUploader(t *testing.T) {
	deps := component.Dependencies{Logger: slog.Default()}

	raw := json.RawMessage(`{"clinica":{
		"endpoint":"https://ec.example.org/LibreClinica-ws/ws/",
		"username":"importer",
		"password":"secret",
		"requests_per_second":5}}`)

	discoverable, err := NewComponent(raw, deps)
	if err != nil {
		t.Fatalf("NewComponent() error = %v", err)
	}

	c, ok := discoverable.(*Component)
	if !ok {
		t.Fatalf("unexpected component type %T", discoverable)
	}
	if c.uploader == nil {
		t.Error("clinica settings must build an uploader")
	}

	// Without settings no uploader exists.
	discoverable, err = NewComponent(json.RawMessage(`{}`), deps)
	if err != nil {
		t.Fatalf("NewComponent() error = %v", err)
	}
	if discoverable.(*Component).uploader != nil {
		t.Error("no clinica settings must mean no uploader")
	}
}

// newTestComponent builds a component wired for direct extraction tests,
// without NATS.
func newTestComponent() *Component {
	def := form.NewDefinition()
	return &Component{
		name:      "list-extractor",
		config:    DefaultConfig(),
		logger:    slog.Default(),
		def:       def,
		extractor: extract.New(def),
		snapshot:  graph.NewSnapshot(),
	}
}

// seedPatient types a subject as patient and wires its required anchor.
func seedPatient(s *graph.Snapshot, subject, identifier, birthYear string) {
	s.Add(subject, graph.RDFType, graph.IRITerm(ncit.ClassPatient))
	s.Add(subject, roo.HasPersonIdentifier, graph.LiteralTerm(identifier))
	s.Add(subject, roo.HasBirthYear, graph.IRITerm(subject+"/birth"))
	s.Add(subject+"/birth", roo.HasValue, graph.LiteralTerm(birthYear))
}

func TestRunExtractionCompleted(t *testing.T) {
	c := newTestComponent()
	seedPatient(c.snapshot, "p1", "PT-001", "1960")

	result := c.runExtraction(context.Background(), ExtractRequest{RequestID: "req-1"})

	if result.RequestID != "req-1" {
		t.Errorf("result must echo the request ID: %s", result.RequestID)
	}
	if result.Status != genericlist.RunCompleted {
		t.Errorf("expected completed run, got %s (%s)", result.Status, result.Error)
	}
	if result.RowCount != 1 || result.RunID == "" {
		t.Errorf("unexpected run facts: %+v", result)
	}
	if result.Rows != nil {
		t.Error("rows must stay out of the result unless requested")
	}
}

func TestRunExtractionIncludeRows(t *testing.T) {
	c := newTestComponent()
	seedPatient(c.snapshot, "p1", "PT-001", "1960")

	result := c.runExtraction(context.Background(), ExtractRequest{
		RequestID:   "req-2",
		IncludeRows: true,
	})

	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row in result, got %d", len(result.Rows))
	}
	if result.Rows[0][form.ColIdentifier] != "PT-001" {
		t.Errorf("unexpected row: %v", result.Rows[0])
	}
}

func TestRunExtractionPartialOnExclusion(t *testing.T) {
	c := newTestComponent()
	seedPatient(c.snapshot, "p1", "PT-001", "1960")
	// Patient without the required anchor gets excluded.
	c.snapshot.Add("p2", graph.RDFType, graph.IRITerm(ncit.ClassPatient))

	result := c.runExtraction(context.Background(), ExtractRequest{RequestID: "req-3"})

	if result.Status != genericlist.RunPartial {
		t.Errorf("expected partial run, got %s", result.Status)
	}
	if result.ExcludedCount != 1 || len(result.Excluded) != 1 {
		t.Errorf("exclusions must surface in the result: %+v", result)
	}
}

func TestRunExtractionFailsOnEmptySnapshot(t *testing.T) {
	c := newTestComponent()

	result := c.runExtraction(context.Background(), ExtractRequest{RequestID: "req-4"})

	if result.Status != genericlist.RunFailed {
		t.Errorf("expected failed run, got %s", result.Status)
	}
	if result.Error == "" {
		t.Error("failed run must carry the error")
	}
	if c.runErrors.Load() != 1 {
		t.Errorf("run error counter not incremented: %d", c.runErrors.Load())
	}
}

func TestRunStatus(t *testing.T) {
	tests := []struct {
		name   string
		result ExtractResult
		want   genericlist.RunStatusType
	}{
		{"clean run", ExtractResult{RowCount: 3}, genericlist.RunCompleted},
		{"error", ExtractResult{Error: "boom"}, genericlist.RunFailed},
		{"unresolved values", ExtractResult{UnresolvedCount: 1}, genericlist.RunPartial},
		{"excluded patients", ExtractResult{ExcludedCount: 2}, genericlist.RunPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runStatus(tt.result); got != tt.want {
				t.Errorf("runStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComponent_Lifecycle(t *testing.T) {
	c := newTestComponent()

	if err := c.Initialize(); err != nil {
		t.Errorf("Initialize() error = %v, want nil", err)
	}

	// Stop when already stopped must not error.
	if err := c.Stop(time.Second); err != nil {
		t.Error("Stop() should not error when already stopped")
	}
}

func TestComponent_StartWithoutNATSClient(t *testing.T) {
	c := newTestComponent()

	if err := c.Start(context.Background()); err == nil {
		t.Error("Start() must fail without a NATS client")
	}
	if c.Health().Healthy {
		t.Error("component must stay unhealthy after failed start")
	}
}

func TestComponentPorts(t *testing.T) {
	c := newTestComponent()

	inputs := c.InputPorts()
	if len(inputs) != 2 {
		t.Fatalf("expected 2 input ports, got %d", len(inputs))
	}
	outputs := c.OutputPorts()
	if len(outputs) != 2 {
		t.Fatalf("expected 2 output ports, got %d", len(outputs))
	}

	js, ok := inputs[0].Config.(component.JetStreamPort)
	if !ok {
		t.Fatalf("entity port must be a JetStream port, got %T", inputs[0].Config)
	}
	if js.StreamName != "GRAPH" {
		t.Errorf("unexpected entity stream: %s", js.StreamName)
	}
}

func TestComponentMeta(t *testing.T) {
	c := newTestComponent()

	meta := c.Meta()
	if meta.Name != "list-extractor" || meta.Type != "processor" {
		t.Errorf("unexpected metadata: %+v", meta)
	}

	health := c.Health()
	if health.Healthy {
		t.Error("component must report unhealthy before start")
	}
}
