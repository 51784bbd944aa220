// Package listextractor provides a streaming processor that accumulates
// patient subgraph triples, runs generic list extractions on request, and
// optionally pushes the resulting rows to LibreClinica.
package listextractor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/ProTraitInfra/libre-clinica-upload/clinica"
	"github.com/ProTraitInfra/libre-clinica-upload/export"
	"github.com/ProTraitInfra/libre-clinica-upload/extract"
	"github.com/ProTraitInfra/libre-clinica-upload/form"
	"github.com/ProTraitInfra/libre-clinica-upload/graph"
	"github.com/ProTraitInfra/libre-clinica-upload/metrics"
	"github.com/ProTraitInfra/libre-clinica-upload/vocabulary/genericlist"
)

// Component implements the list-extractor processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger

	def       *form.Definition
	extractor *extract.Extractor
	uploader  *clinica.Uploader

	// Accumulated patient subgraph, guarded for concurrent consumers.
	snapMu   sync.RWMutex
	snapshot *graph.Snapshot

	// Resolved subjects from port config
	entitySubject  string
	entityStream   string
	requestSubject string
	requestStream  string
	resultSubject  string
	cardSubject    string

	// Lifecycle
	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	// Metrics
	entitiesIngested atomic.Int64
	runsCompleted    atomic.Int64
	runErrors        atomic.Int64
	publishErrors    atomic.Int64
	lastActivityMu   sync.RWMutex
	lastActivity     time.Time
}

// NewComponent creates a new list-extractor processor component.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var config Config
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if config.Ports == nil {
		config = DefaultConfig()
		if err := json.Unmarshal(rawConfig, &config); err != nil {
			return nil, fmt.Errorf("unmarshal config with defaults: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := deps.GetLogger()
	def := form.Global()

	extractOpts := []extract.Option{extract.WithLogger(logger)}
	if config.Strict {
		extractOpts = append(extractOpts, extract.WithStrict())
	}

	c := &Component{
		name:       "list-extractor",
		config:     config,
		natsClient: deps.NATSClient,
		logger:     logger,
		def:        def,
		extractor:  extract.New(def, extractOpts...),
		snapshot:   graph.NewSnapshot(),

		entitySubject:  defaultEntitySubject,
		entityStream:   defaultEntityStream,
		requestSubject: defaultRequestSubject,
		requestStream:  defaultRequestStream,
		resultSubject:  defaultResultSubject,
		cardSubject:    defaultCardSubject,
	}

	if port := config.findInput(portEntityIngest); port != nil {
		c.entitySubject = port.Subject
		c.entityStream = port.StreamName
	}
	if port := config.findInput(portExtractRequest); port != nil {
		c.requestSubject = port.Subject
		c.requestStream = port.StreamName
	}
	if port := config.findOutput(portExtractResult); port != nil {
		c.resultSubject = port.Subject
	}
	if port := config.findOutput(portCatalogCard); port != nil {
		c.cardSubject = port.Subject
	}

	if settings := config.Clinica; settings != nil {
		client := clinica.NewClient(settings.Endpoint, settings.Username, settings.Password,
			clinica.WithLogger(logger))

		uploadOpts := []clinica.UploaderOption{
			clinica.WithUploaderLogger(logger),
			clinica.WithEventDefaults(settings.EventLocation, settings.EventStartDate),
		}
		if settings.RequestsPerSecond > 0 {
			uploadOpts = append(uploadOpts, clinica.WithRequestsPerSecond(settings.RequestsPerSecond))
		}
		if len(config.AlternativeItemOIDs) > 0 {
			uploadOpts = append(uploadOpts, clinica.WithAlternativeItemOIDs(config.AlternativeItemOIDs))
		}
		c.uploader = clinica.NewUploader(client, def, uploadOpts...)
	}

	return c, nil
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	return nil
}

// Start begins consuming entity and request messages.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("component already running")
	}
	if c.natsClient == nil {
		c.mu.Unlock()
		return fmt.Errorf("NATS client required")
	}

	// Set running state while holding lock to prevent race condition
	c.running = true
	c.startTime = time.Now()

	consumeCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	entityCfg := natsclient.StreamConsumerConfig{
		StreamName:    c.entityStream,
		ConsumerName:  "list-extractor-entities",
		FilterSubject: c.entitySubject,
		DeliverPolicy: "new",
		AckPolicy:     "explicit",
		MaxDeliver:    3,
		AckWait:       10 * time.Second,
	}
	if err := c.natsClient.ConsumeStreamWithConfig(consumeCtx, entityCfg, c.handleEntityMessage); err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("start entity consumer: %w", err)
	}

	requestCfg := natsclient.StreamConsumerConfig{
		StreamName:    c.requestStream,
		ConsumerName:  "list-extractor-requests",
		FilterSubject: c.requestSubject,
		DeliverPolicy: "new",
		AckPolicy:     "explicit",
		MaxDeliver:    3,
		AckWait:       30 * time.Second,
	}
	if err := c.natsClient.ConsumeStreamWithConfig(consumeCtx, requestCfg, c.handleRequestMessage); err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("start request consumer: %w", err)
	}

	// Register the form definition and its catalog card. Failures here
	// are logged but never block extraction.
	if err := graph.PublishDefinition(ctx, c.natsClient, c.def); err != nil {
		c.logger.Warn("Failed to publish form definition entity", "error", err)
		c.publishErrors.Add(1)
	}
	if err := c.publishCard(ctx); err != nil {
		c.logger.Warn("Failed to publish catalog card", "error", err)
		c.publishErrors.Add(1)
	}

	c.logger.Info("list-extractor started",
		"form", c.def.Meta.FormOID,
		"version", c.def.Version,
		"entities", c.entitySubject,
		"requests", c.requestSubject,
		"results", c.resultSubject,
		"upload", c.uploader != nil)

	return nil
}

func (c *Component) rollbackStart(cancel context.CancelFunc) {
	c.mu.Lock()
	c.running = false
	c.cancel = nil
	c.mu.Unlock()
	cancel()
}

// handleEntityMessage folds one entity ingest message into the snapshot.
func (c *Component) handleEntityMessage(_ context.Context, msg jetstream.Msg) {
	var entity graph.EntityIngestMessage
	if err := json.Unmarshal(msg.Data(), &entity); err != nil {
		c.logger.Warn("Failed to unmarshal entity message",
			"error", err,
			"subject", msg.Subject())
		_ = msg.Nak()
		return
	}

	if len(entity.Triples) > 0 {
		c.snapMu.Lock()
		c.snapshot.AddTriples(entity.Triples)
		c.snapMu.Unlock()
	}

	_ = msg.Ack()
	c.entitiesIngested.Add(1)
	c.updateLastActivity()
}

// handleRequestMessage runs one extraction and publishes the result.
func (c *Component) handleRequestMessage(ctx context.Context, msg jetstream.Msg) {
	var request ExtractRequest
	if err := json.Unmarshal(msg.Data(), &request); err != nil {
		c.logger.Warn("Failed to unmarshal extraction request",
			"error", err,
			"subject", msg.Subject())
		_ = msg.Nak()
		return
	}

	result := c.runExtraction(ctx, request)

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("Failed to marshal extraction result",
			"request_id", request.RequestID,
			"error", err)
		c.publishErrors.Add(1)
		_ = msg.Nak()
		return
	}
	if err := c.natsClient.PublishToStream(ctx, c.resultSubject, data); err != nil {
		c.logger.Warn("Failed to publish extraction result",
			"request_id", request.RequestID,
			"subject", c.resultSubject,
			"error", err)
		c.publishErrors.Add(1)
		_ = msg.Nak()
		return
	}

	_ = msg.Ack()
	c.updateLastActivity()
}

// runExtraction executes one run over the current snapshot, drives the
// optional upload, and records the run in the knowledge graph.
func (c *Component) runExtraction(ctx context.Context, request ExtractRequest) ExtractResult {
	c.snapMu.RLock()
	run, err := c.extractor.Extract(c.snapshot)
	c.snapMu.RUnlock()

	if err != nil {
		c.runErrors.Add(1)
		c.logger.Warn("Extraction run failed",
			"request_id", request.RequestID,
			"error", err)
		result := ExtractResult{
			RequestID: request.RequestID,
			Status:    genericlist.RunFailed,
			Error:     err.Error(),
		}
		if run != nil {
			result.RunID = run.ID
			result.StartedAt = run.StartedAt
			result.FinishedAt = run.FinishedAt
		}
		return result
	}

	metrics.RecordRowsExtracted(len(run.Rows))
	metrics.RecordPatientsExcluded(len(run.Excluded))
	for _, unresolved := range run.Unresolved {
		metrics.RecordUnresolved(unresolved.Column)
	}

	result := ExtractResult{
		RequestID:       request.RequestID,
		RunID:           run.ID,
		RowCount:        len(run.Rows),
		ExcludedCount:   len(run.Excluded),
		UnresolvedCount: len(run.Unresolved),
		StartedAt:       run.StartedAt,
		FinishedAt:      run.FinishedAt,
		Excluded:        run.Excluded,
		Unresolved:      run.Unresolved,
	}
	if request.IncludeRows {
		result.Rows = run.Rows
	}

	if c.uploader != nil {
		report, uploadErr := c.uploader.Upload(ctx, run.Rows)
		result.Upload = report
		if uploadErr != nil {
			result.Error = uploadErr.Error()
		}
	}

	result.Status = runStatus(result)
	c.runsCompleted.Add(1)

	summary := graph.RunSummary{
		ID:              run.ID,
		FormOID:         c.def.Meta.FormOID,
		RowCount:        len(run.Rows),
		ExcludedCount:   len(run.Excluded),
		UnresolvedCount: len(run.Unresolved),
		Status:          result.Status,
		StartedAt:       run.StartedAt,
		FinishedAt:      run.FinishedAt,
	}
	if err := graph.PublishRun(ctx, c.natsClient, summary, c.def); err != nil {
		c.logger.Warn("Failed to publish run entity",
			"run_id", run.ID,
			"error", err)
		c.publishErrors.Add(1)
	}

	c.logger.Info("Extraction run finished",
		"request_id", request.RequestID,
		"run_id", run.ID,
		"status", result.Status,
		"rows", len(run.Rows),
		"excluded", len(run.Excluded),
		"unresolved", len(run.Unresolved))

	return result
}

// runStatus derives the run outcome from the result facts.
func runStatus(result ExtractResult) genericlist.RunStatusType {
	if result.Error != "" {
		return genericlist.RunFailed
	}
	if result.UnresolvedCount > 0 || result.ExcludedCount > 0 {
		return genericlist.RunPartial
	}
	if result.Upload != nil && len(result.Upload.Failed) > 0 {
		return genericlist.RunPartial
	}
	return genericlist.RunCompleted
}

// publishCard renders the catalog card and publishes it.
func (c *Component) publishCard(ctx context.Context) error {
	card, err := export.Card(c.def, c.config.GetCardFormat())
	if err != nil {
		return fmt.Errorf("render card: %w", err)
	}
	if err := c.natsClient.PublishToStream(ctx, c.cardSubject, []byte(card)); err != nil {
		return fmt.Errorf("publish card: %w", err)
	}
	return nil
}

// Stop gracefully stops the component.
func (c *Component) Stop(_ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	c.running = false
	c.logger.Info("list-extractor stopped",
		"entities_ingested", c.entitiesIngested.Load(),
		"runs_completed", c.runsCompleted.Load(),
		"run_errors", c.runErrors.Load(),
		"publish_errors", c.publishErrors.Load())

	return nil
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "list-extractor",
		Type:        "processor",
		Description: "Extracts generic list rows from patient subgraphs and uploads them to LibreClinica",
		Version:     "1.0.0",
	}
}

// InputPorts returns configured input port definitions.
func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Inputs))
	for i, portDef := range c.config.Ports.Inputs {
		ports[i] = buildPort(portDef, component.DirectionInput)
	}
	return ports
}

// OutputPorts returns configured output port definitions.
func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Outputs))
	for i, portDef := range c.config.Ports.Outputs {
		ports[i] = buildPort(portDef, component.DirectionOutput)
	}
	return ports
}

// buildPort creates a component.Port from a PortDefinition, using JetStreamPort
// for jetstream-type ports and NATSPort for core NATS ports.
func buildPort(portDef component.PortDefinition, direction component.Direction) component.Port {
	port := component.Port{
		Name:        portDef.Name,
		Direction:   direction,
		Required:    portDef.Required,
		Description: portDef.Description,
	}
	if portDef.Type == "jetstream" {
		port.Config = component.JetStreamPort{
			StreamName: portDef.StreamName,
			Subjects:   []string{portDef.Subject},
		}
	} else {
		port.Config = component.NATSPort{
			Subject: portDef.Subject,
		}
	}
	return port
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return listExtractorSchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	errorCount := int(c.runErrors.Load() + c.publishErrors.Load())

	status := "stopped"
	if running {
		status = "running"
	}

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: errorCount,
		Uptime:     time.Since(startTime),
		Status:     status,
	}
}

// DataFlow returns current data flow metrics.
func (c *Component) DataFlow() component.FlowMetrics {
	return component.FlowMetrics{
		MessagesPerSecond: 0,
		BytesPerSecond:    0,
		ErrorRate:         0,
		LastActivity:      c.getLastActivity(),
	}
}

func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}
