package listextractor

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/c360studio/semstreams/component"

	"github.com/ProTraitInfra/libre-clinica-upload/export"
)

// listExtractorSchema defines the configuration schema.
var listExtractorSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the list-extractor processor.
type Config struct {
	Ports      *component.PortConfig `json:"ports" schema:"type:ports,description:Port configuration,category:basic"`
	Strict     bool                  `json:"strict" schema:"type:bool,description:Abort a run on the first unresolved recode value,category:advanced,default:false"`
	CardFormat string                `json:"card_format" schema:"type:string,description:Catalog card serialization (turtle/ntriples/jsonld),category:basic,default:turtle"`

	// Clinica enables uploading completed runs to LibreClinica.
	Clinica *ClinicaSettings `json:"clinica,omitempty" schema:"type:object,description:LibreClinica upload settings,category:advanced"`

	// AlternativeItemOIDs overrides the derived item OID per column.
	AlternativeItemOIDs map[string]string `json:"alternative_item_oids,omitempty" schema:"type:object,description:Item OID overrides per column,category:advanced"`
}

// ClinicaSettings configures the optional LibreClinica uploader.
type ClinicaSettings struct {
	Endpoint          string  `json:"endpoint"`
	Username          string  `json:"username"`
	Password          string  `json:"password"`
	EventLocation     string  `json:"event_location,omitempty"`
	EventStartDate    string  `json:"event_start_date,omitempty"`
	RequestsPerSecond float64 `json:"requests_per_second,omitempty"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.CardFormat != "" {
		switch strings.ToLower(c.CardFormat) {
		case "turtle", "ntriples", "jsonld":
			// valid
		default:
			return fmt.Errorf("unsupported card format: %s (valid: turtle, ntriples, jsonld)", c.CardFormat)
		}
	}

	if c.Clinica != nil {
		if c.Clinica.Endpoint == "" {
			return fmt.Errorf("clinica.endpoint is required when upload is configured")
		}
		if c.Clinica.Username == "" || c.Clinica.Password == "" {
			return fmt.Errorf("clinica credentials are required when upload is configured")
		}
		if c.Clinica.RequestsPerSecond < 0 {
			return fmt.Errorf("clinica.requests_per_second must not be negative")
		}
	}

	return nil
}

// GetCardFormat returns the configured export.Format.
func (c *Config) GetCardFormat() export.Format {
	switch strings.ToLower(c.CardFormat) {
	case "ntriples":
		return export.FormatNTriples
	case "jsonld":
		return export.FormatJSONLD
	default:
		return export.FormatTurtle
	}
}

// Default port names and subjects.
const (
	portEntityIngest   = "entity.ingest"
	portExtractRequest = "extract.request"
	portExtractResult  = "extract.result"
	portCatalogCard    = "catalog.card"

	defaultEntitySubject  = "graph.ingest.entity"
	defaultEntityStream   = "GRAPH"
	defaultRequestSubject = "list.extract.request"
	defaultRequestStream  = "LIST"
	defaultResultSubject  = "list.extract.result"
	defaultCardSubject    = "list.catalog.card"
)

// DefaultConfig returns the default configuration for list-extractor.
func DefaultConfig() Config {
	return Config{
		Ports: &component.PortConfig{
			Inputs: []component.PortDefinition{
				{
					Name:        portEntityIngest,
					Type:        "jetstream",
					Subject:     defaultEntitySubject,
					StreamName:  defaultEntityStream,
					Required:    true,
					Description: "Patient subgraph triples from the graph pipeline",
				},
				{
					Name:        portExtractRequest,
					Type:        "jetstream",
					Subject:     defaultRequestSubject,
					StreamName:  defaultRequestStream,
					Required:    true,
					Description: "Extraction run requests",
				},
			},
			Outputs: []component.PortDefinition{
				{
					Name:        portExtractResult,
					Type:        "jetstream",
					Subject:     defaultResultSubject,
					Required:    true,
					Description: "Extraction run results with per-run provenance",
				},
				{
					Name:        portCatalogCard,
					Type:        "jetstream",
					Subject:     defaultCardSubject,
					Required:    false,
					Description: "Catalog card describing the registered form definition",
				},
			},
		},
		CardFormat: "turtle",
	}
}

// findInput returns the input port definition with the given name.
func (c *Config) findInput(name string) *component.PortDefinition {
	if c.Ports == nil {
		return nil
	}
	for i := range c.Ports.Inputs {
		if c.Ports.Inputs[i].Name == name {
			return &c.Ports.Inputs[i]
		}
	}
	return nil
}

// findOutput returns the output port definition with the given name.
func (c *Config) findOutput(name string) *component.PortDefinition {
	if c.Ports == nil {
		return nil
	}
	for i := range c.Ports.Outputs {
		if c.Ports.Outputs[i].Name == name {
			return &c.Ports.Outputs[i]
		}
	}
	return nil
}
