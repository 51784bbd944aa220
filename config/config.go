// Package config provides configuration loading and management for the
// generic list pipeline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ProTraitInfra/libre-clinica-upload/form"
)

// Config represents the complete pipeline configuration
type Config struct {
	GenericList GenericListConfig `yaml:"generic_list"`
	SPARQL      SPARQLConfig      `yaml:"sparql"`
	Clinica     ClinicaConfig     `yaml:"clinica"`
	NATS        NATSConfig        `yaml:"nats"`
}

// GenericListConfig configures the form definition and extraction behaviour
type GenericListConfig struct {
	// StudyOID overrides the registry study OID (default: S_PROTRAIT)
	StudyOID string `yaml:"study_oid"`
	// StudyIdentifier overrides the study identifier used on SOAP calls
	StudyIdentifier string `yaml:"study_identifier"`
	// EventOID overrides the study event OID (default: SE_BASELINE)
	EventOID string `yaml:"event_oid"`
	// FormOID overrides the registry form OID (default: F_GENERICLIST)
	FormOID string `yaml:"form_oid"`
	// ItemGroupOID overrides the registry item group OID (default: IG_GENER)
	ItemGroupOID string `yaml:"item_group_oid"`
	// ItemPrefix overrides the prefix prepended to columns for item OIDs
	ItemPrefix string `yaml:"item_prefix"`
	// AlternativeItemOIDs overrides the derived item OID per column, for
	// registries whose CRF predates the current column set
	AlternativeItemOIDs map[string]string `yaml:"alternative_item_oids"`
	// PerformQuery runs extraction through the SPARQL endpoint instead of
	// the in-memory subgraph snapshot
	PerformQuery bool `yaml:"perform_query"`
	// Upload pushes extracted rows to LibreClinica after each run
	Upload bool `yaml:"upload"`
	// Strict aborts a run on the first value no recode rule resolves
	Strict bool `yaml:"strict"`
}

// SPARQLConfig configures the SPARQL endpoint client
type SPARQLConfig struct {
	// Endpoint is the SPARQL 1.1 query endpoint URL
	Endpoint string `yaml:"endpoint" env:"SPARQL_QUERY_ENDPOINT"`
	// Username enables HTTP basic auth when set
	Username string `yaml:"username" env:"SPARQL_USER"`
	// Password is the basic auth password
	Password string `yaml:"password" env:"SPARQL_USER_PWD"`
	// Timeout is the maximum time to wait for a query to answer
	Timeout time.Duration `yaml:"timeout"`
}

// ClinicaConfig configures the LibreClinica SOAP client
type ClinicaConfig struct {
	// Endpoint is the LibreClinica web service base URL
	Endpoint string `yaml:"endpoint" env:"LC_ENDPOINT"`
	// Username is the web service account
	Username string `yaml:"username" env:"LC_USER"`
	// Password is digested to SHA1 hex before it goes on the wire
	Password string `yaml:"password" env:"LC_PASSWORD"`
	// EventLocation is the location recorded on scheduled events
	EventLocation string `yaml:"event_location"`
	// EventStartDate is the nominal start date for scheduled events
	EventStartDate string `yaml:"event_start_date"`
	// RequestsPerSecond paces SOAP calls during batch uploads
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	// Timeout is the maximum time to wait for one SOAP round trip
	Timeout time.Duration `yaml:"timeout"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url" env:"NATS_URL"`
	// Stream is the JetStream stream carrying graph entity messages
	Stream string `yaml:"stream"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	meta := form.DefaultMeta()
	return &Config{
		GenericList: GenericListConfig{
			StudyOID:        meta.StudyOID,
			StudyIdentifier: meta.StudyIdentifier,
			EventOID:        meta.EventOID,
			FormOID:         meta.FormOID,
			ItemGroupOID:    meta.ItemGroupOID,
			ItemPrefix:      meta.ItemPrefix,
		},
		SPARQL: SPARQLConfig{
			Timeout: 60 * time.Second,
		},
		Clinica: ClinicaConfig{
			EventLocation:     "NL",
			EventStartDate:    "2000-01-01",
			RequestsPerSecond: 2,
			Timeout:           60 * time.Second,
		},
		NATS: NATSConfig{
			URL:    "nats://localhost:4222",
			Stream: "GRAPH",
		},
	}
}

// Meta materializes the form metadata from the configured overrides.
func (c *Config) Meta() form.Meta {
	meta := form.DefaultMeta()
	gl := c.GenericList

	if gl.StudyOID != "" {
		meta.StudyOID = gl.StudyOID
	}
	if gl.StudyIdentifier != "" {
		meta.StudyIdentifier = gl.StudyIdentifier
	}
	if gl.EventOID != "" {
		meta.EventOID = gl.EventOID
	}
	if gl.FormOID != "" {
		meta.FormOID = gl.FormOID
	}
	if gl.ItemGroupOID != "" {
		meta.ItemGroupOID = gl.ItemGroupOID
	}
	if gl.ItemPrefix != "" {
		meta.ItemPrefix = gl.ItemPrefix
	}
	return meta
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.GenericList.PerformQuery && c.SPARQL.Endpoint == "" {
		return fmt.Errorf("sparql.endpoint is required when generic_list.perform_query is set")
	}
	if c.GenericList.Upload {
		if c.Clinica.Endpoint == "" {
			return fmt.Errorf("clinica.endpoint is required when generic_list.upload is set")
		}
		if c.Clinica.Username == "" || c.Clinica.Password == "" {
			return fmt.Errorf("clinica credentials are required when generic_list.upload is set")
		}
	}
	if c.Clinica.RequestsPerSecond <= 0 {
		return fmt.Errorf("clinica.requests_per_second must be positive")
	}
	if c.SPARQL.Timeout < 0 || c.Clinica.Timeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Generic list
	gl := other.GenericList
	if gl.StudyOID != "" {
		c.GenericList.StudyOID = gl.StudyOID
	}
	if gl.StudyIdentifier != "" {
		c.GenericList.StudyIdentifier = gl.StudyIdentifier
	}
	if gl.EventOID != "" {
		c.GenericList.EventOID = gl.EventOID
	}
	if gl.FormOID != "" {
		c.GenericList.FormOID = gl.FormOID
	}
	if gl.ItemGroupOID != "" {
		c.GenericList.ItemGroupOID = gl.ItemGroupOID
	}
	if gl.ItemPrefix != "" {
		c.GenericList.ItemPrefix = gl.ItemPrefix
	}
	if len(gl.AlternativeItemOIDs) > 0 {
		c.GenericList.AlternativeItemOIDs = gl.AlternativeItemOIDs
	}
	if gl.PerformQuery {
		c.GenericList.PerformQuery = true
	}
	if gl.Upload {
		c.GenericList.Upload = true
	}
	if gl.Strict {
		c.GenericList.Strict = true
	}

	// SPARQL
	if other.SPARQL.Endpoint != "" {
		c.SPARQL.Endpoint = other.SPARQL.Endpoint
	}
	if other.SPARQL.Username != "" {
		c.SPARQL.Username = other.SPARQL.Username
	}
	if other.SPARQL.Password != "" {
		c.SPARQL.Password = other.SPARQL.Password
	}
	if other.SPARQL.Timeout != 0 {
		c.SPARQL.Timeout = other.SPARQL.Timeout
	}

	// LibreClinica
	if other.Clinica.Endpoint != "" {
		c.Clinica.Endpoint = other.Clinica.Endpoint
	}
	if other.Clinica.Username != "" {
		c.Clinica.Username = other.Clinica.Username
	}
	if other.Clinica.Password != "" {
		c.Clinica.Password = other.Clinica.Password
	}
	if other.Clinica.EventLocation != "" {
		c.Clinica.EventLocation = other.Clinica.EventLocation
	}
	if other.Clinica.EventStartDate != "" {
		c.Clinica.EventStartDate = other.Clinica.EventStartDate
	}
	if other.Clinica.RequestsPerSecond != 0 {
		c.Clinica.RequestsPerSecond = other.Clinica.RequestsPerSecond
	}
	if other.Clinica.Timeout != 0 {
		c.Clinica.Timeout = other.Clinica.Timeout
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Stream != "" {
		c.NATS.Stream = other.NATS.Stream
	}
}
