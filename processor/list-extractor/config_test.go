package listextractor

import (
	"testing"

	"github.com/ProTraitInfra/libre-clinica-upload/export"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "empty config",
			config: Config{},
		},
		{
			name:   "defaults",
			config: DefaultConfig(),
		},
		{
			name:    "bad card format",
			config:  Config{CardFormat: "rdfxml"},
			wantErr: true,
		},
		{
			name: "clinica without endpoint",
			config: Config{Clinica: &ClinicaSettings{
				Username: "importer",
				Password: "secret",
			}},
			wantErr: true,
		},
		{
			name: "clinica without credentials",
			config: Config{Clinica: &ClinicaSettings{
				Endpoint: "https://ec.example.org/LibreClinica-ws/ws/",
			}},
			wantErr: true,
		},
		{
			name: "clinica configured",
			config: Config{Clinica: &ClinicaSettings{
				Endpoint: "https://ec.example.org/LibreClinica-ws/ws/",
				Username: "importer",
				Password: "secret",
			}},
		},
		{
			name: "negative pacing",
			config: Config{Clinica: &ClinicaSettings{
				Endpoint:          "https://ec.example.org/LibreClinica-ws/ws/",
				Username:          "importer",
				Password:          "secret",
				RequestsPerSecond: -1,
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetCardFormat(t *testing.T) {
	tests := []struct {
		in   string
		want export.Format
	}{
		{"", export.FormatTurtle},
		{"turtle", export.FormatTurtle},
		{"ntriples", export.FormatNTriples},
		{"JSONLD", export.FormatJSONLD},
	}

	for _, tt := range tests {
		config := Config{CardFormat: tt.in}
		if got := config.GetCardFormat(); got != tt.want {
			t.Errorf("GetCardFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultConfigPorts(t *testing.T) {
	config := DefaultConfig()

	if err := config.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}

	entity := config.findInput(portEntityIngest)
	if entity == nil || entity.Subject != "graph.ingest.entity" || entity.StreamName != "GRAPH" {
		t.Errorf("unexpected entity ingest port: %+v", entity)
	}

	request := config.findInput(portExtractRequest)
	if request == nil || request.Subject != "list.extract.request" {
		t.Errorf("unexpected extract request port: %+v", request)
	}

	result := config.findOutput(portExtractResult)
	if result == nil || result.Subject != "list.extract.result" {
		t.Errorf("unexpected extract result port: %+v", result)
	}

	card := config.findOutput(portCatalogCard)
	if card == nil || card.Subject != "list.catalog.card" {
		t.Errorf("unexpected catalog card port: %+v", card)
	}

	if config.findInput("nonexistent") != nil {
		t.Error("unknown port name must resolve to nil")
	}
}
