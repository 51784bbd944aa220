package listextractor

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface defines the minimal interface needed for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the list-extractor processor with the given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "list-extractor",
		Factory:     NewComponent,
		Schema:      listExtractorSchema,
		Type:        "processor",
		Protocol:    "json",
		Domain:      "list",
		Description: "Extracts generic list rows from patient subgraphs and uploads them to LibreClinica",
		Version:     "1.0.0",
	})
}
