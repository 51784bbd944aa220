package listextractor

import (
	"time"

	"github.com/ProTraitInfra/libre-clinica-upload/clinica"
	"github.com/ProTraitInfra/libre-clinica-upload/extract"
	"github.com/ProTraitInfra/libre-clinica-upload/vocabulary/genericlist"
)

// ExtractRequest asks for one extraction run over the current snapshot.
type ExtractRequest struct {
	// RequestID correlates the result message with this request.
	RequestID string `json:"request_id"`

	// IncludeRows carries the extracted rows in the result message.
	// Off by default: rows hold patient-level values and most consumers
	// only need the run summary.
	IncludeRows bool `json:"include_rows,omitempty"`
}

// ExtractResult reports one extraction run.
type ExtractResult struct {
	RequestID string `json:"request_id"`
	RunID     string `json:"run_id,omitempty"`

	Status          genericlist.RunStatusType `json:"status"`
	RowCount        int                       `json:"row_count"`
	ExcludedCount   int                       `json:"excluded_count"`
	UnresolvedCount int                       `json:"unresolved_count"`
	StartedAt       time.Time                 `json:"started_at"`
	FinishedAt      time.Time                 `json:"finished_at"`

	Excluded   []extract.Exclusion  `json:"excluded,omitempty"`
	Unresolved []extract.Unresolved `json:"unresolved,omitempty"`
	Rows       []extract.Row        `json:"rows,omitempty"`

	// Upload reports the LibreClinica push when the component is
	// configured for it.
	Upload *clinica.Report `json:"upload,omitempty"`

	Error string `json:"error,omitempty"`
}
