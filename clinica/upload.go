package clinica

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/ProTraitInfra/libre-clinica-upload/extract"
	"github.com/ProTraitInfra/libre-clinica-upload/form"
	"github.com/ProTraitInfra/libre-clinica-upload/metrics"
)

// DefaultRequestsPerSecond paces SOAP calls so batch uploads do not
// starve the registry's interactive users.
const DefaultRequestsPerSecond = 2.0

// Upload stages, recorded on failed subjects.
const (
	StageSubject = "subject"
	StageImport  = "import"
)

// FailedSubject records one subject the upload could not complete.
type FailedSubject struct {
	Label string `json:"label"`
	Stage string `json:"stage"`
	Err   string `json:"error"`
}

// Report summarises one upload batch.
type Report struct {
	Uploaded int             `json:"uploaded"`
	Failed   []FailedSubject `json:"failed,omitempty"`
}

// Uploader pushes extracted rows into LibreClinica: ensure the subject
// exists, schedule the baseline event, import the form data. Failures
// are collected per subject; one bad row never aborts the batch.
type Uploader struct {
	client          *Client
	def             *form.Definition
	limiter         *rate.Limiter
	logger          *slog.Logger
	alternativeOIDs map[string]string
	eventLocation   string
	eventStartDate  string
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithRequestsPerSecond overrides the default request pacing.
func WithRequestsPerSecond(rps float64) UploaderOption {
	return func(u *Uploader) {
		u.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithAlternativeItemOIDs overrides the derived item OID for the named
// columns, for registries whose CRF predates the current column set.
func WithAlternativeItemOIDs(oids map[string]string) UploaderOption {
	return func(u *Uploader) {
		u.alternativeOIDs = oids
	}
}

// WithEventDefaults overrides the scheduled event's location and start date.
func WithEventDefaults(location, startDate string) UploaderOption {
	return func(u *Uploader) {
		u.eventLocation = location
		u.eventStartDate = startDate
	}
}

// WithUploaderLogger sets the uploader's logger.
func WithUploaderLogger(logger *slog.Logger) UploaderOption {
	return func(u *Uploader) {
		u.logger = logger
	}
}

// NewUploader creates an uploader for one form definition.
func NewUploader(client *Client, def *form.Definition, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		client:  client,
		def:     def,
		limiter: rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.logger == nil {
		u.logger = slog.Default()
	}
	return u
}

// Upload pushes every row to the registry and reports per-subject
// outcomes. It returns an error only when the context ends; service
// faults land in the report instead.
func (u *Uploader) Upload(ctx context.Context, rows []extract.Row) (*Report, error) {
	meta := u.def.Meta
	report := &Report{}

	for _, row := range rows {
		label := row[meta.IdentifierColumn]
		if label == "" {
			report.Failed = append(report.Failed, FailedSubject{
				Stage: StageSubject,
				Err:   "row has no identifier",
			})
			metrics.RecordUploadSubject(metrics.StatusFailed)
			continue
		}

		if err := u.limiter.Wait(ctx); err != nil {
			return report, fmt.Errorf("upload interrupted: %w", err)
		}

		if err := u.uploadRow(ctx, label, row); err != nil {
			if ctx.Err() != nil {
				return report, fmt.Errorf("upload interrupted: %w", ctx.Err())
			}
			stage := StageImport
			var failed FailedSubject
			if fs, ok := asFailedSubject(err); ok {
				failed = fs
			} else {
				failed = FailedSubject{Label: label, Stage: stage, Err: err.Error()}
			}
			report.Failed = append(report.Failed, failed)
			metrics.RecordUploadSubject(metrics.StatusFailed)
			u.logger.Error("subject upload failed",
				"label", label,
				"stage", failed.Stage,
				"error", failed.Err)
			continue
		}

		report.Uploaded++
		metrics.RecordUploadSubject(metrics.StatusUploaded)
		u.logger.Info("subject uploaded", "label", label)
	}

	return report, nil
}

// stageError tags an error with the upload stage it happened in.
type stageError struct {
	label string
	stage string
	err   error
}

func (e *stageError) Error() string { return e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

func asFailedSubject(err error) (FailedSubject, bool) {
	se, ok := err.(*stageError)
	if !ok {
		return FailedSubject{}, false
	}
	return FailedSubject{Label: se.label, Stage: se.stage, Err: se.err.Error()}, true
}

// uploadRow runs the subject/event/import sequence for one row. A
// scheduling fault is tolerated: the event is usually already open from
// an earlier run, and the import itself verifies the event exists.
func (u *Uploader) uploadRow(ctx context.Context, label string, row extract.Row) error {
	meta := u.def.Meta

	oid, err := u.client.EnsureSubject(ctx, label, row[meta.GenderColumn], meta.StudyIdentifier)
	if err != nil {
		return &stageError{label: label, stage: StageSubject, err: err}
	}

	if err := u.client.ScheduleEvent(ctx, label, meta.StudyIdentifier, meta.EventOID,
		u.eventLocation, u.eventStartDate); err != nil {
		u.logger.Warn("event schedule answered with a fault, continuing to import",
			"label", label,
			"event", meta.EventOID,
			"error", err)
	}

	doc := BuildImport(u.def, oid, row, u.alternativeOIDs)
	if err := u.client.Import(ctx, doc); err != nil {
		return &stageError{label: label, stage: StageImport, err: err}
	}
	return nil
}
