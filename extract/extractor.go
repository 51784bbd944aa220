// Package extract evaluates the generic list mapping against an in-memory
// triple snapshot, producing one flat row per patient.
package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/ProTraitInfra/libre-clinica-upload/form"
	"github.com/ProTraitInfra/libre-clinica-upload/graph"
	"github.com/ProTraitInfra/libre-clinica-upload/vocabulary/ncit"
	"github.com/ProTraitInfra/libre-clinica-upload/vocabulary/roo"
	"github.com/google/uuid"
)

// ErrNoPatients is returned when the snapshot contains no patient subjects.
var ErrNoPatients = errors.New("no patient subjects in snapshot")

// ErrUnresolved is returned in strict mode when a recode input matches no
// enumerated case and the rule list declares no catch-all.
var ErrUnresolved = errors.New("unresolved recode input")

// Row is one output record: column name to value. A missing key means the
// field is absent for that patient.
type Row map[string]string

// Exclusion records a patient dropped by the required anchor pattern.
type Exclusion struct {
	Subject string
	Reason  string
}

// Unresolved records a raw value the mapping could not recode.
type Unresolved struct {
	Subject string
	Column  string
	Raw     string
}

// Run is the result of one extraction over a snapshot.
type Run struct {
	ID         string
	Rows       []Row
	Excluded   []Exclusion
	Unresolved []Unresolved
	StartedAt  time.Time
	FinishedAt time.Time
}

// Extractor applies a mapping definition to snapshots.
type Extractor struct {
	def    *form.Definition
	strict bool
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithStrict makes unresolved recode inputs abort the extraction instead
// of degrading to an absent field plus a diagnostic.
func WithStrict() Option {
	return func(e *Extractor) { e.strict = true }
}

// WithLogger sets the extractor's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) { e.logger = logger }
}

// New creates an extractor for the given definition.
func New(def *form.Definition, opts ...Option) *Extractor {
	e := &Extractor{def: def}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Extract produces one row per patient with a resolvable required anchor.
// Patients missing the identifier or birth year are excluded, not errored.
// Exact-duplicate rows collapse to one (SELECT DISTINCT semantics); rows
// are sorted by the identifier column.
func (e *Extractor) Extract(snapshot *graph.Snapshot) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}

	patients := snapshot.SubjectsOfType(ncit.ClassPatient)
	if len(patients) == 0 {
		return nil, ErrNoPatients
	}

	for _, patient := range patients {
		row, excluded, err := e.buildRow(snapshot, patient, run)
		if err != nil {
			return nil, err
		}
		if excluded != nil {
			run.Excluded = append(run.Excluded, *excluded)
			continue
		}
		run.Rows = append(run.Rows, row)
	}

	run.Rows = distinctRows(run.Rows, e.def.Meta.IdentifierColumn)
	run.FinishedAt = time.Now()

	e.logger.Info("extraction completed",
		"run_id", run.ID,
		"patients", len(patients),
		"rows", len(run.Rows),
		"excluded", len(run.Excluded),
		"unresolved", len(run.Unresolved))

	return run, nil
}

// buildRow resolves every declared field for one patient. A nil row with a
// non-nil exclusion means the patient failed the required anchor.
func (e *Extractor) buildRow(snapshot *graph.Snapshot, patient string, run *Run) (Row, *Exclusion, error) {
	row := make(Row, len(e.def.Fields))

	// Required anchor first: either field absent drops the whole patient.
	for _, field := range e.def.RequiredFields() {
		term, found := snapshot.ResolveFirst(patient, field.Path)
		if !found {
			return nil, &Exclusion{
				Subject: patient,
				Reason:  fmt.Sprintf("missing %s (%s)", field.Column, roo.Label(field.Path[0])),
			}, nil
		}
		row[field.Column] = term.Value
	}

	// Optional pathed fields.
	for _, field := range e.def.Fields {
		if field.Required || field.Kind == form.RecodePresence {
			continue
		}

		var raw string
		term, found := snapshot.ResolveFirst(patient, field.Path)
		if found {
			raw = term.Value
		}

		value, present, err := field.Recode(raw, found)
		if errors.Is(err, form.ErrUnresolvedValue) {
			if e.strict {
				return nil, nil, fmt.Errorf("%w: patient %s column %s value %q",
					ErrUnresolved, patient, field.Column, raw)
			}
			run.Unresolved = append(run.Unresolved, Unresolved{
				Subject: patient,
				Column:  field.Column,
				Raw:     raw,
			})
			e.logger.Warn("unresolved recode input",
				"patient", patient,
				"column", field.Column,
				"raw", raw)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("recode %s for %s: %w", field.Column, patient, err)
		}
		if present {
			row[field.Column] = value
		}
	}

	// Derived fields last: they read the row built so far.
	for _, field := range e.def.Fields {
		if field.Kind != form.RecodePresence {
			continue
		}
		_, sourceBound := row[field.DependsOn]
		value, present, err := field.Recode("", sourceBound)
		if err != nil {
			return nil, nil, fmt.Errorf("derive %s for %s: %w", field.Column, patient, err)
		}
		if present {
			row[field.Column] = value
		}
	}

	return row, nil, nil
}

// distinctRows sorts rows by the identifier column and removes exact
// duplicates.
func distinctRows(rows []Row, identifierColumn string) []Row {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i][identifierColumn] != rows[j][identifierColumn] {
			return rows[i][identifierColumn] < rows[j][identifierColumn]
		}
		return rowKey(rows[i]) < rowKey(rows[j])
	})

	var out []Row
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		key := rowKey(row)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
	}
	return out
}

// rowKey builds a canonical string for duplicate detection.
func rowKey(row Row) string {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	var sb strings.Builder
	for _, col := range cols {
		sb.WriteString(col)
		sb.WriteByte('=')
		sb.WriteString(row[col])
		sb.WriteByte('\x1f')
	}
	return sb.String()
}
