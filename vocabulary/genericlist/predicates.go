package genericlist

import "github.com/c360studio/semstreams/vocabulary"

// Namespace is the base IRI prefix for generic list vocabulary terms.
const Namespace = "https://w3id.org/protrait/genericlist#"

// EntityNamespace is the base IRI for generic list entity instances.
const EntityNamespace = "https://w3id.org/protrait/entity/"

// Form entity predicates describe a registered extraction definition.
const (
	// FormVersion is the semantic version of the field mapping table.
	FormVersion = "list.form.version"

	// FormStudy is the study OID the form belongs to.
	FormStudy = "list.form.study"

	// FormEvent is the study event OID the form is scheduled under.
	FormEvent = "list.form.event"

	// FormOID is the registry form OID.
	FormOID = "list.form.oid"

	// FormItemGroup is the registry item group OID.
	FormItemGroup = "list.form.item_group"

	// FormItemPrefix is the prefix prepended to column names to form item OIDs.
	FormItemPrefix = "list.form.item_prefix"

	// FormColumnCount is the number of declared output columns.
	FormColumnCount = "list.form.column_count"

	// FormIdentifierColumn is the column designated as the subject identifier.
	FormIdentifierColumn = "list.form.identifier_column"

	// FormGenderColumn is the column designated as gender for subject creation.
	FormGenderColumn = "list.form.gender_column"

	// FormBirthYearColumn is the column designated as birth year for linkage.
	FormBirthYearColumn = "list.form.birth_year_column"
)

// Run entity predicates describe one completed extraction.
const (
	// RunForm links a run to the form entity it executed.
	RunForm = "list.run.form"

	// RunRowCount is the number of distinct rows produced.
	RunRowCount = "list.run.row_count"

	// RunExcludedCount is the number of patients excluded by the required
	// identifier/birth-year anchor.
	RunExcludedCount = "list.run.excluded_count"

	// RunUnresolvedCount is the number of unresolved recode inputs recorded.
	RunUnresolvedCount = "list.run.unresolved_count"

	// RunStatus is the run outcome.
	// Values: completed, partial, failed
	RunStatus = "list.run.status"

	// RunStartedAt is when the extraction started (RFC3339).
	RunStartedAt = "list.run.started_at"

	// RunFinishedAt is when the extraction finished (RFC3339).
	RunFinishedAt = "list.run.finished_at"
)

func init() {
	// Form predicates
	vocabulary.Register(FormVersion,
		vocabulary.WithDescription("Semantic version of the field mapping table"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"formVersion"))

	vocabulary.Register(FormStudy,
		vocabulary.WithDescription("Study OID the form belongs to"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"study"))

	vocabulary.Register(FormEvent,
		vocabulary.WithDescription("Study event OID the form is scheduled under"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"event"))

	vocabulary.Register(FormOID,
		vocabulary.WithDescription("Registry form OID"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"formOID"))

	vocabulary.Register(FormItemGroup,
		vocabulary.WithDescription("Registry item group OID"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"itemGroup"))

	vocabulary.Register(FormItemPrefix,
		vocabulary.WithDescription("Prefix prepended to column names to form item OIDs"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"itemPrefix"))

	vocabulary.Register(FormColumnCount,
		vocabulary.WithDescription("Number of declared output columns"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(Namespace+"columnCount"))

	vocabulary.Register(FormIdentifierColumn,
		vocabulary.WithDescription("Column designated as the subject identifier"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"identifierColumn"))

	vocabulary.Register(FormGenderColumn,
		vocabulary.WithDescription("Column designated as gender for subject creation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"genderColumn"))

	vocabulary.Register(FormBirthYearColumn,
		vocabulary.WithDescription("Column designated as birth year for linkage"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"birthYearColumn"))

	// Run predicates
	vocabulary.Register(RunForm,
		vocabulary.WithDescription("Form entity this run executed"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(vocabulary.ProvWasDerivedFrom))

	vocabulary.Register(RunRowCount,
		vocabulary.WithDescription("Number of distinct rows produced"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(Namespace+"rowCount"))

	vocabulary.Register(RunExcludedCount,
		vocabulary.WithDescription("Number of patients excluded by the required anchor"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(Namespace+"excludedCount"))

	vocabulary.Register(RunUnresolvedCount,
		vocabulary.WithDescription("Number of unresolved recode inputs recorded"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(Namespace+"unresolvedCount"))

	vocabulary.Register(RunStatus,
		vocabulary.WithDescription("Run outcome: completed, partial, failed"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"runStatus"))

	vocabulary.Register(RunStartedAt,
		vocabulary.WithDescription("When the extraction started (RFC3339)"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(vocabulary.ProvStartedAtTime))

	vocabulary.Register(RunFinishedAt,
		vocabulary.WithDescription("When the extraction finished (RFC3339)"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(vocabulary.ProvEndedAtTime))
}

// IRI returns the registered IRI mapping for a generic list predicate.
// Falls back to the predicate under the PROTRAIT namespace when the
// predicate carries no registration.
func IRI(predicate string) string {
	if meta := vocabulary.GetPredicateMetadata(predicate); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI
	}
	return Namespace + predicate
}
