// Package ncit provides IRI constants for the NCI Thesaurus classes
// referenced by the generic list field paths.
package ncit

// Namespace is the base IRI prefix for NCI Thesaurus terms.
const Namespace = "http://ncicb.nci.nih.gov/xml/owl/EVS/Thesaurus.owl#"

// Class IRIs for the clinical concepts the extraction anchors on.
const (
	// ClassPatient is the root entity class for one study subject.
	// ncit:C16960 "Patient"
	ClassPatient = Namespace + "C16960"

	// ClassAge is the age-at-diagnosis observation class.
	// ncit:C25150 "Age"
	ClassAge = Namespace + "C25150"

	// ClassBiologicalSex is the biological sex observation class.
	// ncit:C28421 "Sex"
	ClassBiologicalSex = Namespace + "C28421"

	// ClassBirthYear is the year-of-birth observation class.
	// ncit:C83164 "Birth Year"
	ClassBirthYear = Namespace + "C83164"

	// ClassNeoplasm is the primary tumour class.
	// ncit:C3262 "Neoplasm"
	ClassNeoplasm = Namespace + "C3262"

	// ClassRadiotherapy is the radiation therapy treatment class.
	// ncit:C15313 "Radiation Therapy"
	ClassRadiotherapy = Namespace + "C15313"

	// ClassBodyWeight is the body weight observation class.
	// ncit:C81328 "Body Weight"
	ClassBodyWeight = Namespace + "C81328"

	// ClassSmokingStatus is the tobacco use observation class.
	// ncit:C19796 "Smoking Status"
	ClassSmokingStatus = Namespace + "C19796"
)
