// Package roo provides IRI constants for the Radiation Oncology Ontology
// properties used by the generic list field paths.
//
// ROO property identifiers are opaque P1000xx codes. Each constant is named
// by its rdfs:label so call sites stay readable; the code appears in the
// comment for cross-checking against the published ontology.
package roo

// Namespace is the base IRI prefix for Radiation Oncology Ontology terms.
const Namespace = "http://www.cancerdata.org/roo/"

// Patient-level properties.
const (
	// HasPersonIdentifier links a patient to its registry identifier literal.
	// roo:P100061 "has person identifier"
	HasPersonIdentifier = Namespace + "P100061"

	// HasBiologicalSex links a patient to its biological sex observation.
	// roo:P100018 "has biological sex"
	HasBiologicalSex = Namespace + "P100018"

	// HasAge links a patient to its age-at-diagnosis observation.
	// roo:P100016 "has age"
	HasAge = Namespace + "P100016"

	// HasBirthYear links a patient to its year-of-birth observation.
	// roo:P100026 "has birth year"
	HasBirthYear = Namespace + "P100026"

	// HasTreatingCentre links a patient to its treating centre observation.
	// roo:P100039 "is treated in"
	HasTreatingCentre = Namespace + "P100039"

	// HasWHOStatus links a patient to its WHO performance status observation.
	// roo:P100310 "has WHO status"
	HasWHOStatus = Namespace + "P100310"

	// HasSmokingStatus links a patient to its smoking status observation.
	// roo:P100306 "has smoking status"
	HasSmokingStatus = Namespace + "P100306"

	// HasAlcoholUse links a patient to its alcohol use observation.
	// roo:P100307 "has alcohol use"
	HasAlcoholUse = Namespace + "P100307"

	// HasWeight links a patient to its body weight observation.
	// roo:P100248 "has weight"
	HasWeight = Namespace + "P100248"

	// HasHeight links a patient to its body height observation.
	// roo:P100249 "has height"
	HasHeight = Namespace + "P100249"

	// HasDiabetes links a patient to its diabetes comorbidity observation.
	// roo:P100245 "has comorbidity diabetes"
	HasDiabetes = Namespace + "P100245"

	// HasCardiacHistory links a patient to its cardiac comorbidity observation.
	// roo:P100246 "has comorbidity cardiac"
	HasCardiacHistory = Namespace + "P100246"
)

// Tumour-level properties. All hang off the neoplasm node.
const (
	// HasNeoplasm links a patient to its primary tumour node.
	// roo:P100029 "has neoplasm"
	HasNeoplasm = Namespace + "P100029"

	// HasTumourSite links a neoplasm to its anatomical site observation.
	// roo:P100202 "has tumour site"
	HasTumourSite = Namespace + "P100202"

	// HasHistology links a neoplasm to its histology observation.
	// roo:P100212 "has histology"
	HasHistology = Namespace + "P100212"

	// HasLaterality links a neoplasm to its laterality observation.
	// roo:P100214 "has laterality"
	HasLaterality = Namespace + "P100214"

	// HasClinicalTStage links a neoplasm to its clinical T stage observation.
	// roo:P100243 "has clinical T stage"
	HasClinicalTStage = Namespace + "P100243"

	// HasClinicalNStage links a neoplasm to its clinical N stage observation.
	// roo:P100242 "has clinical N stage"
	HasClinicalNStage = Namespace + "P100242"

	// HasClinicalMStage links a neoplasm to its clinical M stage observation.
	// roo:P100241 "has clinical M stage"
	HasClinicalMStage = Namespace + "P100241"

	// HasDiagnosisDate links a neoplasm to its diagnosis date observation.
	// roo:P100251 "has date of diagnosis"
	HasDiagnosisDate = Namespace + "P100251"

	// HasGrade links a neoplasm to its differentiation grade observation.
	// roo:P100213 "has grade"
	HasGrade = Namespace + "P100213"
)

// Treatment-level properties. All hang off the radiotherapy node.
const (
	// HasRadiotherapy links a patient to its radiotherapy treatment node.
	// roo:P100024 "has radiotherapy"
	HasRadiotherapy = Namespace + "P100024"

	// HasModality links a radiotherapy node to its modality observation.
	// roo:P100203 "has modality"
	HasModality = Namespace + "P100203"

	// HasRTStartDate links a radiotherapy node to its start date observation.
	// roo:P100225 "has RT start date"
	HasRTStartDate = Namespace + "P100225"

	// HasRTEndDate links a radiotherapy node to its end date observation.
	// roo:P100226 "has RT end date"
	HasRTEndDate = Namespace + "P100226"

	// HasTotalDose links a radiotherapy node to its total dose observation.
	// roo:P100221 "has total dose"
	HasTotalDose = Namespace + "P100221"

	// HasFractions links a radiotherapy node to its fraction count observation.
	// roo:P100224 "has number of fractions"
	HasFractions = Namespace + "P100224"

	// HasReirradiation links a radiotherapy node to its re-irradiation flag
	// observation.
	// roo:P100229 "has re-irradiation"
	HasReirradiation = Namespace + "P100229"

	// HasChemotherapy links a patient to its chemotherapy indicator
	// observation.
	// roo:P100022 "has chemotherapy"
	HasChemotherapy = Namespace + "P100022"

	// HasSurgery links a patient to its surgery indicator observation.
	// roo:P100021 "has surgery"
	HasSurgery = Namespace + "P100021"
)

// Plan-comparison and follow-up properties.
const (
	// HasPlanComparison links a patient to its plan comparison node.
	// roo:P100402 "has plan comparison"
	HasPlanComparison = Namespace + "P100402"

	// HasComparisonDate links a plan comparison node to its date observation.
	// roo:P100403 "has comparison date"
	HasComparisonDate = Namespace + "P100403"

	// HasSelectedPlan links a plan comparison node to its selected modality
	// observation.
	// roo:P100404 "has selected plan"
	HasSelectedPlan = Namespace + "P100404"

	// HasFollowUp links a patient to its follow-up node.
	// roo:P100041 "has follow up"
	HasFollowUp = Namespace + "P100041"

	// HasVitalStatus links a follow-up node to its vital status observation.
	// roo:P100028 "has vital status"
	HasVitalStatus = Namespace + "P100028"

	// HasLastContactDate links a follow-up node to its last contact date
	// observation.
	// roo:P100254 "has date of last contact"
	HasLastContactDate = Namespace + "P100254"
)

// HasValue terminates every observation node at its literal value.
// roo:P100042 "has value"
const HasValue = Namespace + "P100042"

// PropertyLabels maps ROO property IRIs to their rdfs:labels.
// Used in diagnostics so log output names predicates by label, not code.
var PropertyLabels = map[string]string{
	HasPersonIdentifier: "has person identifier",
	HasBiologicalSex:    "has biological sex",
	HasAge:              "has age",
	HasBirthYear:        "has birth year",
	HasTreatingCentre:   "is treated in",
	HasWHOStatus:        "has WHO status",
	HasSmokingStatus:    "has smoking status",
	HasAlcoholUse:       "has alcohol use",
	HasWeight:           "has weight",
	HasHeight:           "has height",
	HasDiabetes:         "has comorbidity diabetes",
	HasCardiacHistory:   "has comorbidity cardiac",
	HasNeoplasm:         "has neoplasm",
	HasTumourSite:       "has tumour site",
	HasHistology:        "has histology",
	HasLaterality:       "has laterality",
	HasClinicalTStage:   "has clinical T stage",
	HasClinicalNStage:   "has clinical N stage",
	HasClinicalMStage:   "has clinical M stage",
	HasDiagnosisDate:    "has date of diagnosis",
	HasGrade:            "has grade",
	HasRadiotherapy:     "has radiotherapy",
	HasModality:         "has modality",
	HasRTStartDate:      "has RT start date",
	HasRTEndDate:        "has RT end date",
	HasTotalDose:        "has total dose",
	HasFractions:        "has number of fractions",
	HasReirradiation:    "has re-irradiation",
	HasChemotherapy:     "has chemotherapy",
	HasSurgery:          "has surgery",
	HasPlanComparison:   "has plan comparison",
	HasComparisonDate:   "has comparison date",
	HasSelectedPlan:     "has selected plan",
	HasFollowUp:         "has follow up",
	HasVitalStatus:      "has vital status",
	HasLastContactDate:  "has date of last contact",
	HasValue:            "has value",
}

// Label returns the rdfs:label for a ROO property IRI, or the IRI itself
// when the property is not in the label table.
func Label(iri string) string {
	if label, ok := PropertyLabels[iri]; ok {
		return label
	}
	return iri
}
