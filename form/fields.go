package form

import "github.com/ProTraitInfra/libre-clinica-upload/vocabulary/roo"

// Column names in the generic list. The constant order here is informal;
// the canonical SELECT/ODM order is the Fields slice in NewDefinition.
const (
	ColIdentifier     = "GEN_IDENTIFIER"
	ColBirthYear      = "GEN_BIRTH_YEAR"
	ColGender         = "GEN_GENDER"
	ColAge            = "GEN_AGE"
	ColCentre         = "GEN_CENTRE"
	ColWHO            = "GEN_WHO"
	ColSmoking        = "GEN_SMOKING"
	ColAlcohol        = "GEN_ALCOHOL"
	ColWeight         = "GEN_WEIGHT"
	ColHeight         = "GEN_HEIGHT"
	ColDiabetes       = "GEN_DIABETES"
	ColCardiac        = "GEN_CARDIAC"
	ColTumourSite     = "TUM_SITE"
	ColHistology      = "TUM_HISTOLOGY"
	ColLaterality     = "TUM_LATERALITY"
	ColClinicalT      = "TUM_CT"
	ColClinicalN      = "TUM_CN"
	ColClinicalM      = "TUM_CM"
	ColDiagnosisDate  = "TUM_DIAGNOSIS_DATE"
	ColGrade          = "TUM_GRADE"
	ColModality       = "TRT_MODALITY"
	ColRTStart        = "TRT_RT_START"
	ColRTEnd          = "TRT_RT_END"
	ColTotalDose      = "TRT_TOTAL_DOSE"
	ColFractions      = "TRT_FRACTIONS"
	ColReirradiation  = "TRT_REIRRADIATION"
	ColChemo          = "TRT_CHEMO"
	ColSurgery        = "TRT_SURGERY"
	ColComparisonDate = "PLN_COMPARISON_DATE"
	ColSelectedPlan   = "PLN_SELECTED"
	ColComparison     = "PLN_COMPARISON"
	ColVitalStatus    = "FUP_VITAL_STATUS"
	ColLastContact    = "FUP_LAST_CONTACT"
)

// Version is the current version of the mapping table.
const Version = "1.4.0"

// DefaultMeta returns the PROTRAIT registry identifiers for this form.
func DefaultMeta() Meta {
	return Meta{
		StudyOID:         "S_PROTRAIT",
		StudyIdentifier:  "PROTRAIT",
		EventOID:         "SE_BASELINE",
		FormOID:          "F_GENERICLIST",
		ItemGroupOID:     "IG_GENER",
		IdentifierColumn: ColIdentifier,
		GenderColumn:     ColGender,
		BirthYearColumn:  ColBirthYear,
		ItemPrefix:       "I_PROTR_",
	}
}

// NewDefinition builds the versioned mapping table. The Fields order is the
// canonical SELECT and ODM item order.
//
// Exactly two fields are required: the subject identifier and the birth
// year. A patient whose graph resolves neither contributes no row at all.
func NewDefinition() *Definition {
	return &Definition{
		Version: Version,
		Meta:    DefaultMeta(),
		Fields: []Field{
			// Required anchor
			{Column: ColIdentifier, Required: true, Doc: "Study subject identifier",
				Path: Path{roo.HasPersonIdentifier}},
			{Column: ColBirthYear, Required: true, Doc: "Year of birth",
				Path: Path{roo.HasBirthYear, roo.HasValue}},

			// Patient-level observations
			{Column: ColGender, Kind: RecodeGender, Doc: "Biological sex",
				Path: Path{roo.HasBiologicalSex, roo.HasValue}},
			{Column: ColAge, Kind: RecodeAge, Doc: "Age at diagnosis",
				Path: Path{roo.HasAge, roo.HasValue}},
			{Column: ColCentre, Kind: RecodeCentre, Doc: "Treating centre",
				Path: Path{roo.HasTreatingCentre, roo.HasValue}},
			{Column: ColWHO, Doc: "WHO performance status",
				Path: Path{roo.HasWHOStatus, roo.HasValue}},
			{Column: ColSmoking, Kind: RecodeSmoking, Doc: "Smoking status",
				Path: Path{roo.HasSmokingStatus, roo.HasValue}},
			{Column: ColAlcohol, Doc: "Alcohol use",
				Path: Path{roo.HasAlcoholUse, roo.HasValue}},
			{Column: ColWeight, Kind: RecodeWeight, Doc: "Body weight (kg)",
				Path: Path{roo.HasWeight, roo.HasValue}},
			{Column: ColHeight, Doc: "Body height (cm)",
				Path: Path{roo.HasHeight, roo.HasValue}},
			{Column: ColDiabetes, Doc: "Comorbidity: diabetes",
				Path: Path{roo.HasDiabetes, roo.HasValue}},
			{Column: ColCardiac, Doc: "Comorbidity: cardiac history",
				Path: Path{roo.HasCardiacHistory, roo.HasValue}},

			// Tumour-level observations
			{Column: ColTumourSite, Doc: "Tumour site",
				Path: Path{roo.HasNeoplasm, roo.HasTumourSite, roo.HasValue}},
			{Column: ColHistology, Doc: "Histology",
				Path: Path{roo.HasNeoplasm, roo.HasHistology, roo.HasValue}},
			{Column: ColLaterality, Doc: "Laterality",
				Path: Path{roo.HasNeoplasm, roo.HasLaterality, roo.HasValue}},
			{Column: ColClinicalT, Doc: "Clinical T stage",
				Path: Path{roo.HasNeoplasm, roo.HasClinicalTStage, roo.HasValue}},
			{Column: ColClinicalN, Doc: "Clinical N stage",
				Path: Path{roo.HasNeoplasm, roo.HasClinicalNStage, roo.HasValue}},
			{Column: ColClinicalM, Doc: "Clinical M stage",
				Path: Path{roo.HasNeoplasm, roo.HasClinicalMStage, roo.HasValue}},
			{Column: ColDiagnosisDate, Doc: "Date of diagnosis",
				Path: Path{roo.HasNeoplasm, roo.HasDiagnosisDate, roo.HasValue}},
			{Column: ColGrade, Doc: "Differentiation grade",
				Path: Path{roo.HasNeoplasm, roo.HasGrade, roo.HasValue}},

			// Treatment-level observations
			{Column: ColModality, Doc: "Radiotherapy modality",
				Path: Path{roo.HasRadiotherapy, roo.HasModality, roo.HasValue}},
			{Column: ColRTStart, Doc: "Radiotherapy start date",
				Path: Path{roo.HasRadiotherapy, roo.HasRTStartDate, roo.HasValue}},
			{Column: ColRTEnd, Doc: "Radiotherapy end date",
				Path: Path{roo.HasRadiotherapy, roo.HasRTEndDate, roo.HasValue}},
			{Column: ColTotalDose, Doc: "Total dose (Gy)",
				Path: Path{roo.HasRadiotherapy, roo.HasTotalDose, roo.HasValue}},
			{Column: ColFractions, Doc: "Number of fractions",
				Path: Path{roo.HasRadiotherapy, roo.HasFractions, roo.HasValue}},
			{Column: ColReirradiation, Kind: RecodeYesNo, Doc: "Re-irradiation",
				Path: Path{roo.HasRadiotherapy, roo.HasReirradiation, roo.HasValue}},
			{Column: ColChemo, Doc: "Chemotherapy given",
				Path: Path{roo.HasChemotherapy, roo.HasValue}},
			{Column: ColSurgery, Doc: "Surgery performed",
				Path: Path{roo.HasSurgery, roo.HasValue}},

			// Plan comparison
			{Column: ColComparisonDate, Doc: "Plan comparison date",
				Path: Path{roo.HasPlanComparison, roo.HasComparisonDate, roo.HasValue}},
			{Column: ColSelectedPlan, Doc: "Selected plan modality",
				Path: Path{roo.HasPlanComparison, roo.HasSelectedPlan, roo.HasValue}},
			{Column: ColComparison, Kind: RecodePresence, DependsOn: ColComparisonDate,
				Doc: "Planning comparison performed"},

			// Follow-up
			{Column: ColVitalStatus, Doc: "Vital status",
				Path: Path{roo.HasFollowUp, roo.HasVitalStatus, roo.HasValue}},
			{Column: ColLastContact, Doc: "Date of last contact",
				Path: Path{roo.HasFollowUp, roo.HasLastContactDate, roo.HasValue}},
		},
	}
}
