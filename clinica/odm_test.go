package clinica

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProTraitInfra/libre-clinica-upload/extract"
	"github.com/ProTraitInfra/libre-clinica-upload/form"
)

func TestBuildImportItems(t *testing.T) {
	def := form.NewDefinition()
	row := extract.Row{
		form.ColIdentifier: "PT-001",
		form.ColGender:     "2",
		form.ColBirthYear:  "1960",
		form.ColWeight:     "72",
	}

	doc := BuildImport(def, "SS_PT001", row, nil)

	cd := doc.ClinicalData
	assert.Equal(t, def.Meta.StudyOID, cd.StudyOID)
	assert.Equal(t, "SS_PT001", cd.SubjectData.SubjectKey)
	assert.Equal(t, def.Meta.EventOID, cd.SubjectData.StudyEventData.StudyEventOID)
	assert.Equal(t, def.Meta.FormOID, cd.SubjectData.StudyEventData.FormData.FormOID)

	items := cd.SubjectData.StudyEventData.FormData.ItemGroupData.Items
	require.Len(t, items, 3)

	oids := make(map[string]string, len(items))
	for _, item := range items {
		oids[item.ItemOID] = item.Value
	}

	// The identifier is the subject label, never an item.
	assert.NotContains(t, oids, def.Meta.ItemPrefix+form.ColIdentifier)
	assert.Equal(t, "2", oids[def.Meta.ItemPrefix+form.ColGender])
	assert.Equal(t, "1960", oids[def.Meta.ItemPrefix+form.ColBirthYear])
	assert.Equal(t, "72", oids[def.Meta.ItemPrefix+form.ColWeight])
}

func TestBuildImportSkipsAbsentColumns(t *testing.T) {
	def := form.NewDefinition()
	row := extract.Row{
		form.ColIdentifier: "PT-001",
		form.ColBirthYear:  "1960",
	}

	doc := BuildImport(def, "SS_PT001", row, nil)
	items := doc.ClinicalData.SubjectData.StudyEventData.FormData.ItemGroupData.Items
	require.Len(t, items, 1)
	assert.Equal(t, def.Meta.ItemPrefix+form.ColBirthYear, items[0].ItemOID)
}

func TestBuildImportAlternativeOIDs(t *testing.T) {
	def := form.NewDefinition()
	row := extract.Row{
		form.ColIdentifier: "PT-001",
		form.ColGender:     "1",
	}

	doc := BuildImport(def, "SS_PT001", row, map[string]string{
		form.ColGender: "I_LEGACY_SEX",
	})

	items := doc.ClinicalData.SubjectData.StudyEventData.FormData.ItemGroupData.Items
	require.Len(t, items, 1)
	assert.Equal(t, "I_LEGACY_SEX", items[0].ItemOID)
}

func TestBuildImportTransliteratesValues(t *testing.T) {
	def := form.NewDefinition()
	row := extract.Row{
		form.ColIdentifier: "PT-001",
		form.ColTumourSite: "œsophage supérieur",
	}

	doc := BuildImport(def, "SS_PT001", row, nil)
	items := doc.ClinicalData.SubjectData.StudyEventData.FormData.ItemGroupData.Items
	require.Len(t, items, 1)
	assert.Equal(t, "oesophage superieur", items[0].Value)
}

func TestBuildImportMarshal(t *testing.T) {
	def := form.NewDefinition()
	row := extract.Row{
		form.ColIdentifier: "PT-001",
		form.ColBirthYear:  "1960",
	}

	data, err := xml.Marshal(BuildImport(def, "SS_PT001", row, nil))
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `StudyOID="`+def.Meta.StudyOID+`"`)
	assert.Contains(t, out, `SubjectKey="SS_PT001"`)
	assert.Contains(t, out, `<UpsertOn NotStarted="true" DataEntryStarted="true" DataEntryComplete="true">`)
	assert.Contains(t, out, `OpenClinica:Status="initial data entry"`)
	assert.Contains(t, out, `ItemOID="`+def.Meta.ItemPrefix+form.ColBirthYear+`" Value="1960"`)
}
