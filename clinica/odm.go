package clinica

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/ProTraitInfra/libre-clinica-upload/extract"
	"github.com/ProTraitInfra/libre-clinica-upload/form"
)

// ODM is the CDISC ODM import document accepted by the data service.
type ODM struct {
	XMLName      xml.Name     `xml:"ODM"`
	ClinicalData ClinicalData `xml:"ClinicalData"`
}

// ClinicalData scopes one subject's form data to a study version.
type ClinicalData struct {
	StudyOID           string      `xml:"StudyOID,attr"`
	MetaDataVersionOID string      `xml:"MetaDataVersionOID,attr"`
	UpsertOn           UpsertOn    `xml:"UpsertOn"`
	SubjectData        SubjectData `xml:"SubjectData"`
}

// UpsertOn tells the service which form states may be overwritten.
type UpsertOn struct {
	NotStarted        string `xml:"NotStarted,attr"`
	DataEntryStarted  string `xml:"DataEntryStarted,attr"`
	DataEntryComplete string `xml:"DataEntryComplete,attr"`
}

type SubjectData struct {
	SubjectKey     string         `xml:"SubjectKey,attr"`
	StudyEventData StudyEventData `xml:"StudyEventData"`
}

type StudyEventData struct {
	StudyEventOID       string   `xml:"StudyEventOID,attr"`
	StudyEventRepeatKey string   `xml:"StudyEventRepeatKey,attr"`
	FormData            FormData `xml:"FormData"`
}

type FormData struct {
	FormOID       string        `xml:"FormOID,attr"`
	Status        string        `xml:"OpenClinica:Status,attr"`
	ItemGroupData ItemGroupData `xml:"ItemGroupData"`
}

type ItemGroupData struct {
	ItemGroupOID       string     `xml:"ItemGroupOID,attr"`
	ItemGroupRepeatKey string     `xml:"ItemGroupRepeatKey,attr"`
	TransactionType    string     `xml:"TransactionType,attr"`
	Items              []ItemData `xml:"ItemData"`
}

type ItemData struct {
	ItemOID string `xml:"ItemOID,attr"`
	Value   string `xml:"Value,attr"`
}

const metaDataVersionOID = "v1.0.0"

// BuildImport assembles the ODM document for one extracted row. Items
// follow the definition's column order; the identifier column never
// becomes an item (it is the subject label, not form data), absent
// columns are skipped, and values are transliterated to ASCII. Item OIDs
// default to the item prefix plus the column name unless an alternative
// OID override names the column.
func BuildImport(def *form.Definition, subjectOID string, row extract.Row, alternativeOIDs map[string]string) ODM {
	meta := def.Meta

	items := make([]ItemData, 0, len(def.Fields))
	for _, field := range def.Fields {
		if field.Column == meta.IdentifierColumn {
			continue
		}
		value, ok := row[field.Column]
		if !ok {
			continue
		}

		oid := meta.ItemPrefix + field.Column
		if alt, overridden := alternativeOIDs[field.Column]; overridden {
			oid = alt
		}
		items = append(items, ItemData{ItemOID: oid, Value: ToASCII(value)})
	}

	return ODM{
		ClinicalData: ClinicalData{
			StudyOID:           meta.StudyOID,
			MetaDataVersionOID: metaDataVersionOID,
			UpsertOn: UpsertOn{
				NotStarted:        "true",
				DataEntryStarted:  "true",
				DataEntryComplete: "true",
			},
			SubjectData: SubjectData{
				SubjectKey: subjectOID,
				StudyEventData: StudyEventData{
					StudyEventOID:       meta.EventOID,
					StudyEventRepeatKey: "1",
					FormData: FormData{
						FormOID: meta.FormOID,
						Status:  "initial data entry",
						ItemGroupData: ItemGroupData{
							ItemGroupOID:       meta.ItemGroupOID,
							ItemGroupRepeatKey: "1",
							TransactionType:    "Insert",
							Items:              items,
						},
					},
				},
			},
		},
	}
}

type importRequest struct {
	XMLName xml.Name `xml:"v1:importRequest"`
	Inner   string   `xml:",innerxml"`
}

// Import submits one ODM document through the data service.
func (c *Client) Import(ctx context.Context, doc ODM) error {
	odm, err := xml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal odm: %w", err)
	}

	body, err := xml.Marshal(importRequest{Inner: string(odm)})
	if err != nil {
		return fmt.Errorf("marshal import request: %w", err)
	}

	data, err := c.call(ctx, dataService, nsDataV1, string(body), true)
	if err != nil {
		return err
	}

	res, err := ParseResult(data)
	if err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%w: import for %s: %s", ErrFault, doc.ClinicalData.SubjectData.SubjectKey, res.Message)
	}
	return nil
}
