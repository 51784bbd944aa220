package clinica

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"time"
)

// lookupEnrollmentDate is the placeholder date sent on lookup requests,
// where the service requires the element but ignores its value.
const lookupEnrollmentDate = "1900-01-01"

type isSubjectRequest struct {
	XMLName xml.Name         `xml:"v1:isStudySubjectRequest"`
	Subject studySubjectBean `xml:"v1:studySubject"`
}

type createSubjectRequest struct {
	XMLName xml.Name         `xml:"v1:createRequest"`
	Subject studySubjectBean `xml:"v1:studySubject"`
}

type studySubjectBean struct {
	Label          string      `xml:"bean:label"`
	EnrollmentDate string      `xml:"bean:enrollmentDate"`
	Subject        subjectBean `xml:"bean:subject"`
	StudyRef       studyRef    `xml:"bean:studyRef"`
}

type subjectBean struct {
	Gender string `xml:"bean:gender,omitempty"`
}

type studyRef struct {
	Identifier string `xml:"bean:identifier"`
}

// GenderToRegistry maps a recoded gender code to the registry's
// single-letter form. Unknown codes pass through unchanged so the
// service can reject them with its own diagnostics.
func GenderToRegistry(code string) string {
	switch code {
	case "1":
		return "m"
	case "2":
		return "f"
	default:
		return code
	}
}

// SubjectOID looks up the OID of an enrolled study subject by label.
// Returns ErrSubjectNotFound when the registry does not know the label.
func (c *Client) SubjectOID(ctx context.Context, label, studyIdentifier string) (string, error) {
	body, err := xml.Marshal(isSubjectRequest{
		Subject: studySubjectBean{
			Label:          label,
			EnrollmentDate: lookupEnrollmentDate,
			StudyRef:       studyRef{Identifier: studyIdentifier},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal subject lookup: %w", err)
	}

	data, err := c.call(ctx, subjectService, nsSubjectV1, string(body), false)
	if err != nil {
		return "", err
	}

	res, err := ParseResult(data)
	if err != nil {
		return "", err
	}
	if !res.Success || res.SubjectOID == "" {
		return "", fmt.Errorf("%w: %s", ErrSubjectNotFound, label)
	}
	return res.SubjectOID, nil
}

// CreateSubject enrols a new study subject with today's enrollment date.
// The gender code is the recoded form value ("1"/"2").
func (c *Client) CreateSubject(ctx context.Context, label, gender, studyIdentifier string) error {
	body, err := xml.Marshal(createSubjectRequest{
		Subject: studySubjectBean{
			Label:          label,
			EnrollmentDate: time.Now().Format("2006-01-02"),
			Subject:        subjectBean{Gender: GenderToRegistry(gender)},
			StudyRef:       studyRef{Identifier: studyIdentifier},
		},
	})
	if err != nil {
		return fmt.Errorf("marshal subject create: %w", err)
	}

	data, err := c.call(ctx, subjectService, nsSubjectV1, string(body), false)
	if err != nil {
		return err
	}

	res, err := ParseResult(data)
	if err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%w: create subject %s: %s", ErrFault, label, res.Message)
	}

	c.logger.Info("study subject created", "label", label)
	return nil
}

// EnsureSubject returns the subject OID for a label, enrolling the
// subject first when the registry does not know it yet.
func (c *Client) EnsureSubject(ctx context.Context, label, gender, studyIdentifier string) (string, error) {
	oid, err := c.SubjectOID(ctx, label, studyIdentifier)
	if err == nil {
		return oid, nil
	}
	if !errors.Is(err, ErrSubjectNotFound) {
		return "", err
	}

	if err := c.CreateSubject(ctx, label, gender, studyIdentifier); err != nil {
		return "", err
	}
	return c.SubjectOID(ctx, label, studyIdentifier)
}
