package clinica

import (
	"context"
	"encoding/xml"
	"fmt"
)

// Event scheduling defaults. The registry only needs a location and a
// nominal start date to open the baseline event.
const (
	DefaultEventLocation  = "NL"
	DefaultEventStartDate = "2000-01-01"
)

type scheduleRequest struct {
	XMLName xml.Name  `xml:"v1:scheduleRequest"`
	Event   eventBean `xml:"v1:event"`
}

type eventBean struct {
	SubjectRef         subjectLabelRef `xml:"bean:studySubjectRef"`
	StudyRef           studyRef        `xml:"bean:studyRef"`
	EventDefinitionOID string          `xml:"bean:eventDefinitionOID"`
	Location           string          `xml:"bean:location"`
	StartDate          string          `xml:"bean:startDate"`
}

type subjectLabelRef struct {
	Label string `xml:"bean:label"`
}

// ScheduleEvent opens a study event for the subject. Empty location or
// start date fall back to the defaults. A Fail answer (including the
// already-scheduled case) comes back as a wrapped ErrFault with the
// service's message.
func (c *Client) ScheduleEvent(ctx context.Context, label, studyIdentifier, eventOID, location, startDate string) error {
	if location == "" {
		location = DefaultEventLocation
	}
	if startDate == "" {
		startDate = DefaultEventStartDate
	}

	body, err := xml.Marshal(scheduleRequest{
		Event: eventBean{
			SubjectRef:         subjectLabelRef{Label: label},
			StudyRef:           studyRef{Identifier: studyIdentifier},
			EventDefinitionOID: eventOID,
			Location:           location,
			StartDate:          startDate,
		},
	})
	if err != nil {
		return fmt.Errorf("marshal event schedule: %w", err)
	}

	data, err := c.call(ctx, eventService, nsEventV1, string(body), false)
	if err != nil {
		return err
	}

	res, err := ParseResult(data)
	if err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%w: schedule %s for %s: %s", ErrFault, eventOID, label, res.Message)
	}
	return nil
}
