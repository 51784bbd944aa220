package graph

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "protrait",
		Category:    "listrun",
		Version:     "v1",
		Description: "Extraction run payload for generic list runs with triples",
		Factory:     func() any { return &ListRunPayload{} },
	})
	if err != nil {
		panic("failed to register ListRunPayload: " + err.Error())
	}
}

// ListRunType is the message type for extraction run payloads.
var ListRunType = message.Type{Domain: "protrait", Category: "listrun", Version: "v1"}

// ListRunPayload implements message.Payload and graph.Graphable for
// extraction run entities.
type ListRunPayload struct {
	EntityID_  string           `json:"id"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (p *ListRunPayload) EntityID() string          { return p.EntityID_ }
func (p *ListRunPayload) Triples() []message.Triple { return p.TripleData }
func (p *ListRunPayload) Schema() message.Type      { return ListRunType }

func (p *ListRunPayload) Validate() error {
	if p.EntityID_ == "" {
		return errors.New("entity ID is required")
	}
	return nil
}

func (p *ListRunPayload) MarshalJSON() ([]byte, error) {
	type Alias ListRunPayload
	return json.Marshal((*Alias)(p))
}

func (p *ListRunPayload) UnmarshalJSON(data []byte) error {
	type Alias ListRunPayload
	return json.Unmarshal(data, (*Alias)(p))
}
