// Package clinica implements the LibreClinica SOAP collaborator: study
// subject lookup and creation, event scheduling, and ODM data import for
// extracted generic list rows.
package clinica

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ProTraitInfra/libre-clinica-upload/metrics"
)

// ErrFault is returned when the service answers with a Fail result.
var ErrFault = errors.New("libreclinica fault")

// ErrSubjectNotFound is returned when a study subject label is unknown.
var ErrSubjectNotFound = errors.New("study subject not found")

// Service paths relative to the endpoint base.
const (
	subjectService = "studySubject/v1/studySubjectWsdl.wsdl"
	eventService   = "event/v1/eventWsdl.wsdl"
	dataService    = "data/v1/dataWsdl.wsdl"
)

// DefaultTimeout bounds one SOAP round trip.
const DefaultTimeout = 60 * time.Second

// WSSE namespace and token type constants (OpenClinica lineage).
const (
	nsSoapEnv      = "http://schemas.xmlsoap.org/soap/envelope/"
	nsWsse         = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	nsWsu          = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"
	nsBeans        = "http://openclinica.org/ws/beans"
	passwordText   = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordText"
	wsseTokenID    = "UsernameToken-27777511"
	nsSubjectV1    = "http://openclinica.org/ws/studySubject/v1"
	nsEventV1      = "http://openclinica.org/ws/event/v1"
	nsDataV1       = "http://openclinica.org/ws/data/v1"
	nsODMExtension = "http://www.openclinica.org/ns/odm_ext_v130/v3.1"
)

// Client is a SOAP-over-HTTP client for one LibreClinica instance.
type Client struct {
	base           string
	username       string
	passwordDigest string
	client         *http.Client
	logger         *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithLogger sets the client's logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the endpoint base URL. The password is
// digested to SHA1 hex before it goes on the wire; LibreClinica matches
// the WSSE UsernameToken against the stored hash.
func NewClient(endpoint, username, password string, opts ...ClientOption) *Client {
	digest := sha1.Sum([]byte(password))

	c := &Client{
		base:           strings.TrimSuffix(endpoint, "/") + "/",
		username:       username,
		passwordDigest: hex.EncodeToString(digest[:]),
		client:         &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// SOAP envelope structs. The body carries pre-marshalled request XML so
// each service file owns its own payload shape.
type soapEnvelope struct {
	XMLName xml.Name `xml:"soapenv:Envelope"`
	NSSoap  string   `xml:"xmlns:soapenv,attr"`
	NSV1    string   `xml:"xmlns:v1,attr"`
	NSBeans string   `xml:"xmlns:bean,attr,omitempty"`
	NSODM   string   `xml:"xmlns:OpenClinica,attr,omitempty"`
	Header  soapHeader
	Body    soapBody
}

type soapHeader struct {
	XMLName  xml.Name `xml:"soapenv:Header"`
	Security wsseSecurity
}

type wsseSecurity struct {
	XMLName        xml.Name `xml:"wsse:Security"`
	MustUnderstand string   `xml:"soapenv:mustUnderstand,attr"`
	NSWsse         string   `xml:"xmlns:wsse,attr"`
	Token          wsseUsernameToken
}

type wsseUsernameToken struct {
	XMLName  xml.Name `xml:"wsse:UsernameToken"`
	ID       string   `xml:"wsu:Id,attr"`
	NSWsu    string   `xml:"xmlns:wsu,attr"`
	Username string   `xml:"wsse:Username"`
	Password wssePassword
}

type wssePassword struct {
	XMLName xml.Name `xml:"wsse:Password"`
	Type    string   `xml:"Type,attr"`
	Value   string   `xml:",chardata"`
}

type soapBody struct {
	XMLName xml.Name `xml:"soapenv:Body"`
	Inner   string   `xml:",innerxml"`
}

// envelope wraps a request body in the SOAP envelope with the WSSE header.
func (c *Client) envelope(serviceNS, body string, withODM bool) soapEnvelope {
	env := soapEnvelope{
		NSSoap:  nsSoapEnv,
		NSV1:    serviceNS,
		NSBeans: nsBeans,
		Header: soapHeader{
			Security: wsseSecurity{
				MustUnderstand: "1",
				NSWsse:         nsWsse,
				Token: wsseUsernameToken{
					ID:       wsseTokenID,
					NSWsu:    nsWsu,
					Username: c.username,
					Password: wssePassword{Type: passwordText, Value: c.passwordDigest},
				},
			},
		},
		Body: soapBody{Inner: body},
	}
	if withODM {
		env.NSBeans = ""
		env.NSODM = nsODMExtension
	}
	return env
}

// call posts one SOAP request and returns the raw response bytes. The
// service emits envelopes that are not always well-formed XML under error
// paths, so callers scan the bytes leniently instead of unmarshalling.
func (c *Client) call(ctx context.Context, service, serviceNS, body string, withODM bool) ([]byte, error) {
	payload, err := xml.Marshal(c.envelope(serviceNS, body, withODM))
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+service,
		bytes.NewReader(append([]byte(xml.Header), payload...)))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `""`)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", service, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", service, err)
	}

	metrics.RecordLCRequest(operationName(service), time.Since(start))
	c.logger.Debug("LibreClinica call answered",
		"service", service,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s answered %d", ErrFault, service, resp.StatusCode)
	}

	return data, nil
}

// operationName maps a service path to its metrics label.
func operationName(service string) string {
	if idx := strings.IndexByte(service, '/'); idx > 0 {
		return service[:idx]
	}
	return service
}
