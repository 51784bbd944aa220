package sparql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ProTraitInfra/libre-clinica-upload/metrics"
)

// ErrBadStatus is returned when the endpoint answers with a non-200 status.
var ErrBadStatus = errors.New("unexpected SPARQL endpoint status")

// DefaultTimeout bounds one query round trip.
const DefaultTimeout = 60 * time.Second

// Client posts SELECT queries to a SPARQL 1.1 endpoint.
type Client struct {
	endpoint string
	username string
	password string
	client   *http.Client
	logger   *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBasicAuth enables HTTP basic auth on every request.
func WithBasicAuth(username, password string) ClientOption {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithClientLogger sets the client's logger.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the given query endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Select posts the query and decodes the SPARQL 1.1 JSON result set.
func (c *Client) Select(ctx context.Context, query string) (*ResultSet, error) {
	body := url.Values{"query": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		strings.NewReader(body.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordSPARQLRequest(metrics.StatusError, time.Since(start))
		return nil, fmt.Errorf("post query: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("SPARQL query answered",
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		metrics.RecordSPARQLRequest(metrics.StatusError, time.Since(start))
		// Drain a bounded slice of the body for the error context.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %d %s: %s",
			ErrBadStatus, resp.StatusCode, http.StatusText(resp.StatusCode),
			strings.TrimSpace(string(detail)))
	}

	var rs ResultSet
	if err := json.NewDecoder(resp.Body).Decode(&rs); err != nil {
		metrics.RecordSPARQLRequest(metrics.StatusError, time.Since(start))
		return nil, fmt.Errorf("decode result set: %w", err)
	}

	metrics.RecordSPARQLRequest(metrics.StatusOK, time.Since(start))
	return &rs, nil
}
