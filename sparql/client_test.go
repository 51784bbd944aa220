package sparql

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResults = `{
  "head": {"vars": ["GEN_IDENTIFIER", "GEN_BIRTH_YEAR", "GEN_WEIGHT"]},
  "results": {"bindings": [
    {
      "GEN_IDENTIFIER": {"type": "literal", "value": "PT-001"},
      "GEN_BIRTH_YEAR": {"type": "typed-literal", "datatype": "http://www.w3.org/2001/XMLSchema#integer", "value": "1960"},
      "GEN_WEIGHT": {"type": "literal", "value": "72"}
    }
  ]}
}`

func TestClientSelect(t *testing.T) {
	var gotQuery, gotAccept, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostFormValue("query")
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")

		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(sampleResults))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	rs, err := c.Select(context.Background(), "SELECT DISTINCT ?s WHERE { ?s ?p ?o }")
	require.NoError(t, err)

	assert.Equal(t, "SELECT DISTINCT ?s WHERE { ?s ?p ?o }", gotQuery)
	assert.Equal(t, "application/sparql-results+json", gotAccept)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)

	assert.Equal(t, []string{"GEN_IDENTIFIER", "GEN_BIRTH_YEAR", "GEN_WEIGHT"}, rs.Columns())
	assert.Equal(t, 1, rs.Len())
}

func TestClientSelectBasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "fair" || pass != "station" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(sampleResults))
	}))
	defer server.Close()

	c := NewClient(server.URL, WithBasicAuth("fair", "station"))
	_, err := c.Select(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }")
	require.NoError(t, err)

	unauthenticated := NewClient(server.URL)
	_, err = unauthenticated.Select(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }")
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestClientSelectBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "malformed query", http.StatusBadRequest)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.Select(context.Background(), "not sparql")
	require.ErrorIs(t, err, ErrBadStatus)
	assert.Contains(t, err.Error(), "malformed query")
}

func TestClientSelectContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(server.URL)
	_, err := c.Select(ctx, "SELECT ?s WHERE { ?s ?p ?o }")
	assert.Error(t, err)
}
