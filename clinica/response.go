package clinica

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrMalformedResponse is returned when a response carries neither a
// result nor an error element.
var ErrMalformedResponse = errors.New("malformed libreclinica response")

// Result is the outcome scanned out of one SOAP response.
type Result struct {
	Success    bool
	Message    string
	SubjectOID string
}

// ParseResult scans a SOAP response for the result, error and subject OID
// elements. The scan is lenient on purpose: the service prefixes element
// names inconsistently across versions and emits envelopes that strict
// XML parsing rejects, so we tokenize and match on local-name suffixes.
func ParseResult(data []byte) (Result, error) {
	var (
		res         Result
		resultText  string
		errorTexts  []string
		foundResult bool
	)

	tokenizer := html.NewTokenizer(bytes.NewReader(data))
	current := ""
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if !foundResult && len(errorTexts) == 0 {
				return Result{}, fmt.Errorf("%w: no result or error element", ErrMalformedResponse)
			}
			res.Success = foundResult && strings.Contains(resultText, "Success")
			if res.Success {
				res.Message = resultText
			} else if len(errorTexts) > 0 {
				res.Message = strings.Join(errorTexts, "; ")
			} else {
				res.Message = resultText
			}
			return res, nil

		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			current = localName(string(name))

		case html.TextToken:
			text := strings.TrimSpace(string(tokenizer.Text()))
			if text == "" {
				continue
			}
			switch {
			case current == "result":
				resultText = text
				foundResult = true
			case current == "error":
				errorTexts = append(errorTexts, text)
			case strings.HasSuffix(current, "subjectoid"):
				res.SubjectOID = text
			}

		case html.EndTagToken:
			current = ""
		}
	}
}

// localName strips any namespace prefix and lowercases the element name.
func localName(name string) string {
	if idx := strings.LastIndex(name, ":"); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.ToLower(name)
}
