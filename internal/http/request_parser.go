// Package http provides the JSON API server and its handlers.
//
// This file implements utilities for parsing request bodies and query
// strings into the input types validated by the core package.

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/glensd/personalExpenseTracker/internal/core"
)

const maxRequestBodyBytes = 1 << 20

var errBodyTooLarge = errors.New("request body too large")

// RequestBodyParser handles different content types for request body parsing.
// It accepts a JSON object or form-encoded data.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	if r.Body == nil {
		return p
	}

	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if p.err == nil && len(p.body) > maxRequestBodyBytes {
		p.err = errBodyTooLarge
	}
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	trimmed := bytes.TrimSpace(p.body)
	if len(trimmed) == 0 {
		p.formData = url.Values{}
		return nil
	}

	// Anything that looks like JSON must be a JSON object.
	if trimmed[0] == '{' || trimmed[0] == '[' || strings.HasPrefix(p.contentType, "application/json") {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&p.jsonData); err != nil {
			p.jsonData = nil
			p.err = err
			return err
		}
		if p.jsonData == nil {
			p.jsonData = make(map[string]any)
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(trimmed))
	return p.err
}

// Get returns a trimmed, sanitized value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	return sanitizeInput(p.raw(key))
}

// GetSecret returns a value untouched, for passwords.
func (p *RequestBodyParser) GetSecret(key string) string {
	return p.raw(key)
}

func (p *RequestBodyParser) raw(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return stringValue(val)
		}
		return ""
	}
	if p.formData != nil {
		return p.formData.Get(key)
	}
	return ""
}

// stringValue converts a decoded JSON scalar to string. Objects and arrays
// become "" and fail the field's validation.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// parseBody runs the parser and writes 400 for an unreadable body.
func parseBody(w http.ResponseWriter, r *http.Request) (*RequestBodyParser, bool) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError(msgInvalidPayload).Write(w)
		return nil, false
	}
	return p, true
}

func categoryInput(p *RequestBodyParser) core.CategoryInput {
	return core.CategoryInput{Name: p.Get("name")}
}

func expenseInput(p *RequestBodyParser) core.ExpenseInput {
	return core.ExpenseInput{
		CategoryID:  p.Get("category_id"),
		Amount:      p.Get("amount"),
		Description: p.Get("description"),
		ExpenseDate: p.Get("expense_date"),
	}
}

func summaryInput(p *RequestBodyParser) core.SummaryInput {
	return core.SummaryInput{
		StartDate: p.Get("start_date"),
		EndDate:   p.Get("end_date"),
	}
}

func loginInput(p *RequestBodyParser) core.LoginInput {
	return core.LoginInput{
		Email:    p.Get("email"),
		Password: p.GetSecret("password"),
	}
}

func registerInput(p *RequestBodyParser) core.RegisterInput {
	return core.RegisterInput{
		Name:     p.Get("name"),
		Email:    p.Get("email"),
		Password: p.GetSecret("password"),
	}
}

// expenseQuery reads the listing filters from the query string.
func expenseQuery(r *http.Request) core.ExpenseQuery {
	q := r.URL.Query()
	return core.ExpenseQuery{
		CategoryID: sanitizeInput(q.Get("category_id")),
		StartDate:  sanitizeInput(q.Get("start_date")),
		EndDate:    sanitizeInput(q.Get("end_date")),
	}
}

// pathID parses the {id} route parameter. Non-numeric ids cannot match a row.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// bearerToken extracts the token of an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
