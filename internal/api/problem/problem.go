package problem

import (
	"encoding/json"
	"net/http"
)

const contentType = "application/problem+json"
const baseTypeURL = "https://errors.vendor-payouts.dev/"

// Details represents RFC 7807 Problem Details. The trailing fields are
// extension members and only appear when set.
type Details struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail"`
	Instance  string `json:"instance"`
	RequestID string `json:"request_id"`

	Kind           string            `json:"kind,omitempty"`
	Entity         string            `json:"entity,omitempty"`
	RequiredStatus string            `json:"required_status,omitempty"`
	CurrentStatus  string            `json:"current_status,omitempty"`
	Fields         map[string]string `json:"fields,omitempty"`
}

// Option sets extension members on a problem.
type Option func(*Details)

func WithKind(kind string) Option {
	return func(d *Details) { d.Kind = kind }
}

func WithEntity(entity string) Option {
	return func(d *Details) { d.Entity = entity }
}

func WithTransition(required, current string) Option {
	return func(d *Details) {
		d.RequiredStatus = required
		d.CurrentStatus = current
	}
}

func WithFields(fields map[string]string) Option {
	return func(d *Details) { d.Fields = fields }
}

func Type(slug string) string {
	return baseTypeURL + slug
}

// Write sends RFC 7807-compliant errors.
func Write(w http.ResponseWriter, r *http.Request, status int, problemType, title, detail string, opts ...Option) {
	if title == "" {
		title = http.StatusText(status)
	}
	if problemType == "" {
		problemType = "about:blank"
	}
	instance := ""
	requestID := ""
	if r != nil {
		instance = r.URL.Path
		requestID = r.Header.Get("X-Trace-ID")
	}
	if requestID == "" {
		requestID = w.Header().Get("X-Trace-ID")
	}

	details := Details{
		Type:      problemType,
		Title:     title,
		Status:    status,
		Detail:    detail,
		Instance:  instance,
		RequestID: requestID,
	}
	for _, opt := range opts {
		opt(&details)
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(details)
}
