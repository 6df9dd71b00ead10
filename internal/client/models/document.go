package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Document is the display projection of a stored document.
type Document struct {
	ID         ID        `json:"id"`
	Title      string    `json:"title"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	UploadedAt Timestamp `json:"uploaded_at"`
	Summary    string    `json:"summary,omitempty"`
	Keywords   Keywords  `json:"keywords"`
}

// UnmarshalJSON accepts created_at as a stand-in for uploaded_at; the API
// serves the former, older clients expect the latter.
func (d *Document) UnmarshalJSON(b []byte) error {
	type plain Document
	aux := struct {
		*plain
		CreatedAt Timestamp `json:"created_at"`
	}{plain: (*plain)(d)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if d.UploadedAt.IsZero() {
		d.UploadedAt = aux.CreatedAt
	}
	if d.Keywords == nil {
		d.Keywords = Keywords{}
	}
	return nil
}

// Keywords is the normalized keyword list of a document. The API sends it
// either as one comma-delimited string or as a JSON array; see
// NormalizeKeywords.
type Keywords []string

// NormalizeKeywords turns a comma-delimited string into its trimmed,
// non-empty items, preserving order. "" and whitespace-only input give an
// empty, non-nil list.
func NormalizeKeywords(s string) Keywords {
	out := Keywords{}
	if strings.TrimSpace(s) == "" {
		return out
	}
	for _, part := range strings.Split(s, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// UnmarshalJSON accepts a string, an array of strings or null. Arrays are
// kept as sent.
func (k *Keywords) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case bytes.Equal(b, []byte("null")):
		*k = Keywords{}
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*k = NormalizeKeywords(s)
		return nil
	case len(b) > 0 && b[0] == '[':
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		if list == nil {
			list = []string{}
		}
		*k = list
		return nil
	default:
		return fmt.Errorf("keywords must be a string or an array, got %s", b)
	}
}

// FilterDocuments keeps the documents whose title or filename contains term,
// ignoring case. An empty term keeps everything.
func FilterDocuments(docs []Document, term string) []Document {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if needle == "" ||
			strings.Contains(strings.ToLower(d.Title), needle) ||
			strings.Contains(strings.ToLower(d.Filename), needle) {
			out = append(out, d)
		}
	}
	return out
}
