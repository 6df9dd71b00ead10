package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies users and documents. The API sends integers, older
// payloads and query parameters carry strings; both decode to the same ID.
type ID string

func (id ID) String() string { return string(id) }

// IsNumeric reports whether the id is a base-10 integer in canonical form,
// so "7" is numeric and "007" or "+7" are not.
func (id ID) IsNumeric() bool {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

// MarshalJSON writes canonical integer ids as JSON numbers, everything else
// as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsNumeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}
