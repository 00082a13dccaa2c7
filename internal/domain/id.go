package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque server-issued identifier. Backends emit either JSON strings
// (uuids) or numbers; both decode to their textual form.
type ID string

// UnmarshalJSON accepts a string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the textual form of the id.
func (id ID) String() string { return string(id) }

// Empty reports whether no id was issued.
func (id ID) Empty() bool { return id == "" }
