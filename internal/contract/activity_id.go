package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ActivityID is an activity identifier that may arrive as a JSON string or a
// JSON number. It is re-encoded in the same form it was received.
type ActivityID struct {
	text    string
	numeric bool
}

// StringID builds a string identifier.
func StringID(s string) ActivityID {
	return ActivityID{text: s}
}

// NumericID builds a numeric identifier.
func NumericID(n int64) ActivityID {
	return ActivityID{text: strconv.FormatInt(n, 10), numeric: true}
}

// String returns the identifier text.
func (id ActivityID) String() string {
	return id.text
}

// IsZero reports whether the identifier is missing.
func (id ActivityID) IsZero() bool {
	return id.text == ""
}

// MarshalJSON implements json.Marshaler.
func (id ActivityID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.text), nil
	}
	return json.Marshal(id.text)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ActivityID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ActivityID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ActivityID{text: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("contract: activity id must be a string or a number: %w", err)
	}
	*id = ActivityID{text: n.String(), numeric: true}
	return nil
}
