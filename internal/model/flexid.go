package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexID is an identifier that the learning store may serialize either as a
// JSON string or as a JSON number. Both forms decode to the same canonical
// string so foreign keys compare reliably.
type FlexID string

func (f FlexID) String() string {
	return string(f)
}

// UnmarshalJSON accepts "42", 42 and null.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid identifier %q: %w", string(data), err)
	}
	*f = FlexID(n.String())
	return nil
}
