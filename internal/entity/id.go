package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID - identifier issued by the game server. The server emits user ids as strings
// and game ids as numbers, both are kept as their textual form.
type ID string

func (that *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*that = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}

		*that = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}

	*that = ID(n.String())

	return nil
}

func (that ID) String() string {
	return string(that)
}

func (that ID) IsZero() bool {
	return that == ""
}
