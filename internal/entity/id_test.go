package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected ID
	}{
		{name: "string", payload: `"abc"`, expected: "abc"},
		{name: "integer", payload: `17`, expected: "17"},
		{name: "null", payload: `null`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &id))
			assert.Equal(t, tt.expected, id)
		})
	}

	t.Run("rejects objects", func(t *testing.T) {
		var id ID
		assert.Error(t, json.Unmarshal([]byte(`{"id":1}`), &id))
	})
}
