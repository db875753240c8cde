package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexID_AcceptsNumberAndString(t *testing.T) {
	var req SendMessageRequest
	require.NoError(t, json.Unmarshal([]byte(`{"chatId": 42, "senderId": "7", "message": "hi"}`), &req))
	assert.Equal(t, uint(42), req.TargetChat())
	assert.Equal(t, FlexID(7), req.SenderID)

	var alias SendMessageRequest
	require.NoError(t, json.Unmarshal([]byte(`{"sessionId": "9", "message": "hi"}`), &alias))
	assert.Equal(t, uint(9), alias.TargetChat())
}

func TestFlexID_RejectsGarbage(t *testing.T) {
	var req CreateChatRequest
	assert.Error(t, json.Unmarshal([]byte(`{"consultationId": "abc"}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"consultationId": -3}`), &req))
}

func TestParseFlexID(t *testing.T) {
	cases := map[string]struct {
		in   any
		want uint
		ok   bool
	}{
		"float":      {float64(42), 42, true},
		"string":     {" 42 ", 42, true},
		"object":     {map[string]any{"chatId": float64(5)}, 5, true},
		"session":    {map[string]any{"sessionId": "6"}, 6, true},
		"fractional": {1.5, 0, false},
		"negative":   {float64(-1), 0, false},
		"bool":       {true, 0, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseFlexID(tc.in)
			if !tc.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
