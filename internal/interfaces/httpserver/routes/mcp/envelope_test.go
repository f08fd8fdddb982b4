package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelopesSingle(t *testing.T) {
	envelopes, batch, err := DecodeEnvelopes([]byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	require.NoError(t, err)
	assert.False(t, batch)
	require.Len(t, envelopes, 1)
	assert.Equal(t, "tools/list", envelopes[0].Method)
	assert.Equal(t, "1", string(envelopes[0].ID))
}

func TestDecodeEnvelopesBatch(t *testing.T) {
	body := `[
		{"jsonrpc":"2.0","id":"a","method":"initialize"},
		{"jsonrpc":"2.0","method":"notifications/initialized"}
	]`
	envelopes, batch, err := DecodeEnvelopes([]byte("  \n" + body))
	require.NoError(t, err)
	assert.True(t, batch)
	require.Len(t, envelopes, 2)
	assert.Equal(t, `"a"`, string(envelopes[0].ID))
	assert.Nil(t, envelopes[1].ID)
}

func TestDecodeEnvelopesMalformed(t *testing.T) {
	_, _, err := DecodeEnvelopes([]byte(`{"jsonrpc":`))
	require.Error(t, err)

	_, batch, err := DecodeEnvelopes([]byte(`[{"jsonrpc":`))
	require.Error(t, err)
	assert.True(t, batch)
}

func TestResponseEchoesIDVerbatim(t *testing.T) {
	tests := []struct {
		name string
		id   json.RawMessage
		want string
	}{
		{"integer id", json.RawMessage("42"), `"id":42`},
		{"string id", json.RawMessage(`"req-1"`), `"id":"req-1"`},
		{"explicit null id", json.RawMessage("null"), `"id":null`},
		{"absent id", nil, `"id":null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := json.Marshal(resultResponse(tt.id, "ok"))
			require.NoError(t, err)
			assert.Contains(t, string(encoded), tt.want)
		})
	}
}

func TestErrorResponseShape(t *testing.T) {
	encoded, err := json.Marshal(errorResponse(nil, codeInternalError, "Internal error", "boom"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Nil(t, decoded["id"])
	assert.NotContains(t, decoded, "result")

	errObj, ok := decoded["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(-32603), errObj["code"])
	assert.Equal(t, "Internal error", errObj["message"])
	assert.Equal(t, "boom", errObj["data"])
}
