package server

import (
	"encoding/json"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayscout/stayscout/internal/types"
)

func TestDecodeArgs(t *testing.T) {
	direct := map[string]interface{}{"id": "12345"}
	assert.Equal(t, direct, decodeArgs(direct))

	raw := json.RawMessage(`{"location":"Lisbon","adults":2}`)
	got := decodeArgs(raw)
	assert.Equal(t, "Lisbon", got["location"])

	got = decodeArgs([]byte(`{"id":"7"}`))
	assert.Equal(t, "7", got["id"])

	assert.Empty(t, decodeArgs(json.RawMessage(`not json`)))
	assert.Empty(t, decodeArgs(nil))
	assert.Empty(t, decodeArgs(42))
}

func decodeEnvelope(t *testing.T, res *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	payload := map[string]interface{}{}
	require.NoError(t, sonic.UnmarshalString(text.Text, &payload))
	return payload
}

func TestEnvelopeSuccess(t *testing.T) {
	res := envelope(&types.Result{
		Success: true,
		Data:    map[string]interface{}{"count": 2, "listingId": "12345"},
	})

	assert.False(t, res.IsError)
	payload := decodeEnvelope(t, res)
	assert.Equal(t, "12345", payload["listingId"])
	assert.NotContains(t, payload, "error")
}

func TestEnvelopeFailure(t *testing.T) {
	msg := "no pricing found in page data"
	res := envelope(&types.Result{
		Success: false,
		Error:   &msg,
		Data:    map[string]interface{}{"errorType": "PARSE_ERROR"},
	})

	assert.True(t, res.IsError)
	payload := decodeEnvelope(t, res)
	assert.Equal(t, msg, payload["error"])
	assert.Equal(t, "PARSE_ERROR", payload["errorType"])
}

func TestInputSchema(t *testing.T) {
	schema := inputSchema(types.Tool{
		ID: "comparePrices",
		Parameters: []types.Parameter{
			{Name: "id", Type: "string", Description: "listing id", Required: true},
			{Name: "dateRanges", Type: "array", Description: "ranges", Required: true},
			{Name: "adults", Type: "number", Description: "adult guests"},
		},
	})

	assert.Equal(t, "object", schema["type"])
	assert.ElementsMatch(t, []string{"id", "dateRanges"}, schema["required"])

	props := schema["properties"].(map[string]interface{})
	ranges := props["dateRanges"].(map[string]interface{})
	assert.Equal(t, "array", ranges["type"])
	assert.Equal(t, map[string]interface{}{"type": "object"}, ranges["items"])

	adults := props["adults"].(map[string]interface{})
	assert.NotContains(t, adults, "items")
}

func TestInputSchemaNoRequired(t *testing.T) {
	schema := inputSchema(types.Tool{
		ID:         "ping",
		Parameters: []types.Parameter{{Name: "verbose", Type: "boolean"}},
	})
	assert.NotContains(t, schema, "required")
}
