package util

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleSchema struct {
	A string `json:"a" description:"Field A"`
	B *int   `json:"b" description:"Optional pointer field"`
	C int    `json:"c,omitempty" description:"Omit empty field"`
}

func TestCreateSchema(t *testing.T) {
	schema := CreateSchema(sampleSchema{})

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "a")
	assert.Contains(t, props, "b")
	assert.Contains(t, props, "c")

	aProp, _ := props["a"].(map[string]any)
	assert.Equal(t, "string", aProp["type"])
	assert.Equal(t, "Field A", aProp["description"])

	// required only includes non-pointer, non-omitempty exported fields
	req, _ := schema["required"].([]string)
	assert.ElementsMatch(t, []string{"a"}, req)
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"order_id": map[string]any{"type": "string"},
		},
		"required": []string{"order_id"},
	}

	assert.NoError(t, ValidateParameters(map[string]any{"order_id": "12345"}, schema))

	err := ValidateParameters(map[string]any{}, schema)
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "order_id", vErr.Field)

	err = ValidateParameters(map[string]any{"order_id": 42}, schema)
	require.Error(t, err)
	vErr, ok = err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Message, "expected type string")
}

func TestValidateParameters_JSONRoundTrippedSchema(t *testing.T) {
	// schemas decoded from JSON carry []any for required
	raw := `{"type":"object","properties":{"x":{"type":"integer"}},"required":["x"]}`
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &schema))

	assert.NoError(t, ValidateParameters(map[string]any{"x": float64(5)}, schema))

	err := ValidateParameters(map[string]any{}, schema)
	require.Error(t, err)

	err = ValidateParameters(map[string]any{"x": 1.5}, schema)
	require.Error(t, err)
}

func TestValidateParameters_ExtraFieldsAllowed(t *testing.T) {
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{"a": map[string]any{"type": "string"}},
	}
	assert.NoError(t, ValidateParameters(map[string]any{"a": "x", "unknown": 1}, schema))
}
