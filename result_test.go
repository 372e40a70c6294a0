package concierge_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablewise/concierge"
)

func TestResult_MarshalFlattensMeta(t *testing.T) {
	t.Parallel()

	res := &concierge.Result{
		Status:  concierge.StatusSuccess,
		Message: "ok",
		Data:    []string{"a", "b"},
		Meta: map[string]any{
			"count":        2,
			"query_params": map[string]any{"city": "new york"},
		},
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "ok", out["message"])
	assert.Equal(t, float64(2), out["count"])
	assert.Contains(t, out, "query_params")
	assert.Contains(t, out, "data")
}

func TestResult_MarshalNilDataOnFailure(t *testing.T) {
	t.Parallel()

	res := &concierge.Result{Status: concierge.StatusNotFound, Message: "Restaurant not found"}

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	v, present := out["data"]
	assert.True(t, present, "data key must always be present")
	assert.Nil(t, v)
}

func TestErrorf(t *testing.T) {
	t.Parallel()

	res := concierge.Errorf("Invalid group size: %v. Must be a number.", "many")
	assert.Equal(t, concierge.StatusError, res.Status)
	assert.Equal(t, "Invalid group size: many. Must be a number.", res.Message)
	assert.Nil(t, res.Data)
}
