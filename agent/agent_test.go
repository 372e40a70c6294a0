package agent_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablewise/concierge"
	"github.com/tablewise/concierge/agent"
	"github.com/tablewise/concierge/mock"
)

// script builds a provider that serves canned responses in order and records
// every request it receives.
func script(t *testing.T, requests *[]concierge.Request, responses ...string) *mock.Provider {
	t.Helper()
	i := 0
	return &mock.Provider{
		CompleteFn: func(_ context.Context, req concierge.Request) (string, error) {
			*requests = append(*requests, req)
			require.Less(t, i, len(responses), "provider called more times than scripted")
			resp := responses[i]
			i++
			return resp, nil
		},
	}
}

func searchTool(invoked *[]map[string]any, result *concierge.Result) *mock.Tool {
	return &mock.Tool{
		SignatureFn: func() concierge.Signature {
			return concierge.Signature{
				Name:        "search_restaurants",
				Description: "Search for restaurants by city.",
				Params: []concierge.Param{
					{Name: "city", Type: concierge.TypeString, Required: true},
					{Name: "limit", Type: concierge.TypeInt},
				},
			}
		},
		InvokeFn: func(_ context.Context, args map[string]any) (*concierge.Result, error) {
			if invoked != nil {
				*invoked = append(*invoked, args)
			}
			return result, nil
		},
	}
}

// observation decodes the trailing "Observation: ..." user message of a
// recorded request.
func observation(t *testing.T, req concierge.Request) map[string]any {
	t.Helper()
	last := req.Messages[len(req.Messages)-1]
	require.Equal(t, concierge.RoleUser, last.Role)
	require.True(t, strings.HasPrefix(last.Content, "Observation: "), "content: %q", last.Content)
	var obs map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(last.Content, "Observation: ")), &obs))
	return obs
}

func callBlock(name string, args string, id int) string {
	return fmt.Sprintf(`<tool_call>{"name":%q,"arguments":%s,"id":%d}</tool_call>`, name, args, id)
}

func TestAgent_Run_DispatchesCalls(t *testing.T) {
	t.Parallel()

	var invoked []map[string]any
	tool := searchTool(&invoked, &concierge.Result{
		Status: concierge.StatusSuccess,
		Data:   []string{"Trattoria"},
	})
	registry, err := concierge.NewRegistry(tool)
	require.NoError(t, err)

	var requests []concierge.Request
	provider := script(t, &requests,
		callBlock("search_restaurants", `{"city":"chicago","limit":"5","bogus":true}`, 99),
		"Here are your options.",
	)

	a := agent.New(provider, registry)
	answer, err := a.Run(context.Background(), "italian in chicago?")
	require.NoError(t, err)
	assert.Equal(t, "Here are your options.", answer)

	// Undeclared arguments are dropped and numeric strings coerced.
	require.Len(t, invoked, 1)
	assert.Equal(t, map[string]any{"city": "chicago", "limit": 5}, invoked[0])

	require.Len(t, requests, 2)

	// The tool prompt goes only to the first completion.
	require.NotEmpty(t, requests[0].Messages)
	assert.Equal(t, concierge.RoleSystem, requests[0].Messages[0].Role)
	assert.Contains(t, requests[0].Messages[0].Content, "<tools>")
	for _, m := range requests[1].Messages {
		assert.NotEqual(t, concierge.RoleSystem, m.Role)
	}

	obs := observation(t, requests[1])
	require.Contains(t, obs, "0")
	result := obs["0"].(map[string]any)
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, []any{"Trattoria"}, result["data"])
}

func TestAgent_Run_CallIDsResetPerTurn(t *testing.T) {
	t.Parallel()

	tool := searchTool(nil, &concierge.Result{Status: concierge.StatusSuccess, Data: []string{"x"}})
	registry, err := concierge.NewRegistry(tool)
	require.NoError(t, err)

	twoCalls := callBlock("search_restaurants", `{"city":"chicago"}`, 7) +
		callBlock("search_restaurants", `{"city":"boston"}`, 7)
	oneCall := callBlock("search_restaurants", `{"city":"austin"}`, 3)

	var requests []concierge.Request
	provider := script(t, &requests, twoCalls, "first answer", oneCall, "second answer")

	a := agent.New(provider, registry)
	_, err = a.Run(context.Background(), "turn one")
	require.NoError(t, err)
	_, err = a.Run(context.Background(), "turn two")
	require.NoError(t, err)

	require.Len(t, requests, 4)

	// Advisory ids from the model are overwritten with 0..n-1 each turn.
	first := observation(t, requests[1])
	assert.Contains(t, first, "0")
	assert.Contains(t, first, "1")

	second := observation(t, requests[3])
	assert.Contains(t, second, "0")
	assert.NotContains(t, second, "1")
}

func TestAgent_Run_ErrorIsolation(t *testing.T) {
	t.Parallel()

	tool := searchTool(nil, &concierge.Result{Status: concierge.StatusSuccess, Data: []string{"x"}})
	registry, err := concierge.NewRegistry(tool)
	require.NoError(t, err)

	response := callBlock("teleport", `{}`, 0) +
		`<tool_call>not json at all</tool_call>` +
		callBlock("search_restaurants", `{"city":"chicago"}`, 2)

	var requests []concierge.Request
	provider := script(t, &requests, response, "done")

	a := agent.New(provider, registry)
	_, err = a.Run(context.Background(), "hi")
	require.NoError(t, err)

	obs := observation(t, requests[1])
	assert.Equal(t, "Tool 'teleport' not found", obs["0"])
	require.IsType(t, "", obs["1"])
	assert.True(t, strings.HasPrefix(obs["1"].(string), "Error: "))

	// The failing calls do not mask the good one.
	result, ok := obs["2"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "success", result["status"])
}

func TestAgent_Run_ToolPanicIsContained(t *testing.T) {
	t.Parallel()

	tool := searchTool(nil, nil)
	tool.InvokeFn = func(_ context.Context, _ map[string]any) (*concierge.Result, error) {
		panic("boom")
	}
	registry, err := concierge.NewRegistry(tool)
	require.NoError(t, err)

	var requests []concierge.Request
	provider := script(t, &requests,
		callBlock("search_restaurants", `{"city":"chicago"}`, 0),
		"done")

	a := agent.New(provider, registry)
	answer, err := a.Run(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "done", answer)

	obs := observation(t, requests[1])
	require.IsType(t, "", obs["0"])
	assert.Contains(t, obs["0"].(string), "tool panicked")
}

func TestAgent_Run_MissingRequiredArgument(t *testing.T) {
	t.Parallel()

	var invoked []map[string]any
	tool := searchTool(&invoked, &concierge.Result{Status: concierge.StatusSuccess})
	registry, err := concierge.NewRegistry(tool)
	require.NoError(t, err)

	var requests []concierge.Request
	provider := script(t, &requests,
		callBlock("search_restaurants", `{"limit":2}`, 0),
		"done")

	a := agent.New(provider, registry)
	_, err = a.Run(context.Background(), "hi")
	require.NoError(t, err)

	assert.Empty(t, invoked, "tool must not run without its required argument")
	obs := observation(t, requests[1])
	require.IsType(t, "", obs["0"])
	assert.Contains(t, obs["0"].(string), "city")
}

func TestAgent_Run_ReminderOnEmptyNoResults(t *testing.T) {
	t.Parallel()

	tool := searchTool(nil, &concierge.Result{
		Status: concierge.StatusNoResults,
		Data:   []string{},
		Meta:   map[string]any{"fallback_level": "city_only"},
	})
	registry, err := concierge.NewRegistry(tool)
	require.NoError(t, err)

	var requests []concierge.Request
	provider := script(t, &requests,
		callBlock("search_restaurants", `{"city":"nowhere"}`, 0),
		"done")

	a := agent.New(provider, registry)
	_, err = a.Run(context.Background(), "anything in nowhere?")
	require.NoError(t, err)

	obs := observation(t, requests[1])
	reminder, ok := obs["reminder"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, reminder["message"], "Do NOT make up restaurant information")
}

func TestAgent_Run_NoReminderOnSuccess(t *testing.T) {
	t.Parallel()

	tool := searchTool(nil, &concierge.Result{Status: concierge.StatusSuccess, Data: []string{"x"}})
	registry, err := concierge.NewRegistry(tool)
	require.NoError(t, err)

	var requests []concierge.Request
	provider := script(t, &requests,
		callBlock("search_restaurants", `{"city":"chicago"}`, 0),
		"done")

	a := agent.New(provider, registry)
	_, err = a.Run(context.Background(), "hi")
	require.NoError(t, err)

	obs := observation(t, requests[1])
	assert.NotContains(t, obs, "reminder")
}

func TestAgent_Run_NoCalls(t *testing.T) {
	t.Parallel()

	registry, err := concierge.NewRegistry()
	require.NoError(t, err)

	var requests []concierge.Request
	provider := script(t, &requests, "Which city are you in?", "Which city are you in?")

	a := agent.New(provider, registry)
	answer, err := a.Run(context.Background(), "book me a table")
	require.NoError(t, err)
	assert.Equal(t, "Which city are you in?", answer)

	// Without calls the agent history carries only the user turn.
	require.Len(t, requests, 2)
	require.Len(t, requests[1].Messages, 1)
	assert.Equal(t, concierge.RoleUser, requests[1].Messages[0].Role)
	assert.Equal(t, "book me a table", requests[1].Messages[0].Content)
}

func TestAgent_Run_ProviderError(t *testing.T) {
	t.Parallel()

	registry, err := concierge.NewRegistry()
	require.NoError(t, err)

	provider := &mock.Provider{
		CompleteFn: func(_ context.Context, _ concierge.Request) (string, error) {
			return "", errors.New("connection refused")
		},
	}

	a := agent.New(provider, registry)
	_, err = a.Run(context.Background(), "hi")
	assert.ErrorContains(t, err, "connection refused")
}

func TestSystemPrompt(t *testing.T) {
	t.Parallel()

	tool := searchTool(nil, nil)
	registry, err := concierge.NewRegistry(tool)
	require.NoError(t, err)

	prompt := agent.SystemPrompt(registry)
	assert.Contains(t, prompt, "<tools>")
	assert.Contains(t, prompt, `"search_restaurants"`)
	assert.Contains(t, prompt, "<tool_call>")
}
