// Package agent orchestrates the tool-calling loop: it prompts a completion
// provider for tool calls, validates and dispatches them against a registry,
// and feeds the observations back for a grounded final answer.
//
// The agent keeps two chat histories. The tool history carries the tool
// system prompt and is used only to elicit tool calls; the agent history
// never sees that prompt and is used to produce user-facing answers from the
// serialized observations.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/tablewise/concierge"
)

// DefaultModel is used when no model option is supplied.
const DefaultModel = "llama-3.3-70b-versatile"

const noResultsReminder = "IMPORTANT: No restaurants found matching these criteria. Do NOT make up restaurant information. Only suggest options based on available data in fallback_suggestions if present."

// Agent drives multi-turn conversations. It is not safe for concurrent use;
// callers own the turn sequencing.
type Agent struct {
	provider  concierge.Provider
	registry  *concierge.Registry
	model     string
	logger    *slog.Logger
	sessionID string

	toolHistory  []concierge.Message
	agentHistory []concierge.Message
	callID       int
}

// Option configures an Agent.
type Option func(*Agent)

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(a *Agent) { a.model = model }
}

// WithLogger attaches a structured logger. Logs are discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

// New builds an agent over the given provider and tool registry.
func New(provider concierge.Provider, registry *concierge.Registry, opts ...Option) *Agent {
	a := &Agent{
		provider:  provider,
		registry:  registry,
		model:     DefaultModel,
		logger:    slog.New(slog.DiscardHandler),
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("session_id", a.sessionID)
	a.toolHistory = []concierge.Message{concierge.System(SystemPrompt(registry))}
	return a
}

// SessionID identifies this conversation in logs.
func (a *Agent) SessionID() string { return a.sessionID }

// Run processes one user turn. The provider is asked for tool calls first;
// any calls found are dispatched and their observations are appended to the
// agent history before the final completion. At most one tool round happens
// per turn.
func (a *Agent) Run(ctx context.Context, userMsg string) (string, error) {
	a.callID = 0

	user := concierge.User(userMsg)
	a.toolHistory = append(a.toolHistory, user)
	a.agentHistory = append(a.agentHistory, user)

	toolResp, err := a.provider.Complete(ctx, concierge.Request{
		Model:    a.model,
		Messages: a.toolHistory,
	})
	if err != nil {
		return "", fmt.Errorf("tool completion: %w", err)
	}
	a.toolHistory = append(a.toolHistory, concierge.Assistant(toolResp))

	if calls := ExtractCalls(toolResp); calls.Found {
		observations := a.dispatch(ctx, calls.Content)
		injectReminder(observations)

		formatted, err := json.MarshalIndent(observations, "", "  ")
		if err != nil {
			a.logger.Error("serializing observations", "error", err)
			a.agentHistory = append(a.agentHistory,
				concierge.User(fmt.Sprintf("Error: Unable to process that request. %v", err)))
		} else {
			a.agentHistory = append(a.agentHistory,
				concierge.User("Observation: "+string(formatted)))
		}
	}

	response, err := a.provider.Complete(ctx, concierge.Request{
		Model:    a.model,
		Messages: a.agentHistory,
	})
	if err != nil {
		return "", fmt.Errorf("agent completion: %w", err)
	}
	a.agentHistory = append(a.agentHistory, concierge.Assistant(response))
	return response, nil
}

// dispatch parses, validates, and invokes each raw call block, keying every
// observation by the call's own id so one failing call cannot mask another.
func (a *Agent) dispatch(ctx context.Context, rawCalls []string) map[string]any {
	observations := make(map[string]any, len(rawCalls))
	for _, raw := range rawCalls {
		id := a.callID
		a.callID++
		key := strconv.Itoa(id)

		call, err := ParseCall(raw)
		if err != nil {
			a.logger.Warn("malformed tool call", "call_id", id, "error", err)
			observations[key] = fmt.Sprintf("Error: %v", err)
			continue
		}

		tool, err := a.registry.Lookup(call.Name)
		if err != nil {
			a.logger.Warn("unknown tool", "call_id", id, "tool", call.Name)
			observations[key] = fmt.Sprintf("Tool '%s' not found", call.Name)
			continue
		}

		call, err = validateCall(call, tool.Signature(), id)
		if err != nil {
			a.logger.Warn("invalid tool call", "call_id", id, "tool", call.Name, "error", err)
			observations[key] = fmt.Sprintf("Error: %v", err)
			continue
		}

		a.logger.Info("invoking tool", "call_id", id, "tool", call.Name)
		result, err := safeInvoke(ctx, tool, call.Arguments)
		if err != nil {
			a.logger.Error("tool invocation failed", "call_id", id, "tool", call.Name, "error", err)
			observations[key] = fmt.Sprintf("Error: %v", err)
			continue
		}
		observations[key] = result
	}
	return observations
}

// safeInvoke contains a panicking tool so one bad call degrades to an error
// observation instead of taking down the turn.
func safeInvoke(ctx context.Context, tool concierge.Tool, args map[string]any) (result *concierge.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return tool.Invoke(ctx, args)
}

// injectReminder adds a single grounding reminder when any tool reported
// no_results with an empty data payload. Ids are scanned in ascending order
// so the trigger is deterministic.
func injectReminder(observations map[string]any) {
	ids := make([]int, 0, len(observations))
	for key := range observations {
		if id, err := strconv.Atoi(key); err == nil {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		result, ok := observations[strconv.Itoa(id)].(*concierge.Result)
		if !ok {
			continue
		}
		if result.Status == concierge.StatusNoResults && emptyData(result.Data) {
			observations["reminder"] = map[string]string{"message": noResultsReminder}
			return
		}
	}
}

func emptyData(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

