package concierge

import (
	"encoding/json"
	"fmt"
)

// Status is the closed set of tool result discriminators. Each tool family
// uses a small subset; the engine only ever branches on StatusNoResults.
type Status string

const (
	StatusSuccess              Status = "success"
	StatusError                Status = "error"
	StatusNotFound             Status = "not_found"
	StatusNoResults            Status = "no_results"
	StatusInsufficientInfo     Status = "insufficient_info"
	StatusIncomplete           Status = "incomplete"
	StatusUnavailableTime      Status = "unavailable_time"
	StatusInsufficientCapacity Status = "insufficient_capacity"
	StatusMissingFields        Status = "missing_fields"
	StatusComplete             Status = "complete"
)

// Result is the discriminated outcome of a tool invocation. Data is nil
// exactly when the status denotes failure or absence. Meta carries
// tool-specific payload (query params, fallback suggestions, available times)
// that the engine passes through opaquely.
type Result struct {
	Status  Status
	Message string
	Data    any
	Meta    map[string]any
}

// MarshalJSON flattens Meta alongside status, message and data so the model
// sees a single flat observation object per call.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Meta)+3)
	for k, v := range r.Meta {
		out[k] = v
	}
	out["status"] = r.Status
	if r.Message != "" {
		out["message"] = r.Message
	}
	out["data"] = r.Data
	return json.Marshal(out)
}

// Errorf builds a StatusError result with a formatted message and no data.
func Errorf(format string, args ...any) *Result {
	return &Result{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}
