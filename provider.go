// Package concierge defines the domain types for a tool-calling restaurant
// concierge: role-tagged conversation messages, tool signatures and results,
// the tool registry, and the completion provider contract. Orchestration lives
// in the agent package; providers and the restaurant tools are subpackages.
package concierge

import "context"

// Provider is a strategy interface for completion backends. Complete sends the
// ordered transcript synchronously and returns the model's text. The engine
// treats it as an opaque collaborator.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}
