package mock

import (
	"context"

	"github.com/tablewise/concierge"
)

// Interface compliance check.
var _ concierge.Tool = (*Tool)(nil)

// Tool is a test double for concierge.Tool.
// Set the function fields for the methods you need.
type Tool struct {
	SignatureFn func() concierge.Signature
	InvokeFn    func(ctx context.Context, args map[string]any) (*concierge.Result, error)
}

// Signature delegates to SignatureFn.
func (t *Tool) Signature() concierge.Signature {
	return t.SignatureFn()
}

// Invoke delegates to InvokeFn.
func (t *Tool) Invoke(ctx context.Context, args map[string]any) (*concierge.Result, error) {
	return t.InvokeFn(ctx, args)
}
