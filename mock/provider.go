// Package mock provides test doubles for concierge interfaces using function fields.
package mock

import (
	"context"

	"github.com/tablewise/concierge"
)

// Interface compliance check.
var _ concierge.Provider = (*Provider)(nil)

// Provider is a test double for concierge.Provider.
// Set CompleteFn before calling Complete.
type Provider struct {
	CompleteFn func(ctx context.Context, req concierge.Request) (string, error)
}

// Complete delegates to CompleteFn.
func (p *Provider) Complete(ctx context.Context, req concierge.Request) (string, error) {
	return p.CompleteFn(ctx, req)
}
