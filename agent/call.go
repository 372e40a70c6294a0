package agent

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tablewise/concierge"
)

// ParsedCall is a tool call lifted out of a raw call block. After validation
// its ID is the authoritative per-turn sequence number and its Arguments hold
// only declared parameters.
type ParsedCall struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ParseCall parses one raw call block into a typed call. The id carried in
// the wire format is advisory only; validateCall overwrites it.
func ParseCall(raw string) (ParsedCall, error) {
	var call ParsedCall
	if err := json.Unmarshal([]byte(raw), &call); err != nil {
		return ParsedCall{}, fmt.Errorf("%w: %v", concierge.ErrMalformedCall, err)
	}
	if call.Name == "" {
		return ParsedCall{}, fmt.Errorf("%w: missing tool name", concierge.ErrMalformedCall)
	}
	if call.Arguments == nil {
		call.Arguments = map[string]any{}
	}
	return call, nil
}

// validateCall checks the call against its tool's signature: undeclared
// arguments are dropped, absent required parameters fail, and numeric-typed
// arguments arriving as strings are coerced. Coercion failures leave the
// original value untouched; tools validate usable values themselves. The
// authoritative id is assigned last, regardless of what the producer sent.
func validateCall(call ParsedCall, sig concierge.Signature, id int) (ParsedCall, error) {
	args := make(map[string]any, len(call.Arguments))
	for _, p := range sig.Params {
		v, ok := call.Arguments[p.Name]
		if !ok || v == nil {
			if p.Required {
				return ParsedCall{}, fmt.Errorf("%s: %q: %w", sig.Name, p.Name, concierge.ErrMissingArgument)
			}
			continue
		}
		args[p.Name] = coerce(v, p.Type)
	}
	call.Arguments = args
	call.ID = id
	return call, nil
}

func coerce(v any, typ string) any {
	s, isString := v.(string)
	if !isString {
		return v
	}
	switch typ {
	case concierge.TypeInt:
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	case concierge.TypeFloat:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return v
}
