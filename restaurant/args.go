package restaurant

import (
	"fmt"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// decodeArgs decodes a validated argument map into a typed params struct.
func decodeArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	return nil
}

// intValue coerces the loosely typed numeric values that survive JSON
// decoding and permissive validation. ok is false only for present values
// that cannot be read as an integer.
func intValue(v any) (n int, present bool, ok bool) {
	switch x := v.(type) {
	case nil:
		return 0, false, true
	case int:
		return x, true, true
	case int64:
		return int(x), true, true
	case float64:
		return int(x), true, true
	case string:
		if x == "" {
			return 0, false, true
		}
		n, err := strconv.Atoi(x)
		if err != nil {
			return 0, true, false
		}
		return n, true, true
	default:
		return 0, true, false
	}
}
