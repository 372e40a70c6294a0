package concierge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Parameter type tags understood by the argument validator. Numeric tags get
// string-to-number coercion before dispatch; everything else passes through.
const (
	TypeString = "string"
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeObject = "object"
)

// Param describes one declared tool parameter.
type Param struct {
	Name     string
	Type     string
	Required bool
	Default  any
}

// Signature is the schema shown to the model describing a tool's capabilities.
// It is immutable once the tool is registered.
type Signature struct {
	Name        string
	Description string
	Params      []Param
}

// Tool is the capability interface implemented by every callable tool.
// Invoke returns an error only for infrastructure failures; domain failures
// (not found, unavailable time, missing fields) are reported through the
// Result's status so the model can react to them.
type Tool interface {
	Signature() Signature
	Invoke(ctx context.Context, args map[string]any) (*Result, error)
}

// Schema renders the signature as the machine-readable call schema embedded in
// the system prompt. Parameters keep their declaration order.
func (s Signature) Schema() string {
	var b strings.Builder
	b.WriteString(`{"name": `)
	writeJSONValue(&b, s.Name)
	b.WriteString(`, "description": `)
	writeJSONValue(&b, s.Description)
	b.WriteString(`, "parameters": {"properties": {`)
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		writeJSONValue(&b, p.Name)
		b.WriteString(`: {"type": `)
		writeJSONValue(&b, p.Type)
		if p.Required {
			b.WriteString(`, "required": true`)
		}
		if p.Default != nil {
			b.WriteString(`, "default": `)
			writeJSONValue(&b, p.Default)
		}
		b.WriteString("}")
	}
	b.WriteString("}}}")
	return b.String()
}

// validate enforces the registration contract. Malformed declarations are
// programmer errors; they fail at registry construction, never at runtime.
func (s Signature) validate() error {
	if s.Name == "" {
		return fmt.Errorf("empty tool name: %w", ErrValidation)
	}
	seen := make(map[string]bool, len(s.Params))
	for _, p := range s.Params {
		if p.Name == "" {
			return fmt.Errorf("empty parameter name: %w", ErrValidation)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate parameter %q: %w", p.Name, ErrValidation)
		}
		seen[p.Name] = true
		switch p.Type {
		case TypeString, TypeInt, TypeFloat, TypeObject:
		default:
			return fmt.Errorf("parameter %q has unknown type %q: %w", p.Name, p.Type, ErrValidation)
		}
	}
	return nil
}

func writeJSONValue(b *strings.Builder, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		// Only reachable with unmarshalable defaults, which validate rejects
		// for the types tools actually declare.
		b.WriteString("null")
		return
	}
	b.Write(data)
}
