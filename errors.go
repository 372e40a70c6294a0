package concierge

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request or registration failed validation.
	ErrValidation = errors.New("validation error")

	// ErrToolNotFound indicates the requested tool does not exist in the registry.
	ErrToolNotFound = errors.New("tool not found")

	// ErrMalformedCall indicates a call block was not well-formed JSON.
	ErrMalformedCall = errors.New("malformed tool call")

	// ErrMissingArgument indicates a declared required parameter was absent.
	ErrMissingArgument = errors.New("missing required argument")
)
