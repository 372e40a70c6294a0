package concierge

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg   int // User prompt accent
	Assistant int // Assistant reply accent
	ToolCall  int // Tool dispatch progress
	Error     int // Error messages
	Banner    int // Startup banner and example queries
	Muted     int // Status text, placeholders
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   2,
		Assistant: 4,
		ToolCall:  3,
		Error:     1,
		Banner:    3,
		Muted:     8,
	}
}
