package main

import (
	"context"
	"fmt"

	"github.com/tablewise/concierge"
	"github.com/tablewise/concierge/agent"
	"github.com/tablewise/concierge/gemini"
	"github.com/tablewise/concierge/groq"
)

const defaultGeminiModel = "gemini-2.0-flash"

// resolveProvider selects and constructs the provider, returning it together
// with the provider's default model. All env var values are passed in as
// parameters; env is only read by the command entrypoints.
func resolveProvider(ctx context.Context, providerFlag, apiKeyFlag, groqEnvKey, geminiEnvKey string) (concierge.Provider, string, error) {
	provider := providerFlag

	// Auto-detect from env vars if no flag.
	if provider == "" {
		hasGroq := groqEnvKey != ""
		hasGemini := geminiEnvKey != ""
		switch {
		case hasGroq && hasGemini:
			return nil, "", fmt.Errorf("multiple API keys found (GROQ_API_KEY, GEMINI_API_KEY): use --provider to select")
		case hasGroq:
			provider = "groq"
		case hasGemini:
			provider = "gemini"
		default:
			return nil, "", fmt.Errorf("no API key found: set GROQ_API_KEY or GEMINI_API_KEY (or use --provider and --api-key)")
		}
	}

	// Resolve API key: explicit flag overrides env var.
	key := apiKeyFlag
	switch provider {
	case "groq":
		if key == "" {
			key = groqEnvKey
		}
		if key == "" {
			return nil, "", fmt.Errorf("GROQ_API_KEY not set (use --api-key or environment variable)")
		}
		return groq.New(key), agent.DefaultModel, nil
	case "gemini":
		if key == "" {
			key = geminiEnvKey
		}
		if key == "" {
			return nil, "", fmt.Errorf("GEMINI_API_KEY not set (use --api-key or environment variable)")
		}
		client, err := gemini.New(ctx, key)
		if err != nil {
			return nil, "", fmt.Errorf("gemini: %w", err)
		}
		return client, defaultGeminiModel, nil
	default:
		return nil, "", fmt.Errorf("unknown provider %q: must be \"groq\" or \"gemini\"", provider)
	}
}
