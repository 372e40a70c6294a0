package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablewise/concierge/agent"
)

func TestResolveProvider(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("groq auto-detected from env key", func(t *testing.T) {
		t.Parallel()

		provider, model, err := resolveProvider(ctx, "", "", "gsk-test", "")
		require.NoError(t, err)
		assert.NotNil(t, provider)
		assert.Equal(t, agent.DefaultModel, model)
	})

	t.Run("explicit groq with api-key flag", func(t *testing.T) {
		t.Parallel()

		provider, _, err := resolveProvider(ctx, "groq", "flag-key", "", "")
		require.NoError(t, err)
		assert.NotNil(t, provider)
	})

	t.Run("both env keys require a flag", func(t *testing.T) {
		t.Parallel()

		_, _, err := resolveProvider(ctx, "", "", "gsk-test", "gm-test")
		assert.ErrorContains(t, err, "multiple API keys")
	})

	t.Run("no keys at all", func(t *testing.T) {
		t.Parallel()

		_, _, err := resolveProvider(ctx, "", "", "", "")
		assert.ErrorContains(t, err, "no API key found")
	})

	t.Run("provider flag without key", func(t *testing.T) {
		t.Parallel()

		_, _, err := resolveProvider(ctx, "groq", "", "", "")
		assert.ErrorContains(t, err, "GROQ_API_KEY not set")
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()

		_, _, err := resolveProvider(ctx, "openai", "key", "", "")
		assert.ErrorContains(t, err, `unknown provider "openai"`)
	})
}
