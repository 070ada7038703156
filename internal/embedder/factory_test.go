package embedder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		jinaKey  string
		openKey  string
		want     string
	}{
		{"explicit", "OpenAI", "", "", ProviderOpenAI},
		{"jina key", "", "j", "o", ProviderJina},
		{"openai key", "", "", "o", ProviderOpenAI},
		{"fallback", "", "", "", ProviderLocal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvProvider, tt.provider)
			t.Setenv(EnvJinaAPIKey, tt.jinaKey)
			t.Setenv(EnvOpenAIAPIKey, tt.openKey)
			assert.Equal(t, tt.want, DetectProvider())
		})
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	t.Setenv(EnvProvider, "")
	t.Setenv(EnvJinaAPIKey, "")
	t.Setenv(EnvOpenAIAPIKey, "")

	e, err := New(ctx, Config{})
	require.NoError(t, err)
	assert.Equal(t, "local/hash-384", e.ID())

	e, err = New(ctx, Config{Provider: "local", Dimension: 16})
	require.NoError(t, err)
	assert.Equal(t, 16, e.Dimension())

	e, err = New(ctx, Config{Provider: "jina", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, JinaDimension, e.Dimension())

	_, err = New(ctx, Config{Provider: "openai"})
	assert.ErrorIs(t, err, ErrNoProviderEnabled)

	_, err = New(ctx, Config{Provider: "word2vec"})
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = New(ctx, Config{Mode: "thread"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = New(ctx, Config{Mode: ModeWorker})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
