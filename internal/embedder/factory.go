package embedder

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Execution modes
const (
	// ModeInProcess embeds in the calling process
	ModeInProcess = "inprocess"

	// ModeWorker forwards embedding to a worker subprocess
	ModeWorker = "worker"
)

// EnvProvider selects the provider when Config.Provider is empty
const EnvProvider = "DOCSEARCH_EMBEDDING_PROVIDER"

// Config holds embedder configuration
type Config struct {
	Provider  string
	APIKey    string
	Model     string
	Endpoint  string
	Dimension int

	// Mode is ModeInProcess (default) or ModeWorker
	Mode string

	// WorkerCommand starts the worker in ModeWorker
	WorkerCommand []string
}

// New creates an embedder from cfg. An empty provider is resolved with
// DetectProvider.
func New(ctx context.Context, cfg Config) (Embedder, error) {
	switch strings.ToLower(cfg.Mode) {
	case "", ModeInProcess:
	case ModeWorker:
		return StartWorker(ctx, cfg.WorkerCommand)
	default:
		return nil, fmt.Errorf("%w: unknown embedder mode %s", ErrInvalidInput, cfg.Mode)
	}

	provider := strings.ToLower(cfg.Provider)
	if provider == "" {
		provider = DetectProvider()
	}

	switch provider {
	case ProviderJina:
		key := cfg.APIKey
		if key == "" {
			key = os.Getenv(EnvJinaAPIKey)
		}
		return NewJinaProvider(key, WithModel(cfg.Model), WithEndpoint(cfg.Endpoint), WithDimension(cfg.Dimension))
	case ProviderOpenAI:
		key := cfg.APIKey
		if key == "" {
			key = os.Getenv(EnvOpenAIAPIKey)
		}
		return NewOpenAIProvider(key, WithModel(cfg.Model), WithEndpoint(cfg.Endpoint), WithDimension(cfg.Dimension))
	case ProviderLocal:
		return NewLocalProvider(cfg.Dimension), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}

// DetectProvider returns the provider that would be used based on current environment
// Priority:
// 1. DOCSEARCH_EMBEDDING_PROVIDER (jina, openai, local)
// 2. Check for API keys: JINA_API_KEY, OPENAI_API_KEY
// 3. Default to local if no API keys found
func DetectProvider() string {
	provider := os.Getenv(EnvProvider)
	if provider != "" {
		return strings.ToLower(provider)
	}

	if os.Getenv(EnvJinaAPIKey) != "" {
		return ProviderJina
	}
	if os.Getenv(EnvOpenAIAPIKey) != "" {
		return ProviderOpenAI
	}

	return ProviderLocal
}
