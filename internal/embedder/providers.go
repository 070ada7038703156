package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider configuration
const (
	ProviderJina   = "jina"
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"

	// Default models
	DefaultJinaModel   = "jina-embeddings-v3"
	DefaultOpenAIModel = "text-embedding-3-small"

	// Default endpoints
	DefaultJinaEndpoint   = "https://api.jina.ai/v1/embeddings"
	DefaultOpenAIEndpoint = "https://api.openai.com/v1/embeddings"

	// Dimensions
	JinaDimension   = 1024
	OpenAIDimension = 1536
	LocalDimension  = 384

	// Retry configuration
	MaxRetries        = 3
	InitialBackoffMs  = 100
	MaxBackoffMs      = 5000
	BackoffMultiplier = 2.0

	// Environment variables holding API keys
	EnvJinaAPIKey   = "JINA_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

// APIProvider implements Embedder over an OpenAI-compatible embeddings
// endpoint. Jina AI and OpenAI share the request and response format.
type APIProvider struct {
	name       string
	apiKey     string
	model      string
	endpoint   string
	dimension  int
	retry      RetryConfig
	httpClient *http.Client
}

// APIOption configures an APIProvider
type APIOption func(*APIProvider)

// WithModel overrides the provider's default model
func WithModel(model string) APIOption {
	return func(p *APIProvider) {
		if model != "" {
			p.model = model
		}
	}
}

// WithEndpoint overrides the provider's API URL
func WithEndpoint(endpoint string) APIOption {
	return func(p *APIProvider) {
		if endpoint != "" {
			p.endpoint = endpoint
		}
	}
}

// WithDimension overrides the expected vector dimension
func WithDimension(dim int) APIOption {
	return func(p *APIProvider) {
		if dim > 0 {
			p.dimension = dim
		}
	}
}

// WithRetry overrides the retry policy
func WithRetry(cfg RetryConfig) APIOption {
	return func(p *APIProvider) {
		p.retry = cfg
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(c *http.Client) APIOption {
	return func(p *APIProvider) {
		p.httpClient = c
	}
}

func newAPIProvider(name, apiKey, envKey, model, endpoint string, dim int, opts []APIOption) (*APIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s not set", ErrNoProviderEnabled, envKey)
	}
	p := &APIProvider{
		name:      name,
		apiKey:    apiKey,
		model:     model,
		endpoint:  endpoint,
		dimension: dim,
		retry:     DefaultRetryConfig(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// NewJinaProvider creates a Jina AI embedder
func NewJinaProvider(apiKey string, opts ...APIOption) (*APIProvider, error) {
	return newAPIProvider(ProviderJina, apiKey, EnvJinaAPIKey, DefaultJinaModel, DefaultJinaEndpoint, JinaDimension, opts)
}

// NewOpenAIProvider creates an OpenAI embedder
func NewOpenAIProvider(apiKey string, opts ...APIOption) (*APIProvider, error) {
	return newAPIProvider(ProviderOpenAI, apiKey, EnvOpenAIAPIKey, DefaultOpenAIModel, DefaultOpenAIEndpoint, OpenAIDimension, opts)
}

// Embed calls the API, retrying transient failures with backoff
func (p *APIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	vectors, attempts, err := retryWithBackoff(ctx, p.retry, func() ([][]float32, error) {
		return p.callAPI(ctx, []string{text})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s after %d attempts: %v", ErrProviderFailed, p.name, attempts, err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: %s returned no embeddings", ErrProviderFailed, p.name)
	}
	if len(vectors[0]) != p.dimension {
		return nil, fmt.Errorf("%w: %s returned %d, want %d", ErrDimensionMismatch, p.name, len(vectors[0]), p.dimension)
	}
	return vectors[0], nil
}

func (p *APIProvider) callAPI(ctx context.Context, texts []string) ([][]float32, error) {
	reqBody := map[string]interface{}{
		"input": texts,
		"model": p.model,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, permanent(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, permanent(fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("api error %d: %s", resp.StatusCode, string(bodyBytes))
		// Client errors other than rate limiting will not succeed on retry
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, permanent(err)
		}
		return nil, err
	}

	var apiResp struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		} `json:"data"`
		Model string `json:"model"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	vectors := make([][]float32, len(texts))
	for _, data := range apiResp.Data {
		if data.Index < 0 || data.Index >= len(vectors) {
			return nil, fmt.Errorf("response index %d out of range", data.Index)
		}
		vectors[data.Index] = data.Embedding
	}

	return vectors, nil
}

// ID returns "<provider>/<model>"
func (p *APIProvider) ID() string {
	return p.name + "/" + p.model
}

func (p *APIProvider) Dimension() int {
	return p.dimension
}

func (p *APIProvider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}
