package indexer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// ErrNotJSON is wrapped by a FetchError when the response is not JSON
var ErrNotJSON = errors.New("is not JSON")

// FetchError reports a failed remote index fetch
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	if errors.Is(e.Err, ErrNotJSON) {
		return fmt.Sprintf("corpus data from %s is not JSON", e.URL)
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch corpus data from %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to fetch corpus data from %s: %s", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetchIndex downloads and decodes an index. There are no retries.
func FetchIndex(ctx context.Context, url string) (*CorpusIndex, error) {
	return FetchIndexWith(ctx, http.DefaultClient, url)
}

// FetchIndexWith is FetchIndex using the given HTTP client
func FetchIndexWith(ctx context.Context, client *http.Client, url string) (*CorpusIndex, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "json") {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status, Err: ErrNotJSON}
	}

	ci, err := Load(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}
	return ci, nil
}

// Open loads an index from an http(s) URL or a file path
func Open(ctx context.Context, source string) (*CorpusIndex, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return FetchIndex(ctx, source)
	}
	if _, err := os.Stat(source); err != nil {
		return nil, fmt.Errorf("index file: %w", err)
	}
	return LoadFile(source)
}
