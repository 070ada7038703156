package embedder

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/dshills/docsearch/internal/terms"
)

// LocalProvider embeds text offline by feature hashing.
//
// Each term (see package terms) and each pair of adjacent terms is hashed
// into one of Dimension buckets with a hash-derived sign, and the result is
// normalized to unit length. Texts sharing vocabulary get high cosine
// similarity; there is no notion of synonyms.
type LocalProvider struct {
	dimension int
}

// NewLocalProvider creates a local embedder. A non-positive dimension uses
// LocalDimension.
func NewLocalProvider(dimension int) *LocalProvider {
	if dimension <= 0 {
		dimension = LocalDimension
	}
	return &LocalProvider{dimension: dimension}
}

func (l *LocalProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vector := make([]float32, l.dimension)
	toks := terms.Terms(text)
	for i, t := range toks {
		l.add(vector, t, 1)
		if i > 0 {
			l.add(vector, toks[i-1]+" "+t, 0.5)
		}
	}
	return Normalize(vector), nil
}

func (l *LocalProvider) add(vector []float32, feature string, weight float32) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()

	idx := int(sum % uint64(l.dimension))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	vector[idx] += weight
}

// ID returns "local/hash-<dimension>"
func (l *LocalProvider) ID() string {
	return fmt.Sprintf("%s/hash-%d", ProviderLocal, l.dimension)
}

func (l *LocalProvider) Dimension() int {
	return l.dimension
}

func (l *LocalProvider) Close() error {
	return nil
}
