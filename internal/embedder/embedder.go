package embedder

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrProviderFailed    = errors.New("embedding provider failed")
	ErrUnknownProvider   = errors.New("unknown embedding provider")
	ErrEmptyText         = errors.New("text cannot be empty")
	ErrNoProviderEnabled = errors.New("no embedding provider configured")
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrWorkerClosed      = errors.New("embedding worker closed")
)

// Embedder maps text to a dense vector.
//
// Vectors for the same text from the same embedder should be close enough
// to rank identically; they need not be bitwise equal across runs.
type Embedder interface {
	// Embed returns the vector for text
	Embed(ctx context.Context, text string) ([]float32, error)

	// ID identifies the provider and model. It is part of cache keys, so two
	// embedders with the same ID must produce compatible vectors.
	ID() string

	// Dimension returns the length of the vectors produced
	Dimension() int

	// Close releases any resources held by the embedder
	Close() error
}

// ValidateText rejects empty or whitespace-only input
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}

// Similarity embeds both texts and returns their cosine similarity
func Similarity(ctx context.Context, e Embedder, a, b string) (float64, error) {
	va, err := e.Embed(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("embed first text: %w", err)
	}
	vb, err := e.Embed(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("embed second text: %w", err)
	}
	return Cosine(va, vb), nil
}
