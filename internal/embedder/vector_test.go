package embedder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"scaled", []float32{1, 2, 3}, []float32{2, 4, 6}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"dimension mismatch", []float32{1}, []float32{1, 1}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, CosineWith(tt.a)(tt.b), 1e-9)
		})
	}
}

func TestDotAndMagnitude(t *testing.T) {
	assert.InDelta(t, 32.0, Dot([]float32{1, 2, 3}, []float32{4, 5, 6}), 1e-9)
	assert.InDelta(t, 5.0, Magnitude([]float32{3, 4}), 1e-9)
	assert.Zero(t, Magnitude(nil))
}

func TestNormalize(t *testing.T) {
	v := Normalize([]float32{3, 4})
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)
	assert.InDelta(t, 1.0, Magnitude(v), 1e-6)

	zero := []float32{0, 0}
	assert.Equal(t, zero, Normalize(zero))

	assert.False(t, math.IsNaN(Magnitude(Normalize([]float32{1e-30, 1e-30}))))
}
