package embedder

import "math"

// Dot returns the dot product of a and b. Extra elements of the longer
// vector are ignored.
func Dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Magnitude returns the Euclidean norm of v
func Magnitude(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b, or 0 when either is a
// zero vector or their dimensions differ
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	ma, mb := Magnitude(a), Magnitude(b)
	if ma == 0 || mb == 0 {
		return 0
	}
	return Dot(a, b) / (ma * mb)
}

// CosineWith returns a function computing the cosine similarity of q
// against other vectors, with q's magnitude computed once
func CosineWith(q []float32) func([]float32) float64 {
	mq := Magnitude(q)
	return func(v []float32) float64 {
		if len(v) != len(q) || mq == 0 {
			return 0
		}
		mv := Magnitude(v)
		if mv == 0 {
			return 0
		}
		return Dot(q, v) / (mq * mv)
	}
}

// Normalize returns v scaled to unit length. A zero vector is returned as is.
func Normalize(v []float32) []float32 {
	norm := Magnitude(v)
	if norm == 0 {
		return v
	}
	result := make([]float32, len(v))
	for i, x := range v {
		result[i] = float32(float64(x) / norm)
	}
	return result
}
