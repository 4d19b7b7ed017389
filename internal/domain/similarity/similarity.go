// Package similarity computes bounded cosine similarity between term
// vectors produced by the encoding package.
package similarity

import (
	"math"

	"github.com/okian/courserec/internal/domain/encoding"
)

// Cosine returns the cosine of the angle between a and b, clamped to
// [0, 1]. A zero-magnitude vector on either side means "no lexical
// signal" and yields 0, never NaN. Mismatched dimensionalities also
// yield 0; vectors from different vocabularies are not comparable.
func Cosine(a, b encoding.Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}

	cos := dot / (math.Sqrt(magA) * math.Sqrt(magB))
	// Weights are non-negative so cos cannot go below zero analytically,
	// but floating error can push it marginally outside either bound.
	return clamp01(cos)
}

// Batch scores a query vector against every candidate vector.
func Batch(query encoding.Vector, candidates []encoding.Vector) []float64 {
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = Cosine(query, c)
	}
	return scores
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}
