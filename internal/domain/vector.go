package domain

import "math"

// FeatureVector is an ordered sequence of topic weights for one case record.
// Its length is determined by the table schema at query time; vectors are only
// comparable when their dimensionality matches.
type FeatureVector []float64

// Dim returns the vector dimensionality.
func (v FeatureVector) Dim() int { return len(v) }

// Cosine computes the cosine similarity between two vectors of equal
// dimensionality: dot(a, b) / (‖a‖ * ‖b‖) with Euclidean norms.
// A zero-norm vector is defined as maximally dissimilar: the result is 0.0,
// never NaN. Callers must filter out dimension mismatches beforehand.
func Cosine(a, b FeatureVector) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
