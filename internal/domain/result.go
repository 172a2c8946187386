package domain

// SimilarityResult is one ranked hit: a candidate case plus its cosine
// similarity to the target, rounded to 4 decimal places. Ordering among
// results is significant and defines the output contract.
type SimilarityResult struct {
	number string
	score  float64
	meta   Metadata
}

// NewSimilarityResult creates a similarity result.
func NewSimilarityResult(number string, score float64, meta Metadata) SimilarityResult {
	return SimilarityResult{number: number, score: score, meta: meta}
}

// Number returns the candidate case identifier.
func (r *SimilarityResult) Number() string { return r.number }

// Score returns the similarity score in [-1.0, 1.0].
func (r *SimilarityResult) Score() float64 { return r.score }

// Meta returns the candidate's display metadata.
func (r *SimilarityResult) Meta() Metadata { return r.meta }
