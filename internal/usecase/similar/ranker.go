package similar

import (
	"math"
	"sort"

	"github.com/tracknorth/casematch/internal/domain"
)

// rankStats counts candidate outcomes for one ranking pass.
type rankStats struct {
	scored           int
	skippedDimension int
	skippedNoVector  int
}

// rank scores every candidate against the target by cosine similarity and
// returns the top k, ordered by descending score. Candidates whose vector
// dimensionality differs from the target's are skipped, not an error: source
// tables do contain heterogeneous rows. Equal scores keep the candidate
// pool's original relative order (stable sort). When k exceeds the number of
// scorable candidates, all of them are returned.
//
// The function is pure: no I/O, no mutation of inputs, identical output for
// identical inputs.
func rank(target domain.FeatureVector, candidates []domain.CaseRecord, k int) ([]domain.SimilarityResult, rankStats) {
	var stats rankStats

	results := make([]domain.SimilarityResult, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if !c.HasVector() {
			stats.skippedNoVector++
			continue
		}
		if c.Vector().Dim() != target.Dim() {
			stats.skippedDimension++
			continue
		}
		score := roundScore(domain.Cosine(target, c.Vector()))
		results = append(results, domain.NewSimilarityResult(c.Number(), score, c.Meta()))
		stats.scored++
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})

	if len(results) > k {
		results = results[:k]
	}

	return results, stats
}

// roundScore rounds to 4 decimal places for stable, reproducible output.
func roundScore(s float64) float64 {
	return math.Round(s*10000) / 10000
}
