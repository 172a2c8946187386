// Package similar ranks case records by cosine similarity to a target case.
package similar

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tracknorth/casematch/internal/domain"
	"github.com/tracknorth/casematch/internal/logger"
	"github.com/tracknorth/casematch/internal/metrics"
)

// Service handles similar-case lookups.
type Service struct {
	cases CaseReader
}

// New creates a similarity service.
func New(cases CaseReader) *Service {
	return &Service{cases: cases}
}

// SimilarCases returns up to topK cases ranked by cosine similarity to the
// target case. The target itself is always excluded from the result, even
// when the pool contains it.
//
// A missing target, a target without a feature vector, and an empty table
// all yield an empty result, never an error: these are expected states of
// real-world source data (topK validation belongs to the transport layer).
func (s *Service) SimilarCases(ctx context.Context, caseNumber string, topK int) ([]domain.SimilarityResult, error) {
	log := logger.FromContext(ctx)

	records, err := s.cases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}

	var target *domain.CaseRecord
	candidates := make([]domain.CaseRecord, 0, len(records))
	for i := range records {
		if records[i].Number() == caseNumber {
			if target == nil {
				target = &records[i]
			}
			continue
		}
		candidates = append(candidates, records[i])
	}

	if target == nil {
		log.Warn("target case not found in table", zap.String("case_number", caseNumber))
		return nil, nil
	}
	if !target.HasVector() {
		log.Warn("target case has no feature vector", zap.String("case_number", caseNumber))
		return nil, nil
	}

	start := time.Now()
	results, stats := rank(target.Vector(), candidates, topK)
	metrics.RankDuration.Observe(time.Since(start).Seconds())
	metrics.RankCandidatesTotal.WithLabelValues("scored").Add(float64(stats.scored))
	metrics.RankCandidatesTotal.WithLabelValues("skipped_dimension").Add(float64(stats.skippedDimension))
	metrics.RankCandidatesTotal.WithLabelValues("skipped_no_vector").Add(float64(stats.skippedNoVector))

	log.Info("ranked similar cases",
		zap.String("case_number", caseNumber),
		zap.Int("top_k", topK),
		zap.Int("found", len(results)),
		zap.Int("scored", stats.scored),
		zap.Int("skipped_dimension", stats.skippedDimension),
	)

	return results, nil
}
