package similar

import (
	"context"

	"github.com/tracknorth/casematch/internal/domain"
)

// CaseReader loads the candidate pool from the topic-vectors table.
type CaseReader interface {
	List(ctx context.Context) ([]domain.CaseRecord, error)
}
