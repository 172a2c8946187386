package table

import (
	"context"

	"github.com/tracknorth/casematch/internal/domain"
)

// CaseReader provides row access to the topic-vectors table.
type CaseReader interface {
	List(ctx context.Context) ([]domain.CaseRecord, error)
	Get(ctx context.Context, number string) (domain.CaseRecord, error)
}
