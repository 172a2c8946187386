package health

import (
	"context"

	"github.com/tracknorth/casematch/internal/domain"
)

// DBPinger checks table-store connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// TableReader checks that the topic-vectors table is readable.
type TableReader interface {
	List(ctx context.Context) ([]domain.CaseRecord, error)
}
