// Package cases reads the topic-vectors table from the remote store.
package cases

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tracknorth/casematch/internal/domain"
)

// store is the consumer interface for table access (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo reads case records. One hash per table row, keyed
// <key_prefix><table>:<case_number>.
type Repo struct {
	store        store
	rowPrefix    string
	vectorPrefix string
}

// New creates a case repository.
func New(s store, keyPrefix, table, vectorPrefix string) *Repo {
	return &Repo{
		store:        s,
		rowPrefix:    fmt.Sprintf("%s%s:", keyPrefix, table),
		vectorPrefix: vectorPrefix,
	}
}

// List returns every row of the table as a case record, sorted by case
// number. The sort makes the candidate pool order — and therefore the
// ranker's tie-breaking — deterministic across invocations: SCAN returns
// keys in no particular order.
func (r *Repo) List(ctx context.Context) ([]domain.CaseRecord, error) {
	keys, err := r.store.Scan(ctx, r.rowPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan table rows: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	rows, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch table rows: %w", err)
	}

	records := make([]domain.CaseRecord, 0, len(rows))
	for i, fields := range rows {
		if len(fields) == 0 {
			// Row deleted between SCAN and HGETALL.
			continue
		}
		number := strings.TrimPrefix(keys[i], r.rowPrefix)
		records = append(records, recordFromRow(number, fields, r.vectorPrefix))
	}

	return records, nil
}

// Get fetches a single case by number. Returns domain.ErrCaseNotFound when
// the row does not exist.
func (r *Repo) Get(ctx context.Context, number string) (domain.CaseRecord, error) {
	fields, err := r.store.HGetAll(ctx, r.rowPrefix+number)
	if err != nil {
		return domain.CaseRecord{}, fmt.Errorf("fetch case %s: %w", number, err)
	}
	if len(fields) == 0 {
		return domain.CaseRecord{}, fmt.Errorf("case %s: %w", number, domain.ErrCaseNotFound)
	}
	return recordFromRow(number, fields, r.vectorPrefix), nil
}
