// Package table exposes diagnostics over the topic-vectors table: previews,
// single-row lookups, and connectivity status.
package table

import (
	"context"
	"fmt"

	"github.com/tracknorth/casematch/internal/domain"
)

// Info describes the loaded table.
type Info struct {
	Table     string
	Rows      int
	VectorDim int
}

// Service serves table diagnostics.
type Service struct {
	cases CaseReader
	table string
}

// New creates a table service.
func New(cases CaseReader, table string) *Service {
	return &Service{cases: cases, table: table}
}

// Preview returns the first rows of the table in case-number order.
func (s *Service) Preview(ctx context.Context, rows int) ([]domain.CaseRecord, error) {
	records, err := s.cases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("preview table: %w", err)
	}
	if len(records) > rows {
		records = records[:rows]
	}
	return records, nil
}

// Case returns a single record by case number.
func (s *Service) Case(ctx context.Context, number string) (domain.CaseRecord, error) {
	rec, err := s.cases.Get(ctx, number)
	if err != nil {
		return domain.CaseRecord{}, fmt.Errorf("get case: %w", err)
	}
	return rec, nil
}

// Info reports the table name, row count, and vector dimensionality (taken
// from the first row that carries a vector; 0 when no row does).
func (s *Service) Info(ctx context.Context) (Info, error) {
	records, err := s.cases.List(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("table info: %w", err)
	}

	dim := 0
	for i := range records {
		if records[i].HasVector() {
			dim = records[i].Vector().Dim()
			break
		}
	}

	return Info{Table: s.table, Rows: len(records), VectorDim: dim}, nil
}
