package similar

import (
	"context"
	"errors"
	"testing"

	"github.com/tracknorth/casematch/internal/domain"
)

// mockCaseReader implements CaseReader for tests.
type mockCaseReader struct {
	listFn func(ctx context.Context) ([]domain.CaseRecord, error)
}

func (m *mockCaseReader) List(ctx context.Context) ([]domain.CaseRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func poolWithTarget() []domain.CaseRecord {
	return []domain.CaseRecord{
		candidate("CS1", 1.0, 0.0), // target
		candidate("CS2", 1.0, 0.0),
		candidate("CS3", 0.0, 1.0),
		candidate("CS4", 0.7071, 0.7071),
	}
}

func TestSimilarCases_ExcludesTarget(t *testing.T) {
	svc := New(&mockCaseReader{
		listFn: func(context.Context) ([]domain.CaseRecord, error) {
			return poolWithTarget(), nil
		},
	})

	results, err := svc.SimilarCases(context.Background(), "CS1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i := range results {
		if results[i].Number() == "CS1" {
			t.Error("target case must never appear in results")
		}
	}
}

func TestSimilarCases_RankedOrder(t *testing.T) {
	svc := New(&mockCaseReader{
		listFn: func(context.Context) ([]domain.CaseRecord, error) {
			return poolWithTarget(), nil
		},
	})

	results, err := svc.SimilarCases(context.Background(), "CS1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Number() != "CS2" || results[0].Score() != 1.0 {
		t.Errorf("expected CS2 (1.0) first, got %s (%f)", results[0].Number(), results[0].Score())
	}
	if results[1].Number() != "CS4" {
		t.Errorf("expected CS4 second, got %s", results[1].Number())
	}
}

func TestSimilarCases_TargetNotFound(t *testing.T) {
	svc := New(&mockCaseReader{
		listFn: func(context.Context) ([]domain.CaseRecord, error) {
			return poolWithTarget(), nil
		},
	})

	results, err := svc.SimilarCases(context.Background(), "CS404", 5)
	if err != nil {
		t.Fatalf("target-not-found must not be an error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result, got %d", len(results))
	}
}

func TestSimilarCases_TargetWithoutVector(t *testing.T) {
	svc := New(&mockCaseReader{
		listFn: func(context.Context) ([]domain.CaseRecord, error) {
			return []domain.CaseRecord{
				domain.NewCaseRecord("CS1", domain.Metadata{}, nil),
				candidate("CS2", 1.0, 0.0),
			}, nil
		},
	})

	results, err := svc.SimilarCases(context.Background(), "CS1", 5)
	if err != nil {
		t.Fatalf("vectorless target must not be an error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result, got %d", len(results))
	}
}

func TestSimilarCases_EmptyTable(t *testing.T) {
	svc := New(&mockCaseReader{})

	results, err := svc.SimilarCases(context.Background(), "CS1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result, got %d", len(results))
	}
}

func TestSimilarCases_ReaderError(t *testing.T) {
	svc := New(&mockCaseReader{
		listFn: func(context.Context) ([]domain.CaseRecord, error) {
			return nil, errors.New("connection refused")
		},
	})

	if _, err := svc.SimilarCases(context.Background(), "CS1", 5); err == nil {
		t.Fatal("expected error from reader failure")
	}
}

func TestSimilarCases_DuplicateTargetRows(t *testing.T) {
	// A corrupt table may contain the target number twice; every row with
	// the target's number stays out of the result.
	svc := New(&mockCaseReader{
		listFn: func(context.Context) ([]domain.CaseRecord, error) {
			return []domain.CaseRecord{
				candidate("CS1", 1.0, 0.0),
				candidate("CS1", 0.5, 0.5),
				candidate("CS2", 1.0, 0.0),
			}, nil
		},
	})

	results, err := svc.SimilarCases(context.Background(), "CS1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Number() != "CS2" {
		t.Errorf("expected only CS2, got %v", ids(results))
	}
}
