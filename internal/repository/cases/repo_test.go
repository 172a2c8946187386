package cases

import (
	"context"
	"errors"
	"testing"

	"github.com/tracknorth/casematch/internal/domain"
)

func TestList_SortsByCaseNumber(t *testing.T) {
	repo, ms := newTestRepo(t)

	// SCAN order is not deterministic; the repo must sort.
	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != "casematch:topic_vectors:*" {
			t.Errorf("unexpected scan pattern %q", pattern)
		}
		return []string{
			"casematch:topic_vectors:CS3",
			"casematch:topic_vectors:CS1",
			"casematch:topic_vectors:CS2",
		}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, keys []string) ([]map[string]string, error) {
		rows := make([]map[string]string, len(keys))
		for i, k := range keys {
			rows[i] = testRow(k[len("casematch:topic_vectors:"):])
		}
		return rows, nil
	}

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"CS1", "CS2", "CS3"} {
		if records[i].Number() != want {
			t.Errorf("record %d: expected %s, got %s", i, want, records[i].Number())
		}
	}
}

func TestList_EmptyTable(t *testing.T) {
	repo, _ := newTestRepo(t)

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty result, got %d records", len(records))
	}
}

func TestList_SkipsVanishedRows(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.scanFn = func(_ context.Context, _ string) ([]string, error) {
		return []string{
			"casematch:topic_vectors:CS1",
			"casematch:topic_vectors:CS2",
		}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, keys []string) ([]map[string]string, error) {
		return []map[string]string{testRow("CS1"), {}}, nil
	}

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Number() != "CS1" {
		t.Errorf("expected only CS1, got %v", records)
	}
}

func TestList_ScanError(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.scanFn = func(_ context.Context, _ string) ([]string, error) {
		return nil, errors.New("connection refused")
	}

	if _, err := repo.List(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestGet_Found(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		if key != "casematch:topic_vectors:CS1" {
			t.Errorf("unexpected key %q", key)
		}
		return testRow("CS1"), nil
	}

	rec, err := repo.Get(context.Background(), "CS1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Number() != "CS1" {
		t.Errorf("expected CS1, got %s", rec.Number())
	}
	if rec.Vector().Dim() != 3 {
		t.Errorf("expected 3 dimensions, got %d", rec.Vector().Dim())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Get(context.Background(), "CS404")
	if !errors.Is(err, domain.ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound, got %v", err)
	}
}
