package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSimilarCases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/search" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.CaseNumber != "CS001" {
			t.Errorf("case_number: got %s, want CS001", req.CaseNumber)
		}
		if req.TopK == nil || *req.TopK != 3 {
			t.Errorf("top_k: got %v, want 3", req.TopK)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"case_number": "CS001",
			"similar_cases": []map[string]any{
				{"case_number": "CS002", "similarity_score": 0.9713, "title": "printer jam"},
			},
			"total_found": 1,
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	res, err := c.SimilarCases(context.Background(), "CS001", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalFound != 1 || len(res.SimilarCases) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	hit := res.SimilarCases[0]
	if hit.CaseNumber != "CS002" || hit.SimilarityScore != 0.9713 || hit.Title != "printer jam" {
		t.Errorf("unexpected hit: %+v", hit)
	}
}

func TestSimilarCases_OmitsDefaultTopK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if _, ok := req["top_k"]; ok {
			t.Error("top_k should be omitted when not set")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"case_number": "CS001"})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	if _, err := c.SimilarCases(context.Background(), "CS001", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCase_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "case_not_found",
			"message": "case not found",
		})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	_, err := c.Case(context.Background(), "CS999")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrCaseNotFound) {
		t.Errorf("expected ErrCaseNotFound, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Code != "case_not_found" {
		t.Errorf("code: got %s, want case_not_found", apiErr.Code)
	}
}

func TestPreview_RowsParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("rows"); got != "7" {
			t.Errorf("rows: got %s, want 7", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"table": "topic_vectors",
			"rows":  []map[string]any{{"case_number": "CS001"}},
		})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	p, err := c.Preview(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Table != "topic_vectors" || len(p.Rows) != 1 {
		t.Errorf("unexpected preview: %+v", p)
	}
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"table": "topic_vectors", "rows": 42, "vector_dim": 10,
		})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	st, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Rows != 42 || st.VectorDim != 10 {
		t.Errorf("unexpected status: %+v", st)
	}
}

func TestHealth_Degraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "degraded",
			"checks": map[string]string{"store": "error"},
		})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("degraded health should not be an error: %v", err)
	}
	if h.OK() {
		t.Error("expected OK()==false")
	}
	if h.Checks["store"] != "error" {
		t.Errorf("unexpected checks: %v", h.Checks)
	}
}

func TestAPIKeyHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("authorization: got %q, want %q", got, "Bearer secret")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"table": "topic_vectors"})
	}))
	defer srv.Close()

	c, _ := New(srv.URL, WithAPIKey("secret"))
	if _, err := c.Status(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_EmptyBaseURL(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}
