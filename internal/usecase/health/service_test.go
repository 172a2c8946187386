package health

import (
	"context"
	"errors"
	"testing"

	"github.com/tracknorth/casematch/internal/domain"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

type mockTable struct {
	err error
}

func (m *mockTable) List(context.Context) ([]domain.CaseRecord, error) {
	return nil, m.err
}

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockTable{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("expected healthy, got %s", report.Status)
	}
	if report.Checks["store"] != CheckOK || report.Checks["table"] != CheckOK {
		t.Errorf("unexpected checks: %v", report.Checks)
	}
}

func TestCheck_StoreDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("connection refused")}, &mockTable{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("expected degraded, got %s", report.Status)
	}
	if report.Checks["store"] != CheckError {
		t.Errorf("expected store error, got %v", report.Checks)
	}
}

func TestCheck_TableUnreadable(t *testing.T) {
	svc := New(&mockPinger{}, &mockTable{err: errors.New("scan failed")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("expected degraded, got %s", report.Status)
	}
	if report.Checks["table"] != CheckError {
		t.Errorf("expected table error, got %v", report.Checks)
	}
}

func TestCheck_NilTable(t *testing.T) {
	svc := New(&mockPinger{}, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("expected healthy, got %s", report.Status)
	}
	if _, ok := report.Checks["table"]; ok {
		t.Error("expected no table check when table reader is nil")
	}
}
