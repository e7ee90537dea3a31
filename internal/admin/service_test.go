package admin

import (
	"context"
	"fmt"
	"testing"

	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
)

type staticCounter int64

func (c staticCounter) Count(context.Context) (int64, error) { return int64(c), nil }

type failingCounter struct{}

func (failingCounter) Count(context.Context) (int64, error) {
	return 0, fmt.Errorf("connection refused")
}

func TestStatsAggregatesCounters(t *testing.T) {
	svc, err := NewService(staticCounter(3), staticCounter(120), staticCounter(8))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalUsers != 3 || stats.TotalProducts != 120 || stats.TotalCategories != 8 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestStatsPropagatesCounterFailure(t *testing.T) {
	svc, err := NewService(staticCounter(1), failingCounter{}, staticCounter(1))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, statsErr := svc.Stats(context.Background())
	typed := pkgerrors.As(statsErr)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", statsErr)
	}
}

func TestNewServiceRequiresCounters(t *testing.T) {
	if _, err := NewService(nil, staticCounter(0), staticCounter(0)); err == nil {
		t.Fatal("expected error for nil counter")
	}
}
