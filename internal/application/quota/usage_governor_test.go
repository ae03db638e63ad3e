package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"hookgenie-api/internal/domain/entity"
	"hookgenie-api/internal/infrastructure/persistence/memory"
)

var fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func newGovernor(repo *memory.UsageCounterRepository) *UsageGovernor {
	return NewUsageGovernor(repo, nil).WithClock(func() time.Time { return fixedNow })
}

func TestCheckAndReserveStopsAtSoftLimit(t *testing.T) {
	ctx := context.Background()
	g := newGovernor(memory.NewUsageCounterRepository())

	for i := 0; i < DefaultSoftLimit; i++ {
		if !g.CheckAndReserve(ctx, "s") {
			t.Fatalf("reservation %d denied", i+1)
		}
	}
	if g.CheckAndReserve(ctx, "s") {
		t.Fatal("reservation beyond soft limit should be denied")
	}
	if got := g.CurrentCount(ctx, "s"); got != DefaultSoftLimit {
		t.Fatalf("CurrentCount = %d, want %d", got, DefaultSoftLimit)
	}
	if got := g.Snapshot(ctx, "s").Remaining; got != DefaultNominalLimit-DefaultSoftLimit {
		t.Fatalf("Remaining = %d", got)
	}

	res := g.Reserve(ctx, "s")
	if res.Reserved || res.Count != DefaultSoftLimit {
		t.Fatalf("Reserve() = %+v", res)
	}
}

func TestCurrentCountIsIdempotent(t *testing.T) {
	ctx := context.Background()
	g := newGovernor(memory.NewUsageCounterRepository())
	g.CheckAndReserve(ctx, "s")
	g.CheckAndReserve(ctx, "s")

	first := g.CurrentCount(ctx, "s")
	second := g.CurrentCount(ctx, "s")
	if first != second || first != 2 {
		t.Fatalf("CurrentCount() = %d then %d, want 2 twice", first, second)
	}
}

func TestDayRollover(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUsageCounterRepository()
	repo.Set("s", entity.UsageCounter{Date: "2026-10-16", Count: 50})
	g := newGovernor(repo)

	if got := g.CurrentCount(ctx, "s"); got != 0 {
		t.Fatalf("CurrentCount after rollover = %d, want 0", got)
	}
	if !g.CheckAndReserve(ctx, "s") {
		t.Fatal("first reservation of the day should succeed")
	}
	if got := g.CurrentCount(ctx, "s"); got != 1 {
		t.Fatalf("CurrentCount = %d, want 1", got)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	g := newGovernor(memory.NewUsageCounterRepository())
	g.CheckAndReserve(ctx, "a")
	if got := g.CurrentCount(ctx, "b"); got != 0 {
		t.Fatalf("session b count = %d", got)
	}
}

type failingRepo struct{}

func (failingRepo) Get(context.Context, string) (*entity.UsageCounter, error) {
	return nil, errors.New("redis down")
}

func (failingRepo) IncrementIfBelow(context.Context, string, string, int) (int, bool, error) {
	return 0, false, errors.New("redis down")
}

func TestStorageErrorsFailOpen(t *testing.T) {
	ctx := context.Background()
	g := NewUsageGovernor(failingRepo{}, nil)

	if !g.CheckAndReserve(ctx, "s") {
		t.Fatal("storage error should allow generation")
	}
	if got := g.CurrentCount(ctx, "s"); got != 0 {
		t.Fatalf("CurrentCount = %d, want 0", got)
	}
	snap := g.Snapshot(ctx, "s")
	if snap.Remaining != DefaultNominalLimit || snap.SoftLimit != DefaultSoftLimit {
		t.Fatalf("Snapshot = %+v", snap)
	}
}
