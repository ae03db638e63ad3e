package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"hookgenie-api/internal/domain/entity"
)

func TestUsageCounterIncrementIfBelow(t *testing.T) {
	ctx := context.Background()
	r := NewUsageCounterRepository()

	for i := 1; i <= 3; i++ {
		n, ok, err := r.IncrementIfBelow(ctx, "s", "2026-10-17", 3)
		if err != nil || !ok || n != i {
			t.Fatalf("#%d = %d, %v, %v", i, n, ok, err)
		}
	}
	if n, ok, _ := r.IncrementIfBelow(ctx, "s", "2026-10-17", 3); ok || n != 3 {
		t.Fatalf("over limit = %d, %v", n, ok)
	}
	if n, ok, _ := r.IncrementIfBelow(ctx, "s", "2026-10-18", 3); !ok || n != 1 {
		t.Fatalf("next day = %d, %v", n, ok)
	}
	if c, _ := r.Get(ctx, "other"); c != nil {
		t.Fatalf("unknown session = %+v, want nil", c)
	}
}

func TestUsageCounterConcurrent(t *testing.T) {
	ctx := context.Background()
	r := NewUsageCounterRepository()

	var wg sync.WaitGroup
	var mu sync.Mutex
	reserved := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := r.IncrementIfBelow(ctx, "s", "2026-10-17", 45); ok {
				mu.Lock()
				reserved++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if reserved != 45 {
		t.Fatalf("reserved = %d, want 45", reserved)
	}
}

func TestHistoryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewHistoryRepository()

	for i := 1; i <= 4; i++ {
		e := &entity.HistoryEntry{ID: fmt.Sprintf("e%d", i), Hooks: []string{"h"}}
		if err := r.Prepend(ctx, "s", e, 3); err != nil {
			t.Fatal(err)
		}
	}
	list, _ := r.List(ctx, "s", 0)
	if len(list) != 3 || list[0].ID != "e4" || list[2].ID != "e2" {
		t.Fatalf("unexpected list: %v", ids(list))
	}

	// 返回值是副本
	list[0].Hooks[0] = "mutated"
	again, _ := r.List(ctx, "s", 1)
	if again[0].Hooks[0] != "h" {
		t.Fatal("List leaked internal state")
	}

	if ok, _ := r.Delete(ctx, "s", "e3"); !ok {
		t.Fatal("Delete(e3) should succeed")
	}
	if ok, _ := r.Delete(ctx, "s", "missing"); ok {
		t.Fatal("Delete(missing) should report false")
	}
	list, _ = r.List(ctx, "s", 0)
	if got := ids(list); fmt.Sprint(got) != "[e4 e2]" {
		t.Fatalf("after delete = %v", got)
	}

	_ = r.Clear(ctx, "s")
	if list, _ = r.List(ctx, "s", 0); len(list) != 0 {
		t.Fatalf("after clear = %v", ids(list))
	}
}

func ids(list []*entity.HistoryEntry) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.ID)
	}
	return out
}
