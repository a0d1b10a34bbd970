package incremental

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestCompute_cachesAcrossCalls(t *testing.T) {
	g := NewGraph()
	var calls int32
	fn := func() (int, error) {
		atomic.AddInt32(&calls, 1)
		return 42, nil
	}
	for i := 0; i < 3; i++ {
		v, err := Compute(g, "k", DurabilityMedium, nil, fn)
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		if v != 42 {
			t.Errorf("v = %d, want 42", v)
		}
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (cached after first computation)", calls)
	}
}

func TestCompute_concurrentCallsShareOneComputation(t *testing.T) {
	g := NewGraph()
	var calls int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, _ = Compute(g, "shared", DurabilityLow, nil, func() (int, error) {
				atomic.AddInt32(&calls, 1)
				return 7, nil
			})
		}()
	}
	close(start)
	wg.Wait()
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (singleflight should dedupe concurrent computations)", calls)
	}
}

func TestInvalidate_dropsNodeAndTransitiveDependents(t *testing.T) {
	g := NewGraph()
	_, _ = Compute(g, "base", DurabilityHigh, nil, func() (int, error) { return 1, nil })
	_, _ = Compute(g, "derived", DurabilityMedium, []string{"base"}, func() (int, error) { return 2, nil })

	if g.Len() != 2 {
		t.Fatalf("Len = %d, want 2 before invalidation", g.Len())
	}
	g.Invalidate("base")
	if g.Len() != 0 {
		t.Errorf("Len = %d, want 0: invalidating base should also drop derived", g.Len())
	}

	var recomputed int32
	v, _ := Compute(g, "base", DurabilityHigh, nil, func() (int, error) {
		atomic.AddInt32(&recomputed, 1)
		return 9, nil
	})
	if v != 9 || recomputed != 1 {
		t.Errorf("expected base to recompute once after invalidation, got v=%d recomputed=%d", v, recomputed)
	}
}
