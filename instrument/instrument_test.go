package instrument

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/wyfcoding/rangetree/metrics"
	"github.com/wyfcoding/rangetree/segtree"
	"github.com/wyfcoding/rangetree/xerrors"
)

func TestInstrumentedSegmentTree(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewMetrics("rangetree-test")

	st, err := NewSegmentTree(ctx, []int64{1, 3, 5}, segtree.AggregateSum, m)
	if err != nil {
		t.Fatalf("NewSegmentTree failed: %v", err)
	}

	if got, _ := st.Query(ctx, 0, 2); got != 9 {
		t.Errorf("Query(0,2) = %d, want 9", got)
	}
	if err := st.Update(ctx, 1, 10); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got, _ := st.Query(ctx, 0, 2); got != 16 {
		t.Errorf("Query(0,2) = %d, want 16", got)
	}

	// 错误也要穿透装饰器原样返回。
	if _, err := st.Query(ctx, 2, 1); !errors.Is(err, xerrors.ErrInvalidRange) {
		t.Errorf("Query(2,1) error = %v, want ErrInvalidRange", err)
	}
}

func TestInstrumentedLazyTree(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewMetrics("rangetree-test")

	st, err := NewLazySegmentTree(ctx, []int64{1, 1, 1, 1}, m)
	if err != nil {
		t.Fatalf("NewLazySegmentTree failed: %v", err)
	}
	if err := st.UpdateRange(ctx, 1, 3, 2); err != nil {
		t.Fatalf("UpdateRange failed: %v", err)
	}
	if got, _ := st.Query(ctx, 0, 3); got != 10 {
		t.Errorf("Query(0,3) = %d, want 10", got)
	}
}

func TestInstrumentedFenwick(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewMetrics("rangetree-test")

	f, err := NewFenwick(ctx, []int64{1, 2, 3}, m)
	if err != nil {
		t.Fatalf("NewFenwick failed: %v", err)
	}
	if got, _ := f.RangeSum(ctx, 2, 3); got != 5 {
		t.Errorf("RangeSum(2,3) = %d, want 5", got)
	}
	if err := f.Add(ctx, 1, 5); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got, _ := f.PrefixSum(ctx, 3); got != 11 {
		t.Errorf("PrefixSum(3) = %d, want 11", got)
	}
}

func TestSafeTreeConcurrentReads(t *testing.T) {
	st, err := NewSafeTree([]int64{1, 2, 3, 4, 5, 6, 7, 8}, segtree.AggregateSum)
	if err != nil {
		t.Fatalf("NewSafeTree failed: %v", err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if got, err := st.Query(0, 7); err != nil || got != 36 {
					t.Errorf("Query(0,7) = (%d, %v), want (36, nil)", got, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestSafeLazyTreeConcurrentMix(t *testing.T) {
	st, err := NewSafeLazyTree(make([]int64, 16))
	if err != nil {
		t.Fatalf("NewSafeLazyTree failed: %v", err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if err := st.UpdateRange(0, 15, 1); err != nil {
					t.Errorf("UpdateRange failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	// 4 个协程各加 100 次，每次整域 +1，总和为 4*100*16。
	if got, _ := st.Query(0, 15); got != 6400 {
		t.Errorf("Query(0,15) = %d, want 6400", got)
	}
}

func TestSafeFenwick(t *testing.T) {
	f, err := NewSafeFenwick([]int64{5, 5, 5})
	if err != nil {
		t.Fatalf("NewSafeFenwick failed: %v", err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if err := f.Add(2, 1); err != nil {
					t.Errorf("Add failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got, _ := f.PrefixSum(3); got != 215 {
		t.Errorf("PrefixSum(3) = %d, want 215", got)
	}
}
