package segtree

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/wyfcoding/rangetree/xerrors"
)

func TestLazyTreeScenario(t *testing.T) {
	st, err := BuildLazy([]int64{1, 1, 1, 1})
	if err != nil {
		t.Fatalf("BuildLazy failed: %v", err)
	}

	if err := st.UpdateRange(1, 3, 2); err != nil {
		t.Fatalf("UpdateRange failed: %v", err)
	}
	// 序列现在是 [1,3,3,3]。
	if got, _ := st.Query(0, 3); got != 10 {
		t.Errorf("Query(0,3) = %d, want 10", got)
	}
	if got, _ := st.Query(1, 2); got != 6 {
		t.Errorf("Query(1,2) = %d, want 6", got)
	}
}

// TestLazyTreePartialOverlap 两次部分重叠的区间加后跨界查询，
// 专门覆盖递归越过部分覆盖节点前必须下推标记的路径。
func TestLazyTreePartialOverlap(t *testing.T) {
	arr := make([]int64, 8)
	for i := range arr {
		arr[i] = int64(i)
	}
	st, err := BuildLazy(arr)
	if err != nil {
		t.Fatalf("BuildLazy failed: %v", err)
	}

	if err := st.UpdateRange(1, 3, 2); err != nil {
		t.Fatalf("UpdateRange(1,3,+2) failed: %v", err)
	}
	if err := st.UpdateRange(5, 7, 5); err != nil {
		t.Fatalf("UpdateRange(5,7,+5) failed: %v", err)
	}

	mirror := []int64{0, 3, 4, 5, 4, 10, 11, 12}
	var want int64
	for i := 2; i <= 6; i++ {
		want += mirror[i]
	}
	got, err := st.Query(2, 6)
	if err != nil {
		t.Fatalf("Query(2,6) failed: %v", err)
	}
	if got != want {
		t.Errorf("Query(2,6) = %d, want %d", got, want)
	}
}

func TestLazyTreeRangePolicy(t *testing.T) {
	st, _ := BuildLazy([]int64{1, 2, 3, 4})

	if _, err := st.Query(3, 1); !errors.Is(err, xerrors.ErrInvalidRange) {
		t.Errorf("Query(3,1) error = %v, want ErrInvalidRange", err)
	}
	if err := st.UpdateRange(2, 1, 5); !errors.Is(err, xerrors.ErrInvalidRange) {
		t.Errorf("UpdateRange(2,1) error = %v, want ErrInvalidRange", err)
	}
	if err := st.UpdateRange(0, 4, 5); !errors.Is(err, xerrors.ErrInvalidRange) {
		t.Errorf("UpdateRange(0,4) error = %v, want ErrInvalidRange", err)
	}
	// 非法调用不应产生部分修改。
	if got, _ := st.Query(0, 3); got != 10 {
		t.Errorf("Query(0,3) after rejected updates = %d, want 10", got)
	}
	if _, err := BuildLazy(nil); !errors.Is(err, xerrors.ErrEmptyData) {
		t.Errorf("BuildLazy(nil) error = %v, want ErrEmptyData", err)
	}
}

// TestLazyTreeBruteForce 随机区间加与区间查询混合下与朴素镜像对照。
func TestLazyTreeBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const n = 40

	mirror := make([]int64, n)
	for i := range mirror {
		mirror[i] = int64(rng.Intn(100) - 50)
	}
	st, err := BuildLazy(mirror)
	if err != nil {
		t.Fatalf("BuildLazy failed: %v", err)
	}

	for step := 0; step < 2000; step++ {
		l := rng.Intn(n)
		r := l + rng.Intn(n-l)
		if rng.Intn(2) == 0 {
			delta := int64(rng.Intn(40) - 20)
			if err := st.UpdateRange(l, r, delta); err != nil {
				t.Fatalf("step %d: UpdateRange(%d,%d,%d) failed: %v", step, l, r, delta, err)
			}
			for i := l; i <= r; i++ {
				mirror[i] += delta
			}
		} else {
			got, err := st.Query(l, r)
			if err != nil {
				t.Fatalf("step %d: Query(%d,%d) failed: %v", step, l, r, err)
			}
			var want int64
			for i := l; i <= r; i++ {
				want += mirror[i]
			}
			if got != want {
				t.Fatalf("step %d: Query(%d,%d) = %d, want %d", step, l, r, got, want)
			}
		}
	}
}

// TestLazyTreeSingleElement 单元素树上打标记会落在叶子上，
// 下推时叶子只清标记不传播。
func TestLazyTreeSingleElement(t *testing.T) {
	st, err := BuildLazy([]int64{100})
	if err != nil {
		t.Fatalf("BuildLazy failed: %v", err)
	}
	if err := st.UpdateRange(0, 0, 11); err != nil {
		t.Fatalf("UpdateRange failed: %v", err)
	}
	if got, _ := st.Query(0, 0); got != 111 {
		t.Errorf("Query(0,0) = %d, want 111", got)
	}
}
