package fenwick

import (
	"github.com/wyfcoding/rangetree/xerrors"
)

// RangeAddTree 在差分数组解释下复用一棵树状数组，
// 支持 O(log N) 的区间加与 O(log N) 的单点查询。
// 差分数组在位置 i 的前缀和，即所有覆盖 i 的 AddRange 调用累计施加的净增量。
// 该变体不支持区间和查询，需要区间和请使用 RangeSumTree。
type RangeAddTree struct {
	diff *Tree // 底层树状数组，存储差分值。
}

// NewRangeAdd 创建一个 n 个逻辑槽位、初值全零的区间加树状数组。
func NewRangeAdd(n int) (*RangeAddTree, error) {
	diff, err := New(n)
	if err != nil {
		return nil, err
	}
	return &RangeAddTree{diff: diff}, nil
}

// RangeAddFromArray 以初始数组构建。差分值为相邻元素之差。
func RangeAddFromArray(a []int64) (*RangeAddTree, error) {
	if len(a) == 0 {
		return nil, xerrors.ErrEmptyData
	}
	d := make([]int64, len(a))
	d[0] = a[0]
	for i := 1; i < len(a); i++ {
		d[i] = a[i] - a[i-1]
	}
	diff, err := FromArray(d)
	if err != nil {
		return nil, err
	}
	return &RangeAddTree{diff: diff}, nil
}

// Len 返回序列的逻辑大小。
func (t *RangeAddTree) Len() int {
	return t.diff.n
}

// AddRange 将区间 [l, r] (1-indexed) 内每个元素加上 delta。
// 实现为差分两点修改：Add(l, delta) 与 Add(r+1, -delta)。
// l > r 视为合法的空区间，不做任何修改。
func (t *RangeAddTree) AddRange(l, r int, delta int64) error {
	if l > r {
		return nil
	}
	if l < 1 || r > t.diff.n {
		return xerrors.ErrIndexOutOfRange.WithContext("l", l).WithContext("r", r).WithContext("size", t.diff.n)
	}
	if err := t.diff.Add(l, delta); err != nil {
		return err
	}
	if r+1 <= t.diff.n {
		return t.diff.Add(r+1, -delta)
	}
	return nil
}

// PointQuery 返回位置 i (1-indexed) 的当前元素值，即差分数组的前缀和。
func (t *RangeAddTree) PointQuery(i int) (int64, error) {
	if i < 1 || i > t.diff.n {
		return 0, xerrors.ErrIndexOutOfRange.WithContext("index", i).WithContext("size", t.diff.n)
	}
	return t.diff.PrefixSum(i)
}
