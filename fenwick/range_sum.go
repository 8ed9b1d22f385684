package fenwick

import (
	"github.com/wyfcoding/rangetree/xerrors"
)

// RangeSumTree 组合两棵树状数组，同时支持 O(log N) 的区间加与区间和查询。
// 设差分数组为 b，辅助数组为 c[i] = b[i]*(i-1)，则有恒等式
// prefix(i) = i*Σb(1..i) - Σc(1..i)，两棵树各自维护一项。
type RangeSumTree struct {
	b1 *Tree // 差分值 b[i]。
	b2 *Tree // 加权差分值 b[i]*(i-1)。
	n  int
}

// NewRangeSum 创建一个 n 个逻辑槽位、初值全零的区间加/区间和树状数组。
func NewRangeSum(n int) (*RangeSumTree, error) {
	b1, err := New(n)
	if err != nil {
		return nil, err
	}
	b2, err := New(n)
	if err != nil {
		return nil, err
	}
	return &RangeSumTree{b1: b1, b2: b2, n: n}, nil
}

// RangeSumFromArray 以初始数组构建，逐元素做单点区间加，O(n log n)。
func RangeSumFromArray(a []int64) (*RangeSumTree, error) {
	if len(a) == 0 {
		return nil, xerrors.ErrEmptyData
	}
	t, err := NewRangeSum(len(a))
	if err != nil {
		return nil, err
	}
	for i, v := range a {
		if err := t.AddRange(i+1, i+1, v); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Len 返回序列的逻辑大小。
func (t *RangeSumTree) Len() int {
	return t.n
}

// AddRange 将区间 [l, r] (1-indexed) 内每个元素加上 delta。
// l > r 视为合法的空区间，不做任何修改。
func (t *RangeSumTree) AddRange(l, r int, delta int64) error {
	if l > r {
		return nil
	}
	if l < 1 || r > t.n {
		return xerrors.ErrIndexOutOfRange.WithContext("l", l).WithContext("r", r).WithContext("size", t.n)
	}
	if err := t.b1.Add(l, delta); err != nil {
		return err
	}
	if err := t.b2.Add(l, delta*int64(l-1)); err != nil {
		return err
	}
	if r+1 <= t.n {
		if err := t.b1.Add(r+1, -delta); err != nil {
			return err
		}
		return t.b2.Add(r+1, -delta*int64(r))
	}
	return nil
}

// PrefixSum 返回前 i 个元素之和。i == 0 返回 0。
func (t *RangeSumTree) PrefixSum(i int) (int64, error) {
	if i < 0 || i > t.n {
		return 0, xerrors.ErrIndexOutOfRange.WithContext("index", i).WithContext("size", t.n)
	}
	s1, err := t.b1.PrefixSum(i)
	if err != nil {
		return 0, err
	}
	s2, err := t.b2.PrefixSum(i)
	if err != nil {
		return 0, err
	}
	return int64(i)*s1 - s2, nil
}

// RangeSum 返回区间 [l, r] 的元素之和。l > r 视为合法的空区间并返回 0。
func (t *RangeSumTree) RangeSum(l, r int) (int64, error) {
	if l > r {
		return 0, nil
	}
	if l < 1 || r > t.n {
		return 0, xerrors.ErrIndexOutOfRange.WithContext("l", l).WithContext("r", r).WithContext("size", t.n)
	}
	hi, err := t.PrefixSum(r)
	if err != nil {
		return 0, err
	}
	lo, err := t.PrefixSum(l - 1)
	if err != nil {
		return 0, err
	}
	return hi - lo, nil
}
