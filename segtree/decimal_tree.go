package segtree

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/rangetree/xerrors"
)

// DecimalTree 以 decimal.Decimal 为叶子值的区间和线段树。
// 用于对金额做精确聚合的场景（订单簿深度、分账汇总），避免浮点漂移。
// 区间策略与 Tree 一致：0-indexed，倒置或越界区间为硬错误。
type DecimalTree struct {
	tree []decimal.Decimal
	n    int
}

// NewDecimalTree 以 O(n) 从初始数组构建精确小数线段树。
func NewDecimalTree(arr []decimal.Decimal) (*DecimalTree, error) {
	if len(arr) == 0 {
		return nil, xerrors.ErrEmptyData
	}
	st := &DecimalTree{
		tree: make([]decimal.Decimal, 4*len(arr)),
		n:    len(arr),
	}
	st.build(arr, 0, 0, st.n-1)

	slog.Info("decimal segment tree built", "size", st.n)
	return st, nil
}

// build 递归构建。此变体沿用 0 号根与 2i+1/2i+2 的子节点编码。
func (st *DecimalTree) build(arr []decimal.Decimal, node, start, end int) {
	if start == end {
		st.tree[node] = arr[start]
		return
	}
	mid := (start + end) / 2
	leftChild := 2*node + 1
	rightChild := 2*node + 2
	st.build(arr, leftChild, start, mid)
	st.build(arr, rightChild, mid+1, end)
	st.tree[node] = st.tree[leftChild].Add(st.tree[rightChild])
}

// Len 返回序列的逻辑大小。
func (st *DecimalTree) Len() int {
	return st.n
}

// Update 更新指定位置的值。
func (st *DecimalTree) Update(index int, value decimal.Decimal) error {
	if index < 0 || index >= st.n {
		return xerrors.ErrIndexOutOfRange.WithContext("index", index).WithContext("size", st.n)
	}
	st.update(0, 0, st.n-1, index, value)
	return nil
}

func (st *DecimalTree) update(node, start, end, index int, value decimal.Decimal) {
	if start == end {
		st.tree[node] = value
		return
	}
	mid := (start + end) / 2
	leftChild := 2*node + 1
	rightChild := 2*node + 2
	if index <= mid {
		st.update(leftChild, start, mid, index, value)
	} else {
		st.update(rightChild, mid+1, end, index, value)
	}
	st.tree[node] = st.tree[leftChild].Add(st.tree[rightChild])
}

// Query 查询区间 [left, right] 的精确和。
func (st *DecimalTree) Query(left, right int) (decimal.Decimal, error) {
	if left > right || left < 0 || right >= st.n {
		return decimal.Zero, xerrors.ErrInvalidRange.WithContext("left", left).WithContext("right", right).WithContext("size", st.n)
	}
	return st.query(0, 0, st.n-1, left, right), nil
}

func (st *DecimalTree) query(node, start, end, left, right int) decimal.Decimal {
	if right < start || end < left {
		return decimal.Zero
	}
	if left <= start && end <= right {
		return st.tree[node]
	}
	mid := (start + end) / 2
	leftSum := st.query(2*node+1, start, mid, left, right)
	rightSum := st.query(2*node+2, mid+1, end, left, right)
	return leftSum.Add(rightSum)
}
