package segtree

import (
	"github.com/wyfcoding/rangetree/xerrors"
)

// Tree (线段树) 是一种树状数据结构，用于高效地处理数组或序列的区间查询和单点更新操作。
// 它的每个节点都代表着数组的一个区间，根节点代表整个数组，叶子节点代表数组中的单个元素。
// 更新和查询操作的时间复杂度均为 O(log N)。
// 在实际应用中，例如库存管理（查询某个商品分类的总库存）、销量统计（查询某段时间内的总销量）等场景中非常有用。
//
// 结构本身不加锁，单个逻辑操作必须端到端串行执行；
// 需要并发访问时使用 instrument.SafeTree 或在外部自行加读写锁。
type Tree struct {
	tree []int64   // 存储线段树的节点值。通常需要 4*N 的空间来构建树。
	n    int       // 原始数组的逻辑大小。
	agg  Aggregate // 聚合函数，决定 Combine 与单位元。
}

// Build 以 O(n) 从初始数组构建线段树。
// arr 不能为空；agg 必须为已定义的聚合函数。
func Build(arr []int64, agg Aggregate) (*Tree, error) {
	if len(arr) == 0 {
		return nil, xerrors.ErrEmptyData
	}
	if !agg.valid() {
		return nil, xerrors.ErrInvalidAggregate.WithContext("aggregate", int(agg))
	}
	st := &Tree{
		tree: make([]int64, 4*len(arr)),
		n:    len(arr),
		agg:  agg,
	}
	st.build(arr, 1, 0, st.n-1)
	return st, nil
}

// build 递归构建：分裂 [start, end]，叶子取原值，内部节点取左右子区间的聚合。
func (st *Tree) build(arr []int64, node, start, end int) {
	if start == end {
		st.tree[node] = arr[start]
		return
	}
	mid := (start + end) / 2
	st.build(arr, 2*node, start, mid)
	st.build(arr, 2*node+1, mid+1, end)
	st.tree[node] = st.agg.Combine(st.tree[2*node], st.tree[2*node+1])
}

// Len 返回序列的逻辑大小。
func (st *Tree) Len() int {
	return st.n
}

// Update 单点更新原始数组中指定索引处的元素，并相应地更新线段树。
// idx: 0-indexed 索引，超出 [0, n-1] 时返回 ErrIndexOutOfRange，且不产生任何修改。
// val: 元素的新值。
func (st *Tree) Update(idx int, val int64) error {
	if idx < 0 || idx >= st.n {
		return xerrors.ErrIndexOutOfRange.WithContext("index", idx).WithContext("size", st.n)
	}
	st.update(1, 0, st.n-1, idx, val)
	return nil
}

// update 递归下行到目标叶子写入新值，回溯时重算沿途每个祖先的聚合。
func (st *Tree) update(node, start, end, idx int, val int64) {
	if start == end {
		st.tree[node] = val
		return
	}
	mid := (start + end) / 2
	if idx <= mid {
		st.update(2*node, start, mid, idx, val)
	} else {
		st.update(2*node+1, mid+1, end, idx, val)
	}
	st.tree[node] = st.agg.Combine(st.tree[2*node], st.tree[2*node+1])
}

// Query 区间查询 [left, right] 的聚合值。
// left > right 或任一边界超出 [0, n-1] 时返回 ErrInvalidRange；
// 倒置区间在此是硬错误而非空区间，以便尽早暴露调用方的边界 bug
// (与 fenwick.RangeSum 的空区间返回 0 策略刻意不同)。
func (st *Tree) Query(left, right int) (int64, error) {
	if left > right || left < 0 || right >= st.n {
		return 0, xerrors.ErrInvalidRange.WithContext("left", left).WithContext("right", right).WithContext("size", st.n)
	}
	return st.query(1, 0, st.n-1, left, right), nil
}

// query 递归查询：无重叠返回单位元，完全包含直接取节点值，部分重叠递归两侧后合并。
func (st *Tree) query(node, start, end, left, right int) int64 {
	if right < start || end < left {
		return st.agg.Identity()
	}
	if left <= start && end <= right {
		return st.tree[node]
	}
	mid := (start + end) / 2
	leftVal := st.query(2*node, start, mid, left, right)
	rightVal := st.query(2*node+1, mid+1, end, left, right)
	return st.agg.Combine(leftVal, rightVal)
}
