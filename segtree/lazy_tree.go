package segtree

import (
	"github.com/wyfcoding/rangetree/xerrors"
)

// LazyTree 带懒标记的线段树，在静态线段树之上支持 O(log N) 的区间加与区间和查询。
// lazy[node] != 0 表示该节点覆盖的每个元素都有一个待下推的增量，
// 该增量已经折算进 tree[node]，但尚未进入子节点的 tree 或 lazy。
// 任何操作在递归越过一个被部分覆盖的节点之前，必须先将其懒标记下推，
// 这是懒传播正确性的唯一关键不变量。
//
// 懒标记的合并依赖加法可逆可叠加，因此该变体固定为区间和；
// min/max/gcd 等聚合请使用不带区间更新的 Tree。
type LazyTree struct {
	tree []int64 // 节点聚合值，懒标记已折算在内。
	lazy []int64 // 与 tree 平行的待下推增量数组。
	n    int
}

// BuildLazy 以 O(n) 从初始数组构建懒标记线段树。
func BuildLazy(arr []int64) (*LazyTree, error) {
	if len(arr) == 0 {
		return nil, xerrors.ErrEmptyData
	}
	st := &LazyTree{
		tree: make([]int64, 4*len(arr)),
		lazy: make([]int64, 4*len(arr)),
		n:    len(arr),
	}
	st.build(arr, 1, 0, st.n-1)
	return st, nil
}

func (st *LazyTree) build(arr []int64, node, start, end int) {
	if start == end {
		st.tree[node] = arr[start]
		return
	}
	mid := (start + end) / 2
	st.build(arr, 2*node, start, mid)
	st.build(arr, 2*node+1, mid+1, end)
	st.tree[node] = st.tree[2*node] + st.tree[2*node+1]
}

// Len 返回序列的逻辑大小。
func (st *LazyTree) Len() int {
	return st.n
}

// push 将节点的懒标记下推到两个子节点并清除。
// 叶子节点没有子节点，只需清除标记：其值在打标记时已直接折算进 tree。
// 叶子与内部节点的区分在纯加法下数值上无害，但推广到非加法算子时是正确性前提。
func (st *LazyTree) push(node, start, end int) {
	if st.lazy[node] == 0 {
		return
	}
	if start != end {
		mid := (start + end) / 2
		left, right := 2*node, 2*node+1
		st.lazy[left] += st.lazy[node]
		st.tree[left] += st.lazy[node] * int64(mid-start+1)
		st.lazy[right] += st.lazy[node]
		st.tree[right] += st.lazy[node] * int64(end-mid)
	}
	st.lazy[node] = 0
}

// UpdateRange 将区间 [left, right] 内每个元素加上 delta。
// 区间边界策略与 Query 相同：倒置或越界返回 ErrInvalidRange，且不产生任何修改。
func (st *LazyTree) UpdateRange(left, right int, delta int64) error {
	if left > right || left < 0 || right >= st.n {
		return xerrors.ErrInvalidRange.WithContext("left", left).WithContext("right", right).WithContext("size", st.n)
	}
	st.updateRange(1, 0, st.n-1, left, right, delta)
	return nil
}

func (st *LazyTree) updateRange(node, start, end, left, right int, delta int64) {
	// 无重叠。
	if right < start || end < left {
		return
	}
	// 完全包含：折算进节点聚合并打懒标记，不再下行。
	if left <= start && end <= right {
		st.tree[node] += delta * int64(end-start+1)
		st.lazy[node] += delta
		return
	}
	// 部分重叠：先下推旧标记再递归，回溯时重算节点聚合。
	st.push(node, start, end)
	mid := (start + end) / 2
	st.updateRange(2*node, start, mid, left, right, delta)
	st.updateRange(2*node+1, mid+1, end, left, right, delta)
	st.tree[node] = st.tree[2*node] + st.tree[2*node+1]
}

// Query 区间查询 [left, right] 的元素之和。
// 倒置或越界返回 ErrInvalidRange。
func (st *LazyTree) Query(left, right int) (int64, error) {
	if left > right || left < 0 || right >= st.n {
		return 0, xerrors.ErrInvalidRange.WithContext("left", left).WithContext("right", right).WithContext("size", st.n)
	}
	return st.query(1, 0, st.n-1, left, right), nil
}

func (st *LazyTree) query(node, start, end, left, right int) int64 {
	if right < start || end < left {
		return 0
	}
	if left <= start && end <= right {
		return st.tree[node]
	}
	st.push(node, start, end)
	mid := (start + end) / 2
	return st.query(2*node, start, mid, left, right) +
		st.query(2*node+1, mid+1, end, left, right)
}
