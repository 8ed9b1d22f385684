package segtree

import (
	"github.com/wyfcoding/rangetree/xerrors"
)

// persistentNode 可持久化线段树节点。
type persistentNode struct {
	L, R int   // 左右子节点在 nodes 数组中的索引。
	Sum  int64 // 该区间的元素和。
}

// PersistentTree 可持久化线段树 (主席树)。
// 每次点更新都以 O(log N) 个新节点派生一个新版本，旧版本保持只读可查，
// 适用于历史快照查询、审计回放场景。
// 公开接口与其它线段树一致为 0-indexed。
type PersistentTree struct {
	roots []int            // 每个版本的根节点索引。
	nodes []persistentNode // 静态数组模拟动态节点，0 号节点作为空节点。
	n     int              // 序列的逻辑大小。
}

// NewPersistent 创建一棵空的可持久化线段树。
// maxOp: 预估的更新次数，用于分配初始内存，空间复杂度 O(M log N)。
func NewPersistent(n, maxOp int) (*PersistentTree, error) {
	if n <= 0 {
		return nil, xerrors.ErrInvalidLength.WithContext("n", n)
	}
	if maxOp < 0 {
		maxOp = 0
	}
	expectedNodes := 1 + maxOp*40
	return &PersistentTree{
		roots: make([]int, 0),
		nodes: make([]persistentNode, 1, expectedNodes),
		n:     n,
	}, nil
}

// build 构建初始空树 (全 0)。
func (t *PersistentTree) build(l, r int) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, persistentNode{})
	if l < r {
		mid := (l + r) >> 1
		t.nodes[idx].L = t.build(l, mid)
		t.nodes[idx].R = t.build(mid+1, r)
	}
	return idx
}

// update 在旧版本 prevRoot 基础上，将 pos 位置的值加上 delta，返回新根。
func (t *PersistentTree) update(prevRoot, l, r, pos int, delta int64) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, t.nodes[prevRoot]) // 复制旧节点。
	t.nodes[idx].Sum += delta

	if l < r {
		mid := (l + r) >> 1
		if pos <= mid {
			t.nodes[idx].L = t.update(t.nodes[prevRoot].L, l, mid, pos, delta)
		} else {
			t.nodes[idx].R = t.update(t.nodes[prevRoot].R, mid+1, r, pos, delta)
		}
	}
	return idx
}

// Len 返回序列的逻辑大小。
func (t *PersistentTree) Len() int {
	return t.n
}

// PushAdd 基于最新版本将位置 pos (0-indexed) 的元素加上 delta，产生新版本。
// 返回新版本号。
func (t *PersistentTree) PushAdd(pos int, delta int64) (int, error) {
	if pos < 0 || pos >= t.n {
		return 0, xerrors.ErrIndexOutOfRange.WithContext("index", pos).WithContext("size", t.n)
	}
	var prev int
	if len(t.roots) > 0 {
		prev = t.roots[len(t.roots)-1]
	} else {
		prev = t.build(1, t.n)
	}
	newRoot := t.update(prev, 1, t.n, pos+1, delta)
	t.roots = append(t.roots, newRoot)
	return len(t.roots) - 1, nil
}

// QueryRange 查询版本 version 中 [left, right] (0-indexed) 区间的元素和。
// 不存在的版本返回 ErrVersionNotFound；区间策略与 Tree 一致。
func (t *PersistentTree) QueryRange(version, left, right int) (int64, error) {
	if version < 0 || version >= len(t.roots) {
		return 0, xerrors.ErrVersionNotFound.WithContext("version", version).WithContext("versions", len(t.roots))
	}
	if left > right || left < 0 || right >= t.n {
		return 0, xerrors.ErrInvalidRange.WithContext("left", left).WithContext("right", right).WithContext("size", t.n)
	}
	return t.query(t.roots[version], 1, t.n, left+1, right+1), nil
}

func (t *PersistentTree) query(nodeIdx, l, r, ql, qr int) int64 {
	if nodeIdx == 0 || ql > r || qr < l {
		return 0
	}
	if ql <= l && r <= qr {
		return t.nodes[nodeIdx].Sum
	}
	mid := (l + r) >> 1
	return t.query(t.nodes[nodeIdx].L, l, mid, ql, qr) +
		t.query(t.nodes[nodeIdx].R, mid+1, r, ql, qr)
}

// CurrentVersion 获取当前最新版本号，尚无版本时返回 -1。
func (t *PersistentTree) CurrentVersion() int {
	return len(t.roots) - 1
}
