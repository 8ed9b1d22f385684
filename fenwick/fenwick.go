// Package fenwick 提供了树状数组 (Binary Indexed Tree) 及其区间变体。
// 所有公开接口均为 1-indexed，这是树状数组位运算跳转的自然下标约定；
// 0-indexed 的调用方需要在边界处自行 +1 转换。
package fenwick

import (
	"github.com/wyfcoding/rangetree/xerrors"
)

// Tree (树状数组) 维护一个定长序列的前缀和，支持 O(log N) 的单点加与前缀和查询。
// 在实际应用中，例如累计销量统计、时间桶计数等场景中非常有用。
// 数值语义为纯加法，不做溢出检测，调用方需保证 int64 足以容纳所有元素与增量之和。
type Tree struct {
	bits []int64 // 1-indexed 存储。bits[i] 覆盖长度为 lowbit(i) 的块和。
	n    int     // 序列的逻辑大小。
}

// lowbit 返回 x 的最低有效位，即 x & -x。
func lowbit(x int) int {
	return x & -x
}

// New 创建一个 n 个逻辑槽位、初值全零的树状数组。
// n 必须为正数。
func New(n int) (*Tree, error) {
	if n <= 0 {
		return nil, xerrors.ErrInvalidLength.WithContext("n", n)
	}
	return &Tree{
		bits: make([]int64, n+1),
		n:    n,
	}, nil
}

// FromArray 以 O(n) 从初始数组构建树状数组。
// 先写入 bits[i+1] = a[i]，再将每个下标向其父节点 i+lowbit(i) 传播一次。
func FromArray(a []int64) (*Tree, error) {
	if len(a) == 0 {
		return nil, xerrors.ErrEmptyData
	}
	t, err := New(len(a))
	if err != nil {
		return nil, err
	}
	copy(t.bits[1:], a)
	for i := 1; i <= t.n; i++ {
		parent := i + lowbit(i)
		if parent <= t.n {
			t.bits[parent] += t.bits[i]
		}
	}
	return t, nil
}

// Len 返回序列的逻辑大小。
func (t *Tree) Len() int {
	return t.n
}

// Add 将位置 i (1-indexed) 的元素加上 delta。
// i 超出 [1, n] 时返回 ErrIndexOutOfRange，且不产生任何修改。
func (t *Tree) Add(i int, delta int64) error {
	if i < 1 || i > t.n {
		return xerrors.ErrIndexOutOfRange.WithContext("index", i).WithContext("size", t.n)
	}
	for ; i <= t.n; i += lowbit(i) {
		t.bits[i] += delta
	}
	return nil
}

// PrefixSum 返回前 i 个元素之和。
// i == 0 表示空前缀，返回 0；i 超出 [0, n] 时返回 ErrIndexOutOfRange。
func (t *Tree) PrefixSum(i int) (int64, error) {
	if i < 0 || i > t.n {
		return 0, xerrors.ErrIndexOutOfRange.WithContext("index", i).WithContext("size", t.n)
	}
	var sum int64
	for ; i > 0; i -= lowbit(i) {
		sum += t.bits[i]
	}
	return sum, nil
}

// RangeSum 返回区间 [l, r] 的元素之和。
// l > r 视为合法的空区间并返回 0；其余越界情况返回 ErrIndexOutOfRange。
// 注意该空区间策略与 segtree 的硬错误策略刻意不同。
func (t *Tree) RangeSum(l, r int) (int64, error) {
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
