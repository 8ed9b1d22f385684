package instrument

import (
	"sync"

	"github.com/wyfcoding/rangetree/fenwick"
	"github.com/wyfcoding/rangetree/segtree"
)

// SafeTree 用读写锁串行化对 segtree.Tree 的并发访问。
// 核心结构的 tree 数组是就地修改的多步操作，自身不提供原子性，
// 任何并发使用都必须经由这里或调用方自己的锁。
type SafeTree struct {
	mu    sync.RWMutex
	inner *segtree.Tree
}

// NewSafeTree 构建并发安全的线段树。
func NewSafeTree(arr []int64, agg segtree.Aggregate) (*SafeTree, error) {
	inner, err := segtree.Build(arr, agg)
	if err != nil {
		return nil, err
	}
	return &SafeTree{inner: inner}, nil
}

// Update 加写锁后单点更新。
func (s *SafeTree) Update(idx int, val int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Update(idx, val)
}

// Query 加读锁后区间查询。静态线段树的查询不修改内部状态，读锁即可。
func (s *SafeTree) Query(left, right int) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Query(left, right)
}

// Len 返回序列的逻辑大小。
func (s *SafeTree) Len() int {
	return s.inner.Len()
}

// SafeLazyTree 用互斥锁串行化对 segtree.LazyTree 的并发访问。
// 懒标记线段树的查询会下推标记、修改内部数组，因此查询同样需要写锁，
// 这里直接使用 sync.Mutex 而非读写锁。
type SafeLazyTree struct {
	mu    sync.Mutex
	inner *segtree.LazyTree
}

// NewSafeLazyTree 构建并发安全的懒标记线段树。
func NewSafeLazyTree(arr []int64) (*SafeLazyTree, error) {
	inner, err := segtree.BuildLazy(arr)
	if err != nil {
		return nil, err
	}
	return &SafeLazyTree{inner: inner}, nil
}

// UpdateRange 加锁后区间加。
func (s *SafeLazyTree) UpdateRange(left, right int, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.UpdateRange(left, right, delta)
}

// Query 加锁后区间和查询。
func (s *SafeLazyTree) Query(left, right int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Query(left, right)
}

// Len 返回序列的逻辑大小。
func (s *SafeLazyTree) Len() int {
	return s.inner.Len()
}

// SafeFenwick 用读写锁串行化对 fenwick.Tree 的并发访问。
type SafeFenwick struct {
	mu    sync.RWMutex
	inner *fenwick.Tree
}

// NewSafeFenwick 从初始数组构建并发安全的树状数组。
func NewSafeFenwick(arr []int64) (*SafeFenwick, error) {
	inner, err := fenwick.FromArray(arr)
	if err != nil {
		return nil, err
	}
	return &SafeFenwick{inner: inner}, nil
}

// Add 加写锁后单点加。
func (s *SafeFenwick) Add(i int, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Add(i, delta)
}

// PrefixSum 加读锁后前缀和查询。
func (s *SafeFenwick) PrefixSum(i int) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.PrefixSum(i)
}

// RangeSum 加读锁后区间和查询。
func (s *SafeFenwick) RangeSum(l, r int) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.RangeSum(l, r)
}

// Len 返回序列的逻辑大小。
func (s *SafeFenwick) Len() int {
	return s.inner.Len()
}
