// Package instrument 提供了树结构的可观测性装饰器与并发安全包装。
// 核心结构保持无锁无埋点，装饰器在外层补齐指标、追踪与日志，
// 以免 O(log N) 的热路径为不需要可观测性的调用方买单。
package instrument

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wyfcoding/rangetree/fenwick"
	"github.com/wyfcoding/rangetree/logging"
	"github.com/wyfcoding/rangetree/metrics"
	"github.com/wyfcoding/rangetree/segtree"
)

const tracerName = "github.com/wyfcoding/rangetree/instrument"

// observe 统一记录一次操作的计数与耗时。
func observe(m *metrics.Metrics, structure, op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.TreeOpsTotal.WithLabelValues(structure, op, status).Inc()
	m.TreeOpDuration.WithLabelValues(structure, op).Observe(time.Since(start).Seconds())
}

// endSpan 按操作结果关闭 span。
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// SegmentTree 是 segtree.Tree 的可观测性装饰器。
type SegmentTree struct {
	inner   *segtree.Tree
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// NewSegmentTree 构建线段树并记录构建耗时、大小与追踪信息。
func NewSegmentTree(ctx context.Context, arr []int64, agg segtree.Aggregate, m *metrics.Metrics) (*SegmentTree, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "segtree.Build",
		trace.WithAttributes(
			attribute.Int("size", len(arr)),
			attribute.String("aggregate", agg.String()),
		),
	)
	start := time.Now()
	inner, err := segtree.Build(arr, agg)
	endSpan(span, err)
	if err != nil {
		m.TreeOpsTotal.WithLabelValues("segtree", "build", "error").Inc()
		return nil, err
	}
	m.TreeBuildSeconds.WithLabelValues("segtree").Observe(time.Since(start).Seconds())
	m.TreeSize.WithLabelValues("segtree").Set(float64(inner.Len()))
	logging.Info(ctx, "segment tree built", "size", inner.Len(), "aggregate", agg.String())
	return &SegmentTree{
		inner:   inner,
		metrics: m,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// Update 单点更新并记录指标。
func (s *SegmentTree) Update(ctx context.Context, idx int, val int64) error {
	_, span := s.tracer.Start(ctx, "segtree.Update",
		trace.WithAttributes(attribute.Int("index", idx)))
	start := time.Now()
	err := s.inner.Update(idx, val)
	endSpan(span, err)
	observe(s.metrics, "segtree", "update", start, err)
	return err
}

// Query 区间查询并记录指标。
func (s *SegmentTree) Query(ctx context.Context, left, right int) (int64, error) {
	_, span := s.tracer.Start(ctx, "segtree.Query",
		trace.WithAttributes(attribute.Int("left", left), attribute.Int("right", right)))
	start := time.Now()
	val, err := s.inner.Query(left, right)
	endSpan(span, err)
	observe(s.metrics, "segtree", "query", start, err)
	return val, err
}

// LazySegmentTree 是 segtree.LazyTree 的可观测性装饰器。
type LazySegmentTree struct {
	inner   *segtree.LazyTree
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// NewLazySegmentTree 构建懒标记线段树并记录构建耗时与大小。
func NewLazySegmentTree(ctx context.Context, arr []int64, m *metrics.Metrics) (*LazySegmentTree, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "segtree.BuildLazy",
		trace.WithAttributes(attribute.Int("size", len(arr))))
	start := time.Now()
	inner, err := segtree.BuildLazy(arr)
	endSpan(span, err)
	if err != nil {
		m.TreeOpsTotal.WithLabelValues("lazytree", "build", "error").Inc()
		return nil, err
	}
	m.TreeBuildSeconds.WithLabelValues("lazytree").Observe(time.Since(start).Seconds())
	m.TreeSize.WithLabelValues("lazytree").Set(float64(inner.Len()))
	logging.Info(ctx, "lazy segment tree built", "size", inner.Len())
	return &LazySegmentTree{
		inner:   inner,
		metrics: m,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// UpdateRange 区间加并记录指标。
func (s *LazySegmentTree) UpdateRange(ctx context.Context, left, right int, delta int64) error {
	_, span := s.tracer.Start(ctx, "segtree.UpdateRange",
		trace.WithAttributes(attribute.Int("left", left), attribute.Int("right", right)))
	start := time.Now()
	err := s.inner.UpdateRange(left, right, delta)
	endSpan(span, err)
	observe(s.metrics, "lazytree", "update_range", start, err)
	return err
}

// Query 区间和查询并记录指标。
func (s *LazySegmentTree) Query(ctx context.Context, left, right int) (int64, error) {
	_, span := s.tracer.Start(ctx, "segtree.LazyQuery",
		trace.WithAttributes(attribute.Int("left", left), attribute.Int("right", right)))
	start := time.Now()
	val, err := s.inner.Query(left, right)
	endSpan(span, err)
	observe(s.metrics, "lazytree", "query", start, err)
	return val, err
}

// Fenwick 是 fenwick.Tree 的可观测性装饰器。
type Fenwick struct {
	inner   *fenwick.Tree
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// NewFenwick 构建树状数组并记录构建耗时与大小。
func NewFenwick(ctx context.Context, arr []int64, m *metrics.Metrics) (*Fenwick, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "fenwick.FromArray",
		trace.WithAttributes(attribute.Int("size", len(arr))))
	start := time.Now()
	inner, err := fenwick.FromArray(arr)
	endSpan(span, err)
	if err != nil {
		m.TreeOpsTotal.WithLabelValues("fenwick", "build", "error").Inc()
		return nil, err
	}
	m.TreeBuildSeconds.WithLabelValues("fenwick").Observe(time.Since(start).Seconds())
	m.TreeSize.WithLabelValues("fenwick").Set(float64(inner.Len()))
	logging.Info(ctx, "fenwick tree built", "size", inner.Len())
	return &Fenwick{
		inner:   inner,
		metrics: m,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// Add 单点加并记录指标。
func (f *Fenwick) Add(ctx context.Context, i int, delta int64) error {
	_, span := f.tracer.Start(ctx, "fenwick.Add",
		trace.WithAttributes(attribute.Int("index", i)))
	start := time.Now()
	err := f.inner.Add(i, delta)
	endSpan(span, err)
	observe(f.metrics, "fenwick", "add", start, err)
	return err
}

// RangeSum 区间和查询并记录指标。
func (f *Fenwick) RangeSum(ctx context.Context, l, r int) (int64, error) {
	_, span := f.tracer.Start(ctx, "fenwick.RangeSum",
		trace.WithAttributes(attribute.Int("l", l), attribute.Int("r", r)))
	start := time.Now()
	val, err := f.inner.RangeSum(l, r)
	endSpan(span, err)
	observe(f.metrics, "fenwick", "range_sum", start, err)
	return val, err
}

// PrefixSum 前缀和查询并记录指标。
func (f *Fenwick) PrefixSum(ctx context.Context, i int) (int64, error) {
	_, span := f.tracer.Start(ctx, "fenwick.PrefixSum",
		trace.WithAttributes(attribute.Int("index", i)))
	start := time.Now()
	val, err := f.inner.PrefixSum(i)
	endSpan(span, err)
	observe(f.metrics, "fenwick", "prefix_sum", start, err)
	return val, err
}
