// Package metrics 封装了基于 Prometheus 的指标采集注册表及预定义的树结构监控指标。
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 封装了指标注册表及预定义的标准监控指标。
type Metrics struct {
	registry *prometheus.Registry // 内部独立的 Prometheus 注册中心

	// 预定义的标准指标，减少各结构的样板代码
	TreeOpsTotal     *prometheus.CounterVec   // 树操作总量 (维度: structure, op, status)
	TreeOpDuration   *prometheus.HistogramVec // 树操作耗时分布 (维度: structure, op)
	TreeBuildSeconds *prometheus.HistogramVec // 构建耗时分布 (维度: structure)
	TreeSize         *prometheus.GaugeVec     // 各结构实例的逻辑大小 (维度: structure)
	BuildInfo        *prometheus.GaugeVec     // 构建信息
}

// NewMetrics 初始化并返回一个新的指标采集器。
// 它会自动注册 Go 运行时指标和进程指标。
func NewMetrics(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: reg}

	m.TreeOpsTotal = m.NewCounterVec(prometheus.CounterOpts{
		Name: "rangetree_operations_total",
		Help: "Total number of tree operations",
	}, []string{"structure", "op", "status"})

	m.TreeOpDuration = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rangetree_operation_duration_seconds",
		Help:    "Tree operation latency in seconds",
		Buckets: prometheus.ExponentialBuckets(1e-7, 4, 12),
	}, []string{"structure", "op"})

	m.TreeBuildSeconds = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rangetree_build_duration_seconds",
		Help:    "Tree construction latency in seconds",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	}, []string{"structure"})

	m.TreeSize = m.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rangetree_size_elements",
		Help: "Logical element count of the most recently built structure",
	}, []string{"structure"})

	slog.Info("unified metrics registry initialized", "service", serviceName)
	return m
}

// NewCounterVec 创建并注册一个新的计数器指标。
func (m *Metrics) NewCounterVec(opts prometheus.CounterOpts, labelNames []string) *prometheus.CounterVec {
	cv := prometheus.NewCounterVec(opts, labelNames)
	m.registry.MustRegister(cv)
	return cv
}

// NewGaugeVec 创建并注册一个新的仪表盘指标。
func (m *Metrics) NewGaugeVec(opts prometheus.GaugeOpts, labelNames []string) *prometheus.GaugeVec {
	gv := prometheus.NewGaugeVec(opts, labelNames)
	m.registry.MustRegister(gv)
	return gv
}

// NewHistogramVec 创建并注册一个新的直方图指标。
func (m *Metrics) NewHistogramVec(opts prometheus.HistogramOpts, labelNames []string) *prometheus.HistogramVec {
	hv := prometheus.NewHistogramVec(opts, labelNames)
	m.registry.MustRegister(hv)
	return hv
}

// RegisterBuildInfo 注册构建信息指标。
func (m *Metrics) RegisterBuildInfo(serviceName, version string) {
	if m == nil || m.BuildInfo != nil {
		return
	}
	if serviceName == "" {
		serviceName = "unknown"
	}
	if version == "" {
		version = "unknown"
	}
	m.BuildInfo = m.NewGaugeVec(prometheus.GaugeOpts{
		Name: "build_info",
		Help: "Build information for the service",
	}, []string{"service", "version"})
	m.BuildInfo.WithLabelValues(serviceName, version).Set(1)
}

// Handler 返回用于暴露指标的 HTTP 处理器。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ExposeHttp 在指定端口启动一个独立的 HTTP 服务器用于暴露指标数据。
// 返回一个清理函数用于优雅关闭该服务器。
func (m *Metrics) ExposeHttp(port string) func() {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: m.Handler(),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server error", "error", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown metrics server", "error", err)
		}
	}
}
