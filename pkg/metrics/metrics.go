// Package metrics 基于Prometheus的指标
//
// 指标分三组：
//   - HTTP：请求总数、耗时、进行中的请求数（由gin中间件记录）
//   - 目录：图书创建、关联解析（复用/新建）、删除作者或分类时解除的图书关联
//   - 熔断器：状态和请求结果（Redis调用）
//
// 通过/metrics端点暴露，Prometheus定时抓取。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// HTTPRequestsTotal 标签：method、path、status
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTPRequestDuration 标签：method、path
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInProgress prometheus.Gauge

	BooksCreatedTotal prometheus.Counter
	// AssociationsResolvedTotal 标签：entity(author/genre)、outcome(reused/created)
	AssociationsResolvedTotal *prometheus.CounterVec
	// BooksDetachedTotal 标签：entity(author/genre)
	BooksDetachedTotal *prometheus.CounterVec
	SearchDuration     prometheus.Histogram

	// CircuitBreakerState 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec
	// CircuitBreakerRequests 标签：name、result(success/failure/rejected)
	CircuitBreakerRequests *prometheus.CounterVec
)

// InitMetrics 注册所有指标，可重复调用
func InitMetrics() {
	once.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		BooksCreatedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "catalog_books_created_total",
				Help: "创建的图书总数",
			},
		)

		AssociationsResolvedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_associations_resolved_total",
				Help: "按自然键解析作者/分类的次数",
			},
			[]string{"entity", "outcome"},
		)

		BooksDetachedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_detached_total",
				Help: "删除作者/分类前解除关联的图书数",
			},
			[]string{"entity"},
		)

		SearchDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "catalog_search_duration_seconds",
				Help:    "图书搜索耗时（秒）",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
			},
			[]string{"name"},
		)

		CircuitBreakerRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_requests_total",
				Help: "熔断器请求总数",
			},
			[]string{"name", "result"},
		)
	})
}

// RecordResolve 记录一次关联解析
func RecordResolve(entity string, created bool) {
	InitMetrics()
	outcome := "reused"
	if created {
		outcome = "created"
	}
	AssociationsResolvedTotal.WithLabelValues(entity, outcome).Inc()
}

// RecordDetached 记录解除关联的图书数
func RecordDetached(entity string, n int) {
	InitMetrics()
	BooksDetachedTotal.WithLabelValues(entity).Add(float64(n))
}

// RecordBookCreated 记录图书创建
func RecordBookCreated() {
	InitMetrics()
	BooksCreatedTotal.Inc()
}

// RecordCircuitBreaker 记录熔断器请求结果
func RecordCircuitBreaker(name, result string) {
	InitMetrics()
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// SetCircuitBreakerState 更新熔断器状态
func SetCircuitBreakerState(name string, state int) {
	InitMetrics()
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// ObserveSearch 记录搜索耗时
func ObserveSearch(seconds float64) {
	InitMetrics()
	SearchDuration.Observe(seconds)
}
