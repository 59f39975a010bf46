// Package metrics 提供基于Prometheus的指标收集
//
// 指标分两类：
//   - HTTP指标：请求总数、耗时分布、处理中的请求数（由middleware.Metrics记录）
//   - 数据库指标：SaveChanges提交次数与耗时（由dbsession记录）
//
// 使用示例：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(metrics.Handler()))
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds）
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method、path（路由模板，如/api/books/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// DBCommitsTotal SaveChanges提交总数（Counter）
	// 标签：result（success/failure）
	DBCommitsTotal *prometheus.CounterVec

	// DBCommitDuration SaveChanges耗时（Histogram）
	DBCommitDuration prometheus.Histogram
)

// InitMetrics 初始化所有Prometheus指标
// 可重复调用，只有第一次生效（promauto重复注册会panic）
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP请求耗时（秒）",
				// 1ms、10ms、100ms、500ms、1s、5s、10s
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

		DBCommitsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_commits_total",
				Help: "数据库提交总数",
			},
			[]string{"result"},
		)

		DBCommitDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "db_commit_duration_seconds",
				Help:    "数据库提交耗时（秒）",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		)
	})
}

// Handler /metrics端点
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveCommit 记录一次SaveChanges
func ObserveCommit(seconds float64, err error) {
	InitMetrics()

	result := "success"
	if err != nil {
		result = "failure"
	}
	DBCommitsTotal.With(prometheus.Labels{"result": result}).Inc()
	DBCommitDuration.Observe(seconds)
}

// ObserveRequest 记录一次HTTP请求
func ObserveRequest(method, path, status string, seconds float64) {
	InitMetrics()

	HTTPRequestsTotal.With(prometheus.Labels{"method": method, "path": path, "status": status}).Inc()
	HTTPRequestDuration.With(prometheus.Labels{"method": method, "path": path}).Observe(seconds)
}
