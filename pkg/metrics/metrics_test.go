package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitMetrics 测试指标初始化（重复调用不能panic）
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics()

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInProgress)
	assert.NotNil(t, DBCommitsTotal)
	assert.NotNil(t, DBCommitDuration)
}

// TestObserveCommit 测试提交指标按结果分类
func TestObserveCommit(t *testing.T) {
	InitMetrics()
	success := getCounterVecValue(t, DBCommitsTotal, prometheus.Labels{"result": "success"})
	failure := getCounterVecValue(t, DBCommitsTotal, prometheus.Labels{"result": "failure"})
	count := getHistogramCount(t, DBCommitDuration)

	ObserveCommit(0.002, nil)
	ObserveCommit(0.003, nil)
	ObserveCommit(0.010, errors.New("constraint failed"))

	assert.Equal(t, success+2, getCounterVecValue(t, DBCommitsTotal, prometheus.Labels{"result": "success"}))
	assert.Equal(t, failure+1, getCounterVecValue(t, DBCommitsTotal, prometheus.Labels{"result": "failure"}))
	assert.Equal(t, count+3, getHistogramCount(t, DBCommitDuration))
}

// TestObserveRequest 测试HTTP请求指标
func TestObserveRequest(t *testing.T) {
	InitMetrics()
	labels := prometheus.Labels{"method": "GET", "path": "/api/books/:id", "status": "404"}
	before := getCounterVecValue(t, HTTPRequestsTotal, labels)

	ObserveRequest("GET", "/api/books/:id", "404", 0.01)
	ObserveRequest("GET", "/api/books/:id", "404", 0.02)

	assert.Equal(t, before+2, getCounterVecValue(t, HTTPRequestsTotal, labels))
}

// TestHandler 测试/metrics端点输出
func TestHandler(t *testing.T) {
	ObserveCommit(0.001, nil)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "db_commits_total")
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels prometheus.Labels) float64 {
	var metric dto.Metric
	require.NoError(t, counterVec.With(labels).Write(&metric))
	return metric.Counter.GetValue()
}

// 辅助函数：获取Histogram观测次数
func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	require.NoError(t, histogram.Write(&metric))
	return metric.Histogram.GetSampleCount()
}
