package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不会重复注册

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInProgress)
	assert.NotNil(t, AssociationsResolvedTotal)
	assert.NotNil(t, CircuitBreakerState)
}

func TestRecordResolve(t *testing.T) {
	InitMetrics()
	before := counterVecValue(t, AssociationsResolvedTotal, "genre", "reused")

	RecordResolve("genre", false)
	RecordResolve("genre", false)
	RecordResolve("genre", true)

	assert.Equal(t, before+2, counterVecValue(t, AssociationsResolvedTotal, "genre", "reused"))
}

func TestRecordDetached(t *testing.T) {
	InitMetrics()
	before := counterVecValue(t, BooksDetachedTotal, "author")

	RecordDetached("author", 3)

	assert.Equal(t, before+3, counterVecValue(t, BooksDetachedTotal, "author"))
}

func TestCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("redis-session", 1)

	var m dto.Metric
	require.NoError(t, CircuitBreakerState.WithLabelValues("redis-session").Write(&m))
	assert.Equal(t, float64(1), m.GetGauge().GetValue())
}

func TestObserveSearch(t *testing.T) {
	InitMetrics()
	before := histogramCount(t, SearchDuration)

	ObserveSearch(0.02)
	ObserveSearch(0.3)

	assert.Equal(t, before+2, histogramCount(t, SearchDuration))
}

func counterVecValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, vec.WithLabelValues(labels...).Write(&m))
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.GetHistogram().GetSampleCount()
}
