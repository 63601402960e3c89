package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不能panic(重复注册)

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInProgress)
	assert.NotNil(t, CatalogQueriesTotal)
	assert.NotNil(t, CatalogQueryDuration)
	assert.NotNil(t, OrdersCreatedTotal)
	assert.NotNil(t, MessagesPublishedTotal)
}

func TestObserveCatalogQuery(t *testing.T) {
	InitMetrics()

	before := getCounterVecValue(t, CatalogQueriesTotal, map[string]string{"operation": "search", "result": "success"})
	failedBefore := getCounterVecValue(t, CatalogQueriesTotal, map[string]string{"operation": "search", "result": "failure"})

	ObserveCatalogQuery("search", time.Now(), nil)
	ObserveCatalogQuery("search", time.Now(), nil)
	ObserveCatalogQuery("search", time.Now(), errors.New("db down"))

	assert.Equal(t, before+2, getCounterVecValue(t, CatalogQueriesTotal, map[string]string{"operation": "search", "result": "success"}))
	assert.Equal(t, failedBefore+1, getCounterVecValue(t, CatalogQueriesTotal, map[string]string{"operation": "search", "result": "failure"}))
	assert.GreaterOrEqual(t, getHistogramVecCount(t, CatalogQueryDuration, map[string]string{"operation": "search"}), uint64(3))
}

func TestObserveOrderCreation(t *testing.T) {
	InitMetrics()

	created := getCounterValue(t, OrdersCreatedTotal)
	failed := getCounterValue(t, OrdersFailedTotal)
	amounts := getHistogramCount(t, OrderAmount)

	ObserveOrderCreation(time.Now(), 5900, nil)
	ObserveOrderCreation(time.Now(), 0, errors.New("图书不存在"))

	assert.Equal(t, created+1, getCounterValue(t, OrdersCreatedTotal))
	assert.Equal(t, failed+1, getCounterValue(t, OrdersFailedTotal))
	assert.Equal(t, amounts+1, getHistogramCount(t, OrderAmount))
}

func TestGauge(t *testing.T) {
	InitMetrics()

	before := getGaugeValue(t, HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)
	assert.Equal(t, before+1, getGaugeValue(t, HTTPRequestsInProgress))
	DecGauge(HTTPRequestsInProgress)
}

func TestResult(t *testing.T) {
	assert.Equal(t, "success", Result(nil))
	assert.Equal(t, "failure", Result(errors.New("x")))
}

// 辅助函数：获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	require.NoError(t, counter.Write(&metric))
	return metric.Counter.GetValue()
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	require.NoError(t, counterVec.With(labels).Write(&metric))
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	require.NoError(t, gauge.Write(&metric))
	return metric.Gauge.GetValue()
}

// 辅助函数：获取Histogram观测次数
func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	require.NoError(t, histogram.Write(&metric))
	return metric.Histogram.GetSampleCount()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	require.NoError(t, histogram.(prometheus.Histogram).Write(&metric))
	return metric.Histogram.GetSampleCount()
}
