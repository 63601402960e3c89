// Package metrics 基于Prometheus的指标收集
//
// # 指标类型
//
//   - Counter：只增不减的累计值（请求总数、订单总数）
//   - Gauge：可增可减的瞬时值（正在处理的请求数）
//   - Histogram：观测值分布（查询耗时）
//
// # 使用方式
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	start := time.Now()
//	page, err := repo.List(ctx, ...)
//	metrics.ObserveCatalogQuery("list_books", start, err)
//
// 标签只放低基数的值（操作名、结果、HTTP方法），不要放book_id、user_id。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/api/v1/books/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// RateLimitRejectedTotal 被限流拒绝的请求数
	// 标签：path
	RateLimitRejectedTotal *prometheus.CounterVec

	// 图书目录指标

	// CatalogQueriesTotal 目录查询总数
	// 标签：operation（list_books/list_discounted/search/get_book/price_quote/recommended/popular/top_discounted）、result（success/failure）
	CatalogQueriesTotal *prometheus.CounterVec

	// CatalogQueryDuration 目录查询耗时（含count查询）
	// 标签：operation
	CatalogQueryDuration *prometheus.HistogramVec

	// 订单指标

	// OrdersCreatedTotal 订单创建总数
	OrdersCreatedTotal prometheus.Counter

	// OrdersFailedTotal 订单创建失败总数
	OrdersFailedTotal prometheus.Counter

	// OrderCreationDuration 订单创建耗时
	OrderCreationDuration prometheus.Histogram

	// OrderAmount 订单金额分布（单位：分）
	OrderAmount prometheus.Histogram

	// 评论指标

	// ReviewsPostedTotal 评论总数
	// 标签：rating（1-5）
	ReviewsPostedTotal *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数
	// 标签：routing_key、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，重复调用无副作用
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

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
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	RateLimitRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_rejected_total",
			Help: "被限流拒绝的请求数",
		},
		[]string{"path"},
	)

	CatalogQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "图书目录查询总数",
		},
		[]string{"operation", "result"},
	)

	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "图书目录查询耗时（秒）",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "订单创建总数",
		},
	)

	OrdersFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "订单创建失败总数",
		},
	)

	OrderCreationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_creation_duration_seconds",
			Help:    "订单创建耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2},
		},
	)

	OrderAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_amount_fen",
			Help:    "订单金额分布（分）",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 10), // 10元 ~ 5120元
		},
	)

	ReviewsPostedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_posted_total",
			Help: "评论总数",
		},
		[]string{"rating"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"routing_key", "result"},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}

// Result err为nil时返回success，否则failure
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// ObserveCatalogQuery 记录一次目录查询（次数+耗时）
// 未调用InitMetrics时不做任何事（单元测试不需要初始化指标）
func ObserveCatalogQuery(operation string, start time.Time, err error) {
	if !initialized {
		return
	}
	CatalogQueriesTotal.WithLabelValues(operation, Result(err)).Inc()
	CatalogQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveOrderCreation 记录一次下单结果
func ObserveOrderCreation(start time.Time, total int64, err error) {
	if !initialized {
		return
	}
	OrderCreationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		OrdersFailedTotal.Inc()
		return
	}
	OrdersCreatedTotal.Inc()
	OrderAmount.Observe(float64(total))
}

// ObserveReviewPosted 记录一条新评论
func ObserveReviewPosted(rating string) {
	if !initialized {
		return
	}
	ReviewsPostedTotal.WithLabelValues(rating).Inc()
}

// ObserveMessagePublished 记录一次消息发布
func ObserveMessagePublished(routingKey string, err error) {
	if !initialized {
		return
	}
	MessagesPublishedTotal.WithLabelValues(routingKey, Result(err)).Inc()
}

// ObserveRateLimited 记录一次限流拒绝
func ObserveRateLimited(path string) {
	if !initialized {
		return
	}
	RateLimitRejectedTotal.WithLabelValues(path).Inc()
}
