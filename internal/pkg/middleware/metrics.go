package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsBuilder 统计接口的响应时间、访问次数和正在处理的请求数
type MetricsBuilder struct {
	summaryVec *prometheus.SummaryVec
	counterVec *prometheus.CounterVec
	inFlight   prometheus.Gauge
}

func NewMetricsBuilder() *MetricsBuilder {
	return NewMetricsBuilderWithRegisterer(prometheus.DefaultRegisterer)
}

// NewMetricsBuilderWithRegisterer 测试里面用独立的 Registry，避免重复注册
func NewMetricsBuilderWithRegisterer(reg prometheus.Registerer) *MetricsBuilder {
	factory := promauto.With(reg)
	labels := []string{"method", "path", "status_code"}
	return &MetricsBuilder{
		summaryVec: factory.NewSummaryVec(prometheus.SummaryOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.99: 0.001,
			},
		}, labels),
		counterVec: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, labels),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests being served",
		}),
	}
}

func (a *MetricsBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		a.inFlight.Inc()
		defer a.inFlight.Dec()

		ctx.Next()

		// 没有匹配上路由的请求统一记录，避免 path 标签爆炸
		path := ctx.FullPath()
		if path == "" {
			path = "unknown"
		}
		values := []string{ctx.Request.Method, path, strconv.Itoa(ctx.Writer.Status())}
		a.summaryVec.WithLabelValues(values...).Observe(time.Since(start).Seconds())
		a.counterVec.WithLabelValues(values...).Inc()
	}
}
