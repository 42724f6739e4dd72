package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records HTTP request metrics for Prometheus.
//
// Exposed series:
//   - <namespace>_http_request_duration_seconds{method,route,status}
//   - <namespace>_http_requests_inflight
//   - <namespace>_http_request_errors_total{method,route,status} (4xx/5xx)
type Metrics struct {
	gatherer    prometheus.Gatherer
	reqDuration *prometheus.HistogramVec
	reqInflight prometheus.Gauge
	reqErrors   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(namespace string, reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		gatherer: reg,
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route", "status"}),
		reqInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_inflight",
			Help:      "Number of HTTP requests currently being served.",
		}),
		reqErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_request_errors_total",
			Help:      "Number of HTTP requests that finished with a 4xx or 5xx status.",
		}, []string{"method", "route", "status"}),
	}

	for _, c := range []prometheus.Collector{m.reqDuration, m.reqInflight, m.reqErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler returns the gin middleware recording each request.
func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.reqInflight.Inc()
		defer m.reqInflight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			// unmatched routes share one label to keep cardinality bounded
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		m.reqDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
		if c.Writer.Status() >= 400 {
			m.reqErrors.WithLabelValues(method, route, status).Inc()
		}
	}
}

// RegisterEndpoint adds GET /metrics serving the registry this Metrics was built with.
func (m *Metrics) RegisterEndpoint(r gin.IRoutes) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})))
}
