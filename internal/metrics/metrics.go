package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	ordersCreated prometheus.Counter
	ordersUpdated prometheus.Counter
	ordersDeleted prometheus.Counter
	photoUploads  *prometheus.CounterVec
	photoRemovals *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ppf_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ppf_orders_updated_total",
			Help: "Total number of orders updated",
		}),
		ordersDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ppf_orders_deleted_total",
			Help: "Total number of orders deleted",
		}),
		photoUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ppf_photo_uploads_total",
			Help: "Photo uploads by result",
		}, []string{"result"}),
		photoRemovals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ppf_photo_removals_total",
			Help: "Photo removals by result",
		}, []string{"result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ppf_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	registerer.MustRegister(
		m.ordersCreated,
		m.ordersUpdated,
		m.ordersDeleted,
		m.photoUploads,
		m.photoRemovals,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

func (m *Metrics) OrderUpdated() {
	if m == nil {
		return
	}
	m.ordersUpdated.Inc()
}

func (m *Metrics) OrderDeleted() {
	if m == nil {
		return
	}
	m.ordersDeleted.Inc()
}

func (m *Metrics) PhotoUpload(ok bool) {
	if m == nil {
		return
	}
	m.photoUploads.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) PhotoRemoval(ok bool) {
	if m == nil {
		return
	}
	m.photoRemovals.WithLabelValues(result(ok)).Inc()
}

// Middleware records request latency labelled by the matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
