package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"ppf-order-backend/internal/metrics"
)

func TestMetrics_Counters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(registry)

	m.OrderCreated()
	m.OrderCreated()
	m.OrderDeleted()
	m.PhotoUpload(true)
	m.PhotoRemoval(false)

	count, err := testutil.GatherAndCount(registry, "ppf_orders_created_total", "ppf_photo_removals_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.OrderCreated()
		m.OrderUpdated()
		m.OrderDeleted()
		m.PhotoUpload(true)
		m.PhotoRemoval(true)
	})
}

func TestMetrics_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(registry)

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/orders/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req, _ := http.NewRequest("GET", "/orders/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	count, err := testutil.GatherAndCount(registry, "ppf_http_request_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}
