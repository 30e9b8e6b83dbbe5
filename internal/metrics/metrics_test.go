package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/landed_pricing_app/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Recalculation(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)

	rec.Recalculation("Air", nil, 3, 3, 1)
	rec.Recalculation("Air", errors.New("boom"), 0, 0, 0)

	count, err := testutil.GatherAndCount(reg, "pricing_recalculations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per outcome")

	count, err = testutil.GatherAndCount(reg, "pricing_records_written_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRecorder_NilIsSafe(t *testing.T) {
	var rec *metrics.Recorder
	assert.NotPanics(t, func() {
		rec.Recalculation("Air", nil, 1, 1, 0)
		rec.Transition("approve", "Direction", nil)
	})
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)

	router := gin.New()
	router.Use(rec.Middleware())
	router.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
	}

	count, err := testutil.GatherAndCount(reg, "http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "route template plus unmatched")
}
