package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinPrometheusMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinPrometheusMiddleware("metrics-test"))
	router.GET("/products/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"1", "2", "3"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/"+id, nil))
	}

	counter := HttpRequestsTotal.WithLabelValues("metrics-test", http.MethodGet, "/products/:id", "200")
	assert.Equal(t, 3.0, testutil.ToFloat64(counter))
}

func TestGinPrometheusMiddleware_Unmatched(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinPrometheusMiddleware("metrics-test-unmatched"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	counter := HttpRequestsTotal.WithLabelValues("metrics-test-unmatched", http.MethodGet, "unmatched", "404")
	assert.Equal(t, 1.0, testutil.ToFloat64(counter))
}

func TestBackendTimer(t *testing.T) {
	before := testutil.ToFloat64(BackendErrors.WithLabelValues("timer_test", "status"))

	NewBackendTimer("timer_test").Success()
	NewBackendTimer("timer_test").Fail("status")

	assert.Equal(t, before+1, testutil.ToFloat64(BackendErrors.WithLabelValues("timer_test", "status")))
}
