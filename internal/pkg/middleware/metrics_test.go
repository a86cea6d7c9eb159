package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsBuilder_Build(t *testing.T) {
	gin.SetMode(gin.TestMode)
	builder := NewMetricsBuilderWithRegisterer(prometheus.NewRegistry())
	server := gin.New()
	server.Use(builder.Build())
	server.POST("/bite/like/toggle", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	testCases := []struct {
		name   string
		path   string
		labels []string
		want   float64
	}{
		{
			name:   "命中路由",
			path:   "/bite/like/toggle",
			labels: []string{http.MethodPost, "/bite/like/toggle", "200"},
			want:   2,
		},
		{
			name:   "没有匹配的路由",
			path:   "/bite/not/exist",
			labels: []string{http.MethodPost, "unknown", "404"},
			want:   2,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 2; i++ {
				req := httptest.NewRequest(http.MethodPost, tc.path, nil)
				server.ServeHTTP(httptest.NewRecorder(), req)
			}
			assert.Equal(t, tc.want, testutil.ToFloat64(builder.counterVec.WithLabelValues(tc.labels...)))
			assert.Equal(t, float64(0), testutil.ToFloat64(builder.inFlight))
		})
	}
}
