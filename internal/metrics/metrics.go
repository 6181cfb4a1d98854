package metrics

import (
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	initOnce sync.Once

	httpRequests *prometheus.CounterVec
	mediaUploads *prometheus.CounterVec
	mediaDeletes *prometheus.CounterVec
)

// InitMetrics registers the collectors. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stayhub_http_requests_total",
			Help: "HTTP requests handled, by method, route and status.",
		}, []string{"method", "route", "status"})

		mediaUploads = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stayhub_media_uploads_total",
			Help: "Media files uploaded, by folder and outcome.",
		}, []string{"folder", "outcome"})

		mediaDeletes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stayhub_media_deletes_total",
			Help: "Media deletions, by folder and outcome.",
		}, []string{"folder", "outcome"})

		prometheus.MustRegister(httpRequests, mediaUploads, mediaDeletes)
	})
}

// Middleware counts every handled request.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if httpRequests != nil {
			httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		}
	}
}

// Register attaches the Prometheus metrics endpoint to the router.
func Register(router *gin.Engine, path string) {
	router.GET(path, gin.WrapH(promhttp.Handler()))
}

// CountUpload records the outcome of a single file upload.
func CountUpload(folder, outcome string) {
	if mediaUploads != nil {
		mediaUploads.WithLabelValues(folder, outcome).Inc()
	}
}

// CountDelete records the outcome of a single asset deletion.
func CountDelete(folder, outcome string) {
	if mediaDeletes != nil {
		mediaDeletes.WithLabelValues(folder, outcome).Inc()
	}
}
