package apihandlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RequestLogger tags every request with a generated ID and logs method,
// path, status, and latency on completion.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client":     c.ClientIP(),
		}).Info("Request handled")
	}
}

// Metrics keeps in-process request counters for the /metrics endpoint.
type Metrics struct {
	mu       sync.Mutex
	start    time.Time
	requests int64
	byStatus map[string]int64
}

func NewMetrics() *Metrics {
	return &Metrics{
		start:    time.Now(),
		byStatus: make(map[string]int64),
	}
}

// Middleware counts every completed request by status class.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		class := statusClass(c.Writer.Status())
		m.mu.Lock()
		m.requests++
		m.byStatus[class]++
		m.mu.Unlock()
	}
}

// Handler reports the counters, process uptime, and current cache
// size. cacheLen is called per request so the figure stays live.
func (m *Metrics) Handler(cacheLen func() int) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.mu.Lock()
		byStatus := make(map[string]int64, len(m.byStatus))
		for k, v := range m.byStatus {
			byStatus[k] = v
		}
		total := m.requests
		uptime := time.Since(m.start)
		m.mu.Unlock()

		c.JSON(http.StatusOK, gin.H{
			"uptime_seconds":     int64(uptime.Seconds()),
			"requests_total":     total,
			"requests_by_status": byStatus,
			"cache_entries":      cacheLen(),
		})
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
