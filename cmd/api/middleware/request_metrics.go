package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"savoriq/metrics"
)

// RequestMetrics 는 요청 처리 시간을 라우트 패턴 기준으로 기록한다.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
