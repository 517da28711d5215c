package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"savoriq/cmd/api/trace"
	"savoriq/config"
)

const (
	HeaderRequestID = "X-Request-Id"
	maxBodyLog      = 1024
)

// RequestTrace는 모든 inbound HTTP 요청에 대해 Request ID를 보장하고,
// 이를 컨텍스트/응답 헤더에 저장한 뒤 요청 로그에 포함시킨다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = trace.GenerateID()
		}
		c.Request = req.WithContext(trace.WithRequestID(req.Context(), requestID))
		c.Writer.Header().Set(HeaderRequestID, requestID)

		// query_params 는 멀티 값 쿼리도 모두 보존하기 위해 map[string][]string 으로 기록한다.
		queryParams := map[string][]string{}
		for key, values := range req.URL.Query() {
			if len(values) > 0 {
				queryParams[key] = values
			}
		}
		bodySnippet := readBodySnippet(c)

		c.Next()

		fields := config.Fields{
			"method":       req.Method,
			"path":         req.URL.Path,
			"query_params": queryParams,
			"status":       c.Writer.Status(),
			"duration":     time.Since(start).String(),
			"request_id":   requestID,
		}
		if bodySnippet != "" {
			fields["body"] = bodySnippet
		}
		config.InfoWithFields("completed request", fields)
	}
}

// readBodySnippet 은 요청 바디 앞부분을 읽고, 핸들러에서 다시 읽을 수 있도록 Body 를 복원한다.
func readBodySnippet(c *gin.Context) string {
	req := c.Request
	if req.Body == nil || req.ContentLength == 0 {
		return ""
	}
	switch req.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return ""
	}
	bodyBytes, err := io.ReadAll(req.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	if len(bodyBytes) > maxBodyLog {
		return string(bodyBytes[:maxBodyLog])
	}
	return string(bodyBytes)
}
