package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"savoriq/cmd/api/dto"
	"savoriq/cmd/api/trace"
	"savoriq/config"
	"savoriq/repositories"
	"savoriq/services"
)

const (
	errInvalidRequest = "invalid_request"
	errInvalidID      = "invalid_id"
	errNotFound       = "not_found"
	errConflict       = "conflict"
	errInternal       = "internal_error"
)

func abortWithError(c *gin.Context, status int, code string, err error) {
	resp := dto.ErrorResponseDTO{Error: code}
	if err != nil && status < http.StatusInternalServerError {
		resp.Detail = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

// respondServiceError 는 저장소 에러를 HTTP 상태로 변환한다.
// 5xx 는 내부 에러 메시지를 응답에 싣지 않고 로그에만 남긴다.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		abortWithError(c, http.StatusNotFound, errNotFound, nil)
		return
	case errors.Is(err, services.ErrInvalidInput):
		abortWithError(c, http.StatusBadRequest, errInvalidRequest, err)
		return
	case errors.Is(err, repositories.ErrDuplicate):
		abortWithError(c, http.StatusConflict, errConflict, errors.New("a guest with this email already exists"))
		return
	}
	config.ErrorWithFields("request failed", config.Fields{
		"method":     c.Request.Method,
		"route":      c.FullPath(),
		"request_id": trace.RequestIDFromContext(c.Request.Context()),
		"error":      err.Error(),
	})
	abortWithError(c, http.StatusInternalServerError, errInternal, err)
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, errInvalidID, err)
		return primitive.NilObjectID, false
	}
	return id, true
}

// intQuery 는 정수 쿼리 파라미터를 읽는다. 없으면 def, 범위를 벗어나면 400 으로 중단한다.
func intQuery(c *gin.Context, name string, def, min, max int64) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < min || (max > 0 && v > max) {
		msg := fmt.Sprintf("%s must be an integer >= %d", name, min)
		if max > 0 {
			msg = fmt.Sprintf("%s must be an integer between %d and %d", name, min, max)
		}
		abortWithError(c, http.StatusBadRequest, errInvalidRequest, errors.New(msg))
		return 0, false
	}
	return v, true
}

// pageQuery 는 skip(>=0) / limit(1..maxLimit) 를 읽는다.
func pageQuery(c *gin.Context, defLimit, maxLimit int64) (skip, limit int64, ok bool) {
	if skip, ok = intQuery(c, "skip", 0, 0, 0); !ok {
		return 0, 0, false
	}
	if limit, ok = intQuery(c, "limit", defLimit, 1, maxLimit); !ok {
		return 0, 0, false
	}
	return skip, limit, true
}

// daysQuery 는 선택적 days(>=1) 를 읽는다. 없으면 0.
func daysQuery(c *gin.Context) (int, bool) {
	v, ok := intQuery(c, "days", 0, 1, 0)
	return int(v), ok
}
