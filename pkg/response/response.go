package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard-api/pkg/apperror"
	"github.com/oksasatya/jobboard-api/pkg/pagination"
)

type APIResponse[T any] struct {
	Status     int              `json:"status"`
	Timestamp  time.Time        `json:"timestamp"`
	RequestID  string           `json:"request_id"`
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Data       T                `json:"data,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
	Error      interface{}      `json:"error,omitempty"`
}

// Success writes a success envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
	}
	ctx.JSON(status, resp)
	return resp
}

// List writes a success envelope carrying a page of items.
func List[T any](ctx *gin.Context, items []T, meta pagination.Meta, message string) APIResponse[[]T] {
	if items == nil {
		items = []T{}
	}
	resp := APIResponse[[]T]{
		Status:     http.StatusOK,
		Timestamp:  time.Now(),
		RequestID:  ctx.GetString("request_id"),
		Success:    true,
		Message:    message,
		Data:       items,
		Pagination: &meta,
	}
	ctx.JSON(http.StatusOK, resp)
	return resp
}

func build(ctx *gin.Context, status int, message string, err interface{}) APIResponse[any] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
}

// Error writes an error envelope and returns it.
func Error(ctx *gin.Context, status int, message string, err interface{}) APIResponse[any] {
	resp := build(ctx, status, message, err)
	ctx.JSON(resp.Status, resp)
	return resp
}

// Abort writes an error envelope and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string, err interface{}) {
	resp := build(ctx, status, message, err)
	ctx.AbortWithStatusJSON(resp.Status, resp)
}

// FromError maps a service error onto the envelope. Internal errors are logged and
// answered with a generic message.
func FromError(ctx *gin.Context, logger *logrus.Logger, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.Internal {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": ctx.GetString("request_id"),
				"path":       ctx.FullPath(),
			}).Error("request failed")
		}
		Abort(ctx, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	msg := kind.String()
	var ae *apperror.Error
	if errors.As(err, &ae) {
		msg = ae.Message
	}
	Abort(ctx, apperror.HTTPStatus(kind), msg, gin.H{"code": kind.String()})
}
