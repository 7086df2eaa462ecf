package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
)

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// PageResponse is the envelope of paginated listings: {totalCount, currentPage, totalPages, data: {doc}}.
type PageResponse[T any] struct {
	Status      string      `json:"status"`
	RequestID   string      `json:"request_id"`
	TotalCount  int64       `json:"totalCount"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
	Results     int         `json:"results"`
	Data        DocList[T]  `json:"data"`
	Meta        interface{} `json:"meta,omitempty"`
}

type DocList[T any] struct {
	Doc []T `json:"doc"`
}

// Success writes a success envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
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
		Meta:      meta,
	}
	ctx.JSON(status, resp)
	return resp
}

// Error writes an error envelope and returns it. Callers in middleware still need c.Abort().
func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
	ctx.JSON(status, resp)
	return resp
}

// FromError translates an application error into an error envelope.
func FromError(ctx *gin.Context, err error) APIResponse[any] {
	status, category, msg := apperror.HTTPStatus(err)
	return Error[any](ctx, status, msg, map[string]string{"category": category})
}

func Page[T any](ctx *gin.Context, docs []T, total int64, page, totalPages int) PageResponse[T] {
	if docs == nil {
		docs = []T{}
	}
	resp := PageResponse[T]{
		Status:      "success",
		RequestID:   ctx.GetString("request_id"),
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  totalPages,
		Results:     len(docs),
		Data:        DocList[T]{Doc: docs},
	}
	ctx.JSON(http.StatusOK, resp)
	return resp
}
