package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDFrom(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceIDFrom(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceIDFrom(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDFrom(c),
	})
}

// HandleServiceError maps an error kind to an HTTP status. Payment
// cancellation is not an error surface: the client closed the dialog, so the
// caller gets a success envelope and no error text.
func HandleServiceError(c *gin.Context, err error) {
	switch KindOf(err) {
	case KindValidation:
		RespondError(c, http.StatusBadRequest, MessageOf(err))
	case KindNotFound:
		RespondError(c, http.StatusNotFound, MessageOf(err))
	case KindUnauthorized:
		RespondError(c, http.StatusUnauthorized, MessageOf(err))
	case KindForbidden:
		RespondError(c, http.StatusForbidden, MessageOf(err))
	case KindConflict:
		RespondError(c, http.StatusConflict, MessageOf(err))
	case KindPaymentVerification:
		RespondError(c, http.StatusUnprocessableEntity, MessageOf(err))
	case KindPaymentCancelled:
		RespondSuccess(c, gin.H{"cancelled": true}, MessageOf(err))
	default:
		log.Printf("internal error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
