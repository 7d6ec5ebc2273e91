package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-api/cmd/api/services"
	"portfolio-api/dto"
	"portfolio-api/internal/logger"
	"portfolio-api/internal/trace"
)

const (
	msgInternalError     = "Internal Server Error"
	msgAlreadySubscribed = "Email already subscribed"
	msgInvalidBody       = "invalid JSON body"
)

// respondError maps a service error to the response. Only validation and
// conflict errors reach the caller; everything else is logged and becomes a bare 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadySubscribed):
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: msgAlreadySubscribed})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: validationMessage(err)})
	default:
		logger.ErrorWithFields("request failed", logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": trace.RequestIDFromContext(c.Request.Context()),
			"error":      err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: msgInternalError})
	}
}

// validationMessage drops the sentinel prefix: "validation failed: title is required" -> "title is required".
func validationMessage(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, services.ErrValidation.Error()+": "); ok {
		return rest
	}
	return msg
}

// bindJSON decodes the body into dst and answers 400 when it is not valid JSON.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: msgInvalidBody})
		return false
	}
	return true
}

// MethodNotAllowed answers 405 and advertises the allowed methods.
func MethodNotAllowed(allowed ...string) gin.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(c *gin.Context) {
		c.Header("Allow", allow)
		c.String(http.StatusMethodNotAllowed, "Method %s Not Allowed", c.Request.Method)
	}
}

// Preflight answers a bare OPTIONS request with an empty 200.
func Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Recovery turns a panic into the generic 500 body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorWithFields("panic recovered", logger.Fields{
			"path":       c.Request.URL.Path,
			"request_id": trace.RequestIDFromContext(c.Request.Context()),
			"panic":      recovered,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: msgInternalError})
	})
}
