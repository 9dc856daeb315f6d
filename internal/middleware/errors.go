package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/portfolio-stats/internal/domain/dto"
	"github.com/guttosm/portfolio-stats/internal/domain/errs"
)

// MsgServerError prefixes failures that carry no domain classification.
const MsgServerError = "Server error"

// ErrorHandler writes the JSON error response for the last error a handler
// recorded with c.Error, including the underlying detail.
//
// Status mapping:
//   - errs.Input -> 400
//   - every other kind, and untyped errors -> 500
//
// Nothing is written when the handler already produced a response.
func ErrorHandler(c *gin.Context) {
	handleErrors(c, true)
}

// NewErrorHandler is ErrorHandler with configurable detail exposure. When
// exposeDetails is false, server faults are answered with a generic message
// per error kind; client faults always keep their message.
func NewErrorHandler(exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		handleErrors(c, exposeDetails)
	}
}

func handleErrors(c *gin.Context, exposeDetails bool) {
	c.Next()

	last := c.Errors.Last()
	if last == nil || c.Writer.Written() {
		return
	}
	c.AbortWithStatusJSON(StatusFor(last.Err), ErrorBody(last.Err, exposeDetails))
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	if errs.IsClientFault(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ErrorBody renders err as the response body.
func ErrorBody(err error, exposeDetails bool) dto.ErrorResponse {
	var typed *errs.Error
	isTyped := errors.As(err, &typed)

	if !exposeDetails && !errs.IsClientFault(err) {
		return dto.NewErrorResponse(errs.Generic(errs.KindOf(err)), nil)
	}
	if isTyped {
		return dto.NewErrorResponse("", err)
	}
	return dto.NewErrorResponse(MsgServerError, err)
}

// AbortWithError stops the chain and writes a JSON error with the given
// status. err, when non-nil, is appended to message and recorded on the
// context for the request logger.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
