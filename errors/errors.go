package errors

import (
	goerrors "errors"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is the error type surfaced to API callers. Status is the HTTP status the
// response layer writes for it.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return e.Message
}

// New returns an *Error with the given message and status
func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

var (
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrInvalidPassword     = New("invalid email or password", http.StatusUnauthorized)
)

// Unauthorized, NotFound, Conflict and InvalidArgument build the caller-visible
// categories used by the services.
func Unauthorized(message string) *Error {
	return New(message, http.StatusUnauthorized)
}

func NotFound(message string) *Error {
	return New(message, http.StatusNotFound)
}

func Conflict(message string) *Error {
	return New(message, http.StatusConflict)
}

func InvalidArgument(message string) *Error {
	return New(message, http.StatusBadRequest)
}

// StatusOf reports the HTTP status carried by err. Anything that is not an *Error
// is treated as an internal failure.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var apiErr *Error
	if goerrors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

// Is reports whether err is an *Error with the given status.
func Is(err error, status int) bool {
	var apiErr *Error
	return goerrors.As(err, &apiErr) && apiErr.Status == status
}

// ErrorHandler is used by the rate limiter when a caller exceeds the limit.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"message": "too many requests, try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
		"errors":  "rate limit exceeded",
		"status":  http.StatusText(http.StatusTooManyRequests),
	})
}
