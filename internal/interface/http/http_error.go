package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/web-summarizer/internal/domain/summarizer"
	apperrors "github.com/yanqian/web-summarizer/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromDomainError maps a summarizer failure onto its HTTP status. Upstream
// page statuses of 400 and above are passed through.
func fromDomainError(err error) *HTTPError {
	return NewHTTPError(statusFor(err), codeFor(err), errMessage(err), err)
}

func codeFor(err error) string {
	if code := apperrors.CodeOf(err); code != "" {
		return code
	}
	return "internal_error"
}

func statusFor(err error) int {
	switch apperrors.CodeOf(err) {
	case summarizer.CodeInvalidURL:
		return http.StatusBadRequest
	case summarizer.CodeInvalidOptions:
		return http.StatusUnprocessableEntity
	case summarizer.CodeFetchFailed:
		var fetchErr *summarizer.FetchError
		if errors.As(err, &fetchErr) && fetchErr.StatusCode >= http.StatusBadRequest {
			return fetchErr.StatusCode
		}
		return http.StatusBadGateway
	case summarizer.CodeExtractionFailed, summarizer.CodeCompletionFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
