package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/web-summarizer/internal/domain/summarizer"
)

// Handler wires the HTTP transport to the summarizer service.
type Handler struct {
	summarizerSvc summarizer.Service
	logger        *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(summarySvc summarizer.Service, logger *slog.Logger) *Handler {
	return &Handler{
		summarizerSvc: summarySvc,
		logger:        logger.With("component", "http.handler"),
	}
}

// Summarize handles the synchronous summarization endpoint.
func (h *Handler) Summarize(c *gin.Context) {
	var req summarizer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	resp, err := h.summarizerSvc.Summarize(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindError separates type mismatches, which are option errors unless they hit
// the url field, from payloads that are not JSON at all.
func bindError(err error) *HTTPError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "url" {
			return NewHTTPError(http.StatusBadRequest, summarizer.CodeInvalidURL, "url must be a string", err)
		}
		return NewHTTPError(http.StatusUnprocessableEntity, summarizer.CodeInvalidOptions, "invalid options: "+fieldName(typeErr)+" has the wrong type", err)
	}
	return NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
}

func fieldName(err *json.UnmarshalTypeError) string {
	if err.Field == "" {
		return "request body"
	}
	return strings.TrimPrefix(err.Field, "options.")
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
