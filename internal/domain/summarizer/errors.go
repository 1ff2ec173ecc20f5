package summarizer

import (
	"fmt"
	"net/http"
)

// Error codes attached to apperrors.AppError values returned by the service.
const (
	CodeInvalidURL       = "invalid_url"
	CodeInvalidOptions   = "invalid_options"
	CodeFetchFailed      = "fetch_failed"
	CodeExtractionFailed = "extraction_failed"
	CodeCompletionFailed = "completion_failed"
)

// FetchError reports a page that could not be retrieved.
// StatusCode is zero when no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Reason     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode == 0 {
		if e.Err != nil {
			return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
		}
		return fmt.Sprintf("fetch %s failed", e.URL)
	}
	reason := e.Reason
	if reason == "" {
		reason = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: status=%d reason=%s", e.URL, e.StatusCode, reason)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ExtractionError reports HTML that could not be parsed at all.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return "parse html: " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
