package summarizer

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"

	"github.com/yanqian/web-summarizer/pkg/metrics"
)

// Config wires runtime settings into the summarizer domain.
type Config struct {
	Policy ChatPolicy
	// AllowModelOverride lets a request pick its own model through options.model.
	AllowModelOverride bool
}

// RequestOptions carries the user's style and length choices.
type RequestOptions struct {
	Style     string `json:"style"`
	WordCount *int   `json:"wordCount,omitempty"`
	Model     string `json:"model,omitempty"`
}

// UnmarshalJSON accepts wordCount as any JSON number with no fractional part,
// so 450 and 450.0 decode alike. Fractional or out of range values are type errors.
func (o *RequestOptions) UnmarshalJSON(data []byte) error {
	type plain RequestOptions
	var aux struct {
		plain
		WordCount json.RawMessage `json:"wordCount"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*o = RequestOptions(aux.plain)

	raw := bytes.TrimSpace(aux.WordCount)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		o.WordCount = nil
		return nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		o.WordCount = &n
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return err
	}
	if f != math.Trunc(f) || math.Abs(f) >= math.MaxInt {
		return &json.UnmarshalTypeError{Value: "number " + string(raw), Type: reflect.TypeOf(0), Field: "wordCount"}
	}
	n = int(f)
	o.WordCount = &n
	return nil
}

// Request represents the incoming summarization payload.
type Request struct {
	URL     string         `json:"url"`
	Options RequestOptions `json:"options"`
}

// Response is returned to API consumers.
type Response struct {
	Summary     string              `json:"summary"`
	OriginalURL string              `json:"originalUrl"`
	WordCount   int                 `json:"wordCount"`
	TokenBudget int                 `json:"tokenBudget,omitempty"`
	DurationMs  int64               `json:"durationMs,omitempty"`
	TokenUsage  *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}
