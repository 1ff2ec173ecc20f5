// Package tokenizer provides exact token counts for OpenAI vocabularies.
package tokenizer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/yanqian/web-summarizer/internal/domain/summarizer"
)

// DefaultEncoding is the BPE vocabulary used when none is configured.
const DefaultEncoding = "cl100k_base"

// Tiktoken counts tokens with a tiktoken BPE encoding.
type Tiktoken struct {
	mu  sync.Mutex
	enc *tiktoken.Tiktoken
}

// NewTiktoken loads the named encoding. Loading may download the vocabulary
// on first use unless TIKTOKEN_CACHE_DIR points at a warm cache.
func NewTiktoken(encoding string) (*Tiktoken, error) {
	if strings.TrimSpace(encoding) == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %q: %w", encoding, err)
	}
	return &Tiktoken{enc: enc}, nil
}

// Estimate implements summarizer.TokenEstimator.
func (t *Tiktoken) Estimate(text string) int {
	if text == "" {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.enc.Encode(text, nil, nil))
}

var _ summarizer.TokenEstimator = (*Tiktoken)(nil)
