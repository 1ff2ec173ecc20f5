package summarizer

import (
	"math"
	"strings"
)

// TokenEstimator maps text to a deterministic token count.
type TokenEstimator interface {
	Estimate(text string) int
}

// WordEstimator approximates tokens as ceil(words * coefficient).
type WordEstimator struct {
	Coefficient float64
}

// Estimate implements TokenEstimator.
func (e WordEstimator) Estimate(text string) int {
	return wordsToTokens(CountWords(text), e.Coefficient)
}

// CountWords splits on runs of whitespace.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ComputeBudget reconciles the content size, an optional explicit word target and the
// per-style bounds into the max token ceiling sent to the completion API.
// An explicit word count always wins over the content estimate.
func ComputeBudget(content string, style Style, explicitWordCount *int, policy ChatPolicy, estimator TokenEstimator) int {
	var contentTokens int
	if explicitWordCount != nil {
		contentTokens = wordsToTokens(*explicitWordCount, policy.TokenCoefficient)
	} else {
		contentTokens = estimator.Estimate(content)
	}

	styleMin := math.Max(float64(contentTokens)*style.floorMultiplier(), float64(policy.MinTokenCount[style]))
	floored := math.Max(float64(contentTokens), styleMin)
	return int(math.Min(math.Ceil(floored), float64(policy.MaxTokenCount)))
}

// TargetWordCount is the length stated in the prompt. Without an explicit target it is
// derived from the budget so the prompt and the token ceiling agree.
func TargetWordCount(budget int, explicitWordCount *int, policy ChatPolicy) int {
	if explicitWordCount != nil {
		return *explicitWordCount
	}
	return int(math.Ceil(float64(budget) / policy.TokenCoefficient))
}

func wordsToTokens(words int, coefficient float64) int {
	if words <= 0 {
		return 0
	}
	tokens := math.Ceil(float64(words) * coefficient)
	if tokens >= math.MaxInt {
		return math.MaxInt
	}
	return int(tokens)
}
