package summarizer

import (
	"errors"
	"fmt"
)

// ChatPolicy holds the process-wide budgeting and sampling settings.
// It is built once at startup and only read afterwards.
type ChatPolicy struct {
	TokenCoefficient float64
	MinTokenCount    map[Style]int
	MaxTokenCount    int
	Temperatures     map[Style]float64
	Model            string
}

// Validate reports misconfiguration. It runs at startup, never per request.
func (p ChatPolicy) Validate() error {
	if p.TokenCoefficient <= 0 {
		return errors.New("token coefficient must be positive")
	}
	if p.MaxTokenCount <= 0 {
		return errors.New("max token count must be positive")
	}
	if p.Model == "" {
		return errors.New("model cannot be empty")
	}
	for _, style := range Styles {
		minTokens, ok := p.MinTokenCount[style]
		if !ok {
			return fmt.Errorf("min token count missing for style %q", style)
		}
		if minTokens < 0 {
			return fmt.Errorf("min token count for style %q cannot be negative", style)
		}
		if minTokens > p.MaxTokenCount {
			return fmt.Errorf("min token count for style %q (%d) exceeds max token count (%d)", style, minTokens, p.MaxTokenCount)
		}
		temperature, ok := p.Temperatures[style]
		if !ok {
			return fmt.Errorf("temperature missing for style %q", style)
		}
		if temperature < 0 || temperature > 1 {
			return fmt.Errorf("temperature for style %q must be within [0, 1]", style)
		}
	}
	return nil
}
