package summarizer

import "fmt"

// Style selects how a summary is presented.
type Style string

const (
	StyleConcise      Style = "concise"
	StyleBulletPoints Style = "bullet-points"
	StyleDetailed     Style = "detailed"
)

// Styles lists every supported style.
var Styles = []Style{StyleConcise, StyleBulletPoints, StyleDetailed}

// ParseStyle accepts exactly the three supported style names.
func ParseStyle(raw string) (Style, error) {
	switch style := Style(raw); style {
	case StyleConcise, StyleBulletPoints, StyleDetailed:
		return style, nil
	}
	return "", fmt.Errorf("style %q is invalid, it must be one of 'concise', 'detailed', 'bullet-points'", raw)
}

// floorMultiplier is the share of the content estimate a style never goes below.
func (s Style) floorMultiplier() float64 {
	switch s {
	case StyleConcise:
		return 0.3
	case StyleBulletPoints:
		return 0.5
	case StyleDetailed:
		return 0.7
	}
	return 0
}

func (s Style) instruction() string {
	switch s {
	case StyleConcise:
		return "Create a clear and concise summary"
	case StyleBulletPoints:
		return "Create a bullet-point summary with key points"
	case StyleDetailed:
		return "Create a comprehensive and detailed summary"
	}
	return "Create a summary"
}
