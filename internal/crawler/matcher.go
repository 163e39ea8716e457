package crawler

import (
	"strings"
)

// LabelMatcher decides whether an anchor's trimmed visible text selects it.
type LabelMatcher interface {
	Match(label string) bool
}

// ExactLabel matches anchors whose text equals the label.
type ExactLabel string

func (m ExactLabel) Match(label string) bool {
	return label == string(m)
}

// LabelContains matches anchors whose text contains the label.
type LabelContains string

func (m LabelContains) Match(label string) bool {
	return strings.Contains(label, string(m))
}
