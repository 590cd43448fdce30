package drowsy

import "strings"

// DefaultKeywords are the label substrings treated as drowsiness
// indicators.
var DefaultKeywords = []string{"drowsy", "sleep", "asleep", "closed", "yawn", "tired"}

// Classifier maps the label set of one frame to a binary drowsy/alert
// judgment. It is pure: no state, deterministic for a given keyword set.
type Classifier struct {
	keywords []string
}

// NewClassifier builds a classifier over the given trigger substrings,
// falling back to DefaultKeywords when none are supplied.
func NewClassifier(keywords []string) *Classifier {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &Classifier{keywords: lowered}
}

// Indicates reports whether any detected label contains a drowsiness
// keyword. Matching is case-insensitive over the joined label text.
func (c *Classifier) Indicates(labels []string) bool {
	if len(labels) == 0 {
		return false
	}
	text := strings.ToLower(strings.Join(labels, " "))
	for _, keyword := range c.keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
