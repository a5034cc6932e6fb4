package accessibility

import "strings"

// Target describes the element under a pointer interaction, as reported by
// the rendering layer. InWidget marks elements inside the accessibility
// widget's own subtree, which the reader never intercepts.
type Target struct {
	Text     string // visible text content
	AltText  string // alternative text (images)
	Label    string // accessible label attribute
	InWidget bool
}

// SpokenLabel returns the most specific human-readable label for the
// target: visible text first, then alternative text, then the accessible
// label. Empty when the target has nothing worth speaking.
func (t Target) SpokenLabel() string {
	for _, s := range []string{t.Text, t.AltText, t.Label} {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
