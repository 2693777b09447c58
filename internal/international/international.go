// Package international decides whether a transfer recipient is foreign.
//
// The decision engine depends only on the boolean answer, so the backing
// strategy can be swapped (suffix heuristic today, IBAN/BIN country lookup
// later) without touching any limit rule.
package international

import "strings"

// Classifier reports whether a recipient identifier is foreign.
type Classifier interface {
	IsInternational(recipient string) bool
}

// DefaultSuffixes are the recipient suffixes treated as foreign by the
// built-in heuristic classifier.
var DefaultSuffixes = []string{".uk", ".ca", ".au", ".de", ".fr", ".jp", ".cn"}

// SuffixClassifier classifies by recipient identifier suffix. It is a crude
// placeholder for a real country lookup; production deployments should
// inject a classifier backed by an identity/geo service.
type SuffixClassifier struct {
	suffixes []string
}

// NewSuffixClassifier creates a suffix-based classifier. With no arguments
// it uses DefaultSuffixes.
func NewSuffixClassifier(suffixes ...string) *SuffixClassifier {
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}
	return &SuffixClassifier{suffixes: suffixes}
}

func (c *SuffixClassifier) IsInternational(recipient string) bool {
	for _, suffix := range c.suffixes {
		if strings.HasSuffix(recipient, suffix) {
			return true
		}
	}
	return false
}

// Func adapts a plain function to the Classifier interface.
type Func func(recipient string) bool

func (f Func) IsInternational(recipient string) bool { return f(recipient) }
