package pipeline

import "github.com/microcosm-cc/bluemonday"

// Sanitizer strips unsafe markup from trusted payloads.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer based on the user-generated content
// policy, extended with class attributes (used by highlighting and ANSI
// spans) and base64 data URI images (used by image outputs).
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowDataURIImages()
	return &Sanitizer{policy: p}
}

// Sanitize returns markup with disallowed elements and attributes removed.
func (s *Sanitizer) Sanitize(markup string) (string, error) {
	return s.policy.Sanitize(markup), nil
}
