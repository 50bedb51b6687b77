package html

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizeOnce   sync.Once
	sanitizePolicy *bluemonday.Policy
)

// SanitizeHTML strips scripts and event handlers from author-provided markup
// while keeping common formatting and table elements.
func SanitizeHTML(markup string) string {
	sanitizeOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class", "style").OnElements(
			"div", "span", "p", "table", "thead", "tbody", "tr", "th", "td",
		)
		sanitizePolicy = policy
	})
	return sanitizePolicy.Sanitize(markup)
}
