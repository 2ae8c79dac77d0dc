package tabgrid

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal issue found while processing. Page is 1-indexed;
// 0 means the warning is not tied to a page.
type Warning struct {
	Page    int
	Message string
}

// String prefixes the message with its page unless it already names it
func (w Warning) String() string {
	if w.Page == 0 {
		return w.Message
	}
	prefix := fmt.Sprintf("page %d", w.Page)
	if strings.HasPrefix(w.Message, prefix) {
		return w.Message
	}
	return prefix + ": " + w.Message
}

// FormatWarnings joins warnings into one line each
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
