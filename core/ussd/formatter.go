package ussd

import (
	"fmt"
	"strings"
)

// overflowNotice is appended to a truncated screen body; the full text goes
// out by SMS through the overflow dispatcher.
const overflowNotice = "\n(Full text sent to you by SMS)"

const ellipsis = "..."

// sanitize strips the markup characters the gateway treats as protocol
// tokens; learner-authored content must never be able to corrupt a page.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "#", "")
	return strings.TrimSpace(s)
}

// renderMenu renders a numbered pick list under a heading.
func renderMenu(heading string, items []string) string {
	var b strings.Builder
	b.WriteString(heading)
	for i, item := range items {
		fmt.Fprintf(&b, "\n%d. %s", i+1, sanitize(item))
	}
	return b.String()
}

// fitPage fits `full` into the per-screen budget. When it does not fit, the
// returned body is truncated with an ellipsis and the SMS notice, and
// overflowed reports that the complete text still needs dispatching.
func fitPage(full string, budget int) (body string, overflowed bool) {
	runes := []rune(full)
	if len(runes) <= budget {
		return full, false
	}
	cut := budget - len([]rune(ellipsis)) - len([]rune(overflowNotice))
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + ellipsis + overflowNotice, true
}
