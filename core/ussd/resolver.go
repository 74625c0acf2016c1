package ussd

import (
	"fmt"
	"strconv"
)

// ResolveReason tags where a content lookup broke down, so each failure can
// render distinct guidance instead of a silent nil at the end of a chain.
type ResolveReason int

const (
	ResolveParentNotFound ResolveReason = iota
	ResolveListEmpty
)

// ResolveError reports a failed hop in the content hierarchy.
// Node names the segment that failed ("subjects", "topics", "lesson", ...).
type ResolveError struct {
	Reason ResolveReason
	Node   string
}

func (e *ResolveError) Error() string {
	switch e.Reason {
	case ResolveListEmpty:
		return fmt.Sprintf("no %s available", e.Node)
	default:
		return fmt.Sprintf("%s not found", e.Node)
	}
}

// pickIndex validates a user token as a 1-based index into a list of `size`
// items fetched on this very request. Non-numeric, zero, negative or
// out-of-range tokens are invalid selections; an empty list is reported as
// such so the learner gets told the content is missing, not that they typed
// wrong.
func pickIndex(token string, size int, node string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil || n <= 0 {
		return 0, ErrInvalidSelection
	}
	if size == 0 {
		return 0, &ResolveError{Reason: ResolveListEmpty, Node: node}
	}
	if n > size {
		return 0, ErrInvalidSelection
	}
	return n, nil
}
