package ussd

import "strings"

// Path is the ordered selection tokens dialed so far; its length IS the
// navigation depth. No separate counter exists anywhere.
type Path []string

// ParsePath splits the gateway's accumulated input on its token delimiter,
// dropping empty segments and preserving order. Tokens are not validated
// here; a non-numeric token is the navigator's problem.
func ParsePath(raw string) Path {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Path{}
	}
	segs := strings.Split(raw, "*")
	path := make(Path, 0, len(segs))
	for _, seg := range segs {
		if seg != "" {
			path = append(path, seg)
		}
	}
	return path
}
