package diary

import "strings"

// Score maps a status marker to its point value. Unknown or empty markers
// score zero. Pure and total.
func Score(status Status, p Points) int {
	switch Status(strings.TrimSpace(string(status))) {
	case StatusDone:
		return p.Done
	case StatusPartial:
		return p.Partial
	case StatusMissed:
		return p.Missed
	default:
		return 0
	}
}
