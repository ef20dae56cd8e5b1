package resolve

import (
	"fmt"
	"strings"
)

// MatchPolicy selects how a normalized label is compared with a normalized title.
type MatchPolicy int

const (
	// Exact matches when both normalized strings are equal. Used for sheet tabs.
	Exact MatchPolicy = iota
	// Substring matches when the normalized title contains the normalized label.
	// Used for Trello cards, whose titles often carry a suffix such as a class name.
	Substring
)

func (p MatchPolicy) String() string {
	switch p {
	case Exact:
		return "exact"
	case Substring:
		return "substring"
	default:
		return fmt.Sprintf("MatchPolicy(%d)", int(p))
	}
}

// Match compares already-normalized strings.
func (p MatchPolicy) Match(label, title string) bool {
	switch p {
	case Substring:
		return strings.Contains(title, label)
	default:
		return title == label
	}
}
