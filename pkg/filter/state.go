// Package filter selects the rows matching the current paper, condition and search predicates.
package filter

import "strings"

// All disables the paper or condition predicate.
const All = "All"

// State is the user's current selection.
type State struct {
	Paper     string `json:"paper"`
	Condition string `json:"condition"`
	Search    string `json:"search"`
}

// Cleared is the state after a reset: every predicate bypassed.
func Cleared() State {
	return State{Paper: All, Condition: All}
}

// IsCleared reports whether s selects every row.
func (s State) IsCleared() bool {
	return selectsAll(s.Paper) && selectsAll(s.Condition) && s.term() == ""
}

func (s State) term() string {
	return strings.TrimSpace(s.Search)
}

func selectsAll(v string) bool {
	return v == "" || v == All
}
