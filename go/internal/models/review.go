package models

import "strings"

// Phase defines which side of the current card is displayed.
type Phase string

const (
	PhaseQuestion Phase = "question"
	PhaseAnswer   Phase = "answer"
)

// Action defines what happens to a card when the auto-grading timer fires.
// The zero value means the deck did not configure one.
type Action string

const (
	ActionAgain Action = "again"
	ActionHard  Action = "hard"
	ActionGood  Action = "good"
	ActionBury  Action = "bury"
)

// Ease is the answer button passed to the host when grading a card.
type Ease int

const (
	EaseAgain Ease = 1 // lowest ease, card forgotten
	EaseHard  Ease = 2
	EaseGood  Ease = 3 // used when the host does not report a default
)

// ParseAction parses an action name in any case. Unknown names yield false.
func ParseAction(s string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case ActionAgain, ActionHard, ActionGood, ActionBury:
		return a, true
	}
	return "", false
}

// Effective returns the action to apply, falling back to again when unset.
func (a Action) Effective() Action {
	if parsed, ok := ParseAction(string(a)); ok {
		return parsed
	}
	return ActionAgain
}

// Label returns the capitalized action name shown next to the countdown.
func (a Action) Label() string {
	s := string(a.Effective())
	return strings.ToUpper(s[:1]) + s[1:]
}

func (a Action) String() string {
	return string(a)
}
