package domain

import "fmt"

// Mode is one of the sandbox's top-level tabs.
type Mode string

const (
	ModeLearn      Mode = "learn"
	ModeBuild      Mode = "build"
	ModeChallenges Mode = "challenges"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLearn, ModeBuild, ModeChallenges:
		return Mode(s), nil
	default:
		return "", NewValidationError("mode", fmt.Sprintf("%q is not learn, build or challenges", s), ErrInvalidMode)
	}
}

// Navigator tracks the active tab and, within challenges, whether the
// learner is on the list or working on one challenge. Every transition is
// a single direct step.
type Navigator struct {
	mode   Mode
	active string
}

// NewNavigator starts on the learn tab with no active challenge.
func NewNavigator() Navigator {
	return Navigator{mode: ModeLearn}
}

// Mode returns the active tab.
func (n Navigator) Mode() Mode { return n.mode }

// ActiveChallenge returns the id of the challenge being worked on.
func (n Navigator) ActiveChallenge() (string, bool) {
	return n.active, n.active != ""
}

// Select switches tab. The challenge sub-state is kept.
func (n *Navigator) Select(m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return err
	}
	n.mode = m
	return nil
}

// Start enters the challenges tab with id active.
func (n *Navigator) Start(id string) {
	n.mode = ModeChallenges
	n.active = id
}

// Back returns to the challenge list.
func (n *Navigator) Back() {
	n.active = ""
}
