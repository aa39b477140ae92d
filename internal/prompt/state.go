// Package prompt implements the interactive Text, Confirm and Select
// questions on top of bubbletea, drawn in the style of a vertical timeline.
package prompt

// Phase is the lifecycle state of one prompt.
type Phase int

const (
	PhaseInitial Phase = iota
	PhaseActive
	PhaseError
	PhaseSubmit
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseActive:
		return "active"
	case PhaseError:
		return "error"
	case PhaseSubmit:
		return "submit"
	case PhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Done reports whether p is terminal.
func (p Phase) Done() bool {
	return p == PhaseSubmit || p == PhaseCancel
}

// State tracks the phase of one prompt and the validation message shown in PhaseError.
//
// Transitions only move forward, except for active and error which may
// alternate until a valid submission. Submit and cancel are final.
// Every transition method reports whether it was applied.
type State struct {
	phase Phase
	err   string
}

func (s State) Phase() Phase {
	return s.phase
}

// ErrorMessage is empty outside of PhaseError.
func (s State) ErrorMessage() string {
	return s.err
}

// Activate moves initial or error to active.
func (s *State) Activate() bool {
	if s.phase != PhaseInitial && s.phase != PhaseError {
		return false
	}
	s.phase = PhaseActive
	s.err = ""
	return true
}

// Fail records a validation message. Only an active prompt can fail.
func (s *State) Fail(message string) bool {
	if s.phase != PhaseActive {
		return false
	}
	s.phase = PhaseError
	s.err = message
	return true
}

func (s *State) Submit() bool {
	if s.phase != PhaseActive {
		return false
	}
	s.phase = PhaseSubmit
	return true
}

// Cancel ends the prompt from any non-terminal phase.
func (s *State) Cancel() bool {
	if s.phase.Done() {
		return false
	}
	s.phase = PhaseCancel
	s.err = ""
	return true
}
