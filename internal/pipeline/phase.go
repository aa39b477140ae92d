package pipeline

import (
	"errors"
	"fmt"
)

// Phase is a step of a scaffolding run.
type Phase int

const (
	PhaseFetchPending Phase = iota
	PhaseFetching
	PhaseFetched
	PhaseInstalling
	PhaseRewriting
	PhaseCompleted
	PhaseFailed
)

var phaseNames = map[Phase]string{
	PhaseFetchPending: "fetch-pending",
	PhaseFetching:     "fetching",
	PhaseFetched:      "fetched",
	PhaseInstalling:   "installing",
	PhaseRewriting:    "rewriting",
	PhaseCompleted:    "completed",
	PhaseFailed:       "failed",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Terminal reports whether no further transition is possible.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}

// next lists the forward transitions. Every non-terminal phase may also move to PhaseFailed.
var next = map[Phase]Phase{
	PhaseFetchPending: PhaseFetching,
	PhaseFetching:     PhaseFetched,
	PhaseFetched:      PhaseInstalling,
	PhaseInstalling:   PhaseRewriting,
	PhaseRewriting:    PhaseCompleted,
}

func canTransition(from, to Phase) bool {
	if from.Terminal() {
		return false
	}
	if to == PhaseFailed {
		return true
	}
	n, ok := next[from]
	return ok && n == to
}

var ErrInvalidTransition = errors.New("invalid pipeline transition")

// PhaseError is returned once the pipeline has failed. Hook names the hook
// event that failed, empty when a collaborator such as the fetcher failed.
type PhaseError struct {
	Phase Phase
	Hook  string
	Err   error
}

func (e *PhaseError) Error() string {
	if e.Hook != "" {
		return fmt.Sprintf("%s failed in %s hook: %v", e.Phase, e.Hook, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// ExitCoder is implemented by errors that carry a process exit code, such as a
// failed install subprocess.
type ExitCoder interface {
	ExitCode() int
}

// ExitCode selects the process exit code for err: 0 for nil, the embedded
// code of an ExitCoder when it is positive, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) && coder.ExitCode() > 0 {
		return coder.ExitCode()
	}
	return 1
}
