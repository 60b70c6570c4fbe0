package domain

import "fmt"

// Phase is the state of a submission attempt.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Lifecycle tracks the submission state machine. The zero value is Idle.
//
// Succeeded and Failed are terminal for one attempt; a new submit passes back
// through Idle into Submitting. Nothing moves the lifecycle on its own.
type Lifecycle struct {
	Phase  Phase
	Reason string // set when Failed
}

// Submitting reports whether a request is in flight.
func (l Lifecycle) Submitting() bool {
	return l.Phase == PhaseSubmitting
}

// Begin moves to Submitting. It fails while another attempt is in flight.
func (l Lifecycle) Begin() (Lifecycle, error) {
	if l.Phase == PhaseSubmitting {
		return l, ErrSubmitInFlight
	}
	return Lifecycle{Phase: PhaseSubmitting}, nil
}

// Succeed ends the in-flight attempt successfully.
func (l Lifecycle) Succeed() (Lifecycle, error) {
	if l.Phase != PhaseSubmitting {
		return l, fmt.Errorf("succeed from %s: %w", l.Phase, ErrInvalidTransition)
	}
	return Lifecycle{Phase: PhaseSucceeded}, nil
}

// Fail ends the in-flight attempt with reason.
func (l Lifecycle) Fail(reason string) (Lifecycle, error) {
	if l.Phase != PhaseSubmitting {
		return l, fmt.Errorf("fail from %s: %w", l.Phase, ErrInvalidTransition)
	}
	return Lifecycle{Phase: PhaseFailed, Reason: reason}, nil
}

func (l Lifecycle) String() string {
	if l.Phase == PhaseFailed && l.Reason != "" {
		return fmt.Sprintf("%s(%s)", l.Phase, l.Reason)
	}
	return l.Phase.String()
}
