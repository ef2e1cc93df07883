package login

// Phase is the position of the sign-in state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseSubmitting
	PhaseAuthorized
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	case PhaseAuthorized:
		return "authorized"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the view-model state handed to
// subscribers. The secret is included because the input field renders
// it; it never appears in logs.
type Snapshot struct {
	Phase        Phase
	Identifier   string
	Secret       string
	Loading      bool
	ErrorMessage string
}

// Terminal reports whether the snapshot is the end of a sign-in attempt.
func (s Snapshot) Terminal() bool {
	return s.Phase == PhaseAuthorized || s.Phase == PhaseFailed
}

// Gate receives the authorized notification once a sign-in attempt has
// fully succeeded, persistence included. Injected via the constructor in
// place of an ad-hoc callback closure.
type Gate interface {
	Authorized(identifier string)
}
