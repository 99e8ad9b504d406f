package entities

// WorkflowState is the in-process position of a user in the KYC workflow
type WorkflowState string

const (
	StateNone     WorkflowState = ""
	StateAskEmail WorkflowState = "ask_email"
	StateAskFront WorkflowState = "ask_front"
	StateAskBack  WorkflowState = "ask_back"
	StateWaiting  WorkflowState = "waiting"
	StateApproved WorkflowState = "approved"
	StateRejected WorkflowState = "rejected"
)

// AllStates lists every state, in workflow order.
var AllStates = []WorkflowState{
	StateNone, StateAskEmail, StateAskFront, StateAskBack, StateWaiting, StateApproved, StateRejected,
}

// IsTerminal reports whether a reviewer decision has been made.
func (s WorkflowState) IsTerminal() bool {
	return s == StateApproved || s == StateRejected
}

// AwaitingPhoto reports whether the user still owes an ID photo or review.
func (s WorkflowState) AwaitingPhoto() bool {
	return s == StateAskFront || s == StateAskBack || s == StateWaiting
}

// Label is the metric/log label for the state.
func (s WorkflowState) Label() string {
	if s == StateNone {
		return "none"
	}
	return string(s)
}

// Session is the transient workflow progress of a single user
type Session struct {
	UserID   int64
	ChatID   int64
	State    WorkflowState
	Started  bool
	Email    string
	FrontRef string
	BackRef  string
	Status   KYCStatus
}

// Reset clears the cached submission so the user can begin again.
func (s *Session) Reset() {
	s.State = StateNone
	s.Email = ""
	s.FrontRef = ""
	s.BackRef = ""
	s.Status = ""
}
