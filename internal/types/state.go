package types

// Enum values for proposal lifecycle state as reported by the external
// proposal source.
type ProposalState string

const (
	ProposalStatePending   ProposalState = "PENDING"
	ProposalStateActive    ProposalState = "ACTIVE"
	ProposalStateCanceled  ProposalState = "CANCELED"
	ProposalStateDefeated  ProposalState = "DEFEATED"
	ProposalStateSucceeded ProposalState = "SUCCEEDED"
	ProposalStateQueued    ProposalState = "QUEUED"
	ProposalStateExpired   ProposalState = "EXPIRED"
	ProposalStateExecuted  ProposalState = "EXECUTED"
)

func (s ProposalState) String() string {
	return string(s)
}

// IsLive reports whether the proposal still earmarks treasury value. Only
// pending, active and queued proposals count towards the allocated treasury.
func (s ProposalState) IsLive() bool {
	switch s {
	case ProposalStatePending, ProposalStateActive, ProposalStateQueued:
		return true
	default:
		return false
	}
}
