package models

// JourneyState tracks one student's progress through verification.
//
//	unverified -> pending      a method was recommended and its credential issued
//	pending    -> verified     the credential was redeemed
//	pending    -> unverified   the credential expired or the attempt failed
//	verified   -> expired      time passed the record horizon (read-time only)
//	expired    -> pending      a fresh attempt started
//
// There is no expired -> verified edge.
type JourneyState string

const (
	JourneyUnverified JourneyState = "unverified"
	JourneyPending    JourneyState = "pending"
	JourneyVerified   JourneyState = "verified"
	JourneyExpired    JourneyState = "expired"
)

var journeyTransitions = map[JourneyState][]JourneyState{
	JourneyUnverified: {JourneyPending},
	JourneyPending:    {JourneyVerified, JourneyUnverified},
	JourneyVerified:   {JourneyExpired},
	JourneyExpired:    {JourneyPending},
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s JourneyState) CanTransitionTo(next JourneyState) bool {
	for _, allowed := range journeyTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// JourneyFromStatus maps a read-time status onto the journey state it implies.
func JourneyFromStatus(status VerificationStatus) JourneyState {
	switch status {
	case StatusVerified:
		return JourneyVerified
	case StatusExpired:
		return JourneyExpired
	default:
		return JourneyUnverified
	}
}
