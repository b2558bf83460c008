// internal/game/phase.go
package game

// Phase is the closed set of lifecycle states a session moves through:
//
//	waiting -> choosing_trump -> playing -> hand_finished -> {choosing_trump | finished}
//
// Operations match on the phase and reject any combination the state machine
// does not permit.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseChoosingTrump
	PhasePlaying
	PhaseHandFinished
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseChoosingTrump:
		return "choosing_trump"
	case PhasePlaying:
		return "playing"
	case PhaseHandFinished:
		return "hand_finished"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}
