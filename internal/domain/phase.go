package domain

// Phase represents the current phase of a session
type Phase string

const (
	PhaseWaiting Phase = "waiting" // Lobby: roster changes, ready toggles, start gating
	PhaseClue    Phase = "clue"    // Turn-based clue giving
	PhaseVoting  Phase = "voting"  // Simultaneous voting with countdown
	PhaseResults Phase = "results" // Round results on display
	PhaseFinal   Phase = "final"   // Host ended the game, final scores shown
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}
