package game

import (
	"time"

	"wordspy/internal/words"
)

// Settings holds the tunable parameters shared by every session
type Settings struct {
	// ClueDuration bounds each clue turn before auto-advancing.
	ClueDuration time.Duration

	// VotingDuration bounds the voting phase before a forced tally.
	VotingDuration time.Duration

	// DisconnectGrace is how long a disconnected player keeps their seat
	// before being removed from the roster.
	DisconnectGrace time.Duration

	// SessionIdleTimeout is how long an empty session survives before the
	// registry sweeps it.
	SessionIdleTimeout time.Duration

	// Difficulty selects the word-pair tier for new rounds.
	Difficulty words.Difficulty
}

// DefaultSettings returns the default game settings
func DefaultSettings() Settings {
	return Settings{
		ClueDuration:       60 * time.Second,
		VotingDuration:     60 * time.Second,
		DisconnectGrace:    30 * time.Second,
		SessionIdleTimeout: 2 * time.Hour,
		Difficulty:         words.DifficultyEasy,
	}
}
