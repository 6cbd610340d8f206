package domain

import "time"

// EventType identifies an outbound notification
type EventType string

const (
	EventPlayerJoined    EventType = "player_joined"
	EventStartRound      EventType = "start_round"
	EventNextClueTurn    EventType = "next_clue_turn"
	EventBeginVoting     EventType = "begin_voting"
	EventTimerUpdate     EventType = "timer_update"
	EventRevote          EventType = "revote"
	EventVotingResults   EventType = "voting_results"
	EventNextRoundStatus EventType = "next_round_status"
	EventFinalScores     EventType = "final_scores"
	EventError           EventType = "error_message"
)

// Event is an outbound notification, addressed either to one player (Slot
// set) or broadcast to the whole session.
type Event struct {
	Type      EventType `json:"type"`
	Slot      string    `json:"-"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates a broadcast event
func NewEvent(eventType EventType, payload any) *Event {
	return &Event{Type: eventType, Payload: payload, Timestamp: time.Now()}
}

// NewPlayerEvent creates an event addressed to a single slot
func NewPlayerEvent(eventType EventType, slot string, payload any) *Event {
	return &Event{Type: eventType, Slot: slot, Payload: payload, Timestamp: time.Now()}
}

// Payload types for outbound events

// RosterPayload is sent whenever the player list changes
type RosterPayload struct {
	Players []*Player `json:"players"`
}

// StartRoundPayload is sent per player at round start; Word is private to the
// recipient, so the imposter never sees the majority word and vice versa.
type StartRoundPayload struct {
	Word            string   `json:"word"`
	TurnOrder       []string `json:"turnOrder"`
	CurrentClueTurn string   `json:"currentClueTurn"`
	Round           int      `json:"round"`
}

// NextClueTurnPayload announces the next clue giver
type NextClueTurnPayload struct {
	Slot string `json:"slot"`
}

// BeginVotingPayload is sent at the clue→voting boundary and on resync
type BeginVotingPayload struct {
	Players      []*Player         `json:"players"`
	AlreadyVoted bool              `json:"alreadyVoted"`
	PlayerMap    map[string]string `json:"playerMap"`
}

// TimerUpdatePayload carries the per-second countdown
type TimerUpdatePayload struct {
	Phase    Phase `json:"phase"`
	TimeLeft int   `json:"timeLeft"`
}

// RevotePayload announces a forced second voting pass after a tie
type RevotePayload struct {
	TiedPlayers []string `json:"tiedPlayers"`
}

// VotingResultsPayload is the per-round results broadcast
type VotingResultsPayload struct {
	Votes           map[string]string `json:"votes"`
	Imposter        string            `json:"imposter"`
	VotedOut        string            `json:"votedOut,omitempty"`
	CorrectGuessers []string          `json:"correctGuessers"`
	Scores          map[string]int    `json:"scores"`
	PlayerMap       map[string]string `json:"playerMap"`
	Players         []*Player         `json:"players"`
	Round           int               `json:"round"`
}

// NextRoundStatusPayload lists the slots ready for the next round
type NextRoundStatusPayload struct {
	Ready []string `json:"ready"`
}

// FinalScoresPayload is sent when the host ends the game
type FinalScoresPayload struct {
	Scores  map[string]int `json:"scores"`
	Players []*Player      `json:"players"`
}

// ErrorPayload is sent to a requester whose action failed
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
