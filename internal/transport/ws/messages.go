package ws

import "encoding/json"

// MessageType represents the type of an inbound WebSocket message. Outbound
// messages are domain events serialized as-is.
type MessageType string

// Client → Server message types
const (
	MsgJoinGame       MessageType = "join_game"
	MsgLeaveGame      MessageType = "leave_game"
	MsgToggleReady    MessageType = "toggle_ready"
	MsgStartGame      MessageType = "start_game"
	MsgNextClue       MessageType = "next_clue"
	MsgSubmitVote     MessageType = "submit_vote"
	MsgNextRoundReady MessageType = "next_round_ready"
	MsgEndGame        MessageType = "end_game"
	MsgRequestPlayers MessageType = "request_players"
	MsgPing           MessageType = "ping"
)

// ClientMessage is the tagged envelope for inbound messages. The payload is
// decoded per message type into one of the structs below.
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// JoinGamePayload is the payload for join_game. The same message reconnects a
// player when the name and slot match an existing roster entry.
type JoinGamePayload struct {
	PlayerName string `json:"playerName"`
	PlayerSlot string `json:"playerSlot"`
}

// ToggleReadyPayload is the payload for toggle_ready
type ToggleReadyPayload struct {
	IsReady bool `json:"isReady"`
}

// SubmitVotePayload is the payload for submit_vote
type SubmitVotePayload struct {
	Voted string `json:"voted"`
}

// Error codes surfaced to clients
const (
	ErrCodeInvalidMessage  = "INVALID_MESSAGE"
	ErrCodeInvalidName     = "INVALID_NAME"
	ErrCodeInvalidSlot     = "INVALID_SLOT"
	ErrCodeSlotTaken       = "SLOT_TAKEN"
	ErrCodeNotHost         = "NOT_HOST"
	ErrCodeNotYourTurn     = "NOT_YOUR_TURN"
	ErrCodePlayersNotReady = "PLAYERS_NOT_READY"
	ErrCodeInvalidPhase    = "INVALID_PHASE"
	ErrCodePlayerNotFound  = "PLAYER_NOT_FOUND"
	ErrCodeSessionNotFound = "SESSION_NOT_FOUND"
	ErrCodeNotJoined       = "NOT_JOINED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)
