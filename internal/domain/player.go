package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxNameLength is the maximum length of a trimmed display name
	MaxNameLength = 30

	// MaxSlotLength is the maximum length of a slot identifier string
	MaxSlotLength = 15

	// MinSlotNumber and MaxSlotNumber bound the seat numbers a session supports
	MinSlotNumber = 1
	MaxSlotNumber = 12
)

// Avatars is the palette assigned to seats by slot number. Cosmetic only.
var Avatars = []string{
	"😀", "😎", "👽", "🤖", "🧑‍🚀", "🌟",
	"🎉", "🎈", "🎯", "🚀", "💡", "🦊",
}

var slotPattern = regexp.MustCompile(`^Player (\d{1,2})$`)

// Player represents a seat in a session. The slot is the unit of identity
// for reconnection; the display name disambiguates reconnects from slot theft.
type Player struct {
	Slot           string     `json:"playerSlot"`
	Name           string     `json:"playerName"`
	Avatar         string     `json:"avatar"`
	IsHost         bool       `json:"isHost"`
	IsReady        bool       `json:"isReady"`
	HasVoted       bool       `json:"hasVoted"`
	DisconnectedAt *time.Time `json:"disconnectedAt,omitempty"`

	// ConnID is the opaque handle of the player's current transport
	// connection. Reassigned on reconnect, never sent to clients.
	ConnID string `json:"-"`
}

// NewPlayer creates a player for a validated slot
func NewPlayer(name, slot, connID string) *Player {
	return &Player{
		Slot:   slot,
		Name:   name,
		Avatar: AvatarForSlot(slot),
		ConnID: connID,
	}
}

// Connected reports whether the player's connection is currently live
func (p *Player) Connected() bool {
	return p.DisconnectedAt == nil
}

// Disconnect marks the player as disconnected at the given time
func (p *Player) Disconnect(at time.Time) {
	p.DisconnectedAt = &at
}

// Reconnect swaps in a new connection handle and clears the disconnect mark
func (p *Player) Reconnect(connID string) {
	p.ConnID = connID
	p.DisconnectedAt = nil
}

// SlotNumber parses the numeric part of a slot identifier. Returns an error
// for anything that does not match "Player N" with N in 1..12.
func SlotNumber(slot string) (int, error) {
	m := slotPattern.FindStringSubmatch(slot)
	if m == nil {
		return 0, fmt.Errorf("invalid slot format: %q", slot)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < MinSlotNumber || n > MaxSlotNumber {
		return 0, fmt.Errorf("slot number out of range: %q", slot)
	}
	return n, nil
}

// AvatarForSlot returns the avatar for a slot, deterministic in the slot number
func AvatarForSlot(slot string) string {
	n, err := SlotNumber(slot)
	if err != nil {
		return Avatars[0]
	}
	return Avatars[(n-1)%len(Avatars)]
}

// ValidateJoin checks a join request's name and slot, returning the trimmed
// values. Violations yield a ValidationError and no session mutation.
func ValidateJoin(name, slot string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", NewValidationError(InvalidName, "player name must be provided")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", "", NewValidationError(InvalidName, "player name is too long (max 30 characters)")
	}

	slot = strings.TrimSpace(slot)
	if slot == "" {
		return "", "", NewValidationError(InvalidSlot, "player slot must be provided")
	}
	if len(slot) > MaxSlotLength {
		return "", "", NewValidationError(InvalidSlot, "player slot identifier is too long")
	}
	if _, err := SlotNumber(slot); err != nil {
		return "", "", NewValidationError(InvalidSlot, "player slot must be 'Player N' with N in 1-12")
	}

	return name, slot, nil
}
