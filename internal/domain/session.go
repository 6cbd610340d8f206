package domain

import "time"

// Session holds all mutable state for one game room. It carries no locks;
// callers are responsible for serializing access (see the game package's
// per-session actor).
type Session struct {
	ID      string    `json:"id"`
	Players []*Player `json:"players"`
	Phase   Phase     `json:"phase"`

	// Round starts at 1 and increments only when a new clue phase begins.
	Round int `json:"round"`

	// Per-round state, recomputed by every round start.
	TurnOrder    []string          `json:"turnOrder"`
	ClueIndex    int               `json:"clueIndex"`
	ImposterSlot string            `json:"imposterSlot"`
	PlayerWords  map[string]string `json:"playerWords"`

	// Votes maps voter slot to voted-for slot. Only non-imposter voters are
	// recorded here; the imposter's vote never counts toward the tally.
	Votes   map[string]string `json:"votes"`
	Revoted bool              `json:"revoted"`

	// Scores persist across rounds. Entries outlive roster removal so that a
	// rejoin to the same slot keeps its history.
	Scores map[string]int `json:"scores"`

	// ReadyNext is the post-results opt-in gate for the next round.
	ReadyNext map[string]struct{} `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewSession creates a fresh session in the waiting phase
func NewSession(id string) *Session {
	return &Session{
		ID:          id,
		Players:     make([]*Player, 0),
		Phase:       PhaseWaiting,
		Round:       1,
		PlayerWords: make(map[string]string),
		Votes:       make(map[string]string),
		Scores:      make(map[string]int),
		ReadyNext:   make(map[string]struct{}),
		CreatedAt:   time.Now(),
	}
}

// AddOrReconnect validates a join request and either reconnects the existing
// occupant of the slot (same name) or appends a new player. The returned bool
// is true for a reconnect. Host/ready/vote state is preserved on reconnect.
func (s *Session) AddOrReconnect(name, slot, connID string) (*Player, bool, error) {
	name, slot, err := ValidateJoin(name, slot)
	if err != nil {
		return nil, false, err
	}

	if existing, ok := s.Player(slot); ok {
		if existing.Name == name {
			existing.Reconnect(connID)
			return existing, true, nil
		}
		return nil, false, ErrSlotTaken
	}

	player := NewPlayer(name, slot, connID)
	player.IsHost = len(s.Players) == 0
	s.Players = append(s.Players, player)
	if _, ok := s.Scores[slot]; !ok {
		s.Scores[slot] = 0
	}
	return player, false, nil
}

// Player looks up a roster entry by slot
func (s *Session) Player(slot string) (*Player, bool) {
	for _, p := range s.Players {
		if p.Slot == slot {
			return p, true
		}
	}
	return nil, false
}

// PlayerByConn looks up a roster entry by connection handle
func (s *Session) PlayerByConn(connID string) (*Player, bool) {
	for _, p := range s.Players {
		if p.ConnID == connID {
			return p, true
		}
	}
	return nil, false
}

// Remove deletes the roster entry at slot, reassigning host to the first
// remaining player if the removed player was host. The slot's score entry is
// retained. Returns the removed player, or nil if the slot was not occupied.
func (s *Session) Remove(slot string) *Player {
	for i, p := range s.Players {
		if p.Slot != slot {
			continue
		}
		s.Players = append(s.Players[:i], s.Players[i+1:]...)
		if p.IsHost && len(s.Players) > 0 {
			s.Players[0].IsHost = true
		}
		return p
	}
	return nil
}

// Host returns the current host, or nil for an empty roster
func (s *Session) Host() *Player {
	for _, p := range s.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// ConnectedPlayers returns the players without a disconnect mark
func (s *Session) ConnectedPlayers() []*Player {
	active := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if p.Connected() {
			active = append(active, p)
		}
	}
	return active
}

// Slots returns the slot identifiers of the roster in order
func (s *Session) Slots() []string {
	slots := make([]string, len(s.Players))
	for i, p := range s.Players {
		slots[i] = p.Slot
	}
	return slots
}

// NameMap maps every slot in the roster to its display name
func (s *Session) NameMap() map[string]string {
	m := make(map[string]string, len(s.Players))
	for _, p := range s.Players {
		m[p.Slot] = p.Name
	}
	return m
}

// AllReady reports whether every player has toggled ready in the lobby
func (s *Session) AllReady() bool {
	if len(s.Players) == 0 {
		return false
	}
	for _, p := range s.Players {
		if !p.IsReady {
			return false
		}
	}
	return true
}

// AllVoted reports whether every player has marked their vote submitted
func (s *Session) AllVoted() bool {
	for _, p := range s.Players {
		if !p.HasVoted {
			return false
		}
	}
	return true
}

// EnsureScores guarantees a score entry for every current player
func (s *Session) EnsureScores() {
	for _, p := range s.Players {
		if _, ok := s.Scores[p.Slot]; !ok {
			s.Scores[p.Slot] = 0
		}
	}
}

// CurrentClueTurn returns the slot whose turn it is to give a clue, or ""
// when the clue index has run past the turn order.
func (s *Session) CurrentClueTurn() string {
	if s.ClueIndex < 0 || s.ClueIndex >= len(s.TurnOrder) {
		return ""
	}
	return s.TurnOrder[s.ClueIndex]
}
