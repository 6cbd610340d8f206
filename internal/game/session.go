package game

import (
	"log/slog"
	"sync"
	"time"

	"wordspy/internal/domain"
	"wordspy/internal/words"
)

const inboxSize = 64

// Conn is a connected client. Send must not block; implementations are
// expected to buffer and drop rather than stall the session.
type Conn interface {
	ID() string
	Send(event *domain.Event) error
	Close() error
}

// Session is the actor owning one room's state. All mutations run on a single
// goroutine fed by an ordered inbox, so no two handlers for the same session
// ever execute concurrently. Timer ticks and expirations are posted into the
// same inbox, which makes FIFO order the tie-break authority between a player
// action and a timer firing at nearly the same instant.
type Session struct {
	state    *domain.Session
	settings Settings
	words    words.Source
	logger   *slog.Logger

	inbox     chan func()
	done      chan struct{}
	closeOnce sync.Once

	// Fields below are touched only on the actor goroutine.
	conns       map[string]Conn // slot -> connection
	timer       *phaseTimer
	lastResults *domain.VotingResultsPayload

	// onEmpty is invoked (off the registry lock) when the roster empties.
	onEmpty func()
}

// NewSession creates a session actor and starts its run loop
func NewSession(id string, settings Settings, src words.Source, logger *slog.Logger) *Session {
	s := &Session{
		state:    domain.NewSession(id),
		settings: settings,
		words:    src,
		logger:   logger.With("gameID", id),
		inbox:    make(chan func(), inboxSize),
		done:     make(chan struct{}),
		conns:    make(map[string]Conn),
	}
	go s.run()
	return s
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.state.ID
}

// CreatedAt returns when the session was created
func (s *Session) CreatedAt() time.Time {
	return s.state.CreatedAt
}

func (s *Session) run() {
	for {
		select {
		case <-s.done:
			return
		case fn := <-s.inbox:
			fn()
		}
	}
}

// post enqueues work without waiting for it. Used by timer goroutines.
func (s *Session) post(fn func()) {
	select {
	case s.inbox <- fn:
	case <-s.done:
	}
}

// call runs fn on the actor goroutine and waits for it to finish
func (s *Session) call(fn func()) error {
	ran := make(chan struct{})
	select {
	case s.inbox <- func() { fn(); close(ran) }:
	case <-s.done:
		return domain.ErrSessionNotFound
	}
	select {
	case <-ran:
		return nil
	case <-s.done:
		return domain.ErrSessionNotFound
	}
}

// Close shuts down the actor. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Phase returns the session's current phase
func (s *Session) Phase() domain.Phase {
	var phase domain.Phase
	s.call(func() { phase = s.state.Phase })
	return phase
}

// PlayerCount returns the number of roster entries
func (s *Session) PlayerCount() int {
	var n int
	s.call(func() { n = len(s.state.Players) })
	return n
}

// Join adds a new player to a free slot or reconnects the slot's existing
// occupant when the trimmed name matches. A reconnecting player receives a
// phase-appropriate resync payload; everyone receives the updated roster.
func (s *Session) Join(name, slot string, conn Conn) (*domain.Player, error) {
	var (
		player *domain.Player
		err    error
	)
	callErr := s.call(func() {
		var reconnected bool
		player, reconnected, err = s.state.AddOrReconnect(name, slot, conn.ID())
		if err != nil {
			return
		}
		s.conns[player.Slot] = conn
		s.broadcast(domain.NewEvent(domain.EventPlayerJoined, &domain.RosterPayload{Players: s.state.Players}))
		if reconnected {
			s.logger.Info("player reconnected", "slot", player.Slot, "name", player.Name)
			s.sendResync(player)
		} else {
			s.logger.Info("player joined", "slot", player.Slot, "name", player.Name)
		}
	})
	if callErr != nil {
		return nil, callErr
	}
	return player, err
}

// Leave removes the player at slot immediately. No-op for unknown slots.
func (s *Session) Leave(slot string) {
	s.call(func() {
		if removed := s.state.Remove(slot); removed != nil {
			delete(s.conns, slot)
			s.logger.Info("player left", "slot", slot)
			s.broadcast(domain.NewEvent(domain.EventPlayerJoined, &domain.RosterPayload{Players: s.state.Players}))
			s.checkEmpty()
		}
	})
}

// Disconnect marks the player holding connID as disconnected and schedules
// their removal after the grace period. A reconnect in the meantime swaps the
// connection handle, which voids the scheduled removal.
func (s *Session) Disconnect(connID string) {
	s.call(func() {
		player, ok := s.state.PlayerByConn(connID)
		if !ok || !player.Connected() {
			return
		}
		slot := player.Slot
		player.Disconnect(time.Now())
		if conn, ok := s.conns[slot]; ok && conn.ID() == connID {
			delete(s.conns, slot)
		}
		s.logger.Info("player disconnected", "slot", slot)
		s.broadcast(domain.NewEvent(domain.EventPlayerJoined, &domain.RosterPayload{Players: s.state.Players}))

		time.AfterFunc(s.settings.DisconnectGrace, func() {
			s.post(func() { s.reap(slot, connID) })
		})
	})
}

// reap removes a player whose disconnection outlasted the grace period.
// Runs on the actor goroutine.
func (s *Session) reap(slot, connID string) {
	player, ok := s.state.Player(slot)
	if !ok || player.Connected() || player.ConnID != connID {
		return
	}
	s.state.Remove(slot)
	delete(s.conns, slot)
	s.logger.Info("removed disconnected player", "slot", slot)
	s.broadcast(domain.NewEvent(domain.EventPlayerJoined, &domain.RosterPayload{Players: s.state.Players}))
	s.checkEmpty()
}

func (s *Session) checkEmpty() {
	if len(s.state.Players) == 0 && s.onEmpty != nil {
		onEmpty := s.onEmpty
		go onEmpty()
	}
}

// ToggleReady updates a player's lobby ready flag
func (s *Session) ToggleReady(slot string, ready bool) error {
	var err error
	callErr := s.call(func() {
		player, ok := s.state.Player(slot)
		if !ok {
			err = domain.ErrPlayerNotFound
			return
		}
		player.IsReady = ready
		s.broadcast(domain.NewEvent(domain.EventPlayerJoined, &domain.RosterPayload{Players: s.state.Players}))
	})
	if callErr != nil {
		return callErr
	}
	return err
}

// StartGame begins round one. Host only, lobby only, and every player must
// have toggled ready.
func (s *Session) StartGame(slot string) error {
	var err error
	callErr := s.call(func() {
		if s.state.Phase != domain.PhaseWaiting {
			err = domain.ErrInvalidPhase
			return
		}
		host := s.state.Host()
		if host == nil || host.Slot != slot {
			err = domain.ErrNotHost
			return
		}
		if !s.state.AllReady() {
			err = domain.ErrPlayersNotReady
			return
		}
		s.state.Round = 1
		s.startRound()
	})
	if callErr != nil {
		return callErr
	}
	return err
}

// RequestPlayers sends the current roster to a single connection
func (s *Session) RequestPlayers(conn Conn) {
	s.call(func() {
		if err := conn.Send(domain.NewEvent(domain.EventPlayerJoined, &domain.RosterPayload{Players: s.state.Players})); err != nil {
			s.logger.Debug("roster send failed", "error", err)
		}
	})
}

// broadcast sends an event to every connected player, or to the single
// addressed player when the event carries a slot.
func (s *Session) broadcast(event *domain.Event) {
	if event.Slot != "" {
		s.sendTo(event.Slot, event)
		return
	}
	for slot, conn := range s.conns {
		if err := conn.Send(event); err != nil {
			s.logger.Debug("send failed", "slot", slot, "error", err)
		}
	}
}

func (s *Session) sendTo(slot string, event *domain.Event) {
	conn, ok := s.conns[slot]
	if !ok {
		return
	}
	if err := conn.Send(event); err != nil {
		s.logger.Debug("send failed", "slot", slot, "error", err)
	}
}
