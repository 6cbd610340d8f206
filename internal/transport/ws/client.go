package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"wordspy/internal/domain"
	"wordspy/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket client connection. It implements game.Conn:
// the session actor addresses it by connection ID and pushes events through
// the buffered send channel.
type Client struct {
	conn    *websocket.Conn
	session *game.Session
	connID  string
	slot    string // set after a successful join; readPump goroutine only
	send    chan []byte
	done    chan struct{}
	logger  *slog.Logger
	mu      sync.Mutex
	closed  bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, session *game.Session, connID string, logger *slog.Logger) *Client {
	return &Client{
		conn:    conn,
		session: session,
		connID:  connID,
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// ID implements game.Conn
func (c *Client) ID() string {
	return c.connID
}

// Send implements game.Conn. Never blocks; drops when the buffer is full.
func (c *Client) Send(event *domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		c.logger.Warn("send buffer full, message dropped", "connID", c.connID)
		return nil
	}
}

// Close implements game.Conn
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		if c.slot != "" {
			c.session.Disconnect(c.connID)
		}
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "invalid message format")
		return
	}

	switch msg.Type {
	case MsgJoinGame:
		c.handleJoin(msg.Payload)
	case MsgLeaveGame:
		c.handleLeave()
	case MsgToggleReady:
		c.handleToggleReady(msg.Payload)
	case MsgStartGame:
		c.requireJoined(c.session.StartGame)
	case MsgNextClue:
		c.requireJoined(c.session.AdvanceClue)
	case MsgSubmitVote:
		c.handleSubmitVote(msg.Payload)
	case MsgNextRoundReady:
		c.requireJoined(c.session.ReadyNextRound)
	case MsgEndGame:
		c.requireJoined(c.session.EndGame)
	case MsgRequestPlayers:
		c.session.RequestPlayers(c)
	case MsgPing:
		// Protocol-level keepalive is handled by ping/pong control frames;
		// application pings are simply acknowledged by ignoring them.
	default:
		c.sendError(ErrCodeInvalidMessage, "unknown message type")
	}
}

func (c *Client) handleJoin(payload json.RawMessage) {
	var p JoinGamePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.sendError(ErrCodeInvalidMessage, "invalid payload")
		return
	}

	player, err := c.session.Join(p.PlayerName, p.PlayerSlot, c)
	if err != nil {
		c.sendDomainError(err)
		return
	}
	c.slot = player.Slot
}

func (c *Client) handleLeave() {
	if c.slot == "" {
		return
	}
	c.session.Leave(c.slot)
	c.slot = ""
}

func (c *Client) handleToggleReady(payload json.RawMessage) {
	if c.slot == "" {
		c.sendError(ErrCodeNotJoined, "join a slot first")
		return
	}
	var p ToggleReadyPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.sendError(ErrCodeInvalidMessage, "invalid payload")
		return
	}
	if err := c.session.ToggleReady(c.slot, p.IsReady); err != nil {
		c.sendDomainError(err)
	}
}

func (c *Client) handleSubmitVote(payload json.RawMessage) {
	if c.slot == "" {
		c.sendError(ErrCodeNotJoined, "join a slot first")
		return
	}
	var p SubmitVotePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.sendError(ErrCodeInvalidMessage, "invalid payload")
		return
	}
	if err := c.session.SubmitVote(c.slot, p.Voted); err != nil {
		c.sendDomainError(err)
	}
}

// requireJoined invokes a slot-keyed session operation for this client
func (c *Client) requireJoined(op func(slot string) error) {
	if c.slot == "" {
		c.sendError(ErrCodeNotJoined, "join a slot first")
		return
	}
	if err := op(c.slot); err != nil {
		c.sendDomainError(err)
	}
}

// sendDomainError maps a domain error to a wire error code
func (c *Client) sendDomainError(err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		code := ErrCodeInvalidName
		if verr.Kind == domain.InvalidSlot {
			code = ErrCodeInvalidSlot
		}
		c.sendError(code, verr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrSlotTaken):
		c.sendError(ErrCodeSlotTaken, err.Error())
	case errors.Is(err, domain.ErrNotHost):
		c.sendError(ErrCodeNotHost, err.Error())
	case errors.Is(err, domain.ErrNotYourTurn):
		c.sendError(ErrCodeNotYourTurn, err.Error())
	case errors.Is(err, domain.ErrPlayersNotReady):
		c.sendError(ErrCodePlayersNotReady, err.Error())
	case errors.Is(err, domain.ErrInvalidPhase):
		c.sendError(ErrCodeInvalidPhase, err.Error())
	case errors.Is(err, domain.ErrPlayerNotFound):
		c.sendError(ErrCodePlayerNotFound, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		c.sendError(ErrCodeSessionNotFound, err.Error())
	default:
		c.sendError(ErrCodeInternalError, err.Error())
	}
}

// sendError sends an error event to this client only
func (c *Client) sendError(code, message string) {
	c.Send(domain.NewEvent(domain.EventError, &domain.ErrorPayload{
		Code:    code,
		Message: message,
	}))
}
