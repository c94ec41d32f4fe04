package ws

import (
	"encoding/json"
	"time"

	"snake_webapp/internal/logger"
	"snake_webapp/internal/metrics"
	"snake_webapp/internal/snake"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
)

// Client drives one game session over a websocket: the server owns the
// tick loop here, stepping the engine on a fixed cadence and pushing the
// snapshot after every tick and every accepted command, instead of the
// browser polling the update endpoint.
type Client struct {
	SessionID string
	Game      *snake.Game
	Conn      *websocket.Conn
	Send      chan []byte
	Tick      time.Duration
	Done      chan struct{}
}

func NewClient(sessionID string, game *snake.Game, conn *websocket.Conn, tick time.Duration) *Client {
	return &Client{
		SessionID: sessionID,
		Game:      game,
		Conn:      conn,
		Send:      make(chan []byte, 64),
		Tick:      tick,
		Done:      make(chan struct{}),
	}
}

func (c *Client) Run() {
	go c.writePump()
	go c.tickLoop()

	// client sees the board immediately, before the first tick
	c.pushState(c.Game.Snapshot())

	c.readPump()
}

//read
func (c *Client) readPump() {
	defer func() {
		close(c.Done)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(4096)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			logger.Debug("ws read closed", "session", c.SessionID, "error", err)
			break
		}
		c.handleCommand(msg)
	}
}

//write
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("ws write error", "session", c.SessionID, "error", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.Done:
			return
		}
	}
}

// tickLoop is the authoritative driver: one Step per interval while the
// game is playing. Collisions surface in the pushed snapshot, never as
// connection errors.
func (c *Client) tickLoop() {
	ticker := time.NewTicker(c.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-c.Done:
			return
		case <-ticker.C:
			before := c.Game.Snapshot()
			if before.State != snake.StatePlaying {
				continue
			}
			after := c.Game.Step()
			metrics.ObserveTick("ws", before.Score, after.Score,
				false, after.State == snake.StateGameOver)
			c.pushState(after)
		}
	}
}

func (c *Client) handleCommand(msg []byte) {
	var cmd Command
	if err := json.Unmarshal(msg, &cmd); err != nil {
		c.pushError("invalid message")
		return
	}

	switch cmd.Type {
	case MsgStart:
		started, state := c.Game.Start()
		if started {
			metrics.GamesStarted.Inc()
		}
		c.push(StartedPayload{Type: MsgStart, Success: started, State: state})

	case MsgMove:
		dir, err := snake.ParseDirection(cmd.Direction)
		if err != nil {
			c.pushError("invalid direction")
			return
		}
		// reversals and out-of-play moves are silent no-ops in the engine
		c.Game.SetDirection(dir)
		c.pushState(c.Game.Snapshot())

	case MsgReset:
		c.pushState(c.Game.Reset())

	default:
		c.pushError("unknown message type")
	}
}

func (c *Client) pushState(snap snake.Snapshot) {
	c.push(StatePayload{Type: MsgState, Snapshot: snap})
}

func (c *Client) pushError(message string) {
	c.push(ErrorPayload{Type: MsgError, Message: message})
}

func (c *Client) push(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("ws marshal failed", "session", c.SessionID, "error", err)
		return
	}
	select {
	case c.Send <- data:
	default:
		// slow consumer; drop the frame rather than stall the tick loop
		logger.Warn("ws send buffer full, dropping frame", "session", c.SessionID)
	}
}
