package handlers

import (
	"net/http"

	"snake_webapp/internal/metrics"
	"snake_webapp/internal/service"
	"snake_webapp/internal/snake"

	"github.com/gin-gonic/gin"
)

// NewGameResponse carries the session token alongside the fresh snapshot.
type NewGameResponse struct {
	Token string `json:"token"`
	snake.Snapshot
}

// MoveRequest is the direction-change payload.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// NewGame creates a game session and returns its token with the initial
// snapshot: 3-segment snake centered on the 20x20 grid, ready state.
func (h *Handler) NewGame(c *gin.Context) {
	sessionID, g := h.Sessions.Create()

	token, err := service.GenerateSessionToken(sessionID)
	if err != nil {
		h.Sessions.Delete(sessionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	metrics.GamesCreated.Inc()
	c.JSON(http.StatusOK, NewGameResponse{
		Token:    token,
		Snapshot: g.Snapshot(),
	})
}

// State returns the current snapshot without advancing the game.
func (h *Handler) State(c *gin.Context) {
	g, ok := h.game(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, g.Snapshot())
}

// StartGame transitions ready -> playing. Starting twice, or after game
// over without a reset, reports success=false and leaves the game alone.
func (h *Handler) StartGame(c *gin.Context) {
	g, ok := h.game(c)
	if !ok {
		return
	}

	started, state := g.Start()
	if started {
		metrics.GamesStarted.Inc()
	}
	c.JSON(http.StatusOK, gin.H{
		"success": started,
		"state":   state,
	})
}

// Move requests a direction change for the next tick. An unknown direction
// string is the only client error here and never touches the engine;
// a reversal or an out-of-play request is accepted and silently ignored.
func (h *Handler) Move(c *gin.Context) {
	g, ok := h.game(c)
	if !ok {
		return
	}

	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	dir, err := snake.ParseDirection(req.Direction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid direction"})
		return
	}

	g.SetDirection(dir)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Update advances the game by one tick and returns the resulting snapshot.
// Outside the playing state the snapshot comes back unchanged.
func (h *Handler) Update(c *gin.Context) {
	g, ok := h.game(c)
	if !ok {
		return
	}

	before := g.Snapshot()
	after := g.Step()
	if before.State == snake.StatePlaying {
		metrics.ObserveTick("http", before.Score, after.Score,
			before.State == snake.StateGameOver, after.State == snake.StateGameOver)
	}

	c.JSON(http.StatusOK, after)
}

// ResetGame reinitializes the session's game back to the ready state.
func (h *Handler) ResetGame(c *gin.Context) {
	g, ok := h.game(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, g.Reset())
}
