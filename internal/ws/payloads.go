package ws

import "snake_webapp/internal/snake"

// client → server
type Command struct {
	Type      string `json:"type"`
	Direction string `json:"direction,omitempty"` // for "move"
}

// server → client
type StatePayload struct {
	Type string `json:"type"`
	snake.Snapshot
}

type StartedPayload struct {
	Type    string      `json:"type"`
	Success bool        `json:"success"`
	State   snake.State `json:"state"`
}

type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
