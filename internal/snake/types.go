package snake

import (
	"encoding/json"
	"fmt"
)

// Position is a grid cell. On the wire it is the two-element array [x,y]
// the browser expects.
type Position struct {
	X int
	Y int
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	p.X = pair[0]
	p.Y = pair[1]
	return nil
}

// Direction of snake movement.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// ParseDirection maps a wire string to a Direction. Unknown strings are
// the one true client error of the API edge and must not touch the engine.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirUp, DirDown, DirLeft, DirRight:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("invalid direction: %q", s)
	}
}

func (d Direction) opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return ""
}

func (d Direction) delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// State of the game lifecycle.
type State string

const (
	StateReady    State = "ready"
	StatePlaying  State = "playing"
	StateGameOver State = "game_over"
)

// Snapshot is the wire format every engine operation returns: snake body
// head first, food cell, score and lifecycle state.
type Snapshot struct {
	Snake []Position `json:"snake"`
	Food  Position   `json:"food"`
	Score int        `json:"score"`
	State State      `json:"state"`
}
