package snake

import (
	"crypto/rand"
	"math/big"
	"sync"
)

// Nokia 1100 defaults: 20x20 grid, 3-segment snake, 10 points per food.
const (
	GridWidth     = 20
	GridHeight    = 20
	InitialLength = 3
	FoodPoints    = 10
)

// Game is the snake game engine. All operations are atomic under one
// mutex so concurrent requests from the route layer never race.
type Game struct {
	mu        sync.Mutex
	snakeBody []Position
	direction Direction
	food      Position
	score     int
	state     State
}

// New creates a game in the ready state with a freshly placed snake and food.
func New() *Game {
	g := &Game{}
	g.reset()
	return g
}

// Reset reinitializes the game and returns the fresh snapshot.
// Always succeeds, from any state.
func (g *Game) Reset() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.reset()
	return g.snapshot()
}

func (g *Game) reset() {
	cx := GridWidth / 2
	cy := GridHeight / 2

	// Head first, tail last, horizontally aligned at the center.
	g.snakeBody = []Position{
		{cx, cy},
		{cx - 1, cy},
		{cx - 2, cy},
	}
	g.direction = DirRight
	g.score = 0
	g.state = StateReady
	g.food = g.placeFood()
}

// Start transitions ready -> playing. Starting while already playing, or
// after game over without a reset, is a no-op reporting false.
func (g *Game) Start() (bool, State) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateReady {
		return false, g.state
	}
	g.state = StatePlaying
	return true, g.state
}

// SetDirection updates the direction used by the next Step. Requests are
// silently ignored while not playing, and a reversal of the current
// direction is ignored while the snake is longer than one segment.
func (g *Game) SetDirection(d Direction) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StatePlaying {
		return
	}
	if len(g.snakeBody) > 1 && d == g.direction.opposite() {
		return
	}
	g.direction = d
}

// Step advances the snake by one cell and returns the resulting snapshot.
// Outside the playing state it returns the current snapshot unchanged.
// Collisions are state transitions, never errors: the snake is left
// untouched and the game moves to game_over.
func (g *Game) Step() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StatePlaying {
		return g.snapshot()
	}

	head := g.snakeBody[0]
	dx, dy := g.direction.delta()
	next := Position{head.X + dx, head.Y + dy}

	if next.X < 0 || next.X >= GridWidth || next.Y < 0 || next.Y >= GridHeight {
		g.state = StateGameOver
		return g.snapshot()
	}

	grows := next == g.food
	body := g.snakeBody
	if !grows {
		// On a plain move the tail cell is vacated this tick, so moving
		// into it is legal. A growth move keeps the tail in place.
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg == next {
			g.state = StateGameOver
			return g.snapshot()
		}
	}

	if grows {
		g.snakeBody = append([]Position{next}, g.snakeBody...)
		g.score += FoodPoints
		g.food = g.placeFood()
	} else {
		g.snakeBody = append([]Position{next}, g.snakeBody[:len(g.snakeBody)-1]...)
	}
	return g.snapshot()
}

// Snapshot returns a read-only copy of the current state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *Game) snapshot() Snapshot {
	body := make([]Position, len(g.snakeBody))
	copy(body, g.snakeBody)
	return Snapshot{
		Snake: body,
		Food:  g.food,
		Score: g.score,
		State: g.state,
	}
}

// placeFood picks a cell uniformly at random among the cells the snake
// does not occupy. If the snake fills the whole board the current food
// position is kept; it sits under the snake and can never be eaten again.
func (g *Game) placeFood() Position {
	occupied := make(map[Position]bool, len(g.snakeBody))
	for _, seg := range g.snakeBody {
		occupied[seg] = true
	}

	free := make([]Position, 0, GridWidth*GridHeight-len(g.snakeBody))
	for y := 0; y < GridHeight; y++ {
		for x := 0; x < GridWidth; x++ {
			if p := (Position{x, y}); !occupied[p] {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return g.food
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(free))))
	if err != nil {
		n = big.NewInt(0) // Fallback - should never happen
	}
	return free[n.Int64()]
}
