package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GamesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "snake_games_created_total",
			Help: "Total game sessions created",
		},
	)
	GamesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "snake_games_started_total",
			Help: "Total games started",
		},
	)
	Ticks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snake_ticks_total",
			Help: "Total game ticks advanced",
		},
		[]string{"transport"},
	)
	FoodEaten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "snake_food_eaten_total",
			Help: "Total food cells eaten",
		},
	)
	GameOvers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "snake_game_overs_total",
			Help: "Total games ended by collision",
		},
	)
)

func init() {
	prometheus.MustRegister(GamesCreated)
	prometheus.MustRegister(GamesStarted)
	prometheus.MustRegister(Ticks)
	prometheus.MustRegister(FoodEaten)
	prometheus.MustRegister(GameOvers)
}

// ObserveTick records one Step outcome: the tick itself, a food pickup when
// the score moved, and a terminal transition when the state flipped. The
// deltas mirror what the browser's sound layer watches for.
func ObserveTick(transport string, scoreBefore, scoreAfter int, wasOver, isOver bool) {
	Ticks.WithLabelValues(transport).Inc()
	if scoreAfter > scoreBefore {
		FoodEaten.Inc()
	}
	if isOver && !wasOver {
		GameOvers.Inc()
	}
}
