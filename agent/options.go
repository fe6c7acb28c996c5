package agent

import (
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"trails/game"
)

// Hyperparameters of the agents

// Degree to which agents adjust their beliefs to observed offers, in [0,1]
const DefaultLearningSpeed = 0.8

// Tolerance within which two values count as equal
const Precision = 0.00001

// Mode selects which locations an agent considers when simulating its partner.
type Mode int

const (
	// ModeAllLocations weighs the simulated outcome by every believed location.
	ModeAllLocations Mode = iota
	// ModeOneLocation simulates only the most likely location.
	ModeOneLocation
)

func (m Mode) String() string {
	switch m {
	case ModeAllLocations:
		return "all"
	case ModeOneLocation:
		return "one"
	default:
		return "unknown"
	}
}

type Option func(a *Agent)

func WithMode(mode Mode) Option {
	return func(a *Agent) {
		a.mode = mode
	}
}

func WithLearningSpeed(speed float64) Option {
	return func(a *Agent) {
		if speed > 0 && speed <= 1 {
			a.learningSpeed = speed
		}
	}
}

// WithRand sets the source for tie-breaking and offer selection.
func WithRand(rng game.Rand) Option {
	return func(a *Agent) {
		if rng != nil {
			a.rng = rng
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

func defaultRand() game.Rand {
	return rand.New(rand.NewSource(uint64(rand.Int63())))
}
