package dice

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// randomRoller implements Roller with its own rand.Rand instance
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a roller seeded from the wall clock
func NewRandomRoller() Roller {
	return NewSeededRoller(time.Now().UnixNano())
}

// NewSeededRoller creates a roller with a fixed seed so a battle can be replayed
func NewSeededRoller(seed int64) Roller {
	return &randomRoller{rng: rand.New(rand.NewSource(seed))}
}

// RollDie implements Roller.RollDie
func (r *randomRoller) RollDie(sides int) (int, error) {
	if sides < 1 {
		return 0, errors.New("invalid die size")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(sides) + 1, nil
}
