package dice

import (
	"fmt"
	"sync"
)

// MockRoller implements Roller for testing with predetermined results
type MockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewMockRoller creates a new mock dice roller
func NewMockRoller() *MockRoller {
	return &MockRoller{
		rolls: []int{},
	}
}

// SetNextRoll appends the next roll result
func (m *MockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls sets multiple roll results
func (m *MockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// Reset clears all rolls and resets the index
func (m *MockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
}

// RollDie implements Roller.RollDie
func (m *MockRoller) RollDie(sides int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	m.rollIndex++

	if roll < 1 || roll > sides {
		return 0, fmt.Errorf("invalid roll %d for d%d", roll, sides)
	}
	return roll, nil
}
