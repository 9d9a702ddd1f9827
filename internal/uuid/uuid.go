// Package uuid hides ID generation behind an interface so tests can pin IDs.
package uuid

import (
	"github.com/google/uuid"
)

// Generator produces unique string IDs
type Generator interface {
	New() string
}

// GoogleUUIDGenerator is the production Generator, backed by google/uuid
type GoogleUUIDGenerator struct{}

// New returns a fresh random UUID
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates the production generator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}
