package dice

// Roller provides the uniform random source for the resolver.
// Tests inject a scripted implementation; battles each own a seeded one so
// concurrent battles never contend on shared random state.
type Roller interface {
	// RollDie rolls a single die with the given number of sides
	RollDie(sides int) (int, error)
}
