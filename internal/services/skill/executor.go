package skill

import (
	"github.com/veyrin/skirmish/internal/domain/skills"
)

// Executor defines the interface for skill-specific execution logic
type Executor interface {
	// Key returns the executor name this executor handles
	Key() string

	// Execute applies the skill's effect. It either fully applies or fails
	// before mutating anything; the pipeline handles action and mana costs.
	Execute(in *UseSkillInput, def *skills.Definition) (*Result, error)
}

// ExecutorRegistry manages skill executors
type ExecutorRegistry struct {
	executors map[string]Executor
}

// NewExecutorRegistry creates a new executor registry
func NewExecutorRegistry() *ExecutorRegistry {
	return &ExecutorRegistry{
		executors: make(map[string]Executor),
	}
}

// Register adds a new executor to the registry
func (r *ExecutorRegistry) Register(executor Executor) {
	r.executors[executor.Key()] = executor
}

// Get returns the executor for a specific key
func (r *ExecutorRegistry) Get(key string) (Executor, bool) {
	executor, exists := r.executors[key]
	return executor, exists
}

// Has checks if an executor exists for the key
func (r *ExecutorRegistry) Has(key string) bool {
	_, exists := r.executors[key]
	return exists
}
