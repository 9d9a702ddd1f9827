package battles

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu      sync.RWMutex
	battles map[string]*combat.Battle
}

// NewInMemoryRepository creates a new in-memory battle repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		battles: make(map[string]*combat.Battle),
	}
}

// Create stores a new battle
func (r *inMemoryRepository) Create(ctx context.Context, battle *combat.Battle) error {
	if battle == nil {
		return errors.InvalidArgument("battle cannot be nil")
	}
	if battle.ID == "" {
		return errors.InvalidArgument("battle ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.battles[battle.ID]; exists {
		return errors.AlreadyExists("battle " + battle.ID + " already exists")
	}

	clone, err := cloneBattle(battle)
	if err != nil {
		return err
	}
	r.battles[battle.ID] = clone
	return nil
}

// Get retrieves a battle by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*combat.Battle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	battle, exists := r.battles[id]
	if !exists {
		return nil, errors.NotFoundf("battle not found: %s", id)
	}

	return cloneBattle(battle)
}

// Update replaces an existing battle's state
func (r *inMemoryRepository) Update(ctx context.Context, battle *combat.Battle) error {
	if battle == nil {
		return errors.InvalidArgument("battle cannot be nil")
	}
	if battle.ID == "" {
		return errors.InvalidArgument("battle ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.battles[battle.ID]; !exists {
		return errors.NotFoundf("battle not found: %s", battle.ID)
	}

	clone, err := cloneBattle(battle)
	if err != nil {
		return err
	}
	r.battles[battle.ID] = clone
	return nil
}

// Delete removes a battle
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.battles[id]; !exists {
		return errors.NotFoundf("battle not found: %s", id)
	}

	delete(r.battles, id)
	return nil
}

// ListActive retrieves every battle that has not yet ended
func (r *inMemoryRepository) ListActive(ctx context.Context) ([]*combat.Battle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []*combat.Battle
	for _, battle := range r.battles {
		if battle.Ended() {
			continue
		}
		clone, err := cloneBattle(battle)
		if err != nil {
			return nil, err
		}
		active = append(active, clone)
	}

	return active, nil
}

// cloneBattle deep-copies through JSON so callers can never alias stored state
func cloneBattle(battle *combat.Battle) (*combat.Battle, error) {
	data, err := json.Marshal(battle)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize battle")
	}

	var clone combat.Battle
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize battle")
	}
	return &clone, nil
}
