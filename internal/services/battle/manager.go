package battle

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/veyrin/skirmish/internal/dice"
	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/domain/conditions"
	"github.com/veyrin/skirmish/internal/errors"
	"github.com/veyrin/skirmish/internal/repositories/battles"
	"github.com/veyrin/skirmish/internal/services/skill"
	"github.com/veyrin/skirmish/internal/uuid"
)

// ManagerConfig holds the manager's collaborators
type ManagerConfig struct {
	Repository    battles.Repository
	Conditions    *conditions.Catalog
	SkillService  skill.Service
	UUIDGenerator uuid.Generator

	// DefaultTurnTimerSeconds applies when a battle does not set its own
	DefaultTurnTimerSeconds int
}

// Manager runs one goroutine per battle. Battles share nothing mutable:
// the only common state is the read-only catalogs.
type Manager struct {
	repo       battles.Repository
	conditions *conditions.Catalog
	skills     skill.Service
	uuid       uuid.Generator

	defaultTimer int

	mu      sync.RWMutex
	runners map[string]*runner

	group *errgroup.Group
}

// NewManager creates a battle manager
func NewManager(cfg *ManagerConfig) (*Manager, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if cfg.Repository == nil {
		return nil, errors.InvalidArgument("repository is required")
	}
	if cfg.Conditions == nil {
		return nil, errors.InvalidArgument("condition catalog is required")
	}
	if cfg.SkillService == nil {
		return nil, errors.InvalidArgument("skill service is required")
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}

	timer := cfg.DefaultTurnTimerSeconds
	if timer <= 0 {
		timer = 60
	}

	return &Manager{
		repo:         cfg.Repository,
		conditions:   cfg.Conditions,
		skills:       cfg.SkillService,
		uuid:         gen,
		defaultTimer: timer,
		runners:      make(map[string]*runner),
		group:        &errgroup.Group{},
	}, nil
}

// CreateBattle assembles a battle from finished units, rolls initiative and
// starts its goroutine. The first delta comes back to the caller.
func (m *Manager) CreateBattle(ctx context.Context, input *CreateBattleInput) (*combat.Delta, error) {
	if input == nil || len(input.Units) < 2 {
		return nil, errors.InvalidArgument("a battle needs at least two units")
	}

	parties := make(map[string]bool)
	units := make(map[string]*combat.Unit, len(input.Units))
	roster := make([]string, 0, len(input.Units))
	for _, u := range input.Units {
		if u.ID == "" || u.OwnerID == "" {
			return nil, errors.InvalidArgument("every unit needs an ID and an owner")
		}
		if _, dup := units[u.ID]; dup {
			return nil, errors.InvalidArgumentf("duplicate unit ID %s", u.ID)
		}
		m.skills.InstallPassives(u)
		units[u.ID] = u
		roster = append(roster, u.ID)
		parties[u.OwnerID] = true
	}
	if len(parties) < 2 {
		return nil, errors.InvalidArgument("a battle needs at least two parties")
	}

	timer := input.TurnTimerSeconds
	if timer <= 0 {
		timer = m.defaultTimer
	}

	b := &combat.Battle{
		ID:               m.uuid.New(),
		Units:            units,
		TurnTimerSeconds: timer,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := b.Start(m.conditions, roster); err != nil {
		return nil, errors.Wrap(err, "starting battle")
	}

	if err := m.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	roller := dice.NewRandomRoller()
	if input.Seed != 0 {
		roller = dice.NewSeededRoller(input.Seed)
	}

	r := newRunner(newEngine(b, roller, m.conditions, m.skills), m.repo, m.removeRunner)

	m.mu.Lock()
	m.runners[b.ID] = r
	m.mu.Unlock()

	m.group.Go(r.run)

	log.Printf("[BATTLE] battle %s started with %d units across %d parties", b.ID, len(units), len(parties))
	return b.Snapshot(), nil
}

// Execute routes a command to its battle's goroutine and waits for the result
func (m *Manager) Execute(ctx context.Context, cmd *Command) (*CommandResult, error) {
	if cmd == nil || cmd.BattleID == "" {
		return nil, errors.InvalidArgument("command needs a battle ID")
	}

	m.mu.RLock()
	r, ok := m.runners[cmd.BattleID]
	m.mu.RUnlock()
	if !ok {
		// Not running here: either finished or never existed
		if b, err := m.repo.Get(ctx, cmd.BattleID); err == nil && b.Ended() {
			return nil, errors.BattleEnded("battle " + cmd.BattleID + " has ended")
		}
		return nil, errors.NotFoundf("battle not found: %s", cmd.BattleID)
	}

	return r.execute(ctx, cmd)
}

// GetBattle reads the persisted battle state
func (m *Manager) GetBattle(ctx context.Context, id string) (*combat.Battle, error) {
	return m.repo.Get(ctx, id)
}

// Subscribe registers a delta listener for a battle. The returned cancel
// releases the subscription; the channel closes when the battle ends.
func (m *Manager) Subscribe(battleID string) (<-chan *combat.Delta, func(), error) {
	m.mu.RLock()
	r, ok := m.runners[battleID]
	m.mu.RUnlock()
	if !ok {
		return nil, nil, errors.NotFoundf("battle not found: %s", battleID)
	}

	ch, cancel := r.subscribe()
	return ch, cancel, nil
}

// Tick advances every battle's turn timer by one second. Driven by an
// external clock, typically a time.Ticker in main.
func (m *Manager) Tick() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.runners {
		r.tick()
	}
}

// Shutdown stops every battle goroutine and waits for them to drain
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	runners := make([]*runner, 0, len(m.runners))
	for id, r := range m.runners {
		runners = append(runners, r)
		delete(m.runners, id)
	}
	m.mu.Unlock()

	for _, r := range runners {
		r.shutdown()
	}

	done := make(chan error, 1)
	go func() { done <- m.group.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) removeRunner(battleID string) {
	m.mu.Lock()
	delete(m.runners, battleID)
	m.mu.Unlock()
	log.Printf("[BATTLE] battle %s ended", battleID)
}
