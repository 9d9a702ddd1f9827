package combat

import (
	"fmt"
	"sort"
	"time"

	"github.com/veyrin/skirmish/internal/domain/conditions"
)

// State is where a battle sits in its lifecycle
type State string

const (
	StateSetup          State = "SETUP"
	StateAwaitingAction State = "AWAITING_ACTION"
	StateTurnComplete   State = "TURN_COMPLETE"
	StateRoundComplete  State = "ROUND_COMPLETE"
	StateBattleEnded    State = "BATTLE_ENDED"
)

// EndReason records why a battle ended
type EndReason string

const (
	EndLastPartyStanding EndReason = "last_party_standing"
	EndMutualElimination EndReason = "mutual_elimination"
	EndConcession        EndReason = "concession"
	EndSystemFault       EndReason = "system_fault"
)

// Log entry types
const (
	LogTypeBattle    = "battle"
	LogTypeTurn      = "turn"
	LogTypeRound     = "round"
	LogTypeMove      = "move"
	LogTypeAttack    = "attack"
	LogTypeDamage    = "damage"
	LogTypeHeal      = "heal"
	LogTypeSkill     = "skill"
	LogTypeCondition = "condition"
	LogTypeDeath     = "death"
	LogTypeSystem    = "system"
)

// MaxLogEntries caps the rolling combat log; oldest entries roll off first
const MaxLogEntries = 50

// LogEntry is one line of the rolling combat log
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	ActorID   string    `json:"actor_id,omitempty"`
	TargetID  string    `json:"target_id,omitempty"`
	Value     int       `json:"value,omitempty"`
}

// Battle is the authoritative state of one fight. All mutation happens on the
// battle's owning goroutine; nothing here locks.
type Battle struct {
	ID    string `json:"id"`
	Round int    `json:"round"`

	// TurnOrder is fixed at start: unit IDs by Speed descending, ties kept
	// in roster order.
	TurnOrder []string `json:"turn_order"`
	// Turn indexes TurnOrder at the unit whose turn it is
	Turn  int   `json:"turn"`
	State State `json:"state"`

	// TurnTimer counts down in seconds; at zero the turn is force-ended
	TurnTimer        int `json:"turn_timer"`
	TurnTimerSeconds int `json:"turn_timer_seconds"`

	Units map[string]*Unit `json:"units"`
	Log   []LogEntry       `json:"log"`

	Winner    string    `json:"winner,omitempty"`
	EndReason EndReason `json:"end_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	EndedAt   time.Time `json:"ended_at,omitempty"`
}

// Start rolls initiative and opens the first round. Initiative is Speed
// descending with roster order breaking ties.
func (b *Battle) Start(catalog *conditions.Catalog, roster []string) error {
	if len(roster) == 0 {
		b.Fail("battle started with no units")
		return fmt.Errorf("battle %s has no units", b.ID)
	}

	order := make([]string, len(roster))
	copy(order, roster)
	sort.SliceStable(order, func(i, j int) bool {
		return b.Units[order[i]].Stats.Speed > b.Units[order[j]].Stats.Speed
	})

	b.TurnOrder = order
	b.Turn = 0
	b.Round = 1
	b.State = StateAwaitingAction
	b.TurnTimer = b.TurnTimerSeconds

	for _, u := range b.Units {
		u.ResetTurnEconomy()
	}

	b.AddLogEntry(LogEntry{
		Type:    LogTypeBattle,
		Message: fmt.Sprintf("Battle begins: %s acts first", b.Units[order[0]].Name),
		ActorID: order[0],
	})

	b.startTurnUpkeep(catalog)
	return nil
}

// ActiveUnit returns the unit whose turn it is, or nil once the battle ended
func (b *Battle) ActiveUnit() *Unit {
	if b.State == StateBattleEnded || len(b.TurnOrder) == 0 {
		return nil
	}
	return b.Units[b.TurnOrder[b.Turn]]
}

// ActivePartyID is the owner of the active unit
func (b *Battle) ActivePartyID() string {
	if u := b.ActiveUnit(); u != nil {
		return u.OwnerID
	}
	return ""
}

// IsUnitTurn reports whether the given unit is the active one
func (b *Battle) IsUnitTurn(unitID string) bool {
	u := b.ActiveUnit()
	return u != nil && u.ID == unitID
}

// Ended reports whether the battle has concluded
func (b *Battle) Ended() bool {
	return b.State == StateBattleEnded
}

// EndTurn closes the active unit's turn: end_of_turn conditions are swept,
// cooldowns tick, and play advances past dead units. Wrapping past the end of
// the order rolls the round over.
func (b *Battle) EndTurn(catalog *conditions.Catalog) {
	if b.Ended() {
		return
	}

	active := b.ActiveUnit()
	if active != nil {
		active.Conditions = conditions.ExpireEndOfTurn(catalog, active.Conditions)
		active.TickCooldowns()
	}
	b.State = StateTurnComplete

	if b.CheckEnd() {
		return
	}

	if !b.advance(catalog) {
		return
	}

	b.State = StateAwaitingAction
	b.TurnTimer = b.TurnTimerSeconds
	b.startTurnUpkeep(catalog)
}

// advance moves Turn to the next living unit, rolling the round over when the
// order wraps. Returns false only if the battle ended along the way.
func (b *Battle) advance(catalog *conditions.Catalog) bool {
	for i := 0; i < len(b.TurnOrder); i++ {
		b.Turn++
		if b.Turn >= len(b.TurnOrder) {
			b.Turn = 0
			b.rollover(catalog)
			if b.Ended() {
				return false
			}
		}
		next := b.Units[b.TurnOrder[b.Turn]]
		if next != nil && next.Alive {
			return true
		}
	}

	// A full lap found nobody alive. CheckEnd should have caught this.
	b.Fail("no living unit found in turn order")
	return false
}

// rollover opens a new round: next_turn conditions are swept battle-wide,
// duration conditions tick down, and every living unit's budgets reset.
func (b *Battle) rollover(catalog *conditions.Catalog) {
	b.State = StateRoundComplete
	b.Round++

	for _, u := range b.Units {
		u.Conditions = conditions.ExpireNextTurn(catalog, u.Conditions)
		if u.Alive {
			u.ResetTurnEconomy()
		}
	}

	b.AddLogEntry(LogEntry{
		Type:    LogTypeRound,
		Message: fmt.Sprintf("Round %d begins", b.Round),
	})
}

// startTurnUpkeep applies per-turn damage and healing to the new active unit.
// A unit killed by its own upkeep forfeits the turn.
func (b *Battle) startTurnUpkeep(catalog *conditions.Catalog) {
	u := b.ActiveUnit()
	if u == nil || !u.Alive {
		return
	}

	if dmg := int(conditions.SumEffect(catalog, u.Conditions, conditions.EffectDamagePerTurn)); dmg > 0 {
		lost := u.ApplyTrueDamage(dmg)
		b.AddLogEntry(LogEntry{
			Type:     LogTypeDamage,
			Message:  fmt.Sprintf("%s takes %d damage from lingering effects", u.Name, lost),
			TargetID: u.ID,
			Value:    lost,
		})
		if !u.Alive {
			b.AddLogEntry(LogEntry{
				Type:     LogTypeDeath,
				Message:  fmt.Sprintf("%s succumbs", u.Name),
				TargetID: u.ID,
			})
			if b.CheckEnd() {
				return
			}
			b.EndTurn(catalog)
			return
		}
	}

	if heal := int(conditions.SumEffect(catalog, u.Conditions, conditions.EffectHealPerTurn)); heal > 0 {
		gained := u.Heal(heal)
		if gained > 0 {
			b.AddLogEntry(LogEntry{
				Type:     LogTypeHeal,
				Message:  fmt.Sprintf("%s recovers %d hit points", u.Name, gained),
				TargetID: u.ID,
				Value:    gained,
			})
		}
	}
}

// CheckEnd inspects the parties and closes the battle if at most one still has
// living units. Returns true if the battle is (now) over.
func (b *Battle) CheckEnd() bool {
	if b.Ended() {
		return true
	}

	alive := make(map[string]bool)
	for _, u := range b.Units {
		if u.Alive {
			alive[u.OwnerID] = true
		}
	}

	switch len(alive) {
	case 0:
		b.end("", EndMutualElimination)
		b.AddLogEntry(LogEntry{
			Type:    LogTypeBattle,
			Message: "All units have fallen. The battle is a draw",
		})
		return true
	case 1:
		var winner string
		for partyID := range alive {
			winner = partyID
		}
		b.end(winner, EndLastPartyStanding)
		b.AddLogEntry(LogEntry{
			Type:    LogTypeBattle,
			Message: fmt.Sprintf("Victory for %s", winner),
		})
		return true
	default:
		return false
	}
}

// Concede ends the battle in favor of the opposing party
func (b *Battle) Concede(partyID string) {
	if b.Ended() {
		return
	}

	var winner string
	for _, u := range b.Units {
		if u.OwnerID != partyID && u.Alive {
			winner = u.OwnerID
			break
		}
	}

	b.end(winner, EndConcession)
	b.AddLogEntry(LogEntry{
		Type:    LogTypeBattle,
		Message: fmt.Sprintf("%s concedes", partyID),
		ActorID: partyID,
	})
}

// Fail ends the battle without a winner after an unrecoverable fault
func (b *Battle) Fail(reason string) {
	if b.Ended() {
		return
	}
	b.end("", EndSystemFault)
	b.AddLogEntry(LogEntry{
		Type:    LogTypeSystem,
		Message: reason,
	})
}

func (b *Battle) end(winner string, reason EndReason) {
	b.State = StateBattleEnded
	b.Winner = winner
	b.EndReason = reason
	b.EndedAt = time.Now()
}

// AddLogEntry appends to the rolling log, evicting the oldest entry past the cap
func (b *Battle) AddLogEntry(entry LogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	b.Log = append(b.Log, entry)
	if len(b.Log) > MaxLogEntries {
		b.Log = b.Log[len(b.Log)-MaxLogEntries:]
	}
}

// LivingUnits returns every unit still standing
func (b *Battle) LivingUnits() []*Unit {
	var out []*Unit
	for _, id := range b.TurnOrder {
		if u := b.Units[id]; u != nil && u.Alive {
			out = append(out, u)
		}
	}
	return out
}

// UnitsOwnedBy returns the party's units in turn order
func (b *Battle) UnitsOwnedBy(partyID string) []*Unit {
	var out []*Unit
	for _, id := range b.TurnOrder {
		if u := b.Units[id]; u != nil && u.OwnerID == partyID {
			out = append(out, u)
		}
	}
	return out
}
