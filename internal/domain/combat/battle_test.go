package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/domain/conditions"
)

func battleUnit(id, owner string, speed int) *combat.Unit {
	return &combat.Unit{
		ID:             id,
		Name:           id,
		OwnerID:        owner,
		Stats:          combat.Stats{Combat: 3, Speed: speed, Vitality: 3},
		HP:             combat.Pool{Current: 10, Max: 10},
		Mana:           combat.Pool{Current: 5, Max: 5},
		MovesPerTurn:   3,
		ActionsPerTurn: 1,
		AttacksPerTurn: 1,
		Alive:          true,
	}
}

func testBattle(t *testing.T, units ...*combat.Unit) (*combat.Battle, *conditions.Catalog) {
	t.Helper()

	catalog := conditions.DefaultCatalog()
	b := &combat.Battle{
		ID:               "battle-1",
		Units:            make(map[string]*combat.Unit),
		TurnTimerSeconds: 60,
	}

	var roster []string
	for _, u := range units {
		b.Units[u.ID] = u
		roster = append(roster, u.ID)
	}

	require.NoError(t, b.Start(catalog, roster))
	return b, catalog
}

func TestBattle_Start_InitiativeBySpeedDescending(t *testing.T) {
	fast := battleUnit("fast", "p1", 5)
	mid := battleUnit("mid", "p2", 3)
	slow := battleUnit("slow", "p1", 1)

	b, _ := testBattle(t, slow, fast, mid)

	assert.Equal(t, []string{"fast", "mid", "slow"}, b.TurnOrder)
	assert.Equal(t, combat.StateAwaitingAction, b.State)
	assert.Equal(t, 1, b.Round)
	assert.Equal(t, "fast", b.ActiveUnit().ID)
	assert.Equal(t, "p1", b.ActivePartyID())
	assert.Equal(t, 60, b.TurnTimer)
}

func TestBattle_Start_SpeedTiesKeepRosterOrder(t *testing.T) {
	a := battleUnit("a", "p1", 3)
	c := battleUnit("c", "p2", 3)
	d := battleUnit("d", "p1", 3)

	b, _ := testBattle(t, a, c, d)

	assert.Equal(t, []string{"a", "c", "d"}, b.TurnOrder)
}

func TestBattle_Start_EmptyRosterFaults(t *testing.T) {
	catalog := conditions.DefaultCatalog()
	b := &combat.Battle{ID: "battle-1", Units: make(map[string]*combat.Unit)}

	err := b.Start(catalog, nil)

	require.Error(t, err)
	assert.True(t, b.Ended())
	assert.Equal(t, combat.EndSystemFault, b.EndReason)
	assert.Empty(t, b.Winner)
}

func TestBattle_EndTurn_AdvancesAndSkipsDead(t *testing.T) {
	u1 := battleUnit("u1", "p1", 5)
	dead := battleUnit("dead", "p1", 4)
	dead.Alive = false
	dead.HP.Current = 0
	u2 := battleUnit("u2", "p2", 3)

	b, catalog := testBattle(t, u1, dead, u2)

	b.EndTurn(catalog)

	assert.Equal(t, "u2", b.ActiveUnit().ID, "dead unit is skipped")
	assert.Equal(t, 1, b.Round)
}

func TestBattle_EndTurn_SweepsEndOfTurnConditions(t *testing.T) {
	u1 := battleUnit("u1", "p1", 5)
	u2 := battleUnit("u2", "p2", 3)
	b, catalog := testBattle(t, u1, u2)

	u1.Conditions = conditions.Apply(catalog, u1.Conditions, conditions.Guarded)
	u2.Conditions = conditions.Apply(catalog, u2.Conditions, conditions.Guarded)

	b.EndTurn(catalog)

	assert.False(t, conditions.Has(u1.Conditions, conditions.Guarded), "active unit's end_of_turn condition drops")
	assert.True(t, conditions.Has(u2.Conditions, conditions.Guarded), "other units keep theirs")
}

func TestBattle_EndTurn_TicksActiveUnitCooldowns(t *testing.T) {
	u1 := battleUnit("u1", "p1", 5)
	u2 := battleUnit("u2", "p2", 3)
	b, catalog := testBattle(t, u1, u2)

	u1.SetCooldown("fireball", 2)
	u2.SetCooldown("fireball", 2)

	b.EndTurn(catalog)

	assert.Equal(t, 1, u1.CooldownFor("fireball"))
	assert.Equal(t, 2, u2.CooldownFor("fireball"), "only the ending unit's cooldowns tick")
}

func TestBattle_RoundRollover(t *testing.T) {
	u1 := battleUnit("u1", "p1", 5)
	u2 := battleUnit("u2", "p2", 3)
	b, catalog := testBattle(t, u1, u2)

	u1.MovesLeft = 0
	u1.ActionsLeft = 0
	u2.MovesLeft = 1

	b.EndTurn(catalog) // to u2
	b.EndTurn(catalog) // wraps: round 2, back to u1

	assert.Equal(t, 2, b.Round)
	assert.Equal(t, "u1", b.ActiveUnit().ID)
	assert.Equal(t, 3, u1.MovesLeft, "budgets reset at rollover")
	assert.Equal(t, 1, u1.ActionsLeft)
	assert.Equal(t, 3, u2.MovesLeft)
}

// A next_turn condition survives its bearer's own end-of-turn sweep and is
// removed by the battle-wide sweep at the round rollover.
func TestBattle_NextTurnConditionSurvivesOwnTurnDropsAtRollover(t *testing.T) {
	u1 := battleUnit("u1", "p1", 5)
	u2 := battleUnit("u2", "p2", 3)
	b, catalog := testBattle(t, u1, u2)

	u1.Conditions = conditions.Apply(catalog, u1.Conditions, conditions.Stunned)

	b.EndTurn(catalog) // u1's own end_of_turn sweep
	assert.True(t, conditions.Has(u1.Conditions, conditions.Stunned),
		"next_turn condition survives the bearer's end_of_turn sweep")

	b.EndTurn(catalog) // rollover
	assert.False(t, conditions.Has(u1.Conditions, conditions.Stunned),
		"next_turn condition drops at the round-wide sweep")
}

func TestBattle_RolloverTicksDurationConditions(t *testing.T) {
	u1 := battleUnit("u1", "p1", 5)
	u2 := battleUnit("u2", "p2", 3)
	b, catalog := testBattle(t, u1, u2)

	u2.Conditions = conditions.Apply(catalog, u2.Conditions, conditions.Frozen)
	require.Equal(t, 2, u2.Conditions[0].RoundsLeft)

	b.EndTurn(catalog)
	b.EndTurn(catalog) // rollover 1
	require.True(t, conditions.Has(u2.Conditions, conditions.Frozen))
	assert.Equal(t, 1, u2.Conditions[0].RoundsLeft)

	b.EndTurn(catalog)
	b.EndTurn(catalog) // rollover 2
	assert.False(t, conditions.Has(u2.Conditions, conditions.Frozen))
}

func TestBattle_PerTurnDamageTick(t *testing.T) {
	u1 := battleUnit("u1", "p1", 5)
	u2 := battleUnit("u2", "p2", 3)
	b, catalog := testBattle(t, u1, u2)

	// Two burning stacks tick for 2 each at the start of the bearer's turn
	u2.Conditions = conditions.Apply(catalog, u2.Conditions, conditions.Burning)
	u2.Conditions = conditions.Apply(catalog, u2.Conditions, conditions.Burning)

	b.EndTurn(catalog)

	assert.Equal(t, "u2", b.ActiveUnit().ID)
	assert.Equal(t, 6, u2.HP.Current)
}

func TestBattle_UpkeepDeathForfeitsTurnAndCanEndBattle(t *testing.T) {
	u1 := battleUnit("u1", "p1", 5)
	u2 := battleUnit("u2", "p2", 3)
	u2.HP.Current = 2
	b, catalog := testBattle(t, u1, u2)

	u2.Conditions = conditions.Apply(catalog, u2.Conditions, conditions.Burning)

	b.EndTurn(catalog)

	assert.False(t, u2.Alive)
	assert.True(t, b.Ended())
	assert.Equal(t, "p1", b.Winner)
	assert.Equal(t, combat.EndLastPartyStanding, b.EndReason)
}

func TestBattle_CheckEnd(t *testing.T) {
	t.Run("two parties standing continues", func(t *testing.T) {
		b, _ := testBattle(t, battleUnit("u1", "p1", 5), battleUnit("u2", "p2", 3))
		assert.False(t, b.CheckEnd())
		assert.False(t, b.Ended())
	})

	t.Run("one party standing wins", func(t *testing.T) {
		u1 := battleUnit("u1", "p1", 5)
		u2 := battleUnit("u2", "p2", 3)
		b, _ := testBattle(t, u1, u2)

		u2.Alive = false
		require.True(t, b.CheckEnd())
		assert.Equal(t, "p1", b.Winner)
		assert.Equal(t, combat.EndLastPartyStanding, b.EndReason)
	})

	t.Run("mutual elimination is a draw", func(t *testing.T) {
		u1 := battleUnit("u1", "p1", 5)
		u2 := battleUnit("u2", "p2", 3)
		b, _ := testBattle(t, u1, u2)

		u1.Alive = false
		u2.Alive = false
		require.True(t, b.CheckEnd())
		assert.Empty(t, b.Winner)
		assert.Equal(t, combat.EndMutualElimination, b.EndReason)
	})
}

func TestBattle_Concede(t *testing.T) {
	u1 := battleUnit("u1", "p1", 5)
	u2 := battleUnit("u2", "p2", 3)
	b, catalog := testBattle(t, u1, u2)

	b.Concede("p1")

	assert.True(t, b.Ended())
	assert.Equal(t, "p2", b.Winner)
	assert.Equal(t, combat.EndConcession, b.EndReason)

	// Further turn processing is inert once ended
	b.EndTurn(catalog)
	assert.Nil(t, b.ActiveUnit())
}

func TestBattle_LogCap(t *testing.T) {
	b, _ := testBattle(t, battleUnit("u1", "p1", 5), battleUnit("u2", "p2", 3))

	for i := 0; i < combat.MaxLogEntries*2; i++ {
		b.AddLogEntry(combat.LogEntry{Type: combat.LogTypeSystem, Message: "tick", Value: i})
	}

	require.Len(t, b.Log, combat.MaxLogEntries)
	assert.Equal(t, combat.MaxLogEntries*2-1, b.Log[len(b.Log)-1].Value, "newest entry survives")
}

func TestBattle_Snapshot(t *testing.T) {
	u1 := battleUnit("u1", "p1", 5)
	u2 := battleUnit("u2", "p2", 3)
	b, catalog := testBattle(t, u1, u2)

	u2.Conditions = conditions.Apply(catalog, u2.Conditions, conditions.Burning)
	u1.SetCooldown("fireball", 2)

	d := b.Snapshot()

	assert.Equal(t, "battle-1", d.BattleID)
	assert.Equal(t, "u1", d.ActiveUnitID)
	assert.Equal(t, "p1", d.CurrentPlayerID)
	assert.False(t, d.Ended)
	require.Len(t, d.Units, 2)
	assert.Equal(t, "u1", d.Units[0].ID, "units follow turn order")
	assert.Equal(t, 2, d.Units[0].Cooldowns["fireball"])
	require.Len(t, d.Units[1].Conditions, 1)

	// Mutating the snapshot must not touch the battle
	d.Units[1].Conditions[0].ID = "tampered"
	assert.Equal(t, conditions.Burning, u2.Conditions[0].ID)
}

func TestBattle_UnitsOwnedBy(t *testing.T) {
	u1 := battleUnit("u1", "p1", 5)
	u2 := battleUnit("u2", "p2", 4)
	u3 := battleUnit("u3", "p1", 3)
	b, _ := testBattle(t, u1, u2, u3)

	owned := b.UnitsOwnedBy("p1")
	require.Len(t, owned, 2)
	assert.Equal(t, "u1", owned[0].ID)
	assert.Equal(t, "u3", owned[1].ID)
}
