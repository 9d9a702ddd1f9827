package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/domain/skills"
)

func testUnit() *combat.Unit {
	return &combat.Unit{
		ID:                 "unit-1",
		Name:               "Test Unit",
		OwnerID:            "player-1",
		Stats:              combat.Stats{Combat: 3, Speed: 2, Focus: 2, Resistance: 2, Will: 1, Vitality: 3},
		HP:                 combat.Pool{Current: 12, Max: 12},
		Mana:               combat.Pool{Current: 5, Max: 5},
		MovesPerTurn:       3,
		ActionsPerTurn:     1,
		AttacksPerTurn:     1,
		PhysicalProtection: combat.Pool{Current: 4, Max: 4},
		MagicalProtection:  combat.Pool{Current: 2, Max: 2},
		Alive:              true,
	}
}

func TestUnit_ApplyPhysicalDamage(t *testing.T) {
	tests := []struct {
		name           string
		damage         int
		wantHPLost     int
		wantHP         int
		wantProtection int
		wantAlive      bool
	}{
		{
			name:           "fully absorbed by protection",
			damage:         3,
			wantHPLost:     0,
			wantHP:         12,
			wantProtection: 1,
			wantAlive:      true,
		},
		{
			name:           "overflow reaches hit points",
			damage:         7,
			wantHPLost:     3,
			wantHP:         9,
			wantProtection: 0,
			wantAlive:      true,
		},
		{
			name:           "lethal overflow flips alive",
			damage:         20,
			wantHPLost:     12,
			wantHP:         0,
			wantProtection: 0,
			wantAlive:      false,
		},
		{
			name:           "zero damage is a no-op",
			damage:         0,
			wantHPLost:     0,
			wantHP:         12,
			wantProtection: 4,
			wantAlive:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := testUnit()
			lost := u.ApplyPhysicalDamage(tt.damage)

			assert.Equal(t, tt.wantHPLost, lost)
			assert.Equal(t, tt.wantHP, u.HP.Current)
			assert.Equal(t, tt.wantProtection, u.PhysicalProtection.Current)
			assert.Equal(t, tt.wantAlive, u.Alive)
		})
	}
}

func TestUnit_ApplyMagicDamage_DrainsMagicalPoolOnly(t *testing.T) {
	u := testUnit()

	lost := u.ApplyMagicDamage(4)

	assert.Equal(t, 2, lost)
	assert.Equal(t, 0, u.MagicalProtection.Current)
	assert.Equal(t, 4, u.PhysicalProtection.Current, "physical pool must be untouched")
	assert.Equal(t, 10, u.HP.Current)
}

func TestUnit_ApplyTrueDamage_BypassesProtection(t *testing.T) {
	u := testUnit()

	lost := u.ApplyTrueDamage(3)

	assert.Equal(t, 3, lost)
	assert.Equal(t, 9, u.HP.Current)
	assert.Equal(t, 4, u.PhysicalProtection.Current)
	assert.Equal(t, 2, u.MagicalProtection.Current)
}

func TestUnit_DamageToDeadUnitIsNoOp(t *testing.T) {
	u := testUnit()
	u.Alive = false
	u.HP.Current = 0

	assert.Equal(t, 0, u.ApplyPhysicalDamage(5))
	assert.Equal(t, 0, u.HP.Current)
}

func TestUnit_Heal(t *testing.T) {
	t.Run("clamps at max", func(t *testing.T) {
		u := testUnit()
		u.HP.Current = 10

		gained := u.Heal(5)

		assert.Equal(t, 2, gained)
		assert.Equal(t, 12, u.HP.Current)
	})

	t.Run("dead units stay dead", func(t *testing.T) {
		u := testUnit()
		u.Alive = false
		u.HP.Current = 0

		gained := u.Heal(5)

		assert.Equal(t, 0, gained)
		assert.Equal(t, 0, u.HP.Current)
		assert.False(t, u.Alive)
	})
}

func TestUnit_SpendMana_ClampsAtZero(t *testing.T) {
	u := testUnit()

	u.SpendMana(3)
	assert.Equal(t, 2, u.Mana.Current)

	u.SpendMana(10)
	assert.Equal(t, 0, u.Mana.Current)
}

func TestUnit_Cooldowns(t *testing.T) {
	u := testUnit()

	u.SetCooldown(skills.Fireball, 3)
	u.SetCooldown(skills.PowerStrike, 1)
	require.Equal(t, 3, u.CooldownFor(skills.Fireball))

	u.TickCooldowns()
	assert.Equal(t, 2, u.CooldownFor(skills.Fireball))
	assert.Equal(t, 0, u.CooldownFor(skills.PowerStrike), "expired cooldowns are removed")

	u.TickCooldowns()
	u.TickCooldowns()
	assert.Equal(t, 0, u.CooldownFor(skills.Fireball))
	assert.Empty(t, u.Cooldowns)
}

func TestUnit_SetCooldown_IgnoresNonPositive(t *testing.T) {
	u := testUnit()
	u.SetCooldown(skills.Fireball, 0)
	assert.Equal(t, 0, u.CooldownFor(skills.Fireball))
}

func TestUnit_ResetTurnEconomy(t *testing.T) {
	u := testUnit()
	u.MovesLeft = 0
	u.ActionsLeft = 0
	u.AttacksLeft = 0
	u.BonusAttacksUsed = 1

	u.ResetTurnEconomy()

	assert.Equal(t, 3, u.MovesLeft)
	assert.Equal(t, 1, u.ActionsLeft)
	assert.Equal(t, 1, u.AttacksLeft)
	assert.Equal(t, 0, u.BonusAttacksUsed)
}

func TestUnit_Unprotected(t *testing.T) {
	u := testUnit()
	assert.False(t, u.Unprotected())

	u.PhysicalProtection.Current = 0
	assert.False(t, u.Unprotected())

	u.MagicalProtection.Current = 0
	assert.True(t, u.Unprotected())
}

func TestUnit_KnowsSkill(t *testing.T) {
	u := testUnit()
	u.Features = []skills.Code{skills.PowerStrike, skills.Ironhide}

	assert.True(t, u.KnowsSkill(skills.PowerStrike))
	assert.True(t, u.KnowsSkill(skills.Ironhide))
	assert.False(t, u.KnowsSkill(skills.Fireball))
}

func TestStats_Value(t *testing.T) {
	s := combat.Stats{Combat: 1, Speed: 2, Focus: 3, Resistance: 4, Will: 5, Vitality: 6}

	assert.Equal(t, 1, s.Value(skills.AttrCombat))
	assert.Equal(t, 2, s.Value(skills.AttrSpeed))
	assert.Equal(t, 3, s.Value(skills.AttrFocus))
	assert.Equal(t, 4, s.Value(skills.AttrResistance))
	assert.Equal(t, 5, s.Value(skills.AttrWill))
	assert.Equal(t, 6, s.Value(skills.AttrVitality))
	assert.Equal(t, 0, s.Value(skills.Attribute("bogus")))
}

func TestPositionDistances(t *testing.T) {
	a := combat.Position{X: 0, Y: 0}
	b := combat.Position{X: 3, Y: -2}

	assert.Equal(t, 5, combat.ManhattanDistance(a, b))
	assert.Equal(t, 3, combat.KingMoveDistance(a, b))
	assert.Equal(t, 0, combat.ManhattanDistance(a, a))
	assert.Equal(t, 1, combat.KingMoveDistance(a, combat.Position{X: 1, Y: 1}), "diagonal is one king move")
}
