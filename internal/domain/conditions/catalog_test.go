package conditions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyrin/skirmish/internal/domain/conditions"
)

// recognizedKeys mirrors the full set of keys the aggregation matches. Any
// new effect key must be added here and to the accumulator together.
var recognizedKeys = map[conditions.EffectKey]bool{
	conditions.EffectBlockAll:         true,
	conditions.EffectBlockMove:        true,
	conditions.EffectBlockAttack:      true,
	conditions.EffectBlockSkill:       true,
	conditions.EffectBlockDash:        true,
	conditions.EffectBlockDodge:       true,
	conditions.EffectDodgeChance:      true,
	conditions.EffectCritChance:       true,
	conditions.EffectMissChance:       true,
	conditions.EffectFlatDamage:       true,
	conditions.EffectPercentDamage:    true,
	conditions.EffectCombatMod:        true,
	conditions.EffectSpeedMod:         true,
	conditions.EffectFocusMod:         true,
	conditions.EffectResistanceMod:    true,
	conditions.EffectWillMod:          true,
	conditions.EffectVitalityMod:      true,
	conditions.EffectArmorMod:         true,
	conditions.EffectMoveBonus:        true,
	conditions.EffectMoveMultiplier:   true,
	conditions.EffectDamagePerTurn:    true,
	conditions.EffectHealPerTurn:      true,
	conditions.EffectAttackAdvantage:  true,
	conditions.EffectDefenseAdvantage: true,
	conditions.EffectTaunt:            true,
	conditions.EffectInvisible:        true,
	conditions.EffectFlying:           true,
	conditions.EffectExtraAttacks:     true,
}

func TestDefaultCatalog_EffectKeysRecognized(t *testing.T) {
	catalog := conditions.DefaultCatalog()

	for _, id := range catalog.IDs() {
		def := catalog.Get(id)
		require.NotNil(t, def)
		for key := range def.Effects {
			assert.True(t, recognizedKeys[key],
				"condition %s carries unrecognized effect key %q", id, key)
		}
	}
}

func TestDefaultCatalog_WellKnownEntries(t *testing.T) {
	catalog := conditions.DefaultCatalog()

	tests := []struct {
		id     conditions.ConditionID
		expiry conditions.ExpiryPolicy
	}{
		{conditions.Frozen, conditions.ExpiryDuration},
		{conditions.Stunned, conditions.ExpiryNextTurn},
		{conditions.Invisible, conditions.ExpiryOnAction},
		{conditions.Guarded, conditions.ExpiryEndOfTurn},
		{conditions.RecklessAttack, conditions.ExpiryPermanent},
		{conditions.Ironhide, conditions.ExpiryPermanent},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			def := catalog.Get(tt.id)
			require.NotNil(t, def)
			assert.Equal(t, tt.expiry, def.Expiry)
			assert.NotEmpty(t, def.Name)
		})
	}
}

func TestDefaultCatalog_StackableHaveMaxStacks(t *testing.T) {
	catalog := conditions.DefaultCatalog()

	for _, id := range catalog.IDs() {
		def := catalog.Get(id)
		if def.Stackable {
			assert.Greater(t, def.MaxStacks, 0, "stackable condition %s needs a stack cap", id)
		}
	}
}
