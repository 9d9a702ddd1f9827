package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyrin/skirmish/internal/dice"
)

func TestSuccessThreshold(t *testing.T) {
	tests := []struct {
		name          string
		advantageMod  int
		wantThreshold int
	}{
		{name: "no advantage", advantageMod: 0, wantThreshold: 4},
		{name: "advantage 1", advantageMod: 1, wantThreshold: 3},
		{name: "advantage 2", advantageMod: 2, wantThreshold: 2},
		{name: "disadvantage 1", advantageMod: -1, wantThreshold: 5},
		{name: "disadvantage 2", advantageMod: -2, wantThreshold: 6},
		{name: "clamped above", advantageMod: 5, wantThreshold: 2},
		{name: "clamped below", advantageMod: -5, wantThreshold: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantThreshold, dice.SuccessThreshold(tt.advantageMod))
		})
	}
}

func TestSuccessThreshold_StrictlyDecreasing(t *testing.T) {
	prev := dice.SuccessThreshold(dice.MinAdvantage)
	for adv := dice.MinAdvantage + 1; adv <= dice.MaxAdvantage; adv++ {
		cur := dice.SuccessThreshold(adv)
		assert.Less(t, cur, prev, "threshold must strictly decrease as advantage rises (adv=%d)", adv)
		prev = cur
	}
}

func TestRollTest_ExplodedDiceJoinThePool(t *testing.T) {
	// Rolls [6,3,4,2,6]: both sixes explode into one extra die each.
	roller := dice.NewMockRoller()
	roller.SetRolls([]int{6, 2, 3, 4, 2, 6, 5})

	result, err := dice.RollTest(roller, 5, 0)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Threshold)
	assert.Equal(t, 5, result.DiceCount)
	assert.Equal(t, 2, result.Explosions)
	assert.Len(t, result.Values, 7, "5 base dice plus 2 explosion dice")

	// Successes are counted only among dice >= 4: base 6, base 4, base 6,
	// and the exploded 5.
	assert.Equal(t, 4, result.Successes)
}

func TestRollTest_SixAlwaysExplodes(t *testing.T) {
	tests := []struct {
		name         string
		advantageMod int
	}{
		{name: "threshold 4", advantageMod: 0},
		{name: "threshold 2", advantageMod: 2},
		{name: "threshold 6", advantageMod: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := dice.NewMockRoller()
			roller.SetRolls([]int{6, 1})

			result, err := dice.RollTest(roller, 1, tt.advantageMod)
			require.NoError(t, err)

			require.Len(t, result.Dice, 1)
			assert.True(t, result.Dice[0].Exploded)
			require.NotNil(t, result.Dice[0].Explosion)
			assert.Equal(t, 1, result.Dice[0].Explosion.Value)
		})
	}
}

func TestRollTest_ExplosionDepthCap(t *testing.T) {
	// A run of nothing but sixes must stop at the recursion cap.
	rolls := make([]int, dice.MaxExplosionDepth+5)
	for i := range rolls {
		rolls[i] = 6
	}
	roller := dice.NewMockRoller()
	roller.SetRolls(rolls)

	result, err := dice.RollTest(roller, 1, 0)
	require.NoError(t, err)

	assert.Equal(t, dice.MaxExplosionDepth, result.Explosions)
	assert.Len(t, result.Values, dice.MaxExplosionDepth+1)

	// The deepest die shows a 6 but is not marked exploded.
	deepest := result.Dice[0]
	for deepest.Explosion != nil {
		deepest = deepest.Explosion
	}
	assert.Equal(t, 6, deepest.Value)
	assert.False(t, deepest.Exploded)
}

func TestRollTest_InvalidDiceCount(t *testing.T) {
	roller := dice.NewMockRoller()
	_, err := dice.RollTest(roller, 0, 0)
	assert.Error(t, err)
}

func TestRollTest_Bounds(t *testing.T) {
	// Property check over the full advantage band with a real roller.
	roller := dice.NewSeededRoller(42)

	for adv := dice.MinAdvantage; adv <= dice.MaxAdvantage; adv++ {
		for count := 1; count <= 8; count++ {
			result, err := dice.RollTest(roller, count, adv)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, result.Successes, 0)
			assert.LessOrEqual(t, result.Successes, count+result.Explosions)
			assert.GreaterOrEqual(t, result.Threshold, 2)
			assert.LessOrEqual(t, result.Threshold, 6)
			assert.Len(t, result.Values, count+result.Explosions)
		}
	}
}

func TestRollContested(t *testing.T) {
	tests := []struct {
		name         string
		rolls        []int
		attackerDice int
		defenderDice int
		wantMargin   int
		wantWin      bool
	}{
		{
			name: "attacker wins by two",
			// Attacker 4,5,5 = 3 successes; defender 4,1 = 1 success.
			rolls:        []int{4, 5, 5, 4, 1},
			attackerDice: 3,
			defenderDice: 2,
			wantMargin:   2,
			wantWin:      true,
		},
		{
			name:         "tie is a non-win",
			rolls:        []int{4, 1, 5, 2},
			attackerDice: 2,
			defenderDice: 2,
			wantMargin:   0,
			wantWin:      false,
		},
		{
			name:         "defender wins",
			rolls:        []int{1, 2, 4, 5},
			attackerDice: 2,
			defenderDice: 2,
			wantMargin:   -2,
			wantWin:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := dice.NewMockRoller()
			roller.SetRolls(tt.rolls)

			result, err := dice.RollContested(roller, tt.attackerDice, tt.defenderDice, 0, 0)
			require.NoError(t, err)

			assert.Equal(t, tt.wantMargin, result.Margin)
			assert.Equal(t, tt.wantWin, result.AttackerWins)
		})
	}
}

func TestRollContested_DamageMatchesHelper(t *testing.T) {
	// Attacker rolls 3 successes, defender 1: margin 2, damage 2 x combat.
	roller := dice.NewMockRoller()
	roller.SetRolls([]int{4, 4, 5, 1, 4, 2})

	result, err := dice.RollContested(roller, 3, 3, 0, 0)
	require.NoError(t, err)

	require.True(t, result.AttackerWins)
	require.Equal(t, 2, result.Margin)

	combat := 5
	assert.Equal(t, 2*combat, dice.DamageFromSuccesses(result.Margin, combat, 0))
}

func TestRollMultiTargetAttack(t *testing.T) {
	// One attack roll (4,5 = 2 successes) against two defenders: the first
	// defends with 2 successes (miss), the second with 0 (hit).
	roller := dice.NewMockRoller()
	roller.SetRolls([]int{4, 5, 5, 4, 1, 2})

	result, err := dice.RollMultiTargetAttack(roller, 2, 0, []dice.Defender{
		{ID: "a", Dice: 2},
		{ID: "b", Dice: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Attack.Successes)
	require.Len(t, result.Targets, 2)

	assert.False(t, result.Targets[0].Hit, "first defender matched the attack")
	assert.Equal(t, 0, result.Targets[0].Margin)

	assert.True(t, result.Targets[1].Hit)
	assert.Equal(t, 2, result.Targets[1].Margin)
}

func TestDamageFromSuccesses(t *testing.T) {
	tests := []struct {
		name      string
		successes int
		attribute int
		flatBonus int
		want      int
	}{
		{name: "two successes combat five", successes: 2, attribute: 5, flatBonus: 0, want: 10},
		{name: "with flat bonus", successes: 3, attribute: 4, flatBonus: 2, want: 14},
		{name: "zero successes", successes: 0, attribute: 5, flatBonus: 3, want: 0},
		{name: "negative successes", successes: -1, attribute: 5, flatBonus: 3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dice.DamageFromSuccesses(tt.successes, tt.attribute, tt.flatBonus))
		})
	}
}

func TestDefenseReduction(t *testing.T) {
	tests := []struct {
		name      string
		successes int
		attribute int
		want      int
	}{
		{name: "attribute four", successes: 2, attribute: 4, want: 4},
		{name: "odd attribute floors", successes: 3, attribute: 3, want: 4}, // 3 * 1.5 = 4.5
		{name: "minimum half point", successes: 3, attribute: 0, want: 1},   // 3 * 0.5 = 1.5
		{name: "zero successes", successes: 0, attribute: 6, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dice.DefenseReduction(tt.successes, tt.attribute))
		})
	}
}
