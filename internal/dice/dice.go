package dice

import (
	"errors"
	"math"
)

const (
	// DieSides is the face count used by every combat test
	DieSides = 6

	// MaxExplosionDepth caps recursive explosion re-rolls so a test always terminates
	MaxExplosionDepth = 10

	// MinAdvantage and MaxAdvantage bound the advantage modifier
	MinAdvantage = -2
	MaxAdvantage = 2

	baseThreshold = 4
	minThreshold  = 2
	maxThreshold  = 6
)

// DieResult holds one die of a test, including any explosion chain
type DieResult struct {
	Value     int        `json:"value"`
	Success   bool       `json:"success"`
	Exploded  bool       `json:"exploded"`
	Explosion *DieResult `json:"explosion,omitempty"`
}

// RollResult is the full outcome of a dice test
type RollResult struct {
	DiceCount    int          `json:"dice_count"`
	AdvantageMod int          `json:"advantage_mod"`
	Threshold    int          `json:"threshold"`
	Dice         []*DieResult `json:"dice"`
	Successes    int          `json:"successes"`
	Explosions   int          `json:"explosions"`
	Values       []int        `json:"values"`
}

// ContestResult compares an attack test against a defense test
type ContestResult struct {
	Attack       *RollResult `json:"attack"`
	Defense      *RollResult `json:"defense"`
	Margin       int         `json:"margin"`
	AttackerWins bool        `json:"attacker_wins"`
}

// Defender describes one defense roll of a multi-target attack
type Defender struct {
	ID        string
	Dice      int
	Advantage int
}

// TargetOutcome is the per-defender comparison of a multi-target attack
type TargetOutcome struct {
	ID      string      `json:"id"`
	Defense *RollResult `json:"defense"`
	Margin  int         `json:"margin"`
	Hit     bool        `json:"hit"`
}

// MultiTargetResult holds one attack roll compared against every defender
type MultiTargetResult struct {
	Attack  *RollResult     `json:"attack"`
	Targets []TargetOutcome `json:"targets"`
}

// SuccessThreshold resolves the face a die must meet to count as a success.
// Advantage lowers the threshold, disadvantage raises it.
func SuccessThreshold(advantageMod int) int {
	t := baseThreshold - clampAdvantage(advantageMod)
	if t < minThreshold {
		t = minThreshold
	}
	if t > maxThreshold {
		t = maxThreshold
	}
	return t
}

// RollTest rolls diceCount six-sided dice against the advantage-adjusted
// threshold. A die showing 6 always explodes into one recursive re-roll
// evaluated against the same threshold, up to MaxExplosionDepth.
func RollTest(r Roller, diceCount, advantageMod int) (*RollResult, error) {
	if diceCount < 1 {
		return nil, errors.New("invalid dice count")
	}

	result := &RollResult{
		DiceCount:    diceCount,
		AdvantageMod: clampAdvantage(advantageMod),
		Threshold:    SuccessThreshold(advantageMod),
	}

	for i := 0; i < diceCount; i++ {
		die, err := rollDie(r, result.Threshold, 0)
		if err != nil {
			return nil, err
		}
		result.Dice = append(result.Dice, die)
	}

	for _, die := range result.Dice {
		tally(result, die)
	}

	return result, nil
}

// RollContested rolls an attack test against a defense test. Ties are
// explicit non-wins for the attacker.
func RollContested(r Roller, attackerDice, defenderDice, attackerAdv, defenderAdv int) (*ContestResult, error) {
	attack, err := RollTest(r, attackerDice, attackerAdv)
	if err != nil {
		return nil, err
	}

	defense, err := RollTest(r, defenderDice, defenderAdv)
	if err != nil {
		return nil, err
	}

	margin := attack.Successes - defense.Successes
	return &ContestResult{
		Attack:       attack,
		Defense:      defense,
		Margin:       margin,
		AttackerWins: margin > 0,
	}, nil
}

// RollMultiTargetAttack rolls the attacker once and compares that single roll
// against an independent defense roll per defender, so an area attack can hit
// some targets and miss others.
func RollMultiTargetAttack(r Roller, attackerDice, attackerAdv int, defenders []Defender) (*MultiTargetResult, error) {
	attack, err := RollTest(r, attackerDice, attackerAdv)
	if err != nil {
		return nil, err
	}

	result := &MultiTargetResult{Attack: attack}
	for _, d := range defenders {
		dice := d.Dice
		if dice < 1 {
			dice = 1
		}
		defense, err := RollTest(r, dice, d.Advantage)
		if err != nil {
			return nil, err
		}
		margin := attack.Successes - defense.Successes
		result.Targets = append(result.Targets, TargetOutcome{
			ID:      d.ID,
			Defense: defense,
			Margin:  margin,
			Hit:     margin > 0,
		})
	}

	return result, nil
}

// DamageFromSuccesses converts net successes into raw damage
func DamageFromSuccesses(successes, attribute, flatBonus int) int {
	if successes <= 0 {
		return 0
	}
	return successes*attribute + flatBonus
}

// DefenseReduction converts net successes into mitigated damage,
// floored, with a minimum of half a point per success.
func DefenseReduction(successes, defenderAttribute int) int {
	if successes <= 0 {
		return 0
	}
	perSuccess := float64(defenderAttribute) / 2
	if perSuccess < 0.5 {
		perSuccess = 0.5
	}
	return int(math.Floor(float64(successes) * perSuccess))
}

func rollDie(r Roller, threshold, depth int) (*DieResult, error) {
	value, err := r.RollDie(DieSides)
	if err != nil {
		return nil, err
	}

	die := &DieResult{
		Value:   value,
		Success: value >= threshold,
	}

	// A 6 always explodes, independent of the threshold
	if value == DieSides && depth < MaxExplosionDepth {
		die.Exploded = true
		die.Explosion, err = rollDie(r, threshold, depth+1)
		if err != nil {
			return nil, err
		}
	}

	return die, nil
}

func tally(result *RollResult, die *DieResult) {
	result.Values = append(result.Values, die.Value)
	if die.Success {
		result.Successes++
	}
	if die.Exploded {
		result.Explosions++
		tally(result, die.Explosion)
	}
}

func clampAdvantage(adv int) int {
	if adv < MinAdvantage {
		return MinAdvantage
	}
	if adv > MaxAdvantage {
		return MaxAdvantage
	}
	return adv
}
