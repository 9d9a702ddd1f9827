package conditions

// Modifiers is the aggregate of every recognized numeric effect across a
// unit's active conditions. Additive keys are summed; the move multiplier is
// multiplied; flags are OR-ed.
type Modifiers struct {
	DodgeChance   int `json:"dodge_chance"`
	CritChance    int `json:"crit_chance"`
	MissChance    int `json:"miss_chance"`
	FlatDamage    int `json:"flat_damage"`
	PercentDamage int `json:"percent_damage"`

	Combat     int `json:"combat"`
	Speed      int `json:"speed"`
	Focus      int `json:"focus"`
	Resistance int `json:"resistance"`
	Will       int `json:"will"`
	Vitality   int `json:"vitality"`
	Armor      int `json:"armor"`

	MoveBonus      int     `json:"move_bonus"`
	MoveMultiplier float64 `json:"move_multiplier"`

	DamagePerTurn int `json:"damage_per_turn"`
	HealPerTurn   int `json:"heal_per_turn"`

	AttackAdvantage  int `json:"attack_advantage"`
	DefenseAdvantage int `json:"defense_advantage"`

	Taunt        bool `json:"taunt"`
	Invisible    bool `json:"invisible"`
	Flying       bool `json:"flying"`
	ExtraAttacks int  `json:"extra_attacks"`
}

// ScanResult is the outcome of checking a unit's conditions against an
// intended action.
type ScanResult struct {
	CanPerform bool
	// BlockedBy is the display name of the first blocking condition
	BlockedBy string
	Modifiers Modifiers
	// ExpireNow lists on_action conditions the caller must strip exactly
	// once after committing the action.
	ExpireNow []ConditionID
}

// ScanForAction walks the active conditions in order and computes whether the
// action is legal plus the net modifiers. Unknown IDs are skipped. The scan
// itself never mutates anything; identical inputs give identical results.
func ScanForAction(catalog *Catalog, active []Active, action ActionName) ScanResult {
	result := ScanResult{
		CanPerform: true,
		Modifiers:  Modifiers{MoveMultiplier: 1},
	}

	specific := blockFor(action)

	for _, a := range active {
		def := catalog.Get(a.ID)
		if def == nil {
			continue
		}

		if result.CanPerform && (def.Effects[EffectBlockAll] != 0 || def.Effects[specific] != 0) {
			// First blocking condition wins the reason
			result.CanPerform = false
			result.BlockedBy = def.Name
		}

		accumulate(&result.Modifiers, def.Effects)

		if def.Expiry == ExpiryOnAction {
			result.ExpireNow = append(result.ExpireNow, a.ID)
		}
	}

	clampPercent(&result.Modifiers.DodgeChance)
	clampPercent(&result.Modifiers.CritChance)
	clampPercent(&result.Modifiers.MissChance)

	return result
}

// accumulate folds one effects bag into the running modifiers. Only known
// keys are matched; stray keys in data are ignored.
func accumulate(m *Modifiers, effects map[EffectKey]float64) {
	for key, value := range effects {
		switch key {
		case EffectDodgeChance:
			m.DodgeChance += int(value)
		case EffectCritChance:
			m.CritChance += int(value)
		case EffectMissChance:
			m.MissChance += int(value)
		case EffectFlatDamage:
			m.FlatDamage += int(value)
		case EffectPercentDamage:
			m.PercentDamage += int(value)
		case EffectCombatMod:
			m.Combat += int(value)
		case EffectSpeedMod:
			m.Speed += int(value)
		case EffectFocusMod:
			m.Focus += int(value)
		case EffectResistanceMod:
			m.Resistance += int(value)
		case EffectWillMod:
			m.Will += int(value)
		case EffectVitalityMod:
			m.Vitality += int(value)
		case EffectArmorMod:
			m.Armor += int(value)
		case EffectMoveBonus:
			m.MoveBonus += int(value)
		case EffectMoveMultiplier:
			m.MoveMultiplier *= value
		case EffectDamagePerTurn:
			m.DamagePerTurn += int(value)
		case EffectHealPerTurn:
			m.HealPerTurn += int(value)
		case EffectAttackAdvantage:
			m.AttackAdvantage += int(value)
		case EffectDefenseAdvantage:
			m.DefenseAdvantage += int(value)
		case EffectTaunt:
			m.Taunt = m.Taunt || value != 0
		case EffectInvisible:
			m.Invisible = m.Invisible || value != 0
		case EffectFlying:
			m.Flying = m.Flying || value != 0
		case EffectExtraAttacks:
			m.ExtraAttacks += int(value)
		}
	}
}

// Apply adds a condition instance to the list, honoring stacking rules.
// Unknown IDs are no-ops. Re-applying a non-stackable condition refreshes its
// duration instead of duplicating it.
func Apply(catalog *Catalog, active []Active, id ConditionID) []Active {
	def := catalog.Get(id)
	if def == nil {
		return active
	}

	instances := 0
	for i := range active {
		if active[i].ID != id {
			continue
		}
		instances++
		if !def.Stackable {
			if def.Expiry == ExpiryDuration {
				active[i].RoundsLeft = def.DurationRounds
			}
			return active
		}
	}

	if def.Stackable && def.MaxStacks > 0 && instances >= def.MaxStacks {
		return active
	}

	inst := Active{ID: id}
	if def.Expiry == ExpiryDuration {
		inst.RoundsLeft = def.DurationRounds
	}
	return append(active, inst)
}

// Remove strips one instance per listed ID
func Remove(active []Active, ids []ConditionID) []Active {
	for _, id := range ids {
		for i := range active {
			if active[i].ID == id {
				active = append(active[:i], active[i+1:]...)
				break
			}
		}
	}
	return active
}

// RemoveAll strips every instance of the ID
func RemoveAll(active []Active, id ConditionID) []Active {
	kept := active[:0]
	for _, a := range active {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	return kept
}

// ExpireEndOfTurn drops end_of_turn conditions; everything else survives
func ExpireEndOfTurn(catalog *Catalog, active []Active) []Active {
	return filter(catalog, active, func(def *Definition, a *Active) bool {
		return def.Expiry != ExpiryEndOfTurn
	})
}

// ExpireNextTurn drops next_turn conditions and ticks duration-policy
// conditions down one round, dropping those that reach zero. Invoked by the
// turn machine at the round rollover, battle-wide.
func ExpireNextTurn(catalog *Catalog, active []Active) []Active {
	return filter(catalog, active, func(def *Definition, a *Active) bool {
		switch def.Expiry {
		case ExpiryNextTurn:
			return false
		case ExpiryDuration:
			a.RoundsLeft--
			return a.RoundsLeft > 0
		default:
			return true
		}
	})
}

// ExpireEndOfBattle drops end_of_battle conditions at teardown
func ExpireEndOfBattle(catalog *Catalog, active []Active) []Active {
	return filter(catalog, active, func(def *Definition, a *Active) bool {
		return def.Expiry != ExpiryEndOfBattle
	})
}

func filter(catalog *Catalog, active []Active, keep func(*Definition, *Active) bool) []Active {
	kept := make([]Active, 0, len(active))
	for _, a := range active {
		def := catalog.Get(a.ID)
		if def == nil {
			// Stale IDs are dropped rather than allowed to linger
			continue
		}
		if keep(def, &a) {
			kept = append(kept, a)
		}
	}
	return kept
}

// SumEffect totals a named effect value across every active condition
func SumEffect(catalog *Catalog, active []Active, key EffectKey) float64 {
	var sum float64
	for _, a := range active {
		if def := catalog.Get(a.ID); def != nil {
			sum += def.Effects[key]
		}
	}
	return sum
}

// MaxEffect returns the largest value of a named effect across the active set
func MaxEffect(catalog *Catalog, active []Active, key EffectKey) float64 {
	var max float64
	for _, a := range active {
		if def := catalog.Get(a.ID); def != nil {
			if v := def.Effects[key]; v > max {
				max = v
			}
		}
	}
	return max
}

// HasEffect reports whether any active condition sets a named effect
func HasEffect(catalog *Catalog, active []Active, key EffectKey) bool {
	for _, a := range active {
		if def := catalog.Get(a.ID); def != nil {
			if _, ok := def.Effects[key]; ok {
				return true
			}
		}
	}
	return false
}

// Has reports whether the ID is present in the active set
func Has(active []Active, id ConditionID) bool {
	for _, a := range active {
		if a.ID == id {
			return true
		}
	}
	return false
}

func clampPercent(v *int) {
	if *v < 0 {
		*v = 0
	}
	if *v > 100 {
		*v = 100
	}
}
