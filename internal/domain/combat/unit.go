package combat

import (
	"github.com/veyrin/skirmish/internal/domain/conditions"
	"github.com/veyrin/skirmish/internal/domain/skills"
)

// Stats are the six base attributes of a unit
type Stats struct {
	Combat     int `json:"combat"`
	Speed      int `json:"speed"`
	Focus      int `json:"focus"`
	Resistance int `json:"resistance"`
	Will       int `json:"will"`
	Vitality   int `json:"vitality"`
}

// Value looks a stat up by attribute name
func (s Stats) Value(attr skills.Attribute) int {
	switch attr {
	case skills.AttrCombat:
		return s.Combat
	case skills.AttrSpeed:
		return s.Speed
	case skills.AttrFocus:
		return s.Focus
	case skills.AttrResistance:
		return s.Resistance
	case skills.AttrWill:
		return s.Will
	case skills.AttrVitality:
		return s.Vitality
	default:
		return 0
	}
}

// Pool is a current/max pair that never exceeds its max or drops below zero
type Pool struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Drain removes up to amount from the pool and returns how much was absorbed
func (p *Pool) Drain(amount int) int {
	if amount <= 0 || p.Current <= 0 {
		return 0
	}
	absorbed := amount
	if absorbed > p.Current {
		absorbed = p.Current
	}
	p.Current -= absorbed
	return absorbed
}

// Add restores up to amount, clamped at max, and returns the actual gain
func (p *Pool) Add(amount int) int {
	if amount <= 0 {
		return 0
	}
	gained := amount
	if p.Current+gained > p.Max {
		gained = p.Max - p.Current
	}
	p.Current += gained
	return gained
}

// Unit is one combat participant. It is assembled externally from a party's
// roster and only mutated by the battle that owns it.
type Unit struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`

	Stats Stats `json:"stats"`
	// Armor is a flat damage reduction applied after dice resolution
	Armor int `json:"armor"`

	HP       Pool     `json:"hp"`
	Mana     Pool     `json:"mana"`
	Position Position `json:"position"`

	// Per-turn action economy
	MovesPerTurn   int `json:"moves_per_turn"`
	ActionsPerTurn int `json:"actions_per_turn"`
	AttacksPerTurn int `json:"attacks_per_turn"`
	ActionMarks    int `json:"action_marks"`

	MovesLeft   int `json:"moves_left"`
	ActionsLeft int `json:"actions_left"`
	AttacksLeft int `json:"attacks_left"`
	// BonusAttacksUsed counts reckless extra attacks spent this turn
	BonusAttacksUsed int `json:"bonus_attacks_used"`

	PhysicalProtection Pool `json:"physical_protection"`
	MagicalProtection  Pool `json:"magical_protection"`

	Features   []skills.Code       `json:"features"`
	Conditions []conditions.Active `json:"conditions"`
	Cooldowns  map[skills.Code]int `json:"cooldowns"`

	Alive bool `json:"alive"`
}

// KnowsSkill reports whether the unit has the feature code
func (u *Unit) KnowsSkill(code skills.Code) bool {
	for _, f := range u.Features {
		if f == code {
			return true
		}
	}
	return false
}

// CooldownFor returns the remaining cooldown rounds for a skill
func (u *Unit) CooldownFor(code skills.Code) int {
	if u.Cooldowns == nil {
		return 0
	}
	return u.Cooldowns[code]
}

// SetCooldown records a skill's cooldown
func (u *Unit) SetCooldown(code skills.Code, rounds int) {
	if rounds <= 0 {
		return
	}
	if u.Cooldowns == nil {
		u.Cooldowns = make(map[skills.Code]int)
	}
	u.Cooldowns[code] = rounds
}

// TickCooldowns decrements every positive cooldown by one
func (u *Unit) TickCooldowns() {
	for code, remaining := range u.Cooldowns {
		if remaining > 0 {
			u.Cooldowns[code] = remaining - 1
		}
		if u.Cooldowns[code] <= 0 {
			delete(u.Cooldowns, code)
		}
	}
}

// ApplyPhysicalDamage drains physical protection first, then hit points.
// Returns the HP actually lost. Flips Alive when HP reaches zero.
func (u *Unit) ApplyPhysicalDamage(amount int) int {
	return u.applyDamage(amount, &u.PhysicalProtection)
}

// ApplyMagicDamage drains magical protection first, then hit points
func (u *Unit) ApplyMagicDamage(amount int) int {
	return u.applyDamage(amount, &u.MagicalProtection)
}

// ApplyTrueDamage bypasses both protection pools (per-turn burns, poisons)
func (u *Unit) ApplyTrueDamage(amount int) int {
	return u.applyDamage(amount, nil)
}

func (u *Unit) applyDamage(amount int, protection *Pool) int {
	if amount <= 0 || !u.Alive {
		return 0
	}

	if protection != nil {
		amount -= protection.Drain(amount)
	}

	lost := u.HP.Drain(amount)
	if u.HP.Current == 0 {
		u.Alive = false
	}
	return lost
}

// Heal restores hit points, clamped at max. Dead units stay dead.
func (u *Unit) Heal(amount int) int {
	if !u.Alive {
		return 0
	}
	return u.HP.Add(amount)
}

// RestorePhysicalProtection refills the physical pool and returns the gain
func (u *Unit) RestorePhysicalProtection(amount int) int {
	return u.PhysicalProtection.Add(amount)
}

// SpendMana removes mana, clamped at zero
func (u *Unit) SpendMana(amount int) {
	u.Mana.Drain(amount)
}

// SpendAction decrements the action budget, clamped at zero
func (u *Unit) SpendAction() {
	if u.ActionsLeft > 0 {
		u.ActionsLeft--
	}
}

// Unprotected reports whether both absorption pools are empty
func (u *Unit) Unprotected() bool {
	return u.PhysicalProtection.Current == 0 && u.MagicalProtection.Current == 0
}

// ResetTurnEconomy restores the per-turn budgets at a round rollover
func (u *Unit) ResetTurnEconomy() {
	u.MovesLeft = u.MovesPerTurn
	u.ActionsLeft = u.ActionsPerTurn
	u.AttacksLeft = u.AttacksPerTurn
	u.BonusAttacksUsed = 0
}

// CanActFurther reports whether any of the unit's budgets remain
func (u *Unit) CanActFurther() bool {
	return u.Alive && (u.MovesLeft > 0 || u.ActionsLeft > 0 || u.AttacksLeft > 0)
}
