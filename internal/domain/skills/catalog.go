package skills

import (
	"github.com/veyrin/skirmish/internal/domain/conditions"
)

// Well-known skill codes
const (
	PowerStrike  Code = "power_strike"
	Cleave       Code = "cleave"
	Charge       Code = "charge"
	GuardStance  Code = "guard_stance"
	Taunt        Code = "taunt"
	Fireball     Code = "fireball"
	FrostBolt    Code = "frost_bolt"
	MendWounds   Code = "mend_wounds"
	SmokeVeil    Code = "smoke_veil"
	BattleFocus  Code = "battle_focus"
	WarCry       Code = "war_cry"
	Ironhide     Code = "ironhide"
	FleetFooted  Code = "fleet_footed"
	BerserkBlood Code = "berserker_blood"
)

// Executor names registered in the skill service
const (
	ExecPowerStrike    = "power_strike"
	ExecCleave         = "cleave"
	ExecCharge         = "charge"
	ExecGuardStance    = "guard_stance"
	ExecFireball       = "fireball"
	ExecFrostBolt      = "frost_bolt"
	ExecMendWounds     = "mend_wounds"
	ExecApplyCondition = "apply_condition"
)

// Catalog is the immutable skill registry, loaded once at process start
type Catalog struct {
	defs map[Code]*Definition
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{defs: make(map[Code]*Definition)}
}

// Register adds a definition to the catalog
func (c *Catalog) Register(def *Definition) {
	c.defs[def.Code] = def
}

// Get returns the definition for a code, or nil if unknown
func (c *Catalog) Get(code Code) *Definition {
	return c.defs[code]
}

// Codes returns every registered skill code
func (c *Catalog) Codes() []Code {
	codes := make([]Code, 0, len(c.defs))
	for code := range c.defs {
		codes = append(codes, code)
	}
	return codes
}

// Passives returns every passive definition
func (c *Catalog) Passives() []*Definition {
	var out []*Definition
	for _, def := range c.defs {
		if def.Category == CategoryPassive {
			out = append(out, def)
		}
	}
	return out
}

// DefaultCatalog returns the built-in skill definitions
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, def := range defaultDefinitions {
		c.Register(def)
	}
	return c
}

var defaultDefinitions = []*Definition{
	{
		Code:        PowerStrike,
		Name:        "Power Strike",
		Description: "A heavy blow that trades finesse for force.",
		Category:    CategoryActive,
		CostTier:    TierMinor,
		Range:       Range{Kind: RangeMelee},
		TargetType:  TargetEnemy,
		Executor:    ExecPowerStrike,
		Cooldown:    1,
		DamageFlat:  2,
	},
	{
		Code:        Cleave,
		Name:        "Cleave",
		Description: "One sweeping attack against every adjacent enemy.",
		Category:    CategoryActive,
		CostTier:    TierStandard,
		ManaCost:    1,
		Range:       Range{Kind: RangeMelee},
		TargetType:  TargetEnemy,
		Executor:    ExecCleave,
		Cooldown:    2,
	},
	{
		Code:        Charge,
		Name:        "Charge",
		Description: "Close the gap and strike in the same motion.",
		Category:    CategoryActive,
		CostTier:    TierStandard,
		Range:       Range{Kind: RangeRanged, Attribute: AttrSpeed},
		TargetType:  TargetEnemy,
		Executor:    ExecCharge,
		Cooldown:    2,
		DamageFlat:  1,
	},
	{
		Code:        GuardStance,
		Name:        "Guard Stance",
		Description: "Raise the shield, restoring physical protection.",
		Category:    CategoryActive,
		CostTier:    TierMinor,
		Range:       Range{Kind: RangeSelf},
		TargetType:  TargetSelf,
		Executor:    ExecGuardStance,
		Condition:   conditions.Guarded,
		Cooldown:    1,
	},
	{
		Code:        Taunt,
		Name:        "Taunt",
		Description: "Goad an enemy into attacking you.",
		Category:    CategoryActive,
		CostTier:    TierMinor,
		Range:       Range{Kind: RangeRanged, Override: 3},
		TargetType:  TargetEnemy,
		Executor:    ExecApplyCondition,
		Condition:   conditions.Taunted,
		Cooldown:    2,
	},
	{
		Code:        Fireball,
		Name:        "Fireball",
		Description: "A burst of flame that engulfs an area.",
		Category:    CategoryActive,
		CostTier:    TierMajor,
		ManaCost:    4,
		Range:       Range{Kind: RangeArea, Attribute: AttrFocus},
		Radius:      1,
		TargetType:  TargetGround,
		Executor:    ExecFireball,
		Cooldown:    3,
	},
	{
		Code:        FrostBolt,
		Name:        "Frost Bolt",
		Description: "A lance of cold that slows whatever it strikes.",
		Category:    CategoryActive,
		CostTier:    TierStandard,
		ManaCost:    2,
		Range:       Range{Kind: RangeRanged, Attribute: AttrFocus},
		TargetType:  TargetEnemy,
		Executor:    ExecFrostBolt,
		Condition:   conditions.Slowed,
		Cooldown:    1,
	},
	{
		Code:        MendWounds,
		Name:        "Mend Wounds",
		Description: "Knit an ally's wounds from a distance.",
		Category:    CategoryActive,
		CostTier:    TierStandard,
		ManaCost:    3,
		Range:       Range{Kind: RangeRanged, Override: 4},
		TargetType:  TargetAlly,
		Executor:    ExecMendWounds,
		Cooldown:    1,
	},
	{
		Code:        SmokeVeil,
		Name:        "Smoke Veil",
		Description: "Vanish in a plume of smoke until your next action.",
		Category:    CategoryActive,
		CostTier:    TierStandard,
		ManaCost:    2,
		Range:       Range{Kind: RangeSelf},
		TargetType:  TargetSelf,
		Executor:    ExecApplyCondition,
		Condition:   conditions.Invisible,
		Cooldown:    3,
	},
	{
		Code:        BattleFocus,
		Name:        "Battle Focus",
		Description: "A breath and a narrowed eye. Costs no action.",
		Category:    CategoryActive,
		CostTier:    TierMinor,
		Range:       Range{Kind: RangeSelf},
		TargetType:  TargetSelf,
		Executor:    ExecApplyCondition,
		Condition:   conditions.BattleFocus,
		FreeAction:  true,
		Cooldown:    2,
	},
	{
		Code:        WarCry,
		Name:        "War Cry",
		Description: "A bellow that shakes a distant enemy's resolve.",
		Category:    CategoryActive,
		CostTier:    TierMinor,
		Range:       Range{Kind: RangeRanged, Override: 3},
		TargetType:  TargetEnemy,
		Executor:    ExecApplyCondition,
		Condition:   conditions.Stunned,
		Cooldown:    4,
	},
	{
		Code:        Ironhide,
		Name:        "Ironhide",
		Description: "Skin like tanned leather over iron.",
		Category:    CategoryPassive,
		Condition:   conditions.Ironhide,
	},
	{
		Code:        FleetFooted,
		Name:        "Fleet Footed",
		Description: "Always a stride ahead.",
		Category:    CategoryPassive,
		Condition:   conditions.FleetFooted,
	},
	{
		Code:        BerserkBlood,
		Name:        "Berserker Blood",
		Description: "Fury grants extra attacks while unprotected.",
		Category:    CategoryPassive,
		Condition:   conditions.RecklessAttack,
	},
}
