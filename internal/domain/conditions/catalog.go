package conditions

// Well-known condition IDs referenced by skills and the attack path
const (
	Frozen         ConditionID = "FROZEN"
	Stunned        ConditionID = "STUNNED"
	Burning        ConditionID = "BURNING"
	Poisoned       ConditionID = "POISONED"
	Slowed         ConditionID = "SLOWED"
	Hasted         ConditionID = "HASTED"
	Rooted         ConditionID = "ROOTED"
	Taunted        ConditionID = "TAUNTED"
	Flying         ConditionID = "FLYING"
	Invisible      ConditionID = "INVISIBLE"
	Guarded        ConditionID = "GUARDED"
	BattleFocus    ConditionID = "BATTLE_FOCUS"
	Evasive        ConditionID = "EVASIVE"
	Regenerating   ConditionID = "REGENERATING"
	RecklessAttack ConditionID = "RECKLESS_ATTACK"
	Ironhide       ConditionID = "IRONHIDE"
	FleetFooted    ConditionID = "FLEET_FOOTED"
	Blooded        ConditionID = "BLOODED"
)

// Catalog is the immutable condition registry, loaded once at process start
type Catalog struct {
	defs map[ConditionID]*Definition
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{defs: make(map[ConditionID]*Definition)}
}

// Register adds a definition to the catalog
func (c *Catalog) Register(def *Definition) {
	c.defs[def.ID] = def
}

// Get returns the definition for an ID, or nil if unknown
func (c *Catalog) Get(id ConditionID) *Definition {
	return c.defs[id]
}

// Has reports whether the catalog knows the ID
func (c *Catalog) Has(id ConditionID) bool {
	_, ok := c.defs[id]
	return ok
}

// IDs returns every registered condition ID
func (c *Catalog) IDs() []ConditionID {
	ids := make([]ConditionID, 0, len(c.defs))
	for id := range c.defs {
		ids = append(ids, id)
	}
	return ids
}

// DefaultCatalog returns the built-in condition definitions
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, def := range defaultDefinitions {
		c.Register(def)
	}
	return c
}

var defaultDefinitions = []*Definition{
	{
		ID:             Frozen,
		Name:           "Frozen",
		Description:    "Encased in ice. Cannot move, attack, dash or dodge.",
		Expiry:         ExpiryDuration,
		DurationRounds: 2,
		Effects: map[EffectKey]float64{
			EffectBlockMove:   1,
			EffectBlockAttack: 1,
			EffectBlockDash:   1,
			EffectBlockDodge:  1,
		},
	},
	{
		ID:          Stunned,
		Name:        "Stunned",
		Description: "Reeling. No action of any kind until the next round.",
		Expiry:      ExpiryNextTurn,
		Effects: map[EffectKey]float64{
			EffectBlockAll: 1,
		},
	},
	{
		ID:             Burning,
		Name:           "Burning",
		Description:    "On fire. Takes damage at the start of each turn.",
		Expiry:         ExpiryDuration,
		DurationRounds: 2,
		Stackable:      true,
		MaxStacks:      3,
		Effects: map[EffectKey]float64{
			EffectDamagePerTurn: 2,
		},
	},
	{
		ID:             Poisoned,
		Name:           "Poisoned",
		Description:    "Venom saps strength and accuracy.",
		Expiry:         ExpiryDuration,
		DurationRounds: 3,
		Effects: map[EffectKey]float64{
			EffectDamagePerTurn: 1,
			EffectMissChance:    10,
		},
	},
	{
		ID:          Slowed,
		Name:        "Slowed",
		Description: "Movement halved until the next round.",
		Expiry:      ExpiryNextTurn,
		Effects: map[EffectKey]float64{
			EffectMoveMultiplier: 0.5,
		},
	},
	{
		ID:             Hasted,
		Name:           "Hasted",
		Description:    "Supernatural speed.",
		Expiry:         ExpiryDuration,
		DurationRounds: 2,
		Effects: map[EffectKey]float64{
			EffectMoveBonus: 2,
			EffectSpeedMod:  1,
		},
	},
	{
		ID:          Rooted,
		Name:        "Rooted",
		Description: "Held in place. Cannot move or dash.",
		Expiry:      ExpiryNextTurn,
		Effects: map[EffectKey]float64{
			EffectBlockMove: 1,
			EffectBlockDash: 1,
		},
	},
	{
		ID:          Taunted,
		Name:        "Taunted",
		Description: "Goaded. Must direct attacks at the taunter.",
		Expiry:      ExpiryNextTurn,
		Effects: map[EffectKey]float64{
			EffectTaunt: 1,
		},
	},
	{
		ID:             Flying,
		Name:           "Flying",
		Description:    "Airborne. Moves freely and is harder to pin down.",
		Expiry:         ExpiryDuration,
		DurationRounds: 3,
		Effects: map[EffectKey]float64{
			EffectFlying:    1,
			EffectMoveBonus: 1,
		},
	},
	{
		ID:          Invisible,
		Name:        "Invisible",
		Description: "Unseen. Attacks from hiding carry advantage; breaks on any action.",
		Expiry:      ExpiryOnAction,
		Effects: map[EffectKey]float64{
			EffectInvisible:        1,
			EffectAttackAdvantage:  1,
			EffectDefenseAdvantage: 1,
		},
	},
	{
		ID:          Guarded,
		Name:        "Guarded",
		Description: "Braced behind the shield until the turn ends.",
		Expiry:      ExpiryEndOfTurn,
		Effects: map[EffectKey]float64{
			EffectDefenseAdvantage: 1,
			EffectArmorMod:         1,
		},
	},
	{
		ID:          BattleFocus,
		Name:        "Battle Focus",
		Description: "Centered. The next attacks this turn carry advantage.",
		Expiry:      ExpiryEndOfTurn,
		Effects: map[EffectKey]float64{
			EffectAttackAdvantage: 1,
		},
	},
	{
		ID:          Evasive,
		Name:        "Evasive",
		Description: "Weaving and feinting.",
		Expiry:      ExpiryEndOfTurn,
		Effects: map[EffectKey]float64{
			EffectDodgeChance: 30,
		},
	},
	{
		ID:             Regenerating,
		Name:           "Regenerating",
		Description:    "Wounds knit at the start of each turn.",
		Expiry:         ExpiryDuration,
		DurationRounds: 3,
		Effects: map[EffectKey]float64{
			EffectHealPerTurn: 2,
		},
	},
	{
		ID:          RecklessAttack,
		Name:        "Reckless Attack",
		Description: "Abandons defense for extra attacks while unprotected.",
		Expiry:      ExpiryPermanent,
		Effects: map[EffectKey]float64{
			EffectExtraAttacks: 1,
		},
	},
	{
		ID:          Ironhide,
		Name:        "Ironhide",
		Description: "Toughened skin shrugs off blows.",
		Expiry:      ExpiryPermanent,
		Effects: map[EffectKey]float64{
			EffectArmorMod: 1,
		},
	},
	{
		ID:          FleetFooted,
		Name:        "Fleet Footed",
		Description: "Covers ground faster than most.",
		Expiry:      ExpiryPermanent,
		Effects: map[EffectKey]float64{
			EffectMoveBonus: 1,
		},
	},
	{
		ID:          Blooded,
		Name:        "Blooded",
		Description: "A veteran's edge in close combat.",
		Expiry:      ExpiryPermanent,
		Effects: map[EffectKey]float64{
			EffectCombatMod: 1,
		},
	},
}
