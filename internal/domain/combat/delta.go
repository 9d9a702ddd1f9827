package combat

import (
	"github.com/veyrin/skirmish/internal/domain/conditions"
	"github.com/veyrin/skirmish/internal/domain/skills"
)

// UnitDelta is the client-facing snapshot of one unit
type UnitDelta struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	OwnerID  string   `json:"owner_id"`
	Position Position `json:"position"`

	HP   Pool `json:"hp"`
	Mana Pool `json:"mana"`

	PhysicalProtection Pool `json:"physical_protection"`
	MagicalProtection  Pool `json:"magical_protection"`

	MovesLeft   int `json:"moves_left"`
	ActionsLeft int `json:"actions_left"`
	AttacksLeft int `json:"attacks_left"`

	Conditions []conditions.Active `json:"conditions"`
	Cooldowns  map[skills.Code]int `json:"cooldowns,omitempty"`
	Alive      bool                `json:"alive"`
}

// Delta is the full state snapshot broadcast after every committed command.
// Clients render from deltas alone and never query battle internals.
type Delta struct {
	BattleID        string      `json:"battle_id"`
	Round           int         `json:"round"`
	State           State       `json:"state"`
	ActiveUnitID    string      `json:"active_unit_id,omitempty"`
	CurrentPlayerID string      `json:"current_player_id,omitempty"`
	TurnTimer       int         `json:"turn_timer"`
	Units           []UnitDelta `json:"units"`
	Log             []LogEntry  `json:"log"`
	Ended           bool        `json:"ended"`
	Winner          string      `json:"winner,omitempty"`
	EndReason       EndReason   `json:"end_reason,omitempty"`
}

// Snapshot builds a delta from the current battle state. Unit order follows
// the turn order so clients render deterministically.
func (b *Battle) Snapshot() *Delta {
	d := &Delta{
		BattleID:  b.ID,
		Round:     b.Round,
		State:     b.State,
		TurnTimer: b.TurnTimer,
		Ended:     b.Ended(),
		Winner:    b.Winner,
		EndReason: b.EndReason,
	}

	if u := b.ActiveUnit(); u != nil {
		d.ActiveUnitID = u.ID
		d.CurrentPlayerID = u.OwnerID
	}

	for _, id := range b.TurnOrder {
		u := b.Units[id]
		if u == nil {
			continue
		}
		ud := UnitDelta{
			ID:                 u.ID,
			Name:               u.Name,
			OwnerID:            u.OwnerID,
			Position:           u.Position,
			HP:                 u.HP,
			Mana:               u.Mana,
			PhysicalProtection: u.PhysicalProtection,
			MagicalProtection:  u.MagicalProtection,
			MovesLeft:          u.MovesLeft,
			ActionsLeft:        u.ActionsLeft,
			AttacksLeft:        u.AttacksLeft,
			Alive:              u.Alive,
		}
		ud.Conditions = append(ud.Conditions, u.Conditions...)
		if len(u.Cooldowns) > 0 {
			ud.Cooldowns = make(map[skills.Code]int, len(u.Cooldowns))
			for code, rounds := range u.Cooldowns {
				ud.Cooldowns[code] = rounds
			}
		}
		d.Units = append(d.Units, ud)
	}

	d.Log = append(d.Log, b.Log...)
	return d
}
