package skills_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyrin/skirmish/internal/domain/conditions"
	"github.com/veyrin/skirmish/internal/domain/skills"
)

func TestDefaultCatalog_Integrity(t *testing.T) {
	catalog := skills.DefaultCatalog()
	condCatalog := conditions.DefaultCatalog()

	codes := catalog.Codes()
	require.NotEmpty(t, codes)

	actives, passives := 0, 0
	for _, code := range codes {
		def := catalog.Get(code)
		require.NotNil(t, def, "code %s", code)

		assert.NotEmpty(t, def.Name, "code %s", code)
		assert.Equal(t, code, def.Code)

		switch def.Category {
		case skills.CategoryActive:
			actives++
			assert.NotEmpty(t, def.Executor, "active %s needs an executor", code)
		case skills.CategoryPassive:
			passives++
			assert.NotEmpty(t, def.Condition, "passive %s needs a condition", code)
			assert.Empty(t, def.Executor, "passive %s never executes", code)
		default:
			t.Errorf("skill %s has unknown category %q", code, def.Category)
		}

		if def.Condition != "" {
			assert.True(t, condCatalog.Has(def.Condition),
				"skill %s references unknown condition %s", code, def.Condition)
		}
	}

	assert.GreaterOrEqual(t, actives, 10)
	assert.GreaterOrEqual(t, passives, 3)
}

func TestCatalog_UnknownCode(t *testing.T) {
	assert.Nil(t, skills.DefaultCatalog().Get("no_such_skill"))
}

func TestRange_Resolve(t *testing.T) {
	stat := func(a skills.Attribute) int {
		if a == skills.AttrFocus {
			return 5
		}
		return 0
	}

	tests := []struct {
		name string
		r    skills.Range
		want int
	}{
		{"override beats attribute", skills.Range{Kind: skills.RangeRanged, Override: 7, Attribute: skills.AttrFocus}, 7},
		{"attribute beats default", skills.Range{Kind: skills.RangeRanged, Attribute: skills.AttrFocus}, 5},
		{"zero attribute falls through", skills.Range{Kind: skills.RangeRanged, Attribute: skills.AttrSpeed}, 4},
		{"melee default", skills.Range{Kind: skills.RangeMelee}, 1},
		{"area default", skills.Range{Kind: skills.RangeArea}, 3},
		{"self is zero", skills.Range{Kind: skills.RangeSelf}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Resolve(stat))
		})
	}
}

func TestDefinition_ConsumesAction(t *testing.T) {
	catalog := skills.DefaultCatalog()

	assert.True(t, catalog.Get(skills.PowerStrike).ConsumesAction())
	assert.False(t, catalog.Get(skills.BattleFocus).ConsumesAction())
}
