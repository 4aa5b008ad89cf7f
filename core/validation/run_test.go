package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sourceOnlyRule(equipment, source string) Rule {
	return Rule{EquipmentType: equipment, Sources: StringList{source}, Controls: StringList{"NA"}}
}

func TestValidate_SourceWithNoControlRequired(t *testing.T) {
	engine := NewEngine(tableOf(sourceOnlyRule("EQ1", "SRC1")), zap.NewNop())

	res := engine.Validate([]RawItem{
		{EquipmentType: "EQ1", SerialNumber: "S1"},
		{MaterialType: "SRC1", Quantity: 1},
	}, nil)

	require.Len(t, res.ValidatedItems, 1)
	group := res.ValidatedItems[0]
	assert.Equal(t, "EQ1", group.Equipment.TypeID)
	assert.Equal(t, "S1", group.Equipment.SerialNumber)
	require.NotNil(t, group.Source)
	assert.Equal(t, "SRC1", group.Source.TypeID)
	assert.Nil(t, group.Control)
	assert.True(t, group.Result)
	assert.Empty(t, res.Errors)
	assert.True(t, res.Valid())
}

func TestValidate_MissingSource(t *testing.T) {
	engine := NewEngine(tableOf(sourceOnlyRule("EQ1", "SRC1")), nil)

	res := engine.Validate([]RawItem{{EquipmentType: "EQ1", SerialNumber: "S2"}}, nil)

	assert.Empty(t, res.ValidatedItems)
	assert.Equal(t, []string{"equipment EQ1 (serial S2) is missing a compatible source and/or control."}, res.Errors)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, FindingMissingAccompaniment, res.Findings[0].Kind)
	assert.Equal(t, 1, res.Summary.MissingAccompaniment)
	assert.False(t, res.Valid())
}

func TestValidate_ReplicatedSources(t *testing.T) {
	engine := NewEngine(tableOf(sourceOnlyRule("EQ1", "SRC1")), nil)

	res := engine.Validate([]RawItem{
		{EquipmentType: "EQ1", SerialNumber: "A"},
		{EquipmentType: "EQ1", SerialNumber: "B"},
		{EquipmentType: "EQ1", SerialNumber: "C"},
		{MaterialType: "SRC1", Quantity: 3},
	}, nil)

	require.Len(t, res.ValidatedItems, 3)
	assert.Empty(t, res.Errors)
	for i, group := range res.ValidatedItems {
		assert.Equal(t, fmt.Sprintf("SRC1-3-%d", i), group.Source.UniqueID)
	}
}

func TestValidate_OrphanSource(t *testing.T) {
	engine := NewEngine(tableOf(sourceOnlyRule("EQ1", "SRC1"), sourceOnlyRule("EQ2", "SRC2")), nil)

	res := engine.Validate([]RawItem{{MaterialType: "SRC2", Quantity: 1}}, nil)

	assert.Empty(t, res.ValidatedItems)
	assert.Equal(t, []string{"power source SRC2 is not accompanying any equipment"}, res.Errors)
	assert.Equal(t, 1, res.Summary.OrphanSources)
}

func TestValidate_CombinedGroup(t *testing.T) {
	rule := Rule{EquipmentType: "EQ1", Sources: StringList{"SRC1"}, Controls: StringList{"CTL1"}}
	engine := NewEngine(tableOf(rule), nil)

	res := engine.Validate([]RawItem{
		{EquipmentType: "EQ1", SerialNumber: "S1"},
		{MaterialType: "SRC1"},
		{MaterialType: "CTL1", SerialNumber: "C9"},
	}, nil)

	require.Len(t, res.ValidatedItems, 1)
	assert.Equal(t, "SRC1-1-0", res.ValidatedItems[0].Source.UniqueID)
	assert.Equal(t, "CTL1-C9", res.ValidatedItems[0].Control.UniqueID)
	assert.Empty(t, res.Errors)
}

func TestValidate_CustomerPass(t *testing.T) {
	rule := Rule{EquipmentType: "EQ1", Sources: StringList{"SRC1"}, Controls: StringList{"CTL1"}}

	t.Run("PartialGroupAccepted", func(t *testing.T) {
		engine := NewEngine(tableOf(rule), nil)

		res := engine.Validate(
			[]RawItem{{MaterialType: "SRC1"}},
			[]RawItem{{EquipmentType: "EQ1", SerialNumber: "K1"}},
		)

		require.Len(t, res.ValidatedItems, 1)
		group := res.ValidatedItems[0]
		assert.Equal(t, OriginCustomer, group.Equipment.Origin)
		assert.Equal(t, "SRC1-0-0", group.Source.UniqueID)
		assert.Nil(t, group.Control)
		assert.Empty(t, res.Errors)
	})

	t.Run("FailuresAreSilent", func(t *testing.T) {
		engine := NewEngine(tableOf(rule), nil)

		res := engine.Validate(nil, []RawItem{{EquipmentType: "EQ1", SerialNumber: "K1"}})

		assert.Empty(t, res.ValidatedItems)
		assert.Empty(t, res.Errors)
		assert.Equal(t, 1, res.Summary.CustomerEquipment)
	})

	t.Run("ConsumesInstalledLeftovers", func(t *testing.T) {
		engine := NewEngine(tableOf(rule), nil)

		res := engine.Validate(
			[]RawItem{{EquipmentType: "EQ1", SerialNumber: "S1"}, {MaterialType: "SRC1"}},
			[]RawItem{{EquipmentType: "EQ1", SerialNumber: "K1"}},
		)

		assert.Equal(t, []string{"equipment EQ1 (serial S1) is missing a compatible source and/or control."}, res.Errors)
		require.Len(t, res.ValidatedItems, 1)
		assert.Equal(t, "K1", res.ValidatedItems[0].Equipment.SerialNumber)
	})

	t.Run("SamePositionAsInstalledEquipment", func(t *testing.T) {
		engine := NewEngine(tableOf(sourceOnlyRule("EQ1", "SRC1")), nil)

		res := engine.Validate(
			[]RawItem{{EquipmentType: "EQ1", SerialNumber: "S1"}, {MaterialType: "SRC1", Quantity: 2}},
			[]RawItem{{EquipmentType: "EQ1", SerialNumber: "K1"}},
		)

		require.Len(t, res.ValidatedItems, 1)
		assert.Equal(t, "EQ1-0", res.ValidatedItems[0].Equipment.UniqueID)
		assert.Equal(t, OriginInstalled, res.ValidatedItems[0].Equipment.Origin)
		assert.Equal(t, []string{"power source SRC1 is not accompanying any equipment"}, res.Errors)
		require.Len(t, res.Findings, 1)
		assert.Equal(t, "SRC1-1-1", res.Findings[0].UniqueID)
	})

	t.Run("CustomerAccessoriesIgnored", func(t *testing.T) {
		engine := NewEngine(tableOf(sourceOnlyRule("EQ1", "SRC1")), nil)

		res := engine.Validate(
			[]RawItem{{EquipmentType: "EQ1", SerialNumber: "S1"}},
			[]RawItem{{MaterialType: "SRC1"}},
		)

		assert.Empty(t, res.ValidatedItems)
		assert.Equal(t, []string{"equipment EQ1 (serial S1) is missing a compatible source and/or control."}, res.Errors)
	})
}

func TestValidate_ErrorOrder(t *testing.T) {
	rules := tableOf(
		Rule{EquipmentType: "EQ1", Sources: StringList{"SRC1"}, Controls: StringList{"CTL1"}},
		Rule{EquipmentType: "EQ2", Sources: StringList{"SRC2"}, Controls: StringList{"CTL2"}},
	)
	engine := NewEngine(rules, nil)

	res := engine.Validate([]RawItem{
		{MaterialType: "CTL2", SerialNumber: "X"},
		{EquipmentType: "EQ1"},
		{MaterialType: "SRC2"},
		{EquipmentType: "EQ2", SerialNumber: "E2"},
		{MaterialType: "SRC2"},
		{MaterialType: "CTL2", SerialNumber: "Y"},
	}, nil)

	assert.Equal(t, []string{
		"equipment EQ1 (serial n/a) is missing a compatible source and/or control.",
		"power source SRC2 is not accompanying any equipment",
		"remote control CTL2 is not accompanying any equipment",
	}, res.Errors)
	require.Len(t, res.ValidatedItems, 1)
	assert.Equal(t, "E2", res.ValidatedItems[0].Equipment.SerialNumber)
}

func TestValidate_Properties(t *testing.T) {
	tests := []struct {
		name      string
		rules     *RuleTable
		installed []RawItem
		customer  []RawItem
	}{
		{
			name: "MixedRules",
			rules: tableOf(
				Rule{EquipmentType: "EQ1", Sources: StringList{"SRC1"}, Controls: StringList{"CTL1", "NA"}},
				Rule{EquipmentType: "EQ2", Sources: StringList{"NA"}, Controls: StringList{"CTL1", "CTL2"}},
				Rule{EquipmentType: "EQ3", Sources: StringList{"SRC1", "SRC3"}, Controls: StringList{"CTL2"}},
			),
			installed: []RawItem{
				{EquipmentType: "EQ1", SerialNumber: "1"},
				{EquipmentType: "EQ2", SerialNumber: "2"},
				{EquipmentType: "EQ3", SerialNumber: "3"},
				{EquipmentType: "EQ1", SerialNumber: "4"},
				{MaterialType: "SRC1", Quantity: 2},
				{MaterialType: "CTL1", Quantity: 2},
				{MaterialType: "CTL2", SerialNumber: "R1"},
				{MaterialType: "SRC3"},
			},
			customer: []RawItem{
				{EquipmentType: "EQ3", SerialNumber: "5"},
				{EquipmentType: "EQ2", SerialNumber: "6"},
			},
		},
		{
			name:  "CustomerSharesInstalledPosition",
			rules: tableOf(sourceOnlyRule("EQ1", "SRC1")),
			installed: []RawItem{
				{EquipmentType: "EQ1", SerialNumber: "S1"},
				{MaterialType: "SRC1", Quantity: 2},
			},
			customer: []RawItem{{EquipmentType: "EQ1", SerialNumber: "K1"}},
		},
		{
			name:  "FailedInstalledThenCustomer",
			rules: tableOf(Rule{EquipmentType: "EQ1", Sources: StringList{"SRC1"}, Controls: StringList{"CTL1"}}),
			installed: []RawItem{
				{EquipmentType: "EQ1", SerialNumber: "S1"},
				{MaterialType: "SRC1"},
			},
			customer: []RawItem{{EquipmentType: "EQ1", SerialNumber: "K1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(tt.rules, nil)

			first := engine.Validate(tt.installed, tt.customer)
			second := engine.Validate(tt.installed, tt.customer)
			assert.Equal(t, first, second, "runs must be deterministic")

			accessories := map[string]int{}
			equipment := map[string]int{}
			installedGrouped := map[string]int{}
			for _, g := range first.ValidatedItems {
				equipment[g.Equipment.UniqueID]++
				if g.Equipment.Origin == OriginInstalled {
					installedGrouped[g.Equipment.UniqueID]++
				}
				if g.Source != nil {
					accessories[g.Source.UniqueID]++
				}
				if g.Control != nil {
					accessories[g.Control.UniqueID]++
				}
			}
			for id, n := range accessories {
				assert.Equal(t, 1, n, "accessory %s consumed more than once", id)
			}
			for id, n := range equipment {
				assert.Equal(t, 1, n, "equipment %s grouped more than once", id)
			}

			// Every installed equipment is either grouped or reported, never both.
			reported := map[string]int{}
			for _, f := range first.Findings {
				if f.Kind == FindingMissingAccompaniment {
					reported[f.UniqueID]++
				}
			}
			for _, eq := range Classify(tt.installed, tt.rules.AllowedEquipmentTypes(), KindEquipment, OriginInstalled) {
				assert.Equal(t, 1, installedGrouped[eq.UniqueID]+reported[eq.UniqueID], eq.UniqueID)
			}

			// Every classified accessory is either grouped or reported as an orphan.
			orphans := map[string]int{}
			for _, f := range first.Findings {
				if f.Kind == FindingOrphanSource || f.Kind == FindingOrphanControl {
					orphans[f.UniqueID]++
				}
			}
			for _, src := range Classify(tt.installed, tt.rules.AllowedSourceTypes(), KindSource, OriginInstalled) {
				assert.Equal(t, 1, accessories[src.UniqueID]+orphans[src.UniqueID], src.UniqueID)
			}
			for _, ctrl := range Classify(tt.installed, tt.rules.AllowedControlTypes(), KindControl, OriginInstalled) {
				assert.Equal(t, 1, accessories[ctrl.UniqueID]+orphans[ctrl.UniqueID], ctrl.UniqueID)
			}
		})
	}
}
