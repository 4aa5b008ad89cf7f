package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equipmentOf(typeID, serial string) Candidate {
	return Candidate{Kind: KindEquipment, TypeID: typeID, UniqueID: typeID + "-0", SerialNumber: serial, Quantity: 1, Origin: OriginInstalled}
}

func sourceOf(typeID, id string) Candidate {
	return Candidate{Kind: KindSource, TypeID: typeID, UniqueID: id, Quantity: 1, Origin: OriginInstalled}
}

func controlOf(typeID, id string) Candidate {
	return Candidate{Kind: KindControl, TypeID: typeID, UniqueID: id, Quantity: 1, Origin: OriginInstalled}
}

func tableOf(rules ...Rule) *RuleTable {
	return NewRuleTable(rules, DuplicateLastWins)
}

func TestMatchEquipment_NoRule(t *testing.T) {
	run := NewRun(tableOf())

	ok := run.MatchEquipment(equipmentOf("EQ9", "S9"), nil, nil, true, false)

	assert.True(t, ok)
	assert.Empty(t, run.Result().ValidatedItems)
	assert.Empty(t, run.Result().Errors)
	assert.False(t, run.Ledger().IsUsed(equipmentOf("EQ9", "S9")))
}

func TestMatchEquipment_Tiers(t *testing.T) {
	src1 := sourceOf("SRC1", "SRC1-1-0")
	ctl1 := controlOf("CTL1", "CTL1-X")

	tests := []struct {
		name        string
		rule        Rule
		sources     []Candidate
		controls    []Candidate
		allowSolo   bool
		wantOK      bool
		wantSource  *Candidate
		wantControl *Candidate
	}{
		{
			name:        "CombinedPreferredOverSourceOnly",
			rule:        Rule{EquipmentType: "EQ1", Sources: StringList{"SRC1"}, Controls: StringList{"CTL1", "NA"}},
			sources:     []Candidate{src1},
			controls:    []Candidate{ctl1},
			wantOK:      true,
			wantSource:  &src1,
			wantControl: &ctl1,
		},
		{
			name:       "SourceOnlyWhenNoControlRequired",
			rule:       Rule{EquipmentType: "EQ1", Sources: StringList{"SRC1"}, Controls: StringList{"0"}},
			sources:    []Candidate{src1},
			wantOK:     true,
			wantSource: &src1,
		},
		{
			name:        "ControlOnlyWhenNoSourceRequired",
			rule:        Rule{EquipmentType: "EQ1", Sources: StringList{"NA"}, Controls: StringList{"CTL1"}},
			controls:    []Candidate{ctl1},
			wantOK:      true,
			wantControl: &ctl1,
		},
		{
			name:    "SourceOnlyRejectedWhenControlRequired",
			rule:    Rule{EquipmentType: "EQ1", Sources: StringList{"SRC1"}, Controls: StringList{"CTL1"}},
			sources: []Candidate{src1},
			wantOK:  false,
		},
		{
			name:       "SoloSourceFallback",
			rule:       Rule{EquipmentType: "EQ1", Sources: StringList{"SRC1"}, Controls: StringList{"CTL1"}},
			sources:    []Candidate{src1},
			allowSolo:  true,
			wantOK:     true,
			wantSource: &src1,
		},
		{
			name:        "SoloControlFallback",
			rule:        Rule{EquipmentType: "EQ1", Sources: StringList{"SRC1"}, Controls: StringList{"CTL1"}},
			controls:    []Candidate{ctl1},
			allowSolo:   true,
			wantOK:      true,
			wantControl: &ctl1,
		},
		{
			name:     "IncompatibleTypes",
			rule:     Rule{EquipmentType: "EQ1", Sources: StringList{"SRC2"}, Controls: StringList{"NA"}},
			sources:  []Candidate{src1},
			controls: []Candidate{ctl1},
			wantOK:   false,
		},
		{
			name:   "NothingRequiredButNothingPresent",
			rule:   Rule{EquipmentType: "EQ1", Sources: StringList{"NA"}, Controls: StringList{"NA"}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := NewRun(tableOf(tt.rule))
			eq := equipmentOf("EQ1", "S1")

			ok := run.MatchEquipment(eq, tt.sources, tt.controls, false, tt.allowSolo)
			assert.Equal(t, tt.wantOK, ok)
			assert.Empty(t, run.Result().Errors)

			if !tt.wantOK {
				assert.Empty(t, run.Result().ValidatedItems)
				assert.False(t, run.Ledger().IsUsed(eq))
				return
			}

			require.Len(t, run.Result().ValidatedItems, 1)
			group := run.Result().ValidatedItems[0]
			assert.True(t, group.Result)
			assert.Equal(t, eq, group.Equipment)
			assert.Equal(t, tt.wantSource, group.Source)
			assert.Equal(t, tt.wantControl, group.Control)
			assert.True(t, run.Ledger().IsUsed(eq))
		})
	}
}

func TestMatchEquipment_FirstFitOrder(t *testing.T) {
	run := NewRun(tableOf(Rule{EquipmentType: "EQ1", Sources: StringList{"SRC1", "SRC2"}, Controls: StringList{"CTL1"}}))
	sources := []Candidate{sourceOf("SRC9", "SRC9-0-0"), sourceOf("SRC2", "SRC2-1-0"), sourceOf("SRC1", "SRC1-2-0")}
	controls := []Candidate{controlOf("CTL1", "CTL1-A"), controlOf("CTL1", "CTL1-B")}

	require.True(t, run.MatchEquipment(equipmentOf("EQ1", "S1"), sources, controls, false, false))

	group := run.Result().ValidatedItems[0]
	assert.Equal(t, "SRC2-1-0", group.Source.UniqueID)
	assert.Equal(t, "CTL1-A", group.Control.UniqueID)
}

func TestMatchEquipment_SkipsUsedItems(t *testing.T) {
	run := NewRun(tableOf(Rule{EquipmentType: "EQ1", Sources: StringList{"SRC1"}, Controls: StringList{"NA"}}))
	src := sourceOf("SRC1", "SRC1-1-0")
	run.Ledger().MarkUsed(src, false, KindSource)

	ok := run.MatchEquipment(equipmentOf("EQ1", "S1"), []Candidate{src}, nil, false, true)

	assert.False(t, ok)
}

func TestMatchEquipment_RecordError(t *testing.T) {
	run := NewRun(tableOf(Rule{EquipmentType: "EQ1", Sources: StringList{"SRC1"}, Controls: StringList{"NA"}}))

	ok := run.MatchEquipment(equipmentOf("EQ1", "S2"), nil, nil, true, false)

	assert.False(t, ok)
	require.Len(t, run.Result().Findings, 1)
	assert.Equal(t, FindingNoValidCombination, run.Result().Findings[0].Kind)
	assert.Equal(t, []string{
		"no valid source and/or control combination found for equipment EQ1 (serial S2) according to the rules.",
	}, run.Result().Errors)
}

func TestMatchEquipment_Wildcard(t *testing.T) {
	run := NewRun(tableOf(Rule{EquipmentType: "EQ1", Sources: StringList{"*"}, Controls: StringList{"CTL1"}}))
	src := sourceOf("SRC7", "SRC7-1-0")
	ctl := controlOf("CTL1", "CTL1-A")

	require.True(t, run.MatchEquipment(equipmentOf("EQ1", "S1"), []Candidate{src}, []Candidate{ctl}, false, false))

	assert.True(t, run.Ledger().WildcardUsed(src, KindSource))
	assert.False(t, run.Ledger().WildcardUsed(ctl, KindControl))
	assert.True(t, run.Ledger().IsUsed(ctl))
}
