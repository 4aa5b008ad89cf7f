package checks

import (
	"testing"

	"equipment-validator/core/validation"

	"github.com/stretchr/testify/assert"
)

func TestAuditRules(t *testing.T) {
	table := validation.NewRuleTable([]validation.Rule{
		{EquipmentType: "EQ1", Sources: validation.StringList{"SRC1"}, Controls: validation.StringList{"CTL1"}},
		{EquipmentType: "EQ2", Sources: validation.StringList{"NA"}, Controls: validation.StringList{"0"}},
		{EquipmentType: "EQ3", Sources: validation.StringList{"NA", "SRC3"}, Controls: validation.StringList{"CTL3"}},
		{EquipmentType: "EQ4", Sources: validation.StringList{"*"}, Controls: validation.StringList{"NA"}},
		{EquipmentType: "EQ1", Sources: validation.StringList{"SRC1"}, Controls: validation.StringList{"CTL1"}},
	}, validation.DuplicateLastWins)

	report := AuditRules(table)
	assert.Equal(t, 4, report.Rules)
	assert.Equal(t, []string{"EQ1"}, report.Duplicates)
	assert.Equal(t, []string{"EQ2"}, report.NoAccessories)
	assert.Equal(t, []string{"EQ3"}, report.MixedSentinels)
	assert.Equal(t, []string{"EQ4"}, report.Wildcards)
	assert.Equal(t, "warning", report.Status)
}

func TestAuditRules_Clean(t *testing.T) {
	table := validation.NewRuleTable([]validation.Rule{
		{EquipmentType: "EQ1", Sources: validation.StringList{"SRC1"}, Controls: validation.StringList{"NA"}},
	}, validation.DuplicateLastWins)

	report := AuditRules(table)
	assert.Equal(t, "ok", report.Status)
	assert.Empty(t, report.Duplicates)
}
