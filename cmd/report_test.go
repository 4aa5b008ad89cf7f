package cmd

import (
	"bytes"
	"testing"

	engine "equipment-validator/core/validation"
	"equipment-validator/feature/validation"

	"github.com/sebdah/goldie/v2"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRenderReport_Valid(t *testing.T) {
	report := &validation.Report{
		ActivityID:           "4711",
		Valid:                true,
		AccessoriesEvaluated: true,
		RuleSource:           "ofsc",
		Rows: []validation.Row{
			{Index: 1, EquipmentType: "EQ1", Description: "Decodificador HD", Origin: "installed", Source: "SRC1", Control: "CTL1", Result: true},
			{Index: 2, EquipmentType: "EQ2", Description: "Modem", Origin: "installed", Source: validation.NoAccessory, Control: validation.NoAccessory, Result: true},
		},
		Summary: engine.Summary{InstalledEquipment: 2, Sources: 1, Controls: 1, Validated: 2},
	}

	var buf bytes.Buffer
	renderReport(&buf, report)

	newGoldie(t).Assert(t, "report_valid", buf.Bytes())
}

func TestRenderReport_Findings(t *testing.T) {
	report := &validation.Report{
		Valid:      false,
		RuleSource: "rules.json",
		Rows: []validation.Row{
			{Index: 1, EquipmentType: "EQ9", Description: "Unknown", Origin: "installed", Source: validation.NoAccessory, Control: validation.NoAccessory, Result: true},
		},
		Errors: []string{
			"equipment EQ1 (serial SN-1) is missing a compatible source and/or control.",
			"power source SRC7 is not accompanying any equipment",
		},
		Summary: engine.Summary{InstalledEquipment: 2, Sources: 1, Validated: 1, MissingAccompaniment: 1, OrphanSources: 1},
	}

	var buf bytes.Buffer
	renderReport(&buf, report)

	newGoldie(t).Assert(t, "report_findings", buf.Bytes())
}

func TestRenderReport_ReplicatedControl(t *testing.T) {
	report := &validation.Report{
		Valid:                true,
		AccessoriesEvaluated: true,
		RuleSource:           "database",
		Rows: []validation.Row{
			{Index: 1, EquipmentType: "EQ1", Description: "Decoder", Origin: "installed", Source: validation.NoAccessory, Control: "CTL1", ControlReplicated: true, Result: true},
			{Index: 2, EquipmentType: "EQ1", Description: "Decoder", Origin: "installed", Source: validation.NoAccessory, Control: "CTL1", Result: true},
		},
		Summary: engine.Summary{InstalledEquipment: 2, Controls: 2, Validated: 2},
	}

	var buf bytes.Buffer
	renderReport(&buf, report)

	newGoldie(t).Assert(t, "report_replicated", buf.Bytes())
}

func TestRenderReport_Empty(t *testing.T) {
	report := &validation.Report{Valid: true, RuleSource: "inline"}

	var buf bytes.Buffer
	renderReport(&buf, report)

	newGoldie(t).Assert(t, "report_empty", buf.Bytes())
}
