package validation

import (
	engine "equipment-validator/core/validation"
)

// NoAccessory marks a row without a source or control.
const NoAccessory = "-"

// Row is one validated equipment line.
type Row struct {
	Index         int    `json:"index"`
	InventoryID   int64  `json:"inventory_id,omitempty"`
	EquipmentType string `json:"equipment_type"`
	Description   string `json:"description"`
	Serial        string `json:"serial,omitempty"`
	Origin        string `json:"origin"`
	Source        string `json:"source"`
	Control       string `json:"control"`

	// ControlReplicated is set when the control is an unserialized unit
	// expanded from a quantity.
	ControlReplicated bool `json:"control_replicated,omitempty"`

	Result bool `json:"result"`
}

// Report is the outcome of a validation request.
type Report struct {
	ActivityID string `json:"activity_id,omitempty"`
	Valid      bool   `json:"valid"`

	// AccessoriesEvaluated is false when no grouping used a source or control.
	AccessoriesEvaluated bool `json:"accessories_evaluated"`

	RuleSource string           `json:"rule_source"`
	Rows       []Row            `json:"rows"`
	Errors     []string         `json:"errors"`
	Findings   []engine.Finding `json:"findings"`
	Summary    engine.Summary   `json:"summary"`
}

// Describer resolves equipment descriptions.
type Describer interface {
	Describe(typeID string) string
}

// BuildReport turns an engine result into report rows.
func BuildReport(res *engine.Result, describe Describer) *Report {
	r := &Report{
		Valid:    res.Valid(),
		Rows:     make([]Row, 0, len(res.ValidatedItems)),
		Errors:   res.Errors,
		Findings: res.Findings,
		Summary:  res.Summary,
	}

	for i, g := range res.ValidatedItems {
		row := Row{
			Index:         i + 1,
			InventoryID:   g.Equipment.InventoryID,
			EquipmentType: g.Equipment.TypeID,
			Serial:        g.Equipment.SerialNumber,
			Origin:        string(g.Equipment.Origin),
			Source:        NoAccessory,
			Control:       NoAccessory,
			Result:        g.Result,
		}
		if describe != nil {
			row.Description = describe.Describe(g.Equipment.TypeID)
		}
		if g.Source != nil {
			row.Source = g.Source.TypeID
			r.AccessoriesEvaluated = true
		}
		if g.Control != nil {
			row.Control = g.Control.TypeID
			row.ControlReplicated = g.Control.Replicated
			r.AccessoriesEvaluated = true
		}
		r.Rows = append(r.Rows, row)
	}
	return r
}
