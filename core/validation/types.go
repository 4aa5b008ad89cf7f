package validation

// Kind identifies the role a candidate plays in a grouping.
type Kind string

const (
	// KindEquipment is a primary inventory item that may require accessories.
	KindEquipment Kind = "equipment"
	// KindSource is a power-supply accessory.
	KindSource Kind = "source"
	// KindControl is a remote-control accessory.
	KindControl Kind = "control"
)

// Origin identifies which inventory a candidate was classified from.
type Origin string

const (
	// OriginInstalled marks items from the activity's installed inventory.
	OriginInstalled Origin = "installed"
	// OriginCustomer marks items from the customer inventory.
	OriginCustomer Origin = "customer"
)

// RawItem is an inventory row as delivered by the field service platform.
// EquipmentType is compared against equipment rules, MaterialType against
// source and control rules.
type RawItem struct {
	// InventoryID is the platform identifier of the row.
	InventoryID int64 `json:"inventoryId,omitempty"`

	// InventoryType is the platform inventory type label.
	InventoryType string `json:"inventoryType,omitempty"`

	// EquipmentType is the equipment type identifier (XI_EQUIPMENTTYPE).
	EquipmentType string `json:"XI_EQUIPMENTTYPE,omitempty"`

	// MaterialType is the accessory type identifier (XI_MATERIALTYPE).
	MaterialType string `json:"XI_MATERIALTYPE,omitempty"`

	// SerialNumber is optional. Serialized controls are never replicated.
	SerialNumber string `json:"serialNumber,omitempty"`

	// Quantity is the number of physical units the row stands for.
	// Zero or negative values count as one.
	Quantity int `json:"quantity,omitempty"`
}

// Candidate is a typed, uniquely identified unit produced by classification.
type Candidate struct {
	// Kind is the role of the candidate.
	Kind Kind `json:"kind"`

	// TypeID is the equipment or material type identifier.
	TypeID string `json:"type_id"`

	// UniqueID is stable within one classification pass.
	UniqueID string `json:"unique_id"`

	// SerialNumber is copied from the raw row.
	SerialNumber string `json:"serial_number,omitempty"`

	// Quantity is the quantity of the raw row this unit was replicated from.
	Quantity int `json:"quantity"`

	// InventoryID is copied from the raw row.
	InventoryID int64 `json:"inventory_id,omitempty"`

	// Origin is the inventory the unit was classified from.
	Origin Origin `json:"origin"`

	// Replicated is set on unserialized controls expanded by quantity.
	Replicated bool `json:"replicated,omitempty"`
}

// ValidatedGroup is one successful equipment grouping.
type ValidatedGroup struct {
	Equipment Candidate  `json:"equipo"`
	Source    *Candidate `json:"fuente"`
	Control   *Candidate `json:"control"`
	Result    bool       `json:"resultado"`
}

// FindingKind classifies a validation finding.
type FindingKind string

const (
	// FindingMissingAccompaniment is an installed equipment without a compatible source/control.
	FindingMissingAccompaniment FindingKind = "missing_accompaniment"
	// FindingNoValidCombination is recorded by the matcher itself when asked to.
	FindingNoValidCombination FindingKind = "no_valid_combination"
	// FindingOrphanSource is a source never consumed by any equipment.
	FindingOrphanSource FindingKind = "orphan_source"
	// FindingOrphanControl is a control never consumed by any equipment.
	FindingOrphanControl FindingKind = "orphan_control"
)

// Finding is a data validation finding. Findings are never Go errors.
type Finding struct {
	Kind     FindingKind `json:"kind"`
	TypeID   string      `json:"type_id"`
	Serial   string      `json:"serial,omitempty"`
	UniqueID string      `json:"unique_id"`
	Message  string      `json:"message"`
}

// Summary provides aggregate counts for a run.
type Summary struct {
	// InstalledEquipment counts equipment candidates from the installed inventory.
	InstalledEquipment int `json:"installed_equipment"`

	// CustomerEquipment counts equipment candidates from the customer inventory.
	CustomerEquipment int `json:"customer_equipment"`

	// Sources counts source candidates (installed inventory).
	Sources int `json:"sources"`

	// Controls counts control candidates (installed inventory).
	Controls int `json:"controls"`

	// Validated counts emitted groupings.
	Validated int `json:"validated"`

	// MissingAccompaniment counts pass-1 equipment failures.
	MissingAccompaniment int `json:"missing_accompaniment"`

	// OrphanSources counts sources left over after both passes.
	OrphanSources int `json:"orphan_sources"`

	// OrphanControls counts controls left over after both passes.
	OrphanControls int `json:"orphan_controls"`
}

// Result is the output of a reconciliation run.
type Result struct {
	// ValidatedItems lists groupings in the order they were matched.
	ValidatedItems []ValidatedGroup `json:"validated_items"`

	// Errors lists human readable findings: pass-1 equipment errors,
	// then leftover sources, then leftover controls.
	Errors []string `json:"errors"`

	// Findings mirrors Errors with structured data.
	Findings []Finding `json:"findings"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Valid reports whether the run produced no findings.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}
