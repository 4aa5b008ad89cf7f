package reconcile

// Result is the reconciliation outcome for one equipment type.
type Result struct {
	// EquipmentType is the key shared by every source.
	EquipmentType string `json:"equipment_type"`

	// Description is taken from the first source holding the type.
	Description string `json:"description"`

	// Present maps each source name to whether it governs the type.
	Present map[string]bool `json:"present"`

	// Mismatch describes field differences against the reference source,
	// e.g. "sources: ofsc=[SRC1, SRC2] storage=[SRC1]".
	Mismatch []string `json:"mismatch"`
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionReplace overwrites a replica's rule set with the reference rules.
	ActionReplace ActionType = "replace"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Target is the source the action writes to.
	Target string `json:"target"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// Plan contains reconciliation results and planned actions.
type Plan struct {
	// Reference is the source the replicas are compared against.
	Reference string `json:"reference"`

	// Sources lists every compared source, reference first.
	Sources []string `json:"sources"`

	// Results contains per equipment type reconciliation data.
	Results []Result `json:"results"`

	// Actions contains planned mutation operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`

	reference *Snapshot
}

// Summary provides aggregate statistics for a plan.
type Summary struct {
	// TotalItems is the number of distinct equipment types across sources.
	TotalItems int `json:"total_items"`

	// Missing counts, per source, the equipment types it does not govern.
	Missing map[string]int `json:"missing"`

	// Mismatches counts equipment types whose rules differ somewhere.
	Mismatches int `json:"mismatches"`

	// SyncActions counts planned replace actions.
	SyncActions int `json:"sync_actions"`
}

// Options controls whether a plan proposes and executes sync actions.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// DoSync plans replace actions for replicas that drifted.
	DoSync bool

	// Confirmed indicates the caller accepted destructive actions.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}
