package validation

import (
	"fmt"

	"go.uber.org/zap"
)

// Engine validates inventories against a rule table. An Engine holds no
// per-run state, so concurrent Validate calls are safe.
type Engine struct {
	rules  *RuleTable
	logger *zap.Logger
}

// NewEngine creates an engine for the rule table. A nil logger disables logging.
func NewEngine(rules *RuleTable, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{rules: rules, logger: logger}
}

// Rules returns the rule table the engine validates against.
func (e *Engine) Rules() *RuleTable {
	return e.rules
}

// Run holds the state of a single reconciliation run.
type Run struct {
	rules  *RuleTable
	ledger *Ledger
	result *Result
}

// NewRun starts a run with an empty ledger and error list.
func NewRun(rules *RuleTable) *Run {
	return &Run{
		rules:  rules,
		ledger: NewLedger(),
		result: &Result{ValidatedItems: []ValidatedGroup{}, Errors: []string{}, Findings: []Finding{}},
	}
}

// Ledger exposes the run's usage ledger.
func (r *Run) Ledger() *Ledger {
	return r.ledger
}

// Result returns the accumulated result.
func (r *Run) Result() *Result {
	return r.result
}

func (r *Run) addFinding(f Finding) {
	r.result.Findings = append(r.result.Findings, f)
	r.result.Errors = append(r.result.Errors, f.Message)
}

// Validate runs both passes over the inventories.
//
// Pass 1 matches installed equipment against installed sources and controls
// and reports every equipment left without a grouping. Pass 2 matches the
// customer equipment against the installed accessories still unused, accepting
// partial groupings and dropping failures silently. Accessories still unused
// after both passes are reported as orphans. Customer sources and controls are
// never classified.
func (e *Engine) Validate(installed, customer []RawItem) *Result {
	run := NewRun(e.rules)
	res := run.result

	equipment := Classify(installed, e.rules.AllowedEquipmentTypes(), KindEquipment, OriginInstalled)
	sources := Classify(installed, e.rules.AllowedSourceTypes(), KindSource, OriginInstalled)
	controls := Classify(installed, e.rules.AllowedControlTypes(), KindControl, OriginInstalled)

	res.Summary.InstalledEquipment = len(equipment)
	res.Summary.Sources = len(sources)
	res.Summary.Controls = len(controls)

	for _, eq := range equipment {
		if run.ledger.IsUsed(eq) {
			continue
		}
		if !run.MatchEquipment(eq, sources, controls, false, false) {
			run.addFinding(Finding{
				Kind:     FindingMissingAccompaniment,
				TypeID:   eq.TypeID,
				Serial:   eq.SerialNumber,
				UniqueID: eq.UniqueID,
				Message: fmt.Sprintf("equipment %s (serial %s) is missing a compatible source and/or control.",
					eq.TypeID, serialLabel(eq.SerialNumber)),
			})
			res.Summary.MissingAccompaniment++
		}
	}

	remainingSources := run.ledger.Leftover(sources, KindSource)
	remainingControls := run.ledger.Leftover(controls, KindControl)
	e.logger.Debug("Accessories left after installed pass",
		zap.Int("sources", len(remainingSources)),
		zap.Int("controls", len(remainingControls)),
	)

	customerEquipment := Classify(customer, e.rules.AllowedEquipmentTypes(), KindEquipment, OriginCustomer)
	sources = Classify(installed, e.rules.AllowedSourceTypes(), KindSource, OriginInstalled)
	controls = Classify(installed, e.rules.AllowedControlTypes(), KindControl, OriginInstalled)
	res.Summary.CustomerEquipment = len(customerEquipment)

	for _, eq := range customerEquipment {
		if run.ledger.IsUsed(eq) {
			continue
		}
		run.MatchEquipment(eq, sources, controls, false, true)
	}

	for _, src := range run.ledger.Leftover(sources, KindSource) {
		run.addFinding(Finding{
			Kind:     FindingOrphanSource,
			TypeID:   src.TypeID,
			Serial:   src.SerialNumber,
			UniqueID: src.UniqueID,
			Message:  fmt.Sprintf("power source %s is not accompanying any equipment", src.TypeID),
		})
		res.Summary.OrphanSources++
	}

	for _, ctrl := range run.ledger.Leftover(controls, KindControl) {
		run.addFinding(Finding{
			Kind:     FindingOrphanControl,
			TypeID:   ctrl.TypeID,
			Serial:   ctrl.SerialNumber,
			UniqueID: ctrl.UniqueID,
			Message:  fmt.Sprintf("remote control %s is not accompanying any equipment", ctrl.TypeID),
		})
		res.Summary.OrphanControls++
	}

	res.Summary.Validated = len(res.ValidatedItems)

	e.logger.Debug("Validation run finished",
		zap.Int("validated", res.Summary.Validated),
		zap.Int("errors", len(res.Errors)),
	)

	return res
}
