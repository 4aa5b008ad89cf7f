package validation

import "fmt"

// MatchEquipment tries to group the equipment with an unused source and/or
// control. Tiers are evaluated in order and the first fit wins:
//
//  1. no rule for the type: vacuously valid, nothing emitted
//  2. combined source + control
//  3. source only, when the rule requires no control
//  4. control only, when the rule requires no source
//  5. source only, then control only, when allowSolo is set
//
// On failure a finding is recorded only when recordError is set.
func (r *Run) MatchEquipment(equipment Candidate, sources, controls []Candidate, recordError, allowSolo bool) bool {
	rule := r.rules.compiled(equipment.TypeID)
	if rule == nil {
		return true
	}

	availableSources := r.ledger.Unused(sources)
	availableControls := r.ledger.Unused(controls)

	for _, src := range availableSources {
		srcOK, srcWildcard := rule.allowsSource(src.TypeID)
		if !srcOK {
			continue
		}
		for _, ctrl := range availableControls {
			ctrlOK, ctrlWildcard := rule.allowsControl(ctrl.TypeID)
			if !ctrlOK {
				continue
			}
			r.accept(equipment, &src, srcWildcard, &ctrl, ctrlWildcard)
			return true
		}
	}

	if rule.noControlRequired && r.matchSource(equipment, rule, availableSources) {
		return true
	}

	if rule.noSourceRequired && r.matchControl(equipment, rule, availableControls) {
		return true
	}

	if allowSolo {
		if r.matchSource(equipment, rule, availableSources) {
			return true
		}
		if r.matchControl(equipment, rule, availableControls) {
			return true
		}
	}

	if recordError {
		r.addFinding(Finding{
			Kind:     FindingNoValidCombination,
			TypeID:   equipment.TypeID,
			Serial:   equipment.SerialNumber,
			UniqueID: equipment.UniqueID,
			Message: fmt.Sprintf("no valid source and/or control combination found for equipment %s (serial %s) according to the rules.",
				equipment.TypeID, serialLabel(equipment.SerialNumber)),
		})
	}

	return false
}

func (r *Run) matchSource(equipment Candidate, rule *compiledRule, available []Candidate) bool {
	for _, src := range available {
		if ok, wildcard := rule.allowsSource(src.TypeID); ok {
			r.accept(equipment, &src, wildcard, nil, false)
			return true
		}
	}
	return false
}

func (r *Run) matchControl(equipment Candidate, rule *compiledRule, available []Candidate) bool {
	for _, ctrl := range available {
		if ok, wildcard := rule.allowsControl(ctrl.TypeID); ok {
			r.accept(equipment, nil, false, &ctrl, wildcard)
			return true
		}
	}
	return false
}

// accept consumes the grouping and emits it.
func (r *Run) accept(equipment Candidate, src *Candidate, srcWildcard bool, ctrl *Candidate, ctrlWildcard bool) {
	r.ledger.MarkUsed(equipment, false, KindEquipment)

	group := ValidatedGroup{Equipment: equipment, Result: true}
	if src != nil {
		s := *src
		r.ledger.MarkUsed(s, srcWildcard, KindSource)
		group.Source = &s
	}
	if ctrl != nil {
		c := *ctrl
		r.ledger.MarkUsed(c, ctrlWildcard, KindControl)
		group.Control = &c
	}

	r.result.ValidatedItems = append(r.result.ValidatedItems, group)
}

func serialLabel(serial string) string {
	if serial == "" {
		return "n/a"
	}
	return serial
}
