package reconcile

import (
	"context"
	"fmt"
	"strings"
)

// BuildPlan reconciles the snapshots and, with opts.DoSync, plans a replace
// for every replica that drifted from the reference. It does NOT execute
// actions; use ApplyPlan for that.
func BuildPlan(snaps []*Snapshot, opts Options) *Plan {
	plan := &Plan{
		Sources: make([]string, 0, len(snaps)),
		Results: Reconcile(snaps),
		Actions: []Action{},
		Summary: Summary{Missing: make(map[string]int, len(snaps))},
	}
	if len(snaps) == 0 {
		return plan
	}

	plan.reference = snaps[0]
	plan.Reference = snaps[0].Name
	for _, s := range snaps {
		plan.Sources = append(plan.Sources, s.Name)
		plan.Summary.Missing[s.Name] = 0
	}

	drifts := make(map[string]*drift, len(snaps))
	for _, s := range snaps[1:] {
		drifts[s.Name] = &drift{}
	}

	plan.Summary.TotalItems = len(plan.Results)
	for _, r := range plan.Results {
		for name, present := range r.Present {
			if !present {
				plan.Summary.Missing[name]++
			}
		}
		if len(r.Mismatch) > 0 {
			plan.Summary.Mismatches++
		}

		inRef := r.Present[plan.Reference]
		for _, s := range snaps[1:] {
			d := drifts[s.Name]
			switch {
			case inRef && !r.Present[s.Name]:
				d.missing++
			case !inRef && r.Present[s.Name]:
				d.extra++
			case inRef && mentions(r.Mismatch, s.Name):
				d.mismatched++
			}
		}
	}

	if !opts.DoSync {
		return plan
	}
	for _, s := range snaps[1:] {
		d := drifts[s.Name]
		if d.missing+d.extra+d.mismatched == 0 {
			continue
		}
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionReplace,
			Target: s.Name,
			Reason: fmt.Sprintf("%d missing, %d extra, %d mismatched against %s", d.missing, d.extra, d.mismatched, plan.Reference),
		})
	}
	plan.Summary.SyncActions = len(plan.Actions)
	return plan
}

// drift counts how a replica differs from the reference.
type drift struct {
	missing    int
	extra      int
	mismatched int
}

func mentions(mismatch []string, name string) bool {
	for _, m := range mismatch {
		if strings.Contains(m, " "+name+"=") {
			return true
		}
	}
	return false
}

// ApplyPlan executes the actions in a plan with the reference rules.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, plan *Plan, mutator Mutator, opts Options) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	if plan.reference == nil {
		return 0, fmt.Errorf("plan has no reference rules")
	}

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionReplace:
			if err := mutator.Replace(ctx, action.Target, plan.reference.Rules); err != nil {
				return executed, fmt.Errorf("failed to replace rules in %s: %w", action.Target, err)
			}
			executed++
		default:
			return executed, fmt.Errorf("unknown action type %q", action.Type)
		}
	}
	return executed, nil
}
