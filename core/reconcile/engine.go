package reconcile

import (
	"fmt"
	"slices"
	"sort"

	"equipment-validator/core/validation"
)

// Reconcile compares every snapshot against the first one, the reference.
// Results are sorted by equipment type.
func Reconcile(snaps []*Snapshot) []Result {
	if len(snaps) == 0 {
		return []Result{}
	}

	union := make(map[string]struct{})
	for _, s := range snaps {
		for key := range s.index {
			union[key] = struct{}{}
		}
	}

	results := make([]Result, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, snaps))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].EquipmentType < results[j].EquipmentType
	})
	return results
}

func buildResult(key string, snaps []*Snapshot) Result {
	result := Result{
		EquipmentType: key,
		Present:       make(map[string]bool, len(snaps)),
		Mismatch:      []string{},
	}

	for _, s := range snaps {
		r, ok := s.Lookup(key)
		result.Present[s.Name] = ok
		if ok && result.Description == "" {
			result.Description = r.Description
		}
	}

	ref := snaps[0]
	refRule, ok := ref.Lookup(key)
	if !ok {
		return result
	}
	for _, s := range snaps[1:] {
		r, ok := s.Lookup(key)
		if !ok {
			continue
		}
		result.Mismatch = append(result.Mismatch, compareRules(ref.Name, refRule, s.Name, r)...)
	}
	return result
}

// compareRules lists field differences. Type lists compare as sets.
func compareRules(refName string, ref validation.Rule, name string, r validation.Rule) []string {
	var out []string
	if !sameSet(ref.Sources, r.Sources) {
		out = append(out, fmt.Sprintf("sources: %s=[%s] %s=[%s]", refName, ref.Sources, name, r.Sources))
	}
	if !sameSet(ref.Controls, r.Controls) {
		out = append(out, fmt.Sprintf("controls: %s=[%s] %s=[%s]", refName, ref.Controls, name, r.Controls))
	}
	if ref.Description != r.Description {
		out = append(out, fmt.Sprintf("description: %s=%q %s=%q", refName, ref.Description, name, r.Description))
	}
	return out
}

func sameSet(a, b validation.StringList) bool {
	x := slices.Clone([]string(a))
	y := slices.Clone([]string(b))
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(slices.Compact(x), slices.Compact(y))
}
