package checks

import (
	"equipment-validator/core/validation"
)

// RulesReport lists rule configuration problems.
type RulesReport struct {
	Rules      int      `json:"rules"`
	Duplicates []string `json:"duplicates"`
	Status     string   `json:"status"`

	// NoAccessories lists rules whose source and control lists are both
	// sentinels. Such equipment can never be grouped.
	NoAccessories []string `json:"no_accessories"`

	// MixedSentinels lists rules combining a sentinel with real types in one list.
	MixedSentinels []string `json:"mixed_sentinels"`

	// Wildcards lists rules accepting any source or control.
	Wildcards []string `json:"wildcards"`
}

// AuditRules checks the governing rules of a table.
func AuditRules(table *validation.RuleTable) RulesReport {
	report := RulesReport{
		Rules:          table.Len(),
		Duplicates:     append([]string{}, table.Duplicates()...),
		NoAccessories:  []string{},
		MixedSentinels: []string{},
		Wildcards:      []string{},
		Status:         "ok",
	}

	for _, r := range table.Rules() {
		srcSentinel, srcTyped, srcWildcard := inspectList(r.Sources)
		ctlSentinel, ctlTyped, ctlWildcard := inspectList(r.Controls)

		if !srcTyped && !ctlTyped && !srcWildcard && !ctlWildcard {
			report.NoAccessories = append(report.NoAccessories, r.EquipmentType)
		}
		if (srcSentinel && (srcTyped || srcWildcard)) || (ctlSentinel && (ctlTyped || ctlWildcard)) {
			report.MixedSentinels = append(report.MixedSentinels, r.EquipmentType)
		}
		if srcWildcard || ctlWildcard {
			report.Wildcards = append(report.Wildcards, r.EquipmentType)
		}
	}

	if len(report.Duplicates) > 0 || len(report.NoAccessories) > 0 || len(report.MixedSentinels) > 0 {
		report.Status = "warning"
	}
	return report
}

func inspectList(list validation.StringList) (sentinel, typed, wildcard bool) {
	for _, v := range list {
		switch v {
		case validation.SentinelZero, validation.SentinelNA:
			sentinel = true
		case validation.Wildcard:
			wildcard = true
		default:
			typed = true
		}
	}
	return sentinel, typed, wildcard
}
