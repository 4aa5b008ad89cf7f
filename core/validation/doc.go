// Package validation checks that equipment found on an activity is accompanied
// by the power sources and remote controls its rule requires.
//
// # Components
//
//   - RuleTable: immutable lookup from equipment type to allowed source and
//     control types. The sentinels "0" and "NA" mean no accessory of that kind
//     is required, "*" accepts any classified accessory.
//   - Classify: turns raw inventory rows into equipment, source or control
//     candidates, replicating units by quantity.
//   - Ledger: records consumed candidates so nothing is matched twice.
//   - Run.MatchEquipment: tiered first-fit matching for one equipment.
//   - Engine.Validate: the two-pass reconciliation producing validated groups
//     and findings.
//
// # Usage
//
//	table := validation.NewRuleTable(rules, validation.DuplicateLastWins)
//	engine := validation.NewEngine(table, logger)
//	result := engine.Validate(installed, customer)
//	if !result.Valid() {
//	    for _, msg := range result.Errors {
//	        fmt.Println(msg)
//	    }
//	}
//
// Findings are data, not errors: a run never aborts because an item fails to match.
package validation
