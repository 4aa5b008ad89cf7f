// Package rules loads, caches and imports the equipment accompaniment rules.
//
// Rules come from one of three providers selected by configuration:
//
//   - ofsc: the JSON held in the rules metadata property
//   - storage: a JSON snapshot object in the bucket
//   - database: the equipment_rules overrides table
//
// The Cache compiles the provider output into a validation.RuleTable and keeps
// it for a TTL. Concurrent reloads are collapsed with singleflight.
//
// Imports read an .xlsx workbook with the columns skuequipo, descripcion,
// skufuente and skucontrol. The rows replace the overrides table in a single
// transaction and are published as the storage snapshot.
package rules
