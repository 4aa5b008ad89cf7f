// Package integrity provides health checks for the validator's rule backends.
//
// # Checks Provided
//
//   - Storage: the bucket and the rule snapshot object exist (fix publishes the current rules).
//   - Schema: the equipment_rules table matches its gorm model (fix runs AutoMigrate).
//   - Rules: the rule table in effect has no duplicates, no rules without any
//     accessory, and no lists mixing a sentinel with real types.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Snapshot check (supports ?fix=true).
//   - GET /integrity/schema : Schema check (supports ?fix=true).
//   - GET /integrity/rules : Rule audit.
package integrity
