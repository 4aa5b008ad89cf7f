// Package validation exposes the equipment accompaniment validation as a service.
//
// ValidateActivity fetches the installed and customer inventories of an activity
// concurrently, loads the current rule table and runs the two pass engine from
// core/validation. A failing installed inventory fetch aborts the request. A
// failing customer fetch is logged and treated as an empty inventory.
//
// Validate runs the same engine on inventories supplied by the caller, with
// optional inline rules. Reports carry one row per grouping with the equipment
// description resolved through the catalog.
package validation
