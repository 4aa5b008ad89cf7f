// Package reconcile compares the rule sets held by several backends.
//
// The first source is the reference. Every other source is a replica that
// should govern the same equipment types with the same source and control
// lists. Type lists compare as sets, so "SRC1, SRC2" equals "SRC2, SRC1".
//
// # Usage Example
//
//	snaps, err := reconcile.LoadSnapshots(ctx, sources, validation.DuplicateLastWins)
//	plan := reconcile.BuildPlan(snaps, reconcile.Options{DoSync: true})
//
//	// Nothing is written unless confirmed and not a dry run.
//	n, err := reconcile.ApplyPlan(ctx, plan, mutator, reconcile.Options{Confirmed: true})
package reconcile
