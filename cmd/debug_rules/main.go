package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"equipment-validator/core/config"
	"equipment-validator/core/database"
	"equipment-validator/core/ofsc"
	"equipment-validator/core/reconcile"
	"equipment-validator/core/storage"
	"equipment-validator/core/validation"
	"equipment-validator/feature/rules"
)

// debug_rules loads the rules of every reachable backend and prints a presence
// matrix per equipment type.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	deps := rules.Deps{Bucket: cfg.Storage.Bucket, Object: cfg.Rules.Object}
	if client, err := ofsc.NewClient(cfg.OFSC); err == nil {
		deps.OFSC = client
	} else {
		fmt.Printf("ofsc: skipped (%v)\n", err)
	}
	if client, err := storage.NewClient(cfg.Storage); err == nil {
		deps.Storage = client
	} else {
		fmt.Printf("storage: skipped (%v)\n", err)
	}
	if db, err := database.Connect(cfg.Database); err == nil {
		deps.DB = db
	} else {
		fmt.Printf("database: skipped (%v)\n", err)
	}

	policy, err := validation.ParseDuplicatePolicy(cfg.Rules.DuplicatePolicy)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// Load one by one so a broken backend does not hide the others.
	var snaps []*reconcile.Snapshot
	fmt.Println("=== Sources ===")
	for _, p := range rules.AvailableProviders(cfg.Rules.Source, deps) {
		start := time.Now()
		list, err := p.Load(ctx)
		if err != nil {
			fmt.Printf("%-10s load failed after %s: %v\n", p.Name(), time.Since(start), err)
			continue
		}
		snap := reconcile.NewSnapshot(p.Name(), list, policy)
		snaps = append(snaps, snap)
		fmt.Printf("%-10s %d rows, %d governing rules, %s\n", p.Name(), len(list), len(snap.Rules), time.Since(start))
	}
	if len(snaps) == 0 {
		log.Fatal("no rule source could be loaded")
	}

	plan := reconcile.BuildPlan(snaps, reconcile.Options{DoSync: true})

	fmt.Printf("\n=== Presence (reference %s) ===\n", plan.Reference)
	fmt.Printf("%-16s %s\n", "EQUIPMENT", strings.Join(plan.Sources, " "))
	for _, r := range plan.Results {
		marks := make([]string, 0, len(plan.Sources))
		for _, name := range plan.Sources {
			mark := "-"
			if r.Present[name] {
				mark = "x"
			}
			marks = append(marks, fmt.Sprintf("%-*s", len(name), mark))
		}
		fmt.Printf("%-16s %s\n", r.EquipmentType, strings.Join(marks, " "))
		for _, m := range r.Mismatch {
			fmt.Printf("    %s\n", m)
		}
	}

	fmt.Println("\n=== Would replace ===")
	if len(plan.Actions) == 0 {
		fmt.Println("nothing, all sources agree")
	}
	for _, a := range plan.Actions {
		fmt.Printf("%s: %s\n", a.Target, a.Reason)
	}
}
