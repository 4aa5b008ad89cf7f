package cmd

import (
	"fmt"
	"io"
	"strconv"

	"equipment-validator/feature/validation"
)

const rowFormat = "%-4s %-16s %-28s %-12s %-12s %s\n"

// renderReport writes the terminal form of a validation report.
func renderReport(w io.Writer, r *validation.Report) {
	fmt.Fprintln(w, "=== Equipment Validation ===")
	if r.ActivityID != "" {
		fmt.Fprintf(w, "Activity: %s\n", r.ActivityID)
	}
	fmt.Fprintf(w, "Rules: %s\n", r.RuleSource)
	fmt.Fprintln(w)

	if len(r.Rows) == 0 {
		fmt.Fprintln(w, "No equipment validated.")
	} else {
		fmt.Fprintf(w, rowFormat, "#", "EQUIPMENT", "DESCRIPTION", "SOURCE", "CONTROL", "RESULT")
		replicated := false
		for _, row := range r.Rows {
			result := "valid"
			if !row.Result {
				result = "invalid"
			}
			control := row.Control
			if row.ControlReplicated {
				control += "*"
				replicated = true
			}
			fmt.Fprintf(w, rowFormat, strconv.Itoa(row.Index), row.EquipmentType, row.Description, row.Source, control, result)
		}
		if replicated {
			fmt.Fprintln(w, "* control without serial, counted from quantity.")
		}
		if !r.AccessoriesEvaluated {
			fmt.Fprintln(w, "No sources or controls were evaluated.")
		}
	}
	fmt.Fprintln(w)

	if len(r.Errors) == 0 {
		fmt.Fprintln(w, "No errors found.")
	} else {
		fmt.Fprintf(w, "Errors (%d):\n", len(r.Errors))
		for _, msg := range r.Errors {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}
	fmt.Fprintln(w)

	s := r.Summary
	fmt.Fprintf(w, "%-24s %d\n", "Installed equipment:", s.InstalledEquipment)
	fmt.Fprintf(w, "%-24s %d\n", "Customer equipment:", s.CustomerEquipment)
	fmt.Fprintf(w, "%-24s %d\n", "Sources:", s.Sources)
	fmt.Fprintf(w, "%-24s %d\n", "Controls:", s.Controls)
	fmt.Fprintf(w, "%-24s %d\n", "Validated:", s.Validated)
	fmt.Fprintf(w, "%-24s %d\n", "Missing accompaniment:", s.MissingAccompaniment)
	fmt.Fprintf(w, "%-24s %d\n", "Orphan sources:", s.OrphanSources)
	fmt.Fprintf(w, "%-24s %d\n", "Orphan controls:", s.OrphanControls)

	status := "VALID"
	if !r.Valid {
		status = "INVALID"
	}
	fmt.Fprintf(w, "%-24s %s\n", "Status:", status)
}
