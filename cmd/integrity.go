package cmd

import (
	"fmt"
	"io"
	"strings"

	"equipment-validator/core/reconcile"
	"equipment-validator/feature/integrity"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Run integrity checks on the rule backends",
	Long:  `Checks the rule snapshot in storage, the rule table schema and the rules currently in effect.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := newIntegrityService()
		if err != nil {
			return err
		}
		defer cleanup()

		data, err := json.MarshalIndent(svc.RunAll(cmd.Context()), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

// storageCheckCmd represents the integrity storage command
var storageCheckCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the rule snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, cleanup, err := newIntegrityService()
		if err != nil {
			return err
		}
		defer cleanup()

		if fix, _ := cmd.Flags().GetBool("fix"); fix {
			if err := svc.FixStorage(ctx); err != nil {
				return fmt.Errorf("failed to publish snapshot: %w", err)
			}
		}

		report, err := svc.CheckStorage(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Bucket: %s (exists: %t)\n", report.Bucket, report.BucketExists)
		fmt.Fprintf(out, "Object: %s (exists: %t)\n", report.Object, report.ObjectExists)
		if report.ObjectExists {
			fmt.Fprintf(out, "Size: %d bytes\n", report.Size)
			fmt.Fprintf(out, "Last Modified: %s\n", report.LastModified.Format("2006-01-02 15:04:05"))
		}
		if len(report.Siblings) > 0 {
			fmt.Fprintf(out, "Other snapshots: %s\n", strings.Join(report.Siblings, ", "))
		}
		fmt.Fprintf(out, "Status: %s\n", report.Status)
		return nil
	},
}

// schemaCheckCmd represents the integrity schema command
var schemaCheckCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check and migrate the rule table schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := newIntegrityService()
		if err != nil {
			return err
		}
		defer cleanup()

		if fix, _ := cmd.Flags().GetBool("fix"); fix {
			if err := svc.FixSchema(); err != nil {
				return err
			}
		}

		report, err := svc.CheckSchema()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Table: %s (exists: %t)\n", report.Table, report.Exists)
		fmt.Fprintf(out, "Missing Columns: %d\n", len(report.MissingColumns))
		for _, col := range report.MissingColumns {
			fmt.Fprintf(out, "  - %s\n", col)
		}
		fmt.Fprintf(out, "Type Mismatches: %d\n", len(report.TypeMismatches))
		for _, m := range report.TypeMismatches {
			fmt.Fprintf(out, "  - %s\n", m)
		}
		fmt.Fprintf(out, "Matched: %t\n", report.Matched)
		return nil
	},
}

// rulesAuditCmd represents the integrity rules command
var rulesAuditCmd = &cobra.Command{
	Use:   "rules",
	Short: "Audit the rules currently in effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := newIntegrityService()
		if err != nil {
			return err
		}
		defer cleanup()

		report, err := svc.AuditRules(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Rules: %d\n", report.Rules)
		printList(out, "Duplicates", report.Duplicates)
		printList(out, "Without accessories", report.NoAccessories)
		printList(out, "Mixed sentinels", report.MixedSentinels)
		printList(out, "Wildcards", report.Wildcards)
		fmt.Fprintf(out, "Status: %s\n", report.Status)
		return nil
	},
}

// sourcesCheckCmd represents the integrity sources command
var sourcesCheckCmd = &cobra.Command{
	Use:   "sources",
	Short: "Reconcile the rules held by every backend",
	Long: `Compares the rules of every reachable backend against the configured rules source.
With --sync the drifted replicas are listed for replacement, and with --confirm they are overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := newIntegrityService()
		if err != nil {
			return err
		}
		defer cleanup()

		doSync, _ := cmd.Flags().GetBool("sync")
		confirmed, _ := cmd.Flags().GetBool("confirm")

		plan, executed, err := svc.ReconcileSources(cmd.Context(), reconcile.Options{DoSync: doSync, Confirmed: confirmed})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Reference: %s\n", plan.Reference)
		fmt.Fprintf(out, "Equipment types: %d\n", plan.Summary.TotalItems)
		for _, name := range plan.Sources {
			fmt.Fprintf(out, "Missing in %s: %d\n", name, plan.Summary.Missing[name])
		}
		fmt.Fprintf(out, "Mismatches: %d\n", plan.Summary.Mismatches)
		for _, r := range plan.Results {
			for _, m := range r.Mismatch {
				fmt.Fprintf(out, "  %s %s\n", r.EquipmentType, m)
			}
		}
		for _, action := range plan.Actions {
			fmt.Fprintf(out, "Action: %s %s (%s)\n", action.Type, action.Target, action.Reason)
		}
		if len(plan.Actions) > 0 && !confirmed {
			fmt.Fprintln(out, "Run again with --confirm to apply.")
		}
		fmt.Fprintf(out, "Executed: %d\n", executed)
		return nil
	},
}

func printList(out io.Writer, label string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(out, "%s: none\n", label)
		return
	}
	fmt.Fprintf(out, "%s: %s\n", label, strings.Join(items, ", "))
}

func newIntegrityService() (*integrity.Service, func(), error) {
	a, err := bootstrap(bootstrapOptions{database: true})
	if err != nil {
		return nil, nil, err
	}
	return a.integrityService(), func() { _ = a.logger.Sync() }, nil
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(storageCheckCmd)
	integrityCmd.AddCommand(schemaCheckCmd)
	integrityCmd.AddCommand(rulesAuditCmd)
	integrityCmd.AddCommand(sourcesCheckCmd)

	storageCheckCmd.Flags().Bool("fix", false, "Publish the current rules as the snapshot")
	schemaCheckCmd.Flags().Bool("fix", false, "Migrate the rule table")
	sourcesCheckCmd.Flags().Bool("sync", false, "Plan replacing drifted replicas")
	sourcesCheckCmd.Flags().Bool("confirm", false, "Apply the planned replacements")
}
