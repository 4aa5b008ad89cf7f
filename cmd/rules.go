package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and import equipment rules",
}

// rulesListCmd represents the rules list command
var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rules currently in effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(bootstrapOptions{})
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		listing, err := a.rules.List(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s %-32s %-24s %s\n", "EQUIPMENT", "DESCRIPTION", "SOURCES", "CONTROLS")
		for _, r := range listing.Rules {
			fmt.Fprintf(out, "%-16s %-32s %-24s %s\n", r.EquipmentType, r.Description, r.Sources.String(), r.Controls.String())
		}
		fmt.Fprintf(out, "\nSource: %s\n", listing.Source)
		fmt.Fprintf(out, "Rules: %d\n", listing.Count)
		if len(listing.Duplicates) > 0 {
			fmt.Fprintf(out, "Duplicates: %v\n", listing.Duplicates)
		}
		return nil
	},
}

// rulesImportCmd represents the rules import command
var rulesImportCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import rules from a spreadsheet",
	Long:  `Reads the rule sheet and replaces the rules in the database and the storage snapshot, whichever are available.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(bootstrapOptions{database: true})
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open workbook: %w", err)
		}
		defer f.Close()

		result, err := a.rules.Import(cmd.Context(), f)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported: %d\n", result.Imported)
		fmt.Fprintf(out, "Skipped: %d\n", result.Skipped)
		fmt.Fprintf(out, "Targets: %v\n", result.Targets)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesImportCmd)
}
