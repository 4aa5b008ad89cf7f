package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	engine "equipment-validator/core/validation"
	"equipment-validator/feature/rules"
	"equipment-validator/feature/validation"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exitFindings is the exit code when a validation reports findings.
const exitFindings = 2

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an activity or inventory files",
	Long: `Validates the installed equipment of a field service activity, or of inventory
files given with --installed and --customer. Rules come from the configured source
unless --rules points at a JSON or .xlsx rule file.

Exits with status 2 when the validation reports findings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		activityID, _ := cmd.Flags().GetString("activity")
		installedPath, _ := cmd.Flags().GetString("installed")
		customerPath, _ := cmd.Flags().GetString("customer")
		rulesPath, _ := cmd.Flags().GetString("rules")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		if activityID == "" && installedPath == "" {
			return fmt.Errorf("either --activity or --installed is required")
		}

		a, err := bootstrap(bootstrapOptions{skipRules: rulesPath != ""})
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		svc := newValidationService(a)

		var report *validation.Report
		if activityID != "" && installedPath == "" {
			report, err = svc.ValidateActivity(ctx, activityID)
			if err != nil {
				return err
			}
		} else {
			req := validation.Request{}
			if req.Installed, err = readInventory(installedPath); err != nil {
				return err
			}
			if customerPath != "" {
				if req.Customer, err = readInventory(customerPath); err != nil {
					return err
				}
			}
			if rulesPath != "" {
				if req.Rules, err = readRules(rulesPath); err != nil {
					return err
				}
				if len(req.Rules) == 0 {
					return fmt.Errorf("rule file %s holds no rules", rulesPath)
				}
			}
			report, err = svc.Validate(ctx, req)
			if err != nil {
				return err
			}
			report.ActivityID = activityID
			if rulesPath != "" {
				report.RuleSource = filepath.Base(rulesPath)
			}
		}

		a.logger.Debug("Validation command finished", zap.Duration("elapsed", time.Since(startTime)))

		out := cmd.OutOrStdout()
		if jsonOutput {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			fmt.Fprintln(out, string(data))
		} else {
			renderReport(out, report)
		}

		if !report.Valid {
			return &exitError{code: exitFindings}
		}
		return nil
	},
}

func newValidationService(a *app) *validation.Service {
	var inventories validation.Inventories
	if a.ofsc != nil {
		inventories = a.ofsc
	}
	var ruleTables validation.Rules
	if a.rules != nil {
		ruleTables = a.rules
	}
	var describer validation.Catalog
	if a.catalog != nil {
		describer = a.catalog
	}
	return validation.NewService(inventories, ruleTables, describer, a.policy, a.cfg.Rules.Source, a.logger)
}

// inventoryFile accepts both a bare array and the platform's {"items": [...]} envelope.
type inventoryFile struct {
	Items []engine.RawItem `json:"items"`
}

func readInventory(path string) ([]engine.RawItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var items []engine.RawItem
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("inventory file %s: %w", path, err)
		}
		return items, nil
	}

	var file inventoryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("inventory file %s: %w", path, err)
	}
	return file.Items, nil
}

func readRules(path string) ([]engine.Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		list, _, err := rules.ReadWorkbook(f)
		return list, err
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}
	return engine.ParseRules(data)
}

func init() {
	RootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("activity", "", "Activity id to fetch inventories for")
	validateCmd.Flags().String("installed", "", "Installed inventory JSON file")
	validateCmd.Flags().String("customer", "", "Customer inventory JSON file")
	validateCmd.Flags().String("rules", "", "Rule file (.json or .xlsx) replacing the configured rules")
	validateCmd.Flags().Bool("json", false, "Output the report as JSON")
}
