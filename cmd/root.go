package cmd

import (
	"errors"
	"fmt"
	"os"

	"equipment-validator/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "equipment-validator",
	Short: "Equipment Validation Service",
	Long: `Equipment Validator checks that every equipment installed during a field
service activity is accompanied by a compatible power source and remote control.
It serves validation over HTTP and offers the same checks from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError ends the process with a code without being logged as a failure.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}

	// Console format with ISO8601 timestamps reads better from a terminal.
	cfg := &logger.Config{
		Level:  "debug",
		Format: "console",
	}

	l, logErr := logger.New(cfg)
	if logErr == nil {
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
	} else {
		fmt.Println(err)
	}
	os.Exit(1)
}
