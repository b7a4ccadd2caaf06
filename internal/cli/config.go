package cli

import (
	"fmt"

	"github.com/logsheet/logsheet/internal/config"
	"github.com/logsheet/logsheet/internal/report"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"withargs" help:"Show current configuration"`
	Path ConfigPathCmd `cmd:"" help:"Show configuration file path"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.Format == "ndjson" {
		return report.NewNDJSONWriter(globals.Stdout).WriteConfig(report.ConfigOutput{
			File:        globals.ConfigFile,
			Format:      cfg.Format,
			Strict:      cfg.Strict,
			OutputDir:   cfg.Defaults.OutputDir,
			PreviewRows: cfg.Defaults.PreviewRows,
			Concurrency: cfg.Defaults.Concurrency,
		})
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:  %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet:   %v\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %v\n", cfg.Verbose)
	fmt.Fprintf(globals.Stdout, "  strict:  %v\n", cfg.Strict)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Defaults:")
	fmt.Fprintf(globals.Stdout, "  output_dir:        %s\n", cfg.Defaults.OutputDir)
	fmt.Fprintf(globals.Stdout, "  concurrency:       %d\n", cfg.Defaults.Concurrency)
	fmt.Fprintf(globals.Stdout, "  progress_interval: %s\n", cfg.Defaults.ProgressInterval)
	fmt.Fprintf(globals.Stdout, "  preview_rows:      %d\n", cfg.Defaults.PreviewRows)

	if globals.ConfigFile != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", globals.ConfigFile)
	}
	return nil
}

// ConfigPathCmd shows the configuration file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	if globals.ConfigFile == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found (using defaults)")
		return nil
	}
	fmt.Fprintln(globals.Stdout, globals.ConfigFile)
	return nil
}
