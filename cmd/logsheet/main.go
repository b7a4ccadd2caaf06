package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/logsheet/logsheet/internal/cli"
	"github.com/logsheet/logsheet/internal/config"
)

const quickStart = `logsheet - IIS access-log analysis and spreadsheet export

START HERE (this is the command you want):
  logsheet analyze access.log

It parses the log, derives the status summary, endpoint pivot and error
rollup, and writes access.xlsx next to the input.

Other useful commands:
  logsheet summary access.log           Status-code breakdown in the terminal
  logsheet rollup access.log            Endpoints with errors (status >= 500)
  logsheet fields access.log            Show the file's declared field schema
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, configFile, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
		configFile = ""
	}

	var c cli.CLI

	// Apply config defaults before parsing; CLI flags override them
	vars := kong.Vars{
		"config_format": cfg.Format,
	}

	ctx := kong.Parse(&c,
		kong.Name("logsheet"),
		kong.Description("Analyze IIS W3C access logs and export multi-sheet XLSX reports\n\nSTART HERE: logsheet analyze <file.log>"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals := cli.NewGlobals(&c, cfg, configFile)
	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}
