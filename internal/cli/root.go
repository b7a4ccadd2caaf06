package cli

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/logsheet/logsheet/internal/config"
)

// CLI is the root command structure for logsheet
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"${config_format}" enum:"text,ndjson" help:"Output format"`
	Quiet   bool   `short:"q" help:"Suppress non-essential output (diagnostics still count toward the outcome)"`
	Verbose bool   `short:"v" help:"Show debug output (parser internals, per-file timing)"`
	Strict  bool   `help:"Require the baseline IIS field set (date, time, sc-status, time-taken, cs-uri-stem)"`

	// Commands
	Analyze AnalyzeCmd `cmd:"" default:"withargs" help:"Run the full pipeline and export an XLSX report"`
	Summary SummaryCmd `cmd:"" help:"Show the status-code breakdown for a log file"`
	Pivot   PivotCmd   `cmd:"" help:"Show the endpoint-by-status pivot for a log file"`
	Rollup  RollupCmd  `cmd:"" help:"Show the error (status >= 500) rollup for a log file"`
	Fields  FieldsCmd  `cmd:"" help:"Show the field schema declared by a log file"`
	Config  ConfigCmd  `cmd:"" help:"Show or manage configuration"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format     string
	Quiet      bool
	Verbose    bool
	Strict     bool
	Stdout     io.Writer
	Stderr     io.Writer
	Config     *config.Config
	ConfigFile string
}

// NewGlobals creates a new Globals instance with config fallbacks
func NewGlobals(cli *CLI, cfg *config.Config, configFile string) *Globals {
	g := &Globals{
		Format:     cli.Format,
		Quiet:      cli.Quiet,
		Verbose:    cli.Verbose,
		Strict:     cli.Strict,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Config:     cfg,
		ConfigFile: configFile,
	}

	// Apply config values if CLI flags weren't explicitly set
	if cfg != nil {
		if !cli.Quiet && cfg.Quiet {
			g.Quiet = cfg.Quiet
		}
		if !cli.Verbose && cfg.Verbose {
			g.Verbose = cfg.Verbose
		}
		if !cli.Strict && cfg.Strict {
			g.Strict = cfg.Strict
		}
	}

	return g
}

// Debug prints a debug message if verbose mode is enabled
func (g *Globals) Debug(format string, args ...interface{}) {
	if g.Verbose {
		fmt.Fprintf(g.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// Logger returns a zap logger for pipeline diagnostics: console output to
// stderr in verbose mode, a nop logger otherwise.
func (g *Globals) Logger() *zap.Logger {
	if !g.Verbose {
		return zap.NewNop()
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(g.Stderr),
		zap.DebugLevel,
	)
	return zap.New(core)
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		io.WriteString(globals.Stdout, `{"type":"version","version":"`+Version+`","commit":"`+Commit+`"}`+"\n")
	} else {
		io.WriteString(globals.Stdout, "logsheet version "+Version+" ("+Commit+")\n")
	}
	return nil
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
