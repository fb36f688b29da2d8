// Command hemlock is the CLI/REPL driver: a thin spf13/cobra + spf13/pflag
// shell around internal/eval, using a root-command-plus-subcommands
// layering where other commands attach to Root via AddCommand.
package main

import (
	"fmt"
	"os"

	"github.com/nbeerbower/hemlock/internal/builtin"
	"github.com/nbeerbower/hemlock/internal/config"
	"github.com/nbeerbower/hemlock/internal/logx"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var log = logx.For("cmd")

var configPath string
var verbose bool

// Root is the top-level command, exported so subcommands can attach to
// it via AddCommand.
var Root = &cobra.Command{
	Use:   "hemlock [script-file] [args...]",
	Short: "Run or explore a hemlock script",
	Long: `hemlock executes a single source file, or with no arguments starts a
REPL reading one statement per line.`,
	DisableFlagsInUseLine: true,
	Args:                  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runREPL(loadConfig())
		}
		return runScript(loadConfig(), args[0], args[1:])
	},
}

func init() {
	var pf *pflag.FlagSet = Root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to a YAML config file (default ~/.hemlock/config.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	Root.AddCommand(runCmd)
	Root.AddCommand(replCmd)
}

var runCmd = &cobra.Command{
	Use:   "run <script-file> [args...]",
	Short: "Execute a source file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScript(loadConfig(), args[0], args[1:])
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL(loadConfig())
	},
}

func loadConfig() *config.Config {
	if verbose {
		logx.SetLevel("debug")
	}
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.WithError(err).Warn("failed to load config file, using defaults")
		cfg = config.Defaults()
	}
	builtin.DefaultChannelCapacity = cfg.DefaultChannelCapacity
	return cfg
}

func main() {
	if err := Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
