// Package cli implements the inied command line: lossless inspection and
// editing of INI files.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/shapestone/shape-ini/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	color   string

	cfg    *config.Config
	logger *log.Logger
}

// NewRootCommand builds the inied command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "inied",
		Short: "Inspect and edit INI files without losing formatting",
		Long: `inied reads INI files into a lossless document model: comments, blank
lines, spacing and line endings survive every edit. Only the lines you
change are rewritten.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/inied/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.color, "color", "", "colorize output: auto, always or never")

	root.AddCommand(
		newGetCommand(a),
		newSetCommand(a),
		newCheckCommand(a),
		newExportCommand(a),
		newPatchCommand(a),
		newQueryCommand(a),
		newInspectCommand(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(),
		fang.WithVersion(fmt.Sprintf("%s (commit: %s)", Version, Commit)),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// init loads configuration and sets up logging. Flags override config.
func (a *app) init(cmd *cobra.Command) error {
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "inied"})
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}

	cfg, used, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if used != "" {
		a.logger.Debug("loaded config", "file", used)
	}

	if a.color != "" {
		cfg.Color = a.color
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	return nil
}

// useColor reports whether output to w should carry ANSI colors.
func (a *app) useColor(w io.Writer) bool {
	switch a.cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
