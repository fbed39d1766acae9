package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gabssanto/gestor/internal/confirm"
	"github.com/gabssanto/gestor/internal/fsys"
	"github.com/gabssanto/gestor/internal/gestor"
	"github.com/gabssanto/gestor/internal/logging"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	verbose   bool
	logFormat string
	log       *slog.Logger
}

func (g *globalOptions) setupLogger(cmd *cobra.Command) {
	cfg := logging.DefaultConfig()
	cfg.Format = g.logFormat
	if g.verbose {
		cfg.Level = "debug"
	}
	g.log = logging.New(cmd.ErrOrStderr(), cfg)
}

// dispatcher builds a Dispatcher bound to the command's streams and the real
// filesystem.
func (g *globalOptions) dispatcher(cmd *cobra.Command) *gestor.Dispatcher {
	return &gestor.Dispatcher{
		FS:      fsys.New(),
		Out:     cmd.OutOrStdout(),
		Confirm: confirm.For(cmd.InOrStdin(), cmd.OutOrStdout()),
		Log:     g.log,
	}
}

// NewRootCommand creates and returns the root cobra command for gestor
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "gestor",
		Short: "Organize files by [tag]",
		Long: `gestor finds files whose names contain a [tag] marker and sorts them
into <target>/[tag]/<extension>/.

Use 'show' to preview the layout and 'process' to move the files.
Existing files at a destination are overwritten without warning.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.setupLogger(cmd)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")

	// Add subcommands
	cmd.AddCommand(newShowCommand(opts))
	cmd.AddCommand(newProcessCommand(opts))
	cmd.AddCommand(newTagsCommand(opts))
	cmd.AddCommand(newCompletionsCommand())

	return cmd
}
