package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gabssanto/gestor/internal/config"
	"github.com/gabssanto/gestor/internal/filelock"
	"github.com/gabssanto/gestor/internal/mover"
)

func newProcessCommand(g *globalOptions) *cobra.Command {
	p := config.DefaultParams()
	p.Command = config.CommandProcess

	cmd := &cobra.Command{
		Use:   "process <tag>",
		Short: "Organize and move files",
		Long: `Preview the layout like 'show', ask for confirmation, then move every
matching file to <target>/[tag]/<extension>/<filename>.

With --dry-run no prompt is shown and every move is only printed.
A file already present at a destination is overwritten. If a move fails,
the remaining moves are abandoned; moves made before it are kept.`,
		Example: `  gestor process alpha --source ./input --target ./gestor
  gestor process alpha --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Tag = args[0]

			if !p.DryRun {
				unlock, err := lockTarget(p.Target, g.log)
				if err != nil {
					return err
				}
				defer unlock()
			}

			state, err := g.dispatcher(cmd).Process(p)
			var moveErr *mover.MoveError
			if errors.As(err, &moveErr) {
				g.log.Error("move aborted",
					"failed", moveErr.Move.Source,
					"completed", len(moveErr.Completed),
				)
			}
			g.log.Debug("process finished", "state", state.String())
			return err
		},
	}

	cmd.Flags().StringVarP(&p.Source, "source", "s", config.DefaultSource, "Source directory")
	cmd.Flags().StringVarP(&p.Target, "target", "t", config.DefaultTarget, "Target directory")
	cmd.Flags().BoolVar(&p.DryRun, "dry-run", false, "Simulate the process")
	cmd.Flags().StringVar(&p.Format, "format", config.FormatTree, "Preview format: tree or yaml")

	return cmd
}

// lockTarget takes the per-target lock for the duration of a committed run.
func lockTarget(target string, log *slog.Logger) (func(), error) {
	lock, err := filelock.ForTarget(target)
	if err != nil {
		return nil, err
	}

	ok, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("another gestor run is already moving files into %s", target)
	}
	log.Debug("target locked", "target", target, "lock", lock.Path())

	return func() {
		if err := lock.Unlock(); err != nil {
			log.Warn("failed to release target lock", "error", err)
		}
	}, nil
}
