package cli

import (
	"github.com/spf13/cobra"

	"github.com/gabssanto/gestor/internal/config"
)

func newShowCommand(g *globalOptions) *cobra.Command {
	p := config.DefaultParams()
	p.Command = config.CommandShow

	cmd := &cobra.Command{
		Use:   "show <tag>",
		Short: "Show how files will be organized",
		Long: `Scan the source directory for files containing [tag] in their name and
print the folder tree they would be moved into. Nothing is changed on disk.`,
		Example: `  gestor show alpha
  gestor show alpha --source ./input --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Tag = args[0]
			_, err := g.dispatcher(cmd).Show(p)
			return err
		},
	}

	cmd.Flags().StringVarP(&p.Source, "source", "s", config.DefaultSource, "Source directory")
	cmd.Flags().BoolVar(&p.DryRun, "dry-run", false, "Simulate the process (show never changes anything)")
	cmd.Flags().StringVar(&p.Format, "format", config.FormatTree, "Preview format: tree or yaml")

	return cmd
}
