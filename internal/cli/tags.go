package cli

import (
	"github.com/spf13/cobra"

	"github.com/gabssanto/gestor/internal/config"
)

func newTagsCommand(g *globalOptions) *cobra.Command {
	p := config.DefaultParams()
	p.Command = config.CommandTags

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags found in file names",
		Long: `Walk the source directory and count the first [tag] in every file name.
Useful for finding what to pass to 'show' and 'process'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.dispatcher(cmd).Tags(p)
		},
	}

	cmd.Flags().StringVarP(&p.Source, "source", "s", config.DefaultSource, "Source directory")

	return cmd
}
