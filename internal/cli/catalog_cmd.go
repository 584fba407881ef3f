package cli

import (
	"fmt"

	"github.com/alexanderramin/cxready/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(a *App) *cobra.Command {
	var followUps bool

	cmd := &cobra.Command{
		Use:     "catalog",
		Aliases: []string{"questions"},
		Short:   "List the checklist questions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(a.Assessments.Catalog(), followUps))
			return nil
		},
	}
	cmd.Flags().BoolVar(&followUps, "follow-ups", false, "Also list the follow-up checks of each question")
	return cmd
}
