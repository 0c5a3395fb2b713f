package cmd

import (
	"fmt"
	"strings"

	"github.com/grovetools/spoolview/cli"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/pkg/pick"
	"github.com/grovetools/spoolview/tui/components/table"
	"github.com/spf13/cobra"
)

// NewPickCmd creates the pick command, which prints the popup rows an
// element would show when picked in the viewer.
func NewPickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick <element>",
		Short: "Show the popup rows for an element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, r, err := openResolver(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			element := models.ElementID(args[0])
			group, ok, err := r.ResolveGroupOf(cmd.Context(), element)
			if err != nil {
				return err
			}
			rows := pick.Context{Element: element, Group: group, HasGroup: ok}.Rows()

			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(cmd, rows)
			}
			items := make([][2]string, len(rows))
			for i, row := range rows {
				label, value, _ := strings.Cut(row.Label, ": ")
				items[i] = [2]string{label, value}
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.StatusTable(items))
			return nil
		},
	}
	addCatalogFlag(cmd)
	return cmd
}
