package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grovetools/spoolview/cli"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/tui/components/table"
	"github.com/spf13/cobra"
)

type resolvedSpool struct {
	Spool    models.GroupID     `json:"spool"`
	Elements []models.ElementID `json:"elements"`
}

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <spool>...",
		Short: "List the elements belonging to spools",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, r, err := openResolver(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			var out []resolvedSpool
			for _, spool := range models.GroupIDs(args) {
				elements, err := r.Resolve(ctx, []models.GroupID{spool})
				if err != nil {
					return err
				}
				out = append(out, resolvedSpool{Spool: spool, Elements: elements})
			}

			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(cmd, out)
			}
			rows := make([][]string, len(out))
			for i, s := range out {
				ids := make([]string, len(s.Elements))
				for j, e := range s.Elements {
					ids[j] = string(e)
				}
				rows[i] = []string{string(s.Spool), strings.Join(ids, " ")}
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.SimpleTable([]string{"Spool", "Elements"}, rows))
			return nil
		},
	}
	addCatalogFlag(cmd)
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
