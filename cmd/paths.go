package cmd

import (
	"fmt"

	"github.com/grovetools/spoolview/cli"
	"github.com/grovetools/spoolview/pkg/paths"
	"github.com/grovetools/spoolview/tui/components/table"
	"github.com/spf13/cobra"
)

// PathsOutput lists the directories spoolview reads and writes.
type PathsOutput struct {
	ConfigDir string `json:"config_dir"`
	DataDir   string `json:"data_dir"`
	StateDir  string `json:"state_dir"`
	LogDir    string `json:"log_dir"`
	Catalog   string `json:"catalog"`
}

func NewPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the paths used by spoolview",
		Long: `Print the paths used by spoolview.

SPOOLVIEW_HOME puts everything under one directory. Otherwise the XDG base
directories are used:
- config_dir: global spoolview.yml
- data_dir: the default catalog
- state_dir: logs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := PathsOutput{
				ConfigDir: paths.ConfigDir(),
				DataDir:   paths.DataDir(),
				StateDir:  paths.StateDir(),
				LogDir:    paths.LogDir(),
				Catalog:   paths.DefaultCatalogPath(),
			}
			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(cmd, output)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.StatusTable([][2]string{
				{"config", output.ConfigDir},
				{"data", output.DataDir},
				{"state", output.StateDir},
				{"logs", output.LogDir},
				{"catalog", output.Catalog},
			}))
			return nil
		},
	}
}
