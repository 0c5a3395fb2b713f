// Package cmd holds the spoolview subcommands.
package cmd

import (
	"github.com/grovetools/spoolview/cli"
	"github.com/grovetools/spoolview/pkg/profiling"
	"github.com/grovetools/spoolview/version"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the spoolview command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"spoolview",
		"Isolate and inspect pipe spools in a plant model",
	)
	cli.SetVersionTemplate(root, version.GetInfo())
	profiling.NewCobraProfiler().Attach(root)

	root.AddCommand(
		NewOpenCmd(),
		NewResolveCmd(),
		NewPickCmd(),
		NewCatalogCmd(),
		NewConfigCmd(),
		NewPathsCmd(),
		cli.NewVersionCommand("spoolview"),
	)
	return root
}
