package cmd

import (
	"fmt"

	"github.com/grovetools/spoolview/cli"
	"github.com/grovetools/spoolview/config"
	"github.com/grovetools/spoolview/errors"
	"github.com/grovetools/spoolview/pkg/catalog"
	"github.com/grovetools/spoolview/pkg/paths"
	"github.com/grovetools/spoolview/pkg/resolver"
	"github.com/spf13/cobra"
)

// catalogPath picks the --catalog flag, then catalog.path, then the default
// catalog under the data directory.
func catalogPath(cmd *cobra.Command, cfg *config.Config) string {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = cfg.Catalog.Path
	}
	if path == "" {
		return paths.DefaultCatalogPath()
	}
	if expanded, err := paths.Expand(path); err == nil {
		return expanded
	}
	return path
}

func addCatalogFlag(cmd *cobra.Command) {
	cmd.Flags().String("catalog", "", "Path to the element catalog (default: catalog.path or the data directory)")
}

// openResolver opens the catalog and a resolver over it. The caller closes the DB.
func openResolver(cmd *cobra.Command) (*catalog.DB, *resolver.Resolver, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	db, err := catalog.Open(catalogPath(cmd, cfg))
	if err != nil {
		return nil, nil, err
	}
	r, err := resolver.New(db, resolver.Options{
		Categories:     cfg.Catalog.Categories,
		GroupAttribute: cfg.Catalog.GroupAttribute,
	}, cli.GetLogger(cmd).WithField("component", "resolver"))
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, r, nil
}

// NewCatalogCmd creates the catalog command with its seed and spools subcommands.
func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Create and inspect element catalogs",
	}
	cmd.AddCommand(newCatalogSeedCmd(), newCatalogSpoolsCmd())
	return cmd
}

func newCatalogSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <fixture.yml>",
		Short: "Write a YAML fixture into a catalog",
		Long: `Write a YAML fixture into a catalog, creating it when needed.

The fixture lists spatial categories, models, view definitions and elements.
Elements whose class is one of catalog.categories are also stored with their
spool in that class's table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd)
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}

			fixture, err := catalog.LoadFixture(args[0])
			if err != nil {
				return err
			}

			path := catalogPath(cmd, cfg)
			if path == paths.DefaultCatalogPath() {
				if err := paths.EnsureDirs(); err != nil {
					return errors.Wrap(err, errors.ErrCodeCatalogOpen, "failed to create data directory")
				}
			}
			db, err := catalog.Open(path)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Seed(cmd.Context(), fixture, cfg.Catalog.Categories, cfg.Catalog.GroupAttribute); err != nil {
				return err
			}
			logger.WithField("path", path).WithField("elements", len(fixture.Elements)).Info("Catalog seeded")
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d elements into %s\n", len(fixture.Elements), path)
			return nil
		},
	}
	addCatalogFlag(cmd)
	return cmd
}

func newCatalogSpoolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spools",
		Short: "List the spools in a catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, r, err := openResolver(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			spools, err := r.ListGroups(cmd.Context())
			if err != nil {
				return err
			}
			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(cmd, spools)
			}
			for _, s := range spools {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
	addCatalogFlag(cmd)
	return cmd
}
