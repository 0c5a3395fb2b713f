package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/grovetools/spoolview/cli"
	"github.com/grovetools/spoolview/errors"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/pkg/session"
	"github.com/grovetools/spoolview/pkg/watch"
	"github.com/grovetools/spoolview/state"
	"github.com/grovetools/spoolview/tui/keymap"
	"github.com/grovetools/spoolview/tui/spoolview"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewOpenCmd creates the open command, which opens a catalog in the viewer TUI.
func NewOpenCmd() *cobra.Command {
	var (
		spools     string
		spoolsFile string
		resume     bool
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a catalog in the spool viewer",
		Long: `Open a catalog in the spool viewer.

The spools given with --spools (space separated) or the 'spools' config key
are checked once the viewport is ready. With --spools-file the listed spools
are kept in sync with the file while the viewer runs. With --resume and no
other spools, the spools checked when the viewer last closed on this catalog
are checked again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd)
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if spoolsFile == "" {
				spoolsFile = cfg.SpoolsFile
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			path := catalogPath(cmd, cfg)
			initial := models.GroupIDs(strings.Fields(spools))

			var saved *state.State
			if resume {
				if saved, err = state.Load(); err != nil {
					logger.WithError(err).Warn("Ignoring unreadable state file")
					saved = nil
				} else if len(initial) == 0 && len(cfg.Spools) == 0 {
					initial = saved.LastSpools(path)
				}
			}

			sess, err := session.Open(ctx, cfg, session.Options{
				CatalogPath: path,
				Spools:      initial,
			})
			if err != nil {
				return err
			}
			defer sess.Close()

			go func() {
				if err := sess.Run(ctx); err != nil && ctx.Err() == nil {
					logger.WithError(err).Error("Event loop stopped")
				}
			}()

			start := sess.Start()
			select {
			case err := <-start:
				// Only the no-spools case completes before the viewport opens.
				if errors.Is(err, errors.ErrCodeNoSpools) && spoolsFile == "" {
					return err
				}
			default:
				go func() {
					if err := <-start; err != nil {
						logger.WithError(err).Warn("Initial spools were not applied")
					}
				}()
			}

			if spoolsFile != "" {
				w, err := watch.New(spoolsFile, sess, watch.DefaultDebounce)
				if err != nil {
					return err
				}
				defer w.Close()
				go followSpoolsFile(ctx, w, logger)
			}

			if err := spoolview.Run(ctx, sess, keymap.Load(cfg)); err != nil {
				return err
			}
			if saved != nil {
				rememberSpools(saved, path, sess.Selection(), logger)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&spools, "spools", "", `Spools to check on open, e.g. "S1 S2"`)
	cmd.Flags().StringVar(&spoolsFile, "spools-file", "", "File listing spools to keep checked")
	cmd.Flags().BoolVar(&resume, "resume", false, "Check the spools from the last session on this catalog")
	addCatalogFlag(cmd)
	return cmd
}

func followSpoolsFile(ctx context.Context, w *watch.Watcher, logger *logrus.Entry) {
	if err := w.Sync(ctx); err != nil {
		logger.WithError(err).WithField("path", w.Path()).Warn("Failed to apply spools file")
	}
	w.Start(ctx)
}

func rememberSpools(s *state.State, catalog string, spools []models.GroupID, logger *logrus.Entry) {
	if err := s.RememberSpools(catalog, spools); err != nil {
		logger.WithError(err).Warn("Failed to record checked spools")
		return
	}
	if err := s.Save(); err != nil {
		logger.WithError(err).Warn("Failed to save state")
	}
}
