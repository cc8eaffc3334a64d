// Package cli defines the command-line interface.
package cli

import (
	"context"
	"os"

	"github.com/quellbrowser/quell/internal/app"
	"github.com/quellbrowser/quell/internal/logging"
	"github.com/quellbrowser/quell/internal/ui"
	"github.com/quellbrowser/quell/internal/ui/dialog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagDebug    bool
	flagNoWindow bool
)

var rootCmd = &cobra.Command{
	Use:   "quell [urls or :commands...]",
	Short: "A keyboard-driven web browser",
	Long: `quell is a keyboard-driven web browser. Positional arguments are
opened as pages; arguments starting with ":" run as commands.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.NewFromEnv()
		if flagDebug {
			log = log.Level(zerolog.DebugLevel)
		}

		a := app.New(app.Dependencies{
			// The display backend attaches to this seam; without one the
			// shell still runs every subsystem headless.
			Toolkit:    ui.NewHeadless(),
			ShowDialog: dialog.Show,
			Spawn:      app.DetachedSpawn,
			Exit:       os.Exit,
			Args: app.Args{
				LaunchVector: os.Args,
				Positional:   args,
				NoWindow:     flagNoWindow,
				Debug:        flagDebug,
			},
			Log: log,
		})
		if err := a.Bootstrap(browseContext(cmd.Context(), log)); err != nil {
			log.Error().Err(err).Msg("startup failed")
			return err
		}

		status := a.Run()
		if status != 0 {
			os.Exit(status)
		}
		return nil
	},
}

// browseContext attaches the logger to the context handed down through
// bootstrap, so context-scoped subsystems (crash recorder, state store) log
// through the real logger instead of zerolog's disabled default.
func browseContext(parent context.Context, log zerolog.Logger) context.Context {
	return logging.WithContext(parent, log)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&flagNoWindow, "no-window", false, "do not show the main window")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
