package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"folio/internal/app"
	"folio/internal/config"
	"folio/internal/utils/logger"
)

var (
	cfg   *config.Config
	log   *slog.Logger
	folio *app.App
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - local keeper for portfolio site content",
	Long: `folio keeps the content of a personal portfolio site on your machine:
journal entries, project records with attached files, and the editable
profile sections (introduction, about, CV).

Records live in a local structured store mirrored into a key-value
fallback snapshot, so your content survives either backend failing.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad()
	if debug {
		cfg.Env = config.EnvLocal
	}
	log = logger.New(cfg.Env)

	var err error
	folio, err = app.New(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	cmd.SetContext(app.NewContext(cmd.Context(), folio))
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}
