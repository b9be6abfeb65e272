package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/mental-clarity/internal/app"
	"github.com/heartmarshall/mental-clarity/internal/config"
)

var configPath string

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		if err := os.Setenv("CONFIG_PATH", configPath); err != nil {
			return nil, err
		}
	}
	return config.Load()
}

// setup loads the config and the logger. The returned func closes the log.
func setup() (*config.Config, *slog.Logger, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, closeLog, err := app.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, func() { _ = closeLog() }, nil
}

func newJournalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "journal",
		Short: "Open the terminal journal",
		Long: `Open the terminal journal.

Write an entry on the Capture tab and press ctrl+s: the entry is analyzed,
then saved together with its analysis. Past entries are on the Entries tab.

Logs go to log.file, or to journal.log in the user cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Log.File == "" {
				if cfg.Log.File, err = defaultJournalLog(); err != nil {
					return err
				}
			}
			logger, closeLog, err := app.NewLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer closeLog() //nolint:errcheck

			return app.RunJournal(cmd.Context(), cfg, logger)
		},
	}
}

func defaultJournalLog() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	dir = filepath.Join(dir, "mental-clarity")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	return filepath.Join(dir, "journal.log"), nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis proxy and journal API",
		Long: `Run the journal server.

The server holds the upstream provider credential; clients use provider
"proxy" with a token minted by "clarity token".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, closeLog, err := setup()
			if err != nil {
				return err
			}
			defer closeLog()

			return app.RunServer(cmd.Context(), cfg, logger)
		},
	}
}

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the connection to the analysis provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, closeLog, err := setup()
			if err != nil {
				return err
			}
			defer closeLog()

			return app.RunPing(cmd.Context(), cfg, logger, cmd.OutOrStdout())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or list schema migrations",
		Long:      "Run the embedded schema migrations against database.dsn. Only the postgres store uses them.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{app.MigrateUp, app.MigrateDown, app.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, closeLog, err := setup()
			if err != nil {
				return err
			}
			defer closeLog()

			return app.RunMigrate(cmd.Context(), cfg, logger, args[0], cmd.OutOrStdout())
		},
	}
}

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token [client-id]",
		Short: "Mint a proxy access token",
		Long:  "Mint an access token for the journal server. A random client id is used when none is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			clientID := ""
			if len(args) == 1 {
				clientID = args[0]
			}
			return app.RunToken(cfg, clientID, cmd.OutOrStdout())
		},
	}
}
