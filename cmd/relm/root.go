package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/syssam/relm/config"
	"github.com/syssam/relm/dialect/sql"
)

// app holds the global flags shared by the subcommands.
type app struct {
	configPath string
	envFile    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "relm",
		Short: "Inspect and maintain relm databases",
		Long: `relm connects to the database described by the configuration file
and the RELM_DRIVER, RELM_DSN and RELM_LOG_LEVEL environment variables.

Examples:

  relm ping
  relm count users posts
  relm truncate sessions --yes
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path of the YAML configuration file")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "env file to load instead of ./.env")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every statement")
	root.AddCommand(
		newPingCmd(a),
		newCountCmd(a),
		newTruncateCmd(a),
		newRenderCmd(),
	)
	return root
}

func (a *app) load() (*config.Config, error) {
	var envFiles []string
	if a.envFile != "" {
		envFiles = append(envFiles, a.envFile)
	}
	return config.Load(a.configPath, envFiles...)
}

// open loads the configuration and opens a logging driver on its database.
func (a *app) open(cmd *cobra.Command) (*sql.LogDriver, *config.Config, error) {
	cfg, err := a.load()
	if err != nil {
		return nil, nil, err
	}
	if a.verbose {
		cfg.Log.Level = slog.LevelDebug.String()
	}
	logger := cfg.Log.Logger(cmd.ErrOrStderr())
	drv, err := cfg.Database.OpenLogged(logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return drv, cfg, nil
}
