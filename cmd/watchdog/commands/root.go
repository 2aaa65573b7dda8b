package commands

import (
	"github.com/spf13/cobra"

	"github.com/watchdog/watchdog/internal/config"
)

var (
	configDir string
	logLevel  string
	cfg       *config.Config
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "watchdog",
		Short:         "Email exposure checks backed by holehe",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.New(configDir)
			if err != nil {
				return err
			}
			if logLevel != "" {
				c.LogLevel = logLevel
			}
			cfg = c
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configDir, "config-dir", "", "config dir (default ./.watchdog or ~/.config/watchdog)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides WATCHDOG_LOG_LEVEL)")

	root.AddCommand(serveCmd(), checkCmd(), versionCmd())
	return root
}
