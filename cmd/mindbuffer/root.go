package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/mindbuffer"
	"github.com/aretw0/mindbuffer/internal/cli"
	"github.com/aretw0/mindbuffer/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mindbuffer",
	Short: "MindBuffer is a five-minute emotional rescue coach",
	Long: `MindBuffer walks you through a short chat, offers new ways to look at what
happened and suggests one small action. Sessions are archived locally.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level to stderr")
}

// setup loads the configuration and logger shared by every command.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger, err := cli.NewLogger(cfg.LogLevel, debug)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openCoach builds a Coach from the command's configuration.
func openCoach(cmd *cobra.Command, opts ...mindbuffer.Option) (*mindbuffer.Coach, *config.Config, error) {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	coach, err := cli.NewCoach(cmd.Context(), cfg, logger, opts...)
	if err != nil {
		return nil, nil, err
	}
	return coach, cfg, nil
}
