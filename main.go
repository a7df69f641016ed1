package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-history/internal"
	"github.com/rocketscienceinc/tictactoe-history/internal/config"
)

// main - is the entry point of the application. It builds the command tree and runs it.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "tictactoe",
		Short:        "Tic-tac-toe with move history",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "./config.yml", "path to the YAML config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket servers",
		RunE: func(_ *cobra.Command, _ []string) error {
			conf := config.MustLoad(configPath)

			if err := app.RunApp(initLogger(conf.LogLevel), conf); err != nil {
				return fmt.Errorf("app run failed: %w", err)
			}
			return nil
		},
	}

	var withBot bool
	play := &cobra.Command{
		Use:   "play",
		Short: "Play a local game in the terminal",
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}

			return app.RunLocal(initLogger(conf.LogLevel), withBot)
		},
	}
	play.Flags().BoolVar(&withBot, "bot", false, "let the computer play O")

	root.AddCommand(serve, play)

	// serving is the default when no subcommand is given
	root.RunE = serve.RunE

	return root
}

// initialize logger.
func initLogger(logLevel string) *slog.Logger {
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
