// Package cli provides the command-line interface for snipconv.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/klauern/snipconv/internal/config"
	"github.com/klauern/snipconv/internal/logging"
	"github.com/klauern/snipconv/internal/ui"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

type configKey struct{}

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "snipconv",
		Usage:   "Convert Visual Studio style snippets into VS Code snippet files",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Write logs as JSON",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the config file",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from a .env file before reading config",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if err := loadEnvFile(cmd); err != nil {
				return ctx, err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return ctx, err
			}
			if err := configureColors(cmd, cfg); err != nil {
				return ctx, err
			}
			if err := configureLogging(cmd, cfg); err != nil {
				return ctx, err
			}
			return context.WithValue(ctx, configKey{}, cfg), nil
		},
		Commands: []*cli.Command{
			convertCommand(),
			listCommand(),
			showCommand(),
			configCommand(),
			backupCommand(),
			versionCommand(),
		},
	}
	return app.Run(ctx, args)
}

func loadEnvFile(cmd *cli.Command) error {
	path := cmd.String("env-file")
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %q: %w", path, err)
	}
	return nil
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// configFrom returns the config resolved by the root Before hook.
func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// configureColors sets up color output from config and CLI flags.
func configureColors(cmd *cli.Command, cfg *config.Config) error {
	if cmd.Bool("no-color") {
		ui.DisableColors()
		return nil
	}
	return ui.Configure(cfg.Output.Color)
}

// configureLogging sets up the logger from config, then lets CLI flags raise the level.
func configureLogging(cmd *cli.Command, cfg *config.Config) error {
	opts := logging.DefaultOptions()

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	opts.Level = level
	opts.JSON = cfg.Log.Format == "json" || cmd.Bool("log-json")

	if cmd.Bool("debug") {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	} else if cmd.Bool("verbose") && opts.Level > slog.LevelInfo {
		opts.Level = slog.LevelInfo
	}

	logging.SetDefault(logging.New(opts))
	logging.Debug("logging configured", slog.String("level", opts.Level.String()))

	return nil
}

func workingDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
