package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/snipconv/internal/config"
	"github.com/klauern/snipconv/internal/ui"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Display the effective configuration",
		Action: func(ctx context.Context, _ *cli.Command) error {
			data, err := configFrom(ctx).Marshal()
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			fmt.Printf("# %s\n", config.FilePath())
			fmt.Print(string(data))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing config file",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					force := cmd.Bool("force")
					cfg := config.Default()

					path := cmd.Root().String("config")
					if path == "" {
						path = config.FilePath()
						if config.Exists() && !force {
							return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
						}
						if err := cfg.Save(); err != nil {
							return fmt.Errorf("failed to write config: %w", err)
						}
					} else {
						if _, err := os.Stat(path); err == nil && !force {
							return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
						}
						if err := cfg.SaveToPath(path); err != nil {
							return fmt.Errorf("failed to write config: %w", err)
						}
					}
					fmt.Println(ui.StatusSuccess("wrote " + ui.Info(path)))
					return nil
				},
			},
		},
	}
}
