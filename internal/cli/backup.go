package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/klauern/snipconv/internal/backup"
	"github.com/klauern/snipconv/internal/ui"
)

func backupStore(ctx context.Context) *backup.Store {
	return backup.NewStore(configFrom(ctx).BackupDir())
}

func backupIDArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", errors.New("requires exactly 1 argument: BACKUP-ID")
	}
	return cmd.Args().First(), nil
}

func backupCommand() *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Manage backups of target snippet files",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List backups, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "all",
						Aliases: []string{"a"},
						Usage:   "List backups of every target, not just the current one",
					},
					targetFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					source := resolveTarget(ctx, cmd)
					if cmd.Bool("all") {
						source = ""
					}

					store := backupStore(ctx)
					backups, err := store.List(source)
					if err != nil {
						return err
					}
					if len(backups) == 0 {
						fmt.Printf("No backups found in %s\n", store.Dir())
						return nil
					}

					data := make([][]string, 0, len(backups))
					for _, b := range backups {
						data = append(data, []string{
							b.ID,
							humanize.Time(b.CreatedAt),
							humanize.Bytes(uint64(b.Size)),
							b.SourcePath,
						})
					}
					newTable(os.Stdout, []string{"ID", "CREATED", "SIZE", "SOURCE"}, data).Render()
					return nil
				},
			},
			{
				Name:      "restore",
				Usage:     "Restore a backup over its original file",
				UsageText: "snipconv backup restore [options] BACKUP-ID",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "to",
						Usage: "Restore to `FILE` instead of the original path",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := backupIDArg(cmd)
					if err != nil {
						return err
					}
					store := backupStore(ctx)
					meta, err := store.Get(id)
					if err != nil {
						return err
					}

					dest := meta.SourcePath
					if to := cmd.String("to"); to != "" {
						dest = to
					}
					if err := store.Restore(id, dest); err != nil {
						return err
					}
					fmt.Println(ui.StatusSuccess("restored " + id + " to " + ui.Info(dest)))
					return nil
				},
			},
			{
				Name:      "verify",
				Usage:     "Check a backup against its recorded hash",
				UsageText: "snipconv backup verify BACKUP-ID",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := backupIDArg(cmd)
					if err != nil {
						return err
					}
					if err := backupStore(ctx).Verify(id); err != nil {
						return err
					}
					fmt.Println(ui.StatusSuccess(id + " is intact"))
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a backup",
				UsageText: "snipconv backup delete BACKUP-ID",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := backupIDArg(cmd)
					if err != nil {
						return err
					}
					if err := backupStore(ctx).Delete(id); err != nil {
						return err
					}
					fmt.Println(ui.StatusSuccess("deleted " + id))
					return nil
				},
			},
		},
	}
}
