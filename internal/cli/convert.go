package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/klauern/snipconv/internal/convert"
	"github.com/klauern/snipconv/internal/model"
	"github.com/klauern/snipconv/internal/progress"
	"github.com/klauern/snipconv/internal/ui"
	"github.com/klauern/snipconv/internal/util"
)

func targetFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "target",
		Aliases: []string{"t"},
		Usage:   "Snippet file to write (default from config)",
	}
}

// resolveTarget returns the --target flag if set, else the configured target.
func resolveTarget(ctx context.Context, cmd *cli.Command) string {
	if t := cmd.String("target"); t != "" {
		return util.ExpandPath(t, workingDir())
	}
	return configFrom(ctx).TargetPath(workingDir())
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert snippet sources and merge them into a VS Code snippet file",
		UsageText: "snipconv convert [options] SOURCE...",
		Description: `Read Visual Studio .snippet files or YAML/TOML snippet manifests and merge
   them into a VS Code .code-snippets file keyed by normalized title.
   Directories are searched recursively for supported files.

   Examples:
     snipconv convert snippets/
     snipconv convert --prefix my- --target ./my.code-snippets loops.snippet
     snipconv convert --clear --dry-run snippets.yaml
     snipconv convert --format yaml snippets.txt`,
		Flags: []cli.Flag{
			targetFlag(),
			&cli.StringFlag{
				Name:    "prefix",
				Aliases: []string{"p"},
				Usage:   "Prepend `PREFIX` to every snippet prefix and title",
			},
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "Delete the target file before converting",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Show what would change without writing",
			},
			&cli.BoolFlag{
				Name:  "no-backup",
				Usage: "Do not back up the existing target file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Read every SOURCE as `FORMAT` (" + formatNames() + ") instead of inferring it from the extension",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := configFrom(ctx)

			clearTarget := cfg.Convert.Clear
			if cmd.IsSet("clear") {
				clearTarget = cmd.Bool("clear")
			}
			sources := cmd.Args().Slice()
			if len(sources) == 0 && !clearTarget {
				return errors.New("convert requires at least one SOURCE")
			}

			prefix := cfg.Convert.Prefix
			if cmd.IsSet("prefix") {
				prefix = cmd.String("prefix")
			}

			var format model.SourceFormat
			if f := cmd.String("format"); f != "" {
				parsed, err := model.ParseSourceFormat(f)
				if err != nil {
					return fmt.Errorf("invalid --format: %w", err)
				}
				format = parsed
			}

			files, err := convert.ExpandSources(sources)
			if err != nil {
				return err
			}

			bar := progress.Files(len(files))
			snippets, err := convert.ReadFiles(files, format, bar)
			if err != nil {
				_ = bar.Clear()
				return err
			}
			_ = bar.Finish()

			opts := convert.Options{
				Target: resolveTarget(ctx, cmd),
				Prefix: prefix,
				Clear:  clearTarget,
				DryRun: cmd.Bool("dry-run"),
				Backup: convert.BackupOptions{
					Enabled:    cfg.Backup.Enabled && !cmd.Bool("no-backup"),
					Dir:        cfg.BackupDir(),
					MaxBackups: cfg.Backup.MaxBackups,
				},
			}

			result, err := convert.NewConverter().Convert(snippets, opts)
			if err != nil {
				return err
			}
			printResult(result, len(files))
			return nil
		},
	}
}

func formatNames() string {
	formats := model.AllSourceFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}

func printResult(r *convert.Result, files int) {
	if r.Cleared {
		fmt.Println(ui.StatusWarning("cleared " + r.Target))
	}
	for _, key := range r.Added {
		fmt.Println(ui.StatusAdded(key))
	}
	for _, key := range r.Replaced {
		fmt.Println(ui.StatusReplaced(key))
	}

	summary := fmt.Sprintf("%d added, %d replaced from %d file(s); %d entries, %s",
		len(r.Added), len(r.Replaced), files, r.Total, humanize.Bytes(uint64(r.Bytes)))

	if r.DryRun {
		fmt.Println(ui.StatusWarning("dry run: " + summary + " would be written to " + ui.Info(r.Target)))
		return
	}
	fmt.Println(ui.StatusSuccess(summary + " written to " + ui.Info(r.Target)))
	if r.Backup != "" {
		fmt.Println(ui.Dim("backup: " + r.Backup))
	}
}
