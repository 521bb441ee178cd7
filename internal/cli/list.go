package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/klauern/snipconv/internal/document"
	"github.com/klauern/snipconv/internal/ui"
)

func newTable(w io.Writer, header []string, data [][]string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(header)
	table.AppendBulk(data)
	return table
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the snippets in the target file",
		Flags: []cli.Flag{targetFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			target := resolveTarget(ctx, cmd)
			doc, err := document.LoadFile(target)
			if err != nil {
				return err
			}

			entries := doc.Snippets()
			if len(entries) == 0 {
				fmt.Println("No snippets in " + ui.Info(target))
				return nil
			}

			data := make([][]string, 0, len(entries))
			for _, e := range entries {
				data = append(data, []string{
					e.Key,
					e.Snippet.Prefix,
					e.Snippet.Scope,
					strconv.Itoa(len(e.Snippet.Body)),
					e.Snippet.Description,
				})
			}
			newTable(os.Stdout, []string{"KEY", "PREFIX", "SCOPE", "LINES", "DESCRIPTION"}, data).Render()
			if skipped := doc.Len() - len(entries); skipped > 0 {
				fmt.Println(ui.Dim(fmt.Sprintf("%d non-snippet entries not shown", skipped)))
			}
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print one entry of the target file",
		UsageText: "snipconv show [options] KEY",
		Flags:     []cli.Flag{targetFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("show requires exactly 1 argument: KEY")
			}
			key := strings.TrimSpace(cmd.Args().First())

			target := resolveTarget(ctx, cmd)
			doc, err := document.LoadFile(target)
			if err != nil {
				return err
			}

			raw, ok := doc.Raw(key)
			if !ok {
				// accept a title as well as a key
				raw, ok = doc.Raw(document.Key(key))
			}
			if !ok {
				return fmt.Errorf("no entry %q in %s", key, target)
			}

			var buf bytes.Buffer
			if err := json.Indent(&buf, raw, "", document.Indent); err != nil {
				return fmt.Errorf("failed to format entry %q: %w", key, err)
			}
			fmt.Println(buf.String())
			return nil
		},
	}
}
