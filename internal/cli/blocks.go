package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdmath/internal/ui/pretty"
	"github.com/yaklabco/gomdmath/pkg/config"
	"github.com/yaklabco/gomdmath/pkg/fsutil"
	"github.com/yaklabco/gomdmath/pkg/mdast"
	"github.com/yaklabco/gomdmath/pkg/runner"
)

type blocksFlags struct {
	sourceFlags

	format string
	table  bool
}

func newBlocksCommand() *cobra.Command {
	flags := &blocksFlags{}

	cmd := &cobra.Command{
		Use:   "blocks [paths...]",
		Short: "List the math blocks in Markdown files",
		Long: `List every math block in Markdown files, including blocks nested in
lists and blockquotes, with its location, fence length and first line.

Examples:
  gomdmath blocks                 # List blocks under the current directory
  gomdmath blocks --table docs/   # Show a table
  gomdmath blocks --format json   # Machine-readable output`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlocks(cmd, args, flags)
		},
	}

	addSourceFlags(cmd, &flags.sourceFlags)
	addEngineFlag(cmd, &flags.sourceFlags)
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json")
	cmd.Flags().BoolVar(&flags.table, "table", false, "show blocks as a table")

	return cmd
}

// blockJSON is the JSON form of one math block.
type blockJSON struct {
	Path        string `json:"path"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	EndLine     int    `json:"end_line"`
	Marker      string `json:"marker"`
	FenceLength int    `json:"fence_length"`
	Closed      bool   `json:"closed"`
	Value       string `json:"value"`
}

func runBlocks(cmd *cobra.Command, args []string, flags *blocksFlags) error {
	cliCfg := flags.cliConfig(cmd)
	format, err := config.ParseOutputFormat(flags.format)
	if err != nil {
		return usageError(err)
	}
	if cmd.Flags().Changed("format") {
		cliCfg.Format = format
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	process := func(ctx context.Context, path string) (*runner.FileResult, error) {
		content, _, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		blocks, err := eng.mathBlocks(ctx, path, content)
		if err != nil {
			return nil, err
		}
		return &runner.FileResult{Blocks: blocks}, nil
	}

	result, err := runFiles(cmd, args, cfg, process)
	if err != nil {
		return err
	}

	styles := outputStyles(cmd)
	if cfg.Format == config.FormatJSON {
		err = writeBlocksJSON(cmd, result)
	} else {
		writeBlocksText(cmd, styles, result, flags.table)
	}
	if err != nil {
		return err
	}

	return reportFileErrors(cmd, styles, result)
}

func writeBlocksText(cmd *cobra.Command, styles *pretty.Styles, result *runner.Result, table bool) {
	out := cmd.OutOrStdout()

	var rows []pretty.BlockRow
	for _, outcome := range result.Files {
		if outcome.Result == nil {
			continue
		}
		for _, node := range outcome.Result.Blocks {
			rows = append(rows, pretty.BlockRowFromNode(displayPath(outcome.Path), node))
		}
	}

	if table {
		formatter := pretty.NewTableFormatter(styles, pretty.TerminalWidth(out))
		fmt.Fprint(out, formatter.FormatTable(rows))
		fmt.Fprint(out, styles.FormatSummary(result.Stats, pretty.ModeList))
		return
	}

	for _, row := range rows {
		fmt.Fprintln(out, styles.FormatBlockLine(row))
	}
	fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats, pretty.ModeList))
}

func writeBlocksJSON(cmd *cobra.Command, result *runner.Result) error {
	blocks := make([]blockJSON, 0, result.Stats.BlocksTotal)
	for _, outcome := range result.Files {
		if outcome.Result == nil {
			continue
		}
		for _, node := range outcome.Result.Blocks {
			blocks = append(blocks, toBlockJSON(displayPath(outcome.Path), node))
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(blocks); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func toBlockJSON(path string, node *mdast.Node) blockJSON {
	block := blockJSON{
		Path:    path,
		Line:    node.Position.Start.Line,
		Column:  node.Position.Start.Column,
		EndLine: node.Position.End.Line,
		Value:   node.Value,
	}
	if attrs := node.Math(); attrs != nil {
		block.Marker = string(attrs.Marker)
		block.FenceLength = attrs.FenceLength
		block.Closed = attrs.Closed
	}
	return block
}

// displayPath returns path relative to the working directory when it lies
// below it.
func displayPath(path string) string {
	workDir, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
