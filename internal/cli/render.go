package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdmath/internal/logging"
	"github.com/yaklabco/gomdmath/pkg/fsutil"
	"github.com/yaklabco/gomdmath/pkg/runner"
)

// stdinPath is the path argument that reads from standard input.
const stdinPath = "-"

func newRenderCommand() *cobra.Command {
	flags := &sourceFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render Markdown files to HTML",
		Long: `Render Markdown files to HTML on standard output.

Math blocks render as <div class="math"> elements holding the math text.
Pass "-" to read a single document from standard input.

Examples:
  gomdmath render README.md
  gomdmath render --engine goldmark --flavor gfm docs/
  cat notes.md | gomdmath render -`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	addSourceFlags(cmd, flags)
	addEngineFlag(cmd, flags)

	return cmd
}

func runRender(cmd *cobra.Command, args []string, flags *sourceFlags) error {
	cfg, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	if len(args) == 1 && args[0] == stdinPath {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return eng.renderHTML(ctx, cmd.OutOrStdout(), content)
	}

	process := func(ctx context.Context, path string) (*runner.FileResult, error) {
		content, _, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := eng.renderHTML(ctx, &buf, content); err != nil {
			return nil, err
		}
		blocks, err := eng.mathBlocks(ctx, path, content)
		if err != nil {
			return nil, err
		}
		return &runner.FileResult{Blocks: blocks, Output: buf.Bytes()}, nil
	}

	result, err := runFiles(cmd, args, cfg, process)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, outcome := range result.Files {
		if outcome.Result == nil {
			continue
		}
		logging.FromContext(ctx).Debug("rendered", logging.FieldPath, outcome.Path,
			logging.FieldEngine, eng.name)
		if _, err := out.Write(outcome.Result.Output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	return reportFileErrors(cmd, outputStyles(cmd), result)
}
