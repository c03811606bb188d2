package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdmath/internal/logging"
	"github.com/yaklabco/gomdmath/internal/ui/pretty"
	"github.com/yaklabco/gomdmath/pkg/config"
	"github.com/yaklabco/gomdmath/pkg/convert"
	"github.com/yaklabco/gomdmath/pkg/edit"
	"github.com/yaklabco/gomdmath/pkg/fsutil"
	"github.com/yaklabco/gomdmath/pkg/runner"
)

// skipReason explains why a block was left alone.
const skipReason = "value would change when rewritten"

// rewriteFlags are the flags of the commands that rewrite files.
type rewriteFlags struct {
	sourceFlags

	write bool
	check bool
	diff  bool
}

func addRewriteFlags(cmd *cobra.Command, flags *rewriteFlags) {
	addSourceFlags(cmd, &flags.sourceFlags)
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to the files")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit with status 1 if any file would change")
	cmd.Flags().BoolVarP(&flags.diff, "diff", "d", false, "print a unified diff instead of the rewritten documents")
}

func (f *rewriteFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := f.sourceFlags.cliConfig(cmd)
	cfg.Write = f.write
	cfg.Check = f.check
	return cfg
}

// rewriteFunc rewrites one document with conv.
type rewriteFunc func(conv *convert.Converter, source []byte) (*convert.Result, error)

// newConverter builds a converter for cfg.
func newConverter(cfg *config.Config) (*convert.Converter, error) {
	conv, err := convert.New(convert.Options{
		Languages: cfg.Convert.Languages,
		Detect:    cfg.Convert.Detect,
		Marker:    cfg.MarkerByte(),
		MinFence:  cfg.MinFence,
		Flavor:    string(cfg.Flavor),
	})
	if err != nil {
		return nil, fmt.Errorf("build converter: %w", err)
	}
	return conv, nil
}

// runRewrite applies rewrite to every discovered file. Without --write or
// --check the rewritten documents are printed to standard output. With
// showDiff a unified diff of each changed file is printed instead.
func runRewrite(cmd *cobra.Command, args []string, cfg *config.Config, showDiff bool, rewrite rewriteFunc) error {
	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	skipped := make(map[string][]convert.Block)

	process := func(ctx context.Context, path string) (*runner.FileResult, error) {
		content, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}

		res, err := rewrite(conv, content)
		if err != nil {
			return nil, err
		}
		fileResult := &runner.FileResult{
			Blocks:  conv.Blocks(res.Output),
			Output:  res.Output,
			Changed: res.Changed(),
			Skipped: len(res.Skipped),
		}
		if showDiff {
			diff, err := edit.Unified(displayPath(path), content, res.Output)
			if err != nil {
				return nil, err
			}
			fileResult.Output = []byte(diff.String())
		}
		if len(res.Skipped) > 0 {
			mu.Lock()
			skipped[path] = res.Skipped
			mu.Unlock()
		}

		if cfg.Write && fileResult.Changed {
			written, err := fsutil.Rewrite(ctx, info, res.Output)
			if err != nil {
				return nil, err
			}
			fileResult.Written = written
			logging.FromContext(ctx).Debug("rewrote file",
				logging.FieldPath, path,
				logging.FieldWrite, written,
			)
		}
		return fileResult, nil
	}

	result, err := runFiles(cmd, args, cfg, process)
	if err != nil {
		return err
	}

	styles := outputStyles(cmd)
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	mode := pretty.ModePreview
	switch {
	case cfg.Check:
		mode = pretty.ModeCheck
	case cfg.Write:
		mode = pretty.ModeWrite
	}

	for _, outcome := range result.Files {
		if outcome.Result == nil {
			continue
		}
		path := displayPath(outcome.Path)

		for _, block := range skipped[outcome.Path] {
			fmt.Fprintln(errOut, styles.FormatSkip(path, block.StartLine, skipReason))
		}

		if showDiff {
			fmt.Fprint(out, styles.FormatDiff(string(outcome.Result.Output)))
			continue
		}

		switch mode {
		case pretty.ModePreview:
			if _, err := out.Write(outcome.Result.Output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		case pretty.ModeCheck:
			if outcome.Result.Changed {
				fmt.Fprintln(out, styles.FormatChange(path, false))
			}
		case pretty.ModeWrite:
			if outcome.Result.Written {
				fmt.Fprintln(out, styles.FormatChange(path, true))
			}
		case pretty.ModeList:
		}
	}

	if mode != pretty.ModePreview || showDiff {
		fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats, mode))
	}

	if err := reportFileErrors(cmd, styles, result); err != nil {
		return err
	}
	if mode == pretty.ModeCheck && result.HasChanges() {
		return ErrCheckFailed
	}
	return nil
}
