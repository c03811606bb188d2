package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdmath/internal/configloader"
	"github.com/yaklabco/gomdmath/internal/logging"
	"github.com/yaklabco/gomdmath/internal/ui/pretty"
	"github.com/yaklabco/gomdmath/pkg/config"
	"github.com/yaklabco/gomdmath/pkg/runner"
)

// sourceFlags are the flags shared by every command that reads Markdown
// files. Values left at their zero value do not override the config files.
type sourceFlags struct {
	cfg    config.Config
	engine string
	flavor string
}

func addSourceFlags(cmd *cobra.Command, flags *sourceFlags) {
	cmd.Flags().StringVar(&flags.cfg.Marker, "marker", "", `math fence marker (default "$")`)
	cmd.Flags().IntVar(&flags.cfg.MinFence, "min-fence", 0, "minimum opening fence length (default 2)")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().IntVar(&flags.cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.cfg.Ignore, "ignore", nil, "glob patterns to ignore")
}

func addEngineFlag(cmd *cobra.Command, flags *sourceFlags) {
	cmd.Flags().StringVar(&flags.engine, "engine", "native", "parser engine: native, goldmark")
}

// cliConfig returns the configuration layer set by the command's flags.
func (f *sourceFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := f.cfg.Clone()
	if cmd.Flags().Changed("engine") {
		cfg.Engine = config.Engine(f.engine)
	}
	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	return cfg
}

// commandContext returns the command's context, falling back to a background
// context when the command is run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig layers the config files, the environment and cliCfg into the
// effective configuration.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		configPath = ""
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError,
			errors.Join(errors.New("failed to load configuration"), err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldMarker, cfg.Marker,
		logging.FieldMinFence, cfg.MinFence,
		logging.FieldEngine, cfg.Engine,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldJobs, cfg.Jobs,
	)
	return cfg, nil
}

// runFiles discovers the Markdown files under paths and processes each one.
func runFiles(cmd *cobra.Command, paths []string, cfg *config.Config, process runner.ProcessFunc) (*runner.Result, error) {
	ctx := commandContext(cmd)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	opts := runner.Options{
		Paths:        paths,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
	}
	logging.FromContext(ctx).Debug("starting run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(process).Run(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	return result, nil
}

// reportFileErrors prints the files that failed and returns their errors
// joined, or nil when every file succeeded.
func reportFileErrors(cmd *cobra.Command, styles *pretty.Styles, result *runner.Result) error {
	if !result.HasErrors() {
		return nil
	}

	var errs []error
	for _, outcome := range result.Files {
		if outcome.Error == nil {
			continue
		}
		fmt.Fprintln(cmd.ErrOrStderr(), styles.FormatFileError(outcome.Path, outcome.Error))
		errs = append(errs, outcome.Error)
	}
	return errors.Join(errs...)
}

// outputStyles returns the styles for the command output under --color.
func outputStyles(cmd *cobra.Command) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
}
