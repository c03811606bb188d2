package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdmath/pkg/convert"
)

type convertFlags struct {
	rewriteFlags

	detect    bool
	languages []string
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Convert math code blocks into math blocks",
		Long: `Convert fenced code blocks that hold math into math blocks.

A top-level code block is converted when its language is one of the
configured math languages (math, latex, tex and katex by default). With
--detect, code blocks without a language are converted too when their
content reads as TeX. Without --write or --check the converted documents
are printed to standard output.

Examples:
  gomdmath convert README.md               # Print the converted document
  gomdmath convert --write docs/           # Rewrite files in place
  gomdmath convert --detect --check        # Fail if anything would convert
  gomdmath convert --languages math,latex  # Only convert these languages`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCfg := flags.cliConfig(cmd)
			cliCfg.Convert.Detect = flags.detect
			if cmd.Flags().Changed("languages") {
				cliCfg.Convert.Languages = flags.languages
			}

			cfg, err := loadConfig(cmd, cliCfg)
			if err != nil {
				return err
			}
			return runRewrite(cmd, args, cfg, flags.diff, (*convert.Converter).Convert)
		},
	}

	addRewriteFlags(cmd, &flags.rewriteFlags)
	cmd.Flags().BoolVar(&flags.detect, "detect", false, "also convert unlabelled code blocks that contain TeX")
	cmd.Flags().StringSliceVar(&flags.languages, "languages", nil, "code block languages to convert")

	return cmd
}
