package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdmath/pkg/convert"
)

func newFmtCommand() *cobra.Command {
	flags := &rewriteFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Rewrite math blocks in canonical form",
		Long: `Rewrite the top-level math blocks of Markdown files in canonical form:
a line of two markers, the math, and a closing line of two markers.

Blocks nested in lists or blockquotes are left alone, as are blocks whose
math would read back differently once rewritten. Without --write or --check
the formatted documents are printed to standard output.

Examples:
  gomdmath fmt README.md          # Print the formatted document
  gomdmath fmt --write docs/      # Rewrite files in place
  gomdmath fmt --diff docs/       # Show what would change
  gomdmath fmt --check            # Fail if any file is not formatted`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags.cliConfig(cmd))
			if err != nil {
				return err
			}
			return runRewrite(cmd, args, cfg, flags.diff, (*convert.Converter).Format)
		},
	}

	addRewriteFlags(cmd, flags)

	return cmd
}
