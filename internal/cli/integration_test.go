package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdmath/internal/cli"
	"github.com/yaklabco/gomdmath/pkg/config"
)

// testMarkdownLongFence holds a math block whose fence is not canonical.
const testMarkdownLongFence = "# Sums\n\n$$$\n\\sum_{i=1}^{n} i\n$$$\n"

// testMarkdownMathCode holds a math code block to convert.
const testMarkdownMathCode = "# Sums\n\n```math\na + b\n```\n"

// runCLI runs the root command with args against an isolating config file and
// returns stdout, stderr and the error from Execute.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".gomdmath.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("engine: native\n"), 0o644))

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{args[0], "--config", cfgFile, "--color", "never"}, args[1:]...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFile writes content to name in a fresh temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestIntegration_Fmt(t *testing.T) {
	t.Parallel()

	t.Run("prints the formatted document", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", testMarkdownLongFence)
		stdout, _, err := runCLI(t, "fmt", path)
		require.NoError(t, err)

		assert.Equal(t, "# Sums\n\n$$\n\\sum_{i=1}^{n} i\n$$\n", stdout)
		assert.Equal(t, testMarkdownLongFence, readFile(t, path), "file must not change")
	})

	t.Run("check fails when a file would change", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", testMarkdownLongFence)
		stdout, _, err := runCLI(t, "fmt", "--check", path)
		require.ErrorIs(t, err, cli.ErrCheckFailed)

		assert.Equal(t, cli.ExitCheckFailed, cli.ExitCode(err))
		assert.Contains(t, stdout, "would rewrite")
		assert.Contains(t, stdout, "1 file would change")
		assert.Equal(t, testMarkdownLongFence, readFile(t, path))
	})

	t.Run("check passes on canonical files", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", "$$\nx\n$$\n")
		stdout, _, err := runCLI(t, "fmt", "--check", path)
		require.NoError(t, err)

		assert.Contains(t, stdout, "no changes needed")
	})

	t.Run("write rewrites the file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", testMarkdownLongFence)
		stdout, _, err := runCLI(t, "fmt", "--write", path)
		require.NoError(t, err)

		assert.Contains(t, stdout, "rewrote")
		assert.Equal(t, "# Sums\n\n$$\n\\sum_{i=1}^{n} i\n$$\n", readFile(t, path))
	})

	t.Run("write and check are exclusive", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", testMarkdownLongFence)
		_, _, err := runCLI(t, "fmt", "--write", "--check", path)
		require.Error(t, err)

		assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
	})

	t.Run("diff prints a unified diff", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", testMarkdownLongFence)
		stdout, _, err := runCLI(t, "fmt", "--diff", path)
		require.NoError(t, err)

		assert.Contains(t, stdout, "-$$$\n")
		assert.Contains(t, stdout, "+$$\n")
		assert.Contains(t, stdout, "@@ ")
		assert.Equal(t, testMarkdownLongFence, readFile(t, path))
	})

	t.Run("skips blocks that cannot be rewritten", func(t *testing.T) {
		t.Parallel()

		content := "$$$\na\n$$\nb\n$$$\n"
		path := writeFile(t, "doc.md", content)
		stdout, stderr, err := runCLI(t, "fmt", path)
		require.NoError(t, err)

		assert.Equal(t, content, stdout)
		assert.Contains(t, stderr, "skipped")
	})
}

func TestIntegration_Convert(t *testing.T) {
	t.Parallel()

	t.Run("write converts math code blocks", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", testMarkdownMathCode)
		_, _, err := runCLI(t, "convert", "--write", path)
		require.NoError(t, err)

		assert.Equal(t, "# Sums\n\n$$\na + b\n$$\n", readFile(t, path))
	})

	t.Run("detect converts unlabelled TeX", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", "```\n\\frac{a}{b}\n```\n")
		stdout, _, err := runCLI(t, "convert", "--detect", path)
		require.NoError(t, err)

		assert.Equal(t, "$$\n\\frac{a}{b}\n$$\n", stdout)
	})

	t.Run("languages flag limits conversion", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", testMarkdownMathCode)
		stdout, _, err := runCLI(t, "convert", "--languages", "latex", path)
		require.NoError(t, err)

		assert.Equal(t, testMarkdownMathCode, stdout)
	})

	t.Run("check fails on convertible blocks", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", testMarkdownMathCode)
		_, _, err := runCLI(t, "convert", "--check", path)

		assert.ErrorIs(t, err, cli.ErrCheckFailed)
	})
}

func TestIntegration_Blocks(t *testing.T) {
	t.Parallel()

	content := "$$\na+b\n$$\n\n- item\n\n  $$$\n  c\n  $$$\n"

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", content)
		stdout, _, err := runCLI(t, "blocks", "--format", "json", path)
		require.NoError(t, err)

		var blocks []map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout), &blocks))
		require.Len(t, blocks, 2)

		assert.Equal(t, path, blocks[0]["path"])
		assert.InDelta(t, 1, blocks[0]["line"], 0)
		assert.InDelta(t, 2, blocks[0]["fence_length"], 0)
		assert.Equal(t, "$", blocks[0]["marker"])
		assert.Equal(t, true, blocks[0]["closed"])
		assert.Equal(t, "a+b", blocks[0]["value"])

		assert.InDelta(t, 7, blocks[1]["line"], 0)
		assert.InDelta(t, 3, blocks[1]["fence_length"], 0)
		assert.Equal(t, true, blocks[1]["closed"])
		assert.Equal(t, "c", blocks[1]["value"])
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", content)
		stdout, _, err := runCLI(t, "blocks", path)
		require.NoError(t, err)

		assert.Contains(t, stdout, path+":1:1")
		assert.Contains(t, stdout, "a+b")
		assert.Contains(t, stdout, "2 math blocks in 1 file")
	})

	t.Run("table", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", content)
		stdout, _, err := runCLI(t, "blocks", "--table", path)
		require.NoError(t, err)

		assert.Contains(t, stdout, "a+b")
		assert.Contains(t, stdout, "Summary")
		assert.Contains(t, stdout, "Math blocks:       2")
	})

	t.Run("goldmark engine agrees", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", content)
		stdout, _, err := runCLI(t, "blocks", "--engine", "goldmark", "--format", "json", path)
		require.NoError(t, err)

		var blocks []map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout), &blocks))
		require.Len(t, blocks, 2)
		assert.Equal(t, "a+b", blocks[0]["value"])
		assert.Equal(t, "c", blocks[1]["value"])
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", content)
		_, _, err := runCLI(t, "blocks", "--format", "xml", path)
		require.Error(t, err)

		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
	})
}

func TestIntegration_Render(t *testing.T) {
	t.Parallel()

	for _, engine := range []string{"native", "goldmark"} {
		t.Run(engine, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, "doc.md", "$$\na < b\n$$\n")
			stdout, _, err := runCLI(t, "render", "--engine", engine, path)
			require.NoError(t, err)

			assert.Equal(t, "<div class=\"math\">a &lt; b</div>\n", stdout)
		})
	}

	t.Run("custom marker", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", "%%\nx\n%%\n")
		stdout, _, err := runCLI(t, "render", "--marker", "%", path)
		require.NoError(t, err)

		assert.Equal(t, "<div class=\"math\">x</div>\n", stdout)
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "render", filepath.Join(t.TempDir(), "missing.md"))
		require.Error(t, err)

		assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
	})
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	formats := []struct {
		format string
		file   string
	}{
		{format: "yaml", file: ".gomdmath.yml"},
		{format: "json", file: ".gomdmath.json"},
	}

	for _, tt := range formats {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			output := filepath.Join(t.TempDir(), tt.file)
			_, _, err := runCLI(t, "init", "--format", tt.format, "--output", output)
			require.NoError(t, err)

			cfg, err := config.FromYAML([]byte(readFile(t, output)))
			require.NoError(t, err)
			assert.Equal(t, config.DefaultMarker, cfg.Marker)

			_, _, err = runCLI(t, "init", "--format", tt.format, "--output", output)
			require.Error(t, err, "existing file must not be overwritten")
			assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

			_, _, err = runCLI(t, "init", "--format", tt.format, "--output", output, "--force")
			require.NoError(t, err)
		})
	}

	t.Run("rejects arguments", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "init", "extra")
		require.Error(t, err)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
	})

	t.Run("full template documents options", func(t *testing.T) {
		t.Parallel()

		output := filepath.Join(t.TempDir(), ".gomdmath.yml")
		_, _, err := runCLI(t, "init", "--full", "--output", output)
		require.NoError(t, err)

		content := readFile(t, output)
		assert.True(t, strings.Contains(content, "min_fence"))
		assert.Contains(t, content, "GOMDMATH_MARKER")

		_, err = config.FromYAML([]byte(content))
		require.NoError(t, err, "env comment must keep the file valid")
	})
}
