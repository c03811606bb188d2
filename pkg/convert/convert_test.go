package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdmath/pkg/convert"
)

func newConverter(t *testing.T, opts convert.Options) *convert.Converter {
	t.Helper()
	conv, err := convert.New(opts)
	require.NoError(t, err)
	return conv
}

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   convert.Options
		input  string
		output string
		lines  [][2]int
	}{
		{
			name:   "math language",
			input:  "# T\n\n```math\na + b\n```\n\ntext\n",
			output: "# T\n\n$$\na + b\n$$\n\ntext\n",
			lines:  [][2]int{{3, 5}},
		},
		{
			name:   "latex with info words and tildes",
			input:  "~~~~ LaTeX display\n\\frac{1}{2}\n~~~~\n",
			output: "$$\n\\frac{1}{2}\n$$\n",
			lines:  [][2]int{{1, 3}},
		},
		{
			name:   "other languages untouched",
			input:  "```go\nx := 1\n```\n",
			output: "```go\nx := 1\n```\n",
		},
		{
			name:   "unlabelled untouched without detection",
			input:  "```\n\\frac{a}{b}\n```\n",
			output: "```\n\\frac{a}{b}\n```\n",
		},
		{
			name:   "unlabelled detected",
			opts:   convert.Options{Detect: true},
			input:  "```\n\\frac{a}{b}\n```\n",
			output: "$$\n\\frac{a}{b}\n$$\n",
			lines:  [][2]int{{1, 3}},
		},
		{
			name:   "blank lines trimmed",
			input:  "```tex\n\nx\n\n```\n",
			output: "$$\nx\n$$\n",
			lines:  [][2]int{{1, 5}},
		},
		{
			name:   "unclosed block",
			input:  "```math\nx\n",
			output: "$$\nx\n$$\n",
			lines:  [][2]int{{1, 2}},
		},
		{
			name:   "custom languages and marker",
			opts:   convert.Options{Languages: []string{"Eq"}, Marker: '%'},
			input:  "```eq\ny\n```\n```math\nz\n```\n",
			output: "%%\ny\n%%\n```math\nz\n```\n",
			lines:  [][2]int{{1, 3}},
		},
		{
			name:   "nested blocks untouched",
			input:  "> ```math\n> x\n> ```\n",
			output: "> ```math\n> x\n> ```\n",
		},
		{
			name:   "several blocks",
			input:  "```math\na\n```\nmid\n```katex\nb\n```",
			output: "$$\na\n$$\nmid\n$$\nb\n$$",
			lines:  [][2]int{{1, 3}, {5, 7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := convert.New(tt.opts)
			require.NoError(t, err)
			result, err := conv.Convert([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.output, string(result.Output))
			assert.Equal(t, len(tt.lines) > 0, result.Changed())

			require.Len(t, result.Converted, len(tt.lines))
			for i, block := range result.Converted {
				assert.Equal(t, tt.lines[i][0], block.StartLine, "start line of block %d", i)
				assert.Equal(t, tt.lines[i][1], block.EndLine, "end line of block %d", i)
			}
		})
	}
}

func TestConvert_SkipsValuesThatCannotRoundTrip(t *testing.T) {
	t.Parallel()

	input := "```math\na\n$$\nb\n```\n"
	result, err := newConverter(t, convert.Options{}).Convert([]byte(input))
	require.NoError(t, err)

	assert.False(t, result.Changed())
	assert.Equal(t, input, string(result.Output))
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "a\n$$\nb", result.Skipped[0].Value)
	assert.Equal(t, "math", result.Skipped[0].Lang)
}

func TestConvert_DetectedFlag(t *testing.T) {
	t.Parallel()

	result, err := newConverter(t, convert.Options{Detect: true}).Convert([]byte("```\nx^{2}\n```\n"))
	require.NoError(t, err)
	require.Len(t, result.Converted, 1)
	assert.True(t, result.Converted[0].Detected)
	assert.Empty(t, result.Converted[0].Lang)
}

func TestConvert_Idempotent(t *testing.T) {
	t.Parallel()

	conv := newConverter(t, convert.Options{Detect: true})
	first, err := conv.Convert([]byte("```latex\n\\alpha\n```\n\n```\n\\beta_{1}\n```\n"))
	require.NoError(t, err)
	require.True(t, first.Changed())

	second, err := conv.Convert(first.Output)
	require.NoError(t, err)
	assert.False(t, second.Changed())
	assert.Equal(t, string(first.Output), string(second.Output))
}
