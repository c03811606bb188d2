package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdmath/internal/ui/pretty"
	"github.com/yaklabco/gomdmath/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		mode  pretty.Mode
		want  string
	}{
		{
			name:  "no blocks",
			stats: runner.Stats{FilesProcessed: 3},
			mode:  pretty.ModeList,
			want:  "No math blocks found (3 files checked)\n",
		},
		{
			name:  "listing",
			stats: runner.Stats{FilesProcessed: 1, BlocksTotal: 1},
			mode:  pretty.ModeList,
			want:  "1 math block in 1 file\n",
		},
		{
			name:  "check with changes",
			stats: runner.Stats{FilesProcessed: 3, BlocksTotal: 5, FilesChanged: 2},
			mode:  pretty.ModeCheck,
			want:  "5 math blocks in 3 files, 2 files would change\n",
		},
		{
			name:  "check clean",
			stats: runner.Stats{FilesProcessed: 2, BlocksTotal: 2},
			mode:  pretty.ModeCheck,
			want:  "2 math blocks in 2 files, no changes needed\n",
		},
		{
			name:  "write with skipped blocks",
			stats: runner.Stats{FilesProcessed: 2, BlocksTotal: 4, FilesWritten: 1, BlocksSkipped: 1},
			mode:  pretty.ModeWrite,
			want:  "4 math blocks in 2 files, 1 file rewritten, 1 skipped\n",
		},
		{
			name:  "preview with failures",
			stats: runner.Stats{FilesProcessed: 1, BlocksTotal: 1, FilesChanged: 1, FilesErrored: 2},
			mode:  pretty.ModePreview,
			want:  "1 math block in 1 file, 1 file changed, 2 files failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats, tt.mode))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	t.Run("check failed", func(t *testing.T) {
		out := styles.FormatSummary(runner.Stats{
			FilesProcessed: 4,
			FilesChanged:   1,
			BlocksTotal:    6,
			BlocksSkipped:  2,
		}, pretty.ModeCheck)

		assert.Contains(t, out, "Summary")
		assert.Contains(t, out, "Files checked:     4")
		assert.Contains(t, out, "Files changed:     1")
		assert.Contains(t, out, "Math blocks:       6")
		assert.Contains(t, out, "Skipped:         2")
		assert.Contains(t, out, "Check failed")
		assert.NotContains(t, out, "Files written")
	})

	t.Run("check passed", func(t *testing.T) {
		out := styles.FormatSummary(runner.Stats{FilesProcessed: 1}, pretty.ModeCheck)
		assert.Contains(t, out, "Check passed")
	})

	t.Run("errors win", func(t *testing.T) {
		out := styles.FormatSummary(runner.Stats{FilesErrored: 1}, pretty.ModeWrite)
		assert.Contains(t, out, "Files failed:      1")
		assert.Contains(t, out, "Completed with errors")
	})
}
