package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdmath/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// Mode names the command whose run is summarized.
type Mode int

const (
	// ModeList summarizes a block listing.
	ModeList Mode = iota
	// ModeCheck summarizes a run that only reports files that would change.
	ModeCheck
	// ModeWrite summarizes a run that rewrote files.
	ModeWrite
	// ModePreview summarizes a run that printed rewrites to stdout.
	ModePreview
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 math blocks in 3 files, 2 files would change".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, mode Mode) string {
	var parts []string

	if stats.BlocksTotal == 0 && mode == ModeList {
		return s.Success.Render("No math blocks found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))) + "\n"
	}

	parts = append(parts, fmt.Sprintf("%d math %s in %d %s",
		stats.BlocksTotal, plural(stats.BlocksTotal, "block", "blocks"),
		stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))

	switch mode {
	case ModeCheck:
		if stats.FilesChanged > 0 {
			parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s would change",
				stats.FilesChanged, plural(stats.FilesChanged, wordFile, wordFiles))))
		} else {
			parts = append(parts, s.Success.Render("no changes needed"))
		}
	case ModeWrite:
		parts = append(parts, s.Changed.Render(fmt.Sprintf("%d %s rewritten",
			stats.FilesWritten, plural(stats.FilesWritten, wordFile, wordFiles))))
	case ModePreview:
		parts = append(parts, fmt.Sprintf("%d %s changed",
			stats.FilesChanged, plural(stats.FilesChanged, wordFile, wordFiles)))
	case ModeList:
	}

	if stats.BlocksSkipped > 0 {
		parts = append(parts, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.BlocksSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, mode Mode) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	if stats.FilesChanged > 0 {
		builder.WriteString("  Files changed:     " +
			s.Changed.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Changed.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Math blocks:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.BlocksTotal)) + "\n")
	if stats.BlocksSkipped > 0 {
		builder.WriteString("    Skipped:         " +
			s.Skipped.Render(strconv.Itoa(stats.BlocksSkipped)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Completed with errors"))
	case mode == ModeCheck && stats.FilesChanged > 0:
		builder.WriteString(s.Failure.Render("Check failed"))
	case mode == ModeCheck:
		builder.WriteString(s.Success.Render("Check passed"))
	default:
		builder.WriteString(s.Success.Render("Done"))
	}
	builder.WriteString("\n")

	return builder.String()
}
