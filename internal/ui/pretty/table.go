package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdmath/pkg/mdast"
)

// Table formatting constants.
const (
	tablePadding      = 2
	tableColumnCount  = 4 // FILE, LOC, FENCE, PREVIEW
	minFileWidth      = 20
	minLocWidth       = 8
	minFenceWidth     = 5
	minPreviewWidth   = 20
	heavySeparator    = "="
	unclosedIndicator = " (unclosed)"
)

// BlockRow represents a single math block in the listing.
type BlockRow struct {
	File     string
	Location string
	Fence    string
	Preview  string
	Closed   bool
}

// BlockRowFromNode describes a math node found in path.
func BlockRowFromNode(path string, node *mdast.Node) BlockRow {
	row := BlockRow{
		File:     path,
		Location: fmt.Sprintf("%d:%d", node.Position.Start.Line, node.Position.Start.Column),
		Preview:  Preview(node.Value),
		Closed:   true,
	}
	if attrs := node.Math(); attrs != nil {
		row.Fence = strings.Repeat(string(attrs.Marker), attrs.FenceLength)
		row.Closed = attrs.Closed
	}
	return row
}

// Preview returns the first non-blank line of a math value.
func Preview(value string) string {
	for line := range strings.SplitSeq(value, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// TableFormatter formats math blocks as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

type columnWidths struct {
	file    int
	loc     int
	fence   int
	preview int
}

// FormatTable formats block rows as a styled table. It returns the empty
// string when there are no rows.
func (t *TableFormatter) FormatTable(rows []BlockRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	return builder.String()
}

// calculateColumnWidths determines column widths from the content, shrinking
// the preview and then the file column to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []BlockRow) columnWidths {
	widths := columnWidths{
		file:    minFileWidth,
		loc:     minLocWidth,
		fence:   minFenceWidth,
		preview: minPreviewWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.loc = max(widths.loc, len(row.Location))
		widths.fence = max(widths.fence, len(row.Fence))
		widths.preview = max(widths.preview, len(previewText(row)))
	}

	totalWidth := calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.preview = max(minPreviewWidth, widths.preview-excess)

		totalWidth = calculateTotalWidth(widths)
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}

	return widths
}

func calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.loc + widths.fence + widths.preview + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s",
		widths.file, "FILE",
		widths.loc, "LOC",
		widths.fence, "FENCE",
		widths.preview, "PREVIEW",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, calculateTotalWidth(widths)))
}

// formatRow pads each cell before styling it so that escape codes do not
// affect alignment.
func (t *TableFormatter) formatRow(row BlockRow, widths columnWidths) string {
	file := fmt.Sprintf("%-*s", widths.file, truncateFilePath(row.File, widths.file))
	loc := fmt.Sprintf("%-*s", widths.loc, truncateString(row.Location, widths.loc))
	fence := fmt.Sprintf("%-*s", widths.fence, truncateString(row.Fence, widths.fence))
	preview := truncateString(previewText(row), widths.preview)

	previewStyle := t.styles.Preview
	if !row.Closed {
		previewStyle = t.styles.Unclosed
	}

	return " " + t.styles.FilePath.Render(file) +
		"  " + t.styles.Location.Render(loc) +
		"  " + t.styles.Fence.Render(fence) +
		"  " + previewStyle.Render(preview)
}

// previewText returns the preview with the unclosed marker appended.
func previewText(row BlockRow) string {
	if row.Closed {
		return row.Preview
	}
	return row.Preview + unclosedIndicator
}

// FormatBlockLine formats one block as "path:line:col  fence  preview".
func (s *Styles) FormatBlockLine(row BlockRow) string {
	var builder strings.Builder
	builder.WriteString(s.FilePath.Render(row.File))
	builder.WriteString(s.Location.Render(":" + row.Location))
	builder.WriteString("  ")
	builder.WriteString(s.Fence.Render(row.Fence))
	builder.WriteString("  ")
	if row.Closed {
		builder.WriteString(s.Preview.Render(row.Preview))
	} else {
		builder.WriteString(s.Unclosed.Render(row.Preview + unclosedIndicator))
	}
	return builder.String()
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
