package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every key with its default value uncommented.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// templateKey documents one configuration key.
type templateKey struct {
	name        string
	description string
	value       string
}

// templateKeys lists the documented keys in output order.
func templateKeys() []templateKey {
	return []templateKey{
		{"marker", "Fence marker byte. Blocks open with a run of at least min_fence markers.", `"$"`},
		{"min_fence", "Shortest marker run that opens a math block.", "2"},
		{"engine", "Host parser used to read Markdown: native or goldmark.", "native"},
		{"flavor", "Markdown flavor for the goldmark engine: commonmark or gfm.", "commonmark"},
	}
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# gomdmath configuration
# See: https://github.com/yaklabco/gomdmath

# Fence marker for math blocks
marker: "$"

# Shortest marker run that opens a block
# min_fence: 2

# Host parser: native or goldmark
# engine: native

# Markdown flavor for the goldmark engine: commonmark or gfm
# flavor: commonmark

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Fenced code conversion
# convert:
#   languages: [math, latex, tex, katex]
#   detect: false
`)

	return buf.Bytes()
}

// generateFullTemplate creates a template with every key documented.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# gomdmath configuration - Full Template
# See: https://github.com/yaklabco/gomdmath
#
# This template lists every setting with its default value.
`)

	for _, key := range templateKeys() {
		fmt.Fprintf(&buf, "\n# %s\n", wrapComment(key.description, commentWrapWidth))
		fmt.Fprintf(&buf, "%s: %s\n", key.name, key.value)
	}

	buf.WriteString(`
# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - "node_modules/**"

# Fenced code conversion.
# languages lists the info strings that mark a code block as math.
# detect also converts unlabelled code blocks whose content looks like TeX.
convert:
  languages:
    - math
    - latex
    - tex
    - katex
  detect: false
`)

	return buf.Bytes()
}

// wrapComment wraps text to maxWidth, continuing each line as a comment.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{"vendor/**", "node_modules/**"}

	doc := map[string]any{
		"marker":    cfg.Marker,
		"min_fence": cfg.MinFence,
		"engine":    cfg.Engine,
		"flavor":    cfg.Flavor,
		"ignore":    cfg.Ignore,
		"convert": map[string]any{
			"languages": cfg.Convert.Languages,
			"detect":    cfg.Convert.Detect,
		},
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}
