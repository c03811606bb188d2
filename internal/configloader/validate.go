package configloader

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdmath/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "convert.languages[1]").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the errors joined, or nil when the result is valid. Each
// joined error is a *ValidationError.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for i := range r.Errors {
		errs = append(errs, &r.Errors[i])
	}
	return errors.Join(errs...)
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText: true,
	config.FormatJSON: true,
}

// Validate checks a configuration for errors and warnings. Zero values are
// accepted so that partial configurations from a single file validate.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	validateFence(cfg, result)

	if cfg.Engine != "" && !cfg.Engine.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "engine",
			Value:   cfg.Engine,
			Message: fmt.Sprintf("invalid engine %q; must be one of: native, goldmark", cfg.Engine),
		})
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "flavor",
			Value:   cfg.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor),
		})
	}

	if cfg.Engine == config.EngineNative && cfg.Flavor == config.FlavorGFM {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "flavor",
			Value:   cfg.Flavor,
			Message: "flavor only applies to the goldmark engine",
		})
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Write && cfg.Check {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "write",
			Value:   cfg.Write,
			Message: "write and check cannot be combined",
		})
	}

	validateLanguages(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateFence checks the marker and the minimum fence length.
func validateFence(cfg *config.Config, result *ValidationResult) {
	if cfg.Marker != "" {
		switch {
		case len(cfg.Marker) != 1:
			result.Errors = append(result.Errors, ValidationError{
				Field:   "marker",
				Value:   cfg.Marker,
				Message: fmt.Sprintf("marker %q must be a single byte", cfg.Marker),
			})
		case strings.ContainsAny(cfg.Marker, " \t\r\n"):
			result.Errors = append(result.Errors, ValidationError{
				Field:   "marker",
				Value:   cfg.Marker,
				Message: "marker cannot be whitespace",
			})
		case strings.ContainsAny(cfg.Marker, "`~"):
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "marker",
				Value:   cfg.Marker,
				Message: fmt.Sprintf("marker %q is also a code fence marker", cfg.Marker),
			})
		}
	}

	if cfg.MinFence < 0 || cfg.MinFence == 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "min_fence",
			Value:   cfg.MinFence,
			Message: "min_fence must be at least 2",
		})
	}
}

// validateLanguages checks the convert language list.
func validateLanguages(cfg *config.Config, result *ValidationResult) {
	for i, lang := range cfg.Convert.Languages {
		if strings.TrimSpace(lang) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("convert.languages[%d]", i),
				Value:   lang,
				Message: "language cannot be empty",
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns compile.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// yamlKey is a mapping key found in a YAML document.
type yamlKey struct {
	name string
	line int
}

// knownKeys lists the accepted keys by parent path. The root is "".
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownKeys = map[string][]string{
	"":        {"marker", "min_fence", "engine", "flavor", "ignore", "convert"},
	"convert": {"languages", "detect"},
}

// unknownKeys returns the keys of root that gomdmath does not read.
func unknownKeys(root *yaml.Node) []yamlKey {
	var unknown []yamlKey
	var visit func(node *yaml.Node, parent string)
	visit = func(node *yaml.Node, parent string) {
		known, ok := knownKeys[parent]
		if !ok || node.Kind != yaml.MappingNode {
			return
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			path := joinField(parent, key.Value)
			if !slices.Contains(known, key.Value) {
				unknown = append(unknown, yamlKey{name: path, line: key.Line})
				continue
			}
			visit(value, path)
		}
	}
	visit(documentRoot(root), "")
	return unknown
}

// locate fills in the line of every finding whose field appears in root.
func locate(root *yaml.Node, result *ValidationResult) {
	doc := documentRoot(root)
	for i := range result.Errors {
		result.Errors[i].Line = lineOf(doc, result.Errors[i].Field)
	}
	for i := range result.Warnings {
		result.Warnings[i].Line = lineOf(doc, result.Warnings[i].Field)
	}
}

// lineOf returns the line of the value at a field path such as
// "convert.languages[1]", or 0 when the path is absent.
func lineOf(node *yaml.Node, field string) int {
	if node == nil || field == "" {
		return 0
	}
	for _, part := range strings.Split(field, ".") {
		name, index := part, -1
		if open := strings.IndexByte(part, '['); open >= 0 && strings.HasSuffix(part, "]") {
			n, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil {
				return 0
			}
			name, index = part[:open], n
		}

		node = mappingValue(node, name)
		if node == nil {
			return 0
		}
		if index >= 0 {
			if node.Kind != yaml.SequenceNode || index >= len(node.Content) {
				return 0
			}
			node = node.Content[index]
		}
	}
	return node.Line
}

// mappingValue returns the value stored under key in a mapping node.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// documentRoot unwraps a document node.
func documentRoot(node *yaml.Node) *yaml.Node {
	if node != nil && node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		return node.Content[0]
	}
	return node
}

func joinField(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
