package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdmath/pkg/config"
)

// envVarPrefix is the prefix for all gomdmath environment variables.
const envVarPrefix = "GOMDMATH_"

// envMapping binds an environment variable to a config field.
type envMapping struct {
	field       string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MARKER": {
		field:       "marker",
		description: "Fence marker byte",
		apply: func(cfg *config.Config, value string) error {
			cfg.Marker = value
			return nil
		},
	},
	"MIN_FENCE": {
		field:       "min_fence",
		description: "Shortest marker run that opens a block",
		apply: func(cfg *config.Config, value string) error {
			return setInt(&cfg.MinFence, value)
		},
	},
	"ENGINE": {
		field:       "engine",
		description: "Host parser: native or goldmark",
		apply: func(cfg *config.Config, value string) error {
			cfg.Engine = config.Engine(value)
			return nil
		},
	},
	"FLAVOR": {
		field:       "flavor",
		description: "Markdown flavor: commonmark or gfm",
		apply: func(cfg *config.Config, value string) error {
			cfg.Flavor = config.Flavor(value)
			return nil
		},
	},
	"IGNORE": {
		field:       "ignore",
		description: "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, value string) error {
			cfg.Ignore = parseSliceValue(value)
			return nil
		},
	},
	"CONVERT_LANGUAGES": {
		field:       "convert.languages",
		description: "Comma-separated code block languages converted to math",
		apply: func(cfg *config.Config, value string) error {
			cfg.Convert.Languages = parseSliceValue(value)
			return nil
		},
	},
	"CONVERT_DETECT": {
		field:       "convert.detect",
		description: "Convert unlabelled code detected as TeX: true or false",
		apply: func(cfg *config.Config, value string) error {
			return setBool(&cfg.Convert.Detect, value)
		},
	},
	"JOBS": {
		field:       "jobs",
		description: "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, value string) error {
			return setInt(&cfg.Jobs, value)
		},
	},
	"FORMAT": {
		field:       "format",
		description: "Output format of the blocks command: text or json",
		apply: func(cfg *config.Config, value string) error {
			cfg.Format = config.OutputFormat(value)
			return nil
		},
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMDMATH_ (e.g., GOMDMATH_MARKER).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range envSuffixes() {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := envMappings[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
	}

	return nil
}

// envSuffixes returns the mapping keys in a stable order.
func envSuffixes() []string {
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

func setBool(dst *bool, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
	}
	*dst = b
	return nil
}

func setInt(dst *int, value string) error {
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid integer %q", value)
	}
	*dst = i
	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
