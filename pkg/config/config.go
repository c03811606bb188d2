// Package config defines core configuration types for gomdmath.
// These types are pure data structures with no dependency on the loaders that fill them.
package config

import (
	"github.com/yaklabco/gomdmath/pkg/mathblock"
)

// Flavor specifies the Markdown flavor used by the goldmark engine.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// Engine selects the host parser used to read Markdown.
type Engine string

const (
	// EngineNative is the remark-style tokenizer in pkg/blockparse.
	EngineNative Engine = "native"
	// EngineGoldmark is goldmark with the math block extension.
	EngineGoldmark Engine = "goldmark"
)

// IsValid returns true if the engine is known.
func (e Engine) IsValid() bool {
	switch e {
	case EngineNative, EngineGoldmark:
		return true
	default:
		return false
	}
}

// DefaultMarker is the fence marker written by NewConfig.
const DefaultMarker = "$"

// ConvertConfig controls fenced code to math block conversion.
type ConvertConfig struct {
	// Languages lists the code block info strings that hold math.
	Languages []string `mapstructure:"languages" yaml:"languages"`

	// Detect also converts unlabelled code blocks detected as TeX.
	Detect bool `mapstructure:"detect" yaml:"detect"`
}

// Config is the root configuration structure for gomdmath.
type Config struct {
	// Marker is the fence marker, a single byte.
	Marker string `mapstructure:"marker" yaml:"marker"`

	// MinFence is the shortest marker run that opens a math block.
	MinFence int `mapstructure:"min_fence" yaml:"min_fence"`

	// Engine selects the host parser ("native" or "goldmark").
	Engine Engine `mapstructure:"engine" yaml:"engine"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Convert configures the convert command.
	Convert ConvertConfig `mapstructure:"convert" yaml:"convert"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Write rewrites files in place.
	Write bool `mapstructure:"-" yaml:"-"`

	// Check reports files that would change and fails if there are any.
	Check bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Marker:   DefaultMarker,
		MinFence: mathblock.DefaultMinFence,
		Engine:   EngineNative,
		Flavor:   FlavorCommonMark,
		Ignore:   nil,
		Convert: ConvertConfig{
			Languages: []string{"math", "latex", "tex", "katex"},
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// MarkerByte returns the configured marker byte, or the default marker when
// none is set.
func (c *Config) MarkerByte() byte {
	if c == nil || c.Marker == "" {
		return mathblock.DefaultMarker
	}
	return c.Marker[0]
}

// ScannerOptions returns the mathblock options described by the
// configuration.
func (c *Config) ScannerOptions() []mathblock.Option {
	if c == nil {
		return nil
	}
	opts := []mathblock.Option{mathblock.WithMarker(c.MarkerByte())}
	if c.MinFence > 0 {
		opts = append(opts, mathblock.WithMinFence(c.MinFence))
	}
	return opts
}
