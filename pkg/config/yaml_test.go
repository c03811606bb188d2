package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdmath/pkg/config"
	"github.com/yaklabco/gomdmath/pkg/mathblock"
)

func TestNewConfig(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, "$", cfg.Marker)
	assert.Equal(t, 2, cfg.MinFence)
	assert.Equal(t, config.EngineNative, cfg.Engine)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, []string{"math", "latex", "tex", "katex"}, cfg.Convert.Languages)
	assert.False(t, cfg.Convert.Detect)
	assert.Equal(t, config.FormatText, cfg.Format)
}

func TestScannerOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		scanner := mathblock.NewScanner(config.NewConfig().ScannerOptions()...)
		assert.Equal(t, byte('$'), scanner.Marker())
		assert.Equal(t, 2, scanner.MinFence())
	})

	t.Run("custom marker and minimum", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Marker = "%"
		cfg.MinFence = 3

		scanner := mathblock.NewScanner(cfg.ScannerOptions()...)
		assert.Equal(t, byte('%'), scanner.Marker())
		assert.Equal(t, 3, scanner.MinFence())
	})

	t.Run("empty marker falls back", func(t *testing.T) {
		cfg := &config.Config{}
		assert.Equal(t, mathblock.DefaultMarker, cfg.MarkerByte())
	})

	t.Run("nil config", func(t *testing.T) {
		var cfg *config.Config
		assert.Nil(t, cfg.ScannerOptions())
		assert.Equal(t, mathblock.DefaultMarker, cfg.MarkerByte())
	})
}

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies slices", func(t *testing.T) {
		original := config.NewConfig()
		original.Ignore = []string{"*.md", "vendor/**"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original.Ignore, clone.Ignore)

		clone.Ignore[0] = "changed"
		clone.Convert.Languages[0] = "changed"
		assert.Equal(t, "*.md", original.Ignore[0])
		assert.Equal(t, "math", original.Convert.Languages[0])
	})

	t.Run("preserves CLI fields", func(t *testing.T) {
		original := config.NewConfig()
		original.Format = config.FormatJSON
		original.Jobs = 4
		original.Write = true
		original.Check = true

		clone := original.Clone()
		assert.Equal(t, config.FormatJSON, clone.Format)
		assert.Equal(t, 4, clone.Jobs)
		assert.True(t, clone.Write)
		assert.True(t, clone.Check)
	})
}

func TestConfigYAMLOmitsCLIFields(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Write = true
	cfg.Jobs = 8

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "marker: $")
	assert.Contains(t, string(data), "min_fence: 2")
	assert.Contains(t, string(data), "engine: native")
	assert.NotContains(t, string(data), "write")
	assert.NotContains(t, string(data), "jobs")
}

func TestFromYAML(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := config.NewConfig()
		original.Marker = "%"
		original.Engine = config.EngineGoldmark
		original.Ignore = []string{"vendor/**"}
		original.Convert.Detect = true

		data, err := yaml.Marshal(original)
		require.NoError(t, err)

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, "%", parsed.Marker)
		assert.Equal(t, config.EngineGoldmark, parsed.Engine)
		assert.Equal(t, []string{"vendor/**"}, parsed.Ignore)
		assert.True(t, parsed.Convert.Detect)
		assert.Equal(t, original.Convert.Languages, parsed.Convert.Languages)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.FromYAML([]byte("marker: [unclosed"))
		require.Error(t, err)
	})
}

func TestGenerateTemplate(t *testing.T) {
	t.Run("minimal template parses to defaults", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)
		assert.Contains(t, string(data), "# gomdmath configuration")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, "$", cfg.Marker)
	})

	t.Run("full template parses to defaults", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		defaults := config.NewConfig()
		assert.Equal(t, defaults.Marker, cfg.Marker)
		assert.Equal(t, defaults.MinFence, cfg.MinFence)
		assert.Equal(t, defaults.Engine, cfg.Engine)
		assert.Equal(t, defaults.Flavor, cfg.Flavor)
		assert.Equal(t, defaults.Convert.Languages, cfg.Convert.Languages)
	})

	t.Run("json template", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, "$", doc["marker"])
		assert.InDelta(t, 2, doc["min_fence"], 0)
	})
}
