package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdmath/pkg/config"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{"empty defaults to text", "", config.FormatText, false},
		{"text", "text", config.FormatText, false},
		{"json", "json", config.FormatJSON, false},
		{"unknown", "sarif", "", true},
		{"case sensitive", "JSON", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.ParseOutputFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngineAndFlavorIsValid(t *testing.T) {
	assert.True(t, config.EngineNative.IsValid())
	assert.True(t, config.EngineGoldmark.IsValid())
	assert.False(t, config.Engine("remark").IsValid())

	assert.True(t, config.FlavorCommonMark.IsValid())
	assert.True(t, config.FlavorGFM.IsValid())
	assert.False(t, config.Flavor("").IsValid())
}
