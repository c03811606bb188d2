package configloader

import "github.com/yaklabco/gomdmath/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Marker != "" {
		result.Marker = override.Marker
	}
	if override.MinFence != 0 {
		result.MinFence = override.MinFence
	}
	if override.Engine != "" {
		result.Engine = override.Engine
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans can only be switched on by a higher layer, since false is
	// indistinguishable from unset.
	if override.Convert.Detect {
		result.Convert.Detect = true
	}
	if override.Write {
		result.Write = true
	}
	if override.Check {
		result.Check = true
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Convert.Languages != nil {
		result.Convert.Languages = override.Convert.Languages
	}

	return &result
}
