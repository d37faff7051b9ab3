package configloader

import "github.com/yaklabco/indentfold/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if non-nil, so an explicit 0 wins
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Booleans: only true overrides; a config file cannot unset a flag
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base
	result := *base

	if override.TabSize != 0 {
		result.TabSize = override.TabSize
	}
	if override.MinimumRangeSize != nil {
		result.MinimumRangeSize = config.IntPtr(*override.MinimumRangeSize)
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	if override.IncludeVendor {
		result.IncludeVendor = true
	}
	if override.FollowSymlinks {
		result.FollowSymlinks = true
	}
	if override.ShowContext {
		result.ShowContext = true
	}

	result.Languages = mergeLanguages(base.Languages, override.Languages)

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// mergeLanguages performs a deep merge of per-language overrides.
// The result never aliases either input map.
func mergeLanguages(base, override map[string]config.LanguageConfig) map[string]config.LanguageConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.LanguageConfig, len(base)+len(override))
	for key, val := range base {
		result[key] = val
	}

	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeLanguageConfig(existing, val)
		} else {
			result[key] = val
		}
	}

	return result
}

// mergeLanguageConfig merges individual language overrides field by field.
func mergeLanguageConfig(base, override config.LanguageConfig) config.LanguageConfig {
	result := base

	if override.TabSize != nil {
		result.TabSize = override.TabSize
	}
	if override.MinimumRangeSize != nil {
		result.MinimumRangeSize = override.MinimumRangeSize
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
