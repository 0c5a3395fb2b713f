package config

// mergeConfigs merges override configuration into base
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Name != "" {
		result.Name = override.Name
	}
	if override.Version != "" {
		result.Version = override.Version
	}

	result.Catalog = mergeCatalog(result.Catalog, override.Catalog)
	result.Viewport = mergeViewport(result.Viewport, override.Viewport)

	if len(override.Spools) > 0 {
		result.Spools = append([]string(nil), override.Spools...)
	}
	if override.SpoolsFile != "" {
		result.SpoolsFile = override.SpoolsFile
	}

	if override.Extensions != nil {
		merged := make(map[string]interface{}, len(result.Extensions)+len(override.Extensions))
		for key, value := range result.Extensions {
			merged[key] = value
		}
		for key, value := range override.Extensions {
			// Same-key maps merge one level deep; anything else replaces.
			if baseMap, ok := merged[key].(map[string]interface{}); ok {
				if overrideMap, ok := value.(map[string]interface{}); ok {
					mergedMap := make(map[string]interface{}, len(baseMap)+len(overrideMap))
					for k, v := range baseMap {
						mergedMap[k] = v
					}
					for k, v := range overrideMap {
						mergedMap[k] = v
					}
					merged[key] = mergedMap
					continue
				}
			}
			merged[key] = value
		}
		result.Extensions = merged
	}

	return &result
}

func mergeCatalog(base, override CatalogConfig) CatalogConfig {
	result := base

	if override.Path != "" {
		result.Path = override.Path
	}
	if len(override.Categories) > 0 {
		result.Categories = append([]string(nil), override.Categories...)
	}
	if override.GroupAttribute != "" {
		result.GroupAttribute = override.GroupAttribute
	}

	return result
}

func mergeViewport(base, override ViewportConfig) ViewportConfig {
	result := base

	if override.SettleDelay != "" {
		result.SettleDelay = override.SettleDelay
	}
	if override.PickOffset != nil {
		offset := *override.PickOffset
		result.PickOffset = &offset
	}

	return result
}
