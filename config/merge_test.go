package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func float64Ptr(v float64) *float64 { return &v }

func TestMergeConfigs(t *testing.T) {
	tests := []struct {
		name     string
		base     *Config
		override *Config
		check    func(t *testing.T, got *Config)
	}{
		{
			name:     "empty override keeps base",
			base:     &Config{Name: "base", Spools: []string{"S1"}, Catalog: CatalogConfig{Path: "a.db"}},
			override: &Config{},
			check: func(t *testing.T, got *Config) {
				assert.Equal(t, "base", got.Name)
				assert.Equal(t, []string{"S1"}, got.Spools)
				assert.Equal(t, "a.db", got.Catalog.Path)
			},
		},
		{
			name:     "lists replace rather than append",
			base:     &Config{Spools: []string{"S1", "S2"}, Catalog: CatalogConfig{Categories: []string{"A", "B"}}},
			override: &Config{Spools: []string{"S3"}, Catalog: CatalogConfig{Categories: []string{"C"}}},
			check: func(t *testing.T, got *Config) {
				assert.Equal(t, []string{"S3"}, got.Spools)
				assert.Equal(t, []string{"C"}, got.Catalog.Categories)
			},
		},
		{
			name:     "zero pick offset overrides",
			base:     &Config{Viewport: ViewportConfig{SettleDelay: "1s", PickOffset: float64Ptr(8)}},
			override: &Config{Viewport: ViewportConfig{PickOffset: float64Ptr(0)}},
			check: func(t *testing.T, got *Config) {
				assert.Equal(t, "1s", got.Viewport.SettleDelay)
				assert.Equal(t, 0.0, got.PickOffset())
			},
		},
		{
			name: "extensions merge one level deep",
			base: &Config{Extensions: map[string]interface{}{
				"logging": map[string]interface{}{"level": "info", "report_caller": true},
				"other":   "keep",
			}},
			override: &Config{Extensions: map[string]interface{}{
				"logging": map[string]interface{}{"level": "debug"},
			}},
			check: func(t *testing.T, got *Config) {
				assert.Equal(t, map[string]interface{}{"level": "debug", "report_caller": true}, got.Extensions["logging"])
				assert.Equal(t, "keep", got.Extensions["other"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, mergeConfigs(tt.base, tt.override))
		})
	}
}

func TestMergeDoesNotAliasOverride(t *testing.T) {
	override := &Config{Spools: []string{"S1"}, Viewport: ViewportConfig{PickOffset: float64Ptr(3)}}
	got := mergeConfigs(&Config{}, override)

	got.Spools[0] = "changed"
	*got.Viewport.PickOffset = 9

	assert.Equal(t, "S1", override.Spools[0])
	assert.Equal(t, 3.0, *override.Viewport.PickOffset)
}
