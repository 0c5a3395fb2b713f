package config

import (
	"testing"

	"github.com/grovetools/spoolview/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.SetDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "missing version", mutate: func(c *Config) { c.Version = "" }, wantErr: true},
		{name: "category with space", mutate: func(c *Config) { c.Catalog.Categories = []string{"P3D Pipe"} }, wantErr: true},
		{name: "category with quote", mutate: func(c *Config) { c.Catalog.Categories = []string{`x"`} }, wantErr: true},
		{name: "attribute starting with digit", mutate: func(c *Config) { c.Catalog.GroupAttribute = "1spool" }, wantErr: true},
		{name: "negative settle delay", mutate: func(c *Config) { c.Viewport.SettleDelay = "-1s" }, wantErr: true},
		{name: "unparseable settle delay", mutate: func(c *Config) { c.Viewport.SettleDelay = "half a second" }, wantErr: true},
		{name: "negative pick offset", mutate: func(c *Config) { c.Viewport.PickOffset = float64Ptr(-1) }, wantErr: true},
		{name: "blank spool", mutate: func(c *Config) { c.Spools = []string{"S1", "  "} }, wantErr: true},
		{name: "spools with spaces inside", mutate: func(c *Config) { c.Spools = []string{"S 1"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateIdentifier(t *testing.T) {
	assert.NoError(t, ValidateIdentifier("f", "P3DPipe"))
	assert.NoError(t, ValidateIdentifier("f", "_spool"))
	assert.Error(t, ValidateIdentifier("f", ""))
	assert.Error(t, ValidateIdentifier("f", "Pipe;DROP"))
}
