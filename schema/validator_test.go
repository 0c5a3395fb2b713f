package schema

import (
	"testing"

	"github.com/grovetools/spoolview/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		data    map[string]interface{}
		wantErr bool
	}{
		{
			name: "minimal",
			data: map[string]interface{}{"version": "1.0"},
		},
		{
			name: "full with extension",
			data: map[string]interface{}{
				"version": "1.0",
				"catalog": map[string]interface{}{
					"path":       "plant.db",
					"categories": []interface{}{"P3DPipe"},
				},
				"viewport": map[string]interface{}{"settle_delay": "250ms", "pick_offset": 4},
				"spools":   []interface{}{"S1", "S2"},
				"logging":  map[string]interface{}{"level": "debug"},
			},
		},
		{
			name:    "spools must be a list",
			data:    map[string]interface{}{"spools": "S1 S2"},
			wantErr: true,
		},
		{
			name: "category must be an identifier",
			data: map[string]interface{}{
				"catalog": map[string]interface{}{"categories": []interface{}{"P3D Pipe; DROP"}},
			},
			wantErr: true,
		},
		{
			name: "unknown catalog key",
			data: map[string]interface{}{
				"catalog": map[string]interface{}{"dsn": "x"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.data)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatorReportsViolations(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	err = v.Validate(map[string]interface{}{
		"spools":   "S1",
		"viewport": map[string]interface{}{"pick_offset": "far"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))

	spoolErr, ok := err.(*errors.SpoolError)
	require.True(t, ok)
	violations, ok := spoolErr.Details["violations"].([]string)
	require.True(t, ok)
	assert.NotEmpty(t, violations)
	assert.Contains(t, err.Error(), "/spools")
	assert.Contains(t, err.Error(), "/viewport/pick_offset")
}
