package logging

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger("test-component")
	require.NotNil(t, logger)
	assert.Equal(t, "test-component", logger.Data["component"])

	// Same component returns the cached entry.
	assert.Same(t, logger, NewLogger("test-component"))
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&TextFormatter{Config: FormatConfig{}})

	logger.WithField("component", "selection").Info("Applied isolation")

	output := buf.String()
	assert.Contains(t, output, "[INFO]")
	assert.Contains(t, output, "selection")
	assert.Contains(t, output, "Applied isolation")
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "resolved spools",
				Data: logrus.Fields{
					"component": "resolver",
					"elements":  4,
				},
			},
			want: []string{"[INFO]", "resolver", "resolved spools", "elements=4"},
		},
		{
			name: "simple format",
			config: FormatConfig{
				DisableTimestamp: true,
				DisableComponent: true,
			},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "pick superseded",
				Data: logrus.Fields{
					"component": "pick",
				},
			},
			want:    []string{"[WARN]", "pick superseded"},
			notWant: []string{"pick]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TextFormatter{Config: tt.config}
			out, err := f.Format(tt.entry)
			require.NoError(t, err)
			s := string(out)
			for _, w := range tt.want {
				assert.Contains(t, s, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, s, nw)
			}
		})
	}
}

func TestTextFormatterSortsFields(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true, DisableComponent: true}}
	out, err := f.Format(&logrus.Entry{
		Level:   logrus.InfoLevel,
		Message: "m",
		Data:    logrus.Fields{"zeta": 1, "alpha": 2},
	})
	require.NoError(t, err)
	s := string(out)
	assert.Less(t, strings.Index(s, "alpha=2"), strings.Index(s, "zeta=1"))
}

func TestNewLoggerFromConfig(t *testing.T) {
	t.Setenv("SPOOLVIEW_LOG_LEVEL", "")

	t.Run("level and json preset", func(t *testing.T) {
		logger := newLoggerFromConfig("c", Config{
			Level:  "debug",
			Format: FormatConfig{Preset: "json", StructuredToStderr: "never"},
		})
		assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
		assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
	})

	t.Run("env overrides config level", func(t *testing.T) {
		t.Setenv("SPOOLVIEW_LOG_LEVEL", "error")
		logger := newLoggerFromConfig("c", Config{Level: "debug"})
		assert.Equal(t, logrus.ErrorLevel, logger.GetLevel())
	})

	t.Run("file sink", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "spoolview.log")
		logger := newLoggerFromConfig("c", Config{
			File:   FileSinkConfig{Enabled: true, Path: path},
			Format: FormatConfig{StructuredToStderr: "never"},
		})
		logger.Info("hello")
		assert.FileExists(t, path)
	})

	t.Run("stderr goes through the global output", func(t *testing.T) {
		var buf bytes.Buffer
		restore := SetGlobalOutput(&buf)
		defer restore()

		logger := newLoggerFromConfig("c", Config{
			Format: FormatConfig{Preset: "simple", StructuredToStderr: "always"},
		})
		logger.Info("routed")
		assert.Contains(t, buf.String(), "routed")

		restore()
		logger.Info("after restore")
		assert.NotContains(t, buf.String(), "after restore")
	})
}
