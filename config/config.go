package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/spoolview/errors"
	"github.com/grovetools/spoolview/pkg/paths"
	"github.com/grovetools/spoolview/schema"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames are searched in order in every directory.
var configNames = []string{
	"spoolview.yml",
	"spoolview.yaml",
	"spoolview.toml",
	".spoolview.yml",
	".spoolview.yaml",
}

// overrideNames are local, uncommitted overrides next to the project config.
var overrideNames = []string{
	"spoolview.override.yml",
	"spoolview.override.yaml",
	"spoolview.override.toml",
}

// Load reads and parses a single configuration file, applying defaults and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	return LoadFromBytes(data, formatOf(path))
}

// LoadDefault finds and loads the configuration with hierarchical merging:
// 1. Global config ($XDG_CONFIG_HOME/spoolview/spoolview.yml) - base layer
// 2. Project config (spoolview.yml) - overrides global
// 3. Local override (spoolview.override.yml) - overrides all
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the given directory
func LoadFrom(startDir string) (*Config, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return LoadFromWithLogger(startDir, logger)
}

// LoadFromWithLogger loads configuration with hierarchical merging and logging
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	layered, err := loadLayers(startDir, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("Configuration loaded and validated successfully")
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(layered.Final); err == nil {
			logger.Debugf("Merged configuration:\n%s", string(data))
		}
	}
	return layered.Final, nil
}

// LoadLayered finds and loads all configuration layers (global, project, overrides)
// without merging them, for analysis purposes. It also computes the final merged config.
func LoadLayered(startDir string) (*LayeredConfig, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return loadLayers(startDir, logger)
}

func loadLayers(startDir string, logger *logrus.Logger) (*LayeredConfig, error) {
	layered := &LayeredConfig{
		FilePaths: make(map[ConfigSource]string),
	}

	defaults := &Config{}
	defaults.SetDefaults()
	layered.Default = defaults

	// 1. Global layer (optional)
	if globalPath := getXDGConfigPath(); globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			logger.WithField("path", globalPath).Debug("Loading global configuration")
			cfg, err := parseFile(globalPath)
			if err != nil {
				logger.WithError(err).Warn("Failed to parse global configuration, continuing without it")
			} else {
				layered.Global = cfg
				layered.FilePaths[SourceGlobal] = globalPath
			}
		}
	}

	// 2. Project layer (required)
	projectPath, err := FindConfigFile(startDir)
	if err != nil {
		return nil, err
	}
	if projectPath != layered.FilePaths[SourceGlobal] {
		logger.WithField("path", projectPath).Debug("Loading project configuration")
		project, err := parseFile(projectPath)
		if err != nil {
			return nil, err
		}
		layered.Project = project
		layered.FilePaths[SourceProject] = projectPath
	}

	// 3. Override layers (optional)
	projectDir := filepath.Dir(projectPath)
	for _, name := range overrideNames {
		overridePath := filepath.Join(projectDir, name)
		if _, err := os.Stat(overridePath); err != nil {
			continue
		}
		logger.WithField("path", overridePath).Debug("Loading local override configuration")
		override, err := parseFile(overridePath)
		if err != nil {
			logger.WithError(err).Warn("Failed to parse override file, skipping")
			continue
		}
		layered.Overrides = append(layered.Overrides, OverrideSource{Path: overridePath, Config: override})
	}

	final := &Config{}
	if layered.Global != nil {
		final = mergeConfigs(final, layered.Global)
	}
	if layered.Project != nil {
		final = mergeConfigs(final, layered.Project)
	}
	for _, o := range layered.Overrides {
		final = mergeConfigs(final, o.Config)
	}

	final.SetDefaults()
	if err := final.Validate(); err != nil {
		return nil, err
	}
	layered.Final = final

	return layered, nil
}

// LoadFromBytes parses configuration from byte array. format is "yaml" or "toml".
func LoadFromBytes(data []byte, format string) (*Config, error) {
	cfg, err := parseBytes(data, format)
	if err != nil {
		return nil, err
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config").
			WithDetail("path", path)
	}
	cfg, err := parseBytes(data, formatOf(path))
	if err != nil {
		if se, ok := err.(*errors.SpoolError); ok {
			return nil, se.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// parseBytes decodes a raw layer and checks it against the JSON schema. No defaults applied.
func parseBytes(data []byte, format string) (*Config, error) {
	expanded := []byte(expandEnvVars(string(data)))

	var (
		cfg Config
		raw map[string]interface{}
	)
	switch format {
	case "toml":
		if err := toml.Unmarshal(expanded, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
		if err := toml.Unmarshal(expanded, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
		for k, v := range raw {
			if knownKeys[k] {
				continue
			}
			if cfg.Extensions == nil {
				cfg.Extensions = make(map[string]interface{})
			}
			cfg.Extensions[k] = v
		}
	default:
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
		}
		if err := yaml.Unmarshal(expanded, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
		}
	}

	if raw != nil {
		validator, err := schema.NewValidator()
		if err != nil {
			return nil, err
		}
		if err := validator.Validate(raw); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// FindConfigFile searches for spoolview configuration files with the following precedence:
// 1. Current directory up to filesystem root
// 2. XDG config directory ($XDG_CONFIG_HOME/spoolview/spoolview.yml)
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if xdgConfigPath := getXDGConfigPath(); xdgConfigPath != "" {
		if info, err := os.Stat(xdgConfigPath); err == nil && !info.IsDir() {
			return xdgConfigPath, nil
		}
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// getXDGConfigPath returns the global spoolview.yml path
func getXDGConfigPath() string {
	dir := paths.ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "spoolview.yml")
}
