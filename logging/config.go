package logging

// Config is the "logging" extension of spoolview.yml.
type Config struct {
	// Level is the minimum level logged. SPOOLVIEW_LOG_LEVEL takes precedence.
	Level string `yaml:"level"`

	// ReportCaller adds file, line and function. Also SPOOLVIEW_LOG_CALLER=true.
	ReportCaller bool `yaml:"report_caller"`

	File   FileSinkConfig `yaml:"file"`
	Format FormatConfig   `yaml:"format"`
}

// FileSinkConfig enables an append-only log file. Without a path the file
// goes to the log directory, one per component and day.
type FileSinkConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset is "default", "simple" or "json".
	Preset           string `yaml:"preset"`
	DisableTimestamp bool   `yaml:"disable_timestamp"`
	DisableComponent bool   `yaml:"disable_component"`

	// StructuredToStderr is "auto" (default), "always" or "never". In auto
	// mode an interactive terminal only sees logs at debug level.
	StructuredToStderr string `yaml:"structured_to_stderr"`
}
