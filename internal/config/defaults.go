package config

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source:     SourceOsascript,
		Osascript:  "osascript",
		Output:     OutputStdout,
		Format:     FormatJSON,
		CycleWeeks: 6,
		Tags:       []string{},
	}
}
