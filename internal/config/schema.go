package config

// Config is the full thingsexport configuration.
type Config struct {
	// Task source: "osascript" for a live Things database, "file" for a
	// saved snapshot.
	Source    string `yaml:"source" mapstructure:"source"`
	Snapshot  string `yaml:"snapshot" mapstructure:"snapshot"`
	Osascript string `yaml:"osascript" mapstructure:"osascript"`

	// Delivery: "-" for stdout, "clipboard", or a file path.
	Output string `yaml:"output" mapstructure:"output"`
	Format string `yaml:"format" mapstructure:"format"`

	// Logbook traversal
	CycleWeeks int    `yaml:"cycle_weeks" mapstructure:"cycle_weeks"`
	Scan       string `yaml:"scan" mapstructure:"scan"`

	// Records must carry every one of these tags
	Tags []string `yaml:"tags" mapstructure:"tags"`

	Report ReportConfig `yaml:"report" mapstructure:"report"`
}

// ReportConfig configures Markdown output.
type ReportConfig struct {
	SanitizeMentions bool `yaml:"sanitize_mentions" mapstructure:"sanitize_mentions"`
	ProjectsOnly     bool `yaml:"projects_only" mapstructure:"projects_only"`
}

// Source kinds.
const (
	SourceOsascript = "osascript"
	SourceFile      = "file"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Output destinations other than a file path.
const (
	OutputStdout    = "-"
	OutputClipboard = "clipboard"
)
