package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bryan-cox/thingsexport/internal/clipboard"
	"github.com/bryan-cox/thingsexport/internal/config"
	"github.com/bryan-cox/thingsexport/internal/export"
	"github.com/bryan-cox/thingsexport/internal/model"
	"github.com/bryan-cox/thingsexport/internal/report"
	"github.com/bryan-cox/thingsexport/internal/things"
	"github.com/bryan-cox/thingsexport/internal/traverse"
	"github.com/bryan-cox/thingsexport/internal/window"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// now is the clock used for the Today and cycle windows.
var now = time.Now

// --- Flag values ---

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath       string
	source           string
	snapshot         string
	osascript        string
	output           string
	format           string
	tags             []string
	verbose          bool
	sanitizeMentions bool
	projectsOnly     bool
}

// logbookOptions selects the completion-date window for the logbook command.
type logbookOptions struct {
	from  string
	to    string
	today bool
	cycle bool
	weeks int
	scan  string
}

// --- Cobra Command Definitions ---

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "thingsexport",
		Short: "Export Things tasks as self-contained JSON records.",
		Long: `thingsexport reads the Logbook or Today list from Things, resolves each task's project,
area and tags into a self-contained record, and prints the result as a JSON array.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler).With("run_id", uuid.NewString()))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML config file.")
	flags.StringVar(&opts.source, "source", "", "Task source: osascript or file.")
	flags.StringVar(&opts.snapshot, "snapshot", "", "Path to a YAML/JSON snapshot (with --source file).")
	flags.StringVar(&opts.osascript, "osascript", "", "Path to the osascript binary.")
	flags.StringVarP(&opts.output, "output", "o", "", "Where to write: - for stdout, clipboard, or a file path.")
	flags.StringVar(&opts.format, "format", "", "Output format: json or markdown.")
	flags.StringSliceVar(&opts.tags, "tag", nil, "Only export tasks carrying this tag (repeatable).")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging.")
	flags.BoolVar(&opts.sanitizeMentions, "sanitize-mentions", false, "Disguise @-tag names in markdown output.")
	flags.BoolVar(&opts.projectsOnly, "projects-only", false, "List projects instead of tasks in markdown output.")

	rootCmd.AddCommand(newLogbookCmd(opts))
	rootCmd.AddCommand(newTodayCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newLogbookCmd(opts *globalOptions) *cobra.Command {
	lopts := &logbookOptions{}

	cmd := &cobra.Command{
		Use:   "logbook",
		Short: "Export completed tasks from the Logbook.",
		Long: `Exports Logbook tasks whose completion date falls in [from, to).

Windows:
  --from/--to   explicit bounds, used as given (scans until the first miss)
  --today       00:00:00 to 23:59:59 today
  --cycle       from --weeks weeks ago (default 6) at 00:00:00 to 23:59:59 today`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("weeks") {
				lopts.weeks = cfg.CycleWeeks
			}

			w, defaultScan, err := logbookWindow(lopts, now())
			if err != nil {
				return err
			}

			scan := defaultScan
			if cfg.Scan != "" {
				scan = cfg.Scan
			}
			if cmd.Flags().Changed("scan") {
				scan = lopts.scan
			}
			strategy, err := traverse.ParseStrategy(scan)
			if err != nil {
				return err
			}

			return runExport(cmd, cfg, export.Request{
				List:     model.ListLogbook,
				Window:   w,
				Strategy: strategy,
				Tags:     cfg.Tags,
			})
		},
	}

	cmd.Flags().StringVar(&lopts.from, "from", "", "Inclusive lower bound (YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC 3339).")
	cmd.Flags().StringVar(&lopts.to, "to", "", "Exclusive upper bound (same formats as --from).")
	cmd.Flags().BoolVar(&lopts.today, "today", false, "Export tasks completed today.")
	cmd.Flags().BoolVar(&lopts.cycle, "cycle", false, "Export tasks completed in the rolling cycle window.")
	cmd.Flags().IntVar(&lopts.weeks, "weeks", window.DefaultCycleWeeks, "Length of the cycle window in weeks.")
	cmd.Flags().StringVar(&lopts.scan, "scan", "", "Traversal: early (stop at first miss) or full.")
	cmd.MarkFlagsRequiredTogether("from", "to")
	cmd.MarkFlagsMutuallyExclusive("from", "today", "cycle")
	return cmd
}

func newTodayCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Export every task on the Today list.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runExport(cmd, cfg, export.Request{
				List:   model.ListToday,
				Window: window.Unfiltered(),
				Tags:   cfg.Tags,
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "thingsexport %s\n", version)
		},
	}
}

// --- Main Application Entry Point ---

func main() {
	// Setup structured JSON logger for errors.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}
}

// --- Command Execution Logic ---

// loadConfig merges the config files and environment, then applies any
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = opts.source
	}
	if flags.Changed("snapshot") {
		cfg.Snapshot = opts.snapshot
		if !flags.Changed("source") {
			cfg.Source = config.SourceFile
		}
	}
	if flags.Changed("osascript") {
		cfg.Osascript = opts.osascript
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("tag") {
		cfg.Tags = opts.tags
	}
	if flags.Changed("sanitize-mentions") {
		cfg.Report.SanitizeMentions = opts.sanitizeMentions
	}
	if flags.Changed("projects-only") {
		cfg.Report.ProjectsOnly = opts.projectsOnly
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logbookWindow picks the window policy and the traversal that suits it.
func logbookWindow(opts *logbookOptions, at time.Time) (window.Window, string, error) {
	switch {
	case opts.today:
		return window.Today(at), "full", nil
	case opts.cycle:
		return window.Rolling(at, opts.weeks), "full", nil
	case opts.from != "" || opts.to != "":
		w, err := window.Explicit(opts.from, opts.to, at.Location())
		if err != nil {
			return window.Window{}, "", fmt.Errorf("invalid date range: %w", err)
		}
		return w, "early", nil
	default:
		return window.Window{}, "", fmt.Errorf("one of --from/--to, --today or --cycle is required")
	}
}

func newSource(cfg *config.Config) things.Source {
	if cfg.Source == config.SourceFile {
		return things.NewFileSource(cfg.Snapshot)
	}
	return things.NewOsascriptSource(cfg.Osascript)
}

// runExport renders the full result before delivering it, so a failure
// never leaves partial output behind.
func runExport(cmd *cobra.Command, cfg *config.Config, req export.Request) error {
	records, err := export.Run(newSource(cfg), req)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch cfg.Format {
	case config.FormatMarkdown:
		err = report.WriteMarkdown(&buf, records, report.Options{
			ProjectsOnly:     cfg.Report.ProjectsOnly,
			SanitizeMentions: cfg.Report.SanitizeMentions,
		})
	default:
		err = export.WriteJSON(&buf, records)
	}
	if err != nil {
		return err
	}

	slog.Info("exported tasks", "list", req.List, "count", len(records), "output", cfg.Output)
	return deliver(cmd, cfg.Output, buf.Bytes())
}

func deliver(cmd *cobra.Command, output string, data []byte) error {
	switch output {
	case "", config.OutputStdout:
		_, err := cmd.OutOrStdout().Write(data)
		return err
	case config.OutputClipboard:
		if err := clipboard.CopyText(string(data)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		return nil
	default:
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("could not write '%s': %w", output, err)
		}
		return nil
	}
}
