package main

import (
	"io"
	"mdcompact/internal/compact"
	"mdcompact/internal/config"
	"mdcompact/internal/fsys"
	"mdcompact/internal/logging"
	"mdcompact/internal/metrics"
	"mdcompact/internal/notify"
	"mdcompact/internal/progress"

	"github.com/spf13/cobra"
)

type options struct {
	configFile  string
	extensions  []string
	skipDirs    []string
	reportName  string
	reportTitle string
	reportLimit int
	dryRun      bool
	noProgress  bool
	stats       bool
	logLevel    string
	logFormat   string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "mdcompact [root]",
		Short: "Remove duplicate text files from a directory tree",
		Long: `mdcompact walks a directory tree, hashes every matching file with SHA-256 and
deletes files whose content duplicates another file, keeping the shallowest
(then shortest) path of each group. A summary is written into the root.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args, opts)
			if err != nil {
				return err
			}
			return run(cmd, cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	f.StringSliceVarP(&opts.extensions, "ext", "e", nil, "file extensions to include (default .md)")
	f.StringSliceVar(&opts.skipDirs, "skip-dir", nil, "directory names to skip (default .git)")
	f.StringVar(&opts.reportName, "report", "", "summary file name, relative to the root")
	f.StringVar(&opts.reportTitle, "title", "", "summary title (default: root directory name)")
	f.IntVar(&opts.reportLimit, "report-limit", config.DefaultReportLimit, "max removed paths listed in the summary")
	f.BoolVarP(&opts.dryRun, "dry-run", "n", false, "show what would be removed without deleting")
	f.BoolVar(&opts.noProgress, "no-progress", false, "disable the hashing progress bar")
	f.BoolVar(&opts.stats, "stats", false, "print run statistics at the end")
	f.StringVar(&opts.logLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	f.StringVar(&opts.logFormat, "log-format", "", "diagnostic log format (text, json)")

	return cmd
}

func loadConfig(cmd *cobra.Command, args []string, opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return config.Config{}, err
	}

	if len(args) == 1 {
		cfg.Root = args[0]
	}
	f := cmd.Flags()
	if f.Changed("ext") {
		cfg.Extensions = opts.extensions
	}
	if f.Changed("skip-dir") {
		cfg.SkipDirs = opts.skipDirs
	}
	if f.Changed("report") {
		cfg.ReportName = opts.reportName
	}
	if f.Changed("title") {
		cfg.ReportTitle = opts.reportTitle
	}
	if f.Changed("report-limit") {
		cfg.ReportLimit = opts.reportLimit
	}
	if f.Changed("dry-run") {
		cfg.DryRun = opts.dryRun
	}
	if opts.noProgress {
		cfg.Progress = false
	}
	if f.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}

	if err := cfg.Normalize(); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg config.Config, opts options) error {
	out := cmd.OutOrStdout()

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	ctx := logging.Context(cmd.Context(), logging.WithRun(logger))

	var bar io.Writer
	if cfg.Progress && progress.Interactive(out) {
		bar = out
	}

	res, err := compact.Run(ctx, cfg, compact.Deps{
		FS:       fsys.NewOS(),
		Notify:   notify.New(out),
		Progress: bar,
	})
	if opts.stats && res != nil {
		metrics.Print(out, res.Stats)
	}
	return err
}
