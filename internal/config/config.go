// Package config loads the settings of a compaction run from defaults, an
// optional YAML file and MDCOMPACT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const envVarPrefix = "MDCOMPACT"

const (
	DefaultReportName  = "COMPACTION_SUMMARY.md"
	DefaultReportLimit = 100
)

// Config captures runtime configuration for a compaction run.
type Config struct {
	// Root is the directory tree to compact.
	Root string `envconfig:"MDCOMPACT_ROOT" yaml:"root"`

	// Extensions are the file-name suffixes that make a file a candidate.
	Extensions []string `envconfig:"MDCOMPACT_EXTENSIONS" yaml:"extensions"`

	// SkipDirs are directory names that are never descended into.
	SkipDirs []string `envconfig:"MDCOMPACT_SKIP_DIRS" yaml:"skipDirs"`

	// ReportName is the summary file, relative to Root.
	ReportName string `envconfig:"MDCOMPACT_REPORT_NAME" yaml:"reportName"`

	// ReportTitle is used in the summary heading. Defaults to Root's base name.
	ReportTitle string `envconfig:"MDCOMPACT_REPORT_TITLE" yaml:"reportTitle"`

	// ReportLimit caps how many removed paths the summary lists.
	ReportLimit int `envconfig:"MDCOMPACT_REPORT_LIMIT" yaml:"reportLimit"`

	// DryRun plans deletions without touching the filesystem.
	DryRun bool `envconfig:"MDCOMPACT_DRY_RUN" yaml:"dryRun"`

	// Progress enables the hashing progress bar on interactive terminals.
	Progress bool `envconfig:"MDCOMPACT_PROGRESS" yaml:"progress"`

	LogLevel  string `envconfig:"MDCOMPACT_LOG_LEVEL" yaml:"logLevel"`
	LogFormat string `envconfig:"MDCOMPACT_LOG_FORMAT" yaml:"logFormat"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Root:        ".",
		Extensions:  []string{".md"},
		SkipDirs:    []string{".git"},
		ReportName:  DefaultReportName,
		ReportLimit: DefaultReportLimit,
		Progress:    true,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load starts from Default, overlays the YAML file at path (if it exists) and
// then the environment. An empty path skips the file.
func Load(path string) (Config, error) {
	c := Default()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304
		switch {
		case err == nil:
			if err := yaml.UnmarshalStrict(data, &c); err != nil {
				return Config{}, fmt.Errorf("unmarshaling config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return Config{}, fmt.Errorf("parsing environment variables: %w", err)
	}

	return c, nil
}

// Normalize resolves Root to a clean absolute path, canonicalises the
// extension list and fills ReportTitle. Extensions keep their case: matching
// is a plain suffix comparison.
func (c *Config) Normalize() error {
	root := strings.TrimSpace(c.Root)
	if root == "" {
		return errors.New("missing required configuration: root / MDCOMPACT_ROOT")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve root %q: %w", root, err)
	}
	c.Root = filepath.Clean(abs)

	c.Extensions = normalizeExtensions(c.Extensions)
	c.SkipDirs = trimAll(c.SkipDirs)
	c.ReportName = strings.TrimSpace(c.ReportName)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))

	if strings.TrimSpace(c.ReportTitle) == "" {
		c.ReportTitle = strings.ToUpper(filepath.Base(c.Root))
	}
	return nil
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if y, e := func() (string, string) {
		if c.Root == "" {
			return "root", "ROOT"
		}
		if len(c.Extensions) == 0 {
			return "extensions", "EXTENSIONS"
		}
		if c.ReportName == "" {
			return "reportName", "REPORT_NAME"
		}
		return "", ""
	}(); y != "" {
		return fmt.Errorf(
			"missing required configuration: %s / %s_%s",
			y,
			envVarPrefix,
			e,
		)
	}

	if c.ReportLimit < 0 {
		return fmt.Errorf("reportLimit must be >= 0, got %d", c.ReportLimit)
	}
	if filepath.IsAbs(c.ReportName) || !filepath.IsLocal(c.ReportName) {
		return fmt.Errorf("reportName %q must be a path inside the root", c.ReportName)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// ReportPath is where the summary is written.
func (c *Config) ReportPath() string {
	return filepath.Join(c.Root, c.ReportName)
}

func normalizeExtensions(exts []string) []string {
	seen := make(map[string]struct{}, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
