package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diaglens/pkg/config"
	"github.com/matzehuels/diaglens/pkg/extract"
	"github.com/matzehuels/diaglens/pkg/pipeline"
	"github.com/matzehuels/diaglens/pkg/report"
	"github.com/matzehuels/diaglens/pkg/rules"
)

// ErrIssuesFound is returned by check when the analyzed diagrams contain
// issues at or above the --fail-on severity. The main package maps it to
// a distinct exit code so CI can tell findings apart from tool failures.
var ErrIssuesFound = errors.New("issues found")

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		format      string
		profile     string
		configPath  string
		failOn      string
		noCache     bool
		refresh     bool
		workers     int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Analyze diagrams in files or directories",
		Long: `Check scans the given markdown and diagram files, analyzes every
embedded diagram, and reports readability issues.

With no paths, the current directory is scanned recursively. The exit
code is 0 when the tree is clean, 1 when issues at or above the
--fail-on severity exist, and 2 on operational errors.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := report.ValidateFormat(format); err != nil {
				return err
			}
			failSeverity, ok := rules.ParseSeverity(failOn)
			if !ok {
				return fmt.Errorf("invalid --fail-on severity: %q (must be info, warning, or error)", failOn)
			}

			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}

			resolved, err := c.resolveConfig(configPath, profile)
			if err != nil {
				return err
			}

			diagrams, err := extract.Paths(paths)
			if err != nil {
				return err
			}
			if len(diagrams) == 0 {
				printInfo("No diagrams found")
				return nil
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			spin := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Analyzing %d diagrams...", len(diagrams)))
			spin.Start()
			results, err := runner.AnalyzeAll(cmd.Context(), diagrams, pipeline.Options{
				Config:      resolved.Rules,
				Calibration: resolved.Calibration,
				Refresh:     refresh,
				Workers:     workers,
				Logger:      c.Logger,
			})
			if err != nil {
				spin.StopWithError("Analysis failed")
				return err
			}
			spin.Stop()
			prog.done(fmt.Sprintf("Analyzed %d diagrams", len(results)))

			if interactive {
				if err := browseIssues(results); err != nil {
					return err
				}
			} else {
				reporter, err := report.New(format)
				if err != nil {
					return err
				}
				if err := reporter.Write(os.Stdout, results); err != nil {
					return err
				}
			}

			summary := report.Summarize(results)
			if format == report.FormatConsole && !interactive {
				printStats(summary.Diagrams, summary.Issues, summary.Cached)
			}

			if exceedsFailSeverity(results, failSeverity) {
				return ErrIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", report.FormatConsole, "output format (console, json, junit, github)")
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "viewport profile (default, narrow, wide, presentation, or from config)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file path (default: nearest .diaglens.toml)")
	cmd.Flags().StringVar(&failOn, "fail-on", string(rules.SeverityError), "lowest severity that fails the run")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the analysis result cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and re-analyze everything")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of concurrent analyses (default 4)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse issues in an interactive TUI")

	return cmd
}

// resolveConfig loads the config file (explicit path or nearest
// .diaglens.toml) and resolves it with the profile override.
func (c *CLI) resolveConfig(configPath, profile string) (*config.Resolved, error) {
	var file *config.File
	switch {
	case configPath != "":
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		file = loaded
	default:
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		if path, ok := config.Find(cwd); ok {
			loaded, err := config.Load(path)
			if err != nil {
				return nil, err
			}
			c.Logger.Debug("loaded config", "path", path)
			file = loaded
		}
	}
	return file.Resolve(config.Options{Profile: profile})
}

// exceedsFailSeverity reports whether any issue reaches the fail-on bar.
func exceedsFailSeverity(results []*pipeline.Analysis, failOn rules.Severity) bool {
	for _, res := range results {
		for _, issue := range res.Issues {
			if issue.Severity.Rank() >= failOn.Rank() {
				return true
			}
		}
	}
	return false
}
