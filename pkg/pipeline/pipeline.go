// Package pipeline provides the core analysis pipeline for Diaglens.
//
// This package implements the complete detect → parse → measure → check
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline runs five stages per diagram:
//
//  1. Detect: Classify the dialect from the first non-blank line
//  2. Parse: Extract nodes, edges, and dialect detail
//  3. Measure: Build the canonical graph and compute structural metrics
//  4. Estimate: Approximate rendered pixel dimensions
//  5. Check: Evaluate the rule registry and collect issues
//
// Every stage is a pure transformation, so a full per-diagram result is
// cached under the hash of the source text plus the resolved configuration.
//
// # Usage
//
// Create a Runner and analyze diagrams:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Config: cfg.Rules, Calibration: cfg.Calibration}
//	results, err := runner.AnalyzeAll(ctx, diagrams, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diaglens/pkg/diagram"
	"github.com/matzehuels/diaglens/pkg/estimate"
	"github.com/matzehuels/diaglens/pkg/metrics"
	"github.com/matzehuels/diaglens/pkg/rules"
)

// DefaultWorkers is the default number of concurrent diagram analyses.
// Diagrams share no mutable state, so the bound only limits memory.
const DefaultWorkers = 4

// Options contains all configuration for one analysis run.
type Options struct {
	// Config is the resolved rule and viewport configuration.
	Config *rules.Config `json:"config,omitempty"`

	// Calibration tunes the dimension estimator.
	Calibration estimate.Calibration `json:"calibration,omitzero"`

	// Workers bounds concurrent diagram analyses in AnalyzeAll.
	Workers int `json:"workers,omitempty"`

	// Refresh bypasses the cache and recomputes every diagram.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Registry *rules.Registry `json:"-"`
	Logger   *log.Logger     `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == nil {
		o.Config = rules.DefaultConfig()
	}
	if o.Calibration == (estimate.Calibration{}) {
		o.Calibration = estimate.DefaultCalibration()
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Registry == nil {
		o.Registry = rules.Default()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Analysis is the result of one diagram's full pipeline run.
type Analysis struct {
	Diagram diagram.Diagram `json:"diagram" bson:"diagram"`
	Metrics metrics.Metrics `json:"metrics" bson:"metrics"`
	Issues  []rules.Issue   `json:"issues" bson:"issues"`

	// Stats contains timing information.
	Stats Stats `json:"stats" bson:"stats"`

	// CacheInfo tracks whether the result came from cache.
	CacheInfo CacheInfo `json:"cache_info" bson:"cache_info"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ParseTime time.Duration `json:"parse_time" bson:"parse_time"`
	CheckTime time.Duration `json:"check_time" bson:"check_time"`
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	Hit bool `json:"hit" bson:"hit"` // Whether the full result came from cache
}

// MaxSeverity returns the highest severity across all issues, or false
// when the diagram has none.
func (a *Analysis) MaxSeverity() (rules.Severity, bool) {
	var best rules.Severity
	for _, issue := range a.Issues {
		if issue.Severity.Rank() > best.Rank() {
			best = issue.Severity
		}
	}
	return best, best != ""
}
