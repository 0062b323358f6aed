package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diaglens/pkg/cache"
	"github.com/matzehuels/diaglens/pkg/diagram"
	"github.com/matzehuels/diaglens/pkg/dialect"
	"github.com/matzehuels/diaglens/pkg/graph"
	"github.com/matzehuels/diaglens/pkg/metrics"
	"github.com/matzehuels/diaglens/pkg/observability"
	"github.com/matzehuels/diaglens/pkg/rules"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store analysis results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedAnalysis is the cache envelope: everything positional (file path,
// line) is stripped so one entry serves every occurrence of the same
// diagram source under the same configuration.
type cachedAnalysis struct {
	Metrics metrics.Metrics `json:"metrics"`
	Issues  []rules.Issue   `json:"issues"`
}

// Analyze runs the full pipeline for one diagram.
func (r *Runner) Analyze(ctx context.Context, d diagram.Diagram, opts Options) (*Analysis, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	cacheKey := r.analysisKey(d, opts)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached cachedAnalysis
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "analysis")
				return r.restamp(d, cached), nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "analysis")
	}

	result := &Analysis{Diagram: d}

	// Parse and measure.
	parseStart := time.Now()
	res, g := r.parse(ctx, d)
	m := metrics.Compute(g, res)
	if res != nil {
		if w, h, ok := opts.Calibration.Dimensions(d.Type, m); ok {
			m.EstWidth = w
			m.EstHeight = h
			m.HasEstimate = true
		}
	}
	result.Metrics = m
	result.Stats.ParseTime = time.Since(parseStart)

	// Check.
	checkStart := time.Now()
	result.Issues = opts.Registry.Evaluate(&d, m, opts.Config)
	result.Stats.CheckTime = time.Since(checkStart)
	observability.Analysis().OnIssues(ctx, d.FilePath, len(result.Issues))

	r.Logger.Debug("analyzed diagram",
		"file", d.FilePath,
		"line", d.StartLine,
		"dialect", d.Type,
		"nodes", m.NodeCount,
		"edges", m.EdgeCount,
		"issues", len(result.Issues))

	// Cache the result.
	if data, err := json.Marshal(cachedAnalysis{Metrics: m, Issues: stripPositions(result.Issues)}); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.AnalysisTTL)
		observability.Cache().OnCacheSet(ctx, "analysis", len(data))
	}

	return result, nil
}

// parse runs the dialect parser and graph build for one diagram. Unknown
// dialects yield a nil result and an empty graph; this is a normal outcome,
// not an error.
func (r *Runner) parse(ctx context.Context, d diagram.Diagram) (*dialect.Result, *graph.Graph) {
	desc, ok := descriptorFor(d.Type)
	if !ok {
		return nil, dialect.BuildGraph(nil)
	}
	observability.Analysis().OnParseStart(ctx, desc.Name, d.FilePath)
	start := time.Now()
	res := desc.New().Parse(d.Source)
	g := dialect.BuildGraph(res)
	observability.Analysis().OnParseComplete(ctx, desc.Name, d.FilePath, g.NodeCount(), time.Since(start))
	return res, g
}

// analysisKey derives the content-addressed cache key for one diagram
// under the current configuration.
func (r *Runner) analysisKey(d diagram.Diagram, opts Options) string {
	contentHash := cache.Hash([]byte(d.Source))
	cfgData, _ := json.Marshal(struct {
		Config      *rules.Config `json:"config"`
		Calibration any           `json:"calibration"`
	}{opts.Config, opts.Calibration})
	return r.Keyer.AnalysisKey(contentHash, cache.Hash(cfgData))
}

// restamp rebuilds an Analysis from a cache entry, stamping the positional
// fields of the current diagram occurrence back onto each issue.
func (r *Runner) restamp(d diagram.Diagram, cached cachedAnalysis) *Analysis {
	issues := make([]rules.Issue, len(cached.Issues))
	for i, issue := range cached.Issues {
		issue.FilePath = d.FilePath
		issue.Line = d.StartLine
		issues[i] = issue
	}
	return &Analysis{
		Diagram:   d,
		Metrics:   cached.Metrics,
		Issues:    issues,
		CacheInfo: CacheInfo{Hit: true},
	}
}

func stripPositions(issues []rules.Issue) []rules.Issue {
	stripped := make([]rules.Issue, len(issues))
	for i, issue := range issues {
		issue.FilePath = ""
		issue.Line = 0
		stripped[i] = issue
	}
	return stripped
}

// AnalyzeAll analyzes diagrams concurrently with a bounded worker pool and
// returns results in input order. The first error cancels the run.
func (r *Runner) AnalyzeAll(ctx context.Context, diagrams []diagram.Diagram, opts Options) ([]*Analysis, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*Analysis, len(diagrams))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for range opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := r.Analyze(ctx, diagrams[i], opts)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					cancel()
					return
				}
				results[i] = res
			}
		}()
	}

	for i := range diagrams {
		select {
		case jobs <- i:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
