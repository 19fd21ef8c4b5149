// Package batch drives the engine over many files: parallel fan-out,
// per-file failure isolation and the reconciled summary reporters consume.
package batch

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"chromalint/internal/config"
	"chromalint/internal/engine"
	"chromalint/internal/health"
	"chromalint/internal/models"
)

// Runner analyzes batches of files. One engine is created per worker, so
// runs are parallel without sharing parser state.
type Runner struct {
	cfg   *config.Config
	cache *resultCache
}

func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		cfg:   cfg,
		cache: newResultCache(),
	}
}

// fileOutcome carries one file's result or failure back to the collector.
type fileOutcome struct {
	index   int
	result  *models.AnalysisResult
	failure *models.FileFailure
}

// Run analyzes every file and returns all results, all failures and the
// summary. An error on one file never aborts the rest; only context
// cancellation stops the run early. The summary always reconciles:
// TotalFiles = AnalyzedFiles + FailedFiles, and a file whose source could
// not be parsed counts as failed, not as a zero-complexity pass.
func (r *Runner) Run(ctx context.Context, files []string) (*models.BatchResult, error) {
	start := time.Now()

	outcomes := make([]fileOutcome, len(files))
	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	workers := r.cfg.Analysis.MaxWorkers
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			eng := engine.New()
			for idx := range jobs {
				outcome := r.analyzeOne(eng, files[idx])
				outcome.index = idx
				mu.Lock()
				outcomes[idx] = outcome
				mu.Unlock()
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for i := range files {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := r.collect(files, outcomes)
	result.Summary.Duration = time.Since(start).String()
	return result, nil
}

func (r *Runner) analyzeOne(eng *engine.Engine, path string) fileOutcome {
	info, err := os.Stat(path)
	if err != nil {
		return failure(path, err)
	}
	if maxKB := r.cfg.Files.MaxFileSize; maxKB > 0 && info.Size() > int64(maxKB)*1024 {
		return failure(path, fmt.Errorf("file exceeds %d KB size limit", maxKB))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return failure(path, err)
	}

	key := r.cache.key(path, content)
	if cached, ok := r.cache.get(key); ok {
		return fileOutcome{result: cached}
	}

	res, err := eng.AnalyzeFile(string(content), path)
	if err != nil {
		return failure(path, err)
	}

	r.cache.put(key, res)
	return fileOutcome{result: res}
}

func failure(path string, err error) fileOutcome {
	return fileOutcome{failure: &models.FileFailure{File: path, Error: err.Error()}}
}

// collect assembles results in input order and computes the summary over
// clean results only. Files whose result carries parse failures are kept in
// Results (their diagnostics are worth showing) but counted as failures.
func (r *Runner) collect(files []string, outcomes []fileOutcome) *models.BatchResult {
	out := &models.BatchResult{
		Health: make(map[string]models.HealthScoreBreakdown),
	}

	totalFunctions := 0
	complexitySum := 0
	healthSum := 0.0
	clean := 0

	for _, oc := range outcomes {
		if oc.failure != nil {
			out.Failures = append(out.Failures, *oc.failure)
			continue
		}
		res := oc.result
		out.Results = append(out.Results, res)

		if res.HasParseFailure() {
			out.Failures = append(out.Failures, models.FileFailure{
				File:  res.File,
				Error: fmt.Sprintf("%d syntax error(s)", countParseFailures(res)),
			})
			continue
		}

		hb := health.Compose(res, r.cfg.Health)
		out.Health[res.File] = hb

		clean++
		totalFunctions += len(res.Functions)
		complexitySum += res.Metrics.CyclomaticComplexity
		healthSum += hb.Overall

		if maxComplexity(res) > r.cfg.Analysis.ComplexityLimit {
			out.Summary.FilesOverLimit++
		}
	}

	out.Summary.TotalFiles = len(files)
	out.Summary.AnalyzedFiles = clean
	out.Summary.FailedFiles = len(files) - clean
	out.Summary.TotalFunctions = totalFunctions
	if totalFunctions > 0 {
		out.Summary.AverageComplexity = float64(complexitySum) / float64(totalFunctions)
	}
	if clean > 0 {
		out.Summary.HealthScore = healthSum / float64(clean)
	} else if len(files) == 0 {
		out.Summary.HealthScore = 100
	}

	return out
}

func countParseFailures(res *models.AnalysisResult) int {
	n := 0
	for _, d := range res.Diagnostics {
		if d.Kind == models.DiagParseFailure {
			n++
		}
	}
	return n
}

func maxComplexity(res *models.AnalysisResult) int {
	m := 0
	for _, fn := range res.Functions {
		if fn.CyclomaticComplexity > m {
			m = fn.CyclomaticComplexity
		}
	}
	return m
}
