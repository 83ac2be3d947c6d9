package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"claimlens/internal/engine"
	"claimlens/internal/model"
)

// SourceResult is the outcome of loading one source in a batch
type SourceResult struct {
	Ref    string
	Report *model.Report
	Error  error
}

// Err satisfies the pool Result interface
func (r *SourceResult) Err() error { return r.Error }

// BatchProcessor loads many sources concurrently. Each source gets its own
// engine so datasets never mix; fetches to the same host share a rate limit.
type BatchProcessor struct {
	cfg     *model.Config
	log     *logrus.Logger
	workers int
	limiter *Limiter
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(cfg *model.Config, log *logrus.Logger, workers int, requestsPerSecond float64, burst int) *BatchProcessor {
	if workers <= 0 {
		workers = cfg.Concurrency.Workers
	}
	return &BatchProcessor{
		cfg:     cfg,
		log:     log,
		workers: workers,
		limiter: NewLimiter(requestsPerSecond, burst),
	}
}

// ProcessFile reads source refs from a file (one per line, blank lines and
// #-comments skipped) and loads them all.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*SourceResult, error) {
	refs, err := readRefs(path)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no source refs in %s", path)
	}
	return b.ProcessRefs(ctx, refs), nil
}

// ProcessRefs loads the given sources concurrently and returns one result
// per source. Result order is not the input order.
func (b *BatchProcessor) ProcessRefs(ctx context.Context, refs []string) []*SourceResult {
	pool := NewPool(b.workers)
	pool.Start()

	// Cancelling the caller's context stops in-flight loads
	stop := context.AfterFunc(ctx, pool.Shutdown)
	defer stop()

	for _, ref := range refs {
		pool.Submit(&loadJob{ref: ref, processor: b})
	}

	var results []*SourceResult
	for _, r := range pool.Wait() {
		results = append(results, r.(*SourceResult))
	}
	return results
}

// loadJob loads one source through a dedicated engine
type loadJob struct {
	ref       string
	processor *BatchProcessor
}

func (j *loadJob) Execute(ctx context.Context) Result {
	b := j.processor

	if err := b.limiter.Wait(ctx, j.ref); err != nil {
		return &SourceResult{Ref: j.ref, Error: fmt.Errorf("rate limit: %w", err)}
	}

	e := engine.New(b.cfg, b.log)
	defer e.Close()

	if err := e.Load(ctx, j.ref); err != nil {
		return &SourceResult{Ref: j.ref, Error: err}
	}
	return &SourceResult{Ref: j.ref, Report: e.BuildReport()}
}

func readRefs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open refs file: %w", err)
	}
	defer f.Close()

	var refs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		refs = append(refs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read refs file: %w", err)
	}
	return refs, nil
}
