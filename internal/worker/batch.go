package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/moneyblueprint/internal/pipeline"
	"go.uber.org/zap"
)

// Builder builds a prompt payload from one wizard file
type Builder interface {
	BuildFile(ctx context.Context, path string, opts pipeline.BuildOptions) (*pipeline.BuildResult, error)
}

// BuildJob builds one wizard file
type BuildJob struct {
	Position int
	Path     string
	Options  pipeline.BuildOptions
	Builder  Builder
}

// Index implements Job
func (j *BuildJob) Index() int { return j.Position }

// Execute implements Job
func (j *BuildJob) Execute(ctx context.Context) Result {
	res, err := j.Builder.BuildFile(ctx, j.Path, j.Options)
	return &BuildOutcome{
		Position: j.Position,
		Path:     j.Path,
		Result:   res,
		Error:    err,
	}
}

// BuildOutcome is the result of a BuildJob
type BuildOutcome struct {
	Position int
	Path     string
	Result   *pipeline.BuildResult
	Error    error
}

// Index implements Result
func (o *BuildOutcome) Index() int { return o.Position }

// Err implements Result
func (o *BuildOutcome) Err() error { return o.Error }

// BatchProcessor builds many wizard files concurrently
type BatchProcessor struct {
	builder     Builder
	concurrency int
	options     pipeline.BuildOptions
	dedup       bool
	logger      *zap.Logger
}

// NewBatchProcessor creates a new batch processor. With dedup off every
// outcome is reported as unique, whatever the builder said.
func NewBatchProcessor(builder Builder, concurrency int, opts pipeline.BuildOptions, dedup bool, logger *zap.Logger) *BatchProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchProcessor{
		builder:     builder,
		concurrency: concurrency,
		options:     opts,
		dedup:       dedup,
		logger:      logger,
	}
}

// ProcessFiles builds every path and returns outcomes in input order.
// Files whose payload fingerprint matches an earlier file in the same batch
// are marked as duplicates of that file.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*BuildOutcome {
	outcomes := make([]*BuildOutcome, len(paths))
	if len(paths) == 0 {
		return outcomes
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, path := range paths {
			job := &BuildJob{Position: i, Path: path, Options: b.options, Builder: b.builder}
			if !pool.Submit(job) {
				return
			}
		}
	}()

	for r := range pool.Results() {
		outcome := r.(*BuildOutcome)
		outcomes[outcome.Position] = outcome
		if outcome.Error != nil {
			b.logger.Warn("build failed", zap.String("path", outcome.Path), zap.Error(outcome.Error))
		}
	}

	// Jobs never started because the context was cancelled
	for i, o := range outcomes {
		if o == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			outcomes[i] = &BuildOutcome{Position: i, Path: paths[i], Error: err}
		}
	}

	if b.dedup {
		settleDuplicates(outcomes)
	} else {
		clearDuplicates(outcomes)
	}
	return outcomes
}

// settleDuplicates reassigns in-batch duplicate status by input order.
// Workers claim fingerprints in completion order, so without this the
// "original" of a duplicate pair would depend on scheduling.
func settleDuplicates(outcomes []*BuildOutcome) {
	inBatch := make(map[string]bool, len(outcomes))
	for _, o := range outcomes {
		inBatch[o.Path] = true
	}

	first := make(map[string]string)
	for _, o := range outcomes {
		if o.Error != nil || o.Result == nil || o.Result.Payload == nil {
			continue
		}
		res := o.Result
		fp := res.Payload.Fingerprint

		if src, ok := first[fp]; ok {
			res.Duplicate = true
			res.DuplicateOf = src
			continue
		}
		first[fp] = res.Source

		// Claimed by a later file in this batch; a match from an earlier run stands
		if res.Duplicate && inBatch[res.DuplicateOf] {
			res.Duplicate = false
			res.DuplicateOf = ""
		}
	}
}

func clearDuplicates(outcomes []*BuildOutcome) {
	for _, o := range outcomes {
		if o.Result != nil {
			o.Result.Duplicate = false
			o.Result.DuplicateOf = ""
		}
	}
}

// ReadPathsFromFile reads wizard file paths from a list file (one per line).
// Blank lines and # comments are skipped; repeated paths are kept once.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
