package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/moneyblueprint/internal/pipeline"
	"github.com/ppiankov/moneyblueprint/internal/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type batchFlags struct {
	listFile    string
	concurrency int
	outputDir   string
	format      string
	newID       bool
	timeout     time.Duration
	noCache     bool
}

func newBatchCmd(a *app) *cobra.Command {
	f := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch [files...]",
		Short: "Build prompt payloads for many wizard files in parallel",
		Long: `Batch builds many wizard exports concurrently:
- Read paths from arguments and/or a list file (one per line)
- Build payloads in parallel with a configurable worker count
- Skip files whose payload fingerprint matches an earlier file
- Write one output file per unique payload

Example:
  blueprint batch exports/*.json
  blueprint batch --list wizards.txt --concurrency 8 --output-dir ./payloads
  blueprint batch exports/*.yaml --format openai --new-id`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, a, f, args)
		},
	}

	cmd.Flags().StringVar(&f.listFile, "list", "", "file listing wizard paths, one per line")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	cmd.Flags().StringVar(&f.outputDir, "output-dir", "./blueprint-payloads", "output directory for payloads")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: json, markdown, openai (overrides output.format)")
	cmd.Flags().BoolVar(&f.newID, "new-id", false, "assign each payload a random UUID report reference")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 5*time.Minute, "total timeout for the batch")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "skip duplicate detection")

	return cmd
}

func runBatch(cmd *cobra.Command, a *app, f *batchFlags, args []string) error {
	paths := append([]string(nil), args...)
	if f.listFile != "" {
		listed, err := worker.ReadPathsFromFile(f.listFile)
		if err != nil {
			return fmt.Errorf("read list: %w", err)
		}
		paths = append(paths, listed...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no wizard files given (pass paths or --list)")
	}

	cfg := applyPromptFlags(*a.cfg, "", nil, f.format, f.noCache)
	workers := cfg.Concurrency.Workers
	if f.concurrency > 0 {
		workers = f.concurrency
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
	defer cancel()

	if err := os.MkdirAll(f.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Money Blueprint Batch\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Files:        %d\n", len(paths))
	fmt.Fprintf(stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(stderr, "  Format:       %s\n", cfg.Output.Format)
	fmt.Fprintf(stderr, "  Output dir:   %s\n", f.outputDir)
	fmt.Fprintf(stderr, "\n")

	p := pipeline.NewPipeline(&cfg, a.logger)
	processor := worker.NewBatchProcessor(p, workers, pipeline.BuildOptions{NewID: f.newID}, cfg.Cache.Enabled, a.logger)
	outcomes := processor.ProcessFiles(ctx, paths)

	var written, duplicates, failures int
	used := make(map[string]bool)

	for _, o := range outcomes {
		if o.Error != nil {
			failures++
			fmt.Fprintf(stderr, "✗ %s: %v\n", o.Path, o.Error)
			continue
		}
		if o.Result.Duplicate {
			duplicates++
			fmt.Fprintf(stderr, "= %s (duplicate of %s)\n", o.Path, o.Result.DuplicateOf)
			continue
		}

		out := filepath.Join(f.outputDir, outputName(o.Path, cfg.Output.Format, used))
		if err := p.Renderer().RenderFile(out, o.Result.Payload, cfg.Output.Format); err != nil {
			failures++
			fmt.Fprintf(stderr, "✗ %s: %v\n", o.Path, err)
			continue
		}
		written++
		fmt.Fprintf(stderr, "✓ %s → %s (%d risk flags)\n", o.Path, out, len(o.Result.Payload.RiskFlags))
	}

	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Batch Complete\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Total:       %d files\n", len(outcomes))
	fmt.Fprintf(stderr, "  Written:     %d\n", written)
	fmt.Fprintf(stderr, "  Duplicates:  %d\n", duplicates)
	fmt.Fprintf(stderr, "  Failures:    %d\n", failures)
	fmt.Fprintf(stderr, "\n")

	a.logger.Debug("batch finished",
		zap.Int("total", len(outcomes)),
		zap.Int("written", written),
		zap.Int("duplicates", duplicates),
		zap.Int("failures", failures),
	)

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed", failures, len(outcomes))
	}
	return nil
}

// outputName derives a unique file name from the input file's base name
func outputName(path, format string, used map[string]bool) string {
	base := filepath.Base(path)
	stem := sanitizeFilename(strings.TrimSuffix(base, filepath.Ext(base)))
	if stem == "" || stem == "." {
		stem = "payload"
	}

	name := stem + pipeline.Extension(format)
	for i := 2; used[name]; i++ {
		name = fmt.Sprintf("%s-%d%s", stem, i, pipeline.Extension(format))
	}
	used[name] = true
	return name
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// sanitizeFilename makes s safe to use as a file name
func sanitizeFilename(s string) string {
	s = filenameReplacer.Replace(s)
	if r := []rune(s); len(r) > 100 {
		s = string(r[:100])
	}
	return s
}
