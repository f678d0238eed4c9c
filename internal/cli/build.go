package cli

import (
	"fmt"

	"github.com/ppiankov/moneyblueprint/internal/model"
	"github.com/ppiankov/moneyblueprint/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type buildFlags struct {
	reportID     string
	newID        bool
	tone         string
	instructions []string
	format       string
	out          string
	noCache      bool
}

func newBuildCmd(a *app) *cobra.Command {
	f := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Build the prompt payload for one wizard file",
		Long: `Build reads one wizard export (JSON or YAML, "-" for JSON on stdin)
and writes the prompt payload:
- JSON (default): the full payload with messages, insights and fingerprint
- markdown: a human-readable preview for review
- openai: a chat completion request body, ready to send yourself

Example:
  blueprint build answers.json
  blueprint build answers.yaml --report-id MB-1042 --format markdown
  blueprint build answers.json --new-id --tone "warm and direct" -o payload.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, a, f, args[0])
		},
	}

	cmd.Flags().StringVar(&f.reportID, "report-id", "", "report reference to embed in the payload")
	cmd.Flags().BoolVar(&f.newID, "new-id", false, "assign a random UUID report reference when --report-id is empty")
	cmd.Flags().StringVar(&f.tone, "tone", "", "tone for the system message (overrides prompt.tone)")
	cmd.Flags().StringArrayVar(&f.instructions, "instruction", nil, "extra system instruction line (repeatable)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: json, markdown, openai (overrides output.format)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "skip duplicate detection")

	return cmd
}

func runBuild(cmd *cobra.Command, a *app, f *buildFlags, path string) error {
	cfg := applyPromptFlags(*a.cfg, f.tone, f.instructions, f.format, f.noCache)

	p := pipeline.NewPipeline(&cfg, a.logger)
	res, err := p.BuildFile(cmd.Context(), path, pipeline.BuildOptions{
		ReportID: f.reportID,
		NewID:    f.newID,
	})
	if err != nil {
		return fmt.Errorf("build %s: %w", path, err)
	}

	if res.Duplicate {
		a.logger.Info("payload matches an earlier build",
			zap.String("source", res.Source),
			zap.String("duplicate_of", res.DuplicateOf),
		)
	}

	if f.out == "" {
		return p.Renderer().Render(cmd.OutOrStdout(), res.Payload, cfg.Output.Format)
	}

	if err := p.Renderer().RenderFile(f.out, res.Payload, cfg.Output.Format); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", f.out)
	return nil
}

// applyPromptFlags returns a copy of cfg with command-line overrides applied
func applyPromptFlags(cfg model.Config, tone string, instructions []string, format string, noCache bool) model.Config {
	if tone != "" {
		cfg.Prompt.Tone = tone
	}
	if len(instructions) > 0 {
		merged := make([]string, 0, len(cfg.Prompt.SystemInstructions)+len(instructions))
		merged = append(merged, cfg.Prompt.SystemInstructions...)
		cfg.Prompt.SystemInstructions = append(merged, instructions...)
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	return cfg
}
