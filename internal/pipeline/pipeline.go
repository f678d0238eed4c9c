package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ppiankov/moneyblueprint/internal/cache"
	"github.com/ppiankov/moneyblueprint/internal/model"
	"github.com/ppiankov/moneyblueprint/internal/prompt"
	"go.uber.org/zap"
)

// Pipeline orchestrates load, prompt assembly and duplicate detection
type Pipeline struct {
	loader   *Loader
	builder  *prompt.Builder
	renderer *Renderer
	cache    cache.Cache // nil when caching is disabled
	logger   *zap.Logger
	config   *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.New(cfg.Cache.TTL, cfg.Cache.Dir)
	}

	return &Pipeline{
		loader:   NewLoader(DefaultMaxBytes),
		builder:  prompt.NewBuilder(nil),
		renderer: NewRenderer(cfg.LLM),
		cache:    c,
		logger:   logger,
		config:   cfg,
	}
}

// BuildOptions are per-build overrides
type BuildOptions struct {
	// ReportID is used verbatim when set
	ReportID string

	// NewID assigns a random UUID when ReportID is empty
	NewID bool
}

// BuildResult contains one assembled payload
type BuildResult struct {
	Source  string
	Payload *model.Payload

	// Duplicate is true when an identical fingerprint was already built;
	// DuplicateOf names the source that built it first
	Duplicate   bool
	DuplicateOf string
}

// BuildFile loads a wizard file and builds its prompt payload
func (p *Pipeline) BuildFile(ctx context.Context, path string, opts BuildOptions) (*BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loaded, err := p.loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	return p.Build(ctx, loaded.Source, loaded.Raw, opts)
}

// Build assembles the payload for already decoded wizard data
func (p *Pipeline) Build(ctx context.Context, source string, raw any, opts BuildOptions) (*BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reportID := opts.ReportID
	if reportID == "" && opts.NewID {
		reportID = uuid.NewString()
	}

	payload, err := p.builder.Build(prompt.Request{
		WizardData:         raw,
		ReportID:           reportID,
		Tone:               p.config.Prompt.Tone,
		SystemInstructions: p.config.Prompt.SystemInstructions,
	})
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	result := &BuildResult{
		Source:  source,
		Payload: payload,
	}

	if p.cache != nil {
		key := cache.CacheKey(payload.Fingerprint)
		existing, claimed, err := p.cache.Claim(key, []byte(source), p.config.Cache.TTL)
		if err != nil {
			p.logger.Warn("fingerprint cache unavailable", zap.String("source", source), zap.Error(err))
		} else if !claimed {
			result.Duplicate = true
			result.DuplicateOf = string(existing)
		}
	}

	p.logger.Debug("built prompt payload",
		zap.String("source", source),
		zap.Stringp("report_id", payload.ReportID),
		zap.Int("summary_bullets", len(payload.SummaryBullets)),
		zap.Int("risk_flags", len(payload.RiskFlags)),
		zap.Bool("duplicate", result.Duplicate),
	)

	return result, nil
}

// Renderer returns the output renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}
