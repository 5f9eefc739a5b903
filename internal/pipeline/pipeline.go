package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ppiankov/veracity/internal/llm"
	"github.com/ppiankov/veracity/internal/lookup"
	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/score"
	"github.com/ppiankov/veracity/internal/signal"
	"github.com/ppiankov/veracity/internal/worker"
)

// Pipeline orchestrates the evaluation of a source: fetch, score, rate, explain.
// It holds read-only handles only, so concurrent Evaluate calls are safe.
type Pipeline struct {
	source    ContentSource
	providers []signal.Provider // one per dimension, in dimension order
	scorer    *score.Scorer
	logger    *slog.Logger
	now       func() time.Time
	closers   []func()
}

// Option customizes a Pipeline
type Option func(*options)

type options struct {
	source    ContentSource
	providers map[model.Dimension]signal.Provider
	logger    *slog.Logger
	weights   *model.Weights
	now       func() time.Time
}

// WithProvider replaces the provider built from configuration for p.Dimension()
func WithProvider(p signal.Provider) Option {
	return func(o *options) {
		o.providers[p.Dimension()] = p
	}
}

// WithFetcher replaces the HTTP fetcher
func WithFetcher(source ContentSource) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithWeights overrides the configured weight vector
func WithWeights(w model.Weights) Option {
	return func(o *options) {
		o.weights = &w
	}
}

// WithClock sets the time source used for Result.EvaluatedAt
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New creates a pipeline from configuration. Collaborators not injected
// through options are built from cfg. Invalid weights fail here with
// score.ErrInvalidWeights.
func New(cfg *model.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	o := options{providers: make(map[model.Dimension]signal.Provider)}
	for _, opt := range opts {
		opt(&o)
	}

	weights := cfg.Weights
	if o.weights != nil {
		weights = *o.weights
	}
	scorer, err := score.NewScorer(weights)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		source: o.source,
		scorer: scorer,
		logger: o.logger,
		now:    o.now,
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	if p.now == nil {
		p.now = time.Now
	}

	if p.source == nil {
		fetcher := NewFetcher(cfg.HTTP)
		p.source = fetcher
		p.closers = append(p.closers, fetcher.Close)
	}

	for d := range o.providers {
		if !d.Valid() {
			return nil, fmt.Errorf("provider for unknown dimension %q", d)
		}
	}

	for _, d := range model.Dimensions {
		provider, ok := o.providers[d]
		if !ok {
			provider, err = p.buildProvider(d, cfg)
			if err != nil {
				p.Close()
				return nil, fmt.Errorf("%s provider: %w", d, err)
			}
		}
		p.providers = append(p.providers, provider)
	}

	return p, nil
}

// buildProvider creates the provider for d from configuration and registers
// any connection pool it owns for Close
func (p *Pipeline) buildProvider(d model.Dimension, cfg *model.Config) (signal.Provider, error) {
	switch d {
	case model.DimensionDomainTrust:
		table, err := signal.NewAuthorityTable(cfg.Authority)
		if err != nil {
			return nil, err
		}
		return signal.NewDomainTrust(table), nil

	case model.DimensionRelevance:
		similarity, err := llm.NewSimilarity(llm.ConfigFromModel(cfg.Models.Similarity, cfg.HTTP))
		if err != nil {
			return nil, err
		}
		p.own(similarity)
		return signal.NewRelevance(similarity), nil

	case model.DimensionFactCheck:
		if !cfg.Lookups.FactCheck.Enabled {
			return signal.NewFactCheck(nil), nil
		}
		checker := lookup.NewGoogleFactChecker(cfg.Lookups.FactCheck, cfg.HTTP)
		p.own(checker)
		return signal.NewFactCheck(checker), nil

	case model.DimensionBias:
		classifier, err := llm.NewSentimentClassifier(llm.ConfigFromModel(cfg.Models.Sentiment, cfg.HTTP))
		if err != nil {
			return nil, err
		}
		p.own(classifier)
		return signal.NewBias(classifier), nil

	case model.DimensionCitation:
		if !cfg.Lookups.Citation.Enabled {
			return signal.NewCitation(nil), nil
		}
		counter := lookup.NewScholarCitations(cfg.Lookups.Citation, cfg.HTTP)
		p.own(counter)
		return signal.NewCitation(counter), nil
	}

	return nil, fmt.Errorf("unknown dimension %q", d)
}

func (p *Pipeline) own(v any) {
	if c, ok := v.(interface{ CloseIdleConnections() }); ok {
		p.closers = append(p.closers, c.CloseIdleConnections)
	}
}

// Close releases the connection pools of the collaborators the pipeline built
func (p *Pipeline) Close() {
	for _, c := range p.closers {
		c()
	}
}

// Weights returns the weight vector in use
func (p *Pipeline) Weights() model.Weights {
	return p.scorer.Weights()
}

// Evaluate scores req.URL against req.Query. Fetch and provider failures are
// absorbed into defaults; the error is non-nil only when a provider breaks
// its contract (score.ErrScoreOutOfRange) or panics.
func (p *Pipeline) Evaluate(ctx context.Context, req model.Request) (*model.Result, error) {
	started := time.Now()

	page := p.source.Fetch(ctx, req.URL)
	if !page.OK {
		p.logger.Warn("fetch failed, scoring without page text", "url", req.URL, "error", page.Error)
		page.Text = ""
	}

	outcomes, err := p.runProviders(ctx, signal.Input{Query: req.Query, URL: req.URL, Text: page.Text})
	if err != nil {
		return nil, err
	}

	var sub model.SubScores
	weights := p.scorer.Weights()
	signals := make([]model.Signal, 0, len(model.Dimensions))
	for _, d := range model.Dimensions {
		out := outcomes[d]
		if err := score.CheckRange(d, out.Score); err != nil {
			return nil, fmt.Errorf("provider %s: %w", d, err)
		}
		if out.Defaulted {
			p.logger.Debug("provider used default", "dimension", d, "score", out.Score, "cause", out.Detail)
		}

		sub.Set(d, out.Score)
		signals = append(signals, model.Signal{
			Dimension: d,
			Score:     out.Score,
			Weight:    weights.Get(d),
			Defaulted: out.Defaulted,
			Detail:    out.Detail,
		})
	}

	verdict, err := p.scorer.Calculate(sub)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("evaluation complete",
		"url", req.URL,
		"validity", verdict.ValidityScore,
		"stars", verdict.Stars.Score,
		"elapsed", time.Since(started))

	return &model.Result{
		Query:         req.Query,
		URL:           req.URL,
		SubScores:     sub,
		ValidityScore: verdict.ValidityScore,
		Stars:         verdict.Stars,
		Explanation:   verdict.Explanation,
		Signals:       signals,
		Source:        page,
		EvaluatedAt:   p.now().UTC(),
	}, nil
}

// providerJob runs one provider on the worker pool
type providerJob struct {
	provider signal.Provider
	input    signal.Input
}

type providerResult struct {
	dimension model.Dimension
	outcome   signal.Outcome
}

func (r *providerResult) GetError() error { return nil }

func (j *providerJob) Execute(ctx context.Context) worker.Result {
	return &providerResult{
		dimension: j.provider.Dimension(),
		outcome:   j.provider.Score(ctx, j.input),
	}
}

// runProviders fans the providers out and collects their outcomes by dimension
func (p *Pipeline) runProviders(ctx context.Context, in signal.Input) (map[model.Dimension]signal.Outcome, error) {
	pool := worker.NewPool(ctx, len(p.providers))
	for _, provider := range p.providers {
		pool.Submit(&providerJob{provider: provider, input: in})
	}

	outcomes := make(map[model.Dimension]signal.Outcome, len(p.providers))
	for _, r := range pool.Wait() {
		if err := r.GetError(); err != nil {
			return nil, err
		}
		res := r.(*providerResult)
		outcomes[res.dimension] = res.outcome
	}
	return outcomes, nil
}
