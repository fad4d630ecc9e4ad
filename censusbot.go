// Package censusbot updates the population figures of United States place
// articles from census tables.
//
// A Bot takes article titles one at a time. Each title is resolved to a
// census record, the article is fetched and checked, the population
// templates are planned and, when something changed, the article is saved
// with an edit summary. Every outcome is reported to a progress.Reporter so
// later runs skip titles that are already done.
package censusbot

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/scaledbot/censusbot/pkg/census"
	"github.com/scaledbot/censusbot/pkg/planner"
	"github.com/scaledbot/censusbot/pkg/resolve"
)

// ArticleSource reads and writes article wikitext.
type ArticleSource interface {
	// Fetch returns the current text of title.
	Fetch(ctx context.Context, title string) (string, error)
	// Save replaces the text of title, recording summary as the edit comment.
	Save(ctx context.Context, title, text, summary string) error
}

// Bot runs the census update over article titles. A Bot processes one title
// at a time; Run must not be called concurrently.
type Bot struct {
	index    *census.Index
	source   ArticleSource
	config   *config
	resolver *resolve.Resolver
	planner  *planner.Planner
	logger   *zerolog.Logger
	hooks    *hooks

	mu    sync.Mutex
	stats Stats
}

// New creates a Bot over index that edits articles through source.
func New(index *census.Index, source ArticleSource, opts ...Option) (*Bot, error) {
	if index == nil {
		return nil, fmt.Errorf("census index is required")
	}
	if source == nil {
		return nil, fmt.Errorf("article source is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	b := &Bot{
		index:  index,
		source: source,
		config: cfg,
		logger: cfg.logger,
		hooks:  newHooks(),
		stats:  newStats(),
	}
	b.resolver = resolve.New(index,
		resolve.WithDesignators(cfg.designators...),
		resolve.WithThreshold(cfg.fuzzyThreshold),
		resolve.WithStrict(cfg.strict),
		resolve.WithLogger(cfg.logger),
	)
	b.planner = planner.New(planner.Config{
		BotName:      cfg.botName,
		CensusYear:   cfg.censusYear,
		EstimateYear: cfg.estimateYear,
		CensusRef:    cfg.censusRef,
		EstimateRef:  cfg.estimateRef,
		Logger:       cfg.logger,
	})
	return b, nil
}

// Batch returns the ledger batch the bot reports under.
func (b *Bot) Batch() string {
	return b.config.batch
}

// DryRun reports whether saving is disabled.
func (b *Bot) DryRun() bool {
	return b.config.dryRun
}

// Resolver returns the resolver the bot matches titles with.
func (b *Bot) Resolver() *resolve.Resolver {
	return b.resolver
}

// Planner returns the planner the bot edits with.
func (b *Bot) Planner() *planner.Planner {
	return b.planner
}

// Stats returns the totals accumulated over every Run and Process call.
func (b *Bot) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats.clone()
}
