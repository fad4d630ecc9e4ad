package censusbot

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/scaledbot/censusbot/pkg/edits"
	"github.com/scaledbot/censusbot/pkg/errors"
	"github.com/scaledbot/censusbot/pkg/logging"
	"github.com/scaledbot/censusbot/pkg/planner"
	"github.com/scaledbot/censusbot/pkg/progress"
	"github.com/scaledbot/censusbot/pkg/resolve"
	"github.com/scaledbot/censusbot/pkg/wikitext"
)

// Result is everything decided for one title.
type Result struct {
	Title      string             `json:"title" yaml:"title"`
	Resolution resolve.Resolution `json:"resolution" yaml:"resolution"`
	Plan       planner.Plan       `json:"plan" yaml:"plan"`
	Outcome    progress.Outcome   `json:"outcome" yaml:"outcome"`
	// Summary is the edit comment, set when the article changed.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	// Original and Text are the article before and after planning.
	Original string `json:"-" yaml:"-"`
	Text     string `json:"-" yaml:"-"`
	Saved    bool   `json:"saved" yaml:"saved"`
}

// Run processes titles in order. Titles the ledger already marks done in the
// bot's batch are skipped unless WithForce was given. Cancellation is checked
// between titles; a canceled run returns the stats so far and an error
// matching errors.ErrCanceled.
func (b *Bot) Run(ctx context.Context, titles []string) (Stats, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	run := newStats()
	for _, title := range titles {
		if err := ctx.Err(); err != nil {
			return run, stderrors.Join(errors.ErrCanceled, err)
		}

		if !b.config.force && b.config.reporter.Done(title, b.config.batch) {
			b.logger.Debug().Str("title", title).Msg("Already processed, skipping")
			run.AlreadyDone++
			b.mu.Lock()
			b.stats.AlreadyDone++
			b.mu.Unlock()
			continue
		}

		res, err := b.Process(ctx, title)
		if errors.IsCanceled(err) {
			return run, err
		}
		if err != nil {
			b.logger.Error().Err(err).Str("title", title).Msg("Could not record outcome")
		}
		run.record(res.Outcome)
	}

	b.logger.Info().
		Int("processed", run.Processed).
		Int("edited", run.Edited).
		Int("skipped", run.Skipped).
		Int("failed", run.Failed).
		Int("already_done", run.AlreadyDone).
		Msg("Run complete")
	return run, nil
}

// Process handles one title regardless of the ledger. Per-article problems
// are reported in the Result outcome, not as errors. The returned error is
// non-nil only when ctx was canceled or the outcome could not be recorded.
func (b *Bot) Process(ctx context.Context, title string) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, b.logger)
	ctx = logging.WithTitle(ctx, title)
	ctx = logging.WithBatch(ctx, b.config.batch)

	res := &Result{Title: title}
	fetch := resolve.Once(func() (string, error) {
		return b.source.Fetch(ctx, title)
	})

	resolution, err := b.resolver.Resolve(title, fetch)
	res.Resolution = resolution
	if err != nil {
		return res, err
	}
	if !resolution.Found {
		return res, b.finish(ctx, res, errors.SkipNotFound())
	}

	ctx = logging.WithCensusName(ctx, resolution.Key)
	ctx = logging.WithStage(ctx, string(resolution.Stage))
	logger := logging.FromContext(ctx)
	logger.Info().Msg("Processing")

	text, err := fetch()
	if err != nil {
		if ctx.Err() != nil {
			return res, stderrors.Join(errors.ErrCanceled, err)
		}
		return res, b.finish(ctx, res, errors.WrapArticle("fetch", title, err))
	}
	res.Original = text

	doc := wikitext.Parse(text)
	if err := b.planner.WithLogger(logger).Precheck(text, doc); err != nil {
		return res, b.finish(ctx, res, err)
	}

	res.Plan = b.planner.WithLogger(logger).Plan(resolution.Record, doc)
	if !res.Plan.Modified {
		return res, b.finish(ctx, res, errors.Skip(errors.ErrNoChanges))
	}

	tasks := append([]string{edits.Matched(resolution.Key)}, res.Plan.Tasks...)
	res.Text = doc.String()
	res.Summary = edits.Comment(tasks)

	if !b.config.dryRun {
		if err := b.source.Save(ctx, title, res.Text, res.Summary); err != nil {
			if ctx.Err() != nil {
				return res, stderrors.Join(errors.ErrCanceled, err)
			}
			return res, b.finish(ctx, res, errors.WrapArticle("save", title, err))
		}
		res.Saved = true
	}

	res.Outcome = progress.Edited(tasks, resolution.Key)
	logger.Info().Str("summary", res.Summary).Bool("dry_run", b.config.dryRun).Msg("Edited")
	b.hooks.edited(EditEvent{
		Title:      title,
		CensusName: resolution.Key,
		Tasks:      tasks,
		Summary:    res.Summary,
		DryRun:     b.config.dryRun,
	})
	return res, b.report(res)
}

// finish records a skip or failure for res.
func (b *Bot) finish(ctx context.Context, res *Result, cause error) error {
	logger := logging.FromContext(ctx)
	if reason, ok := errors.IsSkip(cause); ok {
		res.Outcome = progress.Skipped(reason)
		logger.Info().Str("reason", reason).Msg("Skipping")
		b.hooks.skipped(res.Title, reason)
	} else {
		res.Outcome = progress.Failed(cause.Error())
		logger.Warn().Err(cause).Msg("Article failed")
		b.hooks.failed(res.Title, cause)
	}
	return b.report(res)
}

func (b *Bot) report(res *Result) error {
	b.mu.Lock()
	b.stats.record(res.Outcome)
	b.mu.Unlock()

	if b.config.dryRun {
		return nil
	}
	if err := b.config.reporter.Report(res.Title, b.config.batch, res.Outcome); err != nil {
		return fmt.Errorf("recording outcome for %s: %w", res.Title, err)
	}
	return nil
}
