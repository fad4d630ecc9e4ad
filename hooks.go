package censusbot

import "sync"

// EditEvent describes an article the bot changed.
type EditEvent struct {
	Title      string
	CensusName string
	Tasks      []string
	Summary    string
	// DryRun is set when the change was planned but not saved.
	DryRun bool
}

// Hook function types for article events
type (
	// EditedHook is called after an article is saved, or planned in a dry run
	EditedHook func(event EditEvent)

	// SkippedHook is called when an article is left alone
	SkippedHook func(title, reason string)

	// FailedHook is called when fetching or saving an article fails
	FailedHook func(title string, err error)
)

// hooks manages event callbacks for processed articles
type hooks struct {
	mu        sync.RWMutex
	onEdited  []EditedHook
	onSkipped []SkippedHook
	onFailed  []FailedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnEdited registers a callback for edited articles.
func (b *Bot) OnEdited(fn EditedHook) {
	b.hooks.mu.Lock()
	defer b.hooks.mu.Unlock()
	b.hooks.onEdited = append(b.hooks.onEdited, fn)
}

// OnSkipped registers a callback for skipped articles.
func (b *Bot) OnSkipped(fn SkippedHook) {
	b.hooks.mu.Lock()
	defer b.hooks.mu.Unlock()
	b.hooks.onSkipped = append(b.hooks.onSkipped, fn)
}

// OnFailed registers a callback for articles that could not be fetched or saved.
func (b *Bot) OnFailed(fn FailedHook) {
	b.hooks.mu.Lock()
	defer b.hooks.mu.Unlock()
	b.hooks.onFailed = append(b.hooks.onFailed, fn)
}

func (h *hooks) edited(event EditEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onEdited {
		fn(event)
	}
}

func (h *hooks) skipped(title, reason string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onSkipped {
		fn(title, reason)
	}
}

func (h *hooks) failed(title string, err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onFailed {
		fn(title, err)
	}
}
