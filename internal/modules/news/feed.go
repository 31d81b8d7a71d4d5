package news

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aristath/decisionlens/internal/utils"
	"github.com/rs/zerolog"
)

// Feed holds the most recently loaded news items
type Feed struct {
	source Source
	mu     sync.RWMutex
	items  []Item
	log    zerolog.Logger
}

// NewFeed creates an empty feed reading from source
func NewFeed(source Source, log zerolog.Logger) *Feed {
	return &Feed{
		source: source,
		items:  []Item{},
		log:    log.With().Str("component", "news").Str("source", source.Name()).Logger(),
	}
}

// Reload replaces the items from the source. Any failure leaves the feed
// empty; the error is returned for reporting only.
func (f *Feed) Reload(ctx context.Context) error {
	defer utils.OperationTimer("news_reload", f.log)()

	items, err := f.load(ctx)
	if err != nil {
		f.log.Warn().Err(err).Msg("News unavailable, showing empty feed")
		items = []Item{}
	}

	f.mu.Lock()
	f.items = items
	f.mu.Unlock()

	if err == nil {
		f.log.Info().Int("items", len(items)).Msg("News reloaded")
	}
	return err
}

func (f *Feed) load(ctx context.Context) ([]Item, error) {
	data, err := f.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	var raw []Item
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	items := make([]Item, len(raw))
	for i, it := range raw {
		items[i] = it.Normalize()
	}
	return items, nil
}

// Items returns a snapshot of the loaded items
func (f *Feed) Items() []Item {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Item, len(f.items))
	copy(out, f.items)
	return out
}

// Len returns the number of loaded items
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.items)
}
