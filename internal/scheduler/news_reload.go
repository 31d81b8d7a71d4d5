package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/decisionlens/internal/events"
	"github.com/rs/zerolog"
)

const newsReloadTimeout = 30 * time.Second

// NewsReloadJob refreshes the news feed from its source
type NewsReloadJob struct {
	feed    NewsReloader
	emitter EventEmitter
	log     zerolog.Logger
}

// NewNewsReloadJob creates a new news reload job
func NewNewsReloadJob(feed NewsReloader, emitter EventEmitter, log zerolog.Logger) *NewsReloadJob {
	return &NewsReloadJob{
		feed:    feed,
		emitter: emitter,
		log:     log.With().Str("job", "news_reload").Logger(),
	}
}

// Name returns the job name
func (j *NewsReloadJob) Name() string {
	return "news_reload"
}

// Run reloads the feed. A failed reload leaves the feed empty and is
// reported, but the event is still emitted so clients redraw.
func (j *NewsReloadJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), newsReloadTimeout)
	defer cancel()

	err := j.feed.Reload(ctx)

	j.emitter.EmitTyped("news", &events.NewsReloadedData{
		Items:    j.feed.Len(),
		Degraded: err != nil,
	})

	if err != nil {
		j.emitter.EmitError("news", err, map[string]interface{}{"job": j.Name()})
		return fmt.Errorf("news reload degraded: %w", err)
	}
	return nil
}
