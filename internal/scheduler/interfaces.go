package scheduler

import (
	"context"
	"time"

	"github.com/aristath/decisionlens/internal/events"
	"github.com/aristath/decisionlens/internal/modules/sessions"
)

// SessionEvaluator is the part of the session service the refresh job needs
type SessionEvaluator interface {
	Markets() []*sessions.Market
	Evaluate(now time.Time, m *sessions.Market, viewer *time.Location) sessions.SessionStatus
}

// NewsReloader reloads the news feed
type NewsReloader interface {
	Reload(ctx context.Context) error
	Len() int
}

// EventEmitter defines the contract for event emission
type EventEmitter interface {
	EmitTyped(module string, data events.EventData)
	EmitError(module string, err error, context map[string]interface{})
}
