package scheduler

import (
	"time"

	"github.com/aristath/decisionlens/internal/events"
	"github.com/aristath/decisionlens/internal/modules/sessions"
	"github.com/rs/zerolog"
)

// SessionRefreshJob re-evaluates every session and announces the refresh so
// connected dashboards can redraw their countdowns. State transitions since
// the previous run are emitted individually.
type SessionRefreshJob struct {
	sessions   SessionEvaluator
	emitter    EventEmitter
	now        func() time.Time
	lastStates map[string]sessions.State
	log        zerolog.Logger
}

// NewSessionRefreshJob creates a new session refresh job
func NewSessionRefreshJob(evaluator SessionEvaluator, emitter EventEmitter, log zerolog.Logger) *SessionRefreshJob {
	return &SessionRefreshJob{
		sessions:   evaluator,
		emitter:    emitter,
		now:        time.Now,
		lastStates: make(map[string]sessions.State),
		log:        log.With().Str("job", "session_refresh").Logger(),
	}
}

// Name returns the job name
func (j *SessionRefreshJob) Name() string {
	return "session_refresh"
}

// Run evaluates the sessions and emits SessionsRefreshed.
// Not safe for concurrent Run calls; the scheduler never overlaps them.
func (j *SessionRefreshJob) Run() error {
	now := j.now()
	markets := j.sessions.Markets()

	open := 0
	for _, m := range markets {
		st := j.sessions.Evaluate(now, m, time.UTC)
		if st.State == sessions.StateOpen {
			open++
		}

		prev, seen := j.lastStates[m.Key]
		j.lastStates[m.Key] = st.State
		if !seen || prev == st.State {
			continue
		}

		j.log.Info().
			Str("market", m.Key).
			Str("from", string(prev)).
			Str("to", string(st.State)).
			Msg("Session state changed")

		j.emitter.EmitTyped("sessions", &events.SessionStateChangedData{
			Market: m.Key,
			From:   string(prev),
			To:     string(st.State),
			At:     now,
		})
	}

	j.emitter.EmitTyped("sessions", &events.SessionsRefreshedData{
		EvaluatedAt: now,
		Markets:     len(markets),
		OpenMarkets: open,
	})

	j.log.Debug().Int("open_markets", open).Msg("Sessions refreshed")
	return nil
}
