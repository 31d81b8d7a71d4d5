package sessions

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// SessionService evaluates session status for a fixed set of markets
type SessionService struct {
	markets []*Market
	byKey   map[string]*Market
	profile Profile
	log     zerolog.Logger
}

// NewSessionService validates every definition and builds the service.
// Any invalid definition fails the whole table.
func NewSessionService(defs []Definition, profile Profile, log zerolog.Logger) (*SessionService, error) {
	s := &SessionService{
		markets: make([]*Market, 0, len(defs)),
		byKey:   make(map[string]*Market, len(defs)),
		profile: profile,
		log:     log.With().Str("component", "sessions").Logger(),
	}

	for _, def := range defs {
		m, err := NewMarket(def)
		if err != nil {
			return nil, err
		}
		if _, dup := s.byKey[m.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidMarket, m.Key)
		}
		s.markets = append(s.markets, m)
		s.byKey[m.Key] = m
	}

	s.log.Debug().
		Int("markets", len(s.markets)).
		Str("profile", profile.Name).
		Dur("pre_open", profile.PreOpen).
		Msg("Session service initialized")

	return s, nil
}

// Profile returns the active scheduler profile
func (s *SessionService) Profile() Profile {
	return s.profile
}

// Markets returns the configured markets in definition order
func (s *SessionService) Markets() []*Market {
	return s.markets
}

// Market looks up a market by key
func (s *SessionService) Market(key string) (*Market, error) {
	m, ok := s.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMarketNotFound, key)
	}
	return m, nil
}

// Evaluate computes the status of m at now. viewer is only consulted when
// the profile has no fixed display location.
func (s *SessionService) Evaluate(now time.Time, m *Market, viewer *time.Location) SessionStatus {
	display := s.profile.DisplayLocation(viewer)
	status := SessionStatus{Key: m.Key}

	if m.AlwaysOpen() {
		status.State = StateOpen
		status.AlwaysOpen = true
		return status
	}

	today := ResolveLocalCalendarDate(now, m.loc)

	if IsWeekend(now, m.loc) {
		openAt, closeAt := m.nextWeekdaySession(today)
		status.State = StateClosedWeekend
		status.CountdownMinutes = minutesUntil(now, openAt)
		status.NextOpen = openAt.In(display)
		status.NextClose = closeAt.In(display)
		return status
	}

	openAt, closeAt := m.sessionOn(today, 0)
	preOpenStart := openAt.Add(-s.profile.PreOpen)

	switch {
	case !now.Before(openAt) && now.Before(closeAt):
		status.State = StateOpen
		status.CountdownMinutes = minutesUntil(now, closeAt)
	case s.profile.PreOpen > 0 && !now.Before(preOpenStart) && now.Before(openAt):
		status.State = StatePreOpen
		status.CountdownMinutes = minutesUntil(now, openAt)
	default:
		status.State = StateClosed
		if !now.Before(openAt) {
			// Today's session is over. The next open is the following
			// calendar day, weekend or not, unless the profile opts in to
			// skipping weekends.
			if s.profile.SkipWeekendOnReopen {
				openAt, closeAt = m.nextWeekdaySession(today)
			} else {
				openAt, closeAt = m.sessionOn(today, 1)
			}
		}
		status.CountdownMinutes = minutesUntil(now, openAt)
	}

	status.NextOpen = openAt.In(display)
	status.NextClose = closeAt.In(display)
	return status
}

// EvaluateAll evaluates every market, soonest next open first.
// Always-open markets sort last.
func (s *SessionService) EvaluateAll(now time.Time, viewer *time.Location) []SessionStatus {
	type scored struct {
		status SessionStatus
		score  float64
	}

	items := make([]scored, 0, len(s.markets))
	for _, m := range s.markets {
		st := s.Evaluate(now, m, viewer)
		items = append(items, scored{status: st, score: s.openScore(now, m, st)})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score < items[j].score
	})

	out := make([]SessionStatus, len(items))
	for i, it := range items {
		out[i] = it.status
	}
	return out
}

// GetStatus evaluates a single market by key
func (s *SessionService) GetStatus(key string, now time.Time, viewer *time.Location) (*SessionStatus, error) {
	m, err := s.Market(key)
	if err != nil {
		return nil, err
	}
	st := s.Evaluate(now, m, viewer)
	return &st, nil
}

// OpenCount returns how many markets are open at now
func (s *SessionService) OpenCount(now time.Time) int {
	count := 0
	for _, m := range s.markets {
		if s.Evaluate(now, m, time.UTC).State == StateOpen {
			count++
		}
	}
	return count
}

// openScore is the number of minutes until the market next opens. A market
// that is already open is scored by the open of its following session.
func (s *SessionService) openScore(now time.Time, m *Market, st SessionStatus) float64 {
	if st.AlwaysOpen {
		return math.Inf(1)
	}
	if st.State == StateOpen {
		next, _ := m.sessionOn(ResolveLocalCalendarDate(now, m.loc), 1)
		return float64(minutesUntil(now, next))
	}
	return float64(minutesUntil(now, st.NextOpen))
}

// sessionOn projects the open and close of the session offset days after day
func (m *Market) sessionOn(day LocalDateTime, offset int) (time.Time, time.Time) {
	// Noon avoids any DST ambiguity while normalising the calendar date.
	date := time.Date(day.Year, day.Month, day.Day+offset, 12, 0, 0, 0, time.UTC)
	openAt := ProjectLocalTimeToInstant(date.Year(), date.Month(), date.Day(), m.Open.Hour, m.Open.Minute, m.loc)
	closeAt := ProjectLocalTimeToInstant(date.Year(), date.Month(), date.Day(), m.Close.Hour, m.Close.Minute, m.loc)
	return openAt, closeAt
}

// nextWeekdaySession returns the first session after day that does not fall
// on a weekend in the market's zone.
func (m *Market) nextWeekdaySession(day LocalDateTime) (time.Time, time.Time) {
	for offset := 1; offset <= 7; offset++ {
		openAt, closeAt := m.sessionOn(day, offset)
		if !IsWeekend(openAt, m.loc) {
			return openAt, closeAt
		}
	}
	return m.sessionOn(day, 1)
}
