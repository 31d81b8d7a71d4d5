// Package sessions computes trading-session status for the dashboard markets.
package sessions

import (
	"errors"
	"fmt"
	"time"
)

// AlwaysOpenZone is the time zone sentinel for markets that never close
const AlwaysOpenZone = "24/7"

var (
	// ErrInvalidMarket is returned for market definitions that cannot be scheduled
	ErrInvalidMarket = errors.New("invalid market definition")
	// ErrMarketNotFound is returned when a market key is not configured
	ErrMarketNotFound = errors.New("market not found")
)

// State is the session state of a market at an instant
type State string

const (
	StateOpen          State = "open"
	StatePreOpen       State = "pre-open"
	StateClosed        State = "closed"
	StateClosedWeekend State = "closed-weekend"
)

// Clock is a local wall-clock time of day
type Clock struct {
	Hour   int `yaml:"hour" json:"hour"`     // Hour (0-23)
	Minute int `yaml:"minute" json:"minute"` // Minute (0-59)
}

func (c Clock) minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Definition is the static description of a tracked market
type Definition struct {
	Key      string `yaml:"key" json:"key"`
	Name     string `yaml:"name" json:"name"`
	Country  string `yaml:"country" json:"country"`
	TimeZone string `yaml:"timezone" json:"timezone"` // IANA zone or AlwaysOpenZone
	Open     *Clock `yaml:"open,omitempty" json:"open,omitempty"`
	Close    *Clock `yaml:"close,omitempty" json:"close,omitempty"`
	Focus    string `yaml:"focus,omitempty" json:"focus,omitempty"`
}

// Market is a validated Definition with its time zone resolved
type Market struct {
	Definition
	loc *time.Location
}

// NewMarket validates a definition and loads its time zone.
// Unknown zones and sessions that do not close after they open are rejected.
func NewMarket(def Definition) (*Market, error) {
	if def.Key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidMarket)
	}

	if def.TimeZone == AlwaysOpenZone {
		return &Market{Definition: def}, nil
	}

	if def.Open == nil || def.Close == nil {
		return nil, fmt.Errorf("%w: %s: open and close times are required", ErrInvalidMarket, def.Key)
	}
	for _, c := range []*Clock{def.Open, def.Close} {
		if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
			return nil, fmt.Errorf("%w: %s: clock %s out of range", ErrInvalidMarket, def.Key, c)
		}
	}
	if def.Close.minutes() <= def.Open.minutes() {
		return nil, fmt.Errorf("%w: %s: close %s must be after open %s", ErrInvalidMarket, def.Key, def.Close, def.Open)
	}

	loc, err := time.LoadLocation(def.TimeZone)
	if err != nil || def.TimeZone == "" || def.TimeZone == "Local" {
		return nil, fmt.Errorf("%w: %s: unknown time zone %q", ErrInvalidMarket, def.Key, def.TimeZone)
	}

	return &Market{Definition: def, loc: loc}, nil
}

// AlwaysOpen reports whether the market trades around the clock
func (m *Market) AlwaysOpen() bool {
	return m.TimeZone == AlwaysOpenZone
}

// Location returns the market's time zone (nil for always-open markets)
func (m *Market) Location() *time.Location {
	return m.loc
}

// SessionStatus is the derived status of one market at one instant.
// NextOpen and NextClose bound the session the countdown refers to: the
// running session when open, otherwise the upcoming one. Both are expressed
// in the display location and are zero for always-open markets.
type SessionStatus struct {
	Key              string    `json:"key"`
	State            State     `json:"state"`
	AlwaysOpen       bool      `json:"always_open"`
	CountdownMinutes int       `json:"countdown_minutes"`
	NextOpen         time.Time `json:"next_open"`
	NextClose        time.Time `json:"next_close"`
}

// Profile selects one of the scheduler variants.
// A nil Display means the caller's (viewer) location is used.
type Profile struct {
	Name                string
	Display             *time.Location
	PreOpen             time.Duration
	SkipWeekendOnReopen bool
}

// DefaultPreOpen is the length of the pre-open window
const DefaultPreOpen = 60 * time.Minute

// FixedProfile reports in a fixed zone and includes the pre-open window
func FixedProfile(display *time.Location) Profile {
	return Profile{
		Name:    "fixed",
		Display: display,
		PreOpen: DefaultPreOpen,
	}
}

// ViewerProfile reports in the viewer's zone without a pre-open window
func ViewerProfile() Profile {
	return Profile{Name: "viewer"}
}

// DisplayLocation resolves the location results are expressed in
func (p Profile) DisplayLocation(viewer *time.Location) *time.Location {
	if p.Display != nil {
		return p.Display
	}
	if viewer != nil {
		return viewer
	}
	return time.UTC
}
