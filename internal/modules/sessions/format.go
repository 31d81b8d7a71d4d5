package sessions

import (
	"fmt"
	"time"
)

// Placeholder shown for times that do not apply
const Placeholder = "—"

// SessionView is the display-ready form of a SessionStatus
type SessionView struct {
	Key              string     `json:"key"`
	Title            string     `json:"title"`
	Country          string     `json:"country"`
	State            State      `json:"state"`
	Label            string     `json:"label"`
	Indicator        string     `json:"indicator"`
	Countdown        string     `json:"countdown"`
	CountdownMinutes int        `json:"countdown_minutes"`
	OpensAt          string     `json:"opens_at"`
	ClosesAt         string     `json:"closes_at"`
	NextOpen         *time.Time `json:"next_open,omitempty"`
	NextClose        *time.Time `json:"next_close,omitempty"`
	Focus            string     `json:"focus"`
}

// HumanDuration renders minutes as "45m" or "6h 0m"
func HumanDuration(mins int) string {
	if mins < 0 {
		mins = 0
	}
	h := mins / 60
	r := mins % 60
	if h <= 0 {
		return fmt.Sprintf("%dm", r)
	}
	return fmt.Sprintf("%dh %dm", h, r)
}

// FormatClock12 renders the wall clock of t in its own location, e.g. "9:30 PM"
func FormatClock12(t time.Time) string {
	return t.Format("3:04 PM")
}

// FormatNow renders the dashboard header timestamp, e.g. "Oct 19, 2026 • 6:30 PM PKT"
func FormatNow(now time.Time, loc *time.Location) string {
	local := now.In(loc)
	return fmt.Sprintf("%s • %s %s", local.Format("Jan 02, 2006"), FormatClock12(local), local.Format("MST"))
}

// ShortCountry abbreviates the country label for compact widgets
func ShortCountry(country string) string {
	if country == "USA" {
		return "US"
	}
	return country
}

// Present turns a status into its widget view. Times are rendered in the
// location the status was evaluated for.
func Present(st SessionStatus, m *Market) SessionView {
	v := SessionView{
		Key:              m.Key,
		Title:            m.Name,
		Country:          ShortCountry(m.Country),
		State:            st.State,
		CountdownMinutes: st.CountdownMinutes,
		OpensAt:          Placeholder,
		ClosesAt:         Placeholder,
		Focus:            m.Focus,
	}

	switch st.State {
	case StateOpen:
		v.Label = "Open"
		v.Indicator = "open"
		v.Countdown = "Closes in " + HumanDuration(st.CountdownMinutes)
	case StatePreOpen:
		v.Label = "Pre-Open"
		v.Indicator = "pre"
		v.Countdown = "Opens in " + HumanDuration(st.CountdownMinutes)
	case StateClosedWeekend:
		v.Label = "Closed (Weekend)"
		v.Indicator = "closed"
		v.Countdown = "Opens in " + HumanDuration(st.CountdownMinutes)
	default:
		v.Label = "Closed"
		v.Indicator = "closed"
		v.Countdown = "Opens in " + HumanDuration(st.CountdownMinutes)
	}

	if st.AlwaysOpen {
		v.Countdown = "24/7"
		v.CountdownMinutes = 0
		return v
	}

	nextOpen, nextClose := st.NextOpen, st.NextClose
	v.OpensAt = FormatClock12(nextOpen)
	v.ClosesAt = FormatClock12(nextClose)
	v.NextOpen = &nextOpen
	v.NextClose = &nextClose
	return v
}
