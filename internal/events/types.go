// Package events provides the in-process event bus used to fan out refreshes.
package events

import "time"

// EventType represents different event types
type EventType string

const (
	SessionsRefreshed   EventType = "SESSIONS_REFRESHED"
	SessionStateChanged EventType = "SESSION_STATE_CHANGED"
	NewsReloaded        EventType = "NEWS_RELOADED"
	ErrorOccurred       EventType = "ERROR_OCCURRED"
)

// Event represents a system event
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Module    string    `json:"module"`
	Data      EventData `json:"data,omitempty"`
}
