package events

import "time"

// EventData is the interface that all event data types must implement
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// SessionsRefreshedData contains data for SessionsRefreshed events
type SessionsRefreshedData struct {
	EvaluatedAt time.Time `json:"evaluated_at"`
	Markets     int       `json:"markets"`
	OpenMarkets int       `json:"open_markets"`
}

// EventType returns the event type for SessionsRefreshedData
func (d *SessionsRefreshedData) EventType() EventType {
	return SessionsRefreshed
}

// SessionStateChangedData contains data for SessionStateChanged events
type SessionStateChangedData struct {
	Market string    `json:"market"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	At     time.Time `json:"at"`
}

// EventType returns the event type for SessionStateChangedData
func (d *SessionStateChangedData) EventType() EventType {
	return SessionStateChanged
}

// NewsReloadedData contains data for NewsReloaded events
type NewsReloadedData struct {
	Items    int  `json:"items"`
	Degraded bool `json:"degraded"`
}

// EventType returns the event type for NewsReloadedData
func (d *NewsReloadedData) EventType() EventType {
	return NewsReloaded
}

// ErrorEventData contains data for ErrorOccurred events
type ErrorEventData struct {
	Error   string                 `json:"error"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// EventType returns the event type for ErrorEventData
func (d *ErrorEventData) EventType() EventType {
	return ErrorOccurred
}
