package events

import "time"

// EventType names a session event.
type EventType string

const (
	EventSessionLogin   EventType = "session_login"
	EventSessionSignUp  EventType = "session_signup"
	EventSessionLogout  EventType = "session_logout"
	EventEmailVerified  EventType = "email_verified"
	EventProfileUpdated EventType = "profile_updated"
	EventProfileDeleted EventType = "profile_deleted"
)

// SessionEvents lists the events that only change who is signed in.
var SessionEvents = []EventType{
	EventSessionLogin,
	EventSessionSignUp,
	EventSessionLogout,
	EventEmailVerified,
}

// Event is emitted by a session after a successful mutation.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// ProfileUpdatedPayload lists the fields a profile update touched.
type ProfileUpdatedPayload struct {
	Fields []string `json:"fields"`
}
