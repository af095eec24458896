// Package session tracks the current shell session and groups timeline
// events into session spans.
package session

import (
	"fmt"
	"time"
)

// State is the single persisted record of the session currently being
// stamped onto new events. It has no notion of a session having ended.
type State struct {
	CurrentSessionID string    `json:"current_session_id"`
	SessionStart     time.Time `json:"session_start"`
	LastActivity     time.Time `json:"last_activity"`
}

// NewID derives a session identifier from now. One session per distinct
// second is enough because a session is created at most once per shell start.
func NewID(now time.Time) string {
	return fmt.Sprintf("session_%d", now.Unix())
}

// NewState returns a fresh state for a session starting at now.
func NewState(now time.Time) *State {
	now = now.UTC()
	return &State{
		CurrentSessionID: NewID(now),
		SessionStart:     now,
		LastActivity:     now,
	}
}

// IsIdle reports whether more than timeout has elapsed since lastActivity.
// An elapsed time exactly equal to timeout is not idle.
func IsIdle(lastActivity, now time.Time, timeout time.Duration) bool {
	return now.Sub(lastActivity) > timeout
}
