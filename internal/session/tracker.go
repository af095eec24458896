package session

import (
	"errors"
	"time"
)

// Tracker performs the read-modify-write cycle on the session state for each
// logged event. Interleaved writers can lose an update; trail assumes one
// short-lived invocation at a time.
type Tracker struct {
	Store Store
	Now   func() time.Time
}

// NewTracker returns a Tracker over store reading the time from now. A nil
// now uses the wall clock.
func NewTracker(store Store, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{Store: store, Now: now}
}

// CurrentID returns the current session identifier, creating and persisting
// a new session when none exists.
func (t *Tracker) CurrentID() (string, error) {
	s, err := t.Store.Load()
	if err == nil {
		return s.CurrentSessionID, nil
	}
	if !errors.Is(err, ErrNoSession) {
		return "", err
	}
	s = NewState(t.Now())
	if err := t.Store.Save(s); err != nil {
		return "", err
	}
	return s.CurrentSessionID, nil
}

// Touch refreshes last_activity. It does nothing when no session exists.
func (t *Tracker) Touch() error {
	s, err := t.Store.Load()
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil
		}
		return err
	}
	s.LastActivity = t.Now().UTC()
	return t.Store.Save(s)
}

// Idle reports whether the current session has been inactive for longer than
// timeout. Without a session there is nothing to be idle from.
func (t *Tracker) Idle(timeout time.Duration) (bool, error) {
	s, err := t.Store.Load()
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return false, nil
		}
		return false, err
	}
	return IsIdle(s.LastActivity, t.Now(), timeout), nil
}
