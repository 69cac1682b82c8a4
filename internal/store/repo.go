package store

import (
	"context"
	"time"
)

// Session lifecycle actions recorded in the event log.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures a session start or end. The counter fields are
// only meaningful on end.
type SessionEventData struct {
	SessionID    string
	Action       string
	Seconds      int
	A            int
	B            int
	APlusB       int
	DurationSecs int
}

// SessionSummary is one session folded from its start and end events.
type SessionSummary struct {
	SessionID string
	StartedAt time.Time
	EndedAt   time.Time // zero if the session never recorded an end
	Seconds   int
	A         int
	B         int
	APlusB    int
	Duration  time.Duration
}

// Completed reports whether the session recorded an end event.
func (s SessionSummary) Completed() bool {
	return !s.EndedAt.IsZero()
}

// EventRepo provides append and query access to session events.
type EventRepo interface {
	// AppendSessionEvent records a session lifecycle event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// RecentSessions returns up to limit sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error)

	// Reset deletes every recorded event.
	Reset(ctx context.Context) error
}
