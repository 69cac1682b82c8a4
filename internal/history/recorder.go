// Package history records session lifecycle events in the event log.
package history

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sumclock/internal/adder"
	"github.com/abhisek/sumclock/internal/store"
)

// Recorder writes the start and end of one session. A Recorder with a nil
// repo records nothing.
type Recorder struct {
	repo      store.EventRepo
	sessionID string
	started   time.Time
	finished  bool
}

// NewRecorder creates a Recorder for a new session with a fresh ID.
func NewRecorder(repo store.EventRepo) *Recorder {
	return &Recorder{repo: repo, sessionID: uuid.New().String()}
}

// SessionID returns the session UUID.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Begin records the session start.
func (r *Recorder) Begin(ctx context.Context) error {
	r.started = time.Now()
	if r.repo == nil {
		return nil
	}
	err := r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: r.sessionID,
		Action:    store.ActionStart,
	})
	if err != nil {
		return fmt.Errorf("record session start: %w", err)
	}
	return nil
}

// Finish records the session end with the final state. Only the first call
// writes.
func (r *Recorder) Finish(ctx context.Context, final adder.State) error {
	if r.finished {
		return nil
	}
	r.finished = true
	if r.repo == nil {
		return nil
	}

	var duration int
	if !r.started.IsZero() {
		duration = int(time.Since(r.started).Seconds())
	}
	err := r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:    r.sessionID,
		Action:       store.ActionEnd,
		Seconds:      final.Seconds,
		A:            final.A,
		B:            final.B,
		APlusB:       final.APlusB,
		DurationSecs: duration,
	})
	if err != nil {
		return fmt.Errorf("record session end: %w", err)
	}
	return nil
}

// Warn prints a non-fatal recording failure to stderr.
func Warn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}
