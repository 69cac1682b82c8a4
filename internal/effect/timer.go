// Package effect runs the side effects requested by the reducer. The only
// effect is a periodic timer identified by a token.
package effect

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Token identifies one running timer. A fresh token is minted on every start
// so ticks from a replaced timer can be told apart from the current one.
type Token string

// NewToken returns a random token.
func NewToken() Token {
	return Token(uuid.NewString())
}

// DeliverFunc hands a tick to its consumer. It must return false once ctx is
// done or the consumer is gone; the timer stops when it does.
type DeliverFunc func(ctx context.Context, tok Token) bool

// Handle is a running timer.
type Handle struct {
	Token  Token
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel stops the timer and waits for its goroutine to exit. No tick is
// delivered after Cancel returns. Safe to call more than once.
func (h *Handle) Cancel() {
	h.cancel()
	<-h.done
}

// StartTimer delivers one tick per period until cancelled. Ticks are
// scheduled against the start time, so a slow consumer delays ticks rather
// than dropping them.
func StartTimer(parent context.Context, tok Token, period time.Duration, deliver DeliverFunc) *Handle {
	ctx, cancel := context.WithCancel(parent)
	h := &Handle{Token: tok, cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)

		next := time.Now().Add(period)
		t := time.NewTimer(period)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			// Cancellation wins over a tick that fired at the same time.
			if ctx.Err() != nil {
				return
			}
			if !deliver(ctx, tok) {
				return
			}
			next = next.Add(period)
			t.Reset(time.Until(next))
		}
	}()

	return h
}

// Runner owns at most one running timer.
type Runner struct {
	mu      sync.Mutex
	ctx     context.Context
	current *Handle
}

// NewRunner creates a Runner whose timers stop when ctx is done.
func NewRunner(ctx context.Context) *Runner {
	return &Runner{ctx: ctx}
}

// Start cancels the running timer, if any, then starts a new one under a
// fresh token which it returns.
func (r *Runner) Start(period time.Duration, deliver DeliverFunc) Token {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil {
		r.current.Cancel()
	}
	tok := NewToken()
	r.current = StartTimer(r.ctx, tok, period, deliver)
	return tok
}

// Cancel stops the running timer. It reports whether one was running.
func (r *Runner) Cancel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return false
	}
	r.current.Cancel()
	r.current = nil
	return true
}

// Current returns the token of the running timer, or "" when idle.
func (r *Runner) Current() Token {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return ""
	}
	return r.current.Token
}

// Running reports whether a timer is active.
func (r *Runner) Running() bool {
	return r.Current() != ""
}
