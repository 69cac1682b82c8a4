// Package container owns the single adder.State instance. Every action, from
// the user or from the timer, is serialized through one goroutine that runs
// the reducer and executes the commands it returns.
package container

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abhisek/sumclock/internal/adder"
	"github.com/abhisek/sumclock/internal/effect"
)

// ErrClosed is returned when sending to a container that has been torn down.
var ErrClosed = errors.New("container closed")

// Options configures a Container.
type Options struct {
	// Initial is the starting state. The zero value is the usual choice.
	Initial adder.State

	// TimerPeriod overrides the period requested by StartTimer when non-zero.
	TimerPeriod time.Duration

	// OnAction, if set, is called on the loop goroutine after each action is
	// reduced. It must not call back into the container.
	OnAction func(a adder.Action, next adder.State)
}

type envelope struct {
	action adder.Action
	tick   bool         // originated from the timer effect
	token  effect.Token // timer that produced the tick
	reply  chan adder.State
}

// Container is the explicitly constructed, explicitly torn down owner of the
// application state.
type Container struct {
	opts   Options
	inbox  chan envelope
	quit   chan struct{}
	done   chan struct{}
	runner *effect.Runner
	cancel context.CancelFunc

	// timer is the token of the running timer; touched only by the loop.
	timer effect.Token

	mu      sync.RWMutex
	state   adder.State
	subs    map[int]chan adder.Projection
	nextSub int
	closed  bool

	closeOnce sync.Once
}

// New creates a Container and starts its loop.
func New(opts Options) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Container{
		opts:   opts,
		inbox:  make(chan envelope, 16),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		runner: effect.NewRunner(ctx),
		cancel: cancel,
		state:  opts.Initial,
		subs:   make(map[int]chan adder.Projection),
	}
	go c.loop()
	return c
}

// Send enqueues a for processing and returns without waiting for it.
func (c *Container) Send(a adder.Action) error {
	return c.enqueue(envelope{action: a})
}

// Dispatch enqueues a and waits until it has been reduced, returning the
// resulting state.
func (c *Container) Dispatch(ctx context.Context, a adder.Action) (adder.State, error) {
	reply := make(chan adder.State, 1)
	if err := c.enqueue(envelope{action: a, reply: reply}); err != nil {
		return adder.State{}, err
	}
	select {
	case s := <-reply:
		return s, nil
	case <-c.done:
		return adder.State{}, ErrClosed
	case <-ctx.Done():
		return adder.State{}, ctx.Err()
	}
}

func (c *Container) enqueue(env envelope) error {
	select {
	case <-c.quit:
		return ErrClosed
	default:
	}
	select {
	case c.inbox <- env:
		return nil
	case <-c.quit:
		return ErrClosed
	}
}

// State returns a copy of the current state.
func (c *Container) State() adder.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// TimerRunning reports whether a timer effect is active.
func (c *Container) TimerRunning() bool {
	return c.runner.Running()
}

// Subscribe returns a channel carrying the latest projection of the state.
// The current projection is available immediately. A slow reader only ever
// sees the newest value. The channel is closed by the returned func or by
// Close.
func (c *Container) Subscribe() (<-chan adder.Projection, func()) {
	ch := make(chan adder.Projection, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.state.Project()
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

// Close ends the session: the timer is cancelled, subscribers are released
// and the loop stops. Safe to call more than once.
func (c *Container) Close() error {
	c.closeOnce.Do(func() {
		_, _ = c.Dispatch(context.Background(), adder.End{})

		close(c.quit)
		<-c.done

		c.runner.Cancel()
		c.cancel()

		c.mu.Lock()
		c.closed = true
		for id, ch := range c.subs {
			delete(c.subs, id)
			close(ch)
		}
		c.mu.Unlock()
	})
	return nil
}

func (c *Container) loop() {
	defer close(c.done)
	for {
		select {
		case <-c.quit:
			return
		case env := <-c.inbox:
			c.handle(env)
		}
	}
}

func (c *Container) handle(env envelope) {
	if env.tick && (c.timer == "" || env.token != c.timer) {
		// Tick from a timer that was cancelled or replaced.
		if env.reply != nil {
			env.reply <- c.State()
		}
		return
	}

	next, cmd := adder.Reduce(c.State(), env.action)

	c.mu.Lock()
	c.state = next
	c.mu.Unlock()

	c.run(cmd)
	c.publish(next.Project())

	if c.opts.OnAction != nil {
		c.opts.OnAction(env.action, next)
	}
	if env.reply != nil {
		env.reply <- next
	}
}

func (c *Container) run(cmd adder.Command) {
	switch cmd := cmd.(type) {
	case adder.StartTimer:
		period := cmd.Period
		if c.opts.TimerPeriod > 0 {
			period = c.opts.TimerPeriod
		}
		c.timer = c.runner.Start(period, c.deliverTick)
	case adder.CancelTimer:
		c.runner.Cancel()
		c.timer = ""
	}
}

func (c *Container) deliverTick(ctx context.Context, tok effect.Token) bool {
	select {
	case c.inbox <- envelope{action: adder.TimerTicked{}, tick: true, token: tok}:
		return true
	case <-ctx.Done():
		return false
	case <-c.quit:
		return false
	}
}

func (c *Container) publish(p adder.Projection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- p:
		default:
			// Drop the stale value so the newest one fits.
			select {
			case <-ch:
			default:
			}
			ch <- p
		}
	}
}
