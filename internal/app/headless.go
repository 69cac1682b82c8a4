package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/abhisek/sumclock/internal/adder"
	"github.com/abhisek/sumclock/internal/container"
)

// HeadlessOptions configures RunHeadless.
type HeadlessOptions struct {
	Container *container.Container
	Out       io.Writer

	// Duration stops the run after this long; zero runs until ctx is done.
	Duration time.Duration

	// A and B, when set, are sent as the initial operands.
	A *int
	B *int
}

// RunHeadless drives the container without a terminal UI, printing one line
// per distinct projection. It starts the timer and returns when ctx is done,
// the duration elapses or the container closes.
func RunHeadless(ctx context.Context, opts HeadlessOptions) error {
	sub, unsubscribe := opts.Container.Subscribe()
	defer unsubscribe()

	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	initial := []adder.Action{adder.Start{}}
	if opts.A != nil {
		initial = append(initial, adder.SetA{Value: *opts.A})
	}
	if opts.B != nil {
		initial = append(initial, adder.SetB{Value: *opts.B})
	}
	for _, a := range initial {
		if err := opts.Container.Send(a); err != nil {
			return fmt.Errorf("send %s: %w", a, err)
		}
	}

	var last string
	for {
		select {
		case <-ctx.Done():
			return nil
		case p, ok := <-sub:
			if !ok {
				return nil
			}
			line := FormatProjection(p)
			if line == last {
				continue
			}
			last = line
			if _, err := fmt.Fprintln(opts.Out, line); err != nil {
				return fmt.Errorf("write projection: %w", err)
			}
		}
	}
}

// FormatProjection renders p as a single log-friendly line.
func FormatProjection(p adder.Projection) string {
	timer := "stopped"
	if p.Running {
		timer = "running"
	}
	return fmt.Sprintf("seconds=%s a=%s b=%s a+b=%s timer=%s", p.Seconds, p.A, p.B, p.APlusB, timer)
}
