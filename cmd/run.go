package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abhisek/sumclock/internal/adder"
	"github.com/abhisek/sumclock/internal/app"
	"github.com/abhisek/sumclock/internal/config"
	"github.com/abhisek/sumclock/internal/container"
	"github.com/abhisek/sumclock/internal/history"
	"github.com/abhisek/sumclock/internal/store"
)

// runApp builds the container, records the session and runs either the TUI
// or, without a terminal, the headless printer.
func runApp(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var opts container.Options
	opts.TimerPeriod = cfg.TickPeriod
	if cfg.DebugLog != "" {
		f, err := tea.LogToFile(cfg.DebugLog, "sumclock")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		opts.OnAction = func(a adder.Action, s adder.State) {
			log.Printf("action=%s seconds=%d a=%d b=%d a+b=%d timer=%s", a, s.Seconds, s.A, s.B, s.APlusB, s.Timer)
		}
	}

	// History is best effort: the app runs without it.
	var repo store.EventRepo
	if cfg.History {
		st, err := openStore(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "History unavailable:", err)
		} else {
			defer st.Close()
			repo = st.EventRepo()
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rec := history.NewRecorder(repo)
	history.Warn(rec.Begin(ctx))

	c := container.New(opts)
	runErr := run(ctx, cmd, cfg, c, repo)

	c.Close()
	history.Warn(rec.Finish(context.Background(), c.State()))
	return runErr
}

func run(ctx context.Context, cmd *cobra.Command, cfg config.Config, c *container.Container, repo store.EventRepo) error {
	out := cmd.OutOrStdout()
	if interactive(out) {
		return app.Run(app.Options{Container: c, Config: cfg, EventRepo: repo})
	}

	hopts := app.HeadlessOptions{Container: c, Out: out}
	hopts.Duration, _ = cmd.Flags().GetDuration("duration")
	if cmd.Flags().Changed("a") {
		v, _ := cmd.Flags().GetInt("a")
		v = cfg.A.Clamp(v)
		hopts.A = &v
	}
	if cmd.Flags().Changed("b") {
		v, _ := cmd.Flags().GetInt("b")
		v = cfg.B.Clamp(v)
		hopts.B = &v
	}
	return app.RunHeadless(ctx, hopts)
}

// interactive reports whether w is a terminal the TUI can draw on.
func interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
