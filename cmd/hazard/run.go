package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/luki/hazard/internal/dashboard"
	"github.com/luki/hazard/internal/history"
	"github.com/luki/hazard/internal/logging"
)

func newRunCmd(configPath *string) *cobra.Command {
	var cycles uint64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the dashboard headless, printing one status line per cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Log, "stderr")
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			printer := &statusPrinter{w: cmd.OutOrStdout(), limit: cycles, done: cancel}
			a, err := newApp(cfg, log, dashboard.Options{
				AutoStart: true,
				Renderers: []dashboard.Renderer{printer},
			})
			if err != nil {
				return err
			}
			defer a.close()

			return a.run(ctx)
		},
	}
	cmd.Flags().Uint64Var(&cycles, "cycles", 0, "stop after this many cycles (0 runs until interrupted)")
	return cmd
}

// statusPrinter writes one line per cycle and an extra line per alert.
// Once limit cycles have been printed it calls done and ignores the rest.
type statusPrinter struct {
	w     io.Writer
	limit uint64
	done  func()
	seen  uint64
}

func (p *statusPrinter) Render(s dashboard.Snapshot) {
	if p.limit > 0 && p.seen >= p.limit {
		return
	}
	p.seen++

	fmt.Fprintln(p.w, statusLine(s))
	if s.Alert != nil {
		fmt.Fprintf(p.w, "  ALERT %s %s\n", s.Alert.Timestamp, s.Alert.Message)
	}

	if p.limit > 0 && p.seen >= p.limit {
		p.done()
	}
}

func statusLine(s dashboard.Snapshot) string {
	return fmt.Sprintf("%s #%-4d %-8s temp %-5s gas %3d  smoke %-9s motion %-14s score %3d %s",
		s.Time.Format(history.LabelLayout),
		s.Cycle,
		s.Trigger,
		s.Reading.TemperatureText(),
		s.Reading.GasLevel,
		s.Reading.SmokeText(),
		s.Reading.MotionText(),
		s.Score,
		s.Level.Title(),
	)
}
