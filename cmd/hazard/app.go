package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/luki/hazard/internal/config"
	"github.com/luki/hazard/internal/dashboard"
	"github.com/luki/hazard/internal/metrics"
	"github.com/luki/hazard/internal/sensor"
	"github.com/luki/hazard/internal/store"
)

// app is a dashboard controller wired from configuration together with its
// metrics registry and optional recorder.
type app struct {
	cfg  *config.Config
	log  *zap.Logger
	ctrl *dashboard.Controller
	reg  *prometheus.Registry
	rec  *store.DiskStore
}

// newApp builds the dashboard. Interval and Logger in opts are taken from
// cfg and log; the caller decides start-up behaviour and extra renderers.
func newApp(cfg *config.Config, log *zap.Logger, opts dashboard.Options) (*app, error) {
	var gen sensor.Generator = sensor.NewMockGenerator()
	if cfg.Dashboard.Seed != 0 {
		gen = sensor.NewSeededMockGenerator(cfg.Dashboard.Seed, cfg.Dashboard.Seed)
	}
	dash := dashboard.New(gen, dashboard.SystemClock{}, cfg.Dashboard.SeriesCapacity, cfg.Dashboard.AlertCapacity)

	opts.Interval = cfg.Dashboard.Interval
	opts.Logger = log
	ctrl := dashboard.NewController(dash, opts)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	ctrl.AddRenderer(metrics.NewCollector(reg))

	a := &app{cfg: cfg, log: log, ctrl: ctrl, reg: reg}

	if cfg.Recorder.Enabled {
		rec, err := store.New(cfg.Recorder.Dir, log)
		if err != nil {
			return nil, fmt.Errorf("recorder: %w", err)
		}
		ctrl.AddRenderer(rec)
		a.rec = rec
		log.Info("recording cycles", zap.String("dir", rec.Dir()))
	}

	return a, nil
}

// run drives the controller, and the metrics endpoint when one is
// configured, until ctx is cancelled or either of them fails.
func (a *app) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.ctrl.Run(ctx)
	})

	if a.cfg.Metrics.Addr != "" {
		router := metrics.NewRouter(a.reg, func() string {
			return a.ctrl.State().String()
		})
		g.Go(func() error {
			return metrics.Serve(ctx, a.cfg.Metrics.Addr, router, a.log)
		})
	}

	return g.Wait()
}

// close releases the recorder and flushes the logger. Call it after run
// has returned.
func (a *app) close() {
	if a.rec != nil {
		a.rec.Close()
	}
	_ = a.log.Sync()
}
