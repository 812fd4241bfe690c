package main

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"postgraph/internal/config"
	"postgraph/internal/core"
	"postgraph/internal/fixtures"
	"postgraph/internal/graph"
	"postgraph/internal/logging"
	"postgraph/pkg/domain"
)

// app is one process worth of wiring: a store, the service over it and the
// dispatcher in front of it.
type app struct {
	cfg        config.Config
	store      *core.MemoryStore
	service    *core.Service
	dispatcher *graph.Dispatcher
	expvar     *core.ExpvarMetricsRecorder
	registry   *prometheus.Registry
}

func newApp(cfg config.Config, stderr io.Writer, trace bool) (*app, error) {
	zl, err := logging.New(cfg.Name, stderr, logging.Options{Level: cfg.Log.Level, Timestamp: cfg.Log.Timestamp})
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger(zl)

	a := &app{cfg: cfg}
	a.store = core.NewMemoryStore(core.NewDefaultRulesEngine(), idGenerator(cfg.IDs))
	if cfg.Seed.Demo {
		ds := fixtures.Demo()
		a.store.ImportState(core.SnapshotOf(ds.Users, ds.Posts, ds.Comments))
		logger.Info("demo dataset loaded", "users", len(ds.Users), "posts", len(ds.Posts), "comments", len(ds.Comments))
	}

	opts := []core.Option{core.WithLogger(logger)}
	switch cfg.Metrics.Backend {
	case config.MetricsExpvar:
		a.expvar = core.NewExpvarMetricsRecorder("")
		opts = append(opts, core.WithMetricsRecorder(a.expvar))
	case config.MetricsPrometheus:
		a.registry = prometheus.NewRegistry()
		rec, err := core.NewPrometheusMetricsRecorder(a.registry)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		opts = append(opts, core.WithMetricsRecorder(rec))
	}
	if trace {
		opts = append(opts, core.WithTracer(core.NewJSONTracer(stderr)))
	}

	a.service = core.NewService(a.store, opts...)
	a.dispatcher = graph.NewDispatcher(a.service, graph.WithLogger(logger))
	return a, nil
}

func idGenerator(cfg config.IDConfig) domain.IDGenerator {
	if cfg.Strategy == config.IDsSequence {
		return core.NewSequenceGenerator(cfg.Prefix, 1)
	}
	return core.UUIDGenerator{}
}

// writeMetrics dumps whatever the configured backend collected.
func (a *app) writeMetrics(w io.Writer) error {
	switch {
	case a.expvar != nil:
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
		return enc.Encode(a.expvar.Snapshot())
	case a.registry != nil:
		families, err := a.registry.Gather()
		if err != nil {
			return fmt.Errorf("gather metrics: %w", err)
		}
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
				return fmt.Errorf("write metrics: %w", err)
			}
		}
	}
	return nil
}
